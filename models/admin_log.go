package models

import (
	"time"
)

// AdminLog records an administrative action taken against an account
type AdminLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	AdminID         uint      `gorm:"not null;index:idx_admin_logs_admin_id" json:"admin_id"`
	ActionType      string    `gorm:"size:50;not null;index:idx_admin_logs_action_type" json:"action_type"`
	TargetAccountID *uint     `gorm:"index:idx_admin_logs_target_account_id" json:"target_account_id,omitempty"`
	ActionDetails   string    `gorm:"type:text;not null" json:"action_details"`
	IPAddress       *string   `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent       *string   `gorm:"type:text" json:"user_agent,omitempty"`
	RequestID       *string   `gorm:"size:255;index:idx_admin_logs_request_id" json:"request_id,omitempty"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_admin_logs_created_at" json:"created_at"`
}

func (AdminLog) TableName() string {
	return "admin_logs"
}

// Admin action constants
const (
	AdminActionApproveAccount = "approve_account"
	AdminActionRejectAccount  = "reject_account"
	AdminActionExportPending  = "export_pending"
)

// AdminLogFilter represents filter criteria for admin log queries
type AdminLogFilter struct {
	ID              *uint
	AdminID         *uint
	ActionType      *string
	TargetAccountID *uint
	RequestID       *string
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
}
