// Package models contains domain entities for the account lifecycle backend
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccountType distinguishes personal registrations from business registrations
type AccountType string

const (
	AccountTypePersonal AccountType = "personal"
	AccountTypeBusiness AccountType = "business"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypePersonal, AccountTypeBusiness:
		return true
	}
	return false
}

func (t AccountType) String() string {
	return string(t)
}

// AccountStatus is the review stage of a registration.
// Transitions are pending -> approved and pending -> rejected only.
type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusApproved AccountStatus = "approved"
	AccountStatusRejected AccountStatus = "rejected"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusPending, AccountStatusApproved, AccountStatusRejected:
		return true
	}
	return false
}

func (s AccountStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether moving from s to next is an allowed lifecycle step
func (s AccountStatus) CanTransitionTo(next AccountStatus) bool {
	return s == AccountStatusPending && (next == AccountStatusApproved || next == AccountStatusRejected)
}

type Account struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UUID          uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uk_accounts_uuid" json:"uuid"`
	AccountType   AccountType   `gorm:"type:varchar(20);not null;index:idx_accounts_account_type" json:"account_type"`
	AccountStatus AccountStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_accounts_account_status" json:"account_status"`

	// Common fields
	Email        string `gorm:"size:255;not null;uniqueIndex:uk_accounts_email" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// Personal fields
	FirstName *string `gorm:"size:100" json:"first_name,omitempty"`
	LastName  *string `gorm:"size:100" json:"last_name,omitempty"`
	Gender    *string `gorm:"size:20" json:"gender,omitempty"`
	Phone     *string `gorm:"size:20" json:"phone,omitempty"`
	Address   *string `gorm:"size:255" json:"address,omitempty"`
	NIN       *string `gorm:"column:nin_number;size:20;uniqueIndex:uk_accounts_nin_number" json:"nin_number,omitempty"`

	// Business fields
	BusinessName     *string `gorm:"size:150" json:"business_name,omitempty"`
	BusinessType     *string `gorm:"size:100" json:"business_type,omitempty"`
	BusinessLocation *string `gorm:"size:255" json:"business_location,omitempty"`
	BusinessPhone    *string `gorm:"size:20" json:"business_phone,omitempty"`
	CACNumber        *string `gorm:"column:cac_number;size:30;uniqueIndex:uk_accounts_cac_number" json:"cac_number,omitempty"`

	// Time-boxed codes
	ActivationCode    *string    `gorm:"size:6" json:"-"`
	ActivationExpires *time.Time `json:"-"`
	ResetCode         *string    `gorm:"size:6" json:"-"`
	ResetExpires      *time.Time `json:"-"`

	// IsVerified is set on the first successful login after approval.
	// UserVerified is the admin-granted badge and is not part of the lifecycle.
	IsVerified   bool       `gorm:"not null;default:false" json:"is_verified"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
	UserVerified bool       `gorm:"not null;default:false" json:"user_verified"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_accounts_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// AccountFilter represents filter criteria for account queries
type AccountFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Email         *string
	AccountType   *AccountType
	AccountStatus *AccountStatus
	NIN           *string
	CACNumber     *string
	IsVerified    *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (a *Account) IsPersonal() bool {
	return a.AccountType == AccountTypePersonal
}

func (a *Account) IsBusiness() bool {
	return a.AccountType == AccountTypeBusiness
}

// DisplayName is first and last name for personal accounts and the business name otherwise
func (a *Account) DisplayName() string {
	if a.IsBusiness() {
		if a.BusinessName != nil {
			return *a.BusinessName
		}
		return ""
	}

	parts := make([]string, 0, 2)
	if a.FirstName != nil && *a.FirstName != "" {
		parts = append(parts, *a.FirstName)
	}
	if a.LastName != nil && *a.LastName != "" {
		parts = append(parts, *a.LastName)
	}
	return strings.Join(parts, " ")
}

// HasActivationCode reports whether an unconsumed activation code is stored
func (a *Account) HasActivationCode() bool {
	return a.ActivationCode != nil && *a.ActivationCode != ""
}

func (a *Account) HasResetCode() bool {
	return a.ResetCode != nil && *a.ResetCode != ""
}

// BusinessProfileUpdate carries optional business field changes; nil fields are left unchanged
type BusinessProfileUpdate struct {
	BusinessName     *string
	BusinessType     *string
	CACNumber        *string
	BusinessLocation *string
	BusinessPhone    *string
}

func (u BusinessProfileUpdate) IsEmpty() bool {
	return u.BusinessName == nil && u.BusinessType == nil && u.CACNumber == nil &&
		u.BusinessLocation == nil && u.BusinessPhone == nil
}
