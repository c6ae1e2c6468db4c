// Package businessflow contains the account lifecycle use cases: registration,
// admin review, activation-gated login and password recovery.
package businessflow

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/app/services"
	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/utils"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds the caller's network details for the admin action trail
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

func (cm *ClientMetadata) requestIDPtr() *string {
	if cm == nil || cm.RequestID == "" {
		return nil
	}
	return &cm.RequestID
}

func (cm *ClientMetadata) ipAddress() string {
	if cm == nil {
		return ""
	}
	return cm.IPAddress
}

func (cm *ClientMetadata) userAgent() string {
	if cm == nil {
		return ""
	}
	return cm.UserAgent
}

// generateCode returns a uniformly random six digit code in [100000, 999999]
func generateCode() (string, error) {
	lower := int64(1)
	for i := 1; i < utils.CodeLength; i++ {
		lower *= 10
	}
	n, err := rand.Int(rand.Reader, big.NewInt(lower*9))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+lower), nil
}

// sendEmail delivers a lifecycle email after the state change is committed.
// Delivery failures are logged and reported as false; they never undo state.
func sendEmail(ctx context.Context, notifier services.NotificationService, to, subject, body string) bool {
	if notifier == nil {
		log.Printf("No notification service configured, dropping email %q to %s", subject, utils.MaskEmail(to))
		return false
	}
	if err := notifier.SendEmail(ctx, to, subject, body); err != nil {
		log.Printf("Failed to send email %q to %s: %v", subject, utils.MaskEmail(to), err)
		return false
	}
	return true
}

// ToAuthUserDTO converts an account to the user profile returned by login
func ToAuthUserDTO(account models.Account) dto.AuthUserDTO {
	return dto.AuthUserDTO{
		UserID:           account.ID,
		UUID:             account.UUID.String(),
		Email:            account.Email,
		FirstName:        account.FirstName,
		LastName:         account.LastName,
		BusinessName:     account.BusinessName,
		DisplayName:      account.DisplayName(),
		IsVerified:       account.IsVerified,
		HasVerifiedBadge: account.UserVerified,
		AccountType:      account.AccountType.String(),
	}
}

func ToPendingAccountDTO(account models.Account) dto.PendingAccountDTO {
	return dto.PendingAccountDTO{
		UserID:           account.ID,
		UUID:             account.UUID.String(),
		AccountType:      account.AccountType.String(),
		Email:            account.Email,
		FirstName:        account.FirstName,
		LastName:         account.LastName,
		Phone:            account.Phone,
		NIN:              account.NIN,
		Address:          account.Address,
		BusinessName:     account.BusinessName,
		BusinessType:     account.BusinessType,
		CACNumber:        account.CACNumber,
		BusinessLocation: account.BusinessLocation,
		BusinessPhone:    account.BusinessPhone,
		RegisteredAt:     account.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ToBusinessProfileDTO(account models.Account) dto.BusinessProfileDTO {
	return dto.BusinessProfileDTO{
		UserID:           account.ID,
		BusinessName:     utils.Deref(account.BusinessName),
		BusinessType:     account.BusinessType,
		CACNumber:        account.CACNumber,
		BusinessLocation: account.BusinessLocation,
		BusinessEmail:    account.Email,
		BusinessPhone:    account.BusinessPhone,
		RegisteredAt:     account.CreatedAt.UTC().Format(time.RFC3339),
		IsVerified:       account.IsVerified,
		HasVerifiedBadge: account.UserVerified,
	}
}

func ToAdminDTO(admin models.Admin) dto.AdminDTO {
	return dto.AdminDTO{
		ID:        admin.ID,
		UUID:      admin.UUID.String(),
		Username:  admin.Username,
		IsActive:  admin.IsActive,
		CreatedAt: admin.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CodeTTLs bounds the lifetime of issued activation and reset codes
type CodeTTLs struct {
	Activation time.Duration
	Reset      time.Duration
}

func DefaultCodeTTLs() CodeTTLs {
	return CodeTTLs{
		Activation: utils.ActivationCodeTTL,
		Reset:      utils.ResetCodeTTL,
	}
}

func (t CodeTTLs) withDefaults() CodeTTLs {
	if t.Activation <= 0 {
		t.Activation = utils.ActivationCodeTTL
	}
	if t.Reset <= 0 {
		t.Reset = utils.ResetCodeTTL
	}
	return t
}
