package businessflow

import (
	"context"
	"log"
	"strings"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/app/services"
	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/repository"
	"github.com/amirphl/social-admin/utils"
)

const (
	msgResetCodeSent         = "If the email exists, a reset code has been sent"
	msgResetCodeVerified     = "Reset code verified successfully"
	msgPasswordReset         = "Password has been reset successfully. You can now login with your new password."
	msgNewActivationCodeSent = "New activation code sent to your email"
)

// AccountRecoveryFlow handles password resets and activation code reissue
type AccountRecoveryFlow interface {
	ForgotPassword(ctx context.Context, request *dto.ForgotPasswordRequest, metadata *ClientMetadata) (*dto.MessageResponse, error)
	ConfirmResetCode(ctx context.Context, request *dto.ConfirmResetRequest, metadata *ClientMetadata) (*dto.MessageResponse, error)
	ResetPassword(ctx context.Context, request *dto.ResetPasswordRequest, metadata *ClientMetadata) (*dto.MessageResponse, error)
	ResendActivation(ctx context.Context, request *dto.ResendActivationRequest, metadata *ClientMetadata) (*dto.MessageResponse, error)
}

// AccountRecoveryFlowImpl implements the account recovery business flow
type AccountRecoveryFlowImpl struct {
	accountRepo     repository.AccountRepository
	hasher          services.PasswordHasher
	notificationSvc services.NotificationService
	ttls            CodeTTLs
	clock           utils.Clock
}

// NewAccountRecoveryFlow creates a new account recovery flow instance
func NewAccountRecoveryFlow(
	accountRepo repository.AccountRepository,
	hasher services.PasswordHasher,
	notificationSvc services.NotificationService,
	ttls CodeTTLs,
	clock utils.Clock,
) AccountRecoveryFlow {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &AccountRecoveryFlowImpl{
		accountRepo:     accountRepo,
		hasher:          hasher,
		notificationSvc: notificationSvc,
		ttls:            ttls.withDefaults(),
		clock:           clock,
	}
}

// ForgotPassword issues a reset code to an approved account. The response is
// the same whether or not such an account exists.
func (f *AccountRecoveryFlowImpl) ForgotPassword(ctx context.Context, request *dto.ForgotPasswordRequest, metadata *ClientMetadata) (*dto.MessageResponse, error) {
	if request == nil || strings.TrimSpace(request.Email) == "" {
		return nil, newKnownError("FORGOT_PASSWORD_VALIDATION_FAILED", ErrAllFieldsRequired)
	}

	account, err := f.accountRepo.ByEmailAndStatus(ctx, utils.NormalizeEmail(request.Email), models.AccountStatusApproved)
	if err != nil {
		return nil, NewBusinessError("FORGOT_PASSWORD_FAILED", "Forgot password failed", err)
	}
	if account == nil {
		return &dto.MessageResponse{Message: msgResetCodeSent}, nil
	}

	code, err := generateCode()
	if err != nil {
		return nil, NewBusinessError("FORGOT_PASSWORD_FAILED", "Forgot password failed", err)
	}
	expires := f.clock.Now().Add(f.ttls.Reset)
	if err := f.accountRepo.SetResetCode(ctx, account.ID, code, expires); err != nil {
		return nil, NewBusinessError("FORGOT_PASSWORD_FAILED", "Forgot password failed", err)
	}
	passwordResetsTotal.WithLabelValues("requested").Inc()

	body, err := renderEmail("reset_code", emailData{Name: account.DisplayName(), Code: code, Validity: humanDuration(f.ttls.Reset)})
	if err != nil {
		log.Printf("Failed to render reset email for account %d: %v", account.ID, err)
	} else {
		sendEmail(ctx, f.notificationSvc, account.Email, subjectPasswordResetCode, body)
	}

	return &dto.MessageResponse{Message: msgResetCodeSent}, nil
}

// ConfirmResetCode checks a reset code without consuming it
func (f *AccountRecoveryFlowImpl) ConfirmResetCode(ctx context.Context, request *dto.ConfirmResetRequest, metadata *ClientMetadata) (*dto.MessageResponse, error) {
	if request == nil || strings.TrimSpace(request.Email) == "" || strings.TrimSpace(request.ResetKey) == "" {
		return nil, newKnownError("CONFIRM_RESET_VALIDATION_FAILED", ErrAllFieldsRequired)
	}

	if _, err := f.accountWithLiveResetCode(ctx, request.Email, request.ResetKey); err != nil {
		return nil, err
	}

	passwordResetsTotal.WithLabelValues("confirmed").Inc()
	return &dto.MessageResponse{Message: msgResetCodeVerified}, nil
}

// ResetPassword replaces the password and consumes the reset code. The code
// is cleared by the same conditional write, so a code works at most once.
func (f *AccountRecoveryFlowImpl) ResetPassword(ctx context.Context, request *dto.ResetPasswordRequest, metadata *ClientMetadata) (*dto.MessageResponse, error) {
	if request == nil || anyBlank(request.Email, request.ResetKey, request.Password, request.Confirm) {
		return nil, newKnownError("RESET_PASSWORD_VALIDATION_FAILED", ErrAllFieldsRequired)
	}
	if request.Password != request.Confirm {
		return nil, newKnownError("PASSWORDS_DO_NOT_MATCH", ErrPasswordsDoNotMatch)
	}

	account, err := f.accountWithLiveResetCode(ctx, request.Email, request.ResetKey)
	if err != nil {
		return nil, err
	}

	passwordHash, err := f.hasher.Hash(request.Password)
	if err != nil {
		return nil, NewBusinessError("RESET_PASSWORD_FAILED", "Password reset failed", err)
	}

	updated, err := f.accountRepo.ResetPassword(ctx, account.ID, strings.TrimSpace(request.ResetKey), f.clock.Now(), passwordHash)
	if err != nil {
		return nil, NewBusinessError("RESET_PASSWORD_FAILED", "Password reset failed", err)
	}
	if !updated {
		return nil, newKnownError("INVALID_RESET_CODE", ErrInvalidOrExpiredResetCode)
	}

	passwordResetsTotal.WithLabelValues("completed").Inc()
	return &dto.MessageResponse{Message: msgPasswordReset}, nil
}

// ResendActivation overwrites the activation code of an approved account with a fresh one
func (f *AccountRecoveryFlowImpl) ResendActivation(ctx context.Context, request *dto.ResendActivationRequest, metadata *ClientMetadata) (*dto.MessageResponse, error) {
	if request == nil || strings.TrimSpace(request.Email) == "" {
		return nil, newKnownError("RESEND_ACTIVATION_VALIDATION_FAILED", ErrAllFieldsRequired)
	}

	account, err := f.accountRepo.ByEmailAndStatus(ctx, utils.NormalizeEmail(request.Email), models.AccountStatusApproved)
	if err != nil {
		return nil, NewBusinessError("RESEND_ACTIVATION_FAILED", "Resend activation failed", err)
	}
	if account == nil {
		return nil, newKnownError("EMAIL_NOT_FOUND_OR_NOT_APPROVED", ErrEmailNotFoundOrNotApproved)
	}

	code, err := generateCode()
	if err != nil {
		return nil, NewBusinessError("RESEND_ACTIVATION_FAILED", "Resend activation failed", err)
	}
	if err := f.accountRepo.SetActivationCode(ctx, account.ID, code, f.clock.Now().Add(f.ttls.Activation)); err != nil {
		return nil, NewBusinessError("RESEND_ACTIVATION_FAILED", "Resend activation failed", err)
	}

	body, err := renderEmail("new_activation_code", emailData{Name: account.DisplayName(), Code: code, Validity: humanDuration(f.ttls.Activation)})
	if err != nil {
		log.Printf("Failed to render activation email for account %d: %v", account.ID, err)
	} else {
		sendEmail(ctx, f.notificationSvc, account.Email, subjectNewActivationCode, body)
	}

	return &dto.MessageResponse{Message: msgNewActivationCodeSent}, nil
}

// accountWithLiveResetCode returns the account whose stored reset code matches
// and whose reset_expires lies strictly after now
func (f *AccountRecoveryFlowImpl) accountWithLiveResetCode(ctx context.Context, email, resetKey string) (*models.Account, error) {
	account, err := f.accountRepo.ByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, NewBusinessError("RESET_CODE_CHECK_FAILED", "Reset code check failed", err)
	}
	if account == nil || !account.HasResetCode() || account.ResetExpires == nil {
		return nil, newKnownError("INVALID_RESET_CODE", ErrInvalidOrExpiredResetCode)
	}
	if !codesEqual(*account.ResetCode, strings.TrimSpace(resetKey)) || !f.clock.Now().Before(*account.ResetExpires) {
		return nil, newKnownError("INVALID_RESET_CODE", ErrInvalidOrExpiredResetCode)
	}
	return account, nil
}
