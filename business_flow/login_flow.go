package businessflow

import (
	"context"
	"crypto/subtle"
	"log"
	"strings"
	"time"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/app/services"
	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/repository"
	"github.com/amirphl/social-admin/utils"
)

// LoginFlow authenticates approved accounts that present a live activation code
type LoginFlow interface {
	Login(ctx context.Context, accountType models.AccountType, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time, metadata *ClientMetadata) error
}

// LoginFlowImpl implements the login business flow
type LoginFlowImpl struct {
	accountRepo  repository.AccountRepository
	hasher       services.PasswordHasher
	tokenService services.TokenService
	clock        utils.Clock
}

// NewLoginFlow creates a new login flow instance
func NewLoginFlow(
	accountRepo repository.AccountRepository,
	hasher services.PasswordHasher,
	tokenService services.TokenService,
	clock utils.Clock,
) LoginFlow {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &LoginFlowImpl{
		accountRepo:  accountRepo,
		hasher:       hasher,
		tokenService: tokenService,
		clock:        clock,
	}
}

// Login checks, in order: account existence, review status, activation code,
// code expiry and finally the password. The first login after approval marks
// the account verified and consumes the activation code.
func (lf *LoginFlowImpl) Login(ctx context.Context, accountType models.AccountType, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	resp, err := lf.login(ctx, accountType, request)
	accountLoginsTotal.WithLabelValues(loginResult(err)).Inc()
	if err != nil {
		if IsInternal(err) {
			log.Printf("Login failed for %s from %s: %v", utils.MaskEmail(emailOf(request)), metadata.ipAddress(), err)
		}
		return nil, err
	}
	return resp, nil
}

func (lf *LoginFlowImpl) login(ctx context.Context, accountType models.AccountType, request *dto.LoginRequest) (*dto.LoginResponse, error) {
	if !accountType.Valid() {
		return nil, newKnownError("LOGIN_VALIDATION_FAILED", ErrInvalidAccountType)
	}
	if request == nil || strings.TrimSpace(request.Email) == "" || request.Password == "" {
		return nil, newKnownError("LOGIN_VALIDATION_FAILED", ErrAllFieldsRequired)
	}

	account, err := lf.accountRepo.ByEmailAndType(ctx, utils.NormalizeEmail(request.Email), accountType)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}
	if account == nil {
		return nil, newKnownError("INVALID_CREDENTIALS", ErrInvalidCredentials)
	}

	switch account.AccountStatus {
	case models.AccountStatusPending:
		return nil, withStatus(newKnownError("ACCOUNT_PENDING", ErrAccountPending), models.AccountStatusPending.String())
	case models.AccountStatusRejected:
		return nil, withStatus(newKnownError("ACCOUNT_REJECTED", ErrAccountRejected), models.AccountStatusRejected.String())
	}

	if !account.HasActivationCode() || !codesEqual(*account.ActivationCode, strings.TrimSpace(request.ActivationCode)) {
		return nil, newKnownError("INVALID_ACTIVATION_CODE", ErrInvalidActivationCode)
	}

	now := lf.clock.Now()
	if utils.IsExpiredAt(account.ActivationExpires, now) {
		return nil, newKnownError("ACTIVATION_CODE_EXPIRED", ErrActivationCodeExpired)
	}

	if !lf.hasher.Verify(request.Password, account.PasswordHash) {
		return nil, newKnownError("INVALID_CREDENTIALS", ErrInvalidCredentials)
	}

	if !account.IsVerified {
		verified, err := lf.accountRepo.MarkVerified(ctx, account.ID, *account.ActivationCode, now)
		if err != nil {
			return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
		}
		// another login consumed the code first
		if !verified {
			return nil, newKnownError("INVALID_ACTIVATION_CODE", ErrInvalidActivationCode)
		}
		account.IsVerified = true
		account.VerifiedAt = &now
		account.ActivationCode = nil
	}

	issued, err := lf.tokenService.GenerateSessionToken(ctx, services.SessionSubject{
		AccountID:   account.ID,
		Email:       account.Email,
		IsVerified:  account.IsVerified,
		AccountType: account.AccountType.String(),
	})
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Login failed", err)
	}

	return &dto.LoginResponse{
		Token:     issued.Token,
		TokenType: "Bearer",
		ExpiresAt: issued.ExpiresAt.UTC().Format(time.RFC3339),
		User:      ToAuthUserDTO(*account),
	}, nil
}

// Logout revokes the session token with the given id until it would expire
func (lf *LoginFlowImpl) Logout(ctx context.Context, tokenID string, expiresAt time.Time, metadata *ClientMetadata) error {
	if err := lf.tokenService.RevokeToken(ctx, tokenID, expiresAt); err != nil {
		return NewBusinessError("LOGOUT_FAILED", "Logout failed", err)
	}
	return nil
}

func codesEqual(stored, presented string) bool {
	if presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

func emailOf(request *dto.LoginRequest) string {
	if request == nil {
		return ""
	}
	return request.Email
}
