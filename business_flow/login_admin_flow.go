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
	"github.com/google/uuid"
)

// AdminAuthFlow represents the admin authentication flow used by handlers
type AdminAuthFlow interface {
	InitCaptcha(ctx context.Context) (*dto.AdminCaptchaInitResponse, error)
	Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AdminLoginResponse, error)
	EnsureBootstrapAdmin(ctx context.Context, username, password string) error
}

// AdminAuthFlowImpl provides captcha-init and admin credential verification
type AdminAuthFlowImpl struct {
	adminRepo    repository.AdminRepository
	hasher       services.PasswordHasher
	tokenService services.TokenService
	captchaSvc   services.CaptchaService
	clock        utils.Clock
}

func NewAdminAuthFlow(
	adminRepo repository.AdminRepository,
	hasher services.PasswordHasher,
	tokenService services.TokenService,
	captchaSvc services.CaptchaService,
	clock utils.Clock,
) AdminAuthFlow {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &AdminAuthFlowImpl{
		adminRepo:    adminRepo,
		hasher:       hasher,
		tokenService: tokenService,
		captchaSvc:   captchaSvc,
		clock:        clock,
	}
}

func (af *AdminAuthFlowImpl) InitCaptcha(ctx context.Context) (*dto.AdminCaptchaInitResponse, error) {
	if af.captchaSvc == nil {
		return nil, NewBusinessError("CAPTCHA_NOT_AVAILABLE", "Captcha service not available", ErrCaptchaNotAvailable)
	}
	ch, err := af.captchaSvc.GenerateRotate(ctx)
	if err != nil {
		return nil, NewBusinessError("CAPTCHA_INIT_FAILED", "Failed to initialize captcha", err)
	}
	return &dto.AdminCaptchaInitResponse{
		ChallengeID:       ch.ID,
		MasterImageBase64: ch.MasterImageBase64,
		ThumbImageBase64:  ch.ThumbImageBase64,
	}, nil
}

// Login verifies the captcha before touching credentials, so a challenge is
// spent even when the password turns out wrong.
func (af *AdminAuthFlowImpl) Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AdminLoginResponse, error) {
	if req == nil || req.Username == "" || req.Password == "" {
		return nil, newKnownError("ADMIN_LOGIN_VALIDATION_FAILED", ErrAllFieldsRequired)
	}
	if req.ChallengeID == "" {
		return nil, newKnownError("CAPTCHA_INVALID", ErrInvalidCaptcha)
	}

	if af.captchaSvc == nil || !af.captchaSvc.VerifyRotate(ctx, req.ChallengeID, req.UserAngle) {
		return nil, newKnownError("CAPTCHA_INVALID", ErrInvalidCaptcha)
	}

	admin, err := af.adminRepo.ByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil {
		return nil, newKnownError("ADMIN_INVALID_CREDENTIALS", ErrAdminNotFound)
	}
	if !af.hasher.Verify(req.Password, admin.PasswordHash) {
		return nil, newKnownError("ADMIN_INVALID_CREDENTIALS", ErrIncorrectPassword)
	}
	// only reported to callers holding the right password
	if !utils.IsTrue(admin.IsActive) {
		return nil, newKnownError("ADMIN_INACTIVE", ErrAdminInactive)
	}

	issued, err := af.tokenService.GenerateAdminToken(ctx, admin.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	now := af.clock.Now()
	if err := af.adminRepo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		log.Printf("Failed to update last login of admin %d: %v", admin.ID, err)
	}

	return &dto.AdminLoginResponse{
		Admin: ToAdminDTO(*admin),
		Session: dto.AdminSessionDTO{
			AccessToken: issued.Token,
			ExpiresIn:   int(issued.ExpiresAt.Sub(now).Seconds()),
			TokenType:   "Bearer",
		},
	}, nil
}

// EnsureBootstrapAdmin creates the configured admin when no admin with that username exists
func (af *AdminAuthFlowImpl) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}

	existing, err := af.adminRepo.ByUsername(ctx, username)
	if err != nil {
		return NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if existing != nil {
		return nil
	}

	passwordHash, err := af.hasher.Hash(password)
	if err != nil {
		return NewBusinessError("ADMIN_BOOTSTRAP_FAILED", "Failed to create bootstrap admin", err)
	}

	now := af.clock.Now()
	admin := &models.Admin{
		UUID:         uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		IsActive:     utils.ToPtr(true),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := af.adminRepo.Save(ctx, admin); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil
		}
		return NewBusinessError("ADMIN_BOOTSTRAP_FAILED", "Failed to create bootstrap admin", err)
	}

	log.Printf("Bootstrap admin %q created", username)
	return nil
}
