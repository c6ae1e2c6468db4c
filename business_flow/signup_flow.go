package businessflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/app/services"
	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/repository"
	"github.com/amirphl/social-admin/utils"
	"github.com/google/uuid"
)

const (
	signupStatusUnderReview = "under_review"

	msgPersonalSignupSubmitted = "Registration submitted for review. You will receive an email once approved."
	msgBusinessSignupSubmitted = "Business registration submitted for review. You will receive an email once approved."
)

// SignupFlow submits personal and business registrations for admin review
type SignupFlow interface {
	SignupPersonal(ctx context.Context, req *dto.PersonalSignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error)
	SignupBusiness(ctx context.Context, req *dto.BusinessSignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error)
}

// SignupFlowImpl implements the signup business flow
type SignupFlowImpl struct {
	accountRepo     repository.AccountRepository
	transactor      repository.Transactor
	hasher          services.PasswordHasher
	notificationSvc services.NotificationService
	clock           utils.Clock
}

// NewSignupFlow creates a new signup flow instance
func NewSignupFlow(
	accountRepo repository.AccountRepository,
	transactor repository.Transactor,
	hasher services.PasswordHasher,
	notificationSvc services.NotificationService,
	clock utils.Clock,
) SignupFlow {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &SignupFlowImpl{
		accountRepo:     accountRepo,
		transactor:      transactor,
		hasher:          hasher,
		notificationSvc: notificationSvc,
		clock:           clock,
	}
}

// SignupPersonal registers an individual. Email and NIN must be unused.
func (s *SignupFlowImpl) SignupPersonal(ctx context.Context, req *dto.PersonalSignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error) {
	if req == nil || anyBlank(req.FirstName, req.LastName, req.Gender, req.Phone, req.NIN, req.Email, req.Password, req.Address) {
		return nil, newKnownError("SIGNUP_VALIDATION_FAILED", ErrAllFieldsRequired)
	}

	account := &models.Account{
		AccountType: models.AccountTypePersonal,
		Email:       utils.NormalizeEmail(req.Email),
		FirstName:   utils.ToPtr(strings.TrimSpace(req.FirstName)),
		LastName:    utils.ToPtr(strings.TrimSpace(req.LastName)),
		Gender:      utils.ToPtr(strings.TrimSpace(req.Gender)),
		Phone:       utils.ToPtr(strings.TrimSpace(req.Phone)),
		Address:     utils.ToPtr(strings.TrimSpace(req.Address)),
		NIN:         utils.ToPtr(strings.TrimSpace(req.NIN)),
	}

	resp, err := s.register(ctx, account, req.Password)
	if err != nil {
		return nil, err
	}
	resp.Message = msgPersonalSignupSubmitted
	return resp, nil
}

// SignupBusiness registers a business. Email must be unused; the CAC number is
// checked only when provided.
func (s *SignupFlowImpl) SignupBusiness(ctx context.Context, req *dto.BusinessSignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error) {
	if req == nil || anyBlank(req.BusinessPhone, req.BusinessEmail, req.BusinessPassword, req.BusinessLocation, req.BusinessName, req.BusinessType) {
		return nil, newKnownError("SIGNUP_VALIDATION_FAILED", ErrAllFieldsRequired)
	}

	account := &models.Account{
		AccountType:      models.AccountTypeBusiness,
		Email:            utils.NormalizeEmail(req.BusinessEmail),
		BusinessName:     utils.ToPtr(strings.TrimSpace(req.BusinessName)),
		BusinessType:     utils.ToPtr(strings.TrimSpace(req.BusinessType)),
		BusinessLocation: utils.ToPtr(strings.TrimSpace(req.BusinessLocation)),
		BusinessPhone:    utils.ToPtr(strings.TrimSpace(req.BusinessPhone)),
	}
	if req.CACNumber != nil && strings.TrimSpace(*req.CACNumber) != "" {
		account.CACNumber = utils.ToPtr(strings.TrimSpace(*req.CACNumber))
	}

	resp, err := s.register(ctx, account, req.BusinessPassword)
	if err != nil {
		return nil, err
	}
	resp.BusinessName = account.BusinessName
	resp.Message = msgBusinessSignupSubmitted
	return resp, nil
}

func (s *SignupFlowImpl) register(ctx context.Context, account *models.Account, password string) (*dto.SignupResponse, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, NewBusinessError("SIGNUP_FAILED", "Signup failed", err)
	}

	now := s.clock.Now()
	account.UUID = uuid.New()
	account.AccountStatus = models.AccountStatusPending
	account.PasswordHash = passwordHash
	account.CreatedAt = now
	account.UpdatedAt = now

	err = s.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.checkUniqueness(txCtx, account); err != nil {
			return err
		}
		if err := s.accountRepo.Save(txCtx, account); err != nil {
			if repository.IsUniqueViolation(err) {
				return uniqueViolationCause(err)
			}
			return fmt.Errorf("failed to create account: %w", err)
		}
		return nil
	})
	if err != nil {
		if sentinel := knownSentinel(err); sentinel != nil {
			return nil, newKnownError("SIGNUP_CONFLICT", sentinel)
		}
		return nil, NewBusinessError("SIGNUP_FAILED", "Signup failed", err)
	}

	accountSignupsTotal.WithLabelValues(account.AccountType.String()).Inc()

	emailSent := false
	body, err := renderEmail("under_review", emailData{Name: account.DisplayName(), Business: account.IsBusiness()})
	if err != nil {
		log.Printf("Failed to render under-review email for account %d: %v", account.ID, err)
	} else {
		emailSent = sendEmail(ctx, s.notificationSvc, account.Email, subjectUnderReview, body)
	}

	return &dto.SignupResponse{
		UserID:      account.ID,
		UUID:        account.UUID.String(),
		Status:      signupStatusUnderReview,
		AccountType: account.AccountType.String(),
		EmailSent:   emailSent,
	}, nil
}

// checkUniqueness runs inside the signup transaction. The unique indexes remain
// the backstop for registrations racing between this check and the insert.
func (s *SignupFlowImpl) checkUniqueness(ctx context.Context, account *models.Account) error {
	existing, err := s.accountRepo.ByEmail(ctx, account.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailAlreadyRegistered
	}

	switch account.AccountType {
	case models.AccountTypePersonal:
		existing, err = s.accountRepo.ByNIN(ctx, *account.NIN)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrNINAlreadyRegistered
		}
	case models.AccountTypeBusiness:
		if account.CACNumber == nil {
			return nil
		}
		existing, err = s.accountRepo.ByCACNumber(ctx, *account.CACNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrCACAlreadyRegistered
		}
	default:
		return ErrInvalidAccountType
	}
	return nil
}

// uniqueViolationCause maps an insert-time unique violation to the conflicting field
func uniqueViolationCause(err error) error {
	switch repository.ViolatedConstraint(err) {
	case "uk_accounts_nin_number":
		return ErrNINAlreadyRegistered
	case "uk_accounts_cac_number":
		return ErrCACAlreadyRegistered
	default:
		return ErrEmailAlreadyRegistered
	}
}

// knownSentinel returns the registered sentinel err wraps, or nil
func knownSentinel(err error) error {
	for sentinel := range errorSpecs {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
