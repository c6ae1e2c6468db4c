package businessflow

import (
	"context"
	"strings"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/repository"
)

const msgBusinessDetailsUpdated = "Business details updated successfully"

// BusinessProfileFlow reads and edits the business fields of an authenticated business account
type BusinessProfileFlow interface {
	GetProfile(ctx context.Context, accountID uint) (*dto.BusinessProfileDTO, error)
	UpdateProfile(ctx context.Context, accountID uint, req *dto.UpdateBusinessProfileRequest, metadata *ClientMetadata) (*dto.UpdateBusinessProfileResponse, error)
}

type BusinessProfileFlowImpl struct {
	accountRepo repository.AccountRepository
	transactor  repository.Transactor
}

func NewBusinessProfileFlow(accountRepo repository.AccountRepository, transactor repository.Transactor) BusinessProfileFlow {
	return &BusinessProfileFlowImpl{
		accountRepo: accountRepo,
		transactor:  transactor,
	}
}

func (f *BusinessProfileFlowImpl) GetProfile(ctx context.Context, accountID uint) (*dto.BusinessProfileDTO, error) {
	account, err := f.accountRepo.ByID(ctx, accountID)
	if err != nil {
		return nil, NewBusinessError("GET_BUSINESS_PROFILE_FAILED", "Failed to get business profile", err)
	}
	if account == nil || !account.IsBusiness() {
		return nil, newKnownError("BUSINESS_PROFILE_NOT_FOUND", ErrBusinessProfileNotFound)
	}

	profile := ToBusinessProfileDTO(*account)
	return &profile, nil
}

// UpdateProfile changes only the fields present in req. A new CAC number must
// not belong to another account.
func (f *BusinessProfileFlowImpl) UpdateProfile(ctx context.Context, accountID uint, req *dto.UpdateBusinessProfileRequest, metadata *ClientMetadata) (*dto.UpdateBusinessProfileResponse, error) {
	if req == nil {
		return nil, newKnownError("UPDATE_BUSINESS_VALIDATION_FAILED", ErrNoFieldsToUpdate)
	}
	update := models.BusinessProfileUpdate{
		BusinessName:     trimmedOrNil(req.BusinessName),
		BusinessType:     trimmedOrNil(req.BusinessType),
		CACNumber:        trimmedOrNil(req.CACNumber),
		BusinessLocation: trimmedOrNil(req.BusinessLocation),
		BusinessPhone:    trimmedOrNil(req.BusinessPhone),
	}
	if update.IsEmpty() {
		return nil, newKnownError("UPDATE_BUSINESS_VALIDATION_FAILED", ErrNoFieldsToUpdate)
	}

	var account *models.Account
	err := f.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := f.accountRepo.ByID(txCtx, accountID)
		if err != nil {
			return err
		}
		if current == nil || !current.IsBusiness() {
			return ErrBusinessAccountNotFound
		}

		if update.CACNumber != nil && (current.CACNumber == nil || *current.CACNumber != *update.CACNumber) {
			owner, err := f.accountRepo.ByCACNumber(txCtx, *update.CACNumber)
			if err != nil {
				return err
			}
			if owner != nil && owner.ID != accountID {
				return ErrCACAlreadyRegistered
			}
		}

		updated, err := f.accountRepo.UpdateBusinessProfile(txCtx, accountID, update)
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrCACAlreadyRegistered
			}
			return err
		}
		if !updated {
			return ErrBusinessAccountNotFound
		}

		account, err = f.accountRepo.ByID(txCtx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrBusinessAccountNotFound
		}
		return nil
	})
	if err != nil {
		if sentinel := knownSentinel(err); sentinel != nil {
			return nil, newKnownError("UPDATE_BUSINESS_FAILED", sentinel)
		}
		return nil, NewBusinessError("UPDATE_BUSINESS_FAILED", "Failed to update business details", err)
	}

	return &dto.UpdateBusinessProfileResponse{
		Message: msgBusinessDetailsUpdated,
		Profile: ToBusinessProfileDTO(*account),
	}, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
