package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/utils"
	"gorm.io/gorm"
)

// AccountRepositoryImpl implements AccountRepository interface
type AccountRepositoryImpl struct {
	*BaseRepository[models.Account, models.AccountFilter]
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &AccountRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Account, models.AccountFilter](db),
	}
}

func (r *AccountRepositoryImpl) first(ctx context.Context, filter models.AccountFilter) (*models.Account, error) {
	accounts, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, nil
	}
	return accounts[0], nil
}

// ByUUID retrieves an account by its public UUID
func (r *AccountRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Account, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	return r.first(ctx, models.AccountFilter{UUID: &parsedUUID})
}

// ByEmail retrieves an account by email address regardless of type
func (r *AccountRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, err := r.first(ctx, models.AccountFilter{Email: &email})
	if err != nil {
		return nil, fmt.Errorf("failed to find account by email: %w", err)
	}
	return account, nil
}

// ByEmailAndType retrieves an account of the given type by email address
func (r *AccountRepositoryImpl) ByEmailAndType(ctx context.Context, email string, accountType models.AccountType) (*models.Account, error) {
	account, err := r.first(ctx, models.AccountFilter{Email: &email, AccountType: &accountType})
	if err != nil {
		return nil, fmt.Errorf("failed to find account by email and type: %w", err)
	}
	return account, nil
}

// ByEmailAndStatus retrieves an account in the given lifecycle status by email address
func (r *AccountRepositoryImpl) ByEmailAndStatus(ctx context.Context, email string, status models.AccountStatus) (*models.Account, error) {
	account, err := r.first(ctx, models.AccountFilter{Email: &email, AccountStatus: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to find account by email and status: %w", err)
	}
	return account, nil
}

// ByNIN retrieves an account by national identification number
func (r *AccountRepositoryImpl) ByNIN(ctx context.Context, nin string) (*models.Account, error) {
	account, err := r.first(ctx, models.AccountFilter{NIN: &nin})
	if err != nil {
		return nil, fmt.Errorf("failed to find account by NIN: %w", err)
	}
	return account, nil
}

// ByCACNumber retrieves an account by business registration number
func (r *AccountRepositoryImpl) ByCACNumber(ctx context.Context, cacNumber string) (*models.Account, error) {
	account, err := r.first(ctx, models.AccountFilter{CACNumber: &cacNumber})
	if err != nil {
		return nil, fmt.Errorf("failed to find account by CAC number: %w", err)
	}
	return account, nil
}

// ListPending retrieves accounts awaiting review, newest first
func (r *AccountRepositoryImpl) ListPending(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	status := models.AccountStatusPending
	accounts, err := r.ByFilter(ctx, models.AccountFilter{AccountStatus: &status}, "created_at DESC, id DESC", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending accounts: %w", err)
	}
	return accounts, nil
}

// Approve moves a pending account to approved and stores its activation code.
// It returns false when no pending account with that id exists.
func (r *AccountRepositoryImpl) Approve(ctx context.Context, id uint, activationCode string, activationExpires time.Time) (bool, error) {
	affected, err := r.updateWhere(ctx, map[string]any{
		"account_status":     models.AccountStatusApproved,
		"activation_code":    activationCode,
		"activation_expires": activationExpires,
	}, "id = ? AND account_status = ?", id, models.AccountStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to approve account %d: %w", id, err)
	}
	return affected > 0, nil
}

// Reject moves a pending account to rejected.
// It returns false when no pending account with that id exists.
func (r *AccountRepositoryImpl) Reject(ctx context.Context, id uint) (bool, error) {
	affected, err := r.updateWhere(ctx, map[string]any{
		"account_status": models.AccountStatusRejected,
	}, "id = ? AND account_status = ?", id, models.AccountStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to reject account %d: %w", id, err)
	}
	return affected > 0, nil
}

// MarkVerified flips is_verified on the first successful login and consumes the activation code.
// It only applies while activationCode is still the stored code, so a code verifies at most once.
func (r *AccountRepositoryImpl) MarkVerified(ctx context.Context, id uint, activationCode string, verifiedAt time.Time) (bool, error) {
	affected, err := r.updateWhere(ctx, map[string]any{
		"is_verified":     true,
		"verified_at":     verifiedAt,
		"activation_code": nil,
	}, "id = ? AND is_verified = ? AND activation_code = ?", id, false, activationCode)
	if err != nil {
		return false, fmt.Errorf("failed to mark account %d verified: %w", id, err)
	}
	return affected > 0, nil
}

// SetActivationCode overwrites the activation code of an approved account
func (r *AccountRepositoryImpl) SetActivationCode(ctx context.Context, id uint, activationCode string, activationExpires time.Time) error {
	_, err := r.updateWhere(ctx, map[string]any{
		"activation_code":    activationCode,
		"activation_expires": activationExpires,
	}, "id = ? AND account_status = ?", id, models.AccountStatusApproved)
	if err != nil {
		return fmt.Errorf("failed to set activation code for account %d: %w", id, err)
	}
	return nil
}

// SetResetCode stores a fresh password reset code
func (r *AccountRepositoryImpl) SetResetCode(ctx context.Context, id uint, resetCode string, resetExpires time.Time) error {
	_, err := r.updateWhere(ctx, map[string]any{
		"reset_code":    resetCode,
		"reset_expires": resetExpires,
	}, "id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to set reset code for account %d: %w", id, err)
	}
	return nil
}

// ResetPassword replaces the password hash and clears the reset code, but only
// while the given code is still stored and unexpired.
func (r *AccountRepositoryImpl) ResetPassword(ctx context.Context, id uint, resetCode string, now time.Time, passwordHash string) (bool, error) {
	affected, err := r.updateWhere(ctx, map[string]any{
		"password_hash": passwordHash,
		"reset_code":    nil,
		"reset_expires": nil,
	}, "id = ? AND reset_code = ? AND reset_expires > ?", id, resetCode, now)
	if err != nil {
		return false, fmt.Errorf("failed to reset password for account %d: %w", id, err)
	}
	return affected > 0, nil
}

// UpdateBusinessProfile applies the non-nil fields of update to a business account
func (r *AccountRepositoryImpl) UpdateBusinessProfile(ctx context.Context, id uint, update models.BusinessProfileUpdate) (bool, error) {
	updates := map[string]any{}
	if update.BusinessName != nil {
		updates["business_name"] = *update.BusinessName
	}
	if update.BusinessType != nil {
		updates["business_type"] = *update.BusinessType
	}
	if update.CACNumber != nil {
		updates["cac_number"] = *update.CACNumber
	}
	if update.BusinessLocation != nil {
		updates["business_location"] = *update.BusinessLocation
	}
	if update.BusinessPhone != nil {
		updates["business_phone"] = *update.BusinessPhone
	}
	if len(updates) == 0 {
		exists, err := r.Exists(ctx, models.AccountFilter{ID: &id, AccountType: utils.ToPtr(models.AccountTypeBusiness)})
		return exists, err
	}

	affected, err := r.updateWhere(ctx, updates, "id = ? AND account_type = ?", id, models.AccountTypeBusiness)
	if err != nil {
		return false, fmt.Errorf("failed to update business profile for account %d: %w", id, err)
	}
	return affected > 0, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *AccountRepositoryImpl) applyFilter(query *gorm.DB, filter models.AccountFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.AccountType != nil {
		query = query.Where("account_type = ?", *filter.AccountType)
	}
	if filter.AccountStatus != nil {
		query = query.Where("account_status = ?", *filter.AccountStatus)
	}
	if filter.NIN != nil {
		query = query.Where("nin_number = ?", *filter.NIN)
	}
	if filter.CACNumber != nil {
		query = query.Where("cac_number = ?", *filter.CACNumber)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves accounts based on filter criteria
func (r *AccountRepositoryImpl) ByFilter(ctx context.Context, filter models.AccountFilter, orderBy string, limit, offset int) ([]*models.Account, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Account{}), filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var accounts []*models.Account
	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}

// Count returns the number of accounts matching the filter
func (r *AccountRepositoryImpl) Count(ctx context.Context, filter models.AccountFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Account{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any account matching the filter exists
func (r *AccountRepositoryImpl) Exists(ctx context.Context, filter models.AccountFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
