package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/social-admin/models"
	"gorm.io/gorm"
)

// AdminRepositoryImpl implements AdminRepository interface
type AdminRepositoryImpl struct {
	*BaseRepository[models.Admin, struct{}]
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &AdminRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Admin, struct{}](db),
	}
}

// ByUsername retrieves an admin by username
func (r *AdminRepositoryImpl) ByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.getDB(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find admin %q: %w", username, err)
	}
	return &admin, nil
}

func (r *AdminRepositoryImpl) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	if _, err := r.updateWhere(ctx, map[string]any{"last_login_at": at}, "id = ?", id); err != nil {
		return fmt.Errorf("failed to update admin last login: %w", err)
	}
	return nil
}
