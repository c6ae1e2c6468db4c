package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/social-admin/models"
	"gorm.io/gorm"
)

// AdminLogRepositoryImpl implements AdminLogRepository interface
type AdminLogRepositoryImpl struct {
	*BaseRepository[models.AdminLog, models.AdminLogFilter]
}

// NewAdminLogRepository creates a new admin log repository
func NewAdminLogRepository(db *gorm.DB) AdminLogRepository {
	return &AdminLogRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AdminLog, models.AdminLogFilter](db),
	}
}

// ListByAdmin retrieves actions taken by one admin with pagination
func (r *AdminLogRepositoryImpl) ListByAdmin(ctx context.Context, adminID uint, limit, offset int) ([]*models.AdminLog, error) {
	logs, err := r.ByFilter(ctx, models.AdminLogFilter{AdminID: &adminID}, "created_at DESC", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin logs by admin: %w", err)
	}
	return logs, nil
}

// ListByTargetAccount retrieves actions taken against one account with pagination
func (r *AdminLogRepositoryImpl) ListByTargetAccount(ctx context.Context, accountID uint, limit, offset int) ([]*models.AdminLog, error) {
	logs, err := r.ByFilter(ctx, models.AdminLogFilter{TargetAccountID: &accountID}, "created_at DESC", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin logs by account: %w", err)
	}
	return logs, nil
}

func (r *AdminLogRepositoryImpl) applyFilter(query *gorm.DB, filter models.AdminLogFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.AdminID != nil {
		query = query.Where("admin_id = ?", *filter.AdminID)
	}
	if filter.ActionType != nil {
		query = query.Where("action_type = ?", *filter.ActionType)
	}
	if filter.TargetAccountID != nil {
		query = query.Where("target_account_id = ?", *filter.TargetAccountID)
	}
	if filter.RequestID != nil {
		query = query.Where("request_id = ?", *filter.RequestID)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves admin logs based on filter criteria
func (r *AdminLogRepositoryImpl) ByFilter(ctx context.Context, filter models.AdminLogFilter, orderBy string, limit, offset int) ([]*models.AdminLog, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.AdminLog{}), filter)

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

	var logs []*models.AdminLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}

// Count returns the number of admin logs matching the filter
func (r *AdminLogRepositoryImpl) Count(ctx context.Context, filter models.AdminLogFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.AdminLog{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any admin log matching the filter exists
func (r *AdminLogRepositoryImpl) Exists(ctx context.Context, filter models.AdminLogFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
