package repository

import (
	"context"
	"time"

	"github.com/amirphl/social-admin/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// Transactor runs fn inside one atomic unit. Repositories called with the
// context passed to fn take part in the same transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}

// AccountRepository defines operations for accounts.
// Conditional writes report whether a row matched so callers can detect lost races.
type AccountRepository interface {
	Repository[models.Account, models.AccountFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Account, error)
	ByEmail(ctx context.Context, email string) (*models.Account, error)
	ByEmailAndType(ctx context.Context, email string, accountType models.AccountType) (*models.Account, error)
	ByEmailAndStatus(ctx context.Context, email string, status models.AccountStatus) (*models.Account, error)
	ByNIN(ctx context.Context, nin string) (*models.Account, error)
	ByCACNumber(ctx context.Context, cacNumber string) (*models.Account, error)
	ListPending(ctx context.Context, limit, offset int) ([]*models.Account, error)

	Approve(ctx context.Context, id uint, activationCode string, activationExpires time.Time) (bool, error)
	Reject(ctx context.Context, id uint) (bool, error)
	MarkVerified(ctx context.Context, id uint, activationCode string, verifiedAt time.Time) (bool, error)
	SetActivationCode(ctx context.Context, id uint, activationCode string, activationExpires time.Time) error
	SetResetCode(ctx context.Context, id uint, resetCode string, resetExpires time.Time) error
	ResetPassword(ctx context.Context, id uint, resetCode string, now time.Time, passwordHash string) (bool, error)
	UpdateBusinessProfile(ctx context.Context, id uint, update models.BusinessProfileUpdate) (bool, error)
}

// AdminRepository defines operations for admins
type AdminRepository interface {
	ByID(ctx context.Context, id uint) (*models.Admin, error)
	Save(ctx context.Context, admin *models.Admin) error
	ByUsername(ctx context.Context, username string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
}

// AdminLogRepository defines operations for the admin action trail
type AdminLogRepository interface {
	Repository[models.AdminLog, models.AdminLogFilter]
	ListByAdmin(ctx context.Context, adminID uint, limit, offset int) ([]*models.AdminLog, error)
	ListByTargetAccount(ctx context.Context, accountID uint, limit, offset int) ([]*models.AdminLog, error)
}
