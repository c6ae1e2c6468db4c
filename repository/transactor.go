package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormTransactor runs units of work in a gorm transaction carried through the context
type GormTransactor struct {
	db *gorm.DB
}

func NewGormTransactor(db *gorm.DB) Transactor {
	return &GormTransactor{db: db}
}

func (t *GormTransactor) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return WithTransaction(ctx, t.db, fn)
}
