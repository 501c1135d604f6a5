package auth

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*UserAccount, error)
	GetByID(ctx context.Context, id string) (*UserAccount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*UserAccount, error) {
	var user UserAccount
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	return &user, err
}

func (r *repository) GetByID(ctx context.Context, id string) (*UserAccount, error) {
	var user UserAccount
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return &user, err
}
