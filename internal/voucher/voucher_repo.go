package voucher

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *Voucher) error
	FindAll(ctx context.Context) ([]Voucher, error)
	FindByID(ctx context.Context, id string) (*Voucher, error)
	FindByCode(ctx context.Context, code string) (*Voucher, error)
	Update(ctx context.Context, v *Voucher) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, v *Voucher) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Voucher, error) {
	var vouchers []Voucher
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&vouchers).Error
	return vouchers, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Voucher, error) {
	var v Voucher
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Voucher, error) {
	var v Voucher
	err := r.db.WithContext(ctx).First(&v, "code = ?", code).Error
	return &v, err
}

func (r *repository) Update(ctx context.Context, v *Voucher) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Voucher{}, "id = ?", id).Error
}
