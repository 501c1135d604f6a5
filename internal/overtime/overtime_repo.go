package overtime

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type QueryFilter struct {
	EmployeeID *string
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *Request) error
	FindAll(ctx context.Context, filter QueryFilter) ([]Request, error)
	FindByID(ctx context.Context, id string) (*Request, error)
	// FindApprovedInWindow loads every approved request whose date falls
	// inside the inclusive window, for all employees at once.
	FindApprovedInWindow(ctx context.Context, start, end time.Time) ([]Request, error)
	Update(ctx context.Context, req *Request) error
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

func (r *repository) Create(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindAll(ctx context.Context, filter QueryFilter) ([]Request, error) {
	db := r.db.WithContext(ctx).Model(&Request{})

	if filter.EmployeeID != nil {
		db = db.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		db = db.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		db = db.Where("date <= ?", *filter.DateTo)
	}

	var requests []Request
	err := db.Order("date DESC, created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindApprovedInWindow(ctx context.Context, start, end time.Time) ([]Request, error) {
	var requests []Request
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusApproved).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) Update(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Request{}, "id = ?", id).Error
}
