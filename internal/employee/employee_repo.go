package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, emp *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, emp *Employee) error
	ReplaceAllowances(ctx context.Context, employeeID string, allowances []Allowance) error
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

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

// FindAll returns the roster in hire order, which is the order payroll
// runs preserve in their payslip batch.
func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Preload("Allowances").
		Order("created_at ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Preload("Allowances").
		First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Omit("Allowances").Save(emp).Error
}

func (r *repository) ReplaceAllowances(ctx context.Context, employeeID string, allowances []Allowance) error {
	if err := r.db.WithContext(ctx).
		Delete(&Allowance{}, "employee_id = ?", employeeID).Error; err != nil {
		return err
	}
	if len(allowances) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&allowances).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
