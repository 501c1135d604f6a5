package payroll

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type RunRepository interface {
	WithTx(tx *sql.Tx) RunRepository
	Create(ctx context.Context, run *PayrollRun) error
	FindAll(ctx context.Context) ([]PayrollRun, error)
	FindByID(ctx context.Context, id string) (*PayrollRun, error)
	FindPayslip(ctx context.Context, runID, payslipID string) (*PayslipRecord, error)
	FindPayslipsByEmployee(ctx context.Context, employeeID string) ([]PayslipRecord, error)
	CountOverlapping(ctx context.Context, cutoffStart, cutoffEnd time.Time) (int64, error)
}

type runRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) WithTx(tx *sql.Tx) RunRepository {
	return &runRepository{db: r.db, tx: tx}
}

// conn binds the statement to the caller's transaction when one is
// present, so the run and its payslips commit or roll back with
// everything else written in it.
func (r *runRepository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	session := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	session.Statement.ConnPool = r.tx
	return session
}

func (r *runRepository) Create(ctx context.Context, run *PayrollRun) error {
	return r.conn(ctx).Create(run).Error
}

// FindAll returns the run log newest-first, the only order reporting
// views ever see it in.
func (r *runRepository) FindAll(ctx context.Context) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.conn(ctx).
		Preload("Payslips", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("date_run DESC").
		Find(&runs).Error
	return runs, err
}

func (r *runRepository) FindByID(ctx context.Context, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.conn(ctx).
		Preload("Payslips", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&run, "id = ?", id).Error
	return &run, err
}

func (r *runRepository) FindPayslip(ctx context.Context, runID, payslipID string) (*PayslipRecord, error) {
	var slip PayslipRecord
	err := r.conn(ctx).
		First(&slip, "id = ? AND run_id = ?", payslipID, runID).Error
	return &slip, err
}

func (r *runRepository) FindPayslipsByEmployee(ctx context.Context, employeeID string) ([]PayslipRecord, error) {
	var slips []PayslipRecord
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("cutoff_start DESC, created_at DESC").
		Find(&slips).Error
	return slips, err
}

func (r *runRepository) CountOverlapping(ctx context.Context, cutoffStart, cutoffEnd time.Time) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&PayrollRun{}).
		Where("NOT (cutoff_end < ? OR cutoff_start > ?)", cutoffStart, cutoffEnd).
		Count(&count).Error
	return count, err
}
