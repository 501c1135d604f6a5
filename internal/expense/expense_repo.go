package expense

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, exp *Expense) error
	FindAll(ctx context.Context, filter ListExpensesFilter) ([]Expense, error)
	FindByID(ctx context.Context, id string) (*Expense, error)
	Update(ctx context.Context, exp *Expense) error
	Delete(ctx context.Context, id string) error
	SumByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error)
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

func (r *repository) Create(ctx context.Context, exp *Expense) error {
	return r.db.WithContext(ctx).Create(exp).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListExpensesFilter) ([]Expense, error) {
	q := r.db.WithContext(ctx).Model(&Expense{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Month != "" {
		from, _ := time.Parse("2006-01", filter.Month)
		q = q.Where("expense_date >= ? AND expense_date < ?", from, from.AddDate(0, 1, 0))
	}

	var expenses []Expense
	err := q.Order("expense_date DESC, created_at DESC").Find(&expenses).Error
	return expenses, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Expense, error) {
	var exp Expense
	err := r.db.WithContext(ctx).First(&exp, "id = ?", id).Error
	return &exp, err
}

func (r *repository) Update(ctx context.Context, exp *Expense) error {
	return r.db.WithContext(ctx).Save(exp).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Expense{}, "id = ?", id).Error
}

func (r *repository) SumByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := r.db.WithContext(ctx).
		Model(&Expense{}).
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Where("expense_date >= ? AND expense_date < ?", from, to).
		Group("category").
		Order("total DESC").
		Scan(&totals).Error
	return totals, err
}
