package expense

import (
	"context"
	"database/sql"
	"errors"
	"time"

	expenseerrors "github.com/Ayabe1990/management-pro-project-sub001/internal/expense/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actorID string, req CreateExpenseRequest) (ExpenseResponse, error)
	GetAll(ctx context.Context, filter ListExpensesFilter) ([]ExpenseResponse, error)
	GetByID(ctx context.Context, id string) (ExpenseResponse, error)
	Update(ctx context.Context, id string, req UpdateExpenseRequest) (ExpenseResponse, error)
	Delete(ctx context.Context, id string) error
	MonthlySummary(ctx context.Context, month string) (MonthlySummaryResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateExpenseRequest) (ExpenseResponse, error) {
	recordedBy, err := uuid.Parse(actorID)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidActorID
	}
	if req.Amount < 0 {
		return ExpenseResponse{}, expenseerrors.ErrNegativeAmount
	}
	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exp := &Expense{
		ID:          uuid.New(),
		Concept:     req.Concept,
		BillerName:  req.BillerName,
		Category:    req.Category,
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
		Notes:       req.Notes,
		RecordedBy:  recordedBy,
	}

	if err := qtx.Create(ctx, exp); err != nil {
		return ExpenseResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ExpenseResponse{}, err
	}

	return mapToResponse(*exp), nil
}

func (s *service) GetAll(ctx context.Context, filter ListExpensesFilter) ([]ExpenseResponse, error) {
	if filter.Month != "" {
		if _, err := time.Parse("2006-01", filter.Month); err != nil {
			return nil, expenseerrors.ErrInvalidMonthFormat
		}
	}

	expenses, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]ExpenseResponse, len(expenses))
	for i, exp := range expenses {
		resp[i] = mapToResponse(exp)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ExpenseResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseID
	}

	exp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExpenseResponse{}, expenseerrors.ErrExpenseNotFound
		}
		return ExpenseResponse{}, err
	}

	return mapToResponse(*exp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateExpenseRequest) (ExpenseResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseID
	}
	if req.Amount < 0 {
		return ExpenseResponse{}, expenseerrors.ErrNegativeAmount
	}
	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exp, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExpenseResponse{}, expenseerrors.ErrExpenseNotFound
		}
		return ExpenseResponse{}, err
	}

	exp.Concept = req.Concept
	exp.BillerName = req.BillerName
	exp.Category = req.Category
	exp.Amount = req.Amount
	exp.ExpenseDate = expenseDate
	exp.Notes = req.Notes

	if err := qtx.Update(ctx, exp); err != nil {
		return ExpenseResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ExpenseResponse{}, err
	}

	return mapToResponse(*exp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return expenseerrors.ErrInvalidExpenseID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) MonthlySummary(ctx context.Context, month string) (MonthlySummaryResponse, error) {
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return MonthlySummaryResponse{}, expenseerrors.ErrInvalidMonthFormat
	}

	totals, err := s.repo.SumByCategory(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return MonthlySummaryResponse{}, err
	}

	summary := MonthlySummaryResponse{Month: month, Categories: totals}
	for _, t := range totals {
		summary.Total += t.Total
	}
	return summary, nil
}

func mapToResponse(exp Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          exp.ID.String(),
		Concept:     exp.Concept,
		BillerName:  exp.BillerName,
		Category:    exp.Category,
		Amount:      exp.Amount,
		ExpenseDate: exp.ExpenseDate.Format("2006-01-02"),
		Notes:       exp.Notes,
		RecordedBy:  exp.RecordedBy.String(),
		CreatedAt:   exp.CreatedAt.Format(time.RFC3339),
	}
}
