package expense_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/expense"
	expenseerrors "github.com/Ayabe1990/management-pro-project-sub001/internal/expense/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn        func(tx *sql.Tx) expense.Repository
	createFn        func(ctx context.Context, exp *expense.Expense) error
	findAllFn       func(ctx context.Context, filter expense.ListExpensesFilter) ([]expense.Expense, error)
	findByIDFn      func(ctx context.Context, id string) (*expense.Expense, error)
	updateFn        func(ctx context.Context, exp *expense.Expense) error
	deleteFn        func(ctx context.Context, id string) error
	sumByCategoryFn func(ctx context.Context, from, to time.Time) ([]expense.CategoryTotal, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) expense.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRepo) Create(ctx context.Context, exp *expense.Expense) error {
	if f.createFn != nil {
		return f.createFn(ctx, exp)
	}
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context, filter expense.ListExpensesFilter) ([]expense.Expense, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*expense.Expense, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Update(ctx context.Context, exp *expense.Expense) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, exp)
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeRepo) SumByCategory(ctx context.Context, from, to time.Time) ([]expense.CategoryTotal, error) {
	if f.sumByCategoryFn != nil {
		return f.sumByCategoryFn(ctx, from, to)
	}
	return nil, nil
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *fakeRepo
	service expense.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeRepo{}
	svc := expense.NewService(db, repo)

	return &serviceDeps{db: db, sqlMock: sqlMock, repo: repo, service: svc}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestExpenseService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, exp *expense.Expense) error {
			assert.Equal(t, "Meralco bill", exp.Concept)
			assert.Equal(t, "Meralco", exp.BillerName)
			assert.Equal(t, int64(1250075), exp.Amount)
			assert.Equal(t, "2026-03-15", exp.ExpenseDate.Format("2006-01-02"))
			return nil
		}

		resp, err := deps.service.Create(ctx, actorID, expense.CreateExpenseRequest{
			Concept:     "Meralco bill",
			BillerName:  "Meralco",
			Category:    "utilities",
			Amount:      1250075,
			ExpenseDate: "2026-03-15",
		})
		assert.NoError(t, err)
		assert.Equal(t, "utilities", resp.Category)
		assert.Equal(t, actorID, resp.RecordedBy)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actorID, expense.CreateExpenseRequest{
			Concept:     "x",
			Category:    "misc",
			Amount:      -1,
			ExpenseDate: "2026-03-15",
		})
		assert.ErrorIs(t, err, expenseerrors.ErrNegativeAmount)
	})

	t.Run("bad date rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actorID, expense.CreateExpenseRequest{
			Concept:     "x",
			Category:    "misc",
			Amount:      100,
			ExpenseDate: "15/03/2026",
		})
		assert.ErrorIs(t, err, expenseerrors.ErrInvalidDateFormat)
	})
}

func TestExpenseService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetAll(context.Background(), expense.ListExpensesFilter{Month: "March 2026"})
	assert.ErrorIs(t, err, expenseerrors.ErrInvalidMonthFormat)

	deps.repo.findAllFn = func(ctx context.Context, filter expense.ListExpensesFilter) ([]expense.Expense, error) {
		assert.Equal(t, "utilities", filter.Category)
		return []expense.Expense{
			{ID: uuid.New(), Concept: "Meralco bill", Category: "utilities", Amount: 1250075, ExpenseDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), RecordedBy: uuid.New()},
		}, nil
	}

	resp, err := deps.service.GetAll(context.Background(), expense.ListExpensesFilter{Category: "utilities"})
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "2026-03-15", resp[0].ExpenseDate)
}

func TestExpenseService_Update(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	id := uuid.New()
	deps.repo.findByIDFn = func(ctx context.Context, got string) (*expense.Expense, error) {
		return &expense.Expense{
			ID:          id,
			Concept:     "old",
			Category:    "misc",
			Amount:      100,
			ExpenseDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			RecordedBy:  uuid.New(),
		}, nil
	}

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.Update(context.Background(), id.String(), expense.UpdateExpenseRequest{
		Concept:     "new concept",
		Category:    "supplies",
		Amount:      200,
		ExpenseDate: "2026-03-20",
	})
	assert.NoError(t, err)
	assert.Equal(t, "new concept", resp.Concept)
	assert.Equal(t, "supplies", resp.Category)
	assert.Equal(t, "2026-03-20", resp.ExpenseDate)
}

func TestExpenseService_MonthlySummary(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.MonthlySummary(context.Background(), "bad")
	assert.ErrorIs(t, err, expenseerrors.ErrInvalidMonthFormat)

	deps.repo.sumByCategoryFn = func(ctx context.Context, from, to time.Time) ([]expense.CategoryTotal, error) {
		assert.Equal(t, "2026-03-01", from.Format("2006-01-02"))
		assert.Equal(t, "2026-04-01", to.Format("2006-01-02"))
		return []expense.CategoryTotal{
			{Category: "utilities", Total: 1250075, Count: 2},
			{Category: "supplies", Total: 50000, Count: 1},
		}, nil
	}

	resp, err := deps.service.MonthlySummary(context.Background(), "2026-03")
	assert.NoError(t, err)
	assert.Equal(t, int64(1300075), resp.Total)
	assert.Len(t, resp.Categories, 2)
}

func TestExpenseService_Delete(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	assert.ErrorIs(t, deps.service.Delete(context.Background(), "nope"), expenseerrors.ErrInvalidExpenseID)

	expectTx(t, deps.sqlMock, true)
	assert.NoError(t, deps.service.Delete(context.Background(), uuid.New().String()))
}
