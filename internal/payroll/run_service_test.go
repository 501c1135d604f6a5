package payroll_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/employee"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/messaging/kafka"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/overtime"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/payroll"
	payrollerrors "github.com/Ayabe1990/management-pro-project-sub001/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

type fakeRunRepository struct {
	withTxFn                 func(tx *sql.Tx) payroll.RunRepository
	createFn                 func(ctx context.Context, run *payroll.PayrollRun) error
	findAllFn                func(ctx context.Context) ([]payroll.PayrollRun, error)
	findByIDFn               func(ctx context.Context, id string) (*payroll.PayrollRun, error)
	findPayslipFn            func(ctx context.Context, runID, payslipID string) (*payroll.PayslipRecord, error)
	findPayslipsByEmployeeFn func(ctx context.Context, employeeID string) ([]payroll.PayslipRecord, error)
	countOverlappingFn       func(ctx context.Context, cutoffStart, cutoffEnd time.Time) (int64, error)
}

func (f *fakeRunRepository) WithTx(tx *sql.Tx) payroll.RunRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRunRepository) Create(ctx context.Context, run *payroll.PayrollRun) error {
	if f.createFn != nil {
		return f.createFn(ctx, run)
	}
	return nil
}

func (f *fakeRunRepository) FindAll(ctx context.Context) ([]payroll.PayrollRun, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeRunRepository) FindByID(ctx context.Context, id string) (*payroll.PayrollRun, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRunRepository) FindPayslip(ctx context.Context, runID, payslipID string) (*payroll.PayslipRecord, error) {
	if f.findPayslipFn != nil {
		return f.findPayslipFn(ctx, runID, payslipID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRunRepository) FindPayslipsByEmployee(ctx context.Context, employeeID string) ([]payroll.PayslipRecord, error) {
	if f.findPayslipsByEmployeeFn != nil {
		return f.findPayslipsByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeRunRepository) CountOverlapping(ctx context.Context, cutoffStart, cutoffEnd time.Time) (int64, error) {
	if f.countOverlappingFn != nil {
		return f.countOverlappingFn(ctx, cutoffStart, cutoffEnd)
	}
	return 0, nil
}

type fakeEmployeeRepository struct {
	findAllFn func(ctx context.Context) ([]employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}
func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) ReplaceAllowances(ctx context.Context, employeeID string, allowances []employee.Allowance) error {
	return nil
}
func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeOvertimeRepository struct {
	findApprovedInWindowFn func(ctx context.Context, start, end time.Time) ([]overtime.Request, error)
}

func (f *fakeOvertimeRepository) WithTx(tx *sql.Tx) overtime.Repository { return f }
func (f *fakeOvertimeRepository) Create(ctx context.Context, req *overtime.Request) error {
	return nil
}
func (f *fakeOvertimeRepository) FindAll(ctx context.Context, filter overtime.QueryFilter) ([]overtime.Request, error) {
	return nil, nil
}
func (f *fakeOvertimeRepository) FindByID(ctx context.Context, id string) (*overtime.Request, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeOvertimeRepository) FindApprovedInWindow(ctx context.Context, start, end time.Time) ([]overtime.Request, error) {
	if f.findApprovedInWindowFn != nil {
		return f.findApprovedInWindowFn(ctx, start, end)
	}
	return nil, nil
}
func (f *fakeOvertimeRepository) Update(ctx context.Context, req *overtime.Request) error {
	return nil
}
func (f *fakeOvertimeRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}
func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type runServiceDeps struct {
	db           *sql.DB
	sqlMock      sqlmock.Sqlmock
	runRepo      *fakeRunRepository
	employeeRepo *fakeEmployeeRepository
	overtimeRepo *fakeOvertimeRepository
	service      payroll.Service
}

var fixedNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func setupRunServiceTest(t *testing.T, opts ...payroll.ServiceOption) *runServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	runRepo := &fakeRunRepository{}
	employeeRepo := &fakeEmployeeRepository{}
	overtimeRepo := &fakeOvertimeRepository{}

	opts = append([]payroll.ServiceOption{
		payroll.WithClock(func() time.Time { return fixedNow }),
	}, opts...)

	svc := payroll.NewService(db, runRepo, employeeRepo, overtimeRepo, payroll.DefaultSettings(), opts...)

	return &runServiceDeps{
		db:           db,
		sqlMock:      sqlMock,
		runRepo:      runRepo,
		employeeRepo: employeeRepo,
		overtimeRepo: overtimeRepo,
		service:      svc,
	}
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

func rosterMember(name string, salaryCentavos int64) employee.Employee {
	return employee.Employee{
		ID:                 uuid.New(),
		FullName:           name,
		Email:              name + "@example.com",
		Role:               "STAFF",
		MonthlyBasicSalary: salaryCentavos,
	}
}

func TestRunService_Execute(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	req := payroll.ExecuteRunRequest{CutoffStart: "2026-03-01", CutoffEnd: "2026-03-31"}

	t.Run("one payslip per eligible employee, roster order kept", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		first := rosterMember("ana", 2000000)
		second := rosterMember("ben", 1760000)
		deps.employeeRepo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{first, second}, nil
		}

		var created *payroll.PayrollRun
		deps.runRepo.createFn = func(ctx context.Context, run *payroll.PayrollRun) error {
			created = run
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Execute(ctx, actorID, req)
		assert.NoError(t, err)
		assert.Len(t, resp.Payslips, 2)
		assert.Equal(t, first.FullName, resp.Payslips[0].EmployeeName)
		assert.Equal(t, second.FullName, resp.Payslips[1].EmployeeName)
		assert.Equal(t, "2026-03-01", resp.CutoffStart)
		assert.Equal(t, fixedNow.Format(time.RFC3339), resp.DateRun)

		assert.NotNil(t, created)
		for i, slip := range created.Payslips {
			assert.Equal(t, created.ID, slip.RunID, "payslip must carry its run id")
			assert.Equal(t, i, slip.Position)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("zero salary employees are skipped", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		paid := rosterMember("ana", 2000000)
		unpaid := rosterMember("ghost", 0)
		deps.employeeRepo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{unpaid, paid}, nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Execute(ctx, actorID, req)
		assert.NoError(t, err)
		assert.Len(t, resp.Payslips, 1)
		assert.Equal(t, paid.FullName, resp.Payslips[0].EmployeeName)
	})

	t.Run("approved overtime inside the window is paid", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		member := rosterMember("carla", 1760000)
		deps.employeeRepo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{member}, nil
		}
		deps.overtimeRepo.findApprovedInWindowFn = func(ctx context.Context, start, end time.Time) ([]overtime.Request, error) {
			return []overtime.Request{
				{
					ID:               uuid.New(),
					EmployeeID:       member.ID,
					Date:             time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
					RequestedMinutes: 120,
					Status:           overtime.StatusApproved,
				},
			}, nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Execute(ctx, actorID, req)
		assert.NoError(t, err)
		assert.Len(t, resp.Payslips, 1)
		// 17600 / 22 / 8 * 2h * 1.25 = 250.00 pesos, stored as centavos
		assert.Equal(t, int64(25000), resp.Payslips[0].OvertimePay)
	})

	t.Run("empty roster still produces a run", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Execute(ctx, actorID, req)
		assert.NoError(t, err)
		assert.Empty(t, resp.Payslips)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("two executions of the same window are independent runs", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		deps.employeeRepo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{rosterMember("ana", 2000000)}, nil
		}

		expectTx(t, deps.sqlMock, true)
		first, err := deps.service.Execute(ctx, actorID, req)
		assert.NoError(t, err)

		expectTx(t, deps.sqlMock, true)
		second, err := deps.service.Execute(ctx, actorID, req)
		assert.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.NotEqual(t, first.Payslips[0].ID, second.Payslips[0].ID)
	})

	t.Run("invalid actor id", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Execute(ctx, "not-a-uuid", req)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidActorID)
	})

	t.Run("invalid date format", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Execute(ctx, actorID, payroll.ExecuteRunRequest{
			CutoffStart: "03/01/2026",
			CutoffEnd:   "2026-03-31",
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidDateFormat)
	})

	t.Run("start after end", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Execute(ctx, actorID, payroll.ExecuteRunRequest{
			CutoffStart: "2026-03-31",
			CutoffEnd:   "2026-03-01",
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidCutoffWindow)
	})

	t.Run("persistence failure surfaces and rolls back", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		deps.runRepo.createFn = func(ctx context.Context, run *payroll.PayrollRun) error {
			return errors.New("disk full")
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Execute(ctx, actorID, req)
		assert.EqualError(t, err, "disk full")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("outbox failure rolls the run back", func(t *testing.T) {
		outbox := &fakeOutboxRepository{
			createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
				return errors.New("outbox unavailable")
			},
		}
		deps := setupRunServiceTest(t, payroll.WithOutbox(outbox))
		defer deps.db.Close()

		deps.employeeRepo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{rosterMember("ana", 2000000)}, nil
		}

		var createdInTx bool
		deps.runRepo.createFn = func(ctx context.Context, run *payroll.PayrollRun) error {
			createdInTx = true
			return nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Execute(ctx, actorID, req)
		assert.EqualError(t, err, "outbox unavailable")
		assert.True(t, createdInTx, "run insert must happen inside the rolled back transaction")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("overlap check failure is logged, run still executes", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		restore := zap.ReplaceGlobals(zap.New(core))
		defer restore()

		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		deps.runRepo.countOverlappingFn = func(ctx context.Context, start, end time.Time) (int64, error) {
			return 0, errors.New("count timeout")
		}

		expectTx(t, deps.sqlMock, true)

		_, err := deps.service.Execute(ctx, actorID, req)
		assert.NoError(t, err)
		assert.Equal(t, 1, logs.FilterMessage("count overlapping payroll runs failed").Len())
	})
}

func TestRunService_GetRunByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetRunByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, payrollerrors.ErrRunNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetRunByID(ctx, "nope")
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidRunID)
	})

	t.Run("payslips returned in stored order", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		runID := uuid.New()
		deps.runRepo.findByIDFn = func(ctx context.Context, id string) (*payroll.PayrollRun, error) {
			return &payroll.PayrollRun{
				ID:          runID,
				CutoffStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				CutoffEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
				DateRun:     fixedNow,
				RunBy:       uuid.New(),
				Payslips: []payroll.PayslipRecord{
					{ID: uuid.New(), RunID: runID, EmployeeName: "ana", Position: 0, NetPay: 1850000},
					{ID: uuid.New(), RunID: runID, EmployeeName: "ben", Position: 1, NetPay: 1649375},
				},
			}, nil
		}

		resp, err := deps.service.GetRunByID(ctx, runID.String())
		assert.NoError(t, err)
		assert.Len(t, resp.Payslips, 2)
		assert.Equal(t, "ana", resp.Payslips[0].EmployeeName)
		assert.Equal(t, "ben", resp.Payslips[1].EmployeeName)
	})
}

func TestRunService_GetAllRuns(t *testing.T) {
	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	newer := payroll.PayrollRun{
		ID:      uuid.New(),
		DateRun: fixedNow,
		RunBy:   uuid.New(),
		Payslips: []payroll.PayslipRecord{
			{NetPay: 1850000},
			{NetPay: 1500000},
		},
	}
	older := payroll.PayrollRun{ID: uuid.New(), DateRun: fixedNow.Add(-24 * time.Hour), RunBy: uuid.New()}

	deps.runRepo.findAllFn = func(ctx context.Context) ([]payroll.PayrollRun, error) {
		return []payroll.PayrollRun{newer, older}, nil
	}

	resp, err := deps.service.GetAllRuns(context.Background())
	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, newer.ID.String(), resp[0].ID)
	assert.Equal(t, 2, resp[0].PayslipCount)
	assert.Equal(t, int64(3350000), resp[0].TotalNetPay)
	assert.Equal(t, 0, resp[1].PayslipCount)
}

func TestRunService_GetEmployeePayslips(t *testing.T) {
	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetEmployeePayslips(context.Background(), "bad-id")
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidEmployeeID)

	employeeID := uuid.New()
	deps.runRepo.findPayslipsByEmployeeFn = func(ctx context.Context, id string) ([]payroll.PayslipRecord, error) {
		assert.Equal(t, employeeID.String(), id)
		return []payroll.PayslipRecord{
			{ID: uuid.New(), EmployeeID: employeeID, NetPay: 1850000},
		}, nil
	}

	resp, err := deps.service.GetEmployeePayslips(context.Background(), employeeID.String())
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, int64(1850000), resp[0].NetPay)
}

func TestRunService_GetPayslipPDF(t *testing.T) {
	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	slipID := uuid.New()
	runID := uuid.New()
	deps.runRepo.findPayslipFn = func(ctx context.Context, rid, pid string) (*payroll.PayslipRecord, error) {
		return &payroll.PayslipRecord{
			ID:           slipID,
			RunID:        runID,
			EmployeeName: "ana",
			CutoffStart:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			CutoffEnd:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			GrossPay:     2000000,
			NetPay:       1850000,
		}, nil
	}

	pdf, filename, err := deps.service.GetPayslipPDF(context.Background(), runID.String(), slipID.String())
	assert.NoError(t, err)
	assert.Contains(t, filename, slipID.String())
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
