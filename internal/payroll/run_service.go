package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/employee"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/events"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/messaging/kafka"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/overtime"
	payrollerrors "github.com/Ayabe1990/management-pro-project-sub001/internal/payroll/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Execute(ctx context.Context, actorID string, req ExecuteRunRequest) (RunResponse, error)
	GetAllRuns(ctx context.Context) ([]RunSummaryResponse, error)
	GetRunByID(ctx context.Context, id string) (RunResponse, error)
	GetEmployeePayslips(ctx context.Context, employeeID string) ([]PayslipResponse, error)
	GetPayslipPDF(ctx context.Context, runID, payslipID string) ([]byte, string, error)
	GetSettings() SettingsResponse
}

type service struct {
	db           *sql.DB
	repo         RunRepository
	employeeRepo employee.Repository
	overtimeRepo overtime.Repository
	outbox       kafka.OutboxRepository
	settings     Settings

	now   func() time.Time
	newID func() uuid.UUID
}

type ServiceOption func(*service)

// WithClock replaces the wall clock, so run timestamps are reproducible
// in tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) { s.now = now }
}

// WithIDGenerator replaces the run/payslip id source.
func WithIDGenerator(newID func() uuid.UUID) ServiceOption {
	return func(s *service) { s.newID = newID }
}

func WithOutbox(outbox kafka.OutboxRepository) ServiceOption {
	return func(s *service) { s.outbox = outbox }
}

func NewService(
	db *sql.DB,
	repo RunRepository,
	employeeRepo employee.Repository,
	overtimeRepo overtime.Repository,
	settings Settings,
	opts ...ServiceOption,
) Service {
	s := &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		overtimeRepo: overtimeRepo,
		settings:     settings,
		now:          time.Now,
		newID:        uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute batches one payslip per eligible roster member into a new run
// and appends it to the run log. Employees without a positive basic
// salary are skipped, not failed; an empty batch is still a valid run.
// Re-running the same window is allowed and produces an independent run.
func (s *service) Execute(ctx context.Context, actorID string, req ExecuteRunRequest) (RunResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidActorID
	}
	cutoffStart, err := parseDate(req.CutoffStart)
	if err != nil {
		return RunResponse{}, err
	}
	cutoffEnd, err := parseDate(req.CutoffEnd)
	if err != nil {
		return RunResponse{}, err
	}
	if cutoffStart.After(cutoffEnd) {
		return RunResponse{}, payrollerrors.ErrInvalidCutoffWindow
	}

	roster, err := s.employeeRepo.FindAll(ctx)
	if err != nil {
		return RunResponse{}, err
	}
	approvedOvertime, err := s.overtimeRepo.FindApprovedInWindow(ctx, cutoffStart, cutoffEnd)
	if err != nil {
		return RunResponse{}, err
	}

	runID := s.newID()
	run := &PayrollRun{
		ID:          runID,
		CutoffStart: cutoffStart,
		CutoffEnd:   cutoffEnd,
		DateRun:     s.now().UTC(),
		RunBy:       actorUUID,
	}

	for _, member := range roster {
		if member.MonthlyBasicSalary <= 0 {
			continue // not eligible, silently skipped
		}

		minutes := overtime.ApprovedMinutes(approvedOvertime, member.ID, cutoffStart, cutoffEnd)
		slip := Compute(toEmployeeInput(member), cutoffStart, cutoffEnd, minutes, s.settings)
		run.Payslips = append(run.Payslips, newPayslipRecord(runID, s.newID(), len(run.Payslips), slip))
	}

	// The overlap check is advisory only; a failed count must not block
	// the run, but it must leave a trace.
	overlapping, err := s.repo.CountOverlapping(ctx, cutoffStart, cutoffEnd)
	switch {
	case err != nil:
		zap.L().Error("count overlapping payroll runs failed",
			zap.String("run_id", runID.String()),
			zap.String("cutoff_start", req.CutoffStart),
			zap.String("cutoff_end", req.CutoffEnd),
			zap.Error(err),
		)
	case overlapping > 0:
		zap.L().Warn("payroll run overlaps an existing cutoff window",
			zap.String("run_id", runID.String()),
			zap.String("cutoff_start", req.CutoffStart),
			zap.String("cutoff_end", req.CutoffEnd),
			zap.Int64("overlapping_runs", overlapping),
		)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, run); err != nil {
		return RunResponse{}, err
	}

	if s.outbox != nil {
		if err := s.queueExecutedEvent(ctx, tx, run, actorID); err != nil {
			return RunResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}

	return mapRunToResponse(*run), nil
}

func (s *service) queueExecutedEvent(ctx context.Context, tx *sql.Tx, run *PayrollRun, actorID string) error {
	payload, err := json.Marshal(events.PayrollRunExecutedEvent{
		EventType:    "payroll.run.executed",
		RunID:        run.ID.String(),
		CutoffStart:  run.CutoffStart.Format("2006-01-02"),
		CutoffEnd:    run.CutoffEnd.Format("2006-01-02"),
		PayslipCount: len(run.Payslips),
		RunBy:        actorID,
		OccurredAt:   run.DateRun,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "payroll_run",
		AggregateID:   run.ID.String(),
		EventType:     "payroll.run.executed",
		Topic:         events.PayrollRunExecutedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAllRuns(ctx context.Context) ([]RunSummaryResponse, error) {
	runs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]RunSummaryResponse, len(runs))
	for i, run := range runs {
		var totalNet int64
		for _, slip := range run.Payslips {
			totalNet += slip.NetPay
		}
		resp[i] = RunSummaryResponse{
			ID:           run.ID.String(),
			CutoffStart:  run.CutoffStart.Format("2006-01-02"),
			CutoffEnd:    run.CutoffEnd.Format("2006-01-02"),
			DateRun:      run.DateRun.Format(time.RFC3339),
			RunBy:        run.RunBy.String(),
			PayslipCount: len(run.Payslips),
			TotalNetPay:  totalNet,
		}
	}
	return resp, nil
}

func (s *service) GetRunByID(ctx context.Context, id string) (RunResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidRunID
	}

	run, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RunResponse{}, payrollerrors.ErrRunNotFound
		}
		return RunResponse{}, err
	}

	return mapRunToResponse(*run), nil
}

func (s *service) GetEmployeePayslips(ctx context.Context, employeeID string) ([]PayslipResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}

	slips, err := s.repo.FindPayslipsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]PayslipResponse, len(slips))
	for i, slip := range slips {
		resp[i] = mapPayslipToResponse(slip)
	}
	return resp, nil
}

func (s *service) GetPayslipPDF(ctx context.Context, runID, payslipID string) ([]byte, string, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, "", payrollerrors.ErrInvalidRunID
	}
	if _, err := uuid.Parse(payslipID); err != nil {
		return nil, "", payrollerrors.ErrInvalidPayslipID
	}

	slip, err := s.repo.FindPayslip(ctx, runID, payslipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", payrollerrors.ErrPayslipNotFound
		}
		return nil, "", err
	}

	pdf, err := renderPayslipPDF(*slip)
	if err != nil {
		return nil, "", err
	}

	filename := "payslip_" + slip.ID.String() + ".pdf"
	return pdf, filename, nil
}

func (s *service) GetSettings() SettingsResponse {
	return SettingsResponse{
		SSSTable:            s.settings.SSSTable,
		TaxTable:            s.settings.TaxTable,
		PhilHealthRate:      s.settings.PhilHealthRate.String(),
		PhilHealthFloor:     s.settings.PhilHealthFloor.String(),
		PhilHealthCap:       s.settings.PhilHealthCap.String(),
		PagibigRate:         s.settings.PagibigRate.String(),
		PagibigCap:          s.settings.PagibigCap.String(),
		OvertimeDivisorDays: s.settings.OvertimeDivisorDays.String(),
		OvertimeHoursPerDay: s.settings.OvertimeHoursPerDay.String(),
		OvertimeMultiplier:  s.settings.OvertimeMultiplier.String(),
	}
}

func toEmployeeInput(member employee.Employee) EmployeeInput {
	input := EmployeeInput{
		ID:                 member.ID,
		Name:               member.FullName,
		MonthlyBasicSalary: fromCentavos(member.MonthlyBasicSalary),
	}
	for _, a := range member.Allowances {
		input.Allowances = append(input.Allowances, AllowanceLine{
			Name:    a.Name,
			Amount:  fromCentavos(a.Amount),
			Enabled: a.Enabled,
		})
	}
	return input
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapRunToResponse(run PayrollRun) RunResponse {
	resp := RunResponse{
		ID:          run.ID.String(),
		CutoffStart: run.CutoffStart.Format("2006-01-02"),
		CutoffEnd:   run.CutoffEnd.Format("2006-01-02"),
		DateRun:     run.DateRun.Format(time.RFC3339),
		RunBy:       run.RunBy.String(),
		Payslips:    make([]PayslipResponse, len(run.Payslips)),
	}
	for i, slip := range run.Payslips {
		resp.Payslips[i] = mapPayslipToResponse(slip)
	}
	return resp
}

func mapPayslipToResponse(slip PayslipRecord) PayslipResponse {
	return PayslipResponse{
		ID:           slip.ID.String(),
		RunID:        slip.RunID.String(),
		EmployeeID:   slip.EmployeeID.String(),
		EmployeeName: slip.EmployeeName,
		CutoffStart:  slip.CutoffStart.Format("2006-01-02"),
		CutoffEnd:    slip.CutoffEnd.Format("2006-01-02"),

		BasicPay:    slip.BasicPay,
		Allowances:  slip.Allowances,
		OvertimePay: slip.OvertimePay,
		HolidayPay:  slip.HolidayPay,
		GrossPay:    slip.GrossPay,

		SSSContribution:        slip.SSSContribution,
		PhilHealthContribution: slip.PhilHealthContribution,
		PagibigContribution:    slip.PagibigContribution,
		WithholdingTax:         slip.WithholdingTax,
		OtherDeductions:        slip.OtherDeductions,
		TotalDeductions:        slip.TotalDeductions,

		NetPay: slip.NetPay,
	}
}
