package employee

import (
	"context"
	"database/sql"
	"errors"

	employeeerrors "github.com/Ayabe1990/management-pro-project-sub001/internal/employee/errors"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func validateCompensation(salary int64, allowances []AllowanceInput) error {
	if salary < 0 {
		return employeeerrors.ErrNegativeSalary
	}
	for _, a := range allowances {
		if a.Amount < 0 {
			return employeeerrors.ErrNegativeAllowance
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	if err := validateCompensation(req.MonthlyBasicSalary, req.Allowances); err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp := &Employee{
		ID:                 uuid.New(),
		FullName:           req.FullName,
		Email:              req.Email,
		Role:               req.Role,
		MonthlyBasicSalary: req.MonthlyBasicSalary,
	}
	for _, a := range req.Allowances {
		emp.Allowances = append(emp.Allowances, Allowance{
			ID:         uuid.New(),
			EmployeeID: emp.ID,
			Name:       a.Name,
			Amount:     a.Amount,
			Enabled:    a.Enabled,
		})
	}

	if err := qtx.Create(ctx, emp); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, emp := range employees {
		resp[i] = mapToResponse(emp)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "failed to load employee", 500)
	}

	return mapToResponse(*emp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if err := validateCompensation(req.MonthlyBasicSalary, req.Allowances); err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	emp.FullName = req.FullName
	emp.Email = req.Email
	emp.Role = req.Role
	emp.MonthlyBasicSalary = req.MonthlyBasicSalary

	allowances := make([]Allowance, 0, len(req.Allowances))
	for _, a := range req.Allowances {
		allowances = append(allowances, Allowance{
			ID:         uuid.New(),
			EmployeeID: emp.ID,
			Name:       a.Name,
			Amount:     a.Amount,
			Enabled:    a.Enabled,
		})
	}

	if err := qtx.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, err
	}
	if err := qtx.ReplaceAllowances(ctx, id, allowances); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	emp.Allowances = allowances
	return mapToResponse(*emp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
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

func mapToResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                 emp.ID.String(),
		FullName:           emp.FullName,
		Email:              emp.Email,
		Role:               emp.Role,
		MonthlyBasicSalary: emp.MonthlyBasicSalary,
		Allowances:         make([]AllowanceResponse, len(emp.Allowances)),
	}
	for i, a := range emp.Allowances {
		resp.Allowances[i] = AllowanceResponse{
			ID:      a.ID.String(),
			Name:    a.Name,
			Amount:  a.Amount,
			Enabled: a.Enabled,
		}
	}
	return resp
}
