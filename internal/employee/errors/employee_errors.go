package employeeerrors

import (
	"net/http"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrNegativeSalary = apperror.New(
		apperror.CodeInvalidInput,
		"monthly basic salary cannot be negative",
		http.StatusBadRequest,
	)
	ErrNegativeAllowance = apperror.New(
		apperror.CodeInvalidInput,
		"allowance amount cannot be negative",
		http.StatusBadRequest,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
)
