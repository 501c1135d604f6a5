package overtimeerrors

import (
	"net/http"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"overtime request not found",
		http.StatusNotFound,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid overtime request id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNegativeMinutes = apperror.New(
		apperror.CodeInvalidInput,
		"requested minutes cannot be negative",
		http.StatusBadRequest,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"overtime request has already been decided",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid overtime status filter",
		http.StatusBadRequest,
	)
)
