package expenseerrors

import (
	"net/http"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/shared/apperror"
)

var (
	ErrExpenseNotFound = apperror.New(
		apperror.CodeNotFound,
		"expense not found",
		http.StatusNotFound,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidExpenseID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid expense id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"expense amount must not be negative",
		http.StatusBadRequest,
	)
)
