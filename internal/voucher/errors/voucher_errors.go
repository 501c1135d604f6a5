package vouchererrors

import (
	"net/http"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/shared/apperror"
)

var (
	ErrVoucherNotFound = apperror.New(
		apperror.CodeNotFound,
		"voucher not found",
		http.StatusNotFound,
	)
	ErrInvalidVoucherID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid voucher id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNonPositiveValue = apperror.New(
		apperror.CodeInvalidInput,
		"voucher value must be positive",
		http.StatusBadRequest,
	)
	ErrVoucherRedeemed = apperror.New(
		apperror.CodeConflict,
		"voucher has already been redeemed",
		http.StatusConflict,
	)
	ErrVoucherExpired = apperror.New(
		apperror.CodeConflict,
		"voucher has expired",
		http.StatusConflict,
	)
)
