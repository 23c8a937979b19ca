package licenseerrors

import (
	"net/http"

	"go-cpq/internal/shared/apperror"
)

var (
	ErrLicenseNotFound = apperror.New(
		apperror.CodeNotFound,
		"License not found",
		http.StatusNotFound,
	)

	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Customer not found",
		http.StatusNotFound,
	)

	ErrLicenseNumberExists = apperror.New(
		apperror.CodeConflict,
		"License number already exists",
		http.StatusConflict,
	)

	ErrInvalidReference = apperror.New(
		apperror.CodeInvalidInput,
		"Referenced customer or order does not exist",
		http.StatusBadRequest,
	)

	ErrOrderMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"Order does not belong to the customer",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Expiry date must not be before the issue date",
		http.StatusBadRequest,
	)

	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be between 1 and 365",
		http.StatusBadRequest,
	)
)
