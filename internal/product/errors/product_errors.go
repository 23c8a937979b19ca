package producterrors

import (
	"net/http"

	"go-cpq/internal/shared/apperror"
)

var (
	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrSKUAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Product with the same SKU already exists",
		http.StatusConflict,
	)

	ErrProductInUse = apperror.New(
		apperror.CodeConflict,
		"Product is referenced by quotes or orders",
		http.StatusConflict,
	)

	ErrInvalidPrice = apperror.New(
		apperror.CodeInvalidInput,
		"Unit price must not be negative",
		http.StatusBadRequest,
	)

	ErrInvalidTaxRate = apperror.New(
		apperror.CodeInvalidInput,
		"Tax rate must be between 0 and 100",
		http.StatusBadRequest,
	)

	ErrTooManyImages = apperror.New(
		apperror.CodeInvalidInput,
		"A product can have at most 5 images",
		http.StatusBadRequest,
	)

	ErrUnknownImage = apperror.New(
		apperror.CodeInvalidInput,
		"Image to remove does not belong to this product",
		http.StatusBadRequest,
	)
)
