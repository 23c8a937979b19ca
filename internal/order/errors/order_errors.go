package ordererrors

import (
	"net/http"

	"go-cpq/internal/shared/apperror"
)

var (
	ErrOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Order not found",
		http.StatusNotFound,
	)

	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Customer not found",
		http.StatusNotFound,
	)

	// A taken order number surfaces as a server error, the request is not retried.
	ErrOrderNumberExists = apperror.New(
		apperror.CodeConflict,
		"Order number already exists",
		http.StatusInternalServerError,
	)

	ErrInvalidReference = apperror.New(
		apperror.CodeInvalidInput,
		"Referenced quote, contact or product does not exist",
		http.StatusBadRequest,
	)

	ErrQuoteMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"Quote does not belong to the customer",
		http.StatusBadRequest,
	)

	ErrPocMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"Point of contact does not belong to the customer",
		http.StatusBadRequest,
	)

	ErrInvalidItem = apperror.New(
		apperror.CodeInvalidInput,
		"Order item values must not be negative",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Delivery date must not be before the order date",
		http.StatusBadRequest,
	)

	ErrTooManyFiles = apperror.New(
		apperror.CodeInvalidInput,
		"An order can hold at most 10 other documents and 10 attachments",
		http.StatusBadRequest,
	)

	ErrUnknownFile = apperror.New(
		apperror.CodeInvalidInput,
		"File to remove does not belong to this order",
		http.StatusBadRequest,
	)
)
