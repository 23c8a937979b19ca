package quoteerrors

import (
	"net/http"

	"go-cpq/internal/shared/apperror"
)

var (
	ErrQuoteNotFound = apperror.New(
		apperror.CodeNotFound,
		"Quote not found",
		http.StatusNotFound,
	)

	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Customer not found",
		http.StatusNotFound,
	)

	ErrRefNoConflict = apperror.New(
		apperror.CodeConflict,
		"Quote reference number already exists",
		http.StatusConflict,
	)

	ErrQuoteNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"Quote can only be edited while Drafted or Rejected",
		http.StatusConflict,
	)

	ErrQuoteNotDeletable = apperror.New(
		apperror.CodeInvalidState,
		"Only Drafted quotes can be deleted",
		http.StatusConflict,
	)

	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"Quote status transition is not allowed",
		http.StatusConflict,
	)

	ErrNotApprover = apperror.New(
		apperror.CodeForbidden,
		"You are not an approver of this quote",
		http.StatusForbidden,
	)

	ErrInvalidReference = apperror.New(
		apperror.CodeInvalidInput,
		"Referenced contact or product does not exist",
		http.StatusBadRequest,
	)

	ErrPocMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"Point of contact does not belong to the customer",
		http.StatusBadRequest,
	)

	ErrInvalidItem = apperror.New(
		apperror.CodeInvalidInput,
		"Quote item values must not be negative",
		http.StatusBadRequest,
	)
)
