package customererrors

import (
	"net/http"

	"go-cpq/internal/shared/apperror"
)

var (
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Customer not found",
		http.StatusNotFound,
	)

	ErrCustomerInUse = apperror.New(
		apperror.CodeConflict,
		"Customer is referenced by quotes, orders or licenses",
		http.StatusConflict,
	)

	ErrUnknownDocument = apperror.New(
		apperror.CodeInvalidInput,
		"Document to remove does not belong to this customer",
		http.StatusBadRequest,
	)
)
