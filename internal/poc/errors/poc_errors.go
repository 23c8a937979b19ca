package pocerrors

import (
	"net/http"

	"go-cpq/internal/shared/apperror"
)

var (
	ErrPocNotFound = apperror.New(
		apperror.CodeNotFound,
		"Point of contact not found",
		http.StatusNotFound,
	)

	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Customer not found",
		http.StatusNotFound,
	)

	ErrPocInUse = apperror.New(
		apperror.CodeConflict,
		"Point of contact is referenced by a quote or order",
		http.StatusConflict,
	)
)
