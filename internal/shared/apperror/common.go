package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrInvalidID = New(
		CodeInvalidInput,
		"Invalid id",
		http.StatusBadRequest,
	)

	ErrStorage = New(
		CodeUpstreamFailure,
		"File storage request failed",
		http.StatusInternalServerError,
	)

	ErrDocumentRender = New(
		CodeUpstreamFailure,
		"Failed to generate document",
		http.StatusInternalServerError,
	)
)
