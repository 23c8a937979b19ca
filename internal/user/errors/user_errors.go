package usererrors

import (
	"net/http"

	"go-cpq/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)

	ErrProfileAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Profile already registered for this account",
		http.StatusConflict,
	)

	ErrInvalidEmail = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid email format",
		http.StatusBadRequest,
	)

	ErrEmailRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Email is required when the token carries none",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid role",
		http.StatusBadRequest,
	)

	ErrSelfRoleChange = apperror.New(
		apperror.CodeInvalidInput,
		"You cannot change your own role or status",
		http.StatusBadRequest,
	)
)
