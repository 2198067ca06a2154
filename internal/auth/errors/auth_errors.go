package autherrors

import (
	"net/http"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid credentials",
		http.StatusUnauthorized,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee does not exist",
		http.StatusNotFound,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"Admin privileges are required",
		http.StatusForbidden,
	)
	ErrPasswordMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"New password and confirm password do not match",
		http.StatusBadRequest,
	)
	ErrCurrentPasswordIncorrect = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not generate token",
		http.StatusInternalServerError,
	)
)
