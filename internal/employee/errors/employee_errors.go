package employeeerrors

import (
	"net/http"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee profile not found",
		http.StatusNotFound,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Department not found",
		http.StatusBadRequest,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"User with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
)
