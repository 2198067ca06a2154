package permissionerrors

import (
	"net/http"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/apperror"
)

var (
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid time, expected HH:MM or HH:MM:SS",
		http.StatusBadRequest,
	)
	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"End time must be after start time",
		http.StatusBadRequest,
	)
	ErrPermissionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Permission request not found",
		http.StatusNotFound,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"Permission request already processed",
		http.StatusBadRequest,
	)
)
