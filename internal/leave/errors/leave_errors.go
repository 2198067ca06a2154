package leaveerrors

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/apperror"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"End date must be after start date",
		http.StatusBadRequest,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"Leave request already processed",
		http.StatusBadRequest,
	)
)

// Overlaps reports the conflicting range of an existing request.
func Overlaps(start, end time.Time) *apperror.AppError {
	return apperror.New(
		apperror.CodeRuleViolated,
		fmt.Sprintf("Leave request overlaps with existing leave from %s to %s",
			start.Format("2006-01-02"), end.Format("2006-01-02")),
		http.StatusBadRequest,
	)
}

// QuotaExceeded reports how many days remain on the yearly quota.
func QuotaExceeded(leaveType string, remaining int) *apperror.AppError {
	if remaining < 0 {
		remaining = 0
	}
	return apperror.New(
		apperror.CodeRuleViolated,
		fmt.Sprintf("Leave quota exceeded for %s. Only %d day(s) remaining this year", leaveType, remaining),
		http.StatusBadRequest,
	)
}
