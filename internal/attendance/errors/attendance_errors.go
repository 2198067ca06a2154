package attendanceerrors

import (
	"fmt"
	"math"
	"net/http"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/apperror"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/timeutil"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeRuleViolated,
		"Already checked in",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeRuleViolated,
		"Already checked out",
		http.StatusBadRequest,
	)
	ErrNoCheckInRecord = apperror.New(
		apperror.CodeRuleViolated,
		"No check-in record found",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid month, expected YYYY-MM",
		http.StatusBadRequest,
	)
)

// CheckInClosed reports that the daily check-in window has ended.
func CheckInClosed(deadline timeutil.Clock) *apperror.AppError {
	return apperror.New(
		apperror.CodeRuleViolated,
		fmt.Sprintf("Check-in closed after %s", deadline.Format12()),
		http.StatusBadRequest,
	)
}

// OutsideOfficeRange reports how far outside the geofence the caller is.
func OutsideOfficeRange(distanceM, radiusM float64) *apperror.AppError {
	return apperror.New(
		apperror.CodeRuleViolated,
		fmt.Sprintf("You are outside the office range (%.0fm away). Allowed radius is %.0fm.",
			math.Round(distanceM), radiusM),
		http.StatusBadRequest,
	)
}
