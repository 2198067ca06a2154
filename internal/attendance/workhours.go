package attendance

import (
	"math"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/permission"
)

// WorkingHours is check-out minus check-in, less every approved permission
// window on the same date, rounded to 2 decimal places. Nil when either
// timestamp is missing. A window larger than the attendance span yields a
// negative result, surfaced as-is so the anomaly is visible in reports.
func WorkingHours(a Attendance, approved []permission.Permission) *float64 {
	if a.CheckIn == nil || a.CheckOut == nil {
		return nil
	}

	hours := a.CheckOut.Sub(*a.CheckIn).Hours()
	for _, p := range approved {
		if p.Status != permission.StatusApproved {
			continue
		}
		start, end, err := p.Window()
		if err != nil {
			continue
		}
		hours -= end.Hours() - start.Hours()
	}

	rounded := math.Round(hours*100) / 100
	return &rounded
}
