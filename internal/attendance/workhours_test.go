package attendance

import (
	"testing"
	"time"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/permission"

	"github.com/stretchr/testify/assert"
)

func attendanceSpan(checkIn, checkOut string) Attendance {
	day := "2025-03-10T"
	in, _ := time.Parse(time.RFC3339, day+checkIn+"Z")
	out, _ := time.Parse(time.RFC3339, day+checkOut+"Z")
	return Attendance{
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckIn:  &in,
		CheckOut: &out,
	}
}

func TestWorkingHours_SubtractsApprovedPermissions(t *testing.T) {
	a := attendanceSpan("09:00:00", "18:00:00")
	perms := []permission.Permission{
		{StartTime: "13:00:00", EndTime: "14:00:00", Status: permission.StatusApproved},
	}

	got := WorkingHours(a, perms)
	assert.NotNil(t, got)
	assert.Equal(t, 8.00, *got)
}

func TestWorkingHours_IgnoresUnapproved(t *testing.T) {
	a := attendanceSpan("09:00:00", "17:00:00")
	perms := []permission.Permission{
		{StartTime: "13:00:00", EndTime: "14:00:00", Status: permission.StatusPending},
		{StartTime: "15:00:00", EndTime: "16:00:00", Status: permission.StatusRejected},
	}

	got := WorkingHours(a, perms)
	assert.NotNil(t, got)
	assert.Equal(t, 8.00, *got)
}

func TestWorkingHours_MissingTimestamps(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Nil(t, WorkingHours(Attendance{CheckIn: &in}, nil))
	assert.Nil(t, WorkingHours(Attendance{}, nil))
}

func TestWorkingHours_NegativeSurfacedAsIs(t *testing.T) {
	a := attendanceSpan("09:00:00", "10:00:00")
	perms := []permission.Permission{
		{StartTime: "08:00:00", EndTime: "11:30:00", Status: permission.StatusApproved},
	}

	got := WorkingHours(a, perms)
	assert.NotNil(t, got)
	assert.Equal(t, -2.50, *got)
}

func TestWorkingHours_Rounding(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(7*time.Hour + 20*time.Minute)
	a := Attendance{CheckIn: &in, CheckOut: &out}

	got := WorkingHours(a, nil)
	assert.NotNil(t, got)
	assert.Equal(t, 7.33, *got)
}
