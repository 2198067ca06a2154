package attendance

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/geo"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/timeutil"
)

// Policy holds the office geofence and the time-of-day cutoffs the status
// rules run against. It is passed in at construction so tests can vary it.
type Policy struct {
	Location *time.Location

	OfficeLatitude  float64
	OfficeLongitude float64
	AllowedRadiusM  float64

	// LateCutoff splits Present from Late, AbsentCutoff marks a scan so
	// late it counts as a no-show, CheckInDeadline closes check-in for
	// the day entirely.
	LateCutoff      timeutil.Clock
	AbsentCutoff    timeutil.Clock
	CheckInDeadline timeutil.Clock
}

func DefaultPolicy() Policy {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	return Policy{
		Location:        loc,
		OfficeLatitude:  8.1631162,
		OfficeLongitude: 77.4108498,
		AllowedRadiusM:  200,
		LateCutoff:      timeutil.MustClock("10:15"),
		AbsentCutoff:    timeutil.MustClock("12:00"),
		CheckInDeadline: timeutil.MustClock("11:00"),
	}
}

// PolicyFromEnv overlays environment overrides on the defaults. Unset or
// malformed values keep the default.
func PolicyFromEnv() Policy {
	p := DefaultPolicy()
	if tz := os.Getenv("OFFICE_TIMEZONE"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			p.Location = loc
		}
	}
	if v, err := strconv.ParseFloat(os.Getenv("OFFICE_LATITUDE"), 64); err == nil {
		p.OfficeLatitude = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("OFFICE_LONGITUDE"), 64); err == nil {
		p.OfficeLongitude = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("OFFICE_ALLOWED_RADIUS_M"), 64); err == nil {
		p.AllowedRadiusM = v
	}
	if c, err := timeutil.ParseClock(os.Getenv("ATTENDANCE_LATE_CUTOFF")); err == nil {
		p.LateCutoff = c
	}
	if c, err := timeutil.ParseClock(os.Getenv("ATTENDANCE_ABSENT_CUTOFF")); err == nil {
		p.AbsentCutoff = c
	}
	if c, err := timeutil.ParseClock(os.Getenv("ATTENDANCE_CHECKIN_DEADLINE")); err == nil {
		p.CheckInDeadline = c
	}
	return p
}

// DistanceFromOffice returns the haversine distance in meters and whether
// the coordinate is inside the allowed radius.
func (p Policy) DistanceFromOffice(lat, lon float64) (float64, bool) {
	d := geo.Distance(lat, lon, p.OfficeLatitude, p.OfficeLongitude)
	return d, d <= p.AllowedRadiusM
}

// StatusFor derives the attendance status and remark from a check-in
// instant. A nil check-in is a no-show.
func (p Policy) StatusFor(checkIn *time.Time) (string, string) {
	if checkIn == nil {
		return StatusAbsent, "No check-in recorded"
	}
	local := checkIn.In(p.Location)
	clock := timeutil.ClockOf(local)
	zone, _ := local.Zone()

	switch {
	case clock.After(p.AbsentCutoff):
		return StatusAbsent, fmt.Sprintf("Checked in at %s %s (After absent cutoff)", clock.FormatShort(), zone)
	case clock.After(p.LateCutoff):
		return StatusLate, fmt.Sprintf("Checked in at %s %s (Late)", clock.FormatShort(), zone)
	default:
		return StatusPresent, fmt.Sprintf("Checked in at %s %s (On time)", clock.FormatShort(), zone)
	}
}

// Today is the current calendar date in the office timezone, stored as
// midnight UTC so date columns compare cleanly.
func (p Policy) Today(now time.Time) time.Time {
	local := now.In(p.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
