package timeutil

import (
	"fmt"
	"time"
)

// Clock is a time of day, stored as the offset from midnight. The rule
// engine compares clocks, never full timestamps, so attendance cutoffs stay
// independent of the calendar date.
type Clock time.Duration

func NewClock(hour, min, sec int) Clock {
	return Clock(time.Duration(hour)*time.Hour +
		time.Duration(min)*time.Minute +
		time.Duration(sec)*time.Second)
}

// ParseClock accepts "HH:MM:SS" or "HH:MM". Clients send both forms.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q, expected HH:MM or HH:MM:SS", s)
		}
	}
	return NewClock(t.Hour(), t.Minute(), t.Second()), nil
}

// MustClock is for compiled-in defaults only.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockOf extracts the wall clock of t in its own location.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute(), t.Second())
}

func (c Clock) After(o Clock) bool {
	return c > o
}

func (c Clock) Duration() time.Duration {
	return time.Duration(c)
}

func (c Clock) Hours() float64 {
	return time.Duration(c).Hours()
}

func (c Clock) anchor() time.Time {
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(c))
}

// String renders "HH:MM:SS", the normalized storage form.
func (c Clock) String() string {
	return c.anchor().Format("15:04:05")
}

// Format12 renders "03:04 PM", the display form used by history and export.
func (c Clock) Format12() string {
	return c.anchor().Format("03:04 PM")
}

// FormatShort renders "HH:MM" for remarks.
func (c Clock) FormatShort() string {
	return c.anchor().Format("15:04")
}
