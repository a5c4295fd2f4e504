package railway

import (
	"fmt"
	"time"
)

// TimeOfDay is a departure time expressed in minutes since midnight.
// Services run within a single day, so a plain minute count orders stops.
type TimeOfDay int

// ParseTimeOfDay parses an HH:MM string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, BadTimeError{Value: s}
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t > other }

// MinutesUntil returns the elapsed minutes from t to other.
func (t TimeOfDay) MinutesUntil(other TimeOfDay) int { return int(other - t) }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Date is a calendar day with no time component.
type Date struct {
	t time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, BadDateError{Value: s}
	}
	return Date{t: t}, nil
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

func (d Date) String() string { return d.t.Format("2006-01-02") }
