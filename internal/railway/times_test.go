package railway

import (
	"errors"
	"testing"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if int(tod) != 9*60+45 {
		t.Errorf("got %d minutes, want %d", int(tod), 9*60+45)
	}
	if tod.String() != "09:45" {
		t.Errorf("String() = %q, want %q", tod.String(), "09:45")
	}
}

func TestParseTimeOfDayRejectsGarbage(t *testing.T) {
	for _, in := range []string{"25:00", "9h45", "", "12:60"} {
		_, err := ParseTimeOfDay(in)
		var badTime BadTimeError
		if !errors.As(err, &badTime) {
			t.Errorf("ParseTimeOfDay(%q) = %v, want BadTimeError", in, err)
			continue
		}
		if badTime.Value != in {
			t.Errorf("BadTimeError.Value = %q, want %q", badTime.Value, in)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-04-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-04-01" {
		t.Errorf("String() = %q, want %q", d.String(), "2024-04-01")
	}
	if !d.Before(mustDate(t, "2024-04-02")) {
		t.Error("2024-04-01 should be before 2024-04-02")
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"01/04/2024", "2024-13-01", "yesterday", ""} {
		_, err := ParseDate(in)
		var badDate BadDateError
		if !errors.As(err, &badDate) {
			t.Errorf("ParseDate(%q) = %v, want BadDateError", in, err)
		}
	}
}

func TestMinutesUntil(t *testing.T) {
	from := mustTime(t, "08:00")
	to := mustTime(t, "10:30")
	if got := from.MinutesUntil(to); got != 150 {
		t.Errorf("MinutesUntil = %d, want 150", got)
	}
}
