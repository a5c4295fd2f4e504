package railway

import "testing"

func TestAppendStopRequiresIncreasingDepartures(t *testing.T) {
	s := NewService(1, 50)
	if err := s.AppendStop("A", mustTime(t, "08:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AppendStop("B", mustTime(t, "08:00")); err == nil {
		t.Error("equal departure accepted, want error")
	}
	if err := s.AppendStop("B", mustTime(t, "07:30")); err == nil {
		t.Error("earlier departure accepted, want error")
	}
	if err := s.AppendStop("B", mustTime(t, "08:01")); err != nil {
		t.Errorf("later departure rejected: %v", err)
	}
}

func TestDurationMinutes(t *testing.T) {
	s := mustService(t, 1, 50, "08:00", "A", "09:00", "B", "10:30", "C")
	if got := s.DurationMinutes(); got != 150 {
		t.Errorf("DurationMinutes = %d, want 150", got)
	}

	single := mustService(t, 2, 10, "08:00", "A")
	if got := single.DurationMinutes(); got != 0 {
		t.Errorf("single-stop duration = %d, want 0", got)
	}
}

func TestStopIndexIsCaseSensitive(t *testing.T) {
	s := mustService(t, 1, 50, "08:00", "Lyon", "09:00", "Paris")
	if got := s.StopIndex("Paris"); got != 1 {
		t.Errorf("StopIndex(Paris) = %d, want 1", got)
	}
	if got := s.StopIndex("paris"); got != -1 {
		t.Errorf("StopIndex(paris) = %d, want -1", got)
	}
}
