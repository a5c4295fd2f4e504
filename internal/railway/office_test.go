package railway

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func sequentialRefs() RefGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("REF-%03d", n)
	}
}

func newTestOffice(t *testing.T) *Office {
	t.Helper()
	o := NewOffice(sequentialRefs())
	records := strings.Join([]string{
		"SERVICE|1|60|08:00|A|09:00|B|10:00|C",
		"SERVICE|2|30|09:30|B|10:30|D",
	}, "\n")
	if err := o.ImportRecords(strings.NewReader(records)); err != nil {
		t.Fatalf("seeding catalog: %v", err)
	}
	return o
}

func TestRegisterPassengerAssignsSequentialIDs(t *testing.T) {
	o := NewOffice(nil)
	alice, err := o.RegisterPassenger("Alice")
	if err != nil {
		t.Fatal(err)
	}
	bob, err := o.RegisterPassenger("Bob")
	if err != nil {
		t.Fatal(err)
	}
	if alice.ID() != 0 || bob.ID() != 1 {
		t.Errorf("ids = %d, %d; want 0, 1", alice.ID(), bob.ID())
	}

	_, err = o.RegisterPassenger("Alice")
	var dup DuplicatePassengerNameError
	if !errors.As(err, &dup) || dup.Name != "Alice" {
		t.Errorf("duplicate name: got %v", err)
	}
}

func TestChangePassengerName(t *testing.T) {
	o := NewOffice(nil)
	alice, _ := o.RegisterPassenger("Alice")
	o.RegisterPassenger("Bob")

	if err := o.ChangePassengerName(alice.ID(), "Bob"); err == nil {
		t.Error("rename onto a taken name succeeded")
	}
	if err := o.ChangePassengerName(alice.ID(), "Alicia"); err != nil {
		t.Errorf("rename failed: %v", err)
	}
	if alice.Name() != "Alicia" {
		t.Errorf("name = %q, want Alicia", alice.Name())
	}
	var noPassenger NoSuchPassengerError
	if err := o.ChangePassengerName(42, "Carol"); !errors.As(err, &noPassenger) {
		t.Errorf("unknown passenger: got %v", err)
	}
}

func TestSearchValidatesInputsInOrder(t *testing.T) {
	o := newTestOffice(t)

	// The date is checked first, then the time, then the passenger.
	var badDate BadDateError
	if _, err := o.Search(42, "A", "C", "not-a-date", "bad"); !errors.As(err, &badDate) {
		t.Errorf("got %v, want BadDateError first", err)
	}
	var badTime BadTimeError
	if _, err := o.Search(42, "A", "C", "2024-04-01", "bad"); !errors.As(err, &badTime) {
		t.Errorf("got %v, want BadTimeError second", err)
	}
	var noPassenger NoSuchPassengerError
	if _, err := o.Search(42, "A", "C", "2024-04-01", "08:00"); !errors.As(err, &noPassenger) {
		t.Errorf("got %v, want NoSuchPassengerError third", err)
	}
}

func TestCommitBooksChosenCandidate(t *testing.T) {
	o := newTestOffice(t)
	p, _ := o.RegisterPassenger("Alice")

	candidates, err := o.Search(p.ID(), "A", "C", "2024-04-01", "08:00")
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) == 0 {
		t.Fatal("no candidates")
	}

	it, err := o.CommitItinerary(p.ID(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if it.BookingRef() != "REF-001" {
		t.Errorf("booking ref = %q, want REF-001", it.BookingRef())
	}
	if got := len(p.ItinerariesInCommitOrder()); got != 1 {
		t.Errorf("committed itineraries = %d, want 1", got)
	}
	// A successful commit leaves the candidate list in place.
	if len(o.Candidates()) != len(candidates) {
		t.Error("candidates cleared on successful commit")
	}
}

func TestCommitChoiceZeroCancels(t *testing.T) {
	o := newTestOffice(t)
	p, _ := o.RegisterPassenger("Alice")
	if _, err := o.Search(p.ID(), "A", "C", "2024-04-01", "08:00"); err != nil {
		t.Fatal(err)
	}

	it, err := o.CommitItinerary(p.ID(), 0)
	if err != nil || it != nil {
		t.Errorf("cancel returned (%v, %v), want (nil, nil)", it, err)
	}
	if o.Candidates() != nil {
		t.Error("candidates not cleared by cancel")
	}
}

func TestCommitOutOfRangeClearsCandidates(t *testing.T) {
	o := newTestOffice(t)
	p, _ := o.RegisterPassenger("Alice")
	if _, err := o.Search(p.ID(), "A", "C", "2024-04-01", "08:00"); err != nil {
		t.Fatal(err)
	}

	_, err := o.CommitItinerary(p.ID(), 99)
	var noChoice NoSuchItineraryChoiceError
	if !errors.As(err, &noChoice) || noChoice.Choice != 99 {
		t.Errorf("got %v, want NoSuchItineraryChoiceError{99}", err)
	}
	if o.Candidates() != nil {
		t.Error("candidates not cleared by bad choice")
	}
	// Committing again with nothing pending fails the same way.
	if _, err := o.CommitItinerary(p.ID(), 1); !errors.As(err, &noChoice) {
		t.Errorf("commit without candidates: got %v", err)
	}
}

func TestDirtyTracking(t *testing.T) {
	o := newTestOffice(t)
	if !o.Dirty() {
		t.Error("import should mark the office dirty")
	}
	o.MarkClean()
	if o.Dirty() {
		t.Error("MarkClean did not clear the flag")
	}
	if _, err := o.RegisterPassenger("Alice"); err != nil {
		t.Fatal(err)
	}
	if !o.Dirty() {
		t.Error("registration should mark the office dirty")
	}
}
