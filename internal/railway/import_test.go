package railway

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestImportRecords(t *testing.T) {
	o := NewOffice(sequentialRefs())
	records := strings.Join([]string{
		"SERVICE|1|60|08:00|A|09:00|B|10:00|C",
		"",
		"PASSENGER|Alice",
		"ITINERARY|0|2024-04-01|1/A/C",
	}, "\n")

	if err := o.ImportRecords(strings.NewReader(records)); err != nil {
		t.Fatalf("import: %v", err)
	}

	if len(o.Services()) != 1 {
		t.Fatalf("services = %d, want 1", len(o.Services()))
	}
	p, err := o.Passenger(0)
	if err != nil {
		t.Fatalf("passenger: %v", err)
	}
	its := p.ItinerariesInCommitOrder()
	if len(its) != 1 {
		t.Fatalf("itineraries = %d, want 1", len(its))
	}
	if its[0].BookingRef() != "REF-001" {
		t.Errorf("booking ref = %q, want REF-001", its[0].BookingRef())
	}
	// The loyalty engine runs for imported itineraries too.
	if math.Abs(p.Category().Spend-60) > 1e-9 {
		t.Errorf("window spend = %v, want 60", p.Category().Spend)
	}
}

func TestImportMultiLegItinerary(t *testing.T) {
	o := NewOffice(nil)
	records := strings.Join([]string{
		"SERVICE|1|60|08:00|A|09:00|B|10:00|C",
		"SERVICE|2|30|09:30|B|10:30|D",
		"PASSENGER|Alice",
		"ITINERARY|0|2024-04-01|1/A/B|2/B/D",
	}, "\n")
	if err := o.ImportRecords(strings.NewReader(records)); err != nil {
		t.Fatalf("import: %v", err)
	}
	p, _ := o.Passenger(0)
	it := p.ItinerariesInCommitOrder()[0]
	if len(it.Segments()) != 2 {
		t.Fatalf("segments = %d, want 2", len(it.Segments()))
	}
	if math.Abs(it.Price()-60) > 1e-9 {
		t.Errorf("price = %v, want 60", it.Price())
	}
}

func TestImportReportsLineNumber(t *testing.T) {
	o := NewOffice(nil)
	records := strings.Join([]string{
		"SERVICE|1|60|08:00|A|09:00|B",
		"PASSENGER|Alice",
		"ITINERARY|0|2024-04-01|7/A/B",
	}, "\n")

	err := o.ImportRecords(strings.NewReader(records))
	var importErr ImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("got %v, want ImportError", err)
	}
	if importErr.Line != 3 {
		t.Errorf("line = %d, want 3", importErr.Line)
	}
	var noService NoSuchServiceError
	if !errors.As(importErr, &noService) || noService.ID != 7 {
		t.Errorf("cause = %v, want NoSuchServiceError{7}", importErr.Err)
	}

	// Records before the failing line stay applied.
	if len(o.Services()) != 1 {
		t.Errorf("services = %d, want 1 surviving", len(o.Services()))
	}
	if _, err := o.Passenger(0); err != nil {
		t.Errorf("passenger lost: %v", err)
	}
}

func TestImportRejectsMalformedRecords(t *testing.T) {
	cases := []string{
		"WAGON|1",
		"SERVICE|1|60|08:00",
		"SERVICE|x|60|08:00|A|09:00|B",
		"PASSENGER",
		"ITINERARY|0|2024-04-01|1-A-B",
	}
	for _, record := range cases {
		o := NewOffice(nil)
		seed := "SERVICE|1|60|08:00|A|09:00|B\nPASSENGER|Alice\n"
		err := o.ImportRecords(strings.NewReader(seed + record))
		var importErr ImportError
		if !errors.As(err, &importErr) {
			t.Errorf("%q: got %v, want ImportError", record, err)
			continue
		}
		if importErr.Line != 3 {
			t.Errorf("%q: line = %d, want 3", record, importErr.Line)
		}
	}
}
