package railway

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Bulk import record kinds.
const (
	recordService   = "SERVICE"
	recordPassenger = "PASSENGER"
	recordItinerary = "ITINERARY"
)

// ImportFile bulk-loads services, passengers, and pre-committed itineraries
// from a flat file. Lines have the form
//
//	SERVICE|id|price|time|station|...|time|station
//	PASSENGER|name
//	ITINERARY|passengerId|date|serviceId/from/to|...
//
// Records are applied as they are read: a failure mid-file leaves earlier
// records in effect and is reported as an ImportError with the line number.
func (o *Office) ImportFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return ImportError{Err: err}
	}
	defer f.Close()
	return o.ImportRecords(f)
}

// ImportRecords reads bulk import lines from r. See ImportFile.
func (o *Office) ImportRecords(r io.Reader) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := o.applyRecord(strings.Split(text, "|")); err != nil {
			return ImportError{Line: line, Err: err}
		}
		o.dirty = true
	}
	if err := scanner.Err(); err != nil {
		return ImportError{Line: line, Err: err}
	}
	return nil
}

func (o *Office) applyRecord(fields []string) error {
	switch fields[0] {
	case recordService:
		return o.applyServiceRecord(fields)
	case recordPassenger:
		return o.applyPassengerRecord(fields)
	case recordItinerary:
		return o.applyItineraryRecord(fields)
	default:
		return fmt.Errorf("unknown record type %q", fields[0])
	}
}

func (o *Office) applyServiceRecord(fields []string) error {
	if len(fields) < 5 || len(fields)%2 == 0 {
		return fmt.Errorf("malformed SERVICE record: %d fields", len(fields))
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("service id %q: %w", fields[1], err)
	}
	price, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fmt.Errorf("service price %q: %w", fields[2], err)
	}

	service := NewService(id, price)
	for i := 3; i < len(fields)-1; i += 2 {
		departure, err := ParseTimeOfDay(fields[i])
		if err != nil {
			return err
		}
		if err := service.AppendStop(fields[i+1], departure); err != nil {
			return err
		}
	}
	o.catalog.Add(service)
	return nil
}

func (o *Office) applyPassengerRecord(fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("malformed PASSENGER record: %d fields", len(fields))
	}
	name := fields[1]
	for _, p := range o.passengers {
		if p.Name() == name {
			return DuplicatePassengerNameError{Name: name}
		}
	}
	p := NewPassenger(o.passengerCounter, name)
	o.passengerCounter++
	o.passengers[p.ID()] = p
	return nil
}

// applyItineraryRecord commits an itinerary directly, bypassing search. The
// loyalty engine runs exactly as it does for an interactive booking.
func (o *Office) applyItineraryRecord(fields []string) error {
	if len(fields) < 4 {
		return fmt.Errorf("malformed ITINERARY record: %d fields", len(fields))
	}
	passengerID, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("passenger id %q: %w", fields[1], err)
	}
	p, err := o.passenger(passengerID)
	if err != nil {
		return err
	}
	date, err := ParseDate(fields[2])
	if err != nil {
		return err
	}

	it := NewItinerary(date, p)
	for _, leg := range fields[3:] {
		parts := strings.Split(leg, "/")
		if len(parts) != 3 {
			return fmt.Errorf("malformed itinerary leg %q", leg)
		}
		serviceID, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("service id %q: %w", parts[0], err)
		}
		service, err := o.catalog.Service(serviceID)
		if err != nil {
			return err
		}
		seg, err := NewSegment(service, parts[1], parts[2])
		if err != nil {
			return err
		}
		it.AddSegment(seg)
	}

	it.SetBookingRef(o.refGen())
	p.Commit(it)
	return nil
}
