package railway

import (
	"errors"
	"fmt"
)

// ErrZeroDurationService is returned when pricing a segment against a
// service whose first and last stops depart at the same time.
var ErrZeroDurationService = errors.New("service has zero duration")

// NoSuchStationError reports a station name absent from every service.
type NoSuchStationError struct {
	Name string
}

func (e NoSuchStationError) Error() string {
	return fmt.Sprintf("no station named %q", e.Name)
}

// NoSuchServiceError reports an unknown service id.
type NoSuchServiceError struct {
	ID int
}

func (e NoSuchServiceError) Error() string {
	return fmt.Sprintf("no service with id %d", e.ID)
}

// NoSuchPassengerError reports an unknown passenger id.
type NoSuchPassengerError struct {
	ID int
}

func (e NoSuchPassengerError) Error() string {
	return fmt.Sprintf("no passenger with id %d", e.ID)
}

// NoSuchItineraryChoiceError reports a commit choice outside the candidate
// list produced by the preceding search.
type NoSuchItineraryChoiceError struct {
	PassengerID int
	Choice      int
}

func (e NoSuchItineraryChoiceError) Error() string {
	return fmt.Sprintf("no itinerary choice %d for passenger %d", e.Choice, e.PassengerID)
}

// BadDateError reports a date string that failed to parse.
type BadDateError struct {
	Value string
}

func (e BadDateError) Error() string {
	return fmt.Sprintf("bad date specification %q", e.Value)
}

// BadTimeError reports a time string that failed to parse.
type BadTimeError struct {
	Value string
}

func (e BadTimeError) Error() string {
	return fmt.Sprintf("bad time specification %q", e.Value)
}

// DuplicatePassengerNameError reports a passenger name already registered.
type DuplicatePassengerNameError struct {
	Name string
}

func (e DuplicatePassengerNameError) Error() string {
	return fmt.Sprintf("passenger name %q already registered", e.Name)
}

// ImportError wraps a failure encountered while bulk-loading. Records read
// before the failing line stay applied.
type ImportError struct {
	Line int
	Err  error
}

func (e ImportError) Error() string {
	return fmt.Sprintf("import failed at line %d: %v", e.Line, e.Err)
}

func (e ImportError) Unwrap() error { return e.Err }
