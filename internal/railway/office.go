package railway

import (
	"sort"
	"sync"
)

// RefGenerator mints booking references for committed itineraries.
type RefGenerator func() string

// Office is the process-wide aggregate: the schedule catalog, the passenger
// registry, and the candidate list produced by the latest search. One
// RWMutex guards it all; every operation is atomic under it.
type Office struct {
	mu               sync.RWMutex
	catalog          *Catalog
	passengers       map[int]*Passenger
	passengerCounter int
	candidates       []*Itinerary
	dirty            bool
	refGen           RefGenerator
}

func NewOffice(refGen RefGenerator) *Office {
	if refGen == nil {
		refGen = func() string { return "" }
	}
	return &Office{
		catalog:    NewCatalog(),
		passengers: make(map[int]*Passenger),
		refGen:     refGen,
	}
}

// Dirty reports whether state changed since the last save or load.
func (o *Office) Dirty() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.dirty
}

func (o *Office) MarkClean() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dirty = false
}

// RegisterPassenger creates a passenger with the next sequential id. Names
// are globally unique.
func (o *Office) RegisterPassenger(name string) (*Passenger, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, p := range o.passengers {
		if p.Name() == name {
			return nil, DuplicatePassengerNameError{Name: name}
		}
	}
	p := NewPassenger(o.passengerCounter, name)
	o.passengerCounter++
	o.passengers[p.ID()] = p
	o.dirty = true
	return p, nil
}

// ChangePassengerName renames a passenger, keeping names unique.
func (o *Office) ChangePassengerName(id int, name string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, err := o.passenger(id)
	if err != nil {
		return err
	}
	for _, other := range o.passengers {
		if other.Name() == name {
			return DuplicatePassengerNameError{Name: name}
		}
	}
	p.setName(name)
	o.dirty = true
	return nil
}

func (o *Office) Passenger(id int) (*Passenger, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.passenger(id)
}

func (o *Office) passenger(id int) (*Passenger, error) {
	p, ok := o.passengers[id]
	if !ok {
		return nil, NoSuchPassengerError{ID: id}
	}
	return p, nil
}

// Passengers returns all passengers ordered by id.
func (o *Office) Passengers() []*Passenger {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]*Passenger, 0, len(o.passengers))
	for _, p := range o.passengers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Services lists the catalog in ascending service id order.
func (o *Office) Services() []*Service {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.catalog.Services()
}

func (o *Office) Service(id int) (*Service, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.catalog.Service(id)
}

func (o *Office) ServicesDepartingFrom(station string) ([]*Service, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.catalog.DepartingFrom(station)
}

func (o *Office) ServicesArrivingAt(station string) ([]*Service, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.catalog.ArrivingAt(station)
}

// Search parses the date and time inputs, runs the route search for the
// passenger, and retains the ranked candidates until the next search,
// commit, or cancel.
func (o *Office) Search(passengerID int, origin, destination, dateStr, timeStr string) ([]*Itinerary, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	earliest, err := ParseTimeOfDay(timeStr)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	p, err := o.passenger(passengerID)
	if err != nil {
		return nil, err
	}

	candidates, err := SearchItineraries(o.catalog, p, origin, destination, date, earliest)
	if err != nil {
		return nil, err
	}
	o.candidates = candidates
	return candidates, nil
}

// Candidates returns the itineraries offered by the latest search.
func (o *Office) Candidates() []*Itinerary {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.candidates
}

// CommitItinerary books the chosen candidate for the passenger. Choice 0
// cancels, clearing the candidate list without booking. Any other
// out-of-range choice clears the list and fails.
func (o *Office) CommitItinerary(passengerID, choice int) (*Itinerary, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if choice == 0 {
		o.candidates = nil
		return nil, nil
	}
	if choice < 1 || choice > len(o.candidates) {
		o.candidates = nil
		return nil, NoSuchItineraryChoiceError{PassengerID: passengerID, Choice: choice}
	}
	p, err := o.passenger(passengerID)
	if err != nil {
		return nil, err
	}

	it := o.candidates[choice-1]
	it.SetBookingRef(o.refGen())
	p.Commit(it)
	o.dirty = true
	return it, nil
}

// SnapshotState hands the current catalog, passengers, and counter to a
// snapshot builder under the read lock.
func (o *Office) SnapshotState(capture func(catalog *Catalog, passengers []*Passenger, nextPassengerID int)) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]*Passenger, 0, len(o.passengers))
	for _, p := range o.passengers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	capture(o.catalog, out, o.passengerCounter)
}

// RestoreState replaces the whole office state from a loaded snapshot and
// clears pending candidates.
func (o *Office) RestoreState(catalog *Catalog, passengers []*Passenger, nextPassengerID int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.catalog = catalog
	o.passengers = make(map[int]*Passenger, len(passengers))
	for _, p := range passengers {
		o.passengers[p.ID()] = p
	}
	o.passengerCounter = nextPassengerID
	o.candidates = nil
	o.dirty = false
}
