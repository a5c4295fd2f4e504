package railway

import "fmt"

// Stop is one scheduled halt within a service. Stops exist only inside the
// service that owns them; the same station name may appear in many services.
type Stop struct {
	Name      string
	Departure TimeOfDay
}

// Service is a single scheduled train run: an id, a base price for the full
// run, and an ordered sequence of stops with strictly increasing departure
// times. Services are immutable once loaded into the catalog.
type Service struct {
	id    int
	price float64
	stops []Stop
}

func NewService(id int, price float64) *Service {
	return &Service{id: id, price: price}
}

// AppendStop adds a stop to the end of the run. Departure times must
// strictly increase along the run.
func (s *Service) AppendStop(name string, departure TimeOfDay) error {
	if n := len(s.stops); n > 0 && !s.stops[n-1].Departure.Before(departure) {
		return fmt.Errorf("service %d: stop %q at %s does not depart after %s",
			s.id, name, departure, s.stops[n-1].Departure)
	}
	s.stops = append(s.stops, Stop{Name: name, Departure: departure})
	return nil
}

func (s *Service) ID() int        { return s.id }
func (s *Service) Price() float64 { return s.price }

// Stops returns the run in order. Callers must not modify the slice.
func (s *Service) Stops() []Stop { return s.stops }

func (s *Service) FirstStop() Stop { return s.stops[0] }
func (s *Service) LastStop() Stop  { return s.stops[len(s.stops)-1] }

// DurationMinutes is the elapsed time between the first and last stop.
func (s *Service) DurationMinutes() int {
	if len(s.stops) < 2 {
		return 0
	}
	return s.FirstStop().Departure.MinutesUntil(s.LastStop().Departure)
}

// StopIndex returns the position of the named station in the run, or -1.
// Station names compare case-sensitively.
func (s *Service) StopIndex(name string) int {
	for i, st := range s.stops {
		if st.Name == name {
			return i
		}
	}
	return -1
}

// StopNamed returns the stop for the named station, if the service calls
// there.
func (s *Service) StopNamed(name string) (Stop, bool) {
	if i := s.StopIndex(name); i >= 0 {
		return s.stops[i], true
	}
	return Stop{}, false
}
