package railway

// Segment is the portion of one service actually travelled within one
// itinerary leg: a contiguous stop range [first, last] of the owning
// service. Its price is the service price scaled by the share of the
// service duration the range covers.
type Segment struct {
	service *Service
	first   int
	last    int
	price   float64
}

// NewSegment builds the leg of service s between the named boarding and
// alighting stations. Both must be stops of s, in travel order.
func NewSegment(s *Service, from, to string) (*Segment, error) {
	first := s.StopIndex(from)
	if first < 0 {
		return nil, NoSuchStationError{Name: from}
	}
	last := s.StopIndex(to)
	if last < 0 {
		return nil, NoSuchStationError{Name: to}
	}
	if last < first {
		first, last = last, first
	}

	serviceDuration := s.DurationMinutes()
	if serviceDuration == 0 {
		return nil, ErrZeroDurationService
	}
	segmentDuration := s.Stops()[first].Departure.MinutesUntil(s.Stops()[last].Departure)

	return &Segment{
		service: s,
		first:   first,
		last:    last,
		price:   s.Price() * float64(segmentDuration) / float64(serviceDuration),
	}, nil
}

func (g *Segment) ServiceID() int { return g.service.ID() }
func (g *Segment) Price() float64 { return g.price }

// Stops returns the stops covered by the leg, boarding to alighting.
func (g *Segment) Stops() []Stop {
	return g.service.Stops()[g.first : g.last+1]
}

func (g *Segment) FirstStop() Stop { return g.service.Stops()[g.first] }
func (g *Segment) LastStop() Stop  { return g.service.Stops()[g.last] }
