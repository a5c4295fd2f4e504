package railway

import "sort"

// SearchItineraries enumerates feasible itineraries from origin to
// destination departing at or after earliest, over the catalog's services in
// ascending id order. Direct runs and one-connection combinations are
// considered; the candidate list is then dominance-pruned, ranked, and
// assigned 1-based display ids.
//
// Both station names must exist somewhere in the catalog, otherwise the
// search fails with NoSuchStationError before any service is examined.
func SearchItineraries(c *Catalog, p *Passenger, origin, destination string, date Date, earliest TimeOfDay) ([]*Itinerary, error) {
	if !c.HasStation(origin) {
		return nil, NoSuchStationError{Name: origin}
	}
	if !c.HasStation(destination) {
		return nil, NoSuchStationError{Name: destination}
	}

	candidates, err := collectCandidates(c.Services(), p, origin, destination, date, earliest)
	if err != nil {
		return nil, err
	}

	ranked := rankItineraries(pruneDominated(candidates))
	return ranked, nil
}

// collectCandidates evaluates each service once against the original origin.
// A service either yields a direct itinerary, acts as the first leg of
// two-service connections, or is skipped.
func collectCandidates(services []*Service, p *Passenger, origin, destination string, date Date, earliest TimeOfDay) ([]*Itinerary, error) {
	var candidates []*Itinerary

	for i, s := range services {
		oi := s.StopIndex(origin)
		if oi < 0 {
			continue
		}
		board := s.Stops()[oi]
		if board.Departure.Before(earliest) {
			continue
		}

		// Direct run: the service also calls at the destination, strictly
		// after the boarding stop.
		if di := s.StopIndex(destination); di >= 0 && board.Departure.Before(s.Stops()[di].Departure) {
			seg, err := NewSegment(s, origin, destination)
			if err != nil {
				return nil, err
			}
			it := NewItinerary(date, p)
			it.AddSegment(seg)
			candidates = append(candidates, it)
			continue
		}

		// Connection attempt: ride s onward from the origin and try to
		// change onto any later service at each stop along the way.
		for j := oi + 1; j < len(s.Stops()); j++ {
			via := s.Stops()[j]
			for _, t := range services[i+1:] {
				vi := t.StopIndex(via.Name)
				ti := t.StopIndex(destination)
				if vi < 0 || ti < 0 {
					continue
				}
				change := t.Stops()[vi]
				// The second leg must depart the shared stop strictly after
				// the first leg reaches it, and must still be travelling
				// toward the destination.
				if !via.Departure.Before(change.Departure) {
					continue
				}
				if !change.Departure.Before(t.Stops()[ti].Departure) {
					continue
				}

				first, err := NewSegment(s, origin, via.Name)
				if err != nil {
					return nil, err
				}
				second, err := NewSegment(t, via.Name, destination)
				if err != nil {
					return nil, err
				}
				it := NewItinerary(date, p)
				it.AddSegment(first)
				it.AddSegment(second)
				candidates = append(candidates, it)
			}
		}
	}

	return candidates, nil
}

// pruneDominated drops multi-segment candidates that share a departure
// service with an earlier-arriving alternative. One-segment itineraries are
// never pruned.
func pruneDominated(candidates []*Itinerary) []*Itinerary {
	earliest := make(map[int]TimeOfDay)
	for _, it := range candidates {
		sid := it.DepartureServiceID()
		if best, ok := earliest[sid]; !ok || it.Arrival().Before(best) {
			earliest[sid] = it.Arrival()
		}
	}

	kept := make([]*Itinerary, 0, len(candidates))
	winner := make(map[int]bool)
	for _, it := range candidates {
		if len(it.Segments()) == 1 {
			kept = append(kept, it)
			continue
		}
		sid := it.DepartureServiceID()
		if it.Arrival() == earliest[sid] && !winner[sid] {
			kept = append(kept, it)
			winner[sid] = true
		}
	}
	return kept
}

// rankItineraries orders survivors by (departure, arrival, price) and
// assigns 1-based display ids in rank order.
func rankItineraries(its []*Itinerary) []*Itinerary {
	sort.SliceStable(its, func(i, j int) bool {
		a, b := its[i], its[j]
		if a.Departure() != b.Departure() {
			return a.Departure().Before(b.Departure())
		}
		if a.Arrival() != b.Arrival() {
			return a.Arrival().Before(b.Arrival())
		}
		return a.Price() < b.Price()
	})
	for i, it := range its {
		it.setDisplayID(i + 1)
	}
	return its
}
