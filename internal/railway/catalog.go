package railway

import "sort"

// Catalog is the read-mostly registry of services, iterated in ascending
// service id order by the search engine.
type Catalog struct {
	services map[int]*Service
}

func NewCatalog() *Catalog {
	return &Catalog{services: make(map[int]*Service)}
}

// Add registers a service, replacing any previous service with the same id.
func (c *Catalog) Add(s *Service) {
	c.services[s.ID()] = s
}

func (c *Catalog) Service(id int) (*Service, error) {
	s, ok := c.services[id]
	if !ok {
		return nil, NoSuchServiceError{ID: id}
	}
	return s, nil
}

// Services returns all services ordered by ascending id.
func (c *Catalog) Services() []*Service {
	out := make([]*Service, 0, len(c.services))
	for _, s := range c.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// HasStation reports whether any service in the catalog calls at the named
// station.
func (c *Catalog) HasStation(name string) bool {
	for _, s := range c.services {
		if s.StopIndex(name) >= 0 {
			return true
		}
	}
	return false
}

// DepartingFrom returns the services whose first stop is the named station,
// ordered by first-stop departure time. It fails with NoSuchStationError
// when the name appears in no service at all.
func (c *Catalog) DepartingFrom(name string) ([]*Service, error) {
	if !c.HasStation(name) {
		return nil, NoSuchStationError{Name: name}
	}
	var out []*Service
	for _, s := range c.Services() {
		if len(s.Stops()) > 0 && s.FirstStop().Name == name {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FirstStop().Departure.Before(out[j].FirstStop().Departure)
	})
	return out, nil
}

// ArrivingAt returns the services whose last stop is the named station,
// ordered by last-stop departure time.
func (c *Catalog) ArrivingAt(name string) ([]*Service, error) {
	if !c.HasStation(name) {
		return nil, NoSuchStationError{Name: name}
	}
	var out []*Service
	for _, s := range c.Services() {
		if len(s.Stops()) > 0 && s.LastStop().Name == name {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastStop().Departure.Before(out[j].LastStop().Departure)
	})
	return out, nil
}
