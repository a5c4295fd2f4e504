package railway

import "testing"

// mustService builds a service from alternating "HH:MM", "Station" pairs.
func mustService(t *testing.T, id int, price float64, pairs ...string) *Service {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatalf("odd stop pair count %d", len(pairs))
	}
	s := NewService(id, price)
	for i := 0; i < len(pairs); i += 2 {
		departure, err := ParseTimeOfDay(pairs[i])
		if err != nil {
			t.Fatalf("parsing %q: %v", pairs[i], err)
		}
		if err := s.AppendStop(pairs[i+1], departure); err != nil {
			t.Fatalf("appending stop %q: %v", pairs[i+1], err)
		}
	}
	return s
}

func mustCatalog(t *testing.T, services ...*Service) *Catalog {
	t.Helper()
	c := NewCatalog()
	for _, s := range services {
		c.Add(s)
	}
	return c
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("parsing date %q: %v", s, err)
	}
	return d
}

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parsing time %q: %v", s, err)
	}
	return tod
}
