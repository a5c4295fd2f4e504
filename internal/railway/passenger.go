package railway

import "sort"

// Passenger owns a globally unique name, its current loyalty category, and
// the itineraries it has committed, kept in commit order because the
// loyalty window reads the most recent commits.
type Passenger struct {
	id          int
	name        string
	category    Category
	itineraries []*Itinerary
}

func NewPassenger(id int, name string) *Passenger {
	return &Passenger{
		id:       id,
		name:     name,
		category: NewCategory(TierNormal, 0, 0),
	}
}

func (p *Passenger) ID() int            { return p.id }
func (p *Passenger) Name() string       { return p.name }
func (p *Passenger) Category() Category { return p.category }

func (p *Passenger) setName(name string) { p.name = name }

// Commit books the itinerary: appends it, recomputes the loyalty tier from
// the rolling window of recent real prices, and accumulates travel minutes.
// The transition builds a fresh Category value.
func (p *Passenger) Commit(it *Itinerary) {
	p.itineraries = append(p.itineraries, it)

	spend := p.recentSpend()
	tier := NextTier(p.category.Tier, spend)
	p.category = NewCategory(tier, spend, p.category.Minutes+it.Minutes())
}

// recentSpend sums the real prices of the last loyaltyWindow commits.
func (p *Passenger) recentSpend() float64 {
	start := len(p.itineraries) - loyaltyWindow
	if start < 0 {
		start = 0
	}
	var spend float64
	for _, it := range p.itineraries[start:] {
		spend += it.RealPrice()
	}
	return spend
}

// Itineraries returns the committed itineraries ordered by ascending travel
// date, assigning 1-based display ranks. The underlying commit order is
// untouched.
func (p *Passenger) Itineraries() []*Itinerary {
	out := make([]*Itinerary, len(p.itineraries))
	copy(out, p.itineraries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date().Before(out[j].Date())
	})
	for i, it := range out {
		it.setDisplayID(i + 1)
	}
	return out
}

// ItinerariesInCommitOrder exposes the raw commit order for snapshotting.
func (p *Passenger) ItinerariesInCommitOrder() []*Itinerary {
	return p.itineraries
}

// RestoreCategory and RestoreItinerary rehydrate passenger state from a
// snapshot without re-running loyalty transitions.
func (p *Passenger) RestoreCategory(c Category) { p.category = c }

func (p *Passenger) RestoreItinerary(it *Itinerary) {
	p.itineraries = append(p.itineraries, it)
}
