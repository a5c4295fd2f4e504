package railway

// Itinerary chains one or more segments into a passenger trip on a given
// date. The discount is snapshotted from the passenger's category when the
// itinerary is built and never re-read, even if the category changes before
// commit.
type Itinerary struct {
	displayID   int
	date        Date
	passengerID int
	discount    float64
	segments    []*Segment
	price       float64
	bookingRef  string
}

func NewItinerary(date Date, p *Passenger) *Itinerary {
	return &Itinerary{
		date:        date,
		passengerID: p.ID(),
		discount:    p.Category().Discount,
	}
}

func (it *Itinerary) AddSegment(seg *Segment) {
	it.segments = append(it.segments, seg)
	it.price += seg.Price()
}

func (it *Itinerary) Date() Date           { return it.date }
func (it *Itinerary) PassengerID() int     { return it.passengerID }
func (it *Itinerary) Segments() []*Segment { return it.segments }
func (it *Itinerary) Price() float64       { return it.price }

// RealPrice is the price after applying the snapshotted discount.
func (it *Itinerary) RealPrice() float64 {
	return it.price * (1 - it.discount)
}

func (it *Itinerary) Discount() float64 { return it.discount }

// DepartureServiceID identifies the service backing the first segment,
// which dominance pruning groups candidates by.
func (it *Itinerary) DepartureServiceID() int {
	return it.segments[0].ServiceID()
}

// Departure is the earliest stop departure across all segments.
func (it *Itinerary) Departure() TimeOfDay {
	first := true
	var min TimeOfDay
	for _, seg := range it.segments {
		for _, st := range seg.Stops() {
			if first || st.Departure.Before(min) {
				min = st.Departure
				first = false
			}
		}
	}
	return min
}

// Arrival is the latest stop departure across all segments.
func (it *Itinerary) Arrival() TimeOfDay {
	var max TimeOfDay
	for _, seg := range it.segments {
		for _, st := range seg.Stops() {
			if st.Departure.After(max) {
				max = st.Departure
			}
		}
	}
	return max
}

// Minutes is the door-to-door duration of the trip.
func (it *Itinerary) Minutes() int {
	return it.Departure().MinutesUntil(it.Arrival())
}

// DisplayID is the 1-based rank assigned by ranking (for candidates) or by
// travel-date order (for committed itineraries).
func (it *Itinerary) DisplayID() int      { return it.displayID }
func (it *Itinerary) setDisplayID(id int) { it.displayID = id }

// BookingRef is the reference assigned when the itinerary was committed;
// empty for uncommitted candidates.
func (it *Itinerary) BookingRef() string       { return it.bookingRef }
func (it *Itinerary) SetBookingRef(ref string) { it.bookingRef = ref }

// SetDiscount overrides the snapshotted discount. Only snapshot restore
// uses this; normal construction snapshots the passenger's category.
func (it *Itinerary) SetDiscount(d float64) { it.discount = d }
