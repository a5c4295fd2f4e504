package application

import (
	"fmt"

	"github.com/railbook/railbook/internal/railway"
)

// View types returned by queries. They are plain serializable projections
// of the domain objects.

type StopView struct {
	Station   string `json:"station"`
	Departure string `json:"departure"`
}

type SegmentView struct {
	ServiceID int        `json:"serviceId"`
	Price     float64    `json:"price"`
	Stops     []StopView `json:"stops"`
}

type ItineraryView struct {
	ID         int           `json:"id"`
	Date       string        `json:"date"`
	Departure  string        `json:"departure"`
	Arrival    string        `json:"arrival"`
	Price      float64       `json:"price"`
	RealPrice  float64       `json:"realPrice"`
	BookingRef string        `json:"bookingRef,omitempty"`
	Segments   []SegmentView `json:"segments"`
}

type PassengerView struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Tier        string  `json:"tier"`
	Discount    float64 `json:"discount"`
	Itineraries int     `json:"itineraries"`
	Spend       float64 `json:"spend"`
	// TravelTime is the accumulated travel time rendered as HH:MM.
	TravelTime string `json:"travelTime"`
}

func NewItineraryView(it *railway.Itinerary) ItineraryView {
	view := ItineraryView{
		ID:         it.DisplayID(),
		Date:       it.Date().String(),
		Departure:  it.Departure().String(),
		Arrival:    it.Arrival().String(),
		Price:      it.Price(),
		RealPrice:  it.RealPrice(),
		BookingRef: it.BookingRef(),
	}
	for _, seg := range it.Segments() {
		segView := SegmentView{
			ServiceID: seg.ServiceID(),
			Price:     seg.Price(),
		}
		for _, st := range seg.Stops() {
			segView.Stops = append(segView.Stops, StopView{
				Station:   st.Name,
				Departure: st.Departure.String(),
			})
		}
		view.Segments = append(view.Segments, segView)
	}
	return view
}

func NewItineraryViews(its []*railway.Itinerary) []ItineraryView {
	views := make([]ItineraryView, 0, len(its))
	for _, it := range its {
		views = append(views, NewItineraryView(it))
	}
	return views
}

func NewPassengerView(p *railway.Passenger) PassengerView {
	cat := p.Category()
	return PassengerView{
		ID:          p.ID(),
		Name:        p.Name(),
		Tier:        cat.Tier.String(),
		Discount:    cat.Discount,
		Itineraries: len(p.ItinerariesInCommitOrder()),
		Spend:       cat.Spend,
		TravelTime:  fmt.Sprintf("%02d:%02d", cat.Minutes/60, cat.Minutes%60),
	}
}
