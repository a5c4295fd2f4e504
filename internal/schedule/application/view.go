package application

import (
	"github.com/railbook/railbook/internal/railway"
)

type StopView struct {
	Station   string `json:"station"`
	Departure string `json:"departure"`
}

type ServiceView struct {
	ID       int        `json:"id"`
	Price    float64    `json:"price"`
	Duration int        `json:"durationMinutes"`
	Stops    []StopView `json:"stops"`
}

func NewServiceView(s *railway.Service) ServiceView {
	view := ServiceView{
		ID:       s.ID(),
		Price:    s.Price(),
		Duration: s.DurationMinutes(),
	}
	for _, st := range s.Stops() {
		view.Stops = append(view.Stops, StopView{
			Station:   st.Name,
			Departure: st.Departure.String(),
		})
	}
	return view
}

func NewServiceViews(services []*railway.Service) []ServiceView {
	views := make([]ServiceView, 0, len(services))
	for _, s := range services {
		views = append(views, NewServiceView(s))
	}
	return views
}
