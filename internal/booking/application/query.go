package application

import (
	"github.com/railbook/railbook/pkg/domain"
)

// SearchItinerariesData carries the route search inputs. Date is YYYY-MM-DD
// and Time is the earliest acceptable departure, HH:MM.
type SearchItinerariesData struct {
	PassengerID int    `json:"passengerId"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type searchItinerariesQuery struct {
	data SearchItinerariesData
}

func (q searchItinerariesQuery) QueryName() string              { return "SearchItineraries" }
func (q searchItinerariesQuery) Payload() SearchItinerariesData { return q.data }

func NewSearchItinerariesQuery(data SearchItinerariesData) domain.Query[SearchItinerariesData] {
	return searchItinerariesQuery{data: data}
}

// PassengerData identifies one passenger.
type PassengerData struct {
	PassengerID int `json:"passengerId"`
}

type getPassengerQuery struct {
	data PassengerData
}

func (q getPassengerQuery) QueryName() string      { return "GetPassenger" }
func (q getPassengerQuery) Payload() PassengerData { return q.data }

func NewGetPassengerQuery(data PassengerData) domain.Query[PassengerData] {
	return getPassengerQuery{data: data}
}

type listPassengersQuery struct {
	data PassengerData
}

func (q listPassengersQuery) QueryName() string      { return "ListPassengers" }
func (q listPassengersQuery) Payload() PassengerData { return q.data }

func NewListPassengersQuery() domain.Query[PassengerData] {
	return listPassengersQuery{}
}

type passengerItinerariesQuery struct {
	data PassengerData
}

func (q passengerItinerariesQuery) QueryName() string      { return "PassengerItineraries" }
func (q passengerItinerariesQuery) Payload() PassengerData { return q.data }

func NewPassengerItinerariesQuery(data PassengerData) domain.Query[PassengerData] {
	return passengerItinerariesQuery{data: data}
}
