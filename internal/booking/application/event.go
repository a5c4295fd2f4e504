package application

import (
	"github.com/railbook/railbook/pkg/domain"
)

// Event names double as the bus topics the events travel on.
const (
	EventPassengerRegistered = "PassengerRegistered"
	EventItineraryCommitted  = "ItineraryCommitted"
)

// BookingEventData is the payload shared by all booking events; the event
// name tells them apart on the bus.
type BookingEventData struct {
	PassengerID int     `json:"passengerId"`
	Name        string  `json:"name,omitempty"`
	BookingRef  string  `json:"bookingRef,omitempty"`
	Price       float64 `json:"price,omitempty"`
	RealPrice   float64 `json:"realPrice,omitempty"`
	Tier        string  `json:"tier,omitempty"`
}

type passengerRegisteredEvent struct {
	data BookingEventData
}

func (e passengerRegisteredEvent) EventName() string         { return EventPassengerRegistered }
func (e passengerRegisteredEvent) Payload() BookingEventData { return e.data }

func NewPassengerRegisteredEvent(data BookingEventData) domain.Event[BookingEventData] {
	return passengerRegisteredEvent{data: data}
}

type itineraryCommittedEvent struct {
	data BookingEventData
}

func (e itineraryCommittedEvent) EventName() string         { return EventItineraryCommitted }
func (e itineraryCommittedEvent) Payload() BookingEventData { return e.data }

func NewItineraryCommittedEvent(data BookingEventData) domain.Event[BookingEventData] {
	return itineraryCommittedEvent{data: data}
}

// NewBookingEvent rebuilds an event from the topic it arrived on and its
// decoded payload. Consumers reading from a broker use it to turn transport
// messages back into domain events.
func NewBookingEvent(name string, data BookingEventData) (domain.Event[BookingEventData], bool) {
	switch name {
	case EventPassengerRegistered:
		return NewPassengerRegisteredEvent(data), true
	case EventItineraryCommitted:
		return NewItineraryCommittedEvent(data), true
	default:
		return nil, false
	}
}
