package domain

// Event is a fact about something that already happened.
type Event[T any] interface {
	EventName() string
	Payload() T
}
