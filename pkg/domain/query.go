package domain

// Query is a read-only request against system state.
type Query[T any] interface {
	QueryName() string
	Payload() T
}
