package domain

// IDGenerator produces a fresh identifier on each call.
type IDGenerator[T any] func() T
