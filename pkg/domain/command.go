package domain

// Command is a request to change system state. The payload carries the
// operation's input data.
type Command[T any] interface {
	CommandName() string
	Payload() T
}
