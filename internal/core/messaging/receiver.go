package messaging

// Receiver is notified of every message published by a publisher it is
// registered with. Implementations are compared by identity when removed, so
// they must be comparable (typically a pointer).
type Receiver interface {
	Deliver(msg Message) error
}

// Subscribable is the registration surface of a publisher.
type Subscribable interface {
	// AddListener registers r. Registering the same receiver twice results
	// in two deliveries per publish.
	AddListener(r Receiver)
	// RemoveListener removes one registration of r and reports whether one
	// was found.
	RemoveListener(r Receiver) bool
}
