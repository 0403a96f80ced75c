package core

// AnyOrigin is the unrestricted target origin.
const AnyOrigin = "*"

// Window is a deliverable message target.
type Window interface {
	// PostMessage hands message to the host transport. Delivery is fire and
	// forget: a nil error only means the message was accepted for delivery.
	PostMessage(message, targetOrigin string) error
}

// Handle is the parent's reference to a child context. A child that spans
// several frames exposes them through Frames; the Handle itself is the
// top-level target.
//
// Source matching compares handles with ==, so implementations must be
// comparable (typically pointers).
type Handle interface {
	Window
	Frames() []Window
	Close() error
	Closed() bool
}

// Opener opens child contexts on behalf of the parent.
type Opener interface {
	Open(cfg OpenConfig) (Handle, error)
}

// Envelope is a raw inbound message as delivered by the host environment.
type Envelope struct {
	Data   string
	Source Window
	Origin string
}
