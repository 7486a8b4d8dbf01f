package sockrelay

import "github.com/sockrelay/sockrelay/event"

// Session is a live transport connection handle, opaque to the routing core.
// The transport creates one per connection and destroys it when the
// connection closes.
type Session interface {
	// ID is the transport-session identifier, unique among live sessions.
	ID() string
	// Send delivers a single outbound event. An error means the delivery
	// failed; it carries no routing significance.
	Send(ev event.Outbound) error
}

// Broadcaster is the one-to-many send primitive provided by the transport.
type Broadcaster interface {
	// SendToAllExcept delivers ev to every live session except the one with
	// the given session id. Each delivery is independent of the others.
	SendToAllExcept(exceptID string, ev event.Outbound)
}
