package sockrelay

import "github.com/sockrelay/sockrelay/event"

// Presence announces registry joins and leaves to every other session.
// Delivery is fire-and-forget per recipient; the transport's broadcast
// primitive keeps recipient failures independent of each other.
type Presence struct {
	broadcaster Broadcaster
}

// NewPresence creates a presence announcer on top of a broadcast primitive.
func NewPresence(b Broadcaster) *Presence {
	return &Presence{broadcaster: b}
}

// Online announces that userID joined, to everyone except its own session.
func (p *Presence) Online(s Session, userID string) {
	p.broadcaster.SendToAllExcept(s.ID(), &event.UserOnline{UserID: userID})
}

// Offline announces that userID left, to every remaining session.
func (p *Presence) Offline(s Session, userID string) {
	p.broadcaster.SendToAllExcept(s.ID(), &event.UserOffline{UserID: userID})
}
