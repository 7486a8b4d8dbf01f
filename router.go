package sockrelay

import "github.com/sockrelay/sockrelay/event"

// Router turns an inbound event from one session into a targeted outbound
// event to another, resolving targets through the registry. Routing is
// best-effort: an addressed event whose target has no live binding is
// dropped, except call-user which reports failure back to the caller so the
// UI can stop ringing.
type Router struct {
	registry *Registry
}

// NewRouter creates a router reading from the given registry.
func NewRouter(registry *Registry) *Router {
	return &Router{registry: registry}
}

// Route dispatches a single inbound event from src. It never returns an
// error; every failure mode here is either absorbed or surfaced to the
// client as an event.
func (r *Router) Route(src Session, ev event.Inbound) {
	switch ev := ev.(type) {
	case *event.SendMessage:
		r.deliver(ev.ReceiverID, &event.ReceiveMessage{
			MessageID:  ev.MessageID,
			SenderID:   ev.SenderID,
			ReceiverID: ev.ReceiverID,
			Text:       ev.Text,
			CreatedAt:  ev.CreatedAt,
		})
	case *event.Typing:
		// The sender's identity comes from the registry, not the payload.
		userID, ok := r.registry.ResolveUser(src)
		if !ok {
			logger.Debugf("[%s] typing from unbound session dropped", src.ID())
			return
		}
		r.deliver(ev.ReceiverID, &event.UserTyping{UserID: userID, IsTyping: ev.IsTyping})
	case *event.CallUser:
		target, ok := r.registry.ResolveSession(ev.To)
		if !ok {
			r.send(src, &event.CallFailed{Reason: "User not online"})
			return
		}
		r.send(target, &event.IncomingCall{From: ev.From, Signal: ev.Signal, CallType: ev.CallType})
	case *event.AcceptCall:
		r.deliver(ev.To, &event.CallAccepted{Signal: ev.Signal})
	case *event.RejectCall:
		r.deliver(ev.To, &event.CallRejected{})
	case *event.EndCall:
		r.deliver(ev.To, &event.CallEnded{})
	case *event.IceCandidate:
		r.deliver(ev.To, &event.Candidate{Candidate: ev.Candidate})
	case *event.Join:
		// Lifecycle event, bound by the host before routing. Nothing to do.
	default:
		logger.Warningf("[%s] no route for %s", src.ID(), ev.Kind())
	}
}

// deliver sends ev to the session bound to userID, dropping silently when
// there is no live binding.
func (r *Router) deliver(userID string, ev event.Outbound) {
	target, ok := r.registry.ResolveSession(userID)
	if !ok {
		logger.Debugf("%s dropped: %q is not online", ev.Kind(), userID)
		return
	}
	r.send(target, ev)
}

// send is fire-and-forget. A session that disconnected between resolution
// and transmission shows up as a send error here, which is absorbed.
func (r *Router) send(s Session, ev event.Outbound) {
	if err := s.Send(ev); err != nil {
		logger.Debugf("[%s] send %s failed: %s", s.ID(), ev.Kind(), err)
	}
}
