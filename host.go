package sockrelay

import (
	"io"

	"github.com/sockrelay/sockrelay/event"
	"github.com/sockrelay/sockrelay/wsd"
)

// Host is the bridge between the wsd transport and the routing core. It owns
// the session lifecycle: a connection exists from the transport's point of
// view the moment it is accepted, but only enters the registry once it sends
// a join.
type Host struct {
	listener *wsd.WSListener
	registry *Registry
	router   *Router
	presence *Presence

	// Version string reported by the status collaborator.
	Version string
}

// NewHost creates a Host on top of an existing listener.
func NewHost(listener *wsd.WSListener) *Host {
	registry := NewRegistry()
	return &Host{
		listener: listener,
		registry: registry,
		router:   NewRouter(registry),
		presence: NewPresence(listener),
	}
}

// ActiveUserCount reports the number of currently bound users. Exposed for
// the external status/health collaborator; the host itself serves no HTTP.
func (h *Host) ActiveUserCount() int {
	return h.registry.Count()
}

// Connect drives a single session: consume its events until the transport
// reports it closed, then clean up whatever binding it had.
func (h *Host) Connect(conn *wsd.Conn) {
	defer conn.Close()

	logger.Debugf("[%s] connected from %s", conn.ID(), conn.RemoteAddr())

	for {
		ev, err := conn.ReadEvent()
		if err == io.EOF {
			// Closed
			break
		} else if err != nil {
			logger.Errorf("[%s] read error: %s", conn.ID(), err)
			break
		}
		h.handle(conn, ev)
	}

	h.disconnect(conn)
}

// Serve our relay onto the listener.
func (h *Host) Serve() {
	h.listener.HandlerFunc = h.Connect
	h.listener.Serve()
}

func (h *Host) handle(conn *wsd.Conn, ev event.Inbound) {
	if join, ok := ev.(*event.Join); ok {
		h.join(conn, join.UserID)
		return
	}
	h.router.Route(conn, ev)
}

// join binds the session and announces it. A join without a user id is
// ignored; it is not worth closing the connection over.
func (h *Host) join(conn *wsd.Conn, userID string) {
	if userID == "" {
		logger.Infof("[%s] join without userId ignored", conn.ID())
		return
	}
	h.registry.Register(userID, conn)
	h.presence.Online(conn, userID)
	logger.Infof("[%s] joined as %q (connected: %d)", conn.ID(), userID, h.registry.Count())
}

// disconnect removes the session's binding, if it had one, and announces the
// user offline. Disconnect before any join is a normal, quiet path.
func (h *Host) disconnect(conn *wsd.Conn) {
	userID, ok := h.registry.Remove(conn)
	if !ok {
		logger.Debugf("[%s] disconnected without a binding", conn.ID())
		return
	}
	h.presence.Offline(conn, userID)
	logger.Infof("[%s] %q left (connected: %d)", conn.ID(), userID, h.registry.Count())
}
