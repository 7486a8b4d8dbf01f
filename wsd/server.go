package wsd

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sockrelay/sockrelay/event"
)

// Config holds the transport tunables for a listener and its connections.
type Config struct {
	// PingInterval between keepalive pings. Zero disables keepalive.
	PingInterval time.Duration
	// ReadTimeout is how long a connection may stay silent before it is
	// considered dead. Only enforced when keepalive is on.
	ReadTimeout time.Duration
	// WriteTimeout bounds a single frame write.
	WriteTimeout time.Duration
	// MaxMessageSize caps a single inbound frame, in bytes.
	MaxMessageSize int64
	// InboundBuffer is the per-connection decoded event buffer.
	InboundBuffer int
	// AllowedOrigins restricts the Origin header on upgrade. Empty allows
	// any origin.
	AllowedOrigins []string
}

// DefaultConfig returns the config used when the caller has no opinions.
func DefaultConfig() Config {
	return Config{
		PingInterval:   30 * time.Second,
		ReadTimeout:    75 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 1 << 20,
		InboundBuffer:  16,
	}
}

// WSListener accepts WebSocket sessions and tracks the live set. It is the
// transport boundary: it knows nothing about users or routing.
type WSListener struct {
	// HandlerFunc is called for each accepted session, one goroutine per
	// session, and must not return until the session is finished.
	HandlerFunc func(*Conn)

	socket net.Listener
	server *http.Server
	cfg    Config

	mu    sync.Mutex
	conns map[string]*Conn

	closeOnce sync.Once
}

// ListenWS makes a WebSocket listener socket. Upgrades are served on /ws.
func ListenWS(laddr string, cfg Config) (*WSListener, error) {
	socket, err := net.Listen("tcp", laddr)
	if err != nil {
		return nil, err
	}

	l := &WSListener{
		socket: socket,
		cfg:    cfg,
		conns:  map[string]*Conn{},
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     checkOrigin(cfg.AllowedOrigins),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Printf("upgrade failed from %s: %v", r.RemoteAddr, err)
			return
		}
		l.handleConn(ws)
	})
	l.server = &http.Server{Handler: mux}

	return l, nil
}

// Addr returns the network address the listener is bound to.
func (l *WSListener) Addr() net.Addr {
	return l.socket.Addr()
}

// Serve accepts sessions until the listener is closed.
func (l *WSListener) Serve() error {
	err := l.server.Serve(l.socket)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close shuts the listener down and disconnects every live session.
func (l *WSListener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		err = l.server.Close()

		l.mu.Lock()
		conns := make([]*Conn, 0, len(l.conns))
		for _, c := range l.conns {
			conns = append(conns, c)
		}
		l.mu.Unlock()

		for _, c := range conns {
			c.Close()
		}
	})
	return err
}

// SendToAllExcept delivers ev to every live session except the one with the
// given session id. Each delivery is independent; one dead recipient must
// not keep the rest from hearing about it.
func (l *WSListener) SendToAllExcept(exceptID string, ev event.Outbound) {
	l.mu.Lock()
	conns := make([]*Conn, 0, len(l.conns))
	for _, c := range l.conns {
		if c.ID() == exceptID {
			continue
		}
		conns = append(conns, c)
	}
	l.mu.Unlock()

	for _, c := range conns {
		if err := c.Send(ev); err != nil {
			logger.Printf("[%s] broadcast %s failed: %v", c.ID(), ev.Kind(), err)
		}
	}
}

// handleConn runs inside the http handler goroutine, which gorilla has
// hijacked; it stays alive exactly as long as the session does.
func (l *WSListener) handleConn(ws *websocket.Conn) {
	conn := newConn(ws, l.cfg, l.drop)

	l.mu.Lock()
	l.conns[conn.ID()] = conn
	l.mu.Unlock()

	defer conn.Close()
	if l.HandlerFunc != nil {
		l.HandlerFunc(conn)
	}
}

func (l *WSListener) drop(c *Conn) {
	l.mu.Lock()
	delete(l.conns, c.ID())
	l.mu.Unlock()
}

func checkOrigin(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}
