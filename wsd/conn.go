package wsd

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sockrelay/sockrelay/event"
)

// The error returned when sending on a connection that has been closed.
var ErrClosed = errors.New("connection closed")

// Conn is a single live WebSocket session. The session id is minted here and
// stays opaque to everything above the transport.
type Conn struct {
	id   string
	ws   *websocket.Conn
	cfg  Config
	done chan struct{}

	inbound chan event.Inbound

	// Serializes data writes; control frames go through WriteControl which
	// gorilla allows concurrently.
	writeMu sync.Mutex

	closeOnce sync.Once
	onClose   func(*Conn)
}

func newConn(ws *websocket.Conn, cfg Config, onClose func(*Conn)) *Conn {
	c := &Conn{
		id:      uuid.NewString(),
		ws:      ws,
		cfg:     cfg,
		done:    make(chan struct{}),
		inbound: make(chan event.Inbound, cfg.InboundBuffer),
		onClose: onClose,
	}

	ws.SetReadLimit(cfg.MaxMessageSize)
	if cfg.PingInterval > 0 {
		c.keepalive()
	}
	go c.readLoop()
	return c
}

// ID returns the opaque transport-session identifier.
func (c *Conn) ID() string {
	return c.id
}

// RemoteAddr returns the remote network address of the client.
func (c *Conn) RemoteAddr() net.Addr {
	return c.ws.RemoteAddr()
}

// ReadEvent blocks until the next decoded inbound event. Once the connection
// is finished, for any reason, it returns io.EOF.
func (c *Conn) ReadEvent() (event.Inbound, error) {
	ev, ok := <-c.inbound
	if !ok {
		return nil, io.EOF
	}
	return ev, nil
}

// Send encodes and writes a single outbound event. Callers treat an error as
// a delivery failure, not a fault.
func (c *Conn) Send(ev event.Outbound) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	frame, err := event.EncodeFrame(ev)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, frame)
}

// Close tears the connection down. Safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.ws.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		err = c.ws.Close()
		if c.onClose != nil {
			c.onClose(c)
		}
	})
	return err
}

// readLoop decodes frames into inbound events until the connection dies.
// A frame that fails to parse is logged and skipped; a bad event is not a
// reason to drop the connection.
func (c *Conn) readLoop() {
	defer close(c.inbound)

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Printf("[%s] read: %v", c.id, err)
				}
			}
			return
		}

		var frame event.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			logger.Printf("[%s] bad frame skipped: %v", c.id, err)
			continue
		}
		ev, err := event.DecodeInbound(frame.Event, frame.Data)
		if err != nil {
			logger.Printf("[%s] %v", c.id, err)
			continue
		}

		select {
		case c.inbound <- ev:
		case <-c.done:
			return
		}
	}
}

// keepalive pings on an interval and expects traffic, pongs included, to
// arrive before the read deadline lapses.
func (c *Conn) keepalive() {
	c.ws.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	})

	go func() {
		ticker := time.NewTicker(c.cfg.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deadline := time.Now().Add(c.cfg.WriteTimeout)
				if err := c.ws.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					return
				}
			case <-c.done:
				return
			}
		}
	}()
}
