package realtime

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	notifusecase "social_backend/internal/feature/notifications/usecase"
)

// ErrConnectionSaturated is returned by Push when the client's send
// buffer is full. The event is dropped for that connection only.
var ErrConnectionSaturated = errors.New("connection send buffer full")

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
	// maxMessageSize bounds inbound frames; clients only send pongs.
	maxMessageSize = 512
)

// Event is the wire envelope for server-to-client pushes.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Client wraps a single websocket connection. Writes go through a
// buffered channel drained by writePump, so Push never blocks the
// caller holding registry or usecase state.
type Client struct {
	id     string
	userID uint
	conn   *websocket.Conn
	send   chan Event
	state  State
}

// NewClient wraps an upgraded websocket connection for the given user.
func NewClient(userID uint, conn *websocket.Conn) *Client {
	return &Client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		send:   make(chan Event, sendBuffer),
		state:  StateAuthenticated,
	}
}

var _ notifusecase.Connection = (*Client)(nil)

// ID returns the connection handle.
func (c *Client) ID() string {
	return c.id
}

// UserID returns the authenticated user this connection belongs to.
func (c *Client) UserID() uint {
	return c.userID
}

// Push enqueues an event for delivery. If the send buffer is full the
// event is dropped and ErrConnectionSaturated is returned; a slow
// consumer never stalls delivery to other connections.
func (c *Client) Push(event string, payload any) error {
	select {
	case c.send <- Event{Type: event, Data: payload}:
		return nil
	default:
		return ErrConnectionSaturated
	}
}

// writePump drains the send channel onto the websocket and keeps the
// connection alive with periodic pings. It exits when a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	// The send channel is never closed; after the peer disconnects the
	// next ping or event write fails and the pump exits.
	for {
		select {
		case event := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				slog.Warn("websocket write failed", "connection", c.id, "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump consumes inbound frames until the peer disconnects, then
// invokes onClose. Inbound payloads are ignored; the read loop exists
// to observe pongs and connection teardown.
func (c *Client) readPump(onClose func()) {
	defer func() {
		onClose()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
