// Package socket streams session frames to websocket clients.
package socket

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	defaultSendBuffer = 32
	defaultWriteWait  = 5 * time.Second

	// closedRetention bounds how long a closed room keeps refusing subscribers.
	closedRetention = 5 * time.Minute
)

// ErrRoomClosed is returned when subscribing to a room that already ended.
var ErrRoomClosed = errors.New("room is closed")

var _ i.StreamHub = &Hub{}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub groups websocket clients into rooms keyed by session ID. Every frame
// is sent as one binary message: a record type byte followed by the payload.
type Hub struct {
	upgrader   websocket.Upgrader
	rooms      map[uuid.UUID]map[*client]struct{}
	closed     map[uuid.UUID]time.Time // Room -> when it was closed.
	logger     i.Logger
	sendBuffer int
	writeWait  time.Duration
	sync.Mutex
}

// Option configures a Hub.
type Option func(*Hub)

// WithSendBuffer sets how many frames a client may lag behind before it is dropped.
func WithSendBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.sendBuffer = n
		}
	}
}

// WithCheckOrigin overrides the upgrader's origin check.
func WithCheckOrigin(check func(*http.Request) bool) Option {
	return func(h *Hub) {
		h.upgrader.CheckOrigin = check
	}
}

// NewHub creates an empty hub.
func NewHub(logger i.Logger, opts ...Option) *Hub {
	h := &Hub{
		rooms:      make(map[uuid.UUID]map[*client]struct{}),
		closed:     make(map[uuid.UUID]time.Time),
		logger:     logger,
		sendBuffer: defaultSendBuffer,
		writeWait:  defaultWriteWait,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeRoom upgrades the request and subscribes the connection to room.
// It returns once the connection is registered. A room that is already
// closed fails with ErrRoomClosed before the upgrade; one that closes during
// the upgrade gets its connection closed straight away.
func (h *Hub) ServeRoom(w http.ResponseWriter, r *http.Request, room uuid.UUID) error {
	if h.isClosed(room) {
		return ErrRoomClosed
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{conn: conn, send: make(chan []byte, h.sendBuffer)}
	if !h.subscribe(room, c) {
		close(c.send)
	}

	go h.writePump(c)
	go h.readPump(room, c)
	return nil
}

// subscribe adds c to room unless the room is closed.
func (h *Hub) subscribe(room uuid.UUID, c *client) bool {
	h.Lock()
	defer h.Unlock()

	if _, ok := h.closed[room]; ok {
		return false
	}

	clients, ok := h.rooms[room]
	if !ok {
		clients = make(map[*client]struct{})
		h.rooms[room] = clients
	}
	clients[c] = struct{}{}
	return true
}

func (h *Hub) isClosed(room uuid.UUID) bool {
	h.Lock()
	defer h.Unlock()
	_, ok := h.closed[room]
	return ok
}

// Broadcast implements i.Broadcaster. Clients whose buffer is full are dropped.
func (h *Hub) Broadcast(room uuid.UUID, recordType byte, payload []byte) {
	frame := make([]byte, 0, len(payload)+1)
	frame = append(frame, recordType)
	frame = append(frame, payload...)

	h.Lock()
	defer h.Unlock()

	for c := range h.rooms[room] {
		select {
		case c.send <- frame:
		default:
			h.logger.Warning(fmt.Sprintf("dropping slow client from room %s", room))
			h.removeLocked(room, c)
		}
	}
}

// CloseRoom implements i.Broadcaster. Pending frames are flushed before
// each connection is closed, and later subscribers are refused.
func (h *Hub) CloseRoom(room uuid.UUID) {
	h.Lock()
	defer h.Unlock()

	for c := range h.rooms[room] {
		close(c.send)
	}
	delete(h.rooms, room)

	now := time.Now()
	for r, at := range h.closed {
		if now.Sub(at) > closedRetention {
			delete(h.closed, r)
		}
	}
	h.closed[room] = now
}

// Subscribers returns the number of clients watching room.
func (h *Hub) Subscribers(room uuid.UUID) int {
	h.Lock()
	defer h.Unlock()
	return len(h.rooms[room])
}

func (h *Hub) removeLocked(room uuid.UUID, c *client) {
	clients, ok := h.rooms[room]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}

	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.rooms, room)
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for frame := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(h.writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			return
		}
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(h.writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
}

// readPump discards client messages and unsubscribes the client once the
// connection fails.
func (h *Hub) readPump(room uuid.UUID, c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}

	h.Lock()
	h.removeLocked(room, c)
	h.Unlock()
	c.conn.Close()
}
