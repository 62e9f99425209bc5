package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub errors.
var (
	ErrConnectionNotFound = errors.New("connection not found")
	ErrAlreadyJoined      = errors.New("connection already joined another user channel")
	ErrEmptyUserID        = errors.New("user id is required")
)

// Conn is one client connection registered with the hub.
type Conn struct {
	id   string
	send chan []byte

	// guarded by Hub.mu
	userID string
}

// ID returns the connection id.
func (c *Conn) ID() string {
	return c.id
}

// Messages returns encoded frames queued for the client. The channel is
// closed when the hub forgets the connection.
func (c *Conn) Messages() <-chan []byte {
	return c.send
}

// Stats is a snapshot of hub state.
type Stats struct {
	Connections int   `json:"connections"`
	Channels    int   `json:"channels"`
	Dropped     int64 `json:"dropped"`
}

// Hub tracks live connections and their user channels. A slow client whose
// queue is full loses the frame; other clients are never blocked.
type Hub struct {
	mu       sync.RWMutex
	conns    map[string]*Conn
	channels map[string]map[string]*Conn

	bufferSize int
	dropped    atomic.Int64
	logger     *zap.SugaredLogger
}

// NewHub creates a hub whose connections queue up to bufferSize frames.
func NewHub(bufferSize int, logger *zap.SugaredLogger) *Hub {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Hub{
		conns:      make(map[string]*Conn),
		channels:   make(map[string]map[string]*Conn),
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// Connect registers a new connection. It receives broadcasts immediately
// and user notifications once joined.
func (h *Hub) Connect() *Conn {
	conn := &Conn{
		id:   uuid.NewString(),
		send: make(chan []byte, h.bufferSize),
	}

	h.mu.Lock()
	h.conns[conn.id] = conn
	h.mu.Unlock()

	return conn
}

// Join binds the connection to userID's channel. Joining the same user again
// is a no-op; a connection cannot move to a different user.
func (h *Hub) Join(connID, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return ErrConnectionNotFound
	}
	if conn.userID == userID {
		return nil
	}
	if conn.userID != "" {
		return ErrAlreadyJoined
	}

	conn.userID = userID
	members, ok := h.channels[userID]
	if !ok {
		members = make(map[string]*Conn)
		h.channels[userID] = members
	}
	members[connID] = conn
	return nil
}

// Disconnect forgets the connection and closes its queue.
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return
	}
	delete(h.conns, connID)
	if conn.userID != "" {
		if members := h.channels[conn.userID]; members != nil {
			delete(members, connID)
			if len(members) == 0 {
				delete(h.channels, conn.userID)
			}
		}
	}
	close(conn.send)
}

// Broadcast delivers to every connected client.
func (h *Hub) Broadcast(event EventType, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		h.logger.Errorw("failed to encode notification", "event", event, "error", err)
		return
	}
	h.Deliver("", data)
}

// PublishToUser delivers to every connection joined to userID's channel.
func (h *Hub) PublishToUser(userID string, event EventType, payload any) {
	if userID == "" {
		return
	}
	data, err := encode(event, payload)
	if err != nil {
		h.logger.Errorw("failed to encode notification", "event", event, "error", err)
		return
	}
	h.Deliver(userID, data)
}

// Deliver queues an encoded frame for userID's channel, or for every
// connection when userID is empty.
func (h *Hub) Deliver(userID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if userID == "" {
		for _, conn := range h.conns {
			h.enqueue(conn, data)
		}
		return
	}
	for _, conn := range h.channels[userID] {
		h.enqueue(conn, data)
	}
}

// sendDirect queues a frame for one connection, used for protocol replies.
func (h *Hub) sendDirect(connID string, event EventType, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if conn, ok := h.conns[connID]; ok {
		h.enqueue(conn, data)
	}
}

// enqueue must be called with h.mu held.
func (h *Hub) enqueue(conn *Conn, data []byte) {
	select {
	case conn.send <- data:
	default:
		h.dropped.Add(1)
		h.logger.Warnw("dropping notification for slow client",
			"conn_id", conn.id,
			"user_id", conn.userID,
		)
	}
}

// Subscribers returns how many connections are joined to userID's channel.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[userID])
}

// Stats returns a snapshot of hub state.
func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Stats{
		Connections: len(h.conns),
		Channels:    len(h.channels),
		Dropped:     h.dropped.Load(),
	}
}

func encode(event EventType, payload any) ([]byte, error) {
	return json.Marshal(Message{Event: event, Payload: payload})
}
