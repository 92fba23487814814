package devserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType is the type of a WebSocket message.
type MessageType string

const (
	MessageSnapshot MessageType = "snapshot"
	MessageEvent    MessageType = "event"
	MessageError    MessageType = "error"
)

// Message is exchanged with live clients. Clients send events; the server
// sends snapshots and errors.
type Message struct {
	Type       MessageType `json:"type"`
	Generation uint64      `json:"generation,omitempty"`
	HTML       string      `json:"html,omitempty"`
	Node       int         `json:"node,omitempty"`
	Event      string      `json:"event,omitempty"`
	Value      string      `json:"value,omitempty"`
	Error      string      `json:"error,omitempty"`
}

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans out messages to connected WebSocket clients. A client that falls
// sendBuffer messages behind is disconnected.
type Hub struct {
	upgrader websocket.Upgrader
	onJoin   func()
	onLeave  func()

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in dev
			},
		},
	}
}

// Upgrade upgrades the request and registers the connection. greeting is
// queued before any broadcast reaches the client.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request, greeting Message) (*websocket.Conn, func(), error) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, nil, err
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if data, err := json.Marshal(greeting); err == nil {
		c.send <- data
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	if h.onJoin != nil {
		h.onJoin()
	}

	go h.writePump(c)
	return conn, func() { h.remove(c) }, nil
}

// writePump writes queued messages until the send channel is closed.
func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(c)
			// Drain so remove's close is observed.
			for range c.send {
			}
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	if ok && h.onLeave != nil {
		h.onLeave()
	}
}

// Broadcast queues msg for every client.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.remove(c)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.remove(c)
	}
}
