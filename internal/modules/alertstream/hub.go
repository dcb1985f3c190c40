// Package alertstream pushes freshly created alerts to connected recipients
// over websockets. Delivery is best-effort; the database rows are the source
// of truth and slow or absent clients simply catch up via GET /alerts/mine.
package alertstream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"reservasalas/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Event is the frame pushed to clients.
type Event struct {
	Type  string       `json:"type"`
	Alert domain.Alert `json:"alert"`
}

const EventNewAlert = "new_alert"

type connection struct {
	ci   string
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks one connection per recipient CI.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*connection
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.connections[c.ci]; ok {
		close(old.send)
	}
	h.connections[c.ci] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.ci]; ok && existing == c {
		delete(h.connections, c.ci)
		close(c.send)
	}
}

// Push delivers the alert to its recipient if connected. Never blocks.
func (h *Hub) Push(alert domain.Alert) {
	data, err := json.Marshal(&Event{Type: EventNewAlert, Alert: alert})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.connections[alert.Recipient]; ok {
		select {
		case c.send <- data:
		default:
			// Client too slow — skip, it will fetch the row later.
		}
	}
}

// ServeWS upgrades the request and pumps events until disconnect.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, ci string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &connection{
		ci:   ci,
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c) // blocks until disconnect
	return nil
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Clients never send application frames; the loop only services
	// control messages and detects disconnects.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
