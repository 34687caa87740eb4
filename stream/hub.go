// Package stream fans rendered frames out to websocket clients.
package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/achilleasa/ptlive/log"
	"github.com/achilleasa/ptlive/renderer"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 5 * time.Second

	// Default number of frames buffered per client before it is dropped.
	DefaultQueueLen = 8
)

var (
	logger = log.New("stream")

	ErrClosed = errors.New("stream: hub closed")
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub is an http.Handler that upgrades requests to websocket connections
// and broadcasts every consumed frame to them as JSON. Clients whose queue
// is full are disconnected.
type Hub struct {
	upgrader websocket.Upgrader
	queueLen int

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	closed  bool
}

// Create a hub buffering up to queueLen frames per client. A non-positive
// queueLen selects DefaultQueueLen.
func NewHub(queueLen int) *Hub {
	if queueLen <= 0 {
		queueLen = DefaultQueueLen
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		queueLen: queueLen,
		clients:  make(map[*client]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, ErrClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warningf("upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, h.queueLen)}
	if !h.register(c) {
		conn.Close()
		return
	}
	logger.Infof("client %s connected", r.RemoteAddr)

	go h.writeLoop(c)
	h.readLoop(c)
}

// Get the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Name() string {
	return "stream"
}

// Broadcast f to all connected clients. New clients receive the most recent
// frame as soon as they connect.
func (h *Hub) Consume(f renderer.Frame) error {
	msg, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("stream: encoding frame %d: %w", f.Snapshot.Frame, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.last = msg
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			logger.Warningf("dropping slow client %s", c.remoteAddr())
			h.removeLocked(c)
		}
	}
	return nil
}

// Disconnect all clients and reject new ones.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
	return nil
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Drain the send queue into the connection. A closed queue ends the
// connection.
func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("write to %s failed: %v", c.remoteAddr(), err)
			h.remove(c)
			for range c.send {
			}
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Discard incoming messages until the peer goes away.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("client %s: %v", c.remoteAddr(), err)
			}
			break
		}
	}
	h.remove(c)
	logger.Infof("client %s disconnected", c.remoteAddr())
}

func (c *client) remoteAddr() string {
	if c.conn == nil {
		return "<detached>"
	}
	return c.conn.RemoteAddr().String()
}
