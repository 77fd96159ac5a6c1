// Package web streams simulation snapshots to browser viewers over
// websockets. It is read-only: viewers observe, they cannot mutate the
// world, and a slow viewer never blocks the simulation loop.
package web

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub fans simulation snapshots out to connected websocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Broadcast sends a snapshot to every connected client. Clients that fail
// to accept the write are dropped; the caller is never blocked beyond the
// websocket write deadline.
func (h *Hub) Broadcast(snapshot interface{}) {
	h.mu.Lock()
	list := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		list = append(list, c)
	}
	h.mu.Unlock()

	for _, c := range list {
		if err := c.send(snapshot); err != nil {
			slog.Warn("viewer send failed, dropping client", "error", err)
			h.drop(c)
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.conn.Close()
}

// Handler returns the websocket upgrade handler for the /ws endpoint.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "error", err)
			return
		}
		c := &client{conn: conn}
		h.mu.Lock()
		h.clients[c] = struct{}{}
		h.mu.Unlock()

		// Drain (and ignore) inbound messages until the client goes away.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					h.drop(c)
					return
				}
			}
		}()
	}
}

// Serve starts the viewer HTTP server in a goroutine.
func Serve(addr string, hub *Hub) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.Handler())

	go func() {
		slog.Info("viewer listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("viewer server stopped", "error", err)
		}
	}()
}
