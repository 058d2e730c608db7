package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/Temutjin2k/agro-insurance/pkg/metrics"
	"github.com/gofrs/uuid/v5"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub keeps every active websocket subscriber.
type ConnectionHub struct {
	clients map[uuid.UUID]*Conn
	l       logger.Logger
	mu      sync.Mutex
}

func NewConnHub(l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[uuid.UUID]*Conn),
		l:       l,
	}
}

// Add registers a connection.
func (h *ConnectionHub) Add(conn *Conn) error {
	if conn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	h.clients[conn.id] = conn
	h.mu.Unlock()

	metrics.WebSocketConnections().Inc()

	return nil
}

// Delete closes and removes the connection with the given ID.
func (h *ConnectionHub) Delete(id uuid.UUID) error {
	h.mu.Lock()
	conn, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()

	if !ok {
		return ErrConnIsNotFound
	}

	metrics.WebSocketConnections().Dec()

	if err := conn.Close(); err != nil {
		h.l.Debug(wrap.WithAction(context.Background(), "ws_connection_delete"),
			"failed to close conn",
			"conn_id", id.String(),
			"err", err.Error(),
		)
	}

	return nil
}

// Broadcast sends v to every subscriber that wants it and drops the ones that fail.
// It returns the number of successful deliveries.
func (h *ConnectionHub) Broadcast(ctx context.Context, v any) int {
	clients := h.snapshot()

	sent := 0
	for _, conn := range clients {
		if !conn.Wants(v) {
			continue
		}
		if err := conn.Send(v); err != nil {
			h.l.Debug(ctx, "dropping websocket subscriber", "conn_id", conn.id.String(), "err", err.Error())
			_ = h.Delete(conn.id)
			continue
		}
		sent++
	}
	return sent
}

// SendTo sends a message to a single connection
func (h *ConnectionHub) SendTo(id uuid.UUID, v any) error {
	h.mu.Lock()
	conn, ok := h.clients[id]
	h.mu.Unlock()

	if !ok {
		return ErrConnIsNotFound
	}
	return conn.Send(v)
}

// Len returns the number of active connections.
func (h *ConnectionHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// Close closes every websocket connection
func (h *ConnectionHub) Close() {
	for _, conn := range h.snapshot() {
		_ = h.Delete(conn.id)
	}

	h.l.Info(wrap.WithAction(context.Background(), "hub_close"), "all websocket connections closed gracefully")
}

func (h *ConnectionHub) snapshot() []*Conn {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Conn, 0, len(h.clients))
	for _, conn := range h.clients {
		clients = append(clients, conn)
	}
	return clients
}
