package wshub

import (
	"context"
	"errors"
	"sync"

	"github.com/fitpass/gym-checkin-system/pkg/logger"
	wrap "github.com/fitpass/gym-checkin-system/pkg/logger/wrapper"
	"github.com/google/uuid"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub stores and manages all active WebSocket connections,
// keyed by gym ID. One dashboard connection per gym.
type ConnectionHub struct {
	clients map[uuid.UUID]*Conn
	l       logger.Logger
	mu      sync.Mutex
	wg      sync.WaitGroup
}

func NewConnHub(l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[uuid.UUID]*Conn),
		l:       l,
	}
}

// Add registers a new connection in the hub. An existing connection for
// the same gym ID is closed and replaced.
func (h *ConnectionHub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "add_ws_connection")

	if existing, ok := h.clients[newConn.gymID]; ok {
		h.l.Warn(ctx,
			"replacing existing connection",
			"gym_id", existing.gymID,
		)
		if err := existing.Close(); err != nil {
			h.l.Warn(ctx,
				"failed to close existing conn",
				"gym_id", existing.gymID,
				"err", err.Error(),
			)
		}
		h.wg.Done()
	}

	h.clients[newConn.gymID] = newConn
	h.wg.Add(1)

	return nil
}

// Delete removes and closes the connection for the given gym ID.
func (h *ConnectionHub) Delete(gymID uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_connection_delete")

	conn, ok := h.clients[gymID]
	if !ok {
		h.l.Warn(ctx,
			"delete called for unknown gym",
			"gym_id", gymID,
		)
		return ErrConnIsNotFound
	}

	if err := conn.Close(); err != nil {
		h.l.Warn(ctx,
			"failed to close conn",
			"gym_id", conn.gymID,
			"err", err.Error(),
		)
	}

	delete(h.clients, gymID)
	h.wg.Done()

	return nil
}

// Remove closes the connection and drops it from the hub only if it is
// still the one registered for its gym, so a replaced connection does
// not evict its successor on disconnect.
func (h *ConnectionHub) Remove(conn *Conn) {
	if conn == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_ = conn.Close()

	if current, ok := h.clients[conn.gymID]; ok && current == conn {
		delete(h.clients, conn.gymID)
		h.wg.Done()
	}
}

// SendTo sends a message to the dashboard connected for the given gym.
// Returns ErrConnIsNotFound if no connection exists.
func (h *ConnectionHub) SendTo(gymID uuid.UUID, msg map[string]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.clients[gymID]; ok {
		return conn.Send(msg)
	}
	return ErrConnIsNotFound
}

// Close closes every websocket connection.
func (h *ConnectionHub) Close() {
	ctx := wrap.WithAction(context.Background(), "hub_close")

	// copy clients under the lock
	h.mu.Lock()
	clients := make([]*Conn, 0, len(h.clients))
	for _, conn := range h.clients {
		clients = append(clients, conn)
	}
	h.mu.Unlock()

	// close outside the lock
	for _, conn := range clients {
		_ = h.Delete(conn.gymID)
	}

	h.wg.Wait()

	h.l.Info(ctx, "all websocket connections closed gracefully")
}
