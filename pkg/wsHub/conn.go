package ws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

var ErrConnClosed = errors.New("connection closed")

type Conn struct {
	conn    *websocket.Conn
	id      uuid.UUID
	doneCtx context.Context
	cancel  context.CancelFunc
	filter  func(v any) bool
	mu      sync.Mutex
}

// NewConn wraps a websocket connection under a fresh random ID.
func NewConn(ctx context.Context, conn *websocket.Conn) (*Conn, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate connection id: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Conn{
		conn:    conn,
		id:      id,
		doneCtx: ctx,
		cancel:  cancel,
	}, nil
}

func (c *Conn) ID() uuid.UUID {
	return c.id
}

// SetFilter restricts broadcasts to the messages f accepts. Call it before adding the connection to a hub.
func (c *Conn) SetFilter(f func(v any) bool) {
	c.filter = f
}

// Wants reports whether a broadcast of v should reach this connection.
func (c *Conn) Wants(v any) bool {
	return c.filter == nil || c.filter(v)
}

// Done is closed once the connection is closed.
func (c *Conn) Done() <-chan struct{} {
	return c.doneCtx.Done()
}

// Health pings the peer.
func (c *Conn) Health() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.healthLocked()
}

func (c *Conn) healthLocked() error {
	if c.conn == nil {
		return errors.New("connection is nil")
	}

	select {
	case <-c.doneCtx.Done():
		return ErrConnClosed
	default:
	}

	if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

// Send writes v as a JSON text frame.
func (c *Conn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.doneCtx.Done():
		return ErrConnClosed
	default:
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	if err := c.conn.WriteJSON(v); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}

// Listen reads frames until the peer goes away or the connection is closed.
// Subscribers never send payloads, so incoming messages are discarded; reading
// keeps control frames (ping, pong, close) flowing.
func (c *Conn) Listen() error {
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			select {
			case <-c.doneCtx.Done():
				return ErrConnClosed
			default:
			}
			return fmt.Errorf("read failed: %w", err)
		}
	}
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.doneCtx.Done():
		return nil
	default:
	}
	c.cancel()

	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
	return c.conn.Close()
}
