package rabbit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrClosed = errors.New("rabbitmq connection is closed")

const (
	heartbeat        = 10 * time.Second
	reconnectStep    = 2 * time.Second
	maxReconnectWait = 30 * time.Second
)

type RabbitMQ struct {
	Conn     *amqp.Connection
	Channel  *amqp.Channel
	isClosed bool
	stopped  bool
	mu       sync.Mutex
	dsn      string

	done     chan struct{} // closed by Close, stops background reconnects
	doneOnce sync.Once

	log logger.Logger
}

// New creates rabbitMQ client
func New(ctx context.Context, dsn string, log logger.Logger) (*RabbitMQ, error) {
	r := &RabbitMQ{
		dsn:  dsn,
		done: make(chan struct{}),
		log:  log,
	}

	conn, ch, err := r.dial()
	if err != nil {
		return nil, err
	}
	r.attach(conn, ch)

	log.Info(wrap.WithAction(ctx, types.ActionRabbitMQConnected), "connected to rabbitMQ")

	return r, nil
}

func (r *RabbitMQ) dial() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(r.dsn, amqp.Config{
		Heartbeat: heartbeat,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	return conn, ch, nil
}

// attach stores the connection and starts watching it. Callers must hold r.mu or own r exclusively.
func (r *RabbitMQ) attach(conn *amqp.Connection, ch *amqp.Channel) {
	connClose := conn.NotifyClose(make(chan *amqp.Error, 1))
	chClose := ch.NotifyClose(make(chan *amqp.Error, 1))

	r.Conn = conn
	r.Channel = ch
	r.isClosed = false

	go r.monitorConnection(conn, connClose, chClose)
}

// monitorConnection marks the client closed once the connection or the channel goes away
// and, unless Close was called, keeps redialing in the background. Publishing fails with
// ErrClosed meanwhile.
func (r *RabbitMQ) monitorConnection(conn *amqp.Connection, connClose, chClose <-chan *amqp.Error) {
	var closeErr *amqp.Error
	select {
	case closeErr = <-connClose:
	case closeErr = <-chClose:
	}

	r.mu.Lock()
	current := r.Conn == conn
	if current {
		r.isClosed = true
	}
	stopped := r.stopped
	r.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), types.ActionRabbitConnectionClosed)

	if closeErr != nil {
		r.log.Error(ctx, "RabbitMQ connection closed with error", closeErr)
	} else {
		r.log.Debug(ctx, "RabbitMQ connection closed gracefully")
	}

	if current && !stopped {
		r.reconnectLoop()
	}
}

func (r *RabbitMQ) reconnectLoop() {
	ctx := wrap.WithAction(context.Background(), types.ActionRabbitReconnecting)

	for attempt := 1; ; attempt++ {
		select {
		case <-r.done:
			return
		case <-time.After(reconnectWait(attempt)):
		}

		err := r.Reconnect(ctx)
		if err == nil {
			return
		}
		if errors.Is(err, ErrClosed) {
			return
		}
		r.log.Warn(ctx, "reconnect attempt failed", "attempt", attempt, "error", err.Error())
	}
}

// reconnectWait grows linearly and is capped at maxReconnectWait.
func reconnectWait(attempt int) time.Duration {
	return min(time.Duration(attempt)*reconnectStep, maxReconnectWait)
}

// IsConnectionClosed checks if the connection is closed
func (r *RabbitMQ) IsConnectionClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.closedLocked()
}

func (r *RabbitMQ) closedLocked() bool {
	if r.Conn == nil || r.Channel == nil {
		return true
	}
	return r.isClosed || r.Conn.IsClosed() || r.Channel.IsClosed()
}

// DeclareTopicExchange declares a durable topic exchange.
func (r *RabbitMQ) DeclareTopicExchange(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closedLocked() {
		return ErrClosed
	}

	if err := r.Channel.ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", name, err)
	}
	return nil
}

// Publish sends a persistent JSON message. amqp channels are not safe for concurrent publishing,
// so publishes are serialized.
func (r *RabbitMQ) Publish(ctx context.Context, exchange, routingKey string, body []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closedLocked() {
		return ErrClosed
	}

	return r.Channel.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// Close closes rabbit connection
func (r *RabbitMQ) Close(ctx context.Context) error {
	ctx = wrap.WithAction(ctx, types.ActionRabbitConnectionClosing)

	r.mu.Lock()
	r.stopped = true
	if r.done != nil {
		r.doneOnce.Do(func() { close(r.done) })
	}
	if r.Conn == nil {
		r.mu.Unlock()
		return nil
	}
	r.isClosed = true
	ch, conn := r.Channel, r.Conn
	r.Channel, r.Conn = nil, nil
	r.mu.Unlock()

	r.log.Debug(ctx, "closing channel")
	if ch != nil {
		if err := closeWithCtxFunc(ctx, ch.Close); err != nil && ctx.Err() == nil {
			r.log.Error(ctx, "error closing channel", err)
		}
	}

	r.log.Debug(ctx, "closing RabbitMQ connection")
	if err := closeWithCtxFunc(ctx, conn.Close); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to close connection: %w", err)
	}

	r.log.Info(wrap.WithAction(ctx, types.ActionRabbitConnectionClosed), "rabbitMQ closed")

	return nil
}

// helper to close a resource with context cancellation safely
func closeWithCtxFunc(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reconnect dials once and swaps in the new connection if the current one is closed.
// The dial happens without holding the lock, so publishers keep failing fast with
// ErrClosed instead of waiting for the broker.
func (r *RabbitMQ) Reconnect(ctx context.Context) error {
	if r.dsn == "" {
		return fmt.Errorf("dsn is empty: can't reconnect")
	}

	if !r.IsConnectionClosed() {
		return nil
	}

	conn, ch, err := r.dial()
	if err != nil {
		return fmt.Errorf("failed to reconnect to RabbitMQ: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		conn.Close()
		return ErrClosed
	}
	if !r.closedLocked() {
		conn.Close()
		return nil
	}

	// a lost channel can leave its connection open
	if old := r.Conn; old != nil && !old.IsClosed() {
		go old.Close()
	}

	r.attach(conn, ch)
	r.log.Info(wrap.WithAction(ctx, types.ActionRabbitReconnected), "RabbitMQ reconnected successfully")

	return nil
}
