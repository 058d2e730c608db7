package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/Temutjin2k/agro-insurance/pkg/metrics"
	"github.com/Temutjin2k/agro-insurance/pkg/rabbit"
)

const (
	defaultQueueSize = 1024
	publishTimeout   = 5 * time.Second
	deliverySink     = "rabbitmq_delivery"
)

var (
	ErrQueueFull      = errors.New("change queue is full")
	ErrProducerClosed = errors.New("change producer is closed")
)

// Client is the subset of the RabbitMQ client the producer needs.
type Client interface {
	Publish(ctx context.Context, exchange, routingKey string, body []byte) error
}

type outgoing struct {
	ctx   context.Context
	table string
	id    int64
	key   string
	body  []byte
}

// ChangeProducer publishes change events to a topic exchange. Publish only queues the
// event; a single worker delivers it, so a broker outage never holds up a write.
type ChangeProducer struct {
	client   Client
	exchange string
	l        logger.Logger

	queue chan outgoing
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewChangeProducer declares exchange and starts a producer publishing to it.
func NewChangeProducer(client *rabbit.RabbitMQ, exchange string, queueSize int, l logger.Logger) (*ChangeProducer, error) {
	if err := client.DeclareTopicExchange(exchange); err != nil {
		return nil, err
	}
	return newChangeProducer(client, exchange, queueSize, l), nil
}

func newChangeProducer(client Client, exchange string, queueSize int, l logger.Logger) *ChangeProducer {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	p := &ChangeProducer{
		client:   client,
		exchange: exchange,
		l:        l,
		queue:    make(chan outgoing, queueSize),
	}

	p.wg.Add(1)
	go p.run()

	return p
}

func (p *ChangeProducer) Name() string {
	return "rabbitmq"
}

// Publish queues the change with routing key "<table>.<op>", e.g. "policies.insert".
// It never blocks: ErrQueueFull is returned when the worker falls behind.
func (p *ChangeProducer) Publish(ctx context.Context, change models.Change) error {
	const op = "ChangeProducer.Publish"

	body, err := json.Marshal(change)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: failed to marshal change: %w", op, err))
	}

	msg := outgoing{
		ctx:   context.WithoutCancel(ctx),
		table: change.Table,
		id:    change.RecordID,
		key:   RoutingKey(change),
		body:  body,
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, ErrProducerClosed))
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		return wrap.Error(ctx, fmt.Errorf("%s: dropped %s: %w", op, msg.key, ErrQueueFull))
	}
}

func (p *ChangeProducer) run() {
	defer p.wg.Done()

	for msg := range p.queue {
		p.deliver(msg)
	}
}

// deliver makes a single attempt. While the broker is unreachable the client fails
// with rabbit.ErrClosed right away and reconnects on its own.
func (p *ChangeProducer) deliver(msg outgoing) {
	ctx, cancel := context.WithTimeout(msg.ctx, publishTimeout)
	defer cancel()

	err := p.client.Publish(ctx, p.exchange, msg.key, msg.body)
	metrics.RecordChangePublish(deliverySink, msg.table, err)
	if err != nil {
		ctx = wrap.WithAction(wrap.WithRecord(ctx, msg.table, strconv.FormatInt(msg.id, 10)), types.ActionPublishChangeFailed)
		p.l.Error(ctx, "failed to deliver change", err, "routing_key", msg.key)
	}
}

// Close stops accepting changes and waits until the queued ones are delivered
// or ctx is done.
func (p *ChangeProducer) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func RoutingKey(change models.Change) string {
	return fmt.Sprintf("%s.%s", change.Table, change.Op)
}
