// Package changes fans committed writes out to the subscribed sinks.
package changes

import (
	"context"
	"strconv"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/Temutjin2k/agro-insurance/pkg/metrics"
)

// Sink delivers change events somewhere (a message broker, websocket subscribers).
type Sink interface {
	Name() string
	Publish(ctx context.Context, change models.Change) error
}

// Notifier is what the domain services report their writes to.
type Notifier interface {
	Notify(ctx context.Context, change models.Change)
}

// Fanout publishes each change to every sink. A failing sink is logged and skipped:
// the write it describes is already committed.
type Fanout struct {
	sinks []Sink
	l     logger.Logger
}

func NewFanout(l logger.Logger, sinks ...Sink) *Fanout {
	return &Fanout{
		sinks: sinks,
		l:     l,
	}
}

func (f *Fanout) Notify(ctx context.Context, change models.Change) {
	for _, sink := range f.sinks {
		err := sink.Publish(ctx, change)
		metrics.RecordChangePublish(sink.Name(), change.Table, err)
		if err != nil {
			ctx := wrap.WithAction(wrap.WithRecord(ctx, change.Table, strconv.FormatInt(change.RecordID, 10)), types.ActionPublishChangeFailed)
			f.l.Error(ctx, "failed to publish change", err, "sink", sink.Name(), "op", string(change.Op))
		}
	}
}

// Nop drops every change.
type Nop struct{}

func (Nop) Notify(context.Context, models.Change) {}
