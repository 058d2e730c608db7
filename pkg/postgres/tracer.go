package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/Temutjin2k/agro-insurance/pkg/metrics"
	"github.com/jackc/pgx/v5"
)

type queryStartKey struct{}

type queryStart struct {
	at        time.Time
	operation string
}

// queryTracer records every query in the database metrics.
type queryTracer struct{}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{
		at:        time.Now(),
		operation: Operation(data.SQL),
	})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	metrics.RecordDatabaseQuery(start.operation, data.Err, time.Since(start.at))
}

// Operation returns the lower-cased leading keyword of a statement ("select", "insert", ...).
func Operation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
