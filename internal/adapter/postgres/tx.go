package repo

import (
	"context"

	"github.com/Temutjin2k/agro-insurance/pkg/trm"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// TxorDB returns the transaction carried by ctx, or the pool when there is none.
func TxorDB(ctx context.Context, db *pgxpool.Pool) Querier {
	if tx, ok := trm.TxFromContext(ctx); ok {
		return tx
	}
	return db
}

type scanner interface {
	Scan(dest ...any) error
}
