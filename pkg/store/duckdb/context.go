package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTransaction returns a context carrying tx. Store exec paths pick it
// up, so multi-store writes (seeding, scan effects) can share one
// transaction without threading *sql.Tx through every signature.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTransaction returns the ambient transaction, or nil when the caller
// did not open one.
func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
