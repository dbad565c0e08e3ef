package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so repository methods run against
// the pool by default and against the active transaction when one is
// carried in the context.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// Querier returns the transaction carried by ctx, or the pool when no
// transaction is active.
func (db *Database) Querier(ctx context.Context) Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}

// RunInTx executes fn inside a read-write transaction. The transaction is
// injected into the context handed to fn, so every repository call made
// through that context joins it. Any error from fn rolls everything back.
func (db *Database) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.runTx(ctx, pgx.TxOptions{}, fn)
}

// RunInReadOnlyTx executes fn inside a read-only transaction. Writes
// issued through it fail at the database, which keeps query-only
// operations honest.
func (db *Database) RunInReadOnlyTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.runTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (db *Database) runTx(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context) error) error {
	// Joining an already-active transaction keeps nested service calls in
	// one atomic scope instead of opening a second transaction.
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	return pgx.BeginTxFunc(ctx, db.Pool, opts, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
