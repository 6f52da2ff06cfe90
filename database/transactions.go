package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Transactor defines the interface for managing transactions
type Transactor interface {
	// WithTransaction executes fn within a transaction
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}

// DBTransactor implements Transactor using a pgx pool
type DBTransactor struct {
	db *pgxpool.Pool
}

func NewDBTransactor(db *pgxpool.Pool) *DBTransactor {
	return &DBTransactor{db: db}
}

// WithTransaction executes the given function within a transaction. The
// transaction is stored in the context so queries made through Tx share it.
func (t *DBTransactor) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

// txKey is used to store transaction in context
type txKey struct{}

// TxFromContext retrieves the transaction started by WithTransaction, if any.
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// Tx returns queries bound to the transaction in ctx, or the given queries
// unchanged when no transaction is active.
func Tx(ctx context.Context, queries *Queries) *Queries {
	if tx, ok := TxFromContext(ctx); ok {
		return queries.WithTx(tx)
	}
	return queries
}
