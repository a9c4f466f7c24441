// Package repository implements persistence for the festival booking
// service on top of MySQL. A single Store type carries the database
// handle; per-entity operations are spread across the *_repository.go
// files. Mutations that must be atomic run inside WithTx, which
// threads the transaction through the context so the same methods
// work inside and outside a transaction.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Store provides access to all collections. It satisfies
// engine.Store and is shared by the HTTP handlers for reads.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store bound to the given database handle. The
// handle's lifecycle is owned by the caller (the service bootstrap),
// not by the Store.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// dbtx is the subset of *sql.DB and *sql.Tx the repositories use.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// WithTx runs fn inside a transaction. When the context already
// carries a transaction, fn joins it instead of opening a nested one.
// fn's error rolls the transaction back; nil commits it.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// conn returns the transaction carried in ctx, or the plain database
// handle when none is present.
func (s *Store) conn(ctx context.Context) dbtx {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return s.db
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062), raised when a UNIQUE index rejects an insert.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
