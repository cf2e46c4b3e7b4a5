// Package dbx holds the database handle abstraction shared by the local
// repositories and a transaction helper.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InTx runs fn inside a transaction and returns its result. The transaction
// commits when fn succeeds and rolls back when it fails or panics; panics are
// rethrown.
//
//	changed, err := dbx.InTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) (bool, error) {
//	    res, err := tx.ExecContext(ctx, "UPDATE ...")
//	    ...
//	})
func InTx[T any](ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) (T, error)) (out T, err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return out, err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	out, err = fn(ctx, tx)
	return out, err
}
