package dbmetrics

import (
	"context"
	"database/sql"
)

// DBExecutor is the query surface repositories depend on.
// Both *sql.DB and *sql.Tx satisfy it, as do the metric wrappers here.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor is a DBExecutor bound to an open transaction.
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// TxBeginner starts transactions. Satisfied by *DB and by SimpleDB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}

// SimpleDB adapts a bare *sql.DB to TxBeginner without metric collection.
type SimpleDB struct {
	*sql.DB
}

// NewSimpleDB wraps db.
func NewSimpleDB(db *sql.DB) *SimpleDB {
	return &SimpleDB{DB: db}
}

// BeginTx starts a plain transaction.
func (s *SimpleDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	return s.DB.BeginTx(ctx, opts)
}
