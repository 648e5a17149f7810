package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNoRecord is returned by single-row lookups that match nothing.
var ErrNoRecord = errors.New("record not found")

// DB is what repositories need from *pgxpool.Pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

func noRecord(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRecord
	}
	return err
}
