package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrForbidden is returned when a caller attempts an owner-only mutation on
// a document they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a transaction keeps losing to concurrent
// writers after the bounded retries are exhausted.
var ErrConflict = errors.New("transaction conflict")

const (
	maxTxAttempts  = 3
	retryBaseDelay = 25 * time.Millisecond
)

// Postgres error codes that are safe to retry: serialization failure,
// deadlock detected, unique violation (two casts from the same voter racing
// past the "no existing vote" read).
func retryableCode(code string) bool {
	switch code {
	case "40001", "40P01", "23505":
		return true
	}
	return false
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && retryableCode(pgErr.Code)
}

// isFKViolation reports a foreign-key violation, which the upsert-style
// operations translate to a not-found on the referenced document.
func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// inTx runs fn inside a transaction and retries it a bounded number of
// times on serialization or uniqueness conflicts, with linear backoff.
// Every engine operation is all-or-nothing: a failed attempt rolls back
// completely before the next one starts.
func inTx(ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = runOnce(ctx, pool, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		select {
		case <-time.After(time.Duration(attempt) * retryBaseDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrConflict, maxTxAttempts, err)
}

func runOnce(ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
