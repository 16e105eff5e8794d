// Package postgres contains the PostgreSQL implementations of the store
// interfaces, built on sqlx over the pgx stdlib driver.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"

	"github.com/taskdeck/taskdeck/internal/redact"
	"github.com/taskdeck/taskdeck/internal/store"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
	pgCheckViolationCode      = "23514"
)

// pingTimeout bounds the connectivity probe in Open.
const pingTimeout = 5 * time.Second

// Open opens a pooled connection to the PostgreSQL database at url and
// verifies connectivity with a bounded ping. A database that cannot be
// reached surfaces as store.ErrStorageUnavailable rather than a raw driver
// error, so callers can branch on the outcome.
func Open(ctx context.Context, url string, log *slog.Logger) (*sqlx.DB, error) {
	if log == nil {
		log = slog.Default()
	}

	db, err := sqlx.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %s", store.ErrStorageUnavailable, redact.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		log.Error("database unreachable",
			slog.String("url", redact.URL(url)),
			slog.String("error", redact.Error(err)))
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %s", store.ErrStorageUnavailable, redact.Error(err))
	}

	log.Info("database connection established")
	return db, nil
}

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

// isForeignKeyViolation checks if the given error is a PostgreSQL foreign key
// constraint violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode
}

// isCheckViolation checks if the given error is a PostgreSQL check
// constraint violation (e.g., a status outside the enumeration).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCheckViolationCode
}

// mapQueryError classifies a non-constraint query error. Anything that is not
// already a store sentinel is treated as the storage backend being
// unavailable; per the error taxonomy a failed query and an unreachable
// database are the same outcome for the request.
func mapQueryError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrDuplicate) ||
		errors.Is(err, store.ErrInvalidEntity) ||
		errors.Is(err, store.ErrInvalidReference) ||
		errors.Is(err, store.ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", store.ErrStorageUnavailable, op, err)
}
