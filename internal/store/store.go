package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrEventNotFound signals a missing event record.
	ErrEventNotFound = errors.New("event not found")
	// ErrEventExists signals an insert with an ID already in use.
	ErrEventExists = errors.New("event already exists")
)

// Store provides event persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
