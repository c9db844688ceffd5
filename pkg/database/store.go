package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Store wraps an sqlx pool so every query site gets taxonomy errors without
// repeating the translation call.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying pool for code that needs raw access.
func (s *Store) DB() *sqlx.DB { return s.db }

// Get scans a single row into dest. A missing row surfaces as NOT_FOUND.
func (s *Store) Get(ctx context.Context, dest any, query string, args ...any) error {
	return Translate(s.db.GetContext(ctx, dest, query, args...))
}

// Select scans all rows into dest.
func (s *Store) Select(ctx context.Context, dest any, query string, args ...any) error {
	return Translate(s.db.SelectContext(ctx, dest, query, args...))
}

// Exec runs a statement.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	return res, Translate(err)
}

// NamedExec runs a statement bound to struct or map fields.
func (s *Store) NamedExec(ctx context.Context, query string, arg any) (sql.Result, error) {
	res, err := s.db.NamedExecContext(ctx, query, arg)
	return res, Translate(err)
}

// InTx runs fn inside a transaction. The transaction rolls back when fn
// returns an error or panics, otherwise it commits. All errors are
// translated.
func (s *Store) InTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Translate(err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return Translate(err)
	}
	return Translate(tx.Commit())
}

// Page is a normalized limit/offset pair for list queries.
type Page struct {
	Limit  int
	Offset int
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NewPage clamps raw pagination input. Page numbers start at 1.
func NewPage(number, size int) Page {
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	if number < 1 {
		number = 1
	}
	return Page{Limit: size, Offset: (number - 1) * size}
}
