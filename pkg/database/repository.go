package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/elemental-io/elemental/pkg/apperr"
)

// Repository gives an entity type the standard persistence operations on a
// single table. Column names come from the caller and must match the
// entity's db tags; the id column is always "id".
type Repository[T any] struct {
	store   *Store
	table   string
	columns []string
}

func NewRepository[T any](store *Store, table string, columns []string) *Repository[T] {
	return &Repository[T]{store: store, table: table, columns: columns}
}

// Create inserts entity. Constraint violations come back as taxonomy
// errors (duplicate, conflict).
func (r *Repository[T]) Create(ctx context.Context, entity T) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.table, strings.Join(r.columns, ", "), named(r.columns))
	_, err := r.store.NamedExec(ctx, query, entity)
	return err
}

// Get fetches one entity by id; a missing row is NOT_FOUND.
func (r *Repository[T]) Get(ctx context.Context, id any) (T, error) {
	var entity T
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", r.table)
	err := r.store.Get(ctx, &entity, query, id)
	return entity, err
}

// List fetches every row ordered by id.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	var entities []T
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY id", r.table)
	err := r.store.Select(ctx, &entities, query)
	return entities, err
}

// Paginate fetches one page ordered by id.
func (r *Repository[T]) Paginate(ctx context.Context, page Page) ([]T, error) {
	var entities []T
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY id LIMIT %d OFFSET %d",
		r.table, page.Limit, page.Offset)
	err := r.store.Select(ctx, &entities, query)
	return entities, err
}

// Update rewrites every configured column of the row whose id matches the
// entity's id field. Updating a missing row is NOT_FOUND.
func (r *Repository[T]) Update(ctx context.Context, entity T) error {
	assignments := make([]string, len(r.columns))
	for i, col := range r.columns {
		assignments[i] = col + " = :" + col
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = :id",
		r.table, strings.Join(assignments, ", "))

	res, err := r.store.NamedExec(ctx, query, entity)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.NotFound("")
	}
	return nil
}

// Delete removes one row by id. Deleting a missing row is NOT_FOUND.
func (r *Repository[T]) Delete(ctx context.Context, id any) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table)
	res, err := r.store.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.NotFound("")
	}
	return nil
}

func named(columns []string) string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = ":" + col
	}
	return strings.Join(out, ", ")
}
