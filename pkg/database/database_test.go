package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elemental-io/elemental/pkg/apperr"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(sqlx.NewDb(db, "postgres")), mock
}

func assertTaxonomy(t *testing.T, err error, wantCode string, wantStatus int) {
	t.Helper()
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, wantCode, appErr.CodeName())
	assert.Equal(t, wantStatus, appErr.HTTPStatus())
}

func TestTranslate(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, Translate(nil))
	})

	t.Run("no rows", func(t *testing.T) {
		assertTaxonomy(t, Translate(sql.ErrNoRows), "NOT_FOUND", http.StatusNotFound)
	})

	t.Run("unique violation", func(t *testing.T) {
		err := Translate(&pq.Error{Code: "23505"})
		assertTaxonomy(t, err, "DUPLICATE_ERROR", http.StatusConflict)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		err := Translate(&pq.Error{Code: "23503"})
		assertTaxonomy(t, err, "RESOURCE_STATE_CONFLICT", http.StatusConflict)
	})

	t.Run("check violation", func(t *testing.T) {
		err := Translate(&pq.Error{Code: "23514"})
		assertTaxonomy(t, err, "RESOURCE_STATE_CONFLICT", http.StatusConflict)
	})

	t.Run("connection exception class", func(t *testing.T) {
		err := Translate(&pq.Error{Code: "08006"})
		assertTaxonomy(t, err, "DATABASE_CONNECTION_FAILED", http.StatusServiceUnavailable)
	})

	t.Run("deadline", func(t *testing.T) {
		assertTaxonomy(t, Translate(context.DeadlineExceeded), "GATEWAY_TIMEOUT", http.StatusGatewayTimeout)
	})

	t.Run("unknown driver error", func(t *testing.T) {
		err := Translate(errors.New("pq: something low level"))
		assertTaxonomy(t, err, "EXTERNAL_SERVICE_ERROR", http.StatusBadGateway)
	})

	t.Run("driver text never leaks", func(t *testing.T) {
		err := Translate(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint users_email_key"})
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.NotContains(t, appErr.Message, "users_email_key")
	})

	t.Run("idempotent", func(t *testing.T) {
		orig := apperr.NotFound("User not found")
		assert.Same(t, orig, Translate(fmt.Errorf("wrap: %w", orig)).(*apperr.Error))
	})
}

func TestStoreGet(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, email FROM users").
		WithArgs("42").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow("42", "a@b.c"))

	var row struct {
		ID    string `db:"id"`
		Email string `db:"email"`
	}
	err := store.Get(context.Background(), &row, "SELECT id, email FROM users WHERE id = $1", "42")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", row.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGetMissingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	var id string
	err := store.Get(context.Background(), &id, "SELECT id FROM users WHERE id = $1", "nope")
	assertTaxonomy(t, err, "NOT_FOUND", http.StatusNotFound)
}

func TestStoreExecTranslates(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := store.Exec(context.Background(), "INSERT INTO users (email) VALUES ($1)", "a@b.c")
	assertTaxonomy(t, err, "DUPLICATE_ERROR", http.StatusConflict)
}

func TestStoreInTx(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.InTx(context.Background(), func(tx *sqlx.Tx) error {
			_, err := tx.Exec("UPDATE users SET active = true")
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := store.InTx(context.Background(), func(tx *sqlx.Tx) error {
			return &pq.Error{Code: "23503"}
		})
		assertTaxonomy(t, err, "RESOURCE_STATE_CONFLICT", http.StatusConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewPage(t *testing.T) {
	assert.Equal(t, Page{Limit: 20, Offset: 0}, NewPage(0, 0))
	assert.Equal(t, Page{Limit: 10, Offset: 20}, NewPage(3, 10))
	assert.Equal(t, Page{Limit: 100, Offset: 0}, NewPage(1, 500))
}
