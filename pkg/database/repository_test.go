package database

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	ID    string `db:"id"`
	Email string `db:"email"`
}

func newAccountRepo(t *testing.T) (*Repository[account], sqlmock.Sqlmock) {
	t.Helper()
	store, mock := newMockStore(t)
	return NewRepository[account](store, "accounts", []string{"id", "email"}), mock
}

func TestRepositoryCreate(t *testing.T) {
	t.Run("inserts", func(t *testing.T) {
		repo, mock := newAccountRepo(t)
		mock.ExpectExec("INSERT INTO accounts").
			WithArgs("1", "a@b.c").
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Create(context.Background(), account{ID: "1", Email: "a@b.c"}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate key", func(t *testing.T) {
		repo, mock := newAccountRepo(t)
		mock.ExpectExec("INSERT INTO accounts").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(context.Background(), account{ID: "1", Email: "a@b.c"})
		assertTaxonomy(t, err, "DUPLICATE_ERROR", http.StatusConflict)
	})
}

func TestRepositoryGet(t *testing.T) {
	repo, mock := newAccountRepo(t)
	mock.ExpectQuery("SELECT \\* FROM accounts WHERE id").
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow("1", "a@b.c"))

	got, err := repo.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, account{ID: "1", Email: "a@b.c"}, got)

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM accounts WHERE id").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

		_, err := repo.Get(context.Background(), "nope")
		assertTaxonomy(t, err, "NOT_FOUND", http.StatusNotFound)
	})
}

func TestRepositoryPaginate(t *testing.T) {
	repo, mock := newAccountRepo(t)
	mock.ExpectQuery("SELECT \\* FROM accounts ORDER BY id LIMIT 10 OFFSET 20").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow("21", "u21@b.c").
			AddRow("22", "u22@b.c"))

	got, err := repo.Paginate(context.Background(), NewPage(3, 10))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRepositoryUpdate(t *testing.T) {
	t.Run("updates", func(t *testing.T) {
		repo, mock := newAccountRepo(t)
		mock.ExpectExec("UPDATE accounts SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), account{ID: "1", Email: "new@b.c"}))
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newAccountRepo(t)
		mock.ExpectExec("UPDATE accounts SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), account{ID: "gone", Email: "x@b.c"})
		assertTaxonomy(t, err, "NOT_FOUND", http.StatusNotFound)
	})
}

func TestRepositoryDelete(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		repo, mock := newAccountRepo(t)
		mock.ExpectExec("DELETE FROM accounts").
			WithArgs("1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), "1"))
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newAccountRepo(t)
		mock.ExpectExec("DELETE FROM accounts").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), "gone")
		assertTaxonomy(t, err, "NOT_FOUND", http.StatusNotFound)
	})
}
