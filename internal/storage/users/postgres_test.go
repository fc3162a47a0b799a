package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "username", "password_hash", "created_at", "updated_at"}

func TestGetByUsername_TrimsInput(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("id-1", "admin", "hash", now, now))

	u, err := repo.GetByUsername(context.Background(), "  admin ")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsername_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreate_DuplicateUsername_Conflict(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`(?s)INSERT INTO users .*RETURNING id`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err = repo.Create(context.Background(), &models.User{Username: "admin", PasswordHash: "hash"})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestCreate_EmptyUsername_Validation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	_, err = repo.Create(context.Background(), &models.User{Username: "   "})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdate_MissingID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`UPDATE users SET password_hash = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = repo.Update(context.Background(), "missing", &models.User{PasswordHash: "new"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete_RemovesRow(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "id-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
