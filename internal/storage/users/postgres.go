package users

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/dbx"
	"github.com/dmitrijs2005/callkeeper/internal/models"
	"github.com/dmitrijs2005/callkeeper/internal/strx"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, username, password_hash, created_at, updated_at FROM users ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.WrapError(err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, username, password_hash, created_at, updated_at FROM users WHERE id = $1`

	var u models.User
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	return &u, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password_hash, created_at, updated_at FROM users WHERE username = $1`

	var u models.User
	err := r.db.QueryRowContext(ctx, query, strx.Clean(username)).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	return &u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (string, error) {
	username := strx.Clean(user.Username)
	if username == "" {
		return "", fmt.Errorf("%w: username is required", common.ErrValidation)
	}

	query :=
		`INSERT INTO users (id, username, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	var id string
	err := r.db.QueryRowContext(ctx, query, uuid.New().String(), username, user.PasswordHash).Scan(&id)
	if err != nil {
		return "", dbx.WrapError(err)
	}
	return id, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, user *models.User) (bool, error) {
	query := `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, user.PasswordHash, id)
	if err != nil {
		return false, dbx.WrapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return false, common.ErrNotFound
	}
	return true, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return dbx.WrapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
