// Package users persists credential holders. Username uniqueness is
// enforced by a backend-level unique index.
package users

import (
	"context"

	"github.com/dmitrijs2005/callkeeper/internal/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.User, error)

	// Get returns the user with the given id, or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.User, error)

	// GetByUsername returns the user with the given username,
	// or common.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Create inserts a new user and returns its generated id. A duplicate
	// username surfaces as common.ErrConflict.
	Create(ctx context.Context, user *models.User) (string, error)

	// Update replaces the stored password hash and reports whether anything
	// changed. Missing id is common.ErrNotFound.
	Update(ctx context.Context, id string, user *models.User) (bool, error)

	// Delete removes the user, common.ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
