// Package master persists the phone directory. One Repository contract, one
// implementation per backend, identical external behavior.
package master

import (
	"context"

	"github.com/dmitrijs2005/callkeeper/internal/models"
)

type Repository interface {
	// List returns all records ordered by mobile number.
	List(ctx context.Context) ([]models.MasterRecord, error)

	// Get returns the record with the given id, or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.MasterRecord, error)

	// GetByMobile returns the record with the given (normalized) mobile
	// number, or common.ErrNotFound.
	GetByMobile(ctx context.Context, mobileNo string) (*models.MasterRecord, error)

	// Create inserts a new record and returns its generated id. A duplicate
	// mobile number surfaces as common.ErrConflict.
	Create(ctx context.Context, rec *models.MasterRecord) (string, error)

	// Update overwrites the record with the given id and reports whether the
	// stored document actually changed. Missing id is common.ErrNotFound.
	Update(ctx context.Context, id string, rec *models.MasterRecord) (bool, error)

	// Delete removes the record with the given id, common.ErrNotFound when absent.
	Delete(ctx context.Context, id string) error

	// ReplaceAll clears the store and bulk-inserts records, returning the
	// inserted count. Empty input empties the store and returns 0.
	ReplaceAll(ctx context.Context, recs []models.MasterRecord) (int, error)
}
