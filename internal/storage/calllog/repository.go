// Package calllog persists call-log events. Entries are written once and
// queried by date range for reporting; nothing updates or deletes them in
// the normal flow.
package calllog

import (
	"context"

	"github.com/dmitrijs2005/callkeeper/internal/models"
)

type Repository interface {
	// Create inserts a new entry and returns its generated id. A zero Date
	// is replaced with the current time.
	Create(ctx context.Context, entry *models.CallLogEntry) (string, error)

	// List returns entries sorted by date descending. A zero-value range
	// means all time; a bounded range is inclusive on both ends, with
	// end-of-day semantics on the end bound.
	List(ctx context.Context, r models.DateRange) ([]models.CallLogEntry, error)
}
