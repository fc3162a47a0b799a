package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/storage/mongox"
)

// Target names one backend database.
type Target struct {
	// Backend is BackendMongo or BackendPostgres.
	Backend string
	// URI is the connection string (mongodb:// or postgres:// scheme).
	URI string
	// Database is the logical database name. Only the mongo backend needs
	// it separately; postgres carries it inside the DSN.
	Database string
}

// NewManager constructs the Manager for the configured backend. The client
// cache is only consulted for the mongo backend; postgres pools internally.
func NewManager(ctx context.Context, cache *mongox.ClientCache, t Target) (Manager, error) {
	switch t.Backend {
	case BackendMongo:
		return NewMongoManager(ctx, cache, t.URI, t.Database)
	case BackendPostgres:
		return NewPostgresManager(ctx, t.URI)
	}
	return nil, fmt.Errorf("%w: unsupported backend %q", common.ErrConfiguration, t.Backend)
}
