// Package storage selects and wires a persistence backend. One Manager
// contract, one implementation per backend; callers never see which one
// they are talking to.
package storage

import (
	"context"

	"github.com/dmitrijs2005/callkeeper/internal/storage/calllog"
	"github.com/dmitrijs2005/callkeeper/internal/storage/master"
	"github.com/dmitrijs2005/callkeeper/internal/storage/settings"
	"github.com/dmitrijs2005/callkeeper/internal/storage/users"
)

// Supported backends.
const (
	BackendMongo    = "mongodb"
	BackendPostgres = "postgres"
)

// Manager bundles the per-entity repositories of one backend and owns the
// backend's schema/index bootstrap. Repositories borrow the underlying
// connection; the Manager (or the client cache behind it) owns it.
type Manager interface {
	Master() master.Repository
	CallLogs() calllog.Repository
	Users() users.Repository
	Settings() settings.Repository

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend connection. For the mongo backend this
	// releases the cached client; a later acquire transparently recreates it.
	Close(ctx context.Context) error
}
