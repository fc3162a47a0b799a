// Package mongox holds the MongoDB client cache and driver error
// translation shared by the mongo repositories.
package mongox

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Client is the subset of *mongo.Client the cache and repositories use.
// Tests substitute a stub; production code always passes the real driver
// client created by connectFn.
type Client interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
}

// connectFn is a test seam for driver connection.
var connectFn = func(ctx context.Context, uri string) (Client, error) {
	return mongo.Connect(ctx, options.Client().ApplyURI(uri))
}

// DefaultPingTimeout bounds the liveness probe issued on cache hits.
const DefaultPingTimeout = 2 * time.Second

// ClientCache caches one live client per connection URI so repeated,
// short-lived sessions in the same process reuse a single connection pool.
//
// A cached client that was explicitly disconnected (for example by a logout
// that released the handle) fails its liveness probe with
// mongo.ErrClientDisconnected; only in that case is the client replaced.
// Any other probe failure is a genuine connectivity fault and is returned
// untouched, so outages are never masked as cache staleness.
//
// The cache is shared mutable state; every lookup and mutation is serialized
// behind one mutex. Construct it once and inject it where needed.
type ClientCache struct {
	mu          sync.Mutex
	clients     map[string]Client
	pingTimeout time.Duration
}

func NewClientCache() *ClientCache {
	return &ClientCache{
		clients:     make(map[string]Client),
		pingTimeout: DefaultPingTimeout,
	}
}

// Acquire returns a live client for uri, creating or replacing one as needed.
func (c *ClientCache) Acquire(ctx context.Context, uri string) (Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	client, ok := c.clients[uri]
	if !ok {
		return c.dial(ctx, uri)
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()

	err := client.Ping(pingCtx, readpref.Primary())
	if err == nil {
		return client, nil
	}

	if IsClientClosed(err) {
		// Replace the closed client with a fresh one.
		delete(c.clients, uri)
		return c.dial(ctx, uri)
	}

	// Network/DNS faults propagate so the caller sees the real error.
	return nil, err
}

// dial creates and caches a new client. Caller must hold c.mu.
func (c *ClientCache) dial(ctx context.Context, uri string) (Client, error) {
	client, err := connectFn(ctx, uri)
	if err != nil {
		return nil, WrapError(err)
	}
	c.clients[uri] = client
	return client, nil
}

// Release disconnects and forgets the client cached for uri. It is a no-op
// when nothing is cached, so calling it twice is safe, as is calling it
// after a concurrent Acquire already replaced the handle.
func (c *ClientCache) Release(ctx context.Context, uri string) error {
	c.mu.Lock()
	client, ok := c.clients[uri]
	if ok {
		delete(c.clients, uri)
	}
	c.mu.Unlock()

	if !ok {
		return nil
	}
	return client.Disconnect(ctx)
}

// Len reports how many clients are currently cached.
func (c *ClientCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}
