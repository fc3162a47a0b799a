package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/callkeeper/internal/storage/calllog"
	"github.com/dmitrijs2005/callkeeper/internal/storage/master"
	"github.com/dmitrijs2005/callkeeper/internal/storage/mongox"
	"github.com/dmitrijs2005/callkeeper/internal/storage/settings"
	"github.com/dmitrijs2005/callkeeper/internal/storage/users"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoManager struct {
	cache    *mongox.ClientCache
	client   mongox.Client
	uri      string
	master   master.Repository
	callLogs calllog.Repository
	users    users.Repository
	settings settings.Repository
}

// NewMongoManager acquires a client from the shared cache, ensures the
// indexes and wires the repositories. The client stays owned by the cache;
// Close only releases it there.
func NewMongoManager(ctx context.Context, cache *mongox.ClientCache, uri, dbName string) (*MongoManager, error) {
	client, err := cache.Acquire(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("acquire mongo client: %w", err)
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", mongox.WrapError(err))
	}

	return &MongoManager{
		cache:    cache,
		client:   client,
		uri:      uri,
		master:   master.NewMongoRepository(db),
		callLogs: calllog.NewMongoRepository(db),
		users:    users.NewMongoRepository(db),
		settings: settings.NewMongoRepository(db),
	}, nil
}

// ensureIndexes creates the unique and query indexes. Safe to run on every
// connect; index creation is idempotent.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(master.CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "MobileNo", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(calllog.CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "Date", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(users.CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (m *MongoManager) Master() master.Repository     { return m.master }
func (m *MongoManager) CallLogs() calllog.Repository  { return m.callLogs }
func (m *MongoManager) Users() users.Repository       { return m.users }
func (m *MongoManager) Settings() settings.Repository { return m.settings }

func (m *MongoManager) Ping(ctx context.Context) error {
	return mongox.WrapError(m.client.Ping(ctx, readpref.Primary()))
}

func (m *MongoManager) Close(ctx context.Context) error {
	return m.cache.Release(ctx, m.uri)
}
