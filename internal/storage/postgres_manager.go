package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/callkeeper/internal/dbx"
	"github.com/dmitrijs2005/callkeeper/internal/storage/calllog"
	"github.com/dmitrijs2005/callkeeper/internal/storage/master"
	"github.com/dmitrijs2005/callkeeper/internal/storage/migrations"
	"github.com/dmitrijs2005/callkeeper/internal/storage/settings"
	"github.com/dmitrijs2005/callkeeper/internal/storage/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresManager struct {
	db       *sql.DB
	master   master.Repository
	callLogs calllog.Repository
	users    users.Repository
	settings settings.Repository
}

// NewPostgresManager opens a pooled connection, runs the embedded goose
// migrations and wires the repositories.
func NewPostgresManager(ctx context.Context, dsn string) (*PostgresManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresManager{
		db:       db,
		master:   master.NewPostgresRepository(db),
		callLogs: calllog.NewPostgresRepository(db),
		users:    users.NewPostgresRepository(db),
		settings: settings.NewPostgresRepository(db),
	}

	if err := m.runMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func (m *PostgresManager) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresManager) Master() master.Repository     { return m.master }
func (m *PostgresManager) CallLogs() calllog.Repository  { return m.callLogs }
func (m *PostgresManager) Users() users.Repository       { return m.users }
func (m *PostgresManager) Settings() settings.Repository { return m.settings }

func (m *PostgresManager) Ping(ctx context.Context) error {
	return dbx.WrapError(m.db.PingContext(ctx))
}

func (m *PostgresManager) Close(ctx context.Context) error {
	return m.db.Close()
}
