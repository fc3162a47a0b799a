// Package app sequences the application lifecycle: connect to the storage
// backend, verify the install has users and a valid license, expose the
// repositories to callers and run the logout-triggered backup.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/callkeeper/internal/activation"
	"github.com/dmitrijs2005/callkeeper/internal/auth"
	"github.com/dmitrijs2005/callkeeper/internal/backup"
	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/config"
	"github.com/dmitrijs2005/callkeeper/internal/logging"
	"github.com/dmitrijs2005/callkeeper/internal/storage"
	"github.com/dmitrijs2005/callkeeper/internal/storage/mongox"
)

// BackupRunner is the slice of the backup service the lifecycle needs.
type BackupRunner interface {
	Backup(ctx context.Context, t storage.Target) (string, error)
	Restore(ctx context.Context, t storage.Target, archive string) error
}

// managerFactory and saveBootstrap are swapped in tests to avoid touching
// a real backend or the home directory.
var (
	managerFactory = storage.NewManager
	saveBootstrap  = config.SaveBootstrap
)

// ConnectResult tells the caller which gates remain before normal use.
type ConnectResult struct {
	// NeedsRegistration is set when the store has no users yet; the first
	// run must register an account before login.
	NeedsRegistration bool
	// NeedsActivation is set when no valid license is bound to this
	// machine; the activation gate must be passed first.
	NeedsActivation bool
}

type App struct {
	cfg        *config.Config
	logger     logging.Logger
	cache      *mongox.ClientCache
	manager    storage.Manager
	target     storage.Target
	backup     BackupRunner
	auth       *auth.Service
	activation *activation.Service
	session    *auth.Session
}

// NewApp wires the long-lived services. No connection is made until
// Connect is called.
func NewApp(cfg *config.Config) (*App, error) {
	logger, err := buildLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	locator, err := backup.NewToolLocator()
	if err != nil {
		return nil, err
	}

	opts := []backup.Option{backup.WithRetention(cfg.BackupRetention)}
	if cfg.S3Bucket != "" {
		opts = append(opts, backup.WithOffsiteUploader(backup.NewS3Uploader(backup.S3Config{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})))
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		cache:  mongox.NewClientCache(),
		backup: backup.NewService(locator, logger, cfg.BackupDir, opts...),
	}, nil
}

func buildLogger(cfg *config.Config) (logging.Logger, error) {
	if cfg.LogBackend == "zap" {
		return logging.NewProductionZapLogger("info")
	}
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))), nil
}

// Connect validates the configured target, opens the backend and checks the
// two gates: does the install have users, and is the license valid for this
// machine. It leaves the connection open in both outcomes so the caller can
// drive registration and activation through the same App.
func (a *App) Connect(ctx context.Context) (*ConnectResult, error) {
	target, err := a.cfg.Target()
	if err != nil {
		return nil, err
	}

	manager, err := managerFactory(ctx, a.cache, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConnectivity, err)
	}

	a.manager = manager
	a.target = target
	a.auth = auth.NewService(manager.Users(), []byte(a.cfg.SecretKey), a.cfg.SessionValidity)
	a.activation = activation.NewService(manager.Settings(), a.logger, a.cfg.ActivationSecret)

	res := &ConnectResult{}

	usersExist, err := a.auth.UsersExist(ctx)
	if err != nil {
		return nil, err
	}
	res.NeedsRegistration = !usersExist

	if a.activation.Status(ctx) != activation.StateActivated {
		res.NeedsActivation = true
	}

	// Remember the working profile so the next start connects without flags.
	if err := saveBootstrap(&config.Bootstrap{
		Backend:      a.cfg.Backend,
		DatabaseURI:  a.cfg.DatabaseURI,
		DatabaseName: a.cfg.DatabaseName,
		BackupDir:    a.cfg.BackupDir,
	}); err != nil {
		a.logger.Warn(ctx, "could not save connection profile", "error", err)
	}

	a.logger.Info(ctx, "connected to storage backend",
		"backend", target.Backend, "database", target.Database,
		"needs_registration", res.NeedsRegistration, "needs_activation", res.NeedsActivation)
	return res, nil
}

// Repo exposes the repositories once Connect has succeeded.
func (a *App) Repo() storage.Manager { return a.manager }

func (a *App) Auth() *auth.Service { return a.auth }

func (a *App) Activation() *activation.Service { return a.activation }

func (a *App) Logger() logging.Logger { return a.logger }

func (a *App) Target() storage.Target { return a.target }

func (a *App) Session() *auth.Session { return a.session }

func (a *App) SetSession(s *auth.Session) { a.session = s }

// Backup snapshots the connected database into the configured directory.
func (a *App) Backup(ctx context.Context) (string, error) {
	if a.manager == nil {
		return "", fmt.Errorf("%w: not connected", common.ErrConfiguration)
	}
	return a.backup.Backup(ctx, a.target)
}

// Restore loads an archive into the connected database.
func (a *App) Restore(ctx context.Context, archive string) error {
	if a.manager == nil {
		return fmt.Errorf("%w: not connected", common.ErrConfiguration)
	}
	return a.backup.Restore(ctx, a.target, archive)
}

// Logout snapshots the database and then tears the connection down. The
// backup runs first so the archive reflects the session's final state; a
// failed backup is logged but does not block the teardown.
func (a *App) Logout(ctx context.Context) error {
	if a.manager == nil {
		return nil
	}

	if _, err := a.backup.Backup(ctx, a.target); err != nil {
		a.logger.Warn(ctx, "logout backup failed", "error", err)
	}

	err := a.manager.Close(ctx)
	a.manager = nil
	a.session = nil
	a.logger.Info(ctx, "session closed")
	return err
}
