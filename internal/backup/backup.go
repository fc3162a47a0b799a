// Package backup dumps and restores the application database with the
// bundled command-line tooling and keeps a bounded set of zip archives.
package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/filex"
	"github.com/dmitrijs2005/callkeeper/internal/logging"
	"github.com/dmitrijs2005/callkeeper/internal/storage"
)

const DefaultRetention = 3

// Collections that hold machine-local state and must not travel between
// installations inside an archive.
// Credentials and the machine-bound activation record never travel in an
// archive, on either backend.
var (
	excludedCollections = []string{"appConfig", "users"}
	excludedTables      = []string{"users", "app_config"}
)

type Service struct {
	locator   *ToolLocator
	logger    logging.Logger
	dir       string
	retention int
	offsite   Uploader
}

type Option func(*Service)

// WithRetention overrides how many archives are kept after a backup.
func WithRetention(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.retention = n
		}
	}
}

// WithOffsiteUploader copies each finished archive to remote storage.
func WithOffsiteUploader(u Uploader) Option {
	return func(s *Service) { s.offsite = u }
}

func NewService(locator *ToolLocator, logger logging.Logger, dir string, opts ...Option) *Service {
	s := &Service{
		locator:   locator,
		logger:    logger,
		dir:       dir,
		retention: DefaultRetention,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Backup dumps the target database into a timestamped zip archive in the
// service directory and returns the archive path. The working directory
// used for the raw dump is removed in every outcome.
func (s *Service) Backup(ctx context.Context, t storage.Target) (string, error) {
	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return "", &BackupError{Stage: "prepare", Err: err}
	}

	tmp, err := os.MkdirTemp("", "callkeeper-dump-*")
	if err != nil {
		return "", &BackupError{Stage: "prepare", Err: err}
	}
	defer os.RemoveAll(tmp)

	if err := s.dump(ctx, t, tmp); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.zip", archiveBase(t), time.Now().Format("20060102_150405"))
	archive := filepath.Join(dir, name)
	if err := zipDir(tmp, archive); err != nil {
		os.Remove(archive)
		return "", &BackupError{Stage: "archive", Err: err}
	}

	s.logger.Info(ctx, "backup archive created", "archive", archive)

	if s.offsite != nil {
		if err := s.uploadOffsite(ctx, archive); err != nil {
			// A finished local archive is still a successful backup.
			s.logger.Warn(ctx, "offsite upload failed", "archive", archive, "error", err)
		}
	}

	if err := s.applyRetention(ctx); err != nil {
		s.logger.Warn(ctx, "retention cleanup failed", "error", err)
	}
	return archive, nil
}

func (s *Service) dump(ctx context.Context, t storage.Target, dest string) error {
	switch t.Backend {
	case storage.BackendMongo:
		return s.runTool(ctx, "mongodump", mongoDumpArgs(t, dest), "dump")
	case storage.BackendPostgres:
		return s.runTool(ctx, "pg_dump", pgDumpArgs(t, dest), "dump")
	}
	return &BackupError{Stage: "dump", Err: fmt.Errorf("unsupported backend %q", t.Backend)}
}

func mongoDumpArgs(t storage.Target, dest string) []string {
	args := []string{"--uri", t.URI, "--db", t.Database, "--out", dest}
	for _, c := range excludedCollections {
		args = append(args, "--excludeCollection="+c)
	}
	return args
}

func pgDumpArgs(t storage.Target, dest string) []string {
	args := []string{"--format", "directory", "--file", filepath.Join(dest, "pgdata"), "--dbname", t.URI}
	for _, table := range excludedTables {
		args = append(args, "--exclude-table="+table)
	}
	return args
}

func (s *Service) runTool(ctx context.Context, tool string, args []string, stage string) error {
	path, err := s.locator.Locate(tool)
	if err != nil {
		return &BackupError{Stage: stage, Err: err}
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = &stderr

	s.logger.Debug(ctx, "running database tool", "tool", tool)
	if err := cmd.Run(); err != nil {
		return &BackupError{Stage: stage, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil
}

func archiveBase(t storage.Target) string {
	if t.Database != "" {
		return t.Database
	}
	return "backup"
}

// zipDir writes every regular file under root into a zip archive, keeping
// paths relative to root.
func zipDir(root, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}
