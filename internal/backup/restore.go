package backup

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/callkeeper/internal/storage"
)

// Restore loads a zip archive produced by Backup into the target database,
// replacing whatever the target currently holds. The extraction directory
// is removed in every outcome.
func (s *Service) Restore(ctx context.Context, t storage.Target, archive string) error {
	tmp, err := os.MkdirTemp("", "callkeeper-restore-*")
	if err != nil {
		return &RestoreError{Stage: "prepare", Err: err}
	}
	defer os.RemoveAll(tmp)

	if err := unzip(archive, tmp); err != nil {
		return &RestoreError{Stage: "extract", Err: err}
	}

	switch t.Backend {
	case storage.BackendMongo:
		// mongodump writes one subdirectory per database; find it by its
		// .bson payload rather than trusting the archive layout.
		dir, err := findDirContaining(tmp, func(name string) bool {
			return strings.HasSuffix(name, ".bson")
		})
		if err != nil {
			return err
		}
		args := []string{"--uri", t.URI, "--db", t.Database, "--drop", dir}
		return s.runRestoreTool(ctx, "mongorestore", args)

	case storage.BackendPostgres:
		dir, err := findDirContaining(tmp, func(name string) bool {
			return name == "toc.dat"
		})
		if err != nil {
			return err
		}
		args := []string{"--clean", "--if-exists", "--dbname", t.URI, dir}
		return s.runRestoreTool(ctx, "pg_restore", args)
	}
	return &RestoreError{Stage: "restore", Err: fmt.Errorf("unsupported backend %q", t.Backend)}
}

func (s *Service) runRestoreTool(ctx context.Context, tool string, args []string) error {
	if err := s.runTool(ctx, tool, args, "restore"); err != nil {
		if be, ok := err.(*BackupError); ok {
			return &RestoreError{Stage: be.Stage, Stderr: be.Stderr, Err: be.Err}
		}
		return err
	}
	return nil
}

// findDirContaining walks the extracted tree for a file matching the
// predicate and returns its directory. Archives that contain no such file
// are not restorable dumps.
func findDirContaining(root string, match func(name string) bool) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && match(d.Name()) {
			found = filepath.Dir(path)
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", &RestoreError{Stage: "extract", Err: err}
	}
	if found == "" {
		return "", &RestoreError{Stage: "extract", Err: fmt.Errorf("archive contains no database dump")}
	}
	return found, nil
}

func unzip(archive, dest string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, f := range zr.File {
		target := filepath.Join(dest, filepath.FromSlash(f.Name))
		// Reject entries that would escape the extraction directory.
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes extraction directory: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
