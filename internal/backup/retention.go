package backup

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// applyRetention deletes the oldest archives so that at most s.retention
// remain. Ordering is by modification time, newest first.
func (s *Service) applyRetention(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	type archive struct {
		path string
		mod  int64
	}
	var archives []archive
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".zip") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		archives = append(archives, archive{
			path: filepath.Join(s.dir, e.Name()),
			mod:  info.ModTime().UnixNano(),
		})
	}

	sort.Slice(archives, func(i, j int) bool { return archives[i].mod > archives[j].mod })

	for _, a := range archives[min(s.retention, len(archives)):] {
		if err := os.Remove(a.path); err != nil {
			s.logger.Warn(ctx, "could not remove expired archive", "archive", a.path, "error", err)
			continue
		}
		s.logger.Info(ctx, "expired archive removed", "archive", a.path)
	}
	return nil
}
