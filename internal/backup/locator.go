package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dmitrijs2005/callkeeper/internal/common"
)

// executablePath is swapped in tests to point the locator at a fixture tree.
var executablePath = os.Executable

// ToolLocator resolves the database tooling shipped alongside the binary.
// The tools live in a bin/ directory next to the executable, so the
// application works on hosts without a system-wide database client install.
type ToolLocator struct {
	binDir string
}

func NewToolLocator() (*ToolLocator, error) {
	exe, err := executablePath()
	if err != nil {
		return nil, fmt.Errorf("resolve executable path: %w", err)
	}
	return &ToolLocator{binDir: filepath.Join(filepath.Dir(exe), "bin")}, nil
}

// Locate returns the absolute path of the named tool and fails with
// ErrConfiguration when the bundled copy is missing, so callers surface a
// setup problem instead of a confusing exec error.
func (l *ToolLocator) Locate(name string) (string, error) {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	path := filepath.Join(l.binDir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s not found in %s", common.ErrConfiguration, name, l.binDir)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return path, nil
}
