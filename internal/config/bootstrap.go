package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// BootstrapFileName is created next to the working directory so the
// application can auto-connect on the next start without asking for
// connection details again.
//
// NOTE: the file may include credentials (the connection URI). Keep it
// private.
const BootstrapFileName = ".callkeeper.json"

// Bootstrap remembers the last active connection profile.
type Bootstrap struct {
	Backend      string `json:"backend"`
	DatabaseURI  string `json:"database_uri"`
	DatabaseName string `json:"database_name"`
	BackupDir    string `json:"backup_dir"`
}

// bootstrapPath is swapped in tests.
var bootstrapPath = func() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, BootstrapFileName)
}

func SaveBootstrap(b *Bootstrap) error {
	raw, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(bootstrapPath(), raw, 0o600)
}

// LoadBootstrap returns the saved profile, or nil when the file is absent,
// unreadable or names an unknown backend. A corrupted file forces the user
// to re-configure instead of crashing the application.
func LoadBootstrap() *Bootstrap {
	raw, err := os.ReadFile(bootstrapPath())
	if err != nil {
		return nil
	}

	b := &Bootstrap{}
	if err := json.Unmarshal(raw, b); err != nil {
		return nil
	}
	if _, ok := schemesByBackend[b.Backend]; !ok {
		return nil
	}
	return b
}
