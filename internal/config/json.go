package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/flagx"
	"github.com/dmitrijs2005/callkeeper/internal/timex"
)

// JsonConfig is the DTO for the optional JSON configuration file. It uses
// timex.Duration for interval fields, which parses both string values such
// as "12h" and integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config.
type JsonConfig struct {
	Backend         string         `json:"backend"`
	DatabaseURI     string         `json:"database_uri"`
	DatabaseName    string         `json:"database_name"`
	BackupDir       string         `json:"backup_dir"`
	BackupRetention int            `json:"backup_retention"`
	SecretKey       string         `json:"secret_key"`
	SessionValidity timex.Duration `json:"session_validity"`
	LogBackend      string         `json:"log_backend"`
	S3RootUser      string         `json:"s3_root_user"`
	S3RootPassword  string         `json:"s3_root_password"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flags. When neither flag is set, nothing is loaded. An
// unreadable or malformed file panics: a config file that exists but does
// not parse is an operator error worth stopping on.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.Backend = c.Backend
	config.DatabaseURI = c.DatabaseURI
	config.DatabaseName = c.DatabaseName
	config.BackupDir = c.BackupDir
	config.BackupRetention = c.BackupRetention
	config.SecretKey = c.SecretKey
	config.SessionValidity = time.Duration(c.SessionValidity.Duration)
	config.LogBackend = c.LogBackend
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
