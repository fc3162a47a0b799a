// Package config handles application configuration: defaults, an optional
// JSON overlay, command-line flags and a small bootstrap file remembering
// the last used connection profile.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings.
//
// Fields:
//   - Backend: storage backend name ("mongodb" or "postgres").
//   - DatabaseURI / DatabaseName: connection target.
//   - BackupDir: directory receiving backup archives.
//   - BackupRetention: how many archives to keep after each backup.
//   - SecretKey: HMAC secret for signing session JWTs (HS256).
//   - SessionValidity: session token lifetime.
//   - ActivationSecret: issuer secret for activation keys; read from the
//     ACTIVATION_SECRET environment variable, never from files or flags.
//   - LogBackend: "slog" (text, development) or "zap" (JSON, production).
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     optional offsite archive storage; empty bucket disables uploads.
type Config struct {
	Backend          string
	DatabaseURI      string
	DatabaseName     string
	BackupDir        string
	BackupRetention  int
	SecretKey        string
	SessionValidity  time.Duration
	ActivationSecret string
	LogBackend       string
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Backend = "mongodb"
	c.DatabaseURI = "mongodb://localhost:27017"
	c.DatabaseName = "callkeeper"
	c.BackupDir = "backups"
	c.BackupRetention = 3
	c.SecretKey = "secretKey"
	c.SessionValidity = 12 * time.Hour
	c.LogBackend = "slog"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then the saved bootstrap
// profile, then overlaying values from an optional JSON file and finally from
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	applyBootstrap(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	cfg.ActivationSecret = os.Getenv("ACTIVATION_SECRET")
	return cfg
}

func applyBootstrap(cfg *Config) {
	b := LoadBootstrap()
	if b == nil {
		return
	}
	cfg.Backend = b.Backend
	cfg.DatabaseURI = b.DatabaseURI
	cfg.DatabaseName = b.DatabaseName
	if b.BackupDir != "" {
		cfg.BackupDir = b.BackupDir
	}
}
