package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   storage backend ("mongodb" or "postgres")
//	-d string   database connection URI
//	-n string   logical database name
//	-o string   backup output directory
//	-k int      backup retention (archives to keep)
//	-s string   JWT HMAC secret key
//	-t int      session validity, minutes
//	-l string   log backend ("slog" or "zap")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-n", "-o", "-k", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Backend, "b", config.Backend, "storage backend")
	fs.StringVar(&config.DatabaseURI, "d", config.DatabaseURI, "database connection URI")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "database name")
	fs.StringVar(&config.BackupDir, "o", config.BackupDir, "backup output directory")
	fs.IntVar(&config.BackupRetention, "k", config.BackupRetention, "backup archives to keep")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog or zap)")

	sessionValidity := fs.Int("t", int(config.SessionValidity.Minutes()), "session validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidity = time.Duration(*sessionValidity) * time.Minute
}
