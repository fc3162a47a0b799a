package config

import (
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/storage"
)

// schemesByBackend lists the URI schemes each backend accepts.
var schemesByBackend = map[string][]string{
	storage.BackendMongo:    {"mongodb", "mongodb+srv"},
	storage.BackendPostgres: {"postgres", "postgresql"},
}

// Target validates the connection parameters and converts them into a
// storage.Target. Malformed input is a configuration error, not a crash.
func (c *Config) Target() (storage.Target, error) {
	schemes, ok := schemesByBackend[c.Backend]
	if !ok {
		return storage.Target{}, fmt.Errorf("%w: unknown backend %q", common.ErrConfiguration, c.Backend)
	}

	u, err := url.Parse(c.DatabaseURI)
	if err != nil {
		return storage.Target{}, fmt.Errorf("%w: invalid connection URI: %v", common.ErrConfiguration, err)
	}
	if u.Host == "" {
		return storage.Target{}, fmt.Errorf("%w: connection URI has no host", common.ErrConfiguration)
	}

	validScheme := false
	for _, s := range schemes {
		if u.Scheme == s {
			validScheme = true
			break
		}
	}
	if !validScheme {
		return storage.Target{}, fmt.Errorf("%w: URI scheme %q does not match backend %q",
			common.ErrConfiguration, u.Scheme, c.Backend)
	}

	if c.DatabaseName == "" {
		return storage.Target{}, fmt.Errorf("%w: database name is required", common.ErrConfiguration)
	}

	return storage.Target{
		Backend:  c.Backend,
		URI:      c.DatabaseURI,
		Database: c.DatabaseName,
	}, nil
}
