// Package config loads runtime settings from MEDTRACKER_-prefixed
// environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups all tunables. Example: MEDTRACKER_SAVE_DEBOUNCE=5s .
type Config struct {
	// BaseURL is the document service endpoint, without a trailing slash.
	BaseURL string `envconfig:"BASE_URL" default:"https://api.jsonbin.io/v3/b"`

	// HTTPTimeout bounds a single document call end to end.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// SaveDebounce is the quiet window that coalesces edits into one save.
	SaveDebounce time.Duration `envconfig:"SAVE_DEBOUNCE" default:"2s"`

	// DBPath locates the local cache database. Empty resolves to the
	// platform user-config directory.
	DBPath string `envconfig:"DB_PATH" default:""`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load populates Config from environment variables (prefix MEDTRACKER_) and
// resolves the default database location.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("MEDTRACKER", &c); err != nil {
		return Config{}, err
	}
	if c.DBPath == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		c.DBPath = filepath.Join(base, "medtracker", "medtracker.db")
	}
	return c, nil
}
