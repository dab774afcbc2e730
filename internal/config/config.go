package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FilterConfig is the default session filter applied on every refresh.
// Values are plain strings here and validated against the model enums when
// the filter is turned into query options.
type FilterConfig struct {
	// Genre filters by musical style. Empty or "Any" means no filter.
	Genre string `yaml:"genre"`
	// Backline lists required equipment codes (e.g. "PA", "Drums").
	Backline []string `yaml:"backline"`
}

// Config is the top-level application configuration.
type Config struct {
	// APIRoot is the base URL of the jam-sessions API, without the version
	// prefix (e.g. "https://example.com/api"). The JAMCAL_API_ROOT
	// environment variable overrides it.
	APIRoot string `yaml:"api_root"`

	// Timezone is the IANA timezone used as the fixed display zone for
	// session times and schedule phrases.
	Timezone string `yaml:"timezone"`

	// RefreshCron is a cron-style schedule (e.g. "*/30 * * * *") for
	// periodic refresh in daemon mode.
	RefreshCron string `yaml:"refresh"`

	// HorizonDays is how many days ahead occurrences are expanded for the
	// calendar feed.
	HorizonDays int `yaml:"horizon_days"`

	// Filter is the default session filter.
	Filter FilterConfig `yaml:"filter"`

	// ICSPath is where the generated calendar file is written.
	ICSPath string `yaml:"ics_path"`

	// CalendarName is the calendar's display name.
	CalendarName string `yaml:"calendar_name"`

	// CachePath is the sqlite snapshot database. Empty disables the cache.
	CachePath string `yaml:"cache_path"`

	// FetchTimeoutSeconds bounds a single refresh. Zero means no timeout,
	// matching the API client's own contract.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		APIRoot:      "",
		Timezone:     "Europe/London",
		RefreshCron:  "*/30 * * * *",
		HorizonDays:  28,
		Filter:       FilterConfig{Backline: []string{}},
		ICSPath:      "./var/jamsessions.ics",
		CalendarName: "Jam Sessions",
		CachePath:    "./var/jamcal.db",
	}
}

// Normalize fills missing/zero values with defaults so partially filled
// configs still behave correctly.
func (c *Config) Normalize() {
	if c.Timezone == "" {
		c.Timezone = "Europe/London"
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "*/30 * * * *"
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = 28
	}
	if c.Filter.Backline == nil {
		c.Filter.Backline = []string{}
	}
	if c.ICSPath == "" {
		c.ICSPath = "./var/jamsessions.ics"
	}
	if c.CalendarName == "" {
		c.CalendarName = "Jam Sessions"
	}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load loads configuration from the given YAML path. If the file does not
// exist, a default config is written there (0600) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".jamcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
