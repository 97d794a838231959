package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/tasklog/internal/store"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Config struct {
	StorePath          string        `yaml:"store_path" env:"TASKLOG_FILE"`
	Backend            string        `yaml:"backend" env:"TASKLOG_BACKEND" env-default:"json"`
	LogLevel           string        `yaml:"log_level" env:"TASKLOG_LOG_LEVEL" env-default:"info"`
	LogFile            string        `yaml:"log_file" env:"TASKLOG_LOG_FILE"`
	RefreshInterval    time.Duration `yaml:"refresh_interval" env:"TASKLOG_REFRESH" env-default:"1s"`
	DuplicateThreshold float64       `yaml:"duplicate_threshold" env:"TASKLOG_DUPLICATE_THRESHOLD" env-default:"0.8"`
}

// Overrides are command line values. They win over every other source and
// are applied before the default paths are derived, so a backend chosen on
// the command line still gets its own default store file.
type Overrides struct {
	Backend   string
	StorePath string
}

// Apply copies the non-empty overrides into c.
func (c *Config) Apply(o Overrides) {
	if o.Backend != "" {
		c.Backend = o.Backend
	}
	if o.StorePath != "" {
		c.StorePath = o.StorePath
	}
}

// Dir returns ~/.config/tasklog (or the platform equivalent).
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "tasklog"), nil
}

// DefaultPath returns the config file looked for when TASKLOG_CONFIG is unset.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// fillPaths sets the store and log locations that depend on the environment.
func (c *Config) fillPaths() error {
	if c.StorePath == "" {
		if c.Backend == BackendSQLite {
			dir, err := Dir()
			if err != nil {
				return err
			}
			c.StorePath = filepath.Join(dir, "tasks.db")
		} else {
			path, err := store.DefaultPath()
			if err != nil {
				return err
			}
			c.StorePath = path
		}
	}
	if c.LogFile == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		c.LogFile = filepath.Join(dir, "tasklog.log")
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendJSON, BackendSQLite)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", c.RefreshInterval)
	}
	if c.DuplicateThreshold <= 0 || c.DuplicateThreshold > 1 {
		return fmt.Errorf("duplicate threshold must be in (0, 1], got %v", c.DuplicateThreshold)
	}
	return nil
}

// OpenStore opens the configured backend and loads the task store from it.
func (c *Config) OpenStore(opts ...store.Option) (*store.Store, error) {
	var backend store.Backend
	switch c.Backend {
	case BackendSQLite:
		db, err := store.OpenSQLite(c.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		backend = db
	default:
		backend = store.NewJSONFile(c.StorePath)
	}

	opts = append([]store.Option{store.WithDuplicateThreshold(c.DuplicateThreshold)}, opts...)
	s, err := store.New(backend, opts...)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return s, nil
}
