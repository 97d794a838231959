package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Reader interface {
	Read() (*Config, error)
}

// FileReader loads an optional .env file, then an optional YAML file, then
// the environment, then Overrides. Later sources win.
type FileReader struct {
	Path      string
	EnvFile   string
	Overrides Overrides
}

func NewFileReader(path, envFile string) FileReader {
	return FileReader{Path: path, EnvFile: envFile}
}

func (r FileReader) Read() (*Config, error) {
	if r.EnvFile != "" {
		err := godotenv.Load(r.EnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg := new(Config)
	if r.Path != "" && fileExists(r.Path) {
		if err := cleanenv.ReadConfig(r.Path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", r.Path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	cfg.Apply(r.Overrides)
	if err := cfg.fillPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from TASKLOG_CONFIG (or the default location)
// and ./.env, with the command line overrides applied on top.
func Load(o Overrides) (*Config, error) {
	path := os.Getenv("TASKLOG_CONFIG")
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	r := NewFileReader(path, ".env")
	r.Overrides = o
	return r.Read()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
