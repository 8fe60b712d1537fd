package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/codec"
	"github.com/nibzard/todo-go/internal/storage"
)

// ErrInvalid marks a config that failed validation.
var ErrInvalid = errors.New("invalid configuration")

// ValidationError reports why the configured data path was rejected.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("data path %s: %s", e.Path, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Config holds the user configuration.
type Config struct {
	// DataPathFile is the task list location. Empty means the platform default.
	DataPathFile string `toml:"data_path,omitempty"`
}

// SetDataPath replaces the configured data path. An empty path restores the
// platform default. No validation or I/O happens here.
func (c *Config) SetDataPath(path string) {
	c.DataPathFile = path
}

// DataPath returns the configured data path or the platform default.
func (c *Config) DataPath(env Env) (string, error) {
	if c.DataPathFile != "" {
		return c.DataPathFile, nil
	}
	return env.DefaultDataPath()
}

// Validate checks the configured data path: it must be absolute, must not be
// a directory and its parent must be an existing directory. An unset path is
// always valid.
func (c *Config) Validate() error {
	path := c.DataPathFile
	if path == "" {
		return nil
	}
	if !filepath.IsAbs(path) {
		return &ValidationError{Path: path, Reason: "cannot be relative"}
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return &ValidationError{Path: path, Reason: "cannot be a directory"}
	}
	parent, err := os.Stat(filepath.Dir(path))
	if err != nil || !parent.IsDir() {
		return &ValidationError{Path: path, Reason: "has no valid parent directory"}
	}
	return nil
}

// Load reads the config file at path. A missing file yields the default
// config; anything loaded is validated.
func Load(path string) (*Config, error) {
	cfg, err := storage.LoadStrict[Config](path, codec.Default)
	if errors.Is(err, storage.ErrNotFound) {
		log.Debug("no config file, using defaults", "path", path)
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log.Debug("loaded config", "path", path, "data_path", cfg.DataPathFile)
	return &cfg, nil
}

// Save validates cfg and writes it to path, creating the config directory
// when needed.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := storage.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := storage.Save(cfg, codec.Default, path); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	log.Debug("saved config", "path", path)
	return nil
}
