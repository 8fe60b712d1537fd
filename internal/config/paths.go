package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// FileName is the config file name inside the user config directory.
	FileName = "todo.config"
	// DataFileName is the task list name inside the user data directory.
	DataFileName = "task.list"
)

// ErrNoPlatformDir is returned when the host has no usable config or data directory.
var ErrNoPlatformDir = errors.New("directory not found")

// Env is the slice of the host environment used to resolve default paths.
type Env struct {
	GOOS    string
	Getenv  func(string) string
	HomeDir func() (string, error)
}

// HostEnv returns the environment of the running process.
func HostEnv() Env {
	return Env{
		GOOS:    runtime.GOOS,
		Getenv:  os.Getenv,
		HomeDir: os.UserHomeDir,
	}
}

func (e Env) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

func (e Env) home() string {
	if e.HomeDir == nil {
		return ""
	}
	home, err := e.HomeDir()
	if err != nil {
		return ""
	}
	return home
}

// ConfigDir returns the OS-specific user config directory.
func (e Env) ConfigDir() (string, error) {
	var dir string
	switch e.GOOS {
	case "windows":
		dir = e.getenv("APPDATA")
	case "darwin", "ios":
		if home := e.home(); home != "" {
			dir = filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd", "dragonfly", "solaris", "illumos":
		dir = xdgDir(e.getenv("XDG_CONFIG_HOME"), e.home(), ".config")
	}
	if dir == "" {
		return "", fmt.Errorf("config %w", ErrNoPlatformDir)
	}
	return dir, nil
}

// DataDir returns the OS-specific user data directory.
func (e Env) DataDir() (string, error) {
	var dir string
	switch e.GOOS {
	case "windows":
		dir = e.getenv("APPDATA")
	case "darwin", "ios":
		if home := e.home(); home != "" {
			dir = filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd", "dragonfly", "solaris", "illumos":
		dir = xdgDir(e.getenv("XDG_DATA_HOME"), e.home(), ".local", "share")
	}
	if dir == "" {
		return "", fmt.Errorf("data %w", ErrNoPlatformDir)
	}
	return dir, nil
}

// xdgDir follows the XDG rule: an absolute override wins, otherwise the
// fallback below home.
func xdgDir(override, home string, fallback ...string) string {
	if override != "" && filepath.IsAbs(override) {
		return override
	}
	if home == "" {
		return ""
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// DefaultConfigPath returns the location of the config file.
func (e Env) DefaultConfigPath() (string, error) {
	dir, err := e.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// DefaultDataPath returns the task list location used when data_path is unset.
func (e Env) DefaultDataPath() (string, error) {
	dir, err := e.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DataFileName), nil
}
