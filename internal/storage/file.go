// Package storage reads and writes whole files and loads or saves typed
// values through the codec package.
//
// Nothing here retries or recovers: the only tolerated failure is a missing
// file in ReadOrCreate (and so LoadOrDefault), which yields empty content.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

var (
	// ErrNotFound marks a path that does not exist. It matches fs.ErrNotExist.
	ErrNotFound = fmt.Errorf("file not found: %w", fs.ErrNotExist)
	// ErrPermission marks refused access. It matches fs.ErrPermission.
	ErrPermission = fmt.Errorf("permission denied: %w", fs.ErrPermission)
	// ErrIO marks any other read or write failure.
	ErrIO = errors.New("i/o error")
)

// PathError records a failed file operation together with its kind.
type PathError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the kind and the underlying error.
func (e *PathError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func pathError(op, path string, err error) error {
	kind := ErrIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = ErrPermission
	}
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}

// Read returns the full content of the file at path.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pathError("read", path, err)
	}
	log.Debug("read file", "path", path, "bytes", len(data))
	return data, nil
}

// Write creates the file at path, or truncates it, and writes data.
func Write(path string, data []byte) error {
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return pathError("write", path, err)
	}
	log.Debug("wrote file", "path", path, "bytes", len(data))
	return nil
}

// ReadOrCreate behaves like Read, except that a missing file is created
// empty and empty content is returned.
func ReadOrCreate(path string) ([]byte, error) {
	data, err := Read(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// No O_TRUNC: a file created concurrently keeps its content.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return nil, pathError("create", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, pathError("create", path, err)
	}
	log.Debug("created empty file", "path", path)
	return []byte{}, nil
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return pathError("create", dir, err)
	}
	return nil
}
