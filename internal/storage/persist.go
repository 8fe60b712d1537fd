package storage

import (
	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/codec"
)

// LoadOrDefault reads the file at path, creating it if missing, and decodes
// it in format f. Empty content yields the zero value of T.
func LoadOrDefault[T any](path string, f codec.Format) (T, error) {
	var zero T
	data, err := ReadOrCreate(path)
	if err != nil {
		return zero, err
	}
	if len(data) == 0 {
		log.Debug("empty file, using default", "path", path)
		return zero, nil
	}
	return codec.Decode[T](data, f)
}

// LoadStrict reads and decodes the file at path. A missing file is an
// error matching ErrNotFound; nothing is created.
func LoadStrict[T any](path string, f codec.Format) (T, error) {
	var zero T
	data, err := Read(path)
	if err != nil {
		return zero, err
	}
	return codec.Decode[T](data, f)
}

// Save encodes v in format f and writes it to path, replacing any content.
func Save[T any](v T, f codec.Format, path string) error {
	data, err := codec.Encode(v, f)
	if err != nil {
		return err
	}
	return Write(path, data)
}
