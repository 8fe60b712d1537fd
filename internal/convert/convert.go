// Package convert moves the task list between the live file and foreign
// files in any supported format.
package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/codec"
	"github.com/nibzard/todo-go/internal/storage"
	"github.com/nibzard/todo-go/internal/task"
)

// Action is the direction of a conversion.
type Action string

const (
	// Import reads a foreign file and replaces the live task list with it.
	Import Action = "import"
	// Export writes the live task list to a foreign file.
	Export Action = "export"
)

// ParseAction parses a case-insensitive action name.
func ParseAction(name string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(name))); a {
	case Import, Export:
		return a, nil
	default:
		return "", fmt.Errorf("unknown action %q, must be import or export", name)
	}
}

var (
	// ErrExport marks a failed export.
	ErrExport = errors.New("could not export to specified file")
	// ErrImport marks a failed import.
	ErrImport = errors.New("could not import from specified file")
)

// Error describes a failed conversion. It matches its action's sentinel and
// the underlying cause.
type Error struct {
	Action Action
	Format codec.Format
	Path   string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v (%s %s): %v", e.kind(), e.Format, e.Path, e.Err)
}

func (e *Error) kind() error {
	if e.Action == Import {
		return ErrImport
	}
	return ErrExport
}

// Unwrap returns the action sentinel and the cause.
func (e *Error) Unwrap() []error {
	return []error{e.kind(), e.Err}
}

// State is the engine's position in a conversion.
type State int

const (
	Idle State = iota
	Transferring
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Transferring:
		return "transferring"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Engine converts between the live task file, always in codec.Default, and
// foreign files. An Engine is not safe for concurrent use.
type Engine struct {
	// DataPath is the live task file.
	DataPath string

	state State
}

// New returns an idle engine for the live task file at dataPath.
func New(dataPath string) *Engine {
	return &Engine{DataPath: dataPath}
}

// State returns the engine state. After a failure it stays Failed until the
// next conversion starts.
func (e *Engine) State() State {
	return e.state
}

// Run performs action against the foreign file at path in format f.
func (e *Engine) Run(action Action, f codec.Format, path string) error {
	switch action {
	case Export:
		return e.Export(f, path)
	case Import:
		return e.Import(f, path)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

// Export loads the live task file, creating it empty if missing, and writes
// its tasks to path in format f.
func (e *Engine) Export(f codec.Format, path string) error {
	e.state = Transferring
	log.Debug("exporting tasks", "from", e.DataPath, "to", path, "format", f)

	store, err := storage.LoadOrDefault[task.Store](e.DataPath, codec.Default)
	if err == nil {
		err = storage.Save(&store, f, path)
	}
	if err != nil {
		e.state = Failed
		return &Error{Action: Export, Format: f, Path: path, Err: err}
	}

	e.state = Idle
	log.Debug("exported tasks", "count", store.Len(), "to", path)
	return nil
}

// Import reads the foreign file at path in format f and overwrites the live
// task file with its tasks. Nothing is written if the foreign file cannot be
// read or decoded.
func (e *Engine) Import(f codec.Format, path string) error {
	e.state = Transferring
	log.Debug("importing tasks", "from", path, "to", e.DataPath, "format", f)

	store, err := storage.LoadStrict[task.Store](path, f)
	if err == nil {
		err = storage.Save(&store, codec.Default, e.DataPath)
	}
	if err != nil {
		e.state = Failed
		return &Error{Action: Import, Format: f, Path: path, Err: err}
	}

	e.state = Idle
	log.Debug("imported tasks", "count", store.Len(), "from", path)
	return nil
}
