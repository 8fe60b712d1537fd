package cmd

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/codec"
	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/convert"
	"github.com/nibzard/todo-go/internal/storage"
	"github.com/nibzard/todo-go/internal/task"
	"github.com/nibzard/todo-go/internal/ui"
)

// Exit codes follow sysexits.h.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 64
	ExitDataErr = 65
	ExitIOErr   = 74
	ExitConfig  = 78
)

// ErrUsage marks bad flags or arguments.
var ErrUsage = errors.New("usage")

type usageErr struct {
	err error
}

func (e *usageErr) Error() string {
	return e.err.Error()
}

func (e *usageErr) Unwrap() []error {
	return []error{ErrUsage, e.err}
}

func usageError(err error) error {
	return &usageErr{err: err}
}

// usageArgs wraps a cobra argument validator so its failures are usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, task.ErrNotFound):
		return ExitFailure
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, config.ErrInvalid):
		return ExitConfig
	case errors.Is(err, codec.ErrDecode), errors.Is(err, codec.ErrEncode):
		return ExitDataErr
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrPermission),
		errors.Is(err, storage.ErrIO),
		errors.Is(err, config.ErrNoPlatformDir):
		return ExitIOErr
	case errors.Is(err, convert.ErrExport), errors.Is(err, convert.ErrImport):
		return ExitIOErr
	default:
		return ExitFailure
	}
}

// PrintError writes the one-line error report for err to w.
func PrintError(w io.Writer, err error) {
	label := "ERROR"
	if errors.Is(err, config.ErrInvalid) {
		label = "CONFIG - ERROR"
	}
	_ = ui.NewPrinter(w).Error(label, err.Error())
}
