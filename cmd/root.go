// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/codec"
	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/storage"
	"github.com/nibzard/todo-go/internal/task"
	"github.com/nibzard/todo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Options configures where the CLI reads and writes.
type Options struct {
	Env config.Env
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Option mutates Options.
type Option func(*Options)

// WithEnv resolves default paths against env instead of the host.
func WithEnv(env config.Env) Option {
	return func(o *Options) {
		o.Env = env
	}
}

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(o *Options) {
		o.In = in
		o.Out = out
		o.Err = errOut
	}
}

type app struct {
	opts      Options
	printer   *ui.Printer
	logLevel  string
	logFormat string
}

// Execute runs the todo CLI with args, which exclude the program name.
func Execute(ctx context.Context, args []string, opts ...Option) error {
	o := Options{
		Env: config.HostEnv(),
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}
	for _, opt := range opts {
		opt(&o)
	}

	a := &app{opts: o, printer: ui.NewPrinter(o.Out)}
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetIn(o.In)
	root.SetOut(o.Out)
	root.SetErr(o.Err)
	return root.ExecuteContext(ctx)
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "A local command-line task tracker",
		Long: `todo keeps a list of named tasks in a TOML file and converts it to and
from JSON, YAML and XML.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setupLogging,
	}
	root.SetVersionTemplate("todo version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log format (text|json|logfmt)")

	root.AddCommand(
		a.newListCommand(),
		a.newAddCommand(),
		a.newRemoveCommand(),
		a.newToggleCommand(),
		a.newCleanCommand(),
		a.newConfigCommand(),
		a.newConvertCommand(),
		a.newTUICommand(),
		a.newVersionCommand(),
	)
	return root
}

func (a *app) setupLogging(_ *cobra.Command, _ []string) error {
	opts := logging.DefaultOptions()
	level, err := logging.ParseLevel(a.logLevel)
	if err != nil {
		return usageError(err)
	}
	formatter, err := logging.ParseFormatter(a.logFormat)
	if err != nil {
		return usageError(err)
	}
	opts.Level = level
	opts.Formatter = formatter
	log.SetDefault(logging.New(a.opts.Err, opts))
	return nil
}

// loadConfig reads the config file from its platform location.
func (a *app) loadConfig() (*config.Config, string, error) {
	path, err := a.opts.Env.DefaultConfigPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// dataPath resolves the task file. The platform data directory is created on
// first use; a configured path must already have its parent.
func (a *app) dataPath(cfg *config.Config) (string, error) {
	path, err := cfg.DataPath(a.opts.Env)
	if err != nil {
		return "", err
	}
	if cfg.DataPathFile == "" {
		if err := storage.EnsureDir(filepath.Dir(path)); err != nil {
			return "", err
		}
	}
	log.Debug("resolved data path", "path", path)
	return path, nil
}

// loadStore loads the configured task file, creating it empty if missing.
func (a *app) loadStore() (*task.Store, string, error) {
	cfg, _, err := a.loadConfig()
	if err != nil {
		return nil, "", err
	}
	path, err := a.dataPath(cfg)
	if err != nil {
		return nil, "", err
	}
	store, err := storage.LoadOrDefault[task.Store](path, codec.Default)
	if err != nil {
		return nil, "", fmt.Errorf("load tasks: %w", err)
	}
	return &store, path, nil
}

func (a *app) saveStore(store *task.Store, path string) error {
	if err := storage.Save(store, codec.Default, path); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	log.Debug("saved tasks", "path", path, "count", store.Len())
	return nil
}

// mutate loads the store, applies fn and saves the result. The task fn
// returns is echoed as feedback.
func (a *app) mutate(fn func(*task.Store) (task.Task, error)) error {
	store, path, err := a.loadStore()
	if err != nil {
		return err
	}
	t, err := fn(store)
	if err != nil {
		return err
	}
	if err := a.saveStore(store, path); err != nil {
		return err
	}
	return a.printer.Feedback(t)
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 {
		return 0, usageError(fmt.Errorf("invalid task number %q", arg))
	}
	return index, nil
}
