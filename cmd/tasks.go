package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/task"
	"github.com/nibzard/todo-go/internal/ui"
)

func (a *app) newListCommand() *cobra.Command {
	var short bool
	c := &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			store, _, err := a.loadStore()
			if err != nil {
				return err
			}
			mode := ui.Long
			if short {
				mode = ui.Short
			}
			return a.printer.List(store, mode)
		},
	}
	c.Flags().BoolVarP(&short, "short", "s", false, "Print one line per task")
	return c
}

func (a *app) newAddCommand() *cobra.Command {
	var description string
	c := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new task",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]
			if name == "" {
				return usageError(errors.New("task name cannot be empty"))
			}
			return a.mutate(func(s *task.Store) (task.Task, error) {
				return s.Add(name, description), nil
			})
		},
	}
	c.Flags().StringVarP(&description, "description", "d", "", "Task description")
	return c
}

func (a *app) newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <number>",
		Short: "Remove a task",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return a.mutate(func(s *task.Store) (task.Task, error) {
				return s.Remove(index)
			})
		},
	}
}

func (a *app) newToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <number>",
		Short: "Toggle the completed state of a task",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return a.mutate(func(s *task.Store) (task.Task, error) {
				return s.Toggle(index)
			})
		},
	}
}

func (a *app) newCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove all tasks",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			store, path, err := a.loadStore()
			if err != nil {
				return err
			}
			store.Clear()
			return a.saveStore(store, path)
		},
	}
}
