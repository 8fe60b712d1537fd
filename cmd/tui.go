package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/ui"
)

func (a *app) newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit tasks interactively",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(c *cobra.Command, _ []string) error {
			store, path, err := a.loadStore()
			if err != nil {
				return err
			}
			changed, err := ui.RunTUI(c.Context(), store, path,
				ui.WithInput(a.opts.In), ui.WithOutput(a.opts.Out))
			if err != nil {
				return err
			}
			if !changed {
				return nil
			}
			return a.saveStore(store, path)
		},
	}
}
