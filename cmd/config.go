package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/config"
)

func (a *app) newConfigCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Change the configuration",
		Args:  usageArgs(cobra.NoArgs),
	}
	c.AddCommand(&cobra.Command{
		Use:   "data-path [path]",
		Short: "Set the task file location, or reset it to the default when no path is given",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, path, err := a.loadConfig()
			if err != nil {
				return err
			}
			var dataPath string
			if len(args) == 1 {
				dataPath = args[0]
			}
			cfg.SetDataPath(dataPath)
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			resolved, err := a.dataPath(cfg)
			if err != nil {
				return err
			}
			return a.printer.Line(resolved)
		},
	})
	return c
}
