package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/codec"
	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/convert"
)

func (a *app) newConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <import|export> <toml|json|yaml|xml> <path>",
		Short: "Import tasks from, or export tasks to, another format",
		Long: `Export writes the task list to <path> in the given format.
Import reads <path> in the given format and replaces the task list with it.`,
		Args: usageArgs(cobra.ExactArgs(3)),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return []string{string(convert.Import), string(convert.Export)}, cobra.ShellCompDirectiveNoFileComp
			case 1:
				var names []string
				for _, f := range codec.Formats() {
					names = append(names, f.String())
				}
				return names, cobra.ShellCompDirectiveNoFileComp
			default:
				return nil, cobra.ShellCompDirectiveDefault
			}
		},
		RunE: func(_ *cobra.Command, args []string) error {
			action, err := convert.ParseAction(args[0])
			if err != nil {
				return usageError(err)
			}
			format, err := codec.ParseFormat(args[1])
			if err != nil {
				return usageError(err)
			}

			cfg, cfgPath, err := a.loadConfig()
			if err != nil {
				return err
			}
			dataPath, err := a.dataPath(cfg)
			if err != nil {
				return err
			}
			if err := convert.New(dataPath).Run(action, format, args[2]); err != nil {
				return err
			}
			return config.Save(cfgPath, cfg)
		},
	}
}
