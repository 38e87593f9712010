package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reqkit/pkg/config"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:           "reqkit",
		Short:         "Request lifecycle runtime",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if len(envFiles) == 0 {
				return nil
			}
			config.ResetCache()
			return config.LoadEnv(envFiles...)
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files loaded before configuration, later files win")

	root.AddCommand(newServeCmd(), newRoutesCmd())
	return root
}
