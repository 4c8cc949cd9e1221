package main

import (
	"github.com/spf13/cobra"

	"github.com/streamnova/streamnova/internal/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "streamnova",
		Short:         "StreamNova Stremio addon and listing collector",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFlag == "" {
				return nil
			}
			return config.Use(configFlag)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newCollectCommand())
	rootCmd.AddCommand(newMergeCommand())
	rootCmd.AddCommand(newStatsCommand())

	return rootCmd
}
