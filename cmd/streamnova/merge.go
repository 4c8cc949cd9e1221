package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streamnova/streamnova/internal/collector"
	"github.com/streamnova/streamnova/internal/config"
)

func newMergeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "merge <collection>...",
		Short: "Merge collection files into one deduplicated collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = config.GetConfig().DatabasePath
			}

			result, err := collector.MergeFiles(cmd.Context(), args, output)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, missing := range result.Missing {
				fmt.Fprintf(out, "Skipped missing %s\n", missing)
			}
			fmt.Fprintf(out, "Merged %d entries into %d unique entries at %s\n", result.Read, result.Written, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output collection path (defaults to database_path)")
	return cmd
}
