package main

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/streamnova/streamnova/internal/cache"
	"github.com/streamnova/streamnova/internal/collector"
	"github.com/streamnova/streamnova/internal/config"
)

func newCollectCommand() *cobra.Command {
	var sources []string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Scrape the configured sources and rebuild the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *config.GetConfig()
			selected, err := selectSources(cfg.Collector.Sources, sources)
			if err != nil {
				return err
			}
			cfg.Collector.Sources = selected

			pages, err := cache.FromConfig(cfg.Cache, "collector")
			if err != nil {
				return err
			}
			defer pages.Close()

			summary, err := collector.New(&cfg, pages).Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d unique entries (%d scraped) to %s in %s\n",
				summary.Unique, summary.Total, cfg.DatabasePath, summary.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&sources, "source", "s", nil, "Only scrape the named sources (repeatable)")
	return cmd
}

// selectSources keeps the configured sources named in names, in configuration order.
func selectSources(all []config.SourceConfig, names []string) ([]config.SourceConfig, error) {
	if len(names) == 0 {
		return all, nil
	}

	var selected []config.SourceConfig
	for _, source := range all {
		if slices.Contains(names, source.Name) {
			selected = append(selected, source)
		}
	}
	for _, name := range names {
		if !slices.ContainsFunc(selected, func(s config.SourceConfig) bool { return s.Name == name }) {
			return nil, fmt.Errorf("unknown source %q", name)
		}
	}
	return selected, nil
}

func renderSummary(summary *collector.Summary) string {
	names := make([]string, 0, len(summary.Items)+len(summary.Failed))
	for name := range summary.Items {
		names = append(names, name)
	}
	for _, name := range summary.Failed {
		if _, ok := summary.Items[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		status := "ok"
		if slices.Contains(summary.Failed, name) {
			status = "failed"
		}
		rows = append(rows, []string{name, strconv.Itoa(summary.Items[name]), status})
	}
	return renderTable([]string{"Source", "Items", "Status"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft})
}
