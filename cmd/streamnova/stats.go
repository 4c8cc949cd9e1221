package main

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/streamnova/streamnova/internal/catalog"
	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/models"
	"github.com/streamnova/streamnova/internal/store"
)

func newStatsCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a collection by source, kind and language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.GetConfig().DatabasePath
			}

			records, err := store.Load(path)
			if err != nil {
				return err
			}

			rows := collectionStats(records)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Source", "Kind", "Language", "Entries"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			fmt.Fprintf(out, "%d entries in %s\n", len(records), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "Collection path (defaults to database_path)")
	return cmd
}

type statsKey struct {
	source   string
	kind     string
	language string
}

// collectionStats counts records per source, kind and language, sorted by
// descending count then by key. Placeholder records are counted as malformed.
func collectionStats(records []models.RawRecord) [][]string {
	counts := make(map[statsKey]int)
	for _, raw := range records {
		if raw == nil {
			counts[statsKey{source: "(malformed)"}]++
			continue
		}
		rec := catalog.Normalize(raw)
		counts[statsKey{source: rec.Source, kind: rec.Kind.String(), language: rec.Language}]++
	}

	keys := make([]statsKey, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b statsKey) int {
		return cmp.Or(
			cmp.Compare(counts[b], counts[a]),
			cmp.Compare(a.source, b.source),
			cmp.Compare(a.kind, b.kind),
			cmp.Compare(a.language, b.language),
		)
	})

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key.source, key.kind, key.language, strconv.Itoa(counts[key])})
	}
	return rows
}
