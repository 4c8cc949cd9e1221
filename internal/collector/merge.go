package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/streamnova/streamnova/internal/apperrors"
	"github.com/streamnova/streamnova/internal/catalog"
	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/models"
	"github.com/streamnova/streamnova/internal/store"
)

// MergeResult counts the records read and written by MergeFiles.
type MergeResult struct {
	Read    int
	Written int
	Missing []string
}

// MergeFiles concatenates the collections at inputs in order, removes
// duplicates and writes the result to output. Missing inputs are skipped;
// unreadable ones abort the merge.
func MergeFiles(ctx context.Context, inputs []string, output string) (*MergeResult, error) {
	logger := config.GetLogger()
	result := &MergeResult{}

	var merged []models.RawRecord
	for _, input := range inputs {
		records, err := store.Load(input)
		if err != nil {
			if errors.Is(err, &apperrors.ErrNotFound{}) {
				result.Missing = append(result.Missing, input)
				continue
			}
			return result, fmt.Errorf("merge %s: %w", input, err)
		}
		logger.Debug().Str("path", input).Int("entries", len(records)).Msg("Loaded collection for merge")
		result.Read += len(records)
		merged = append(merged, records...)
	}

	if len(result.Missing) == len(inputs) {
		return result, fmt.Errorf("none of the %d input collections exist", len(inputs))
	}

	unique := catalog.Dedupe(merged)
	if err := store.Save(ctx, output, unique); err != nil {
		return result, err
	}
	result.Written = len(unique)
	return result, nil
}
