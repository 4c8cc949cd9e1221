package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/models"
)

const lockRetryDelay = 100 * time.Millisecond

// Save replaces the collection at path with records, written as one JSON array.
// Writers are serialised through a lock file next to path, and the file is
// swapped in with a rename so concurrent readers see either the old or the new
// content.
func Save(ctx context.Context, path string, records []models.RawRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create collection directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire collection lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquire collection lock: %s is busy", path)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("path", path).Msg("Failed to release collection lock")
		}
	}()

	if records == nil {
		records = []models.RawRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return err
	}

	logger := config.GetLogger()
	logger.Info().Str("path", path).Int("entries", len(records)).Msg("Collection saved")
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".collection-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
