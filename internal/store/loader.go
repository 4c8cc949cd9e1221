// Package store reads and writes the record collection served by the addon.
package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/streamnova/streamnova/internal/apperrors"
	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/metrics"
	"github.com/streamnova/streamnova/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Exists reports whether a collection file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads the collection at path. A missing file yields an ErrNotFound.
// Other failures are wrapped; callers serving requests treat both as an empty collection.
func Load(path string) ([]models.RawRecord, error) {
	logger := config.GetLogger()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.CollectionLoadsTotal.WithLabelValues("missing").Inc()
			logger.Warn().Str("path", path).Msg("Collection file not found")
			return nil, apperrors.NewCollectionNotFoundError(path)
		}
		metrics.CollectionLoadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to open collection %s: %w", path, err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		metrics.CollectionLoadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to read collection %s: %w", path, err)
	}

	metrics.CollectionLoadsTotal.WithLabelValues("ok").Inc()
	logger.Debug().Str("path", path).Int("entries", len(records)).Msg("Collection loaded")
	return records, nil
}

// Decode parses either a JSON array of records or one JSON record per line.
// Empty content is an empty collection.
func Decode(r io.Reader) ([]models.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	content := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(content) == 0 {
		logger := config.GetLogger()
		logger.Warn().Msg("Collection file is empty")
		return []models.RawRecord{}, nil
	}

	if content[0] == '[' {
		return decodeArray(content)
	}
	return decodeLines(content), nil
}

// decodeArray keeps a nil placeholder for elements that are not objects so
// that the remaining records keep their positions.
func decodeArray(content []byte) ([]models.RawRecord, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(content, &elements); err != nil {
		return nil, fmt.Errorf("invalid JSON array: %w", err)
	}

	records := make([]models.RawRecord, len(elements))
	for i, element := range elements {
		var record models.RawRecord
		if err := json.Unmarshal(element, &record); err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Int("index", i).Msg("Collection element is not an object")
			metrics.SkippedRecordsTotal.WithLabelValues("load").Inc()
			continue
		}
		records[i] = record
	}
	return records, nil
}

func decodeLines(content []byte) []models.RawRecord {
	logger := config.GetLogger()
	records := make([]models.RawRecord, 0)

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var record models.RawRecord
		if err := json.Unmarshal(line, &record); err != nil || record == nil {
			logger.Error().
				Err(&apperrors.ErrMalformedRecord{Index: lineNumber, Reason: describe(err)}).
				Str("line", preview(line)).
				Msg("Error parsing JSON line")
			metrics.SkippedRecordsTotal.WithLabelValues("load").Inc()
			continue
		}
		records = append(records, record)
	}

	return records
}

func describe(err error) string {
	if err == nil {
		return "not a JSON object"
	}
	return err.Error()
}

func preview(line []byte) string {
	const limit = 50
	if len(line) > limit {
		return string(line[:limit]) + "..."
	}
	return string(line)
}
