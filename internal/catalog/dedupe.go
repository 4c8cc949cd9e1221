package catalog

import (
	"strings"

	"github.com/streamnova/streamnova/internal/models"
)

// dedupeKey identifies one scraped listing regardless of title casing.
type dedupeKey struct {
	Title string
	URL   string
}

// Dedupe removes records sharing the same lower-cased title and url, keeping
// the first occurrence and the original order. Nil records are dropped.
func Dedupe(entries []models.RawRecord) []models.RawRecord {
	seen := make(map[dedupeKey]struct{}, len(entries))
	unique := make([]models.RawRecord, 0, len(entries))

	for _, entry := range entries {
		if entry == nil {
			continue
		}
		title, _ := entry.String("title")
		url, _ := entry.String("url")
		key := dedupeKey{Title: strings.ToLower(title), URL: url}

		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, entry)
	}

	return unique
}
