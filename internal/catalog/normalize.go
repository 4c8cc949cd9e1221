// Package catalog maps stored scraped records onto the Stremio addon protocol:
// stable identifiers, catalog listings and stream objects.
package catalog

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/streamnova/streamnova/internal/models"
)

const (
	DefaultTitle    = "Unknown"
	DefaultLanguage = "en"
	DefaultSource   = "Unknown"
	DefaultRating   = "N/A"
)

// DefaultGenres is used when a record carries no usable genre list.
var DefaultGenres = []string{"Anime"}

// knownFields lists the stored keys the pipeline interprets; anything else lands in Extra.
var knownFields = map[string]struct{}{
	"type": {}, "kind": {}, "title": {}, "url": {}, "lang": {}, "language": {},
	"source": {}, "series_id": {}, "series_key": {}, "season": {}, "episode": {},
	"poster": {}, "background": {}, "description": {}, "genres": {}, "rating": {},
	"year": {}, "quality": {}, "subtitles": {},
}

// Normalize resolves every field of raw to its value or default. It never fails:
// wrong-typed fields are treated as absent. A nil raw yields an all-default movie.
func Normalize(raw models.RawRecord) models.MediaRecord {
	rec := models.MediaRecord{
		Kind:     models.KindMovie,
		Title:    DefaultTitle,
		Language: DefaultLanguage,
		Source:   DefaultSource,
		Season:   1,
		Episode:  1,
		Genres:   append([]string(nil), DefaultGenres...),
		Rating:   DefaultRating,
	}
	if raw == nil {
		rec.ContentKey = ContentKey(rec.Source, rec.URL)
		return rec
	}

	if s, ok := raw.String("type", "kind"); ok {
		rec.Kind = models.ParseKind(s)
	}
	if s, ok := raw.String("title"); ok {
		rec.Title = s
	}
	if s, ok := raw.String("url"); ok {
		rec.URL = s
	}
	if s, ok := raw.String("lang", "language"); ok && strings.TrimSpace(s) != "" {
		rec.Language = strings.ToLower(strings.TrimSpace(s))
	}
	if s, ok := raw.String("source"); ok && s != "" {
		rec.Source = s
	}

	for _, key := range []string{"series_id", "series_key"} {
		if s, ok := raw.Text(key); ok && s != "" {
			rec.SeriesKey = s
			break
		}
	}
	if n, ok := raw.PositiveInt("season"); ok {
		rec.Season = n
	}
	if n, ok := raw.PositiveInt("episode"); ok {
		rec.Episode = n
	}

	rec.Poster, _ = raw.String("poster")
	rec.Background, _ = raw.String("background")
	rec.Description, _ = raw.String("description")

	if list, ok := raw["genres"].([]any); ok {
		genres := make([]string, 0, len(list))
		for _, g := range list {
			if s, ok := g.(string); ok {
				genres = append(genres, s)
			}
		}
		rec.Genres = genres
	}
	if s, ok := raw.Text("rating"); ok {
		rec.Rating = s
	}
	if s, ok := raw.Text("year"); ok {
		rec.Year = s
	}
	if s, ok := raw.Text("quality"); ok {
		rec.Quality = strings.TrimSpace(s)
	}
	if list, ok := raw["subtitles"].([]any); ok && len(list) > 0 {
		rec.Subtitles = list
	}

	for key, value := range raw {
		if _, known := knownFields[key]; known {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[key] = value
	}

	rec.ContentKey = ContentKey(rec.Source, rec.URL)
	return rec
}

// ContentKey derives a position-independent key from a record's source and url.
func ContentKey(source, url string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.ToLower(source)+"\x00"+url))
}
