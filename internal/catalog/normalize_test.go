package catalog

import (
	"reflect"
	"testing"

	"github.com/streamnova/streamnova/internal/models"
)

func TestNormalize_Defaults(t *testing.T) {
	rec := Normalize(models.RawRecord{})

	if rec.Kind != models.KindMovie {
		t.Errorf("Expected movie kind, got %s", rec.Kind)
	}
	if rec.Title != DefaultTitle {
		t.Errorf("Expected title %q, got %q", DefaultTitle, rec.Title)
	}
	if rec.Language != DefaultLanguage {
		t.Errorf("Expected language %q, got %q", DefaultLanguage, rec.Language)
	}
	if rec.Source != DefaultSource {
		t.Errorf("Expected source %q, got %q", DefaultSource, rec.Source)
	}
	if rec.Season != 1 || rec.Episode != 1 {
		t.Errorf("Expected S1E1, got S%dE%d", rec.Season, rec.Episode)
	}
	if !reflect.DeepEqual(rec.Genres, DefaultGenres) {
		t.Errorf("Expected genres %v, got %v", DefaultGenres, rec.Genres)
	}
	if rec.Rating != DefaultRating {
		t.Errorf("Expected rating %q, got %q", DefaultRating, rec.Rating)
	}
	if rec.Year != "" || rec.Poster != "" || rec.Quality != "" {
		t.Errorf("Expected empty optional fields, got %+v", rec)
	}
	if rec.Subtitles != nil {
		t.Errorf("Expected no subtitles, got %v", rec.Subtitles)
	}
	if rec.ContentKey == "" {
		t.Error("Expected content key to be set")
	}
}

func TestNormalize_NilRecord(t *testing.T) {
	rec := Normalize(nil)
	if rec.Kind != models.KindMovie || rec.Title != DefaultTitle {
		t.Errorf("Expected all-default movie, got %+v", rec)
	}
}

func TestNormalize_Fields(t *testing.T) {
	raw := models.RawRecord{
		"type":        "series",
		"title":       "Naruto",
		"url":         "https://example.com/naruto",
		"lang":        " ES ",
		"source":      "latanime",
		"series_id":   "naruto",
		"season":      float64(2),
		"episode":     float64(7),
		"poster":      "https://example.com/p.jpg",
		"description": "Ninjas",
		"genres":      []any{"Action", 3, "Shounen"},
		"rating":      8.5,
		"year":        float64(2002),
		"quality":     " 1080p ",
		"subtitles":   []any{map[string]any{"lang": "en"}},
		"scraped_at":  "2024-01-01",
	}

	rec := Normalize(raw)

	if rec.Kind != models.KindSeries {
		t.Errorf("Expected series kind, got %s", rec.Kind)
	}
	if rec.Language != "es" {
		t.Errorf("Expected language %q, got %q", "es", rec.Language)
	}
	if rec.SeriesKey != "naruto" {
		t.Errorf("Expected series key %q, got %q", "naruto", rec.SeriesKey)
	}
	if rec.Season != 2 || rec.Episode != 7 {
		t.Errorf("Expected S2E7, got S%dE%d", rec.Season, rec.Episode)
	}
	if !reflect.DeepEqual(rec.Genres, []string{"Action", "Shounen"}) {
		t.Errorf("Expected string genres only, got %v", rec.Genres)
	}
	if rec.Rating != "8.5" {
		t.Errorf("Expected rating %q, got %q", "8.5", rec.Rating)
	}
	if rec.Year != "2002" {
		t.Errorf("Expected year %q, got %q", "2002", rec.Year)
	}
	if rec.Quality != "1080p" {
		t.Errorf("Expected quality %q, got %q", "1080p", rec.Quality)
	}
	if len(rec.Subtitles) != 1 {
		t.Errorf("Expected 1 subtitle track, got %d", len(rec.Subtitles))
	}
	if rec.Extra["scraped_at"] != "2024-01-01" {
		t.Errorf("Expected unknown field to be kept in Extra, got %v", rec.Extra)
	}
	if _, ok := rec.Extra["title"]; ok {
		t.Error("Known fields must not be copied into Extra")
	}
}

func TestNormalize_WrongTypes(t *testing.T) {
	raw := models.RawRecord{
		"type":      42,
		"title":     []any{"not", "a", "string"},
		"lang":      "",
		"source":    "",
		"season":    "3",
		"episode":   float64(-1),
		"genres":    "Action",
		"subtitles": []any{},
	}

	rec := Normalize(raw)

	if rec.Kind != models.KindMovie {
		t.Errorf("Expected movie kind, got %s", rec.Kind)
	}
	if rec.Title != DefaultTitle {
		t.Errorf("Expected default title, got %q", rec.Title)
	}
	if rec.Language != DefaultLanguage || rec.Source != DefaultSource {
		t.Errorf("Expected default language and source, got %q %q", rec.Language, rec.Source)
	}
	if rec.Season != 1 || rec.Episode != 1 {
		t.Errorf("Expected S1E1, got S%dE%d", rec.Season, rec.Episode)
	}
	if !reflect.DeepEqual(rec.Genres, DefaultGenres) {
		t.Errorf("Expected default genres, got %v", rec.Genres)
	}
	if rec.Subtitles != nil {
		t.Errorf("Expected empty subtitle list to be dropped, got %v", rec.Subtitles)
	}
}

func TestNormalize_Aliases(t *testing.T) {
	rec := Normalize(models.RawRecord{"kind": "TV", "language": "fr", "series_key": float64(12)})

	if rec.Kind != models.KindSeries {
		t.Errorf("Expected series kind, got %s", rec.Kind)
	}
	if rec.Language != "fr" {
		t.Errorf("Expected language %q, got %q", "fr", rec.Language)
	}
	if rec.SeriesKey != "12" {
		t.Errorf("Expected series key %q, got %q", "12", rec.SeriesKey)
	}
}

func TestContentKey(t *testing.T) {
	a := ContentKey("AnimeOnline", "https://example.com/a")
	b := ContentKey("animeonline", "https://example.com/a")
	c := ContentKey("animeonline", "https://example.com/b")

	if len(a) != 16 {
		t.Errorf("Expected 16 hex characters, got %q", a)
	}
	if a != b {
		t.Errorf("Expected source casing to be ignored, got %q and %q", a, b)
	}
	if a == c {
		t.Errorf("Expected different urls to give different keys, both %q", a)
	}
}

func TestFlag(t *testing.T) {
	tests := []struct {
		language string
		expected string
	}{
		{"en", "🇺🇸"},
		{"ES", "🇪🇸"},
		{"ja", "🇯🇵"},
		{"jp", "🇯🇵"},
		{"ko", GlobeFlag},
		{"", GlobeFlag},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			if got := Flag(tt.language); got != tt.expected {
				t.Errorf("Flag(%q) = %q, want %q", tt.language, got, tt.expected)
			}
		})
	}
}
