package models

import (
	"math"
	"strconv"
	"strings"
)

// RawRecord is one stored record exactly as decoded from the collection file.
// A nil RawRecord marks a position whose stored value was not a JSON object.
type RawRecord map[string]any

// String returns the string stored under the first present key among keys.
// Present keys holding a non-string value report ok=false.
func (r RawRecord) String(keys ...string) (string, bool) {
	for _, key := range keys {
		v, exists := r[key]
		if !exists {
			continue
		}
		s, ok := v.(string)
		return s, ok
	}
	return "", false
}

// PositiveInt returns the value under key when it is a JSON number holding a
// positive integer.
func (r RawRecord) PositiveInt(key string) (int, bool) {
	f, ok := r[key].(float64)
	if !ok || f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// Text returns strings as-is and renders numbers without a trailing ".0",
// so that a scraped rating of 8.5 or a year of 2009 survive either encoding.
func (r RawRecord) Text(key string) (string, bool) {
	switch v := r[key].(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Kind is the coarse content category the catalog is partitioned by.
type Kind int

const (
	KindMovie Kind = iota
	KindSeries
)

// String returns the protocol name of the kind.
func (k Kind) String() string {
	if k == KindSeries {
		return "series"
	}
	return "movie"
}

// ParseKind maps a stored kind value onto the closed {movie, series} set.
// Unknown values fall back to movie.
func ParseKind(value string) Kind {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "series", "tv", "show":
		return KindSeries
	default:
		return KindMovie
	}
}

// ParseRequestKind accepts only the two protocol kind names.
func ParseRequestKind(value string) (Kind, bool) {
	switch value {
	case "movie":
		return KindMovie, true
	case "series":
		return KindSeries, true
	default:
		return KindMovie, false
	}
}

// MediaRecord is a RawRecord with every field resolved to a value or its default.
type MediaRecord struct {
	Kind     Kind
	Title    string
	URL      string
	Language string // lower-case code, "en" when absent
	Source   string // site name, "Unknown" when absent

	// Series coordinates; SeriesKey is empty when the record carries none.
	SeriesKey string
	Season    int
	Episode   int

	// Presentation fields keep "" when absent so callers can pick their own fallback.
	Poster      string
	Background  string
	Description string
	Genres      []string
	Rating      string
	Year        string
	Quality     string
	Subtitles   []any

	// ContentKey is derived from source and url and does not depend on position.
	ContentKey string

	// Extra holds every stored field the pipeline does not interpret.
	Extra map[string]any
}

// SeriesKeyAt returns the series key, or the positional placeholder used for
// series records stored without one.
func (m MediaRecord) SeriesKeyAt(index int) string {
	if m.SeriesKey != "" {
		return m.SeriesKey
	}
	return "series_" + strconv.Itoa(index)
}
