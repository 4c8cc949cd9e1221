package catalog

import (
	"strconv"
	"strings"

	"github.com/streamnova/streamnova/internal/models"
)

const (
	MoviePrefix   = "movie_"
	ContentPrefix = "nova_"

	contentKeyLength = 16
)

// Codec converts between records and stable identifiers.
// With ContentIDs set, movies are addressed by content key instead of position.
type Codec struct {
	ContentIDs bool
}

// Encode returns the identifier of rec stored at index.
func (c Codec) Encode(rec models.MediaRecord, index int) string {
	if rec.Kind == models.KindSeries {
		return rec.SeriesKeyAt(index) + ":" + strconv.Itoa(rec.Season) + ":" + strconv.Itoa(rec.Episode)
	}
	if c.ContentIDs && rec.ContentKey != "" {
		return ContentPrefix + rec.ContentKey
	}
	return MoviePrefix + strconv.Itoa(index)
}

// Decode parses an identifier. Malformed identifiers come back as
// LocatorUnrecognized, never as an error.
func Decode(id string) models.Locator {
	loc := models.Locator{Kind: models.LocatorUnrecognized, ID: id}

	if strings.Contains(id, ":") {
		parts := strings.Split(id, ":")
		if len(parts) < 3 {
			return loc
		}
		season, err := strconv.Atoi(parts[1])
		if err != nil {
			return loc
		}
		episode, err := strconv.Atoi(parts[2])
		if err != nil {
			return loc
		}
		loc.Kind = models.LocatorSeries
		loc.SeriesKey = parts[0]
		loc.Season = season
		loc.Episode = episode
		return loc
	}

	if rest, ok := strings.CutPrefix(id, MoviePrefix); ok && isDigits(rest) {
		index, err := strconv.Atoi(rest)
		if err != nil {
			return loc
		}
		loc.Kind = models.LocatorPositional
		loc.Index = index
		return loc
	}

	if rest, ok := strings.CutPrefix(id, ContentPrefix); ok && len(rest) == contentKeyLength && isLowerHex(rest) {
		loc.Kind = models.LocatorContent
		loc.ContentKey = rest
		return loc
	}

	return loc
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isLowerHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
