package catalog

import (
	"fmt"
	"strings"

	"github.com/streamnova/streamnova/internal/apperrors"
	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/metrics"
	"github.com/streamnova/streamnova/internal/models"
	"github.com/streamnova/streamnova/internal/reporting"
)

// BingeGroupPrefix namespaces binge groups so that streams of one source site group together.
const BingeGroupPrefix = "streamnova-"

// Resolver turns a stable identifier back into at most one stream.
type Resolver struct {
	codec Codec
}

// NewResolver creates a resolver using the catalog settings.
func NewResolver(cfg config.CatalogConfig) *Resolver {
	return &Resolver{codec: Codec{ContentIDs: cfg.ContentIDs}}
}

// Resolve returns the stream for id, or an empty slice when nothing matches
// or the matching record cannot be turned into a stream.
func (r *Resolver) Resolve(collection []models.RawRecord, id string) []models.StreamEntry {
	logger := config.GetLogger()
	loc := Decode(id)

	rec, index, found := r.locate(collection, loc)
	if !found {
		metrics.StreamResolutionsTotal.WithLabelValues(loc.Kind.String(), "miss").Inc()
		logger.Debug().Str("id", id).Str("locator", loc.Kind.String()).Msg("No stream for identifier")
		return []models.StreamEntry{}
	}

	stream, err := buildStream(rec, index)
	if err != nil {
		metrics.StreamResolutionsTotal.WithLabelValues(loc.Kind.String(), "miss").Inc()
		metrics.SkippedRecordsTotal.WithLabelValues("stream").Inc()
		logger.Error().Err(err).Str("id", id).Msg("Failed to build stream")
		return []models.StreamEntry{}
	}

	metrics.StreamResolutionsTotal.WithLabelValues(loc.Kind.String(), "hit").Inc()
	return []models.StreamEntry{stream}
}

// locate finds the first record addressed by loc.
func (r *Resolver) locate(collection []models.RawRecord, loc models.Locator) (models.MediaRecord, int, bool) {
	switch loc.Kind {
	case models.LocatorPositional:
		if loc.Index < 0 || loc.Index >= len(collection) || collection[loc.Index] == nil {
			return models.MediaRecord{}, 0, false
		}
		rec := Normalize(collection[loc.Index])
		return rec, loc.Index, rec.Kind == models.KindMovie

	case models.LocatorSeries:
		for i, raw := range collection {
			if raw == nil {
				continue
			}
			rec := Normalize(raw)
			if rec.Kind == models.KindSeries &&
				rec.SeriesKeyAt(i) == loc.SeriesKey &&
				rec.Season == loc.Season &&
				rec.Episode == loc.Episode {
				return rec, i, true
			}
		}

	case models.LocatorContent:
		for i, raw := range collection {
			if raw == nil {
				continue
			}
			if rec := Normalize(raw); rec.ContentKey == loc.ContentKey {
				return rec, i, true
			}
		}

	default:
		// Each record's identifier is recomputed at its own position.
		for i, raw := range collection {
			if raw == nil {
				continue
			}
			if rec := Normalize(raw); r.codec.Encode(rec, i) == loc.ID {
				return rec, i, true
			}
		}
	}

	return models.MediaRecord{}, 0, false
}

func buildStream(rec models.MediaRecord, index int) (stream models.StreamEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &apperrors.ErrMalformedRecord{Index: index, Reason: fmt.Sprint(r)}
			reporting.CaptureError(err, map[string]string{"stage": "stream"})
		}
	}()

	lang := strings.ToUpper(rec.Language)
	source := TitleCase(rec.Source)

	title := Flag(rec.Language) + " " + lang + " • " + source
	if rec.Quality != "" {
		title = rec.Quality + " • " + title
	}

	return models.StreamEntry{
		URL:         rec.URL,
		Title:       title,
		Name:        rec.Title,
		Description: "Language: " + lang + " | Source: " + source,
		Subtitles:   rec.Subtitles,
		BehaviorHints: &models.BehaviorHints{
			BingeGroup: BingeGroupPrefix + strings.ToLower(rec.Source),
		},
	}, nil
}
