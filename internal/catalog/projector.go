package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/streamnova/streamnova/internal/apperrors"
	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/metrics"
	"github.com/streamnova/streamnova/internal/models"
	"github.com/streamnova/streamnova/internal/reporting"
)

// DefaultPageSize is the maximum number of entries in one catalog page.
const DefaultPageSize = 100

// PlaceholderPoster is shown for records without a poster.
const PlaceholderPoster = "https://via.placeholder.com/300x450?text=No+Poster"

// Query selects one catalog page.
type Query struct {
	Kind   models.Kind
	Search string // case-insensitive title substring, empty matches everything
	Genre  string // case-insensitive genre name, empty matches everything
	Skip   int
}

// Projector builds catalog pages from a loaded collection.
type Projector struct {
	codec    Codec
	pageSize int
}

// NewProjector creates a projector using the catalog settings.
func NewProjector(cfg config.CatalogConfig) *Projector {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Projector{
		codec:    Codec{ContentIDs: cfg.ContentIDs},
		pageSize: pageSize,
	}
}

// Project returns the page of entries matching q. Records are numbered by their
// position in collection before any filtering, so identifiers do not depend on q.
// A record that cannot be projected is logged and skipped.
func (p *Projector) Project(collection []models.RawRecord, q Query) []models.CatalogEntry {
	logger := config.GetLogger()

	search := strings.ToLower(q.Search)
	genre := strings.ToLower(strings.TrimSpace(q.Genre))
	skip := max(q.Skip, 0)
	limit := math.MaxInt
	if skip <= math.MaxInt-p.pageSize {
		limit = skip + p.pageSize
	}

	metas := make([]models.CatalogEntry, 0)
	matched := 0

	for i, raw := range collection {
		if matched >= limit {
			break
		}

		entry, ok, err := p.projectOne(raw, i, q.Kind, search, genre)
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("Skipping catalog entry")
			metrics.SkippedRecordsTotal.WithLabelValues("catalog").Inc()
			continue
		}
		if !ok {
			continue
		}

		matched++
		if matched > skip {
			metas = append(metas, entry)
		}
	}

	metrics.CatalogEntriesServed.WithLabelValues(q.Kind.String()).Add(float64(len(metas)))
	logger.Debug().
		Str("kind", q.Kind.String()).
		Str("search", q.Search).
		Int("skip", skip).
		Int("count", len(metas)).
		Msg("Catalog projected")

	return metas
}

// projectOne reports ok=false for records filtered out by the query.
func (p *Projector) projectOne(raw models.RawRecord, index int, kind models.Kind, search, genre string) (entry models.CatalogEntry, ok bool, err error) {
	if raw == nil {
		return entry, false, &apperrors.ErrMalformedRecord{Index: index, Reason: "not a JSON object"}
	}

	defer func() {
		if r := recover(); r != nil {
			err = &apperrors.ErrMalformedRecord{Index: index, Reason: fmt.Sprint(r)}
			reporting.CaptureError(err, map[string]string{"stage": "catalog"})
			ok = false
		}
	}()

	rec := Normalize(raw)
	if rec.Kind != kind {
		return entry, false, nil
	}
	if search != "" && !strings.Contains(strings.ToLower(rec.Title), search) {
		return entry, false, nil
	}
	if genre != "" && !hasGenre(rec.Genres, genre) {
		return entry, false, nil
	}

	return p.buildEntry(rec, index), true, nil
}

func (p *Projector) buildEntry(rec models.MediaRecord, index int) models.CatalogEntry {
	id := p.codec.Encode(rec, index)
	lang := strings.ToUpper(rec.Language)
	source := TitleCase(rec.Source)

	poster := rec.Poster
	if poster == "" {
		poster = PlaceholderPoster
	}
	description := rec.Description
	if description == "" {
		description = fmt.Sprintf("From %s • Language: %s", rec.Source, lang)
	}

	entry := models.CatalogEntry{
		ID:          id,
		Type:        rec.Kind.String(),
		Name:        Flag(rec.Language) + " " + rec.Title,
		Poster:      poster,
		Background:  rec.Background,
		Description: description,
		Genres:      rec.Genres,
		IMDBRating:  rec.Rating,
		Year:        rec.Year,
		ReleaseInfo: lang + " • " + source,
	}

	if rec.Kind == models.KindSeries {
		entry.Videos = []models.MetaVideo{{
			ID:        id,
			Title:     "S" + strconv.Itoa(rec.Season) + "E" + strconv.Itoa(rec.Episode) + " - " + rec.Title,
			Season:    rec.Season,
			Episode:   rec.Episode,
			Overview:  rec.Description,
			Thumbnail: rec.Poster,
		}}
	}

	return entry
}

func hasGenre(genres []string, want string) bool {
	for _, g := range genres {
		if strings.ToLower(strings.TrimSpace(g)) == want {
			return true
		}
	}
	return false
}

// TitleCase upper-cases the first letter of every word of a source name.
// Letters after a dot stay lower case, so "animeonline.ninja" becomes "Animeonline.ninja".
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
