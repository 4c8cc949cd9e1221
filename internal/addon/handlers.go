package addon

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/streamnova/streamnova/internal/apperrors"
	"github.com/streamnova/streamnova/internal/catalog"
	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/models"
	"github.com/streamnova/streamnova/internal/store"
)

func (s *Server) handleIndex(c *fiber.Ctx) error {
	return c.SendString(s.addonName + " Stremio Addon is running! Add /manifest.json to Stremio.")
}

func (s *Server) handleManifest(c *fiber.Ctx) error {
	return c.JSON(s.manifest)
}

// handleHealth reports unhealthy only when the collection exists but cannot be read.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	records, err := store.Load(s.databasePath)
	if err != nil && !errors.Is(err, &apperrors.ErrNotFound{}) {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("Health check failed")
		return c.Status(fiber.StatusInternalServerError).JSON(models.HealthResponse{
			Status: "unhealthy",
			Error:  err.Error(),
		})
	}

	return c.JSON(models.HealthResponse{
		Status:            "healthy",
		Addon:             s.addonName,
		Entries:           len(records),
		DatabaseExists:    store.Exists(s.databasePath),
		StremioCompatible: true,
	})
}

// handleCatalog serves /catalog/{type}/{id}.json and the path-extras form
// /catalog/{type}/{id}/{extra}.json. Query parameters win over path extras.
func (s *Server) handleCatalog(c *fiber.Ctx) error {
	kind, ok := models.ParseRequestKind(c.Params("type"))
	if !ok {
		return c.JSON(models.CatalogResponse{Metas: []models.CatalogEntry{}})
	}

	extras := parseExtras(c.Params("extra"))
	param := func(name string) string {
		if v := c.Query(name); v != "" {
			return v
		}
		return extras.Get(name)
	}

	query := catalog.Query{
		Kind:   kind,
		Search: param("search"),
		Genre:  param("genre"),
		Skip:   parseSkip(param("skip")),
	}

	metas := s.projector.Project(s.loadCollection(), query)
	return c.JSON(models.CatalogResponse{Metas: metas})
}

func (s *Server) handleStream(c *fiber.Ctx) error {
	id := trimJSON(c.Params("id"))
	if decoded, err := url.PathUnescape(id); err == nil {
		id = decoded
	}
	if id == "" {
		return c.JSON(models.StreamResponse{Streams: []models.StreamEntry{}})
	}

	streams := s.resolver.Resolve(s.loadCollection(), id)
	return c.JSON(models.StreamResponse{Streams: streams})
}

func trimJSON(segment string) string {
	return strings.TrimSuffix(segment, ".json")
}

// parseExtras decodes a Stremio extra segment such as "search=naruto&skip=100.json".
func parseExtras(segment string) url.Values {
	segment = trimJSON(segment)
	if segment == "" {
		return url.Values{}
	}
	values, err := url.ParseQuery(segment)
	if err != nil {
		logger := config.GetLogger()
		logger.Debug().Err(err).Str("extra", segment).Msg("Ignoring malformed catalog extras")
		return url.Values{}
	}
	return values
}

// parseSkip treats missing, malformed and negative values as 0. Values too
// large for an int skip past every entry.
func parseSkip(value string) int {
	skip, err := strconv.Atoi(strings.TrimSpace(value))
	if errors.Is(err, strconv.ErrRange) && skip > 0 {
		return math.MaxInt
	}
	if err != nil || skip < 0 {
		return 0
	}
	return skip
}
