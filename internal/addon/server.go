// Package addon serves the Stremio addon protocol over HTTP.
package addon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/streamnova/streamnova/internal/apperrors"
	"github.com/streamnova/streamnova/internal/catalog"
	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/models"
	"github.com/streamnova/streamnova/internal/reporting"
	"github.com/streamnova/streamnova/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Server is the addon HTTP server.
type Server struct {
	app          *fiber.App
	address      string
	databasePath string
	addonName    string
	manifest     models.Manifest
	projector    *catalog.Projector
	resolver     *catalog.Resolver
}

// NewServer creates the addon server and registers its routes.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		address:      net.JoinHostPort(cfg.Server.Address, strconv.Itoa(cfg.Server.Port)),
		databasePath: cfg.DatabasePath,
		addonName:    cfg.Addon.Name,
		manifest:     catalog.Manifest(cfg.Addon),
		projector:    catalog.NewProjector(cfg.Catalog),
		resolver:     catalog.NewResolver(cfg.Catalog),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               cfg.Addon.Name,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
	})

	s.app.Use(observe())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "*",
		ExposeHeaders: "*",
	}))
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.app.Get("/", s.handleIndex)
	s.app.Get("/health", s.handleHealth)
	s.app.Get("/manifest.json", s.handleManifest)
	s.app.Get("/catalog/:type/:id", s.handleCatalog)
	s.app.Get("/catalog/:type/:id/:extra", s.handleCatalog)
	s.app.Get("/stream/:type/:id", s.handleStream)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := config.GetLogger()
	logger.Info().Str("address", ln.Addr().String()).Msg("Starting addon server")

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.app.Listener(ln)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	logger := config.GetLogger()
	logger.Info().Msg("Shutting down addon server")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.app.ShutdownWithContext(shutdownCtx)
}

// loadCollection reads the collection for one request. Load failures are
// logged and served as an empty collection.
func (s *Server) loadCollection() []models.RawRecord {
	records, err := store.Load(s.databasePath)
	if err != nil {
		if !errors.Is(err, &apperrors.ErrNotFound{}) {
			logger := config.GetLogger()
			logger.Error().Err(err).Str("path", s.databasePath).Msg("Error loading collection")
			reporting.CaptureError(err, map[string]string{"stage": "load"})
		}
		return []models.RawRecord{}
	}
	return records
}
