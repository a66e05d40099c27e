package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/saved-places-service/internal/config"
	"github.com/saved-places-service/internal/delivery/http/handler"
	"github.com/saved-places-service/internal/delivery/http/middleware"
)

// Server is the Fiber HTTP server.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	placeHandler *handler.PlaceHandler
	savedHandler *handler.SavedPlaceHandler
	statsHandler *handler.StatsHandler
}

// NewServer wires middlewares, routes and handlers into a ready server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	placeHandler *handler.PlaceHandler,
	savedHandler *handler.SavedPlaceHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Saved Places Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:          app,
		config:       cfg,
		logger:       logger,
		placeHandler: placeHandler,
		savedHandler: savedHandler,
		statsHandler: statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Cached-place inventory (no identity required)
	api.Get("/places", s.placeHandler.ListCachedPlaces)
	api.Get("/places/:external_id", s.placeHandler.GetCachedPlace)

	// Stats
	api.Get("/stats", s.statsHandler.GetStatistics)

	// Ingest needs the caller's identity
	api.Post("/places", middleware.UserIdentity(), s.placeHandler.IngestPlace)

	// Saved-place ledger, all user-scoped
	saved := api.Group("/saved-places", middleware.UserIdentity())
	saved.Get("/", s.savedHandler.ListSavedPlaces)
	saved.Post("/nearby", s.savedHandler.FindNearby)
	saved.Patch("/:id", s.savedHandler.UpdateSavedPlace)
	saved.Delete("/:id", s.savedHandler.DeleteSavedPlace)
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
