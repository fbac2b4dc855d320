// Package api serves the card catalog over HTTP. It is the remote store the
// view model and the command line talk to.
package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/cardcol/cardcol/internal/catalog"
	"github.com/cardcol/cardcol/internal/config"
	"github.com/cardcol/cardcol/internal/database"
	"github.com/cardcol/cardcol/internal/logger"
	"github.com/cardcol/cardcol/internal/services"
)

// BasePath is where the versioned catalog routes are mounted.
const BasePath = "/api/" + catalog.ContractVersion

// Handler holds the services behind the HTTP routes.
type Handler struct {
	Cards  *services.CardService
	Series *services.SeriesService
	Log    logger.Logger
}

// NewHandler builds a Handler over a database context.
func NewHandler(dbCtx *database.Context, log logger.Logger) *Handler {
	return &Handler{
		Cards:  services.NewCardService(dbCtx),
		Series: services.NewSeriesService(dbCtx),
		Log:    log.WithComponent("api"),
	}
}

// NewApp creates the fiber application with middleware and routes.
func NewApp(h *Handler, cfg *config.Server) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "cardcol " + catalog.ContractVersion,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          h.errorHandler,
	})

	origins := "*"
	if cfg != nil && cfg.CORSOrigins != "" {
		origins = cfg.CORSOrigins
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(h.requestLogger)

	h.RegisterRoutes(app.Group(BasePath))
	return app
}

// RegisterRoutes mounts the catalog routes on router.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.Health)
	router.Get("/cards", h.ListCards)
	router.Post("/cards", h.SearchCards)
	router.Put("/cards", h.AdjustCard)
	router.Get("/series", h.ListSeries)
}

// Serve runs app on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, app *fiber.App, addr string, log logger.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Listen(addr)
	}()
	log.Infof("listening on %s%s", addr, BasePath)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	}
}

func (h *Handler) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	c.SetUserContext(logger.ContextWithRequestID(c.UserContext(), id))

	err := c.Next()
	if err != nil {
		if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	h.Log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
		"method":   c.Method(),
		"path":     c.Path(),
		"status":   c.Response().StatusCode(),
		"duration": time.Since(start).String(),
	}).Debug("request")
	return nil
}

func (h *Handler) errorHandler(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "internal_error"

	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, services.ErrCardNotFound), errors.Is(err, services.ErrSeriesNotFound):
		status, code = fiber.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrNegativeCount):
		status, code = fiber.StatusConflict, "negative_count"
	case errors.Is(err, services.ErrEmptyQuery):
		status, code = fiber.StatusBadRequest, "missing_name"
	case errors.As(err, &fiberErr):
		status, code = fiberErr.Code, "request_error"
	}

	if status == fiber.StatusInternalServerError {
		h.Log.WithContext(c.UserContext()).WithError(err).Error("request failed")
	}
	return c.Status(status).JSON(ErrorResponse{Error: code, Message: err.Error()})
}
