package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"movieflix/internal/service"
)

// BasePath prefixes every catalog route.
const BasePath = "/movieflix"

const healthTimeout = 2 * time.Second

// RegisterRoutes attaches health probes and the category and streaming
// resources to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, log *zap.Logger, categories service.CategoryService, streamings service.StreamingService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	v := NewValidator()
	api := app.Group(BasePath)

	MountCategories(api, NewCategoryResource(categories, v, log))
	MountStreamings(api, NewStreamingResource(streamings, v, log))
}

// RegisterMetrics exposes g in the Prometheus text format on /metrics.
func RegisterMetrics(app *fiber.App, g prometheus.Gatherer) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}

// HealthCheck reports healthy only when the database answers a ping.
//
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200 while the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
