package metrics

import (
	"strconv"
	"time"

	"github.com/Behyna/banking-portal/internal/endpoint"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type HTTPConfig struct {
	// SlowThreshold is the duration above which a request is logged. Zero disables the log.
	SlowThreshold time.Duration
	// SkipPaths are served without being counted, e.g. the scrape endpoint itself.
	SkipPaths []string
}

func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		SlowThreshold: time.Second,
		SkipPaths:     []string{"/metrics"},
	}
}

// HTTPMetricsMiddleware records every request under its route template. Errors
// are rendered by the app error handler first so the recorded status is final.
func HTTPMetricsMiddleware(m *Metrics, logger *zap.Logger, cfg HTTPConfig) fiber.Handler {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := skip[c.Path()]; ok {
			return c.Next()
		}

		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		duration := time.Since(start)
		route := c.Route().Path
		if route == "" || route == "/" {
			route = c.Path()
		}
		status := strconv.Itoa(c.Response().StatusCode())

		m.RecordHTTPRequest(c.Method(), route, status, duration, len(c.Response().Body()))

		if cfg.SlowThreshold > 0 && duration > cfg.SlowThreshold {
			logger.Warn("Slow HTTP request",
				zap.String("method", c.Method()),
				zap.String("route", route),
				zap.String("status_code", status),
				zap.Duration("duration", duration))
		}

		return nil
	}
}

// HealthCheckMiddleware answers /health. The portal is reported degraded, not
// down, while the banking endpoint is unresolved: requests still retry it.
func HealthCheckMiddleware(serviceName string, resolver PhaseReporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() != "/health" {
			return c.Next()
		}

		status := "healthy"
		phase := endpoint.PhaseUninitialized
		if resolver != nil {
			phase = resolver.Phase()
		}
		if phase == endpoint.PhaseFailed {
			status = "degraded"
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    status,
			"endpoint":  phase.String(),
			"timestamp": time.Now().Unix(),
			"service":   serviceName,
		})
	}
}
