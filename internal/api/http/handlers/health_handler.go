package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/contact-funnel/internal/persistence"
)

// HealthHandler responds to health probes.
type HealthHandler struct {
	environment string
	postgres    *persistence.Postgres
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(environment string, postgres *persistence.Postgres) *HealthHandler {
	return &HealthHandler{environment: environment, postgres: postgres}
}

// Health handles GET /health, reporting database connectivity.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbState := h.postgres.State(ctx)
	status := "OK"
	if dbState != "connected" {
		status = "WARNING"
	}

	return c.JSON(fiber.Map{
		"status":      status,
		"message":     "server is running",
		"database":    dbState,
		"environment": h.environment,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}
