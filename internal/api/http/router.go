package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/contact-funnel/internal/api/http/handlers"
	"github.com/spec-kit/contact-funnel/internal/auth"
	"github.com/spec-kit/contact-funnel/internal/persistence"
	apperrors "github.com/spec-kit/contact-funnel/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Forms          *handlers.FormsHandler
	AuthMiddleware *auth.Middleware
	DB             *persistence.Postgres
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "contact funnel API"})
	})
	app.Get("/health", cfg.Health.Health)

	// api routes need a database; the health endpoint stays reachable
	if cfg.DB != nil {
		app.Use("/api", requireDatabase(cfg.DB))
	}

	authGroup := app.Group("/api/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/signin", cfg.Auth.Signin)
	authGroup.Post("/admin/login", cfg.Auth.AdminLogin)

	authGroup.Get("/users", cfg.AuthMiddleware.AdminOnly, cfg.Users.List)
	authGroup.Get("/users/:id", cfg.AuthMiddleware.Handle, cfg.Users.Get)
	authGroup.Put("/users/:id", cfg.AuthMiddleware.Handle, cfg.Users.Update)
	authGroup.Delete("/users/:id", cfg.AuthMiddleware.Handle, cfg.Users.Delete)

	forms := app.Group("/api/forms")
	forms.Post("/submit", cfg.Forms.Submit)
	forms.Get("/submissions", cfg.AuthMiddleware.Handle, cfg.Forms.List)
	forms.Get("/submissions/:id", cfg.AuthMiddleware.Handle, cfg.Forms.Get)
	forms.Put("/submissions/:id", cfg.AuthMiddleware.Handle, cfg.Forms.Update)
	forms.Delete("/submissions/:id", cfg.AuthMiddleware.Handle, cfg.Forms.Delete)
}

func requireDatabase(db *persistence.Postgres) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db.PoolHandle() == nil {
			return apperrors.NewServiceUnavailable("database connection not available")
		}
		return c.Next()
	}
}
