package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/grievance-service/internal/api/http/handlers"
	"github.com/spec-kit/grievance-service/internal/auth"
	"github.com/spec-kit/grievance-service/internal/authz"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Grievances     *handlers.GrievancesHandler
	Users          *handlers.UsersHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every protected route passes the
// authorization policy before reaching its handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	grievances := app.Group("/grievances", cfg.AuthMiddleware.Handle)
	grievances.Post("/", auth.RequirePermission(authz.OpRaiseGrievance), cfg.Grievances.Raise)
	grievances.Get("/", auth.RequirePermission(authz.OpViewAllGrievances), cfg.Grievances.List)
	grievances.Get("/mine", auth.RequirePermission(authz.OpViewOwnGrievances), cfg.Grievances.ListMine)
	grievances.Get("/search", auth.RequirePermission(authz.OpSearchGrievances), cfg.Grievances.Search)
	grievances.Patch("/:id/status", auth.RequirePermission(authz.OpUpdateGrievanceStatus), cfg.Grievances.UpdateStatus)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle, auth.RequirePermission(authz.OpViewReports))
	reports.Get("/status", cfg.Reports.StatusReport)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequirePermission(authz.OpManageUsers))
	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Provision)
	admin.Patch("/users/:id/role", cfg.Users.UpdateRole)
	admin.Delete("/users/:id", cfg.Users.Delete)
}
