package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hostel-complaints/internal/api/http/handlers"
	"github.com/spec-kit/hostel-complaints/internal/auth"
	"github.com/spec-kit/hostel-complaints/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Complaints     *handlers.ComplaintsHandler
	Staff          *handlers.StaffHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role gates mirror the engine's
// per-operation allow-list.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/staff", auth.RequireRole(domain.RoleAdmin), cfg.Staff.List)

	complaints := protected.Group("/complaints")
	complaints.Post("", auth.RequireRole(domain.RoleStudent), cfg.Complaints.Create)
	complaints.Get("/my", auth.RequireRole(domain.RoleStudent), cfg.Complaints.ListMine)
	complaints.Get("/assigned", auth.RequireRole(domain.RoleStaff), cfg.Complaints.ListAssigned)
	complaints.Get("/all", auth.RequireRole(domain.RoleAdmin), cfg.Complaints.ListAll)
	complaints.Put("/:id/status", auth.RequireRole(domain.RoleStudent, domain.RoleStaff, domain.RoleAdmin), cfg.Complaints.UpdateStatus)
	complaints.Put("/:id/assign/:staffId", auth.RequireRole(domain.RoleAdmin), cfg.Complaints.Assign)

	notifications := protected.Group("/notifications")
	notifications.Get("", cfg.Notifications.List)
	notifications.Get("/all", auth.RequireRole(domain.RoleAdmin), cfg.Notifications.ListAllAdmin)
	notifications.Put("/:id/read", cfg.Notifications.Acknowledge)
}
