package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fashion-oms/oms-service/internal/api/http/handlers"
	"github.com/fashion-oms/oms-service/internal/auth"
	"github.com/fashion-oms/oms-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Verify         *handlers.VerifyHandler
	Products       *handlers.ProductsHandler
	Customers      *handlers.CustomersHandler
	Orders         *handlers.OrdersHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/signup", cfg.Auth.Signup)
	app.Post("/auth/login", cfg.Auth.Login)

	// The verification link from the role-upgrade email is followed out of
	// band, so it must not require a session.
	app.Get("/verify-role", cfg.Verify.VerifyRole)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	protected.Get("/dashboard/stats", cfg.Dashboard.Stats)

	protected.Get("/products", cfg.Products.List)
	protected.Get("/products/:id", cfg.Products.Get)
	protected.Post("/products", cfg.Products.Create)
	protected.Put("/products/:id", cfg.Products.Update)
	protected.Delete("/products/:id", cfg.Products.Delete)

	protected.Get("/customers", cfg.Customers.List)
	protected.Post("/customers", cfg.Customers.Create)

	protected.Get("/orders", cfg.Orders.List)
	protected.Get("/orders/:id", cfg.Orders.Get)
	protected.Post("/orders", cfg.Orders.Create)
	protected.Patch("/orders/:id/status", cfg.Orders.UpdateStatus)
	protected.Delete("/orders/:id", cfg.Orders.Delete)

	admin := protected.Group("/admin", auth.RequireRole(domain.EmployeeRoleAdmin))
	admin.Get("/staff", cfg.Staff.List)
	admin.Delete("/staff/:id", cfg.Staff.Delete)
	admin.Post("/staff/:id/role-upgrade", cfg.Staff.InitiateRoleUpgrade)
}
