package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vela-pay/vela_pay/internal/admin"
)

// RegisterAdminRoutes wires the cookie-based admin flow.
func RegisterAdminRoutes(app *fiber.App, h *admin.Handler, sessionGuard fiber.Handler) {
	group := app.Group("/admin")
	group.Get("/login", h.LoginPage)
	group.Post("/login", h.Login)
	group.Post("/logout", h.Logout)
	group.Get("/dashboard", sessionGuard, h.Dashboard)
}
