package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vela-pay/vela_pay/internal/auth"
)

// RegisterAuthRoutes wires session endpoints. Login is rate limited when a
// cache is available; logout requires a live bearer token.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler, jwtmw fiber.Handler) {
	if rateLimiter != nil {
		r.Post("/login", rateLimiter, h.Login)
	} else {
		r.Post("/login", h.Login)
	}
	r.Post("/logout", jwtmw, h.Logout)
}
