package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vela-pay/vela_pay/internal/account"
)

// RegisterAccountRoutes wires registration and profile endpoints. Register
// honors Idempotency-Key replay protection when a cache is available.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler, idem fiber.Handler, jwtmw fiber.Handler) {
	if idem != nil {
		r.Post("/register", idem, h.Register)
	} else {
		r.Post("/register", h.Register)
	}
	r.Get("/me", jwtmw, h.Me)
}
