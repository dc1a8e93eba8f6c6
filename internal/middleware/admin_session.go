package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vela-pay/vela_pay/internal/admin"
)

// AdminSession guards admin routes behind the session cookie. Requests
// without a live session are redirected to the login page.
func AdminSession(service *admin.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(admin.SessionCookie)
		adminID, err := service.Resolve(c.UserContext(), sessionID)
		if err != nil {
			return c.Redirect("/admin/login", http.StatusFound)
		}

		c.Locals("admin_id", adminID)
		return c.Next()
	}
}
