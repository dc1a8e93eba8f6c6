package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vela-pay/vela_pay/internal/auth"
	"github.com/vela-pay/vela_pay/internal/token"
)

// JWTAuth validates bearer tokens and rejects tokens revoked by logout. The
// verified claims are stored in request locals for downstream handlers.
func JWTAuth(issuer *token.JWTIssuer, denylist auth.Denylist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		claims, err := issuer.Parse(tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		revoked, err := denylist.Revoked(c.UserContext(), claims.ID)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, "token revocation check failed")
		}
		if revoked {
			return fiber.NewError(http.StatusUnauthorized, "token invalidated")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("token_claims", claims)
		return c.Next()
	}
}
