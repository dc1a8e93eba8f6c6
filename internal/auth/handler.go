package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vela-pay/vela_pay/internal/account"
	"github.com/vela-pay/vela_pay/internal/token"
)

// Handler exposes login/logout endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login validates credentials and returns the same payload shape as registration.
func (h *Handler) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"errors": fiber.Map{"request": []string{"invalid request payload"}},
		})
	}

	user, tok, err := h.service.Login(c.UserContext(), input)
	if err != nil {
		var verr *account.ValidationError
		if errors.As(err, &verr) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"errors": verr.Fields})
		}
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": ErrInvalidCredentials.Error()})
		}
		var terr *token.IssuanceError
		if errors.As(err, &terr) {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": terr.Error()})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(http.StatusOK).JSON(account.NewAuthPayload(user, tok))
}

// Logout revokes the caller's bearer token.
func (h *Handler) Logout(c *fiber.Ctx) error {
	claims, _ := c.Locals("token_claims").(*token.Claims)
	if claims == nil {
		return fiber.NewError(http.StatusUnauthorized, "missing authentication context")
	}

	if err := h.service.Logout(c.UserContext(), claims); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "logout success"})
}
