package account

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vela-pay/vela_pay/internal/token"
)

// Handler exposes account provisioning endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles user onboarding: one user, one wallet, one token.
func (h *Handler) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"errors": fiber.Map{"request": []string{"invalid request payload"}},
		})
	}

	user, tok, err := h.service.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(NewAuthPayload(user, tok))
}

// Me returns the authenticated user's profile and wallet summary.
func (h *Handler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing authentication context")
	}

	user, err := h.service.User(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "user not found")
	}
	wallet, err := h.service.Wallet(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "wallet not found")
	}

	return c.JSON(fiber.Map{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"username":    user.Username,
		"verified":    user.Verified,
		"balance":     wallet.Balance,
		"card_number": wallet.CardNumber,
		"created_at":  user.CreatedAt,
	})
}

// respondError translates service error kinds to transport status codes. This
// is the only place provisioning errors meet HTTP.
func respondError(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"errors": verr.Fields})
	}

	var perr *ProvisioningError
	if errors.As(err, &perr) {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": perr.Error()})
	}

	var terr *token.IssuanceError
	if errors.As(err, &terr) {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": terr.Error()})
	}

	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
}
