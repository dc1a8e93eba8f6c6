package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/vela-pay/vela_pay/internal/account"
)

const (
	// SessionCookie carries the admin session id.
	SessionCookie = "admin_session"

	flashCookie = "flash"

	dashboardStatsKey = "admin:dashboard:stats"
	dashboardStatsTTL = 30 * time.Second
)

// Handler exposes the admin session flow. Unlike the JSON API it is
// redirect-based: login failures bounce back to the login page with a flash
// cookie and never reveal which credential field was wrong.
type Handler struct {
	service  *Service
	accounts *account.Service
	cache    *redis.Client
}

// NewHandler constructs an admin HTTP handler.
func NewHandler(service *Service, accounts *account.Service, cache *redis.Client) *Handler {
	return &Handler{service: service, accounts: accounts, cache: cache}
}

// LoginPage renders the login context, surfacing any flash message from a
// previous failed attempt.
func (h *Handler) LoginPage(c *fiber.Ctx) error {
	flash := c.Cookies(flashCookie)
	if flash != "" {
		c.ClearCookie(flashCookie)
	}
	body := fiber.Map{"message": "admin login"}
	if flash != "" {
		body["error"] = flash
	}
	return c.Status(http.StatusOK).JSON(body)
}

// Login verifies admin credentials. Success redirects to the dashboard with a
// session cookie; failure redirects back with a generic flash error.
func (h *Handler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	sessionID, err := h.service.Login(c.UserContext(), email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.Cookie(&fiber.Cookie{
				Name:    flashCookie,
				Value:   ErrInvalidCredentials.Error(),
				Expires: time.Now().Add(time.Minute),
			})
			return c.Redirect("/admin/login", http.StatusFound)
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Expires:  time.Now().Add(h.service.SessionTTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/admin/dashboard", http.StatusFound)
}

// Logout closes the session and returns to the login page.
func (h *Handler) Logout(c *fiber.Ctx) error {
	sessionID := c.Cookies(SessionCookie)
	if err := h.service.Logout(c.UserContext(), sessionID); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	c.ClearCookie(SessionCookie)
	return c.Redirect("/admin/login", http.StatusFound)
}

// Dashboard serves operational counts, cached briefly in Redis to keep the
// store off the hot path.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	adminID, _ := c.Locals("admin_id").(string)

	stats, err := h.dashboardStats(c)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"admin_id": adminID,
		"stats":    stats,
	})
}

func (h *Handler) dashboardStats(c *fiber.Ctx) (account.Stats, error) {
	ctx := c.UserContext()

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, dashboardStatsKey).Result(); err == nil {
			var stats account.Stats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := h.accounts.Stats(ctx)
	if err != nil {
		return account.Stats{}, err
	}

	if h.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			h.cache.Set(ctx, dashboardStatsKey, payload, dashboardStatsTTL)
		}
	}
	return stats, nil
}
