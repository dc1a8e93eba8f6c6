package admin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-pay/vela_pay/internal/account"
	"github.com/vela-pay/vela_pay/internal/admin"
	"github.com/vela-pay/vela_pay/internal/logging"
	"github.com/vela-pay/vela_pay/internal/middleware"
	"github.com/vela-pay/vela_pay/internal/notification"
	"github.com/vela-pay/vela_pay/internal/routes"
	"github.com/vela-pay/vela_pay/internal/storage"
	"github.com/vela-pay/vela_pay/internal/token"
)

func newAdminApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := logging.Discard()

	repo := admin.NewMemoryRepository()
	require.NoError(t, admin.EnsureBootstrapAdmin(context.Background(), repo, admin.SeedInput{
		Name:     "Ops Admin",
		Email:    "ops@velapay.local",
		Password: "admin-secret",
	}, logger))

	svc := admin.NewService(repo, admin.NewMemorySessionStore(), time.Hour, logger)

	issuer := token.NewJWTIssuer("0123456789abcdef0123456789abcdef", time.Hour)
	accounts := account.NewService(account.NewMemoryRepository(), storage.NewMemoryStore(),
		issuer, notification.NewLoggerNotifier(logger), logger)

	handler := admin.NewHandler(svc, accounts, nil)

	app := fiber.New()
	routes.RegisterAdminRoutes(app, handler, middleware.AdminSession(svc))
	return app
}

func loginForm(email, password string) *http.Request {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == admin.SessionCookie {
			return cookie
		}
	}
	return nil
}

func TestAdminLoginRedirectsToDashboard(t *testing.T) {
	app := newAdminApp(t)

	resp, err := app.Test(loginForm("ops@velapay.local", "admin-secret"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/dashboard", resp.Header.Get(fiber.HeaderLocation))
	require.NotNil(t, sessionCookie(t, resp))
}

func TestAdminLoginFailureBouncesWithFlash(t *testing.T) {
	app := newAdminApp(t)

	resp, err := app.Test(loginForm("ops@velapay.local", "nope"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get(fiber.HeaderLocation))
	assert.Nil(t, sessionCookie(t, resp))

	flashed := false
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "flash" && cookie.Value != "" {
			flashed = true
		}
	}
	assert.True(t, flashed)
}

func TestAdminDashboardRequiresSession(t *testing.T) {
	app := newAdminApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestAdminSessionLifecycle(t *testing.T) {
	app := newAdminApp(t)

	resp, err := app.Test(loginForm("ops@velapay.local", "admin-secret"))
	require.NoError(t, err)
	resp.Body.Close()
	cookie := sessionCookie(t, resp)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get(fiber.HeaderLocation))

	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}
