package routes

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/configs"
)

func clientIP(t *testing.T, app *fiber.App, forwarded string) string {
	t.Helper()
	req := httptest.NewRequest("GET", "/ip", nil)
	req.Header.Set(fiber.HeaderXForwardedFor, forwarded)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func ipApp() *fiber.App {
	app := NewApp()
	app.Get("/ip", func(c *fiber.Ctx) error { return c.SendString(c.IP()) })
	return app
}

func TestNewApp_IgnoresForwardedForByDefault(t *testing.T) {
	configs.Conf.Set("trusted_proxies", "")
	assert.NotEqual(t, "203.0.113.9", clientIP(t, ipApp(), "203.0.113.9"))
}

func TestNewApp_HonoursForwardedForFromTrustedProxy(t *testing.T) {
	configs.Conf.Set("trusted_proxies", " 10.0.0.0/8 , 0.0.0.0/0 ")
	defer configs.Conf.Set("trusted_proxies", "")

	assert.Equal(t, []string{"10.0.0.0/8", "0.0.0.0/0"}, configs.TrustedProxies())
	assert.Equal(t, "203.0.113.9", clientIP(t, ipApp(), "203.0.113.9"))
}
