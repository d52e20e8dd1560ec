package routes

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/middlewares"
)

// NewApp builds the Fiber app with the JSON codec and error handler every entry point shares.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            middlewares.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          configs.TrustedProxies(),
	})
}
