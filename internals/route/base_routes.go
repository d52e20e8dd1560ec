package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/configs"
)

var startTime = time.Now()

// BaseRoutes mounts the unauthenticated probes. ping may be nil (memory driver).
func BaseRoutes(app *fiber.App, ping func(context.Context) error) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("schoolku timetable service")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if ping != nil {
			if err := ping(c.UserContext()); err != nil {
				dbStatus = "database connection error"
				serverStatus = "DOWN"
				httpStatus = fiber.StatusServiceUnavailable
			}
		} else {
			dbStatus = "memory"
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    configs.Conf.GetString("app_env"),
		})
	})
}
