package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "schoolku_backend/internals/helpers"
)

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// GlobalRateLimiter covers every endpoint.
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(100, time.Minute, "too many requests, try again later")
}

// WriteRateLimiter is the tighter limit for timetable and directory writes.
func WriteRateLimiter() fiber.Handler {
	return newLimiter(30, time.Minute, "too many write requests, try again later")
}
