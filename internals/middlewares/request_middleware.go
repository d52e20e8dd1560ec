package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

const RequestTimeout = 5 * time.Second

// RequestContext tags the request with X-Request-ID and bounds its user context.
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUID()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals("reqid", id)

		start := time.Now()
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		if time.Since(start) > time.Second {
			log.Printf("[WARN] slow request id=%s %s %s dur=%s", id, c.Method(), c.OriginalURL(), time.Since(start))
		}
		return err
	}
}
