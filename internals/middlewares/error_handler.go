package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rollbar/rollbar-go"
	rollbarErrors "github.com/rollbar/rollbar-go/errors"

	helper "schoolku_backend/internals/helpers"
)

// InitRollbar enables reporting when a token is configured.
func InitRollbar(token, env string) {
	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetStackTracer(rollbarErrors.StackTracer)
	rollbar.SetEnabled(token != "")
}

// ErrorHandler renders errors that handlers returned instead of writing.
// 5xx are logged and reported.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		reqID, _ := c.Locals("reqid").(string)
		log.Printf("[ERROR] id=%s %s %s: %+v", reqID, c.Method(), c.OriginalURL(), err)
		rollbar.Error(err, map[string]interface{}{
			"request_id": reqID,
			"method":     c.Method(),
			"path":       c.Path(),
		})
	}
	return helper.JsonError(c, code, msg)
}
