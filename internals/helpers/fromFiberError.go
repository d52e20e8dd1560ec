package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// FromFiberError writes a *fiber.Error with its own code, anything else as 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
