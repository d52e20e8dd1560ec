package helper

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// FieldErrors turns validator output into {field: [messages]}. Field names follow
// the json tags when the validator was built with NewValidator.
func FieldErrors(err error) map[string][]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string][]string{"_": {err.Error()}}
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		key := fe.Namespace()
		// drop the root struct name
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		out[key] = append(out[key], describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid", "uuid4":
		return "must be a valid uuid"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "hhmm":
		return "must be a time in HH:mm"
	case "email":
		return "must be a valid email"
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}

// ValidationError writes validator errors with the standard shape.
func ValidationError(c *fiber.Ctx, err error) error {
	return JsonValidationError(c, FieldErrors(err))
}
