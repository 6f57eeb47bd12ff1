package presenter

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/pkg/validation"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationResponse carries field-keyed messages for 400s, with
// cross-field problems under "non_field_errors".
type ValidationResponse struct {
	Errors map[string][]string `json:"errors"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

func Validation(c *fiber.Ctx, ve *validation.Error) error {
	return JSON(c, fiber.StatusBadRequest, ValidationResponse{Errors: ve.Fields})
}

// FieldError is a one-field validation failure shortcut.
func FieldError(c *fiber.Ctx, field, message string) error {
	return Validation(c, validation.New(field, message))
}
