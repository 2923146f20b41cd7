package handlers

import (
	"errors"
	"fmt"

	"autosalon/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a service failure to its HTTP status. Anything that is
// not a typed service error is normalized to a generic 500 so callers never
// see raw persistence-layer detail.
func respondError(c *fiber.Ctx, err error) error {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		return c.Status(svcErr.Code).JSON(fiber.Map{
			"detail": svcErr.Message,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"detail": fmt.Sprintf("An unexpected error occurred: %v", err),
	})
}

// respondValidationError formats validator failures field by field.
func respondValidationError(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"detail": "Validation failed",
		"errors": errorMessages,
	})
}

// parseIDParam reads a numeric id path parameter. Non-numeric and negative
// values are rejected with 422.
func parseIDParam(c *fiber.Ctx, name string) (uint, *services.Error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 0 {
		return 0, &services.Error{
			Code:    fiber.StatusUnprocessableEntity,
			Message: fmt.Sprintf("Invalid value for path parameter '%s'.", name),
		}
	}
	return uint(id), nil
}
