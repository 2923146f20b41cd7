package services

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error is the failure type every service returns. Code is the HTTP-style
// status the boundary should respond with; Message is safe to show callers.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound builds a 404 error for a missing target or referenced entity.
func NotFound(format string, args ...any) *Error {
	return &Error{Code: fiber.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a 409 error for a unique-constraint violation.
func Conflict(format string, args ...any) *Error {
	return &Error{Code: fiber.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

// BadRequest builds a 400 error. Used for role mismatches, self-assignment
// and empty update payloads.
func BadRequest(format string, args ...any) *Error {
	return &Error{Code: fiber.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Unexpected normalizes an unhandled failure to a generic 500. The cause is
// kept in the message for diagnostics; stack detail is never exposed.
func Unexpected(err error) *Error {
	return &Error{
		Code:    fiber.StatusInternalServerError,
		Message: fmt.Sprintf("An unexpected error occurred: %v", err),
	}
}
