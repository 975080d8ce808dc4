package handlers

import (
	"errors"

	"studentreg/internal/services"
	"studentreg/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// messageResponse is the body of every error response.
type messageResponse struct {
	Message string `json:"message"`
}

func respondMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(messageResponse{Message: message})
}

// respondError translates a service error into a status code and message.
// Unexpected errors are logged and answered with fallback.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error, fallback string) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return respondMessage(c, fiber.StatusBadRequest, verrs.Error())
	case errors.Is(err, services.ErrDuplicateEmail):
		return respondMessage(c, fiber.StatusBadRequest, "A student with this email already exists")
	case errors.Is(err, services.ErrStudentNotFound):
		return respondMessage(c, fiber.StatusNotFound, "Student not found")
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg(fallback)
		return respondMessage(c, fiber.StatusInternalServerError, fallback)
	}
}

// ErrorHandler renders errors that escape handlers, including recovered
// panics and unmatched routes, as a JSON message.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return respondMessage(c, fe.Code, fe.Message)
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("unhandled error")
		return respondMessage(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
