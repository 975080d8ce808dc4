package handlers

import (
	"time"

	"studentreg/internal/services"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth reports liveness and the number of stored students.
func HandleHealth(service *services.StudentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"students": service.CountStudents(),
		})
	}
}
