package handlers

import (
	"studentreg/internal/models"

	"github.com/gofiber/fiber/v2"
)

// HandleGetCourses returns the course catalogue offered by the registration form.
func HandleGetCourses(c *fiber.Ctx) error {
	return c.JSON(models.Courses)
}
