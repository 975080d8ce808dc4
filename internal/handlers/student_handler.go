package handlers

import (
	"studentreg/internal/models"
	"studentreg/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// StudentHandler handles HTTP requests for students.
type StudentHandler struct {
	service *services.StudentService
	log     zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(service *services.StudentService, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the student routes with the Fiber app.
func (h *StudentHandler) RegisterRoutes(router fiber.Router) {
	studentRoutes := router.Group("/students")
	studentRoutes.Get("/", h.HandleGetStudents)
	studentRoutes.Get("/:id", h.HandleGetStudentByID)
	studentRoutes.Post("/", h.HandleCreateStudent)
	studentRoutes.Put("/:id", h.HandleUpdateStudent)
	studentRoutes.Delete("/:id", h.HandleDeleteStudent)
}

// HandleGetStudents returns every student. Search and filtering happen in the client.
func (h *StudentHandler) HandleGetStudents(c *fiber.Ctx) error {
	return c.JSON(h.service.ListStudents())
}

// HandleGetStudentByID returns one student.
func (h *StudentHandler) HandleGetStudentByID(c *fiber.Ctx) error {
	student, err := h.service.GetStudent(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch student")
	}
	return c.JSON(student)
}

// HandleCreateStudent registers a new student.
func (h *StudentHandler) HandleCreateStudent(c *fiber.Ctx) error {
	payload, err := h.parsePayload(c)
	if err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body")
	}

	student, err := h.service.CreateStudent(payload)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create student")
	}
	return c.Status(fiber.StatusCreated).JSON(student)
}

// HandleUpdateStudent applies a partial update to a student.
func (h *StudentHandler) HandleUpdateStudent(c *fiber.Ctx) error {
	id := c.Params("id")
	payload, err := h.parsePayload(c)
	if err != nil {
		// Unknown ids are answered with 404 even when the body is unusable.
		if missing := h.service.CheckUpdateTarget(id); missing != nil {
			return respondError(c, h.log, missing, "Failed to update student")
		}
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body")
	}

	student, err := h.service.UpdateStudent(id, payload)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update student")
	}
	return c.JSON(student)
}

// HandleDeleteStudent removes a student.
func (h *StudentHandler) HandleDeleteStudent(c *fiber.Ctx) error {
	if err := h.service.DeleteStudent(c.Params("id")); err != nil {
		return respondError(c, h.log, err, "Failed to delete student")
	}
	c.Status(fiber.StatusNoContent)
	return nil
}

// parsePayload decodes the JSON body. An empty body decodes to an empty
// payload, which validation then treats like "{}".
func (h *StudentHandler) parsePayload(c *fiber.Ctx) (models.StudentPatch, error) {
	var payload models.StudentPatch
	if len(c.Body()) == 0 {
		return payload, nil
	}
	if err := c.BodyParser(&payload); err != nil {
		h.log.Debug().Err(err).Msg("invalid student request body")
		return models.StudentPatch{}, err
	}
	return payload, nil
}
