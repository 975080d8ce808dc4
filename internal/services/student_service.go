package services

import (
	"errors"
	"fmt"
	"sync"

	"studentreg/internal/metrics"
	"studentreg/internal/models"
	"studentreg/internal/repositories"
	"studentreg/internal/validation"

	"github.com/rs/zerolog"
)

// StudentEventPublisher delivers student change events to other consumers.
type StudentEventPublisher interface {
	PublishStudentEvent(event models.StudentEvent) error
}

// StudentService handles business logic related to students.
//
// Writes run one at a time so that the email uniqueness check and the write
// that depends on it cannot interleave with another request.
type StudentService struct {
	repo      repositories.StudentRepository
	validator *validation.Validator
	publisher StudentEventPublisher // may be nil
	metrics   *metrics.Collector    // may be nil
	log       zerolog.Logger

	writeMu sync.Mutex
}

// StudentServiceOption configures a StudentService.
type StudentServiceOption func(*StudentService)

// WithPublisher sets the event publisher.
func WithPublisher(p StudentEventPublisher) StudentServiceOption {
	return func(s *StudentService) { s.publisher = p }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Collector) StudentServiceOption {
	return func(s *StudentService) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) StudentServiceOption {
	return func(s *StudentService) { s.log = l }
}

// NewStudentService creates a new StudentService.
func NewStudentService(repo repositories.StudentRepository, v *validation.Validator, opts ...StudentServiceOption) *StudentService {
	s := &StudentService{
		repo:      repo,
		validator: v,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListStudents returns every student.
func (s *StudentService) ListStudents() []models.Student {
	s.metrics.ObserveOperation("list", "ok")
	return s.repo.List()
}

// GetStudent returns a student by ID.
func (s *StudentService) GetStudent(id string) (models.Student, error) {
	student, ok := s.repo.Get(id)
	if !ok {
		s.metrics.ObserveOperation("get", "not_found")
		return models.Student{}, ErrStudentNotFound
	}
	s.metrics.ObserveOperation("get", "ok")
	return student, nil
}

// CountStudents returns the number of stored students.
func (s *StudentService) CountStudents() int {
	return s.repo.Count()
}

// CreateStudent validates payload and registers a new student.
func (s *StudentService) CreateStudent(payload models.StudentPatch) (models.Student, error) {
	input, err := s.validator.ValidateCreate(payload)
	if err != nil {
		s.metrics.ObserveOperation("create", "invalid")
		return models.Student{}, err
	}

	s.writeMu.Lock()
	if _, exists := s.repo.GetByEmail(input.Email); exists {
		s.writeMu.Unlock()
		s.metrics.ObserveOperation("create", "duplicate_email")
		return models.Student{}, ErrDuplicateEmail
	}
	student, err := s.repo.Create(input)
	s.writeMu.Unlock()
	if err != nil {
		s.metrics.ObserveOperation("create", "error")
		return models.Student{}, fmt.Errorf("failed to create student: %w", err)
	}

	s.metrics.ObserveOperation("create", "ok")
	s.log.Info().Str("id", student.ID).Str("student_id", student.DisplayID).Msg("student created")
	s.publish(models.StudentCreated, student)
	return student, nil
}

// UpdateStudent applies a partial update. An unknown ID is reported before
// the payload is validated.
func (s *StudentService) UpdateStudent(id string, payload models.StudentPatch) (models.Student, error) {
	s.writeMu.Lock()
	updated, err := s.updateLocked(id, payload)
	s.writeMu.Unlock()
	if err != nil {
		s.metrics.ObserveOperation("update", resultLabel(err))
		return models.Student{}, err
	}

	s.metrics.ObserveOperation("update", "ok")
	s.log.Info().Str("id", id).Msg("student updated")
	s.publish(models.StudentUpdated, updated)
	return updated, nil
}

// CheckUpdateTarget returns ErrStudentNotFound, counted as a failed update,
// when no student has the given ID.
func (s *StudentService) CheckUpdateTarget(id string) error {
	if _, ok := s.repo.Get(id); !ok {
		s.metrics.ObserveOperation("update", "not_found")
		return ErrStudentNotFound
	}
	return nil
}

func (s *StudentService) updateLocked(id string, payload models.StudentPatch) (models.Student, error) {
	if _, ok := s.repo.Get(id); !ok {
		return models.Student{}, ErrStudentNotFound
	}

	patch, err := s.validator.ValidatePatch(payload)
	if err != nil {
		return models.Student{}, err
	}

	if patch.Email != nil {
		if other, exists := s.repo.GetByEmail(*patch.Email); exists && other.ID != id {
			return models.Student{}, ErrDuplicateEmail
		}
	}

	updated, ok := s.repo.Update(id, patch)
	if !ok {
		return models.Student{}, ErrStudentNotFound
	}
	return updated, nil
}

// DeleteStudent removes a student by ID.
func (s *StudentService) DeleteStudent(id string) error {
	s.writeMu.Lock()
	student, ok := s.repo.Get(id)
	if ok {
		ok = s.repo.Delete(id)
	}
	s.writeMu.Unlock()
	if !ok {
		s.metrics.ObserveOperation("delete", "not_found")
		return ErrStudentNotFound
	}

	s.metrics.ObserveOperation("delete", "ok")
	s.log.Info().Str("id", id).Msg("student deleted")
	s.publish(models.StudentDeleted, student)
	return nil
}

// publish hands the event to the broker. Failures are logged only; the
// store change has already happened.
func (s *StudentService) publish(t models.StudentEventType, student models.Student) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishStudentEvent(models.NewStudentEvent(t, student)); err != nil {
		s.metrics.ObserveEvent(string(t), "error")
		s.log.Warn().Err(err).Str("id", student.ID).Str("event", string(t)).Msg("failed to publish student event")
		return
	}
	s.metrics.ObserveEvent(string(t), "ok")
}

func resultLabel(err error) string {
	var verrs validation.Errors
	switch {
	case errors.Is(err, ErrStudentNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateEmail):
		return "duplicate_email"
	case errors.As(err, &verrs):
		return "invalid"
	default:
		return "error"
	}
}
