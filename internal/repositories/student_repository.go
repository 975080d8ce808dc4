package repositories

import (
	"errors"

	"studentreg/internal/models"
)

// ErrDisplayIDExhausted is returned by Create when every generated display ID
// collided with a live record.
var ErrDisplayIDExhausted = errors.New("could not generate a unique student display ID")

// StudentRepository defines the interface for student data access.
// Lookups report absence with a false flag rather than an error.
type StudentRepository interface {
	List() []models.Student
	Get(id string) (models.Student, bool)
	GetByEmail(email string) (models.Student, bool)
	Create(input models.StudentInput) (models.Student, error)
	Update(id string, patch models.StudentPatch) (models.Student, bool)
	Delete(id string) bool
	Count() int
}
