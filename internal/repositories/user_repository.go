package repositories

import (
	"errors"

	"studentreg/internal/models"
)

// ErrUsernameTaken is returned when creating a user whose username exists.
var ErrUsernameTaken = errors.New("username already taken")

// ErrUserIDTaken is returned when creating a user with a preset ID that exists.
var ErrUserIDTaken = errors.New("user id already taken")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (models.User, bool)
	GetByUsername(username string) (models.User, bool)
}
