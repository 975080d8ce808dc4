package services

import (
	"fmt"

	"studentreg/internal/models"
	"studentreg/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService manages staff accounts. Passwords are stored as bcrypt hashes.
type UserService struct {
	userRepo repositories.UserRepository
	cost     int
}

// NewUserService creates a new UserService. Out-of-range costs fall back to
// bcrypt.DefaultCost.
func NewUserService(userRepo repositories.UserRepository, cost int) *UserService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserService{userRepo: userRepo, cost: cost}
}

// CreateUser hashes password and stores a new user.
func (s *UserService) CreateUser(username, password string) (models.User, error) {
	if len(username) < 3 {
		return models.User{}, fmt.Errorf("username must be at least 3 characters")
	}
	if len(password) < 8 {
		return models.User{}, fmt.Errorf("password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Username: username, PasswordHash: string(hashed)}
	if err := s.userRepo.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("failed to create user %q: %w", username, err)
	}
	return user, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(id string) (models.User, error) {
	user, ok := s.userRepo.GetByID(id)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// GetUserByUsername returns a user by username.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	user, ok := s.userRepo.GetByUsername(username)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// VerifyPassword checks password against the stored hash. Unknown users and
// wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) VerifyPassword(username, password string) (models.User, error) {
	user, ok := s.userRepo.GetByUsername(username)
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
