package services

import "errors"

var (
	// ErrStudentNotFound is returned when no student has the requested ID.
	ErrStudentNotFound = errors.New("student not found")
	// ErrDuplicateEmail is returned when another student already uses the email.
	ErrDuplicateEmail = errors.New("a student with this email already exists")
	// ErrUserNotFound is returned when no user matches.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when a password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
