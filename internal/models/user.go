package models

// User represents a staff account. No endpoint exposes users.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // bcrypt hash, never the plain password
}
