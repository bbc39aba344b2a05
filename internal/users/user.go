package users

import "time"

// User is an identity record; the password digest never leaves the backend.
type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	HeightCm     int       `json:"heightCm"`
	WeightKg     float64   `json:"weightKg"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
