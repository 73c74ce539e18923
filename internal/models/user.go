package models

import "time"

// User represents a registered account
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not serialized
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"date"`
}
