// Package model holds the domain entities and read-model view types
// shared by the repository and service layers.
package model

import "time"

// User is an account identity. Accounts themselves are created and
// managed outside this service; the services only resolve and read them.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}
