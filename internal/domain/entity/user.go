package entity

import "time"

// Roles.
const (
	RoleAdmin = "admin"
	RoleClerk = "clerk"
)

// User is a back office operator.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
