package entity

import "time"

// Roles de usuario para RBAC.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleLector = "lector"
)

// User usuario de la aplicación de administración del catálogo.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, editor, lector
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
