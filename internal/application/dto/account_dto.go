package dto

import "time"

// LoginRequest entrada para login (username + password).
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse resumen de cuenta tras autenticación exitosa. Sin token:
// el login es stateless, solo devuelve la identidad y sus permisos vigentes.
type LoginResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Message     string   `json:"message"`
}

// RegisterRequest entrada para registro público (el rol siempre queda VIEWER).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
}

// CreateAccountRequest entrada para creación administrativa (rol opcional).
type CreateAccountRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty"` // vacío = VIEWER
}

// UpdateAccountRequest campos opcionales: puntero nil o string en blanco
// significa "sin cambio", nunca "borrar el campo".
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"isActive"`
}

// ChangeRoleRequest entrada para cambio de rol.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// AccountResponse salida de una cuenta (sin password). Permissions se deriva
// del catálogo en cada respuesta, nunca se persiste por cuenta.
type AccountResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Permissions []string   `json:"permissions"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
}

// RoleResponse descripción de un rol del catálogo (para enumeración).
type RoleResponse struct {
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Permissions []string `json:"permissions"`
}
