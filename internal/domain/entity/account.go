package entity

import "time"

// Account representa una cuenta de usuario del sistema.
type Account struct {
	ID           string
	Username     string // único, case-sensitive
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Email        string // único
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLogin    *time.Time // nil hasta el primer login exitoso
}
