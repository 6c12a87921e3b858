package entity

import (
	"slices"
	"time"
)

// Roles de operador. admin además puede excluir productos y registrar movimientos manuales.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// IsValidRole indica si r es un rol conocido.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleOperador
}

// User operador del estoque. PasswordHash es bcrypt.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // StatusActive | StatusInactive
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsActive() bool { return u.Status == StatusActive }

// HasRole indica si el rol del usuario está entre roles.
func (u *User) HasRole(roles ...string) bool {
	return slices.Contains(roles, u.Role)
}
