package dto

import "time"

type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token Bearer y su vencimiento.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"` // minutos
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// SessionResponse identidad de la petición actual (GET /api/auth/me).
// AuthEnabled=false en modo local: la sesión es el administrador local.
type SessionResponse struct {
	UserID      string `json:"userId,omitempty"`
	Role        string `json:"role"`
	AuthEnabled bool   `json:"authEnabled"`
}
