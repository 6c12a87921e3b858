// Package auth alta de operadores y emisión de tokens de sesión.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/validation"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/pkg/jwt"
)

type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

func (c JWTConfig) ttl() time.Duration {
	return time.Duration(c.ExpMinutes) * time.Minute
}

type AuthUseCase struct {
	users repository.UserRepository
	cfg   JWTConfig
	now   func() time.Time
}

func NewAuthUseCase(users repository.UserRepository, cfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, cfg: cfg, now: time.Now}
}

// RegisterUser da de alta un operador activo. Rol vacío equivale a operador.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, email, password, name, role string) (*dto.UserResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.NewValidationError("email", "E-mail e senha são obrigatórios")
	}
	if role == "" {
		role = entity.RoleOperador
	}
	if !entity.IsValidRole(role) {
		return nil, domain.NewValidationError("role", "Perfil inválido: "+role)
	}
	if name = strings.TrimSpace(name); name == "" {
		name = email
	}

	found, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if found != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	u := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return userResponse(u), nil
}

// Login verifica las credenciales y emite un token con vencimiento cfg.ExpMinutes.
// Un operador inactivo recibe ErrForbidden aunque el password sea correcto.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	u, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	if !u.IsActive() {
		return nil, domain.ErrForbidden
	}

	token, exp, err := jwt.Generate(uc.cfg.Secret, u.ID, u.Role, uc.cfg.Issuer, uc.cfg.ttl())
	if err != nil {
		return nil, err
	}
	at := uc.now()
	if err := uc.users.TouchLogin(ctx, u.ID, at); err != nil {
		return nil, err
	}
	u.LastLoginAt = &at

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.cfg.ExpMinutes,
		ExpiresAt: exp,
		User:      *userResponse(u),
	}, nil
}

func userResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
