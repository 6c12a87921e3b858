package repository

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// UserRepository persistencia de operadores. El email se compara sin mayúsculas.
type UserRepository interface {
	// Create devuelve domain.ErrDuplicate si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail devuelve (nil, nil) si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// TouchLogin registra el último acceso exitoso.
	TouchLogin(ctx context.Context, id string, at time.Time) error
	DeleteByEmail(ctx context.Context, email string) error
}
