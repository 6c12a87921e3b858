package http

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/pkg/jwt"
)

const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

func deny(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// bearerToken extrae el token de "Authorization: Bearer <token>". ok=false si el
// header falta o está vacío; malformed=true si existe pero no sigue el formato.
func bearerToken(header string) (token string, ok, malformed bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false, false
	}
	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false, true
	}
	token = strings.TrimSpace(rest)
	return token, token != "", false
}

// AuthMiddleware exige un JWT HS256 válido emitido por issuer y publica
// usuario y rol en c.Locals.
func AuthMiddleware(secret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok, malformed := bearerToken(c.Get(fiber.HeaderAuthorization))
		switch {
		case malformed:
			return deny(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Formato: Bearer <token>")
		case !ok:
			return deny(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Header Authorization é obrigatório")
		}
		claims, err := jwt.Parse(secret, issuer, token)
		if err != nil {
			return deny(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Token inválido ou expirado")
		}
		c.Locals(LocalUserID, claims.UserID())
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// LocalAccess sustituye a AuthMiddleware cuando no hay JWT_SECRET: toda petición es
// del administrador local y el histórico queda sin user_id.
func LocalAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalRole, entity.RoleAdmin)
		return c.Next()
	}
}

// RequireRole va después de AuthMiddleware o LocalAccess.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return deny(c, fiber.StatusUnauthorized, "MISSING_ROLE", "Token sem perfil de acesso")
		}
		if !slices.Contains(roles, role) {
			return deny(c, fiber.StatusForbidden, "FORBIDDEN", "Acesso negado para o perfil "+role)
		}
		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
