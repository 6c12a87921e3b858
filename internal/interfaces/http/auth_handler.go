package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
)

type AuthHandler struct {
	uc          *auth.AuthUseCase
	authEnabled bool
}

// NewAuthHandler authEnabled=false cuando el servidor corre en modo local sin JWT.
func NewAuthHandler(uc *auth.AuthUseCase, authEnabled bool) *AuthHandler {
	return &AuthHandler{uc: uc, authEnabled: authEnabled}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.Envelope{data=dto.LoginResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Me godoc
// @Summary      Sesión actual
// @Tags         auth
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.Envelope{data=dto.SessionResponse}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, dto.SessionResponse{
		UserID:      GetUserID(c),
		Role:        GetRole(c),
		AuthEnabled: h.authEnabled,
	}, "")
}
