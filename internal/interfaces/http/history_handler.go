package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
)

// HistoryHandler expone el histórico de movimientos.
type HistoryHandler struct {
	uc *usecase.HistoryUseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *usecase.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar histórico
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        type   query  string  false  "entry | exit | adjustment"
// @Param        start  query  string  false  "Fecha inicial AAAA-MM-DD (inclusiva)"
// @Param        end    query  string  false  "Fecha final AAAA-MM-DD (inclusiva)"
// @Success      200    {object}  dto.Envelope{data=[]dto.HistoryResponse}
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Parâmetros de consulta inválidos")
	}
	out, err := h.uc.Query(c.UserContext(), q)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Create godoc
// @Summary      Registrar movimiento manual (admin)
// @Description  Solo escribe en el histórico; no altera la cantidad del producto.
// @Tags         history
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHistoryRequest  true  "Movimiento"
// @Success      201   {object}  dto.Envelope{data=dto.HistoryResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/history [post]
func (h *HistoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateHistoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	out, err := h.uc.Append(c.UserContext(), in, GetUserID(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out, "Movimentação registrada com sucesso")
}
