package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// InventoryHandler maneja los movimientos de estoque.
type InventoryHandler struct {
	uc *inventory.AdjustStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.AdjustStockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Adjust godoc
// @Summary      Movimentar estoque
// @Description  entry suma, exit resta (409 si no alcanza), adjustment fija la cantidad final.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "type, quantity, observation"
// @Success      200   {object}  dto.Envelope{data=dto.StockMovementResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	if in.Quantity == nil {
		return domain.NewValidationError("quantity", "Quantidade é obrigatória")
	}
	out, err := h.uc.Adjust(c.UserContext(), inventory.AdjustStockInput{
		ProductID:   id,
		Type:        in.Type,
		Quantity:    *in.Quantity,
		Observation: in.Observation,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out, "Estoque atualizado com sucesso")
}
