package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/interfaces/bridge"
)

// BridgeHandler expone el dispatcher del cliente de escritorio sobre HTTP.
type BridgeHandler struct {
	d *bridge.Dispatcher
}

// NewBridgeHandler construye el handler.
func NewBridgeHandler(d *bridge.Dispatcher) *BridgeHandler {
	return &BridgeHandler{d: d}
}

// Invoke godoc
// @Summary      Invocar canal del bridge
// @Description  Cuerpo: array JSON con los argumentos posicionales. Siempre responde 200 con el envelope.
// @Tags         bridge
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        channel  path  string  true  "ej: product:create, history:getAll"
// @Param        body     body  []object  false  "Argumentos"
// @Success      200      {object}  dto.Envelope
// @Router       /bridge/{channel} [post]
func (h *BridgeHandler) Invoke(c *fiber.Ctx) error {
	var args []json.RawMessage
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &args); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "O corpo deve ser um array JSON de argumentos")
		}
	}
	env := h.d.Dispatch(c.UserContext(), c.Params("channel"), bridge.Call{Args: args, UserID: GetUserID(c)})
	return c.JSON(env)
}
