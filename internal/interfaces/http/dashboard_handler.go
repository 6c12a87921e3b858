package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/estoque-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del painel.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del estoque activo.
// GET /api/dashboard/summary?days=7
//
// @Summary      Resumen del painel
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana de vencimiento"  default(7)
// @Success      200   {object}  dto.Envelope{data=dto.DashboardSummaryDTO}
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), c.QueryInt("days", 0))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, summary, "")
}
