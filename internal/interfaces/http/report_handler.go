package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/reports"
)

// ReportHandler exporta el relatório mensal.
type ReportHandler struct {
	uc *reports.MonthlyReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.MonthlyReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Monthly godoc
// @Summary      Relatório mensal de movimentações
// @Description  Descarga CSV (por defecto), PDF o XML con las movimentações del mes.
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Produce      application/pdf
// @Produce      application/xml
// @Param        year      query  int     true   "Año (AAAA)"
// @Param        month     query  int     true   "Mes 1-12"
// @Param        format    query  string  false  "csv | pdf | xml"  default(csv)
// @Param        encoding  query  string  false  "utf-8 | windows-1252 (solo CSV)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse  "EMPTY_REPORT"
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	var q dto.MonthlyReportRequest
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Parâmetros de consulta inválidos")
	}
	file, err := h.uc.Generate(c.UserContext(), q)
	if err != nil {
		return err
	}
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Content)
}
