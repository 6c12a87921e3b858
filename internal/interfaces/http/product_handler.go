package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	history *usecase.HistoryUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, history *usecase.HistoryUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, history: history}
}

// Create godoc
// @Summary      Cadastrar produto
// @Description  Crea el producto y registra la entrada inicial en el histórico.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	out, err := h.uc.Create(c.UserContext(), in, GetUserID(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out, "Produto cadastrado com sucesso")
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out, "")
}

// List godoc
// @Summary      Listar productos
// @Description  Filtros opcionales, paginado. Sin status devuelve solo activos.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Límite"  default(10)
// @Param        category   query  string  false  "Bebida | Doce | Salgadinho"
// @Param        status     query  string  false  "active | inactive"
// @Param        expiring   query  int     false  "Vence en los próximos N días"
// @Param        expired    query  bool    false  "Solo vencidos"
// @Param        search     query  string  false  "Busca en nombre y proveedor"
// @Param        sortBy     query  string  false  "id | name | category | expiry | quantity | value | createdAt"
// @Param        sortOrder  query  string  false  "ASC | DESC"
// @Success      200  {object}  dto.Envelope{data=dto.ProductListResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Parâmetros de consulta inválidos")
	}
	out, err := h.uc.Search(c.UserContext(), q)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Expiring godoc
// @Summary      Productos por vencer
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"  default(7)
// @Success      200   {object}  dto.Envelope{data=[]dto.ProductResponse}
// @Router       /api/products/expiring [get]
func (h *ProductHandler) Expiring(c *fiber.Ctx) error {
	out, err := h.uc.Expiring(c.UserContext(), c.QueryInt("days", 0))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Actualización parcial. Si cambia quantity se registra un ajuste.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	out, err := h.uc.Update(c.UserContext(), id, in, GetUserID(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out, "Produto atualizado com sucesso")
}

// Delete godoc
// @Summary      Excluir producto (baja lógica)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id, GetUserID(c)); err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, nil, "Produto excluído com sucesso")
}

// History godoc
// @Summary      Histórico de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=[]dto.HistoryResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/history [get]
func (h *ProductHandler) History(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.history.ByProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out, "")
}
