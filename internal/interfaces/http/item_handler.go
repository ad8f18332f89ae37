package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/application/usecase"
)

// ItemHandler maneja las peticiones HTTP para artículos (protegido).
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Param        body    body  dto.CreateItemRequest  true  "Datos del artículo"
// @Success      201     {object}  dto.ItemResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId}/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetUserID(c), c.Params("shopId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar artículos de la tienda
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        shopId  path   string  true   "ID de la tienda"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ItemListResponse
// @Router       /api/shops/{shopId}/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(GetUserID(c), c.Params("shopId"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Param        id      path  string  true  "ID del artículo"
// @Success      200     {object}  dto.ItemResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId}/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetUserID(c), c.Params("shopId"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Param        id      path  string  true  "ID del artículo"
// @Param        body    body  dto.UpdateItemRequest  true  "Datos a actualizar"
// @Success      200     {object}  dto.ItemResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId}/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("shopId"), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock manualmente
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Param        id      path  string  true  "ID del artículo"
// @Param        body    body  dto.AdjustStockRequest  true  "Nueva cantidad + motivo"
// @Success      200     {object}  dto.ItemResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId}/items/{id}/stock [post]
func (h *ItemHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AdjustStock(c.UserContext(), GetUserID(c), c.Params("shopId"), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAdjustments godoc
// @Summary      Historial de ajustes de stock
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        shopId  path   string  true   "ID de la tienda"
// @Param        id      path   string  true   "ID del artículo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Success      200     {array}  dto.StockAdjustmentResponse
// @Router       /api/shops/{shopId}/items/{id}/adjustments [get]
func (h *ItemHandler) ListAdjustments(c *fiber.Ctx) error {
	out, err := h.uc.ListAdjustments(GetUserID(c), c.Params("shopId"), c.Params("id"), c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar artículo
// @Tags         items
// @Security     Bearer
// @Param        shopId  path  string  true  "ID de la tienda"
// @Param        id      path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId}/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(GetUserID(c), c.Params("shopId"), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
