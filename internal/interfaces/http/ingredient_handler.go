package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/restaurant-inventory/internal/application/dto"
	"github.com/tu-usuario/restaurant-inventory/internal/application/inventory"
)

// IngredientHandler maneja las peticiones HTTP para Ingredient (protegido).
type IngredientHandler struct {
	uc       *inventory.IngredientUseCase
	lowStock *inventory.LowStockUseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(uc *inventory.IngredientUseCase, lowStock *inventory.LowStockUseCase) *IngredientHandler {
	return &IngredientHandler{uc: uc, lowStock: lowStock}
}

// Create godoc
// @Summary      Crear ingrediente
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "Datos del ingrediente"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/ingredients [post]
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.UnitOfMeasure == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y unit_of_measure son requeridos"})
	}
	out, err := h.uc.CreateIngredient(c.UserContext(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ingrediente por ID
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ingrediente"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/ingredients/{id} [get]
func (h *IngredientHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetIngredient(c.UserContext(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ingredientes
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.IngredientResponse
// @Router       /api/v1/ingredients [get]
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.uc.ListIngredients(c.UserContext(), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar metadatos del ingrediente
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.UpdateIngredientRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/ingredients/{id} [put]
func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateIngredient(c.UserContext(), id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ingrediente
// @Tags         ingredients
// @Security     Bearer
// @Param        id  path  string  true  "ID del ingrediente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteIngredient(c.UserContext(), id); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddStock godoc
// @Summary      Sumar stock
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.StockRequest  true  "Cantidad a sumar"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/ingredients/{id}/stock/add [post]
func (h *IngredientHandler) AddStock(c *fiber.Ctx) error {
	return h.stockOp(c, h.uc.AddStock)
}

// RemoveStock godoc
// @Summary      Restar stock
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.StockRequest  true  "Cantidad a restar"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/ingredients/{id}/stock/remove [post]
func (h *IngredientHandler) RemoveStock(c *fiber.Ctx) error {
	return h.stockOp(c, h.uc.RemoveStock)
}

// SetStock godoc
// @Summary      Fijar stock absoluto
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.StockRequest  true  "Stock absoluto"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/ingredients/{id}/stock [put]
func (h *IngredientHandler) SetStock(c *fiber.Ctx) error {
	return h.stockOp(c, h.uc.SetStock)
}

// UpdateMinimum godoc
// @Summary      Actualizar umbral mínimo
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.StockRequest  true  "Nuevo mínimo"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/ingredients/{id}/minimum-stock [put]
func (h *IngredientHandler) UpdateMinimum(c *fiber.Ctx) error {
	return h.stockOp(c, h.uc.UpdateMinimum)
}

// LowStockReport godoc
// @Summary      Reporte de stock bajo
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/v1/ingredients/low-stock [get]
func (h *IngredientHandler) LowStockReport(c *fiber.Ctx) error {
	out, err := h.lowStock.GenerateLowStockReport(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// stockOp factoriza el parseo común de las operaciones de stock.
func (h *IngredientHandler) stockOp(
	c *fiber.Ctx,
	op func(ctx context.Context, id string, in dto.StockRequest) (*dto.IngredientResponse, error),
) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := op(c.UserContext(), id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
