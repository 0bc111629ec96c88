package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/restaurant-inventory/internal/application/dto"
	"github.com/tu-usuario/restaurant-inventory/internal/application/inventory"
)

// ValidationHandler maneja las consultas de disponibilidad (protegido).
type ValidationHandler struct {
	uc *inventory.ValidationUseCase
}

// NewValidationHandler construye el handler.
func NewValidationHandler(uc *inventory.ValidationUseCase) *ValidationHandler {
	return &ValidationHandler{uc: uc}
}

// ValidateRecipes godoc
// @Summary      Validar disponibilidad de recetas
// @Description  Verifica si hay stock para preparar cada receta en las porciones pedidas. Ninguna entrada corta el lote: cada una recibe su veredicto.
// @Tags         validations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateRecipesRequest  true  "Recetas y porciones"
// @Success      200   {object}  dto.ValidateRecipesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/validations/recipes [post]
func (h *ValidationHandler) ValidateRecipes(c *fiber.Ctx) error {
	var in dto.ValidateRecipesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Requests) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "requests no puede estar vacío"})
	}
	out, err := h.uc.Validate(c.UserContext(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ValidateItems godoc
// @Summary      Validar disponibilidad por ingrediente
// @Description  Comprueba si el stock actual cubre cada cantidad pedida. Entradas malformadas cuentan como no disponibles.
// @Tags         validations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateItemsRequest  true  "Ingredientes y cantidades"
// @Success      200   {object}  dto.ValidateItemsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/validations/items [post]
func (h *ValidationHandler) ValidateItems(c *fiber.Ctx) error {
	var in dto.ValidateItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items no puede estar vacío"})
	}
	out, err := h.uc.ValidateItems(c.UserContext(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
