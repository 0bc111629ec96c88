package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/restaurant-inventory/internal/application/dto"
	"github.com/tu-usuario/restaurant-inventory/internal/domain"
)

// errorStatus mapea los errores de dominio a (status, code) HTTP.
var errorStatus = map[error]struct {
	status int
	code   string
}{
	domain.ErrInvalidInput:       {fiber.StatusBadRequest, "VALIDATION"},
	domain.ErrInvalidQuantity:    {fiber.StatusBadRequest, "INVALID_QUANTITY"},
	domain.ErrNegativeQuantity:   {fiber.StatusBadRequest, "NEGATIVE_QUANTITY"},
	domain.ErrUnknownUnit:        {fiber.StatusBadRequest, "UNKNOWN_UNIT"},
	domain.ErrIncompatibleUnits:  {fiber.StatusBadRequest, "INCOMPATIBLE_UNITS"},
	domain.ErrNotFound:           {fiber.StatusNotFound, "NOT_FOUND"},
	domain.ErrIngredientNotFound: {fiber.StatusNotFound, "INGREDIENT_NOT_FOUND"},
	domain.ErrRecipeNotFound:     {fiber.StatusNotFound, "RECIPE_NOT_FOUND"},
	domain.ErrUserNotFound:       {fiber.StatusNotFound, "USER_NOT_FOUND"},
	domain.ErrDuplicate:          {fiber.StatusConflict, "DUPLICATE"},
	domain.ErrConflict:           {fiber.StatusConflict, "CONFLICT"},
	domain.ErrInsufficientStock:  {fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	domain.ErrEmailAlreadyExists: {fiber.StatusConflict, "EMAIL_EXISTS"},
	domain.ErrUnauthorized:       {fiber.StatusUnauthorized, "UNAUTHORIZED"},
	domain.ErrForbidden:          {fiber.StatusForbidden, "FORBIDDEN"},
}

// domainError responde el error de dominio con su status; desconocido = 500.
func domainError(c *fiber.Ctx, err error) error {
	for sentinel, m := range errorStatus {
		if errors.Is(err, sentinel) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
