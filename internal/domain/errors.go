package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrIngredientNotFound = errors.New("ingrediente no encontrado")
	ErrRecipeNotFound     = errors.New("receta no encontrada")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrIncompatibleUnits  = errors.New("unidades de medida incompatibles")
	ErrNegativeQuantity   = errors.New("la cantidad no puede ser negativa")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrUnknownUnit        = errors.New("unidad de medida desconocida")
)
