package dto

import "github.com/shopspring/decimal"

// RecipeValidationItem una petición de validación: receta y porciones.
type RecipeValidationItem struct {
	RecipeID string          `json:"recipe_id"`
	Servings decimal.Decimal `json:"servings"`
}

// ValidateRecipesRequest body para POST /api/v1/validations/recipes.
type ValidateRecipesRequest struct {
	Requests []RecipeValidationItem `json:"requests"`
}

// ShortageDTO faltante de una línea, en la unidad de la línea de receta.
type ShortageDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name,omitempty"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	Shortfall    decimal.Decimal `json:"shortfall"`
	Unit         string          `json:"unit"`
	Missing      bool            `json:"missing,omitempty"`
}

// RecipeValidationResult veredicto por receta. Error distingue las entradas
// fallidas (RECIPE_NOT_FOUND, INVALID_QUANTITY) de las no disponibles.
type RecipeValidationResult struct {
	RecipeID  string          `json:"recipe_id"`
	Name      string          `json:"name,omitempty"`
	Servings  decimal.Decimal `json:"servings"`
	Available bool            `json:"available"`
	Shortages []ShortageDTO   `json:"shortages,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// ValidateRecipesResponse respuesta completa, en el orden de la petición.
type ValidateRecipesResponse struct {
	ValidationID string                   `json:"validation_id"`
	Results      []RecipeValidationResult `json:"results"`
}

// ItemValidationItem una petición de validación a nivel de ingrediente.
// Unit vacío = unidad actual del ingrediente.
type ItemValidationItem struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit,omitempty"`
}

// ValidateItemsRequest body para POST /api/v1/validations/items.
type ValidateItemsRequest struct {
	Items []ItemValidationItem `json:"items"`
}

// ValidateItemsResponse disponibilidad por ingredient_id, en el orden pedido.
type ValidateItemsResponse struct {
	Results map[string]bool `json:"results"`
}
