package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLineRequest línea de receta en creación/actualización.
// UnitOfMeasure vacío = unidad actual del ingrediente referenciado.
type RecipeLineRequest struct {
	IngredientID  string          `json:"ingredient_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitOfMeasure string          `json:"unit_of_measure,omitempty"`
}

// CreateRecipeRequest body para POST /api/v1/recipes.
type CreateRecipeRequest struct {
	Name            string              `json:"name"`
	Ingredients     []RecipeLineRequest `json:"ingredients"`
	PreparationTime int                 `json:"preparation_time"` // minutos
	Instructions    string              `json:"instructions"`
}

// UpdateRecipeRequest body para PUT /api/v1/recipes/:id. Campos vacíos no se
// tocan; Ingredients no nil reemplaza la lista completa de líneas.
type UpdateRecipeRequest struct {
	Name            string              `json:"name,omitempty"`
	Ingredients     []RecipeLineRequest `json:"ingredients,omitempty"`
	PreparationTime int                 `json:"preparation_time,omitempty"`
	Instructions    string              `json:"instructions,omitempty"`
}

// RecipeLineResponse línea de receta en respuestas.
type RecipeLineResponse struct {
	IngredientID  string          `json:"ingredient_id"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitOfMeasure string          `json:"unit_of_measure"`
}

// RecipeResponse proyección de una receta para la API.
type RecipeResponse struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Ingredients     []RecipeLineResponse `json:"ingredients"`
	PreparationTime int                  `json:"preparation_time"`
	Instructions    string               `json:"instructions"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}
