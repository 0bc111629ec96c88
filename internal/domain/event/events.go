package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/inventory"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/measure"
)

// Tipos de evento publicados en el tópico de inventario.
const (
	TypeIngredientCreated   = "inventory.ingredient.created"
	TypeIngredientUpdated   = "inventory.ingredient.updated"
	TypeIngredientDeleted   = "inventory.ingredient.deleted"
	TypeStockChanged        = "inventory.ingredient.stock_changed"
	TypeLowStock            = "inventory.ingredient.low_stock"
	TypeRecipeCreated       = "inventory.recipe.created"
	TypeRecipeUpdated       = "inventory.recipe.updated"
	TypeRecipeDeleted       = "inventory.recipe.deleted"
	TypeValidationPerformed = "inventory.validation.performed"
)

// Tipos de cambio de stock.
const (
	ChangeIncrease = "increase"
	ChangeDecrease = "decrease"
	ChangeUpdate   = "update"
)

// Envelope es el sobre común de todo evento de dominio. Los eventos son
// registros de datos puros: el dominio los devuelve, la capa de
// infraestructura los entrega (al menos una vez).
type Envelope struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Payload   any       `json:"payload"`
}

// Payload es un cuerpo de evento con su tipo y su clave de partición
// (el id del agregado, para ordenar por ingrediente/receta en Kafka).
type Payload interface {
	EventType() string
	Key() string
}

// New envuelve un payload en un Envelope con id y timestamp frescos.
func New(p Payload) Envelope {
	return Envelope{
		EventID:   uuid.New().String(),
		EventType: p.EventType(),
		Timestamp: time.Now(),
		Version:   "1.0",
		Payload:   p,
	}
}

// IngredientCreated se emite al crear un ingrediente.
type IngredientCreated struct {
	IngredientID string           `json:"ingredient_id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Stock        measure.Quantity `json:"stock"`
	MinimumStock measure.Quantity `json:"minimum_stock"`
}

func (e IngredientCreated) EventType() string { return TypeIngredientCreated }
func (e IngredientCreated) Key() string       { return e.IngredientID }

// IngredientUpdated se emite al actualizar los metadatos de un ingrediente.
type IngredientUpdated struct {
	IngredientID string           `json:"ingredient_id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Stock        measure.Quantity `json:"stock"`
	MinimumStock measure.Quantity `json:"minimum_stock"`
}

func (e IngredientUpdated) EventType() string { return TypeIngredientUpdated }
func (e IngredientUpdated) Key() string       { return e.IngredientID }

// IngredientDeleted se emite al eliminar un ingrediente.
type IngredientDeleted struct {
	IngredientID string `json:"ingredient_id"`
	Name         string `json:"name"`
}

func (e IngredientDeleted) EventType() string { return TypeIngredientDeleted }
func (e IngredientDeleted) Key() string       { return e.IngredientID }

// StockChanged se emite en toda mutación de stock.
type StockChanged struct {
	IngredientID string           `json:"ingredient_id"`
	Name         string           `json:"name"`
	Previous     measure.Quantity `json:"previous_quantity"`
	Current      measure.Quantity `json:"new_quantity"`
	ChangeType   string           `json:"change_type"` // increase, decrease, update
}

func (e StockChanged) EventType() string { return TypeStockChanged }
func (e StockChanged) Key() string       { return e.IngredientID }

// LowStock se emite exactamente una vez por transición Suficiente→Bajo.
type LowStock struct {
	IngredientID string           `json:"ingredient_id"`
	Name         string           `json:"name"`
	Current      measure.Quantity `json:"current_quantity"`
	Minimum      measure.Quantity `json:"minimum_stock"`
}

func (e LowStock) EventType() string { return TypeLowStock }
func (e LowStock) Key() string       { return e.IngredientID }

// RecipeLine es la proyección de una línea de receta dentro de un evento.
type RecipeLine struct {
	IngredientID string           `json:"ingredient_id"`
	Name         string           `json:"name"`
	Quantity     measure.Quantity `json:"quantity"`
}

// RecipeCreated se emite al crear una receta.
type RecipeCreated struct {
	RecipeID string       `json:"recipe_id"`
	Name     string       `json:"name"`
	Lines    []RecipeLine `json:"ingredients"`
}

func (e RecipeCreated) EventType() string { return TypeRecipeCreated }
func (e RecipeCreated) Key() string       { return e.RecipeID }

// RecipeUpdated se emite al actualizar una receta.
type RecipeUpdated struct {
	RecipeID string       `json:"recipe_id"`
	Name     string       `json:"name"`
	Lines    []RecipeLine `json:"ingredients"`
}

func (e RecipeUpdated) EventType() string { return TypeRecipeUpdated }
func (e RecipeUpdated) Key() string       { return e.RecipeID }

// RecipeDeleted se emite al eliminar una receta.
type RecipeDeleted struct {
	RecipeID string `json:"recipe_id"`
	Name     string `json:"name"`
}

func (e RecipeDeleted) EventType() string { return TypeRecipeDeleted }
func (e RecipeDeleted) Key() string       { return e.RecipeID }

// ValidationPerformed se emite al completar una validación de disponibilidad.
type ValidationPerformed struct {
	ValidationID string                         `json:"validation_id"`
	Results      []inventory.RecipeAvailability `json:"results"`
}

func (e ValidationPerformed) EventType() string { return TypeValidationPerformed }
func (e ValidationPerformed) Key() string       { return e.ValidationID }
