package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/restaurant-inventory/internal/domain"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/measure"
)

// RecipeLine es una línea de receta: referencia a un ingrediente y la
// cantidad requerida para una porción.
type RecipeLine struct {
	IngredientID string
	Name         string // desnormalizado para listados y mensajes
	Quantity     measure.Quantity
}

// Recipe agrupa las líneas de ingredientes de un plato. Las líneas se
// reemplazan siempre en bloque; no hay mutación parcial de líneas.
type Recipe struct {
	ID              string
	Name            string
	Lines           []RecipeLine
	PreparationTime int // minutos
	Instructions    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewRecipe construye la receta validando las líneas.
func NewRecipe(name string, lines []RecipeLine, preparationTime int, instructions string) (*Recipe, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Recipe{
		ID:              uuid.New().String(),
		Name:            name,
		Lines:           lines,
		PreparationTime: preparationTime,
		Instructions:    instructions,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ReplaceLines sustituye la lista completa de líneas.
func (r *Recipe) ReplaceLines(lines []RecipeLine) error {
	if err := validateLines(lines); err != nil {
		return err
	}
	r.Lines = lines
	r.UpdatedAt = time.Now()
	return nil
}

// Rename cambia el nombre de la receta.
func (r *Recipe) Rename(name string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	r.Name = name
	r.UpdatedAt = time.Now()
	return nil
}

// UpdateInstructions cambia las instrucciones de preparación.
func (r *Recipe) UpdateInstructions(instructions string) {
	r.Instructions = instructions
	r.UpdatedAt = time.Now()
}

// UpdatePreparationTime cambia el tiempo de preparación (minutos).
func (r *Recipe) UpdatePreparationTime(minutes int) error {
	if minutes <= 0 {
		return domain.ErrInvalidInput
	}
	r.PreparationTime = minutes
	r.UpdatedAt = time.Now()
	return nil
}

// validateLines exige al menos una línea, cantidades positivas y que ningún
// ingrediente aparezca dos veces en la misma receta.
func validateLines(lines []RecipeLine) error {
	if len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if line.IngredientID == "" {
			return domain.ErrInvalidInput
		}
		if _, dup := seen[line.IngredientID]; dup {
			return domain.ErrDuplicate
		}
		seen[line.IngredientID] = struct{}{}
		if !line.Quantity.IsPositive() {
			return domain.ErrInvalidQuantity
		}
	}
	return nil
}
