package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/restaurant-inventory/internal/domain"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/entity"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/measure"
)

// IngredientLookup es la capacidad de solo lectura que el caller inyecta para
// resolver ingredientes durante una verificación de disponibilidad. El
// agregado nunca accede a un repositorio global.
type IngredientLookup interface {
	Get(id string) (*entity.Ingredient, error)
}

// Shortage detalla un faltante en una línea de receta. Required, Available y
// Shortfall vienen expresados en la unidad de la línea de la receta.
type Shortage struct {
	IngredientID string           `json:"ingredient_id"`
	Name         string           `json:"name,omitempty"`
	Required     measure.Quantity `json:"required"`
	Available    measure.Quantity `json:"available"`
	Shortfall    measure.Quantity `json:"shortfall"`
	// Missing indica que el ingrediente no existe en el lookup (la línea
	// cuenta como faltante completo).
	Missing bool `json:"missing,omitempty"`
}

// RecipeAvailability es el veredicto de una receta para una cantidad pedida.
type RecipeAvailability struct {
	RecipeID  string          `json:"recipe_id"`
	Name      string          `json:"name,omitempty"`
	Servings  decimal.Decimal `json:"servings"`
	Available bool            `json:"available"`
	Shortages []Shortage      `json:"shortages,omitempty"`
}

// CheckAvailability compara, línea por línea, lo requerido por la receta
// (escalado por servings) contra el stock actual de cada ingrediente.
// Igualdad exacta cuenta como disponible. Un ingrediente ausente en el lookup
// marca su línea como faltante sin abortar las restantes: el resultado
// siempre recoge todos los faltantes de la receta.
func CheckAvailability(recipe *entity.Recipe, servings decimal.Decimal, lookup IngredientLookup) (*RecipeAvailability, error) {
	if !servings.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	result := &RecipeAvailability{
		RecipeID:  recipe.ID,
		Name:      recipe.Name,
		Servings:  servings,
		Available: true,
	}

	for _, line := range recipe.Lines {
		required := line.Quantity.Mul(servings)

		ing, err := lookup.Get(line.IngredientID)
		if err != nil && err != domain.ErrIngredientNotFound && err != domain.ErrNotFound {
			return nil, err
		}
		if ing == nil {
			result.Available = false
			result.Shortages = append(result.Shortages, Shortage{
				IngredientID: line.IngredientID,
				Name:         line.Name,
				Required:     required,
				Available:    measure.Quantity{Amount: decimal.Zero, Unit: required.Unit},
				Shortfall:    required,
				Missing:      true,
			})
			continue
		}

		// Comparar en la unidad de la línea de la receta.
		available, err := ing.Stock.To(required.Unit)
		if err != nil {
			return nil, err
		}
		if available.Amount.Cmp(required.Amount) >= 0 {
			continue
		}
		result.Available = false
		result.Shortages = append(result.Shortages, Shortage{
			IngredientID: line.IngredientID,
			Name:         ing.Name,
			Required:     required,
			Available:    available,
			Shortfall:    measure.Quantity{Amount: required.Amount.Sub(available.Amount), Unit: required.Unit},
		})
	}

	return result, nil
}
