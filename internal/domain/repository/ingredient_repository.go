package repository

import "github.com/tu-usuario/restaurant-inventory/internal/domain/entity"

// IngredientRepository define el puerto de persistencia para Ingredient (DIP).
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	GetByName(name string) (*entity.Ingredient, error)
	Update(ingredient *entity.Ingredient) error
	List(limit, offset int) ([]*entity.Ingredient, error)
	ListBelowMinimum() ([]*entity.Ingredient, error)
	Delete(id string) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Las
	// mutaciones de stock de un mismo ingrediente deben serializarse; el
	// bloqueo de fila dentro de la transacción garantiza esa disciplina.
	GetForUpdate(id string) (*entity.Ingredient, error)
}
