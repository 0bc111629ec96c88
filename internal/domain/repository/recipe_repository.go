package repository

import "github.com/tu-usuario/restaurant-inventory/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para Recipe (DIP).
// Las líneas se guardan siempre en bloque junto con la receta.
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	GetByID(id string) (*entity.Recipe, error)
	GetByName(name string) (*entity.Recipe, error)
	Update(recipe *entity.Recipe) error
	List(limit, offset int) ([]*entity.Recipe, error)
	Delete(id string) error
}
