package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/restaurant-inventory/internal/domain"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/entity"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/measure"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas viven en recipe_ingredients y se reescriben en bloque con la receta.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste una receta con sus líneas.
func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	query := `
		INSERT INTO recipes (id, name, preparation_time, instructions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.Name, recipe.PreparationTime, recipe.Instructions,
		recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return r.insertLines(recipe)
}

// GetByID obtiene una receta con sus líneas (nil si no existe).
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	query := `
		SELECT id, name, preparation_time, instructions, created_at, updated_at
		FROM recipes WHERE id = $1`
	return r.getOne(query, id, "get recipe")
}

// GetByName obtiene una receta por nombre (nil si no existe).
func (r *RecipeRepo) GetByName(name string) (*entity.Recipe, error) {
	query := `
		SELECT id, name, preparation_time, instructions, created_at, updated_at
		FROM recipes WHERE name = $1`
	return r.getOne(query, name, "get recipe by name")
}

// Update actualiza la receta y reemplaza todas sus líneas en bloque.
func (r *RecipeRepo) Update(recipe *entity.Recipe) error {
	query := `
		UPDATE recipes SET name = $2, preparation_time = $3, instructions = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.Name, recipe.PreparationTime, recipe.Instructions, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update recipe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRecipeNotFound
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
		return fmt.Errorf("delete recipe lines: %w", err)
	}
	return r.insertLines(recipe)
}

// List lista recetas por nombre, paginadas, con sus líneas.
func (r *RecipeRepo) List(limit, offset int) ([]*entity.Recipe, error) {
	query := `
		SELECT id, name, preparation_time, instructions, created_at, updated_at
		FROM recipes ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Recipe
	for rows.Next() {
		var recipe entity.Recipe
		if err := rows.Scan(
			&recipe.ID, &recipe.Name, &recipe.PreparationTime, &recipe.Instructions,
			&recipe.CreatedAt, &recipe.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, &recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	for _, recipe := range out {
		if recipe.Lines, err = r.loadLines(recipe.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Delete elimina la receta y sus líneas.
func (r *RecipeRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id); err != nil {
		return fmt.Errorf("delete recipe lines: %w", err)
	}
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepo) getOne(query, arg, op string) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&recipe.ID, &recipe.Name, &recipe.PreparationTime, &recipe.Instructions,
		&recipe.CreatedAt, &recipe.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if recipe.Lines, err = r.loadLines(recipe.ID); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// insertLines escribe las líneas preservando el orden con position.
func (r *RecipeRepo) insertLines(recipe *entity.Recipe) error {
	query := `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, name, quantity, unit_of_measure, position)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i, line := range recipe.Lines {
		_, err := r.q.Exec(context.Background(), query,
			recipe.ID, line.IngredientID, line.Name, line.Quantity.Amount, string(line.Quantity.Unit), i,
		)
		if err != nil {
			return fmt.Errorf("insert recipe line: %w", err)
		}
	}
	return nil
}

func (r *RecipeRepo) loadLines(recipeID string) ([]entity.RecipeLine, error) {
	query := `
		SELECT ingredient_id, name, quantity, unit_of_measure
		FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("load recipe lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.RecipeLine
	for rows.Next() {
		var (
			line   entity.RecipeLine
			amount decimal.Decimal
			unit   string
		)
		if err := rows.Scan(&line.IngredientID, &line.Name, &amount, &unit); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		line.Quantity = measure.Quantity{Amount: amount, Unit: measure.Unit(unit)}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe lines: %w", err)
	}
	return lines, nil
}
