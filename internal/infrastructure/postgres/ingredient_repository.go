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

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = "id, name, category, quantity, unit_of_measure, minimum_stock, created_at, updated_at"

// Create persiste un nuevo ingrediente.
func (r *IngredientRepo) Create(ing *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, name, category, quantity, unit_of_measure, minimum_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		ing.ID, ing.Name, ing.Category, ing.Stock.Amount, string(ing.Stock.Unit),
		ing.MinimumStock.Amount, ing.CreatedAt, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente por ID (nil si no existe).
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get ingredient")
}

// GetByName obtiene un ingrediente por nombre (nil si no existe).
func (r *IngredientRepo) GetByName(name string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE name = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name), "get ingredient by name")
}

// GetForUpdate obtiene el ingrediente y bloquea la fila (SELECT FOR UPDATE).
// Serializa las mutaciones de stock por ingrediente dentro de la transacción.
func (r *IngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get ingredient for update")
}

// Update actualiza un ingrediente existente (metadatos, stock y mínimo).
func (r *IngredientRepo) Update(ing *entity.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $2, category = $3, quantity = $4, unit_of_measure = $5, minimum_stock = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		ing.ID, ing.Name, ing.Category, ing.Stock.Amount, string(ing.Stock.Unit),
		ing.MinimumStock.Amount, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update ingredient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrIngredientNotFound
	}
	return nil
}

// List lista ingredientes por nombre, paginados.
func (r *IngredientRepo) List(limit, offset int) ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListBelowMinimum lista los ingredientes con stock estrictamente bajo su
// mínimo. Stock y mínimo comparten unidad desde la construcción del agregado,
// por lo que la comparación numérica en SQL es válida.
func (r *IngredientRepo) ListBelowMinimum() ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE quantity < minimum_stock ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ingredients below minimum: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Delete elimina un ingrediente por ID.
func (r *IngredientRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrIngredientNotFound
	}
	return nil
}

func (r *IngredientRepo) scanOne(row pgx.Row, op string) (*entity.Ingredient, error) {
	ing, err := scanIngredient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ing, nil
}

func (r *IngredientRepo) scanAll(rows pgx.Rows) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredients: %w", err)
	}
	return out, nil
}

// scanIngredient arma el agregado desde una fila. quantity y minimum_stock
// comparten la columna unit_of_measure.
func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var (
		ing      entity.Ingredient
		quantity decimal.Decimal
		minimum  decimal.Decimal
		unit     string
	)
	err := row.Scan(
		&ing.ID, &ing.Name, &ing.Category, &quantity, &unit, &minimum,
		&ing.CreatedAt, &ing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	ing.Stock = measure.Quantity{Amount: quantity, Unit: measure.Unit(unit)}
	ing.MinimumStock = measure.Quantity{Amount: minimum, Unit: measure.Unit(unit)}
	return &ing, nil
}
