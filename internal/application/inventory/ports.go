package inventory

import (
	"context"

	"github.com/tu-usuario/restaurant-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de ingredientes atado a esa tx. Las mutaciones de stock de un
// mismo ingrediente se serializan vía bloqueo de fila dentro de la
// transacción; sin ese orden secuencial dos remociones concurrentes validadas
// contra un snapshot viejo podrían dejar el stock negativo.
type TxRunner interface {
	Run(ctx context.Context, fn func(ingredientRepo repository.IngredientRepository) error) error
}
