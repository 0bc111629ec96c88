package inventory

import (
	"context"

	"github.com/tu-usuario/restaurant-inventory/internal/application/dto"
	"github.com/tu-usuario/restaurant-inventory/internal/domain"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/entity"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/event"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/measure"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/repository"
	"github.com/tu-usuario/restaurant-inventory/pkg/logger"
)

// IngredientUseCase casos de uso de ingredientes: CRUD y mutación de stock.
// Las mutaciones de stock corren dentro de una transacción con bloqueo de
// fila (SELECT FOR UPDATE); los eventos se publican después del Commit.
type IngredientUseCase struct {
	txRunner       TxRunner
	ingredientRepo repository.IngredientRepository
	publisher      repository.EventPublisher
	log            *logger.Logger
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(
	txRunner TxRunner,
	ingredientRepo repository.IngredientRepository,
	publisher repository.EventPublisher,
	log *logger.Logger,
) *IngredientUseCase {
	return &IngredientUseCase{
		txRunner:       txRunner,
		ingredientRepo: ingredientRepo,
		publisher:      publisher,
		log:            log,
	}
}

// CreateIngredient crea un ingrediente con su stock inicial y umbral mínimo.
// Devuelve ErrDuplicate si ya existe un ingrediente con ese nombre.
func (uc *IngredientUseCase) CreateIngredient(ctx context.Context, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	unit, err := measure.ParseUnit(in.UnitOfMeasure)
	if err != nil {
		return nil, err
	}
	stock, err := measure.NewQuantity(in.Quantity, unit)
	if err != nil {
		return nil, err
	}
	minUnit := unit
	if in.MinimumStockUnit != "" {
		if minUnit, err = measure.ParseUnit(in.MinimumStockUnit); err != nil {
			return nil, err
		}
	}
	minimum, err := measure.NewQuantity(in.MinimumStock, minUnit)
	if err != nil {
		return nil, err
	}

	existing, err := uc.ingredientRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	ing, err := entity.NewIngredient(in.Name, in.Category, stock, minimum)
	if err != nil {
		return nil, err
	}
	if err := uc.ingredientRepo.Create(ing); err != nil {
		return nil, err
	}

	uc.publish(ctx, event.IngredientCreated{
		IngredientID: ing.ID,
		Name:         ing.Name,
		Category:     ing.Category,
		Stock:        ing.Stock,
		MinimumStock: ing.MinimumStock,
	})
	return toIngredientResponse(ing), nil
}

// GetIngredient obtiene un ingrediente por ID.
func (uc *IngredientUseCase) GetIngredient(ctx context.Context, id string) (*dto.IngredientResponse, error) {
	ing, err := uc.ingredientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrIngredientNotFound
	}
	return toIngredientResponse(ing), nil
}

// ListIngredients lista ingredientes paginados.
func (uc *IngredientUseCase) ListIngredients(ctx context.Context, page dto.PageRequest) ([]dto.IngredientResponse, error) {
	page.DefaultPage()
	items, err := uc.ingredientRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientResponse, 0, len(items))
	for _, ing := range items {
		out = append(out, *toIngredientResponse(ing))
	}
	return out, nil
}

// UpdateIngredient actualiza metadatos (nombre, categoría). El stock y el
// mínimo se cambian solo por las operaciones de stock.
func (uc *IngredientUseCase) UpdateIngredient(ctx context.Context, id string, in dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := uc.ingredientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrIngredientNotFound
	}
	if in.Name != "" && in.Name != ing.Name {
		existing, err := uc.ingredientRepo.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != ing.ID {
			return nil, domain.ErrDuplicate
		}
		ing.Name = in.Name
	}
	if in.Category != "" {
		ing.Category = in.Category
	}
	if err := uc.ingredientRepo.Update(ing); err != nil {
		return nil, err
	}

	uc.publish(ctx, event.IngredientUpdated{
		IngredientID: ing.ID,
		Name:         ing.Name,
		Category:     ing.Category,
		Stock:        ing.Stock,
		MinimumStock: ing.MinimumStock,
	})
	return toIngredientResponse(ing), nil
}

// DeleteIngredient elimina un ingrediente.
func (uc *IngredientUseCase) DeleteIngredient(ctx context.Context, id string) error {
	ing, err := uc.ingredientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if ing == nil {
		return domain.ErrIngredientNotFound
	}
	if err := uc.ingredientRepo.Delete(id); err != nil {
		return err
	}
	uc.publish(ctx, event.IngredientDeleted{IngredientID: ing.ID, Name: ing.Name})
	return nil
}

// AddStock suma stock dentro de una transacción con bloqueo de fila.
func (uc *IngredientUseCase) AddStock(ctx context.Context, id string, in dto.StockRequest) (*dto.IngredientResponse, error) {
	return uc.mutateStock(ctx, id, in, event.ChangeIncrease, (*entity.Ingredient).AddStock)
}

// RemoveStock resta stock; devuelve ErrInsufficientStock si excede el actual.
func (uc *IngredientUseCase) RemoveStock(ctx context.Context, id string, in dto.StockRequest) (*dto.IngredientResponse, error) {
	return uc.mutateStock(ctx, id, in, event.ChangeDecrease, (*entity.Ingredient).RemoveStock)
}

// SetStock sobreescribe el stock con un valor absoluto no negativo.
func (uc *IngredientUseCase) SetStock(ctx context.Context, id string, in dto.StockRequest) (*dto.IngredientResponse, error) {
	return uc.mutateStock(ctx, id, in, event.ChangeUpdate, (*entity.Ingredient).SetStock)
}

// UpdateMinimum cambia el umbral mínimo y reevalúa el estado de stock bajo.
func (uc *IngredientUseCase) UpdateMinimum(ctx context.Context, id string, in dto.StockRequest) (*dto.IngredientResponse, error) {
	var (
		updated *entity.Ingredient
		change  *entity.StockChange
	)
	err := uc.txRunner.Run(ctx, func(repo repository.IngredientRepository) error {
		ing, err := repo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrIngredientNotFound
		}
		qty, err := uc.buildQuantity(in, ing.Stock.Unit)
		if err != nil {
			return err
		}
		if change, err = ing.UpdateMinimum(qty); err != nil {
			return err
		}
		if err := repo.Update(ing); err != nil {
			return err
		}
		updated = ing
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, event.IngredientUpdated{
		IngredientID: updated.ID,
		Name:         updated.Name,
		Category:     updated.Category,
		Stock:        updated.Stock,
		MinimumStock: updated.MinimumStock,
	})
	if change.BecameLow {
		uc.publish(ctx, event.LowStock{
			IngredientID: updated.ID,
			Name:         updated.Name,
			Current:      updated.Stock,
			Minimum:      updated.MinimumStock,
		})
	}
	return toIngredientResponse(updated), nil
}

// mutateStock ejecuta una mutación de stock dentro de la transacción y
// publica StockChanged (y LowStock si hubo transición) tras el Commit.
func (uc *IngredientUseCase) mutateStock(
	ctx context.Context,
	id string,
	in dto.StockRequest,
	changeType string,
	op func(*entity.Ingredient, measure.Quantity) (*entity.StockChange, error),
) (*dto.IngredientResponse, error) {
	var (
		updated *entity.Ingredient
		change  *entity.StockChange
	)
	err := uc.txRunner.Run(ctx, func(repo repository.IngredientRepository) error {
		// Bloquea la fila: serializa las mutaciones por ingrediente.
		ing, err := repo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrIngredientNotFound
		}
		qty, err := uc.buildQuantity(in, ing.Stock.Unit)
		if err != nil {
			return err
		}
		if change, err = op(ing, qty); err != nil {
			return err
		}
		if err := repo.Update(ing); err != nil {
			return err
		}
		updated = ing
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, event.StockChanged{
		IngredientID: updated.ID,
		Name:         updated.Name,
		Previous:     change.Previous,
		Current:      change.Current,
		ChangeType:   changeType,
	})
	if change.BecameLow {
		uc.publish(ctx, event.LowStock{
			IngredientID: updated.ID,
			Name:         updated.Name,
			Current:      updated.Stock,
			Minimum:      updated.MinimumStock,
		})
	}
	return toIngredientResponse(updated), nil
}

// buildQuantity interpreta el request: unidad vacía = unidad del ingrediente.
func (uc *IngredientUseCase) buildQuantity(in dto.StockRequest, fallback measure.Unit) (measure.Quantity, error) {
	unit := fallback
	if in.Unit != "" {
		var err error
		if unit, err = measure.ParseUnit(in.Unit); err != nil {
			return measure.Quantity{}, err
		}
	}
	return measure.NewQuantity(in.Quantity, unit)
}

// publish entrega un evento; el fallo de publicación no revierte la
// operación ya confirmada, solo se registra.
func (uc *IngredientUseCase) publish(ctx context.Context, p event.Payload) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event.New(p)); err != nil {
		uc.log.Warn().Err(err).Str("event_type", p.EventType()).Msg("publicación de evento fallida")
	}
}

func toIngredientResponse(ing *entity.Ingredient) *dto.IngredientResponse {
	return &dto.IngredientResponse{
		ID:            ing.ID,
		Name:          ing.Name,
		Category:      ing.Category,
		Quantity:      ing.Stock.Amount,
		UnitOfMeasure: string(ing.Stock.Unit),
		MinimumStock:  ing.MinimumStock.Amount,
		BelowMinimum:  ing.IsBelowMinimum(),
		CreatedAt:     ing.CreatedAt,
		UpdatedAt:     ing.UpdatedAt,
	}
}
