package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/tu-usuario/restaurant-inventory/internal/application/dto"
	"github.com/tu-usuario/restaurant-inventory/internal/domain"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/entity"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/event"
	domaininv "github.com/tu-usuario/restaurant-inventory/internal/domain/inventory"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/measure"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/repository"
	"github.com/tu-usuario/restaurant-inventory/pkg/logger"
)

// Códigos de error por entrada de validación.
const (
	validationErrRecipeNotFound  = "RECIPE_NOT_FOUND"
	validationErrInvalidQuantity = "INVALID_QUANTITY"
)

// ValidationUseCase responde consultas de disponibilidad sobre una o más
// recetas. Nunca corta en la primera receta no disponible: toda petición
// recibe su veredicto, en el orden solicitado.
type ValidationUseCase struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	publisher      repository.EventPublisher
	log            *logger.Logger
}

// NewValidationUseCase construye el caso de uso.
func NewValidationUseCase(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	publisher repository.EventPublisher,
	log *logger.Logger,
) *ValidationUseCase {
	return &ValidationUseCase{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		publisher:      publisher,
		log:            log,
	}
}

// repoLookup adapta el repositorio de ingredientes a la capacidad de solo
// lectura que consume la verificación de disponibilidad.
type repoLookup struct {
	repo repository.IngredientRepository
}

func (l repoLookup) Get(id string) (*entity.Ingredient, error) {
	return l.repo.GetByID(id)
}

// Validate resuelve cada (recipe_id, servings), calcula la disponibilidad y
// acumula el resultado. Una receta desconocida marca solo su entrada con
// RECIPE_NOT_FOUND y el resto se sigue procesando.
func (uc *ValidationUseCase) Validate(ctx context.Context, in dto.ValidateRecipesRequest) (*dto.ValidateRecipesResponse, error) {
	lookup := repoLookup{repo: uc.ingredientRepo}

	results := make([]dto.RecipeValidationResult, 0, len(in.Requests))
	eventResults := make([]domaininv.RecipeAvailability, 0, len(in.Requests))

	for _, req := range in.Requests {
		recipe, err := uc.recipeRepo.GetByID(req.RecipeID)
		if err != nil {
			return nil, err
		}
		if recipe == nil {
			results = append(results, dto.RecipeValidationResult{
				RecipeID: req.RecipeID,
				Servings: req.Servings,
				Error:    validationErrRecipeNotFound,
			})
			eventResults = append(eventResults, domaininv.RecipeAvailability{
				RecipeID: req.RecipeID,
				Servings: req.Servings,
			})
			continue
		}

		verdict, err := domaininv.CheckAvailability(recipe, req.Servings, lookup)
		if err != nil {
			if err == domain.ErrInvalidQuantity {
				results = append(results, dto.RecipeValidationResult{
					RecipeID: req.RecipeID,
					Name:     recipe.Name,
					Servings: req.Servings,
					Error:    validationErrInvalidQuantity,
				})
				eventResults = append(eventResults, domaininv.RecipeAvailability{
					RecipeID: req.RecipeID,
					Name:     recipe.Name,
					Servings: req.Servings,
				})
				continue
			}
			return nil, err
		}
		results = append(results, toValidationResult(verdict))
		eventResults = append(eventResults, *verdict)
	}

	validationID := uuid.New().String()
	uc.publish(ctx, event.ValidationPerformed{
		ValidationID: validationID,
		Results:      eventResults,
	})

	return &dto.ValidateRecipesResponse{
		ValidationID: validationID,
		Results:      results,
	}, nil
}

// ValidateItems comprueba disponibilidad a nivel de ingrediente. Una entrada
// malformada (id inexistente, cantidad no positiva, unidad incompatible)
// cuenta como no disponible en lugar de fallar el lote completo.
func (uc *ValidationUseCase) ValidateItems(ctx context.Context, in dto.ValidateItemsRequest) (*dto.ValidateItemsResponse, error) {
	results := make(map[string]bool, len(in.Items))

	for _, item := range in.Items {
		if item.IngredientID == "" || !item.Quantity.IsPositive() {
			results[item.IngredientID] = false
			continue
		}
		ing, err := uc.ingredientRepo.GetByID(item.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			results[item.IngredientID] = false
			continue
		}
		unit := ing.Stock.Unit
		if item.Unit != "" {
			if unit, err = measure.ParseUnit(item.Unit); err != nil {
				results[item.IngredientID] = false
				continue
			}
		}
		required := measure.Quantity{Amount: item.Quantity, Unit: unit}
		cmp, err := ing.Stock.Cmp(required)
		if err != nil {
			// Familias incompatibles: no disponible en esa unidad.
			results[item.IngredientID] = false
			continue
		}
		results[item.IngredientID] = cmp >= 0
	}

	return &dto.ValidateItemsResponse{Results: results}, nil
}

func (uc *ValidationUseCase) publish(ctx context.Context, p event.Payload) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event.New(p)); err != nil {
		uc.log.Warn().Err(err).Str("event_type", p.EventType()).Msg("publicación de evento fallida")
	}
}

func toValidationResult(v *domaininv.RecipeAvailability) dto.RecipeValidationResult {
	shortages := make([]dto.ShortageDTO, 0, len(v.Shortages))
	for _, s := range v.Shortages {
		shortages = append(shortages, dto.ShortageDTO{
			IngredientID: s.IngredientID,
			Name:         s.Name,
			Required:     s.Required.Amount,
			Available:    s.Available.Amount,
			Shortfall:    s.Shortfall.Amount,
			Unit:         string(s.Required.Unit),
			Missing:      s.Missing,
		})
	}
	if len(shortages) == 0 {
		shortages = nil
	}
	return dto.RecipeValidationResult{
		RecipeID:  v.RecipeID,
		Name:      v.Name,
		Servings:  v.Servings,
		Available: v.Available,
		Shortages: shortages,
	}
}
