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

// RecipeUseCase casos de uso de recetas. Las líneas de una receta se
// reemplazan siempre en bloque; no hay mutación parcial.
type RecipeUseCase struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	publisher      repository.EventPublisher
	log            *logger.Logger
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	publisher repository.EventPublisher,
	log *logger.Logger,
) *RecipeUseCase {
	return &RecipeUseCase{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		publisher:      publisher,
		log:            log,
	}
}

// CreateRecipe crea una receta validando que cada ingrediente referenciado
// exista. Devuelve ErrDuplicate si ya hay una receta con ese nombre.
func (uc *RecipeUseCase) CreateRecipe(ctx context.Context, in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	existing, err := uc.recipeRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	lines, err := uc.buildLines(in.Ingredients)
	if err != nil {
		return nil, err
	}
	recipe, err := entity.NewRecipe(in.Name, lines, in.PreparationTime, in.Instructions)
	if err != nil {
		return nil, err
	}
	if err := uc.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}

	uc.publish(ctx, event.RecipeCreated{
		RecipeID: recipe.ID,
		Name:     recipe.Name,
		Lines:    toEventLines(recipe.Lines),
	})
	return toRecipeResponse(recipe), nil
}

// GetRecipe obtiene una receta por ID.
func (uc *RecipeUseCase) GetRecipe(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrRecipeNotFound
	}
	return toRecipeResponse(recipe), nil
}

// ListRecipes lista recetas paginadas.
func (uc *RecipeUseCase) ListRecipes(ctx context.Context, page dto.PageRequest) ([]dto.RecipeResponse, error) {
	page.DefaultPage()
	items, err := uc.recipeRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeResponse, 0, len(items))
	for _, recipe := range items {
		out = append(out, *toRecipeResponse(recipe))
	}
	return out, nil
}

// UpdateRecipe actualiza los campos provistos. Ingredients no nil reemplaza
// la lista completa de líneas.
func (uc *RecipeUseCase) UpdateRecipe(ctx context.Context, id string, in dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrRecipeNotFound
	}

	if in.Name != "" && in.Name != recipe.Name {
		existing, err := uc.recipeRepo.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != recipe.ID {
			return nil, domain.ErrDuplicate
		}
		if err := recipe.Rename(in.Name); err != nil {
			return nil, err
		}
	}
	if in.PreparationTime > 0 {
		if err := recipe.UpdatePreparationTime(in.PreparationTime); err != nil {
			return nil, err
		}
	}
	if in.Instructions != "" {
		recipe.UpdateInstructions(in.Instructions)
	}
	if in.Ingredients != nil {
		lines, err := uc.buildLines(in.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := recipe.ReplaceLines(lines); err != nil {
			return nil, err
		}
	}

	if err := uc.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}

	uc.publish(ctx, event.RecipeUpdated{
		RecipeID: recipe.ID,
		Name:     recipe.Name,
		Lines:    toEventLines(recipe.Lines),
	})
	return toRecipeResponse(recipe), nil
}

// DeleteRecipe elimina una receta.
func (uc *RecipeUseCase) DeleteRecipe(ctx context.Context, id string) error {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrRecipeNotFound
	}
	if err := uc.recipeRepo.Delete(id); err != nil {
		return err
	}
	uc.publish(ctx, event.RecipeDeleted{RecipeID: recipe.ID, Name: recipe.Name})
	return nil
}

// buildLines resuelve cada ingrediente referenciado y arma las líneas de
// dominio. Unidad vacía en la petición = unidad actual del ingrediente.
func (uc *RecipeUseCase) buildLines(items []dto.RecipeLineRequest) ([]entity.RecipeLine, error) {
	lines := make([]entity.RecipeLine, 0, len(items))
	for _, item := range items {
		ing, err := uc.ingredientRepo.GetByID(item.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, domain.ErrIngredientNotFound
		}
		unit := ing.Stock.Unit
		if item.UnitOfMeasure != "" {
			if unit, err = measure.ParseUnit(item.UnitOfMeasure); err != nil {
				return nil, err
			}
		}
		qty, err := measure.NewQuantity(item.Quantity, unit)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.RecipeLine{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Quantity:     qty,
		})
	}
	return lines, nil
}

func (uc *RecipeUseCase) publish(ctx context.Context, p event.Payload) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event.New(p)); err != nil {
		uc.log.Warn().Err(err).Str("event_type", p.EventType()).Msg("publicación de evento fallida")
	}
}

func toEventLines(lines []entity.RecipeLine) []event.RecipeLine {
	out := make([]event.RecipeLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, event.RecipeLine{
			IngredientID: line.IngredientID,
			Name:         line.Name,
			Quantity:     line.Quantity,
		})
	}
	return out
}

func toRecipeResponse(recipe *entity.Recipe) *dto.RecipeResponse {
	lines := make([]dto.RecipeLineResponse, 0, len(recipe.Lines))
	for _, line := range recipe.Lines {
		lines = append(lines, dto.RecipeLineResponse{
			IngredientID:  line.IngredientID,
			Name:          line.Name,
			Quantity:      line.Quantity.Amount,
			UnitOfMeasure: string(line.Quantity.Unit),
		})
	}
	return &dto.RecipeResponse{
		ID:              recipe.ID,
		Name:            recipe.Name,
		Ingredients:     lines,
		PreparationTime: recipe.PreparationTime,
		Instructions:    recipe.Instructions,
		CreatedAt:       recipe.CreatedAt,
		UpdatedAt:       recipe.UpdatedAt,
	}
}
