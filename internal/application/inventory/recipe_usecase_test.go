package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/restaurant-inventory/internal/application/dto"
	"github.com/tu-usuario/restaurant-inventory/internal/application/inventory"
	"github.com/tu-usuario/restaurant-inventory/internal/domain"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/event"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/measure"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del caso de uso de recetas
// ──────────────────────────────────────────────────────────────────────────────

func buildRecipeUC(t *testing.T) (*inventory.RecipeUseCase, *fakeIngredientRepo, *fakeRecipeRepo, *fakePublisher) {
	t.Helper()
	ingRepo := newFakeIngredientRepo()
	recRepo := newFakeRecipeRepo()
	pub := &fakePublisher{}
	uc := inventory.NewRecipeUseCase(recRepo, ingRepo, pub, testLogger())
	return uc, ingRepo, recRepo, pub
}

func TestCreateRecipe_ResuelveIngredientes(t *testing.T) {
	uc, ingRepo, _, pub := buildRecipeUC(t)
	harina := seedIngredient(t, ingRepo, "Harina", qty(t, 5, measure.UnitKilogram), qty(t, 1, measure.UnitKilogram))
	leche := seedIngredient(t, ingRepo, "Leche", qty(t, 10, measure.UnitLiter), qty(t, 2, measure.UnitLiter))

	out, err := uc.CreateRecipe(context.Background(), dto.CreateRecipeRequest{
		Name: "Crepes",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: harina.ID, Quantity: decimal.NewFromInt(500), UnitOfMeasure: "g"},
			{IngredientID: leche.ID, Quantity: decimal.NewFromInt(250), UnitOfMeasure: "ml"},
		},
		PreparationTime: 25,
		Instructions:    "Mezclar y freír.",
	})
	require.NoError(t, err)
	require.Len(t, out.Ingredients, 2)
	assert.Equal(t, "Harina", out.Ingredients[0].Name, "el nombre se desnormaliza desde el ingrediente")
	assert.Equal(t, "g", out.Ingredients[0].UnitOfMeasure)

	require.Len(t, pub.ofType(event.TypeRecipeCreated), 1)
}

func TestCreateRecipe_UnidadVaciaUsaLaDelIngrediente(t *testing.T) {
	uc, ingRepo, _, _ := buildRecipeUC(t)
	leche := seedIngredient(t, ingRepo, "Leche", qty(t, 10, measure.UnitLiter), qty(t, 2, measure.UnitLiter))

	out, err := uc.CreateRecipe(context.Background(), dto.CreateRecipeRequest{
		Name: "Flan",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: leche.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "l", out.Ingredients[0].UnitOfMeasure)
}

func TestCreateRecipe_IngredienteInexistente(t *testing.T) {
	uc, _, _, pub := buildRecipeUC(t)
	_, err := uc.CreateRecipe(context.Background(), dto.CreateRecipeRequest{
		Name: "Crepes",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: "no-existe", Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
	assert.Empty(t, pub.published)
}

func TestCreateRecipe_NombreDuplicado(t *testing.T) {
	uc, ingRepo, _, _ := buildRecipeUC(t)
	harina := seedIngredient(t, ingRepo, "Harina", qty(t, 5, measure.UnitKilogram), qty(t, 1, measure.UnitKilogram))

	in := dto.CreateRecipeRequest{
		Name: "Pan",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: harina.ID, Quantity: decimal.NewFromInt(1), UnitOfMeasure: "kg"},
		},
	}
	_, err := uc.CreateRecipe(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.CreateRecipe(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateRecipe_ReemplazaLineasEnBloque(t *testing.T) {
	uc, ingRepo, _, pub := buildRecipeUC(t)
	harina := seedIngredient(t, ingRepo, "Harina", qty(t, 5, measure.UnitKilogram), qty(t, 1, measure.UnitKilogram))
	azucar := seedIngredient(t, ingRepo, "Azúcar", qty(t, 5, measure.UnitKilogram), qty(t, 1, measure.UnitKilogram))

	created, err := uc.CreateRecipe(context.Background(), dto.CreateRecipeRequest{
		Name: "Pan",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: harina.ID, Quantity: decimal.NewFromInt(1), UnitOfMeasure: "kg"},
		},
	})
	require.NoError(t, err)

	out, err := uc.UpdateRecipe(context.Background(), created.ID, dto.UpdateRecipeRequest{
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: azucar.ID, Quantity: decimal.NewFromInt(200), UnitOfMeasure: "g"},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Ingredients, 1, "la lista de líneas se reemplaza completa")
	assert.Equal(t, azucar.ID, out.Ingredients[0].IngredientID)

	require.Len(t, pub.ofType(event.TypeRecipeUpdated), 1)
}

func TestUpdateRecipe_CamposParciales(t *testing.T) {
	uc, ingRepo, _, _ := buildRecipeUC(t)
	harina := seedIngredient(t, ingRepo, "Harina", qty(t, 5, measure.UnitKilogram), qty(t, 1, measure.UnitKilogram))

	created, err := uc.CreateRecipe(context.Background(), dto.CreateRecipeRequest{
		Name: "Pan",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: harina.ID, Quantity: decimal.NewFromInt(1), UnitOfMeasure: "kg"},
		},
		PreparationTime: 90,
	})
	require.NoError(t, err)

	out, err := uc.UpdateRecipe(context.Background(), created.ID, dto.UpdateRecipeRequest{
		Name: "Pan casero",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pan casero", out.Name)
	assert.Equal(t, 90, out.PreparationTime, "los campos no provistos no se tocan")
	assert.Len(t, out.Ingredients, 1, "sin ingredients en el request las líneas quedan intactas")
}

func TestDeleteRecipe_PublicaEvento(t *testing.T) {
	uc, ingRepo, _, pub := buildRecipeUC(t)
	harina := seedIngredient(t, ingRepo, "Harina", qty(t, 5, measure.UnitKilogram), qty(t, 1, measure.UnitKilogram))

	created, err := uc.CreateRecipe(context.Background(), dto.CreateRecipeRequest{
		Name: "Pan",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: harina.ID, Quantity: decimal.NewFromInt(1), UnitOfMeasure: "kg"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteRecipe(context.Background(), created.ID))
	require.Len(t, pub.ofType(event.TypeRecipeDeleted), 1)

	_, err = uc.GetRecipe(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
