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
// Tests del caso de uso de ingredientes: CRUD, stock y eventos publicados
// ──────────────────────────────────────────────────────────────────────────────

func buildIngredientUC(t *testing.T) (*inventory.IngredientUseCase, *fakeIngredientRepo, *fakePublisher) {
	t.Helper()
	repo := newFakeIngredientRepo()
	pub := &fakePublisher{}
	uc := inventory.NewIngredientUseCase(&fakeTxRunner{repo: repo}, repo, pub, testLogger())
	return uc, repo, pub
}

func TestCreateIngredient_PublicaEvento(t *testing.T) {
	uc, _, pub := buildIngredientUC(t)

	out, err := uc.CreateIngredient(context.Background(), dto.CreateIngredientRequest{
		Name:          "Harina",
		Category:      "secos",
		Quantity:      decimal.NewFromInt(12),
		UnitOfMeasure: "kg",
		MinimumStock:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "Harina", out.Name)
	assert.False(t, out.BelowMinimum)

	creados := pub.ofType(event.TypeIngredientCreated)
	require.Len(t, creados, 1, "crear un ingrediente debe publicar inventory.ingredient.created")
	payload, ok := creados[0].Payload.(event.IngredientCreated)
	require.True(t, ok)
	assert.Equal(t, out.ID, payload.IngredientID)
}

func TestCreateIngredient_NombreDuplicado(t *testing.T) {
	uc, repo, pub := buildIngredientUC(t)
	seedIngredient(t, repo, "Harina", qty(t, 5, measure.UnitKilogram), qty(t, 1, measure.UnitKilogram))

	_, err := uc.CreateIngredient(context.Background(), dto.CreateIngredientRequest{
		Name:          "Harina",
		Quantity:      decimal.NewFromInt(1),
		UnitOfMeasure: "kg",
		MinimumStock:  decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, pub.published, "una creación rechazada no publica eventos")
}

func TestCreateIngredient_UnidadDesconocida(t *testing.T) {
	uc, _, _ := buildIngredientUC(t)
	_, err := uc.CreateIngredient(context.Background(), dto.CreateIngredientRequest{
		Name:          "Harina",
		Quantity:      decimal.NewFromInt(1),
		UnitOfMeasure: "sacos",
		MinimumStock:  decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownUnit)
}

func TestGetIngredient_NoExiste(t *testing.T) {
	uc, _, _ := buildIngredientUC(t)
	_, err := uc.GetIngredient(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

// ── Operaciones de stock ──────────────────────────────────────────────────────

func TestAddStock_PublicaStockChanged(t *testing.T) {
	uc, repo, pub := buildIngredientUC(t)
	ing := seedIngredient(t, repo, "Harina", qty(t, 12, measure.UnitKilogram), qty(t, 10, measure.UnitKilogram))

	out, err := uc.AddStock(context.Background(), ing.ID, dto.StockRequest{Quantity: decimal.NewFromInt(3)})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(15)))

	cambios := pub.ofType(event.TypeStockChanged)
	require.Len(t, cambios, 1)
	payload := cambios[0].Payload.(event.StockChanged)
	assert.Equal(t, event.ChangeIncrease, payload.ChangeType)
	assert.True(t, payload.Previous.Amount.Equal(decimal.NewFromInt(12)))
	assert.True(t, payload.Current.Amount.Equal(decimal.NewFromInt(15)))
	assert.Empty(t, pub.ofType(event.TypeLowStock), "subir stock no dispara low_stock")
}

func TestAddStock_UnidadVaciaUsaLaDelIngrediente(t *testing.T) {
	uc, repo, _ := buildIngredientUC(t)
	ing := seedIngredient(t, repo, "Leche", qty(t, 5, measure.UnitLiter), qty(t, 1, measure.UnitLiter))

	out, err := uc.AddStock(context.Background(), ing.ID, dto.StockRequest{
		Quantity: decimal.NewFromInt(500),
		Unit:     "ml",
	})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(decimal.NewFromFloat(5.5)), "5 l + 500 ml = 5.5 l")
	assert.Equal(t, "l", out.UnitOfMeasure)
}

func TestRemoveStock_CruzarUmbralPublicaLowStockUnaVez(t *testing.T) {
	uc, repo, pub := buildIngredientUC(t)
	ing := seedIngredient(t, repo, "Harina", qty(t, 12, measure.UnitKilogram), qty(t, 10, measure.UnitKilogram))

	// 12 -> 9: cruza el umbral, debe publicar low_stock.
	_, err := uc.RemoveStock(context.Background(), ing.ID, dto.StockRequest{Quantity: decimal.NewFromInt(3)})
	require.NoError(t, err)
	require.Len(t, pub.ofType(event.TypeLowStock), 1, "la transición Suficiente→Bajo publica low_stock")

	// 9 -> 8: sigue bajo, no debe repetirse.
	_, err = uc.RemoveStock(context.Background(), ing.ID, dto.StockRequest{Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Len(t, pub.ofType(event.TypeLowStock), 1, "low_stock se publica exactamente una vez por transición")
	assert.Len(t, pub.ofType(event.TypeStockChanged), 2, "cada mutación publica stock_changed")
}

func TestRemoveStock_Insuficiente(t *testing.T) {
	uc, repo, pub := buildIngredientUC(t)
	ing := seedIngredient(t, repo, "Harina", qty(t, 2, measure.UnitKilogram), qty(t, 1, measure.UnitKilogram))

	_, err := uc.RemoveStock(context.Background(), ing.ID, dto.StockRequest{Quantity: decimal.NewFromInt(3)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, pub.published, "una mutación rechazada no publica eventos")

	// El stock persistido no cambió.
	actual, err := repo.GetByID(ing.ID)
	require.NoError(t, err)
	assert.True(t, actual.Stock.Amount.Equal(decimal.NewFromInt(2)))
}

func TestSetStock_Absoluto(t *testing.T) {
	uc, repo, pub := buildIngredientUC(t)
	ing := seedIngredient(t, repo, "Harina", qty(t, 12, measure.UnitKilogram), qty(t, 10, measure.UnitKilogram))

	out, err := uc.SetStock(context.Background(), ing.ID, dto.StockRequest{Quantity: decimal.NewFromInt(4)})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, out.BelowMinimum)

	payload := pub.ofType(event.TypeStockChanged)[0].Payload.(event.StockChanged)
	assert.Equal(t, event.ChangeUpdate, payload.ChangeType)
	assert.Len(t, pub.ofType(event.TypeLowStock), 1)
}

func TestUpdateMinimum_TransicionPorCambioDeUmbral(t *testing.T) {
	uc, repo, pub := buildIngredientUC(t)
	ing := seedIngredient(t, repo, "Harina", qty(t, 12, measure.UnitKilogram), qty(t, 10, measure.UnitKilogram))

	// Subir el mínimo por encima del stock dispara low_stock sin mutar stock.
	out, err := uc.UpdateMinimum(context.Background(), ing.ID, dto.StockRequest{Quantity: decimal.NewFromInt(15)})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(12)), "el stock no cambia")
	assert.True(t, out.MinimumStock.Equal(decimal.NewFromInt(15)))
	assert.Len(t, pub.ofType(event.TypeLowStock), 1)
	assert.Len(t, pub.ofType(event.TypeIngredientUpdated), 1)
}

func TestStockOp_IngredienteNoExiste(t *testing.T) {
	uc, _, _ := buildIngredientUC(t)
	_, err := uc.AddStock(context.Background(), "no-existe", dto.StockRequest{Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestDeleteIngredient_PublicaEvento(t *testing.T) {
	uc, repo, pub := buildIngredientUC(t)
	ing := seedIngredient(t, repo, "Harina", qty(t, 1, measure.UnitKilogram), qty(t, 0, measure.UnitKilogram))

	require.NoError(t, uc.DeleteIngredient(context.Background(), ing.ID))
	require.Len(t, pub.ofType(event.TypeIngredientDeleted), 1)

	_, err := uc.GetIngredient(context.Background(), ing.ID)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}
