package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/restaurant-inventory/internal/domain"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/entity"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/measure"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del agregado Ingredient: mutación de stock y transiciones de umbral
// ──────────────────────────────────────────────────────────────────────────────

func qty(t *testing.T, amount float64, unit measure.Unit) measure.Quantity {
	t.Helper()
	q, err := measure.NewQuantity(decimal.NewFromFloat(amount), unit)
	require.NoError(t, err)
	return q
}

// harina con 12 kg de stock y mínimo de 10 kg (estado Suficiente).
func buildHarina(t *testing.T) *entity.Ingredient {
	t.Helper()
	ing, err := entity.NewIngredient("Harina de trigo", "secos",
		qty(t, 12, measure.UnitKilogram), qty(t, 10, measure.UnitKilogram))
	require.NoError(t, err)
	return ing
}

func TestNewIngredient_ConvierteMinimoALaUnidadDelStock(t *testing.T) {
	// Stock en kg, mínimo declarado en g: queda almacenado en kg.
	ing, err := entity.NewIngredient("Azúcar", "secos",
		qty(t, 5, measure.UnitKilogram), qty(t, 2500, measure.UnitGram))
	require.NoError(t, err)
	assert.Equal(t, measure.UnitKilogram, ing.MinimumStock.Unit)
	assert.True(t, ing.MinimumStock.Amount.Equal(decimal.NewFromFloat(2.5)))
}

func TestNewIngredient_NombreVacio(t *testing.T) {
	_, err := entity.NewIngredient("", "secos",
		qty(t, 1, measure.UnitKilogram), qty(t, 1, measure.UnitKilogram))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewIngredient_MinimoFamiliaIncompatible(t *testing.T) {
	_, err := entity.NewIngredient("Leche", "lácteos",
		qty(t, 5, measure.UnitLiter), qty(t, 2, measure.UnitKilogram))
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnits)
}

func TestAddStock_SumaConvirtiendoUnidad(t *testing.T) {
	ing := buildHarina(t)
	change, err := ing.AddStock(qty(t, 500, measure.UnitGram))
	require.NoError(t, err)
	assert.True(t, ing.Stock.Amount.Equal(decimal.NewFromFloat(12.5)), "12 kg + 500 g = 12.5 kg")
	assert.True(t, change.Previous.Amount.Equal(decimal.NewFromInt(12)))
	assert.True(t, change.Current.Amount.Equal(decimal.NewFromFloat(12.5)))
	assert.False(t, change.BecameLow)
}

func TestAddStock_CantidadNoPositiva(t *testing.T) {
	ing := buildHarina(t)
	_, err := ing.AddStock(qty(t, 0, measure.UnitKilogram))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "sumar cero no es una operación válida")
}

func TestRemoveStock_HastaCeroExacto(t *testing.T) {
	ing := buildHarina(t)
	_, err := ing.RemoveStock(qty(t, 12, measure.UnitKilogram))
	require.NoError(t, err, "retirar exactamente el stock debe dejarlo en cero")
	assert.True(t, ing.Stock.IsZero())
}

func TestRemoveStock_InsuficienteRechazaCompleta(t *testing.T) {
	ing := buildHarina(t)
	_, err := ing.RemoveStock(qty(t, 13, measure.UnitKilogram))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, ing.Stock.Amount.Equal(decimal.NewFromInt(12)),
		"una resta rechazada no debe tocar el stock")
}

// TestRemoveStock_RoundTripExacto verifica que retirar y reponer la misma
// cantidad recupera el stock original exacto (aritmética decimal, no float).
func TestRemoveStock_RoundTripExacto(t *testing.T) {
	ing := buildHarina(t)
	retiro := qty(t, 3.7, measure.UnitKilogram)

	_, err := ing.RemoveStock(retiro)
	require.NoError(t, err)
	_, err = ing.AddStock(retiro)
	require.NoError(t, err)

	assert.True(t, ing.Stock.Amount.Equal(decimal.NewFromInt(12)),
		"retirar y reponer 3.7 kg debe recuperar los 12 kg exactos, fue %s", ing.Stock)
}

// ── Transiciones Suficiente↔Bajo ──────────────────────────────────────────────

// La transición Suficiente→Bajo se señala exactamente una vez: la resta que
// cruza el umbral la marca, las restas siguientes ya no.
func TestRemoveStock_TransicionBajoSoloUnaVez(t *testing.T) {
	ing := buildHarina(t) // 12 kg, mínimo 10 kg

	change, err := ing.RemoveStock(qty(t, 3, measure.UnitKilogram)) // 12 -> 9: cruza
	require.NoError(t, err)
	assert.True(t, change.BecameLow, "bajar de 12 a 9 kg con mínimo 10 debe señalar la transición")
	assert.True(t, ing.IsBelowMinimum())

	change, err = ing.RemoveStock(qty(t, 1, measure.UnitKilogram)) // 9 -> 8: sigue bajo
	require.NoError(t, err)
	assert.False(t, change.BecameLow, "ya estaba bajo: no debe señalarse de nuevo")
}

func TestRemoveStock_QuedarEnElMinimoNoEsBajo(t *testing.T) {
	ing := buildHarina(t)
	change, err := ing.RemoveStock(qty(t, 2, measure.UnitKilogram)) // 12 -> 10: igual al mínimo
	require.NoError(t, err)
	assert.False(t, change.BecameLow, "stock igual al mínimo cuenta como Suficiente")
	assert.False(t, ing.IsBelowMinimum())
}

func TestAddStock_TransicionDeVueltaASuficiente(t *testing.T) {
	ing := buildHarina(t)
	_, err := ing.RemoveStock(qty(t, 5, measure.UnitKilogram)) // 12 -> 7: bajo
	require.NoError(t, err)

	change, err := ing.AddStock(qty(t, 4, measure.UnitKilogram)) // 7 -> 11: suficiente
	require.NoError(t, err)
	assert.True(t, change.BecameSufficient, "recuperar el umbral debe señalar la transición inversa")
	assert.False(t, change.BecameLow)
}

func TestSetStock_AbsolutoConTransicion(t *testing.T) {
	ing := buildHarina(t)
	change, err := ing.SetStock(qty(t, 4, measure.UnitKilogram))
	require.NoError(t, err)
	assert.True(t, change.BecameLow)
	assert.True(t, ing.Stock.Amount.Equal(decimal.NewFromInt(4)))

	// Fijar en otra unidad compatible: se convierte a la unidad del agregado.
	change, err = ing.SetStock(qty(t, 15000, measure.UnitGram))
	require.NoError(t, err)
	assert.True(t, change.BecameSufficient)
	assert.Equal(t, measure.UnitKilogram, ing.Stock.Unit)
	assert.True(t, ing.Stock.Amount.Equal(decimal.NewFromInt(15)))
}

func TestUpdateMinimum_ReevaluaSinTocarStock(t *testing.T) {
	ing := buildHarina(t) // 12 kg, mínimo 10 kg

	// Subir el mínimo por encima del stock: transición a Bajo sin mutar stock.
	change, err := ing.UpdateMinimum(qty(t, 15, measure.UnitKilogram))
	require.NoError(t, err)
	assert.True(t, change.BecameLow)
	assert.True(t, ing.Stock.Amount.Equal(decimal.NewFromInt(12)), "el stock no cambia")

	// Bajarlo de nuevo: transición a Suficiente.
	change, err = ing.UpdateMinimum(qty(t, 5, measure.UnitKilogram))
	require.NoError(t, err)
	assert.True(t, change.BecameSufficient)
}
