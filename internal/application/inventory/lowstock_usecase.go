package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/restaurant-inventory/internal/application/dto"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/repository"
)

// LowStockUseCase genera el reporte de ingredientes bajo su umbral mínimo
// con la cantidad sugerida de pedido, priorizados por déficit relativo.
type LowStockUseCase struct {
	ingredientRepo repository.IngredientRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(ingredientRepo repository.IngredientRepository) *LowStockUseCase {
	return &LowStockUseCase{ingredientRepo: ingredientRepo}
}

// GenerateLowStockReport devuelve los ingredientes con stock estrictamente
// bajo el mínimo. Cantidad sugerida = MinimumStock*1.5 - CurrentStock
// (stock ideal al 150% del umbral). Prioridad 1 = mayor déficit relativo.
func (uc *LowStockUseCase) GenerateLowStockReport(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	items, err := uc.ingredientRepo.ListBelowMinimum()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.LowStockItemDTO{}, nil
	}

	idealFactor := decimal.NewFromFloat(1.5)

	report := make([]dto.LowStockItemDTO, 0, len(items))
	deficits := make(map[string]decimal.Decimal, len(items))
	for _, ing := range items {
		suggested := ing.MinimumStock.Amount.Mul(idealFactor).Sub(ing.Stock.Amount)
		if suggested.LessThanOrEqual(decimal.Zero) {
			suggested = decimal.Zero
		}
		// Déficit relativo: (mínimo - stock) / mínimo. Mínimo cero no entra
		// al reporte (stock nunca es negativo).
		deficit := decimal.Zero
		if ing.MinimumStock.Amount.IsPositive() {
			deficit = ing.MinimumStock.Amount.Sub(ing.Stock.Amount).Div(ing.MinimumStock.Amount)
		}
		deficits[ing.ID] = deficit

		report = append(report, dto.LowStockItemDTO{
			IngredientID:      ing.ID,
			Name:              ing.Name,
			Category:          ing.Category,
			CurrentStock:      ing.Stock.Amount,
			MinimumStock:      ing.MinimumStock.Amount,
			Unit:              string(ing.Stock.Unit),
			SuggestedOrderQty: suggested,
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		return deficits[report[i].IngredientID].GreaterThan(deficits[report[j].IngredientID])
	})
	for i := range report {
		report[i].Priority = i + 1
	}

	return report, nil
}
