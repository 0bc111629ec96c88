package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIngredientRequest body para POST /api/v1/ingredients.
// MinimumStockUnit es opcional; vacío = misma unidad del stock.
type CreateIngredientRequest struct {
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitOfMeasure    string          `json:"unit_of_measure"`
	MinimumStock     decimal.Decimal `json:"minimum_stock"`
	MinimumStockUnit string          `json:"minimum_stock_unit,omitempty"`
}

// UpdateIngredientRequest body para PUT /api/v1/ingredients/:id.
// Solo metadatos; el stock se muta por las operaciones de stock.
type UpdateIngredientRequest struct {
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
}

// StockRequest body para las operaciones de stock (add/remove/set) y para
// el umbral mínimo. Unit vacío = unidad actual del ingrediente.
type StockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit,omitempty"`
}

// IngredientResponse proyección de un ingrediente para la API.
type IngredientResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	MinimumStock  decimal.Decimal `json:"minimum_stock"`
	BelowMinimum  bool            `json:"below_minimum"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LowStockItemDTO es una fila del reporte de stock bajo: ingrediente bajo su
// mínimo con la cantidad sugerida de pedido.
type LowStockItemDTO struct {
	IngredientID      string          `json:"ingredient_id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	MinimumStock      decimal.Decimal `json:"minimum_stock"`
	Unit              string          `json:"unit"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // MinimumStock*1.5 - CurrentStock
	Priority          int             `json:"priority"`            // 1 = más urgente (mayor déficit relativo)
}
