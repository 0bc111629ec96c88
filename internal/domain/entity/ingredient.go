package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/restaurant-inventory/internal/domain"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/measure"
)

// Ingredient es la raíz de agregado del inventario: única autoridad sobre la
// mutación de stock y la detección de stock bajo. El stock nunca queda
// negativo; la operación que lo dejaría bajo cero se rechaza completa.
type Ingredient struct {
	ID           string
	Name         string
	Category     string
	Stock        measure.Quantity
	MinimumStock measure.Quantity
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockChange describe el resultado de una mutación de stock. Es un valor de
// retorno puro: la capa de aplicación decide qué eventos publicar con él.
type StockChange struct {
	Previous measure.Quantity
	Current  measure.Quantity
	// BecameLow es true solo en la transición Suficiente→Bajo de esta
	// operación; nunca mientras ya estaba bajo.
	BecameLow bool
	// BecameSufficient es true solo en la transición Bajo→Suficiente.
	BecameSufficient bool
}

// NewIngredient construye el agregado. El mínimo se convierte a la unidad del
// stock, por lo que ambas cantidades deben ser de la misma familia.
func NewIngredient(name, category string, stock, minimum measure.Quantity) (*Ingredient, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	min, err := minimum.To(stock.Unit)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Ingredient{
		ID:           uuid.New().String(),
		Name:         name,
		Category:     category,
		Stock:        stock,
		MinimumStock: min,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// AddStock suma una cantidad positiva al stock.
func (i *Ingredient) AddStock(qty measure.Quantity) (*StockChange, error) {
	if !qty.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	newStock, err := i.Stock.Add(qty)
	if err != nil {
		return nil, err
	}
	return i.applyStock(newStock), nil
}

// RemoveStock resta una cantidad positiva del stock. Si excede el stock
// actual la operación se rechaza con ErrInsufficientStock.
func (i *Ingredient) RemoveStock(qty measure.Quantity) (*StockChange, error) {
	if !qty.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	newStock, err := i.Stock.Sub(qty)
	if err != nil {
		if err == domain.ErrNegativeQuantity {
			return nil, domain.ErrInsufficientStock
		}
		return nil, err
	}
	return i.applyStock(newStock), nil
}

// SetStock sobreescribe el stock con un valor absoluto no negativo,
// convertido a la unidad actual del agregado.
func (i *Ingredient) SetStock(qty measure.Quantity) (*StockChange, error) {
	newStock, err := qty.To(i.Stock.Unit)
	if err != nil {
		return nil, err
	}
	return i.applyStock(newStock), nil
}

// UpdateMinimum cambia el umbral mínimo sin tocar el stock y reevalúa el
// estado Suficiente/Bajo con el nuevo umbral.
func (i *Ingredient) UpdateMinimum(qty measure.Quantity) (*StockChange, error) {
	min, err := qty.To(i.Stock.Unit)
	if err != nil {
		return nil, err
	}
	wasLow := i.IsBelowMinimum()
	i.MinimumStock = min
	i.UpdatedAt = time.Now()
	isLow := i.IsBelowMinimum()
	return &StockChange{
		Previous:         i.Stock,
		Current:          i.Stock,
		BecameLow:        !wasLow && isLow,
		BecameSufficient: wasLow && !isLow,
	}, nil
}

// IsBelowMinimum indica si el stock está estrictamente bajo el mínimo.
func (i *Ingredient) IsBelowMinimum() bool {
	// Stock y MinimumStock comparten unidad desde la construcción.
	cmp, _ := i.Stock.Cmp(i.MinimumStock)
	return cmp < 0
}

func (i *Ingredient) applyStock(newStock measure.Quantity) *StockChange {
	wasLow := i.IsBelowMinimum()
	prev := i.Stock
	i.Stock = newStock
	i.UpdatedAt = time.Now()
	isLow := i.IsBelowMinimum()
	return &StockChange{
		Previous:         prev,
		Current:          i.Stock,
		BecameLow:        !wasLow && isLow,
		BecameSufficient: wasLow && !isLow,
	}
}
