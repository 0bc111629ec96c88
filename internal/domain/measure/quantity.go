package measure

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/restaurant-inventory/internal/domain"
)

// Quantity es un valor inmutable: monto no negativo + unidad de medida.
// La aritmética entre cantidades convierte el operando derecho a la unidad
// del izquierdo; falla con ErrIncompatibleUnits si las familias difieren.
type Quantity struct {
	Amount decimal.Decimal `json:"amount"`
	Unit   Unit            `json:"unit"`
}

// NewQuantity construye una cantidad validando unidad y no negatividad.
func NewQuantity(amount decimal.Decimal, unit Unit) (Quantity, error) {
	if !unit.IsValid() {
		return Quantity{}, domain.ErrUnknownUnit
	}
	if amount.IsNegative() {
		return Quantity{}, domain.ErrNegativeQuantity
	}
	return Quantity{Amount: amount, Unit: unit}, nil
}

// Add suma otra cantidad (convertida a la unidad de q).
func (q Quantity) Add(other Quantity) (Quantity, error) {
	converted, err := Convert(other.Amount, other.Unit, q.Unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Amount: q.Amount.Add(converted), Unit: q.Unit}, nil
}

// Sub resta otra cantidad (convertida a la unidad de q).
// Falla con ErrNegativeQuantity si el resultado quedaría bajo cero:
// se rechaza, nunca se trunca a cero.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	converted, err := Convert(other.Amount, other.Unit, q.Unit)
	if err != nil {
		return Quantity{}, err
	}
	result := q.Amount.Sub(converted)
	if result.IsNegative() {
		return Quantity{}, domain.ErrNegativeQuantity
	}
	return Quantity{Amount: result, Unit: q.Unit}, nil
}

// Cmp compara numéricamente tras convertir: -1 si q < other, 0 si iguales, 1 si q > other.
func (q Quantity) Cmp(other Quantity) (int, error) {
	converted, err := Convert(other.Amount, other.Unit, q.Unit)
	if err != nil {
		return 0, err
	}
	return q.Amount.Cmp(converted), nil
}

// Mul escala el monto por un factor (para multiplicar líneas de receta).
func (q Quantity) Mul(factor decimal.Decimal) Quantity {
	return Quantity{Amount: q.Amount.Mul(factor), Unit: q.Unit}
}

// To devuelve la cantidad expresada en otra unidad compatible.
func (q Quantity) To(unit Unit) (Quantity, error) {
	converted, err := Convert(q.Amount, q.Unit, unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Amount: converted, Unit: unit}, nil
}

// IsZero indica si el monto es cero.
func (q Quantity) IsZero() bool {
	return q.Amount.IsZero()
}

// IsPositive indica si el monto es estrictamente mayor que cero.
func (q Quantity) IsPositive() bool {
	return q.Amount.IsPositive()
}

// String para logs y mensajes de error ("2.5 kg").
func (q Quantity) String() string {
	return fmt.Sprintf("%s %s", q.Amount.String(), q.Unit)
}
