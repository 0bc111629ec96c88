package measure

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/restaurant-inventory/internal/domain"
)

// Family agrupa las unidades mutuamente convertibles.
// La conversión solo está definida entre unidades de la misma familia.
type Family string

const (
	FamilyMass   Family = "mass"   // base: gramo
	FamilyVolume Family = "volume" // base: mililitro
	FamilyCount  Family = "count"  // base: unidad
)

// Unit es una unidad de medida del catálogo fijo (kg, ml, piece, ...).
type Unit string

// Unidades de masa.
const (
	UnitGram     Unit = "g"
	UnitKilogram Unit = "kg"
	UnitPound    Unit = "lb"
	UnitOunce    Unit = "oz"
)

// Unidades de volumen.
const (
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitGallon     Unit = "gal"
	UnitFluidOunce Unit = "fl_oz"
	UnitCup        Unit = "cup"
	UnitTablespoon Unit = "tbsp"
	UnitTeaspoon   Unit = "tsp"
)

// Unidades de conteo.
const (
	UnitUnit  Unit = "unit"
	UnitPiece Unit = "piece"
	UnitSlice Unit = "slice"
	UnitWhole Unit = "whole"
)

var unitFamilies = map[Unit]Family{
	UnitGram: FamilyMass, UnitKilogram: FamilyMass, UnitPound: FamilyMass, UnitOunce: FamilyMass,

	UnitMilliliter: FamilyVolume, UnitLiter: FamilyVolume, UnitGallon: FamilyVolume,
	UnitFluidOunce: FamilyVolume, UnitCup: FamilyVolume, UnitTablespoon: FamilyVolume, UnitTeaspoon: FamilyVolume,

	UnitUnit: FamilyCount, UnitPiece: FamilyCount, UnitSlice: FamilyCount, UnitWhole: FamilyCount,
}

// Factores de conversión a la unidad base de cada familia (g, ml, unit).
var unitFactors = map[Unit]decimal.Decimal{
	UnitGram:     decimal.NewFromInt(1),
	UnitKilogram: decimal.NewFromInt(1000),
	UnitPound:    decimal.NewFromFloat(453.592),
	UnitOunce:    decimal.NewFromFloat(28.3495),

	UnitMilliliter: decimal.NewFromInt(1),
	UnitLiter:      decimal.NewFromInt(1000),
	UnitGallon:     decimal.NewFromFloat(3785.41),
	UnitFluidOunce: decimal.NewFromFloat(29.5735),
	UnitCup:        decimal.NewFromFloat(236.588),
	UnitTablespoon: decimal.NewFromFloat(14.7868),
	UnitTeaspoon:   decimal.NewFromFloat(4.92892),

	UnitUnit:  decimal.NewFromInt(1),
	UnitPiece: decimal.NewFromInt(1),
	UnitSlice: decimal.NewFromInt(1),
	UnitWhole: decimal.NewFromInt(1),
}

// ParseUnit valida un código de unidad recibido desde fuera (API, DB).
func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if _, ok := unitFamilies[u]; !ok {
		return "", domain.ErrUnknownUnit
	}
	return u, nil
}

// IsValid indica si la unidad pertenece al catálogo.
func (u Unit) IsValid() bool {
	_, ok := unitFamilies[u]
	return ok
}

// Family devuelve la familia de la unidad (vacía si es desconocida).
func (u Unit) Family() Family {
	return unitFamilies[u]
}

// CompatibleWith indica si ambas unidades pertenecen a la misma familia.
func (u Unit) CompatibleWith(other Unit) bool {
	fu, ok1 := unitFamilies[u]
	fo, ok2 := unitFamilies[other]
	return ok1 && ok2 && fu == fo
}

// Units devuelve el catálogo completo de unidades (para listados de API).
func Units() []Unit {
	out := make([]Unit, 0, len(unitFamilies))
	for u := range unitFamilies {
		out = append(out, u)
	}
	return out
}

// Convert convierte un monto entre unidades compatibles pasando por la unidad
// base de la familia: amount * factor(from) / factor(to).
// Determinista y sin efectos secundarios; falla con ErrIncompatibleUnits si
// las familias difieren y con ErrUnknownUnit si alguna unidad no existe.
func Convert(amount decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	if !from.IsValid() || !to.IsValid() {
		return decimal.Zero, domain.ErrUnknownUnit
	}
	if unitFamilies[from] != unitFamilies[to] {
		return decimal.Zero, domain.ErrIncompatibleUnits
	}
	if from == to {
		return amount, nil
	}
	return amount.Mul(unitFactors[from]).Div(unitFactors[to]), nil
}
