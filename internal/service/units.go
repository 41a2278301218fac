package service

import (
	"errors"
	"strings"
)

type UnitDimension string

const (
	DimensionWeight UnitDimension = "weight"
	DimensionVolume UnitDimension = "volume"
	DimensionCount  UnitDimension = "count"
)

// ErrIncompatibleUnits is returned by Combine when the two quantities live in
// different dimensions. Recoverable; the caller decides what to do with the items.
var ErrIncompatibleUnits = errors.New("incompatible unit dimensions")

// UnitDescriptor maps a canonical unit and its aliases onto a base unit:
// grams for weight, millilitres for volume. Count units carry factor 1.
type UnitDescriptor struct {
	Canonical string
	Aliases   []string
	Dimension UnitDimension
	ToBase    float64
}

var unitDescriptors = []UnitDescriptor{
	// weight (base = g)
	{Canonical: "mg", Aliases: []string{"milligram", "milligrams"}, Dimension: DimensionWeight, ToBase: 0.001},
	{Canonical: "g", Aliases: []string{"gram", "grams", "gr"}, Dimension: DimensionWeight, ToBase: 1},
	{Canonical: "kg", Aliases: []string{"kilogram", "kilograms", "kilo", "kilos"}, Dimension: DimensionWeight, ToBase: 1000},
	{Canonical: "oz", Aliases: []string{"ounce", "ounces"}, Dimension: DimensionWeight, ToBase: 28.349523125},
	{Canonical: "lb", Aliases: []string{"lbs", "pound", "pounds"}, Dimension: DimensionWeight, ToBase: 453.59237},

	// volume (base = ml)
	{Canonical: "ml", Aliases: []string{"millilitre", "millilitres", "milliliter", "milliliters"}, Dimension: DimensionVolume, ToBase: 1},
	{Canonical: "l", Aliases: []string{"litre", "litres", "liter", "liters"}, Dimension: DimensionVolume, ToBase: 1000},
	{Canonical: "tsp", Aliases: []string{"teaspoon", "teaspoons"}, Dimension: DimensionVolume, ToBase: 4.92892159375},
	{Canonical: "tbsp", Aliases: []string{"tablespoon", "tablespoons", "tbs"}, Dimension: DimensionVolume, ToBase: 14.78676478125},
	{Canonical: "cup", Aliases: []string{"cups"}, Dimension: DimensionVolume, ToBase: 236.5882365},
	{Canonical: "fl-oz", Aliases: []string{"fl oz", "floz", "fluid ounce", "fluid ounces"}, Dimension: DimensionVolume, ToBase: 29.5735295625},

	// generic count units
	{Canonical: "whole", Aliases: []string{"piece", "pieces", "each", "item", "items", "unit", "units"}, Dimension: DimensionCount, ToBase: 1},
}

var unitIndex = buildUnitIndex()

func buildUnitIndex() map[string]*UnitDescriptor {
	idx := make(map[string]*UnitDescriptor)
	for i := range unitDescriptors {
		d := &unitDescriptors[i]
		idx[d.Canonical] = d
		for _, alias := range d.Aliases {
			idx[alias] = d
		}
	}
	return idx
}

func resolveUnit(unit string) (*UnitDescriptor, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	d, ok := unitIndex[u]
	return d, ok
}

// IsCountUnit reports whether the unit resolves to the generic count dimension,
// including unknown units, which pass through unconverted.
func IsCountUnit(unit string) bool {
	d, ok := resolveUnit(unit)
	if !ok {
		return true
	}
	return d.Dimension == DimensionCount
}

type BaseQuantity struct {
	Amount       float64
	Dimension    UnitDimension
	WasConverted bool
}

// ToBaseUnit converts a quantity onto the dimension's base unit (g or ml).
// Unknown units pass through with dimension count and WasConverted=false,
// signaling the caller to fall back to the weight estimator.
func ToBaseUnit(quantity float64, unit string) BaseQuantity {
	d, ok := resolveUnit(unit)
	if !ok || d.Dimension == DimensionCount {
		return BaseQuantity{Amount: quantity, Dimension: DimensionCount, WasConverted: false}
	}
	return BaseQuantity{Amount: quantity * d.ToBase, Dimension: d.Dimension, WasConverted: true}
}

// ToGrams converts a weight or volume quantity to grams, treating millilitres
// as grams (density 1). Count quantities report ok=false.
func ToGrams(quantity float64, unit string) (float64, bool) {
	base := ToBaseUnit(quantity, unit)
	if base.Dimension == DimensionCount {
		return 0, false
	}
	return base.Amount, true
}

type CombinedQuantity struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Combine sums two quantities within one dimension and reports the result in
// the more human-readable of the two input units: grams win over milligrams,
// and litre-scale units win over ml-scale once the sum reaches a litre.
func Combine(q1 float64, u1 string, q2 float64, u2 string) (CombinedQuantity, error) {
	d1, ok1 := resolveUnit(u1)
	d2, ok2 := resolveUnit(u2)

	if !ok1 || !ok2 {
		// Unknown units only combine with themselves.
		c1 := strings.ToLower(strings.TrimSpace(u1))
		c2 := strings.ToLower(strings.TrimSpace(u2))
		if c1 != c2 || (ok1 != ok2) {
			return CombinedQuantity{}, ErrIncompatibleUnits
		}
		return CombinedQuantity{Quantity: q1 + q2, Unit: c1}, nil
	}
	if d1.Dimension != d2.Dimension {
		return CombinedQuantity{}, ErrIncompatibleUnits
	}
	if d1.Dimension == DimensionCount {
		return CombinedQuantity{Quantity: q1 + q2, Unit: d1.Canonical}, nil
	}

	base := q1*d1.ToBase + q2*d2.ToBase
	display := pickDisplayUnit(d1, d2, base)
	return CombinedQuantity{Quantity: base / display.ToBase, Unit: display.Canonical}, nil
}

func pickDisplayUnit(d1, d2 *UnitDescriptor, baseSum float64) *UnitDescriptor {
	if d1 == d2 {
		return d1
	}
	if d1.Dimension == DimensionWeight {
		// Never report in mg when a larger unit is available.
		if d1.Canonical == "mg" {
			return d2
		}
		if d2.Canonical == "mg" {
			return d1
		}
	}
	if d1.Dimension == DimensionVolume && baseSum >= 1000 {
		// Litre-scale once the sum crosses a litre.
		if d1.ToBase >= 1000 {
			return d1
		}
		if d2.ToBase >= 1000 {
			return d2
		}
	}
	// Otherwise the finer-grained unit reads better (1500 g, not 1.5 kg).
	if d1.ToBase <= d2.ToBase {
		return d1
	}
	return d2
}
