package service_test

import (
	"errors"
	"math"
	"testing"

	"github.com/saadjs/platecalc/internal/service"
)

func TestCombineSameDimensionPrefersFinerUnit(t *testing.T) {
	t.Parallel()
	out, err := service.Combine(500, "g", 1, "kg")
	if err != nil {
		t.Fatalf("combine weights: %v", err)
	}
	if out.Quantity != 1500 || out.Unit != "g" {
		t.Fatalf("expected 1500 g, got %g %s", out.Quantity, out.Unit)
	}
}

func TestCombineSameUnitKeepsUnit(t *testing.T) {
	t.Parallel()
	out, err := service.Combine(2, "kg", 3, "kg")
	if err != nil {
		t.Fatalf("combine kg: %v", err)
	}
	if out.Quantity != 5 || out.Unit != "kg" {
		t.Fatalf("expected 5 kg, got %g %s", out.Quantity, out.Unit)
	}
}

func TestCombineNeverReportsMilligrams(t *testing.T) {
	t.Parallel()
	out, err := service.Combine(500, "mg", 2, "g")
	if err != nil {
		t.Fatalf("combine mg with g: %v", err)
	}
	if out.Unit != "g" {
		t.Fatalf("expected unit g, got %s", out.Unit)
	}
	if math.Abs(out.Quantity-2.5) > 1e-9 {
		t.Fatalf("expected 2.5 g, got %g", out.Quantity)
	}
}

func TestCombineVolumePromotesToLitres(t *testing.T) {
	t.Parallel()
	out, err := service.Combine(800, "ml", 0.5, "l")
	if err != nil {
		t.Fatalf("combine volumes: %v", err)
	}
	if out.Unit != "l" {
		t.Fatalf("expected unit l, got %s", out.Unit)
	}
	if math.Abs(out.Quantity-1.3) > 1e-9 {
		t.Fatalf("expected 1.3 l, got %g", out.Quantity)
	}
}

func TestCombineMixedDimensionsRejected(t *testing.T) {
	t.Parallel()
	_, err := service.Combine(100, "g", 100, "ml")
	if !errors.Is(err, service.ErrIncompatibleUnits) {
		t.Fatalf("expected ErrIncompatibleUnits, got %v", err)
	}
}

func TestCombineCountWithWeightRejected(t *testing.T) {
	t.Parallel()
	_, err := service.Combine(2, "whole", 100, "g")
	if !errors.Is(err, service.ErrIncompatibleUnits) {
		t.Fatalf("expected ErrIncompatibleUnits, got %v", err)
	}
}

func TestCombineUnknownUnitsOnlyWithThemselves(t *testing.T) {
	t.Parallel()
	out, err := service.Combine(1, "dollop", 2, "dollop")
	if err != nil {
		t.Fatalf("combine matching unknown units: %v", err)
	}
	if out.Quantity != 3 || out.Unit != "dollop" {
		t.Fatalf("expected 3 dollop, got %g %s", out.Quantity, out.Unit)
	}

	if _, err := service.Combine(1, "dollop", 2, "splash"); !errors.Is(err, service.ErrIncompatibleUnits) {
		t.Fatalf("expected ErrIncompatibleUnits for mismatched unknowns, got %v", err)
	}
	if _, err := service.Combine(1, "dollop", 2, "g"); !errors.Is(err, service.ErrIncompatibleUnits) {
		t.Fatalf("expected ErrIncompatibleUnits for unknown vs known, got %v", err)
	}
}

func TestCombineCountAliases(t *testing.T) {
	t.Parallel()
	out, err := service.Combine(2, "pieces", 1, "each")
	if err != nil {
		t.Fatalf("combine count aliases: %v", err)
	}
	if out.Quantity != 3 || out.Unit != "whole" {
		t.Fatalf("expected 3 whole, got %g %s", out.Quantity, out.Unit)
	}
}

func TestToGramsConvertsWeightAndVolume(t *testing.T) {
	t.Parallel()
	if grams, ok := service.ToGrams(1, "kg"); !ok || grams != 1000 {
		t.Fatalf("expected 1000 g from 1 kg, got %g ok=%v", grams, ok)
	}
	if grams, ok := service.ToGrams(2, "tbsp"); !ok || math.Abs(grams-29.5735295625) > 1e-9 {
		t.Fatalf("expected ~29.57 g from 2 tbsp, got %g ok=%v", grams, ok)
	}
	// Millilitres count as grams at density 1.
	if grams, ok := service.ToGrams(250, "ml"); !ok || grams != 250 {
		t.Fatalf("expected 250 g from 250 ml, got %g ok=%v", grams, ok)
	}
}

func TestToGramsCountQuantitiesNotConvertible(t *testing.T) {
	t.Parallel()
	if _, ok := service.ToGrams(2, "whole"); ok {
		t.Fatalf("expected count unit to be non-convertible")
	}
	if _, ok := service.ToGrams(2, "cloves"); ok {
		t.Fatalf("expected unknown unit to be non-convertible")
	}
	if _, ok := service.ToGrams(3, ""); ok {
		t.Fatalf("expected empty unit to be non-convertible")
	}
}

func TestIsCountUnit(t *testing.T) {
	t.Parallel()
	cases := []struct {
		unit string
		want bool
	}{
		{"whole", true},
		{"pieces", true},
		{"", true},
		{"dollop", true},
		{"g", false},
		{"Grams", false},
		{" ml ", false},
		{"TBSP", false},
	}
	for _, tc := range cases {
		if got := service.IsCountUnit(tc.unit); got != tc.want {
			t.Fatalf("IsCountUnit(%q) = %v, want %v", tc.unit, got, tc.want)
		}
	}
}

func TestToBaseUnitUnknownPassesThrough(t *testing.T) {
	t.Parallel()
	base := service.ToBaseUnit(3, "handful")
	if base.WasConverted {
		t.Fatalf("expected unknown unit to pass through unconverted")
	}
	if base.Amount != 3 || base.Dimension != service.DimensionCount {
		t.Fatalf("unexpected base quantity: %+v", base)
	}
}

func TestToBaseUnitAliasesShareDescriptor(t *testing.T) {
	t.Parallel()
	a := service.ToBaseUnit(1, "tablespoon")
	b := service.ToBaseUnit(1, "tbsp")
	if a != b {
		t.Fatalf("alias mismatch: %+v vs %+v", a, b)
	}
	if math.Abs(a.Amount-14.78676478125) > 1e-9 {
		t.Fatalf("expected 1 tbsp = 14.787 ml, got %g", a.Amount)
	}
}
