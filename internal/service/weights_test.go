package service_test

import (
	"testing"

	"github.com/saadjs/platecalc/internal/service"
)

func TestEstimateGramsExactMatch(t *testing.T) {
	t.Parallel()
	w := service.NewWeightEstimator(service.NewNormalizer())
	grams, ok := w.EstimateGrams("egg")
	if !ok || grams != 50 {
		t.Fatalf("expected 50 g for egg, got %g ok=%v", grams, ok)
	}
}

func TestEstimateGramsNormalizesFirst(t *testing.T) {
	t.Parallel()
	w := service.NewWeightEstimator(service.NewNormalizer())
	grams, ok := w.EstimateGrams("2 large Eggs")
	if !ok || grams != 50 {
		t.Fatalf("expected 50 g for normalized eggs, got %g ok=%v", grams, ok)
	}
	grams, ok = w.EstimateGrams("capsicum")
	if !ok || grams != 120 {
		t.Fatalf("expected capsicum to resolve via bell pepper at 120 g, got %g ok=%v", grams, ok)
	}
}

func TestEstimateGramsLongestKeyWins(t *testing.T) {
	t.Parallel()
	w := service.NewWeightEstimator(service.NewNormalizer())
	grams, ok := w.EstimateGrams("cherry tomato")
	if !ok || grams != 15 {
		t.Fatalf("expected cherry tomato at 15 g, got %g ok=%v", grams, ok)
	}
	grams, ok = w.EstimateGrams("tomato")
	if !ok || grams != 125 {
		t.Fatalf("expected tomato at 125 g, got %g ok=%v", grams, ok)
	}
}

func TestEstimateGramsSubstringMatch(t *testing.T) {
	t.Parallel()
	w := service.NewWeightEstimator(service.NewNormalizer())
	grams, ok := w.EstimateGrams("roma tomato")
	if !ok || grams != 125 {
		t.Fatalf("expected substring match on tomato, got %g ok=%v", grams, ok)
	}
}

func TestEstimateGramsReverseContainment(t *testing.T) {
	t.Parallel()
	w := service.NewWeightEstimatorWithTable(service.NewNormalizer(), map[string]float64{
		"sweet potato": 130,
	})
	// "potato" is contained in the table key; reverse containment resolves it.
	grams, ok := w.EstimateGrams("potato")
	if !ok || grams != 130 {
		t.Fatalf("expected reverse containment at 130 g, got %g ok=%v", grams, ok)
	}
}

func TestEstimateGramsReverseContainmentGatedByLength(t *testing.T) {
	t.Parallel()
	w := service.NewWeightEstimatorWithTable(service.NewNormalizer(), map[string]float64{
		"pear": 180,
	})
	if _, ok := w.EstimateGrams("ea"); ok {
		t.Fatalf("expected two-character input to miss")
	}
}

func TestEstimateGramsMiss(t *testing.T) {
	t.Parallel()
	w := service.NewWeightEstimator(service.NewNormalizer())
	if _, ok := w.EstimateGrams("xanthan gum"); ok {
		t.Fatalf("expected miss for unlisted ingredient")
	}
	if _, ok := w.EstimateGrams(""); ok {
		t.Fatalf("expected miss for empty name")
	}
}
