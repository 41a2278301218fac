package service_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/saadjs/platecalc/internal/provider/usda"
	"github.com/saadjs/platecalc/internal/service"
)

type fakeSearcher struct {
	match usda.FoodMatch
	found bool
	err   error
	calls int
}

func (f *fakeSearcher) SearchFood(ctx context.Context, name string) (usda.FoodMatch, bool, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return usda.FoodMatch{}, false, err
	}
	return f.match, f.found, f.err
}

func TestLookupScalesMatchToQuantity(t *testing.T) {
	t.Parallel()
	searcher := &fakeSearcher{
		match: usda.FoodMatch{FDCID: 171077, Description: "Chicken, broilers or fryers, breast", CaloriesKcal: 165, ProteinG: 31, FatG: 3.6},
		found: true,
	}
	lookup := service.NewExternalLookup(searcher, nil, time.Second)

	res, found, err := lookup.Lookup(context.Background(), "chicken breast", 250)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !found {
		t.Fatalf("expected match")
	}
	if res.SourceID != 171077 {
		t.Fatalf("expected fdc id carried through, got %d", res.SourceID)
	}
	if res.PerHundredG.CaloriesKcal != 165 {
		t.Fatalf("expected per-100g basis preserved, got %+v", res.PerHundredG)
	}
	if math.Abs(res.VectorAtQuantity.CaloriesKcal-412.5) > 0.01 {
		t.Fatalf("expected 412.5 kcal at 250 g, got %.2f", res.VectorAtQuantity.CaloriesKcal)
	}
	if math.Abs(res.VectorAtQuantity.ProteinG-77.5) > 0.01 {
		t.Fatalf("expected 77.5 g protein at 250 g, got %.2f", res.VectorAtQuantity.ProteinG)
	}
}

func TestLookupMissIsNotAnError(t *testing.T) {
	t.Parallel()
	lookup := service.NewExternalLookup(&fakeSearcher{found: false}, nil, time.Second)
	_, found, err := lookup.Lookup(context.Background(), "dragon fruit pulp", 100)
	if err != nil {
		t.Fatalf("expected nil error on miss, got %v", err)
	}
	if found {
		t.Fatalf("expected no match")
	}
}

func TestLookupWrapsTransportFailures(t *testing.T) {
	t.Parallel()
	lookup := service.NewExternalLookup(&fakeSearcher{err: fmt.Errorf("connection refused")}, nil, time.Second)
	_, found, err := lookup.Lookup(context.Background(), "garlic", 100)
	if found {
		t.Fatalf("expected no match on failure")
	}
	if !errors.Is(err, service.ErrLookupUnavailable) {
		t.Fatalf("expected ErrLookupUnavailable, got %v", err)
	}
}

func TestLookupHonorsCancelledContext(t *testing.T) {
	t.Parallel()
	lookup := service.NewExternalLookup(&fakeSearcher{found: true}, nil, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, found, err := lookup.Lookup(ctx, "garlic", 100)
	if found {
		t.Fatalf("expected no match after cancellation")
	}
	if !errors.Is(err, service.ErrLookupUnavailable) {
		t.Fatalf("expected ErrLookupUnavailable, got %v", err)
	}
}
