package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/saadjs/platecalc/internal/model"
	"github.com/saadjs/platecalc/internal/provider/usda"
)

// ErrLookupUnavailable wraps transport and timeout failures from the external
// nutrition database. It never escapes the resolution pipeline; the
// orchestrator converts it to a miss and falls through to the estimator.
var ErrLookupUnavailable = errors.New("nutrition lookup unavailable")

const defaultLookupTimeout = 8 * time.Second

// foodSearcher is what ExternalLookup needs from a provider client.
type foodSearcher interface {
	SearchFood(ctx context.Context, name string) (usda.FoodMatch, bool, error)
}

type ExternalLookup struct {
	client  foodSearcher
	logger  *zap.Logger
	timeout time.Duration
}

func NewExternalLookup(client foodSearcher, logger *zap.Logger, timeout time.Duration) *ExternalLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &ExternalLookup{client: client, logger: logger, timeout: timeout}
}

type LookupResult struct {
	PerHundredG      model.NutrientVector
	VectorAtQuantity model.NutrientVector
	SourceID         int64
	Description      string
}

// Lookup resolves a normalized name against the external database and scales
// the per-100g match to the given gram quantity. ok=false means no match;
// a non-nil error is always ErrLookupUnavailable-wrapped.
func (l *ExternalLookup) Lookup(ctx context.Context, normalizedName string, grams float64) (LookupResult, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	match, found, err := l.client.SearchFood(ctx, normalizedName)
	if err != nil {
		l.logger.Debug("external nutrition lookup failed",
			zap.String("name", normalizedName),
			zap.Error(err),
		)
		return LookupResult{}, false, fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	}
	if !found {
		return LookupResult{}, false, nil
	}

	per100 := model.NutrientVector{
		CaloriesKcal: match.CaloriesKcal,
		ProteinG:     match.ProteinG,
		CarbsG:       match.CarbsG,
		FatG:         match.FatG,
		FiberG:       match.FiberG,
		SugarG:       match.SugarG,
		SodiumMg:     match.SodiumMg,
	}
	return LookupResult{
		PerHundredG:      per100,
		VectorAtQuantity: per100.Scale(grams / 100),
		SourceID:         match.FDCID,
		Description:      match.Description,
	}, true, nil
}
