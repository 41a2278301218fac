package service

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saadjs/platecalc/internal/model"
)

const (
	SourceCache    = "cache"
	SourceExternal = "external"
	SourceEstimate = "estimate"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"

	// Share of lines that must resolve via cache or external lookup.
	highConfidenceShare   = 0.9
	mediumConfidenceShare = 0.6

	defaultMaxConcurrent = 4
)

type ResolutionResult struct {
	Line      model.IngredientLine `json:"line"`
	Grams     float64              `json:"grams"`
	Nutrients model.NutrientVector `json:"nutrients"`
	Source    string               `json:"source"`
}

type RecipeNutritionResult struct {
	Servings   float64              `json:"servings"`
	Total      model.NutrientVector `json:"total"`
	PerServing model.NutrientVector `json:"per_serving"`
	Breakdown  []ResolutionResult   `json:"breakdown"`
	Confidence string               `json:"confidence"`
}

// NutritionResolver orchestrates the resolution tiers: cache, then external
// lookup when enabled, then the estimator. Cache and Lookup may be nil; the
// estimator alone is enough to keep ComputeRecipeNutrition total.
type NutritionResolver struct {
	Cache         CacheStore
	Lookup        *ExternalLookup
	Normalizer    *Normalizer
	Estimator     *Estimator
	Logger        *zap.Logger
	MaxConcurrent int
}

func NewNutritionResolver(cache CacheStore, lookup *ExternalLookup, normalizer *Normalizer, estimator *Estimator, logger *zap.Logger) *NutritionResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NutritionResolver{
		Cache:         cache,
		Lookup:        lookup,
		Normalizer:    normalizer,
		Estimator:     estimator,
		Logger:        logger,
		MaxConcurrent: defaultMaxConcurrent,
	}
}

// ComputeRecipeNutrition resolves every ingredient line and aggregates the
// per-serving profile. Total function: it never returns an error, and its
// worst case is a fully estimated, low-confidence result. Lines are resolved
// concurrently but accumulated in input order, so results are deterministic
// whenever the external lookup is disabled. Cancelling ctx forces unresolved
// lines through the estimator rather than blocking.
func (r *NutritionResolver) ComputeRecipeNutrition(ctx context.Context, lines []model.IngredientLine, servings float64, useExternalLookup bool) RecipeNutritionResult {
	if ctx == nil {
		ctx = context.Background()
	}
	if servings <= 0 {
		servings = 1
	}
	start := time.Now()

	breakdown := make([]ResolutionResult, len(lines))
	limit := r.MaxConcurrent
	if limit <= 0 {
		limit = defaultMaxConcurrent
	}
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i := range lines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			breakdown[i] = r.resolveLine(ctx, lines[i], useExternalLookup)
		}(i)
	}
	wg.Wait()

	var total model.NutrientVector
	resolved := 0
	for _, item := range breakdown {
		total = total.Add(item.Nutrients)
		if item.Source != SourceEstimate {
			resolved++
		}
	}

	result := RecipeNutritionResult{
		Servings:   servings,
		Total:      total,
		PerServing: roundPerServing(total.Scale(1 / servings)),
		Breakdown:  breakdown,
		Confidence: confidenceTier(resolved, len(lines)),
	}

	r.Logger.Debug("computed recipe nutrition",
		zap.Int("lines", len(lines)),
		zap.Int("resolved", resolved),
		zap.String("confidence", result.Confidence),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result
}

func (r *NutritionResolver) resolveLine(ctx context.Context, line model.IngredientLine, useExternalLookup bool) ResolutionResult {
	normalized := r.Normalizer.Normalize(line.Name)
	grams := r.Estimator.GramsFor(normalized, line.Quantity, line.Unit)
	out := ResolutionResult{Line: line, Grams: grams}

	// An expired caller deadline forces the remaining lines straight through
	// the estimator so the computation stays time-bounded.
	if ctx.Err() == nil {
		if r.Cache != nil {
			entry, found, err := r.Cache.Get(normalized)
			if err != nil {
				r.Logger.Warn("nutrition cache read failed",
					zap.String("name", normalized),
					zap.Error(err),
				)
			} else if found {
				out.Nutrients = entry.PerHundredG.Scale(grams / 100)
				out.Source = SourceCache
				return out
			}
		}

		if useExternalLookup && r.Lookup != nil {
			res, found, err := r.Lookup.Lookup(ctx, normalized, grams)
			if err == nil && found {
				out.Nutrients = res.VectorAtQuantity
				out.Source = SourceExternal
				r.writeThrough(normalized, res)
				return out
			}
			// Transport failures and misses both fall through to the
			// estimator; ErrLookupUnavailable never crosses this boundary.
		}
	}

	out.Nutrients = r.Estimator.Estimate(line.Name, line.Quantity, line.Unit)
	out.Source = SourceEstimate
	return out
}

func (r *NutritionResolver) writeThrough(normalized string, res LookupResult) {
	if r.Cache == nil {
		return
	}
	err := r.Cache.Put(model.CacheEntry{
		NormalizedName: normalized,
		PerHundredG:    res.PerHundredG,
		Provenance:     ProvenanceExternal,
		SourceID:       res.SourceID,
		LastUpdated:    time.Now(),
	})
	if err != nil {
		r.Logger.Warn("nutrition cache write failed",
			zap.String("name", normalized),
			zap.Error(err),
		)
	}
}

func confidenceTier(resolved, lineCount int) string {
	if lineCount == 0 {
		// Empty recipes report low by convention; there is nothing to trust.
		return ConfidenceLow
	}
	share := float64(resolved) / float64(lineCount)
	switch {
	case share >= highConfidenceShare:
		return ConfidenceHigh
	case share >= mediumConfidenceShare:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// roundPerServing applies the inherited presentation policy: calories and
// sodium as integers, everything else to one decimal place.
func roundPerServing(v model.NutrientVector) model.NutrientVector {
	return model.NutrientVector{
		CaloriesKcal: math.Round(v.CaloriesKcal),
		ProteinG:     round1(v.ProteinG),
		CarbsG:       round1(v.CarbsG),
		FatG:         round1(v.FatG),
		FiberG:       round1(v.FiberG),
		SugarG:       round1(v.SugarG),
		SodiumMg:     math.Round(v.SodiumMg),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
