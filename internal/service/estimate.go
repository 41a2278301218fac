package service

import (
	"strings"

	"github.com/saadjs/platecalc/internal/model"
)

// DefaultItemGrams is the mass assumed for one counted item when the weight
// table has no entry.
const DefaultItemGrams = 100

// categoryProfile pairs a keyword group with a representative per-100g
// profile. Matching walks the list in order; the first hit wins, so specific
// groups must precede broader ones.
type categoryProfile struct {
	name     string
	keywords []string
	per100g  model.NutrientVector
}

var defaultCategoryProfiles = []categoryProfile{
	{
		name:     "oil/fat",
		keywords: []string{"oil", "butter", "ghee", "lard", "margarine", "dripping"},
		per100g:  model.NutrientVector{CaloriesKcal: 884, ProteinG: 0, CarbsG: 0, FatG: 100, FiberG: 0, SugarG: 0, SodiumMg: 2},
	},
	{
		name:     "sauce/paste",
		keywords: []string{"sauce", "paste", "ketchup", "mayonnaise", "mustard", "pesto", "chutney"},
		per100g:  model.NutrientVector{CaloriesKcal: 120, ProteinG: 2, CarbsG: 15, FatG: 5, FiberG: 1, SugarG: 10, SodiumMg: 800},
	},
	{
		name:     "spice/herb",
		keywords: []string{"spice", "herb", "seasoning", "powder", "salt", "cumin", "paprika", "oregano", "basil", "thyme", "rosemary", "cinnamon", "turmeric", "cilantro", "parsley"},
		per100g:  model.NutrientVector{CaloriesKcal: 250, ProteinG: 10, CarbsG: 50, FatG: 5, FiberG: 25, SugarG: 3, SodiumMg: 50},
	},
	{
		name:     "vegetable",
		keywords: []string{"tomato", "onion", "garlic", "carrot", "spinach", "broccoli", "lettuce", "cabbage", "cauliflower", "pea", "zucchini", "eggplant", "cucumber", "celery", "kale", "leek", "pepper", "mushroom", "vegetable"},
		per100g:  model.NutrientVector{CaloriesKcal: 35, ProteinG: 2, CarbsG: 7, FatG: 0.3, FiberG: 2.5, SugarG: 3, SodiumMg: 20},
	},
	{
		name:     "fruit",
		keywords: []string{"apple", "banana", "berry", "mango", "orange", "lemon", "lime", "grape", "pear", "peach", "pineapple", "melon", "plum", "fruit"},
		per100g:  model.NutrientVector{CaloriesKcal: 60, ProteinG: 0.8, CarbsG: 15, FatG: 0.3, FiberG: 2, SugarG: 12, SodiumMg: 2},
	},
	{
		name:     "meat",
		keywords: []string{"chicken", "beef", "pork", "lamb", "turkey", "duck", "bacon", "sausage", "ham", "steak", "meat"},
		per100g:  model.NutrientVector{CaloriesKcal: 220, ProteinG: 26, CarbsG: 0, FatG: 13, FiberG: 0, SugarG: 0, SodiumMg: 80},
	},
	{
		name:     "fish/seafood",
		keywords: []string{"fish", "salmon", "tuna", "shrimp", "cod", "crab", "squid", "anchovy", "sardine", "mackerel", "seafood", "mussel", "clam"},
		per100g:  model.NutrientVector{CaloriesKcal: 150, ProteinG: 22, CarbsG: 0, FatG: 6, FiberG: 0, SugarG: 0, SodiumMg: 90},
	},
}

// genericProfile is the resolution of last resort: a rough average across
// whole-food staples, deliberately conservative.
var genericProfile = model.NutrientVector{CaloriesKcal: 100, ProteinG: 4, CarbsG: 12, FatG: 4, FiberG: 1.5, SugarG: 4, SodiumMg: 150}

// Estimator produces a heuristic nutrient vector for ingredients no other
// tier could resolve. Estimate is total: it never fails.
type Estimator struct {
	normalizer       *Normalizer
	weights          *WeightEstimator
	categories       []categoryProfile
	defaultItemGrams float64
}

func NewEstimator(normalizer *Normalizer, weights *WeightEstimator) *Estimator {
	return &Estimator{
		normalizer:       normalizer,
		weights:          weights,
		categories:       defaultCategoryProfiles,
		defaultItemGrams: DefaultItemGrams,
	}
}

// SetDefaultItemGrams overrides the fallback mass for one counted item.
func (e *Estimator) SetDefaultItemGrams(grams float64) {
	if grams > 0 {
		e.defaultItemGrams = grams
	}
}

// Estimate classifies the normalized name against the ordered category list
// and scales the first matching per-100g profile to the requested quantity.
func (e *Estimator) Estimate(name string, quantity float64, unit string) model.NutrientVector {
	key := e.normalizer.Normalize(name)
	grams := e.GramsFor(key, quantity, unit)
	profile := genericProfile
	for _, c := range e.categories {
		if matchesCategory(key, c.keywords) {
			profile = c.per100g
			break
		}
	}
	return profile.Scale(grams / 100)
}

// GramsFor resolves a line's quantity onto grams: unit conversion when the
// dimension allows it, item-weight lookup for counted units, default mass last.
func (e *Estimator) GramsFor(normalizedName string, quantity float64, unit string) float64 {
	if grams, ok := ToGrams(quantity, unit); ok {
		return grams
	}
	if grams, ok := e.weights.EstimateGrams(normalizedName); ok {
		return grams * quantity
	}
	return e.defaultItemGrams * quantity
}

func matchesCategory(key string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}
