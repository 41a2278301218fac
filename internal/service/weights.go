package service

import (
	"sort"
	"strings"
)

// itemWeightTable maps normalized ingredient names to the expected gram weight
// of one generic item ("1 whole", "2 pieces", ...).
var itemWeightTable = map[string]float64{
	"egg":            50,
	"egg white":      33,
	"egg yolk":       17,
	"cherry tomato":  15,
	"tomato":         125,
	"potato":         170,
	"sweet potato":   130,
	"carrot":         60,
	"onion":          110,
	"shallot":        30,
	"scallion":       15,
	"leek":           90,
	"garlic":         5,
	"ginger":         15,
	"bell pepper":    120,
	"chili":          15,
	"cucumber":       300,
	"zucchini":       195,
	"eggplant":       450,
	"avocado":        200,
	"mushroom":       20,
	"celery":         40,
	"lime":           65,
	"lemon":          100,
	"orange":         130,
	"apple":          180,
	"banana":         120,
	"pear":           180,
	"peach":          150,
	"strawberry":     12,
	"date":           8,
	"fig":            40,
	"olive":          4,
	"anchovy":        4,
	"chicken breast": 175,
	"chicken thigh":  120,
	"bacon":          30,
	"sausage":        75,
	"tortilla":       45,
	"pita":           60,
	"bread":          40,
	"bay leaf":       0.2,
	"cinnamon stick": 4,
}

// itemWeightDescriptors are prefix/suffix words stripped before retrying an
// exact match ("frozen peas" -> "peas").
var itemWeightDescriptors = []string{
	"fresh", "frozen", "organic", "boneless", "skinless", "raw", "cooked",
}

// reverseContainmentMinLen gates the reverse-containment fallback; shorter
// inputs match too many table keys.
const reverseContainmentMinLen = 3

type WeightEstimator struct {
	normalizer   *Normalizer
	table        map[string]float64
	keysByLength []string
}

func NewWeightEstimator(normalizer *Normalizer) *WeightEstimator {
	return NewWeightEstimatorWithTable(normalizer, itemWeightTable)
}

func NewWeightEstimatorWithTable(normalizer *Normalizer, table map[string]float64) *WeightEstimator {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	// Longest key first so "cherry tomato" beats "tomato". Explicit sort; map
	// iteration order must never decide a match.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return &WeightEstimator{normalizer: normalizer, table: table, keysByLength: keys}
}

// EstimateGrams maps an ingredient name to the expected weight of one generic
// item. ok=false means no table entry applies; the caller picks a default mass.
func (w *WeightEstimator) EstimateGrams(name string) (float64, bool) {
	key := w.normalizer.Normalize(name)
	if key == "" {
		return 0, false
	}

	if grams, ok := w.table[key]; ok {
		return grams, true
	}

	if stripped := stripDescriptorAffixes(key); stripped != key && stripped != "" {
		if grams, ok := w.table[stripped]; ok {
			return grams, true
		}
	}

	for _, tableKey := range w.keysByLength {
		if strings.Contains(key, tableKey) {
			return w.table[tableKey], true
		}
	}

	// Last resort: a table key containing the input, for short canonical
	// names like "egg". Gated at 3 characters.
	if len(key) >= reverseContainmentMinLen {
		for _, tableKey := range w.keysByLength {
			if strings.Contains(tableKey, key) {
				return w.table[tableKey], true
			}
		}
	}

	return 0, false
}

func stripDescriptorAffixes(key string) string {
	tokens := strings.Fields(key)
	for len(tokens) > 0 && isDescriptor(tokens[0]) {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && isDescriptor(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

func isDescriptor(tok string) bool {
	for _, d := range itemWeightDescriptors {
		if tok == d {
			return true
		}
	}
	return false
}
