package model

import "time"

// NutrientVector holds one nutrient profile. Values are per 100 g of edible
// mass unless a function documents that it has scaled them.
type NutrientVector struct {
	CaloriesKcal float64 `json:"calories_kcal"`
	ProteinG     float64 `json:"protein_g"`
	CarbsG       float64 `json:"carbs_g"`
	FatG         float64 `json:"fat_g"`
	FiberG       float64 `json:"fiber_g"`
	SugarG       float64 `json:"sugar_g"`
	SodiumMg     float64 `json:"sodium_mg"`
}

func (v NutrientVector) Add(o NutrientVector) NutrientVector {
	return NutrientVector{
		CaloriesKcal: v.CaloriesKcal + o.CaloriesKcal,
		ProteinG:     v.ProteinG + o.ProteinG,
		CarbsG:       v.CarbsG + o.CarbsG,
		FatG:         v.FatG + o.FatG,
		FiberG:       v.FiberG + o.FiberG,
		SugarG:       v.SugarG + o.SugarG,
		SodiumMg:     v.SodiumMg + o.SodiumMg,
	}
}

func (v NutrientVector) Scale(factor float64) NutrientVector {
	return NutrientVector{
		CaloriesKcal: v.CaloriesKcal * factor,
		ProteinG:     v.ProteinG * factor,
		CarbsG:       v.CarbsG * factor,
		FatG:         v.FatG * factor,
		FiberG:       v.FiberG * factor,
		SugarG:       v.SugarG * factor,
		SodiumMg:     v.SodiumMg * factor,
	}
}

func (v NutrientVector) IsZero() bool {
	return v == NutrientVector{}
}

// IngredientLine is one free-text ingredient row as authored upstream.
// Quantity must be > 0 and Name non-empty by the time it reaches the engine.
type IngredientLine struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes,omitempty"`
}

type CacheEntry struct {
	NormalizedName string         `json:"normalized_name"`
	PerHundredG    NutrientVector `json:"per_100g"`
	Provenance     string         `json:"provenance"`
	SourceID       int64          `json:"source_id,omitempty"`
	LastUpdated    time.Time      `json:"last_updated"`
}
