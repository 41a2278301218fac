package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/saadjs/platecalc/internal/model"
)

const (
	ProvenanceExternal = "external"
	ProvenanceManual   = "manual"
)

// CacheStore is the per-100g nutrient cache keyed by normalized name. Get
// misses are (zero, false, nil); Put is an idempotent last-write-wins upsert.
// The engine never deletes entries; eviction is an external concern.
type CacheStore interface {
	Get(normalizedName string) (model.CacheEntry, bool, error)
	Put(entry model.CacheEntry) error
}

type SQLiteCache struct {
	db *sql.DB
}

func NewSQLiteCache(db *sql.DB) *SQLiteCache {
	return &SQLiteCache{db: db}
}

func (c *SQLiteCache) Get(normalizedName string) (model.CacheEntry, bool, error) {
	var entry model.CacheEntry
	var updatedAt string
	err := c.db.QueryRow(`
SELECT normalized_name, calories_kcal, protein_g, carbs_g, fat_g, fiber_g, sugar_g, sodium_mg, provenance, source_id, updated_at
FROM nutrition_cache
WHERE normalized_name = ?
`, normalizedName).Scan(
		&entry.NormalizedName,
		&entry.PerHundredG.CaloriesKcal, &entry.PerHundredG.ProteinG, &entry.PerHundredG.CarbsG,
		&entry.PerHundredG.FatG, &entry.PerHundredG.FiberG, &entry.PerHundredG.SugarG, &entry.PerHundredG.SodiumMg,
		&entry.Provenance, &entry.SourceID, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return model.CacheEntry{}, false, nil
	}
	if err != nil {
		return model.CacheEntry{}, false, fmt.Errorf("lookup nutrition cache: %w", err)
	}
	entry.LastUpdated, _ = time.Parse(time.RFC3339, updatedAt)
	return entry, true, nil
}

func (c *SQLiteCache) Put(entry model.CacheEntry) error {
	if err := validateCacheEntry(entry); err != nil {
		return err
	}
	if entry.LastUpdated.IsZero() {
		entry.LastUpdated = time.Now()
	}
	_, err := c.db.Exec(`
INSERT INTO nutrition_cache(normalized_name, calories_kcal, protein_g, carbs_g, fat_g, fiber_g, sugar_g, sodium_mg, provenance, source_id, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(normalized_name) DO UPDATE SET
  calories_kcal=excluded.calories_kcal,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fat_g=excluded.fat_g,
  fiber_g=excluded.fiber_g,
  sugar_g=excluded.sugar_g,
  sodium_mg=excluded.sodium_mg,
  provenance=excluded.provenance,
  source_id=excluded.source_id,
  updated_at=excluded.updated_at
`, entry.NormalizedName,
		entry.PerHundredG.CaloriesKcal, entry.PerHundredG.ProteinG, entry.PerHundredG.CarbsG,
		entry.PerHundredG.FatG, entry.PerHundredG.FiberG, entry.PerHundredG.SugarG, entry.PerHundredG.SodiumMg,
		entry.Provenance, entry.SourceID, entry.LastUpdated.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert nutrition cache: %w", err)
	}
	return nil
}

func validateCacheEntry(entry model.CacheEntry) error {
	if strings.TrimSpace(entry.NormalizedName) == "" {
		return fmt.Errorf("cache entry name is required")
	}
	if entry.Provenance != ProvenanceExternal && entry.Provenance != ProvenanceManual {
		return fmt.Errorf("unsupported cache provenance %q", entry.Provenance)
	}
	v := entry.PerHundredG
	if v.CaloriesKcal < 0 || v.ProteinG < 0 || v.CarbsG < 0 || v.FatG < 0 || v.FiberG < 0 || v.SugarG < 0 || v.SodiumMg < 0 {
		return fmt.Errorf("cache entry nutrients must be >= 0")
	}
	return nil
}

func ListCacheEntries(db *sql.DB, limit int) ([]model.CacheEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`
SELECT normalized_name, calories_kcal, protein_g, carbs_g, fat_g, fiber_g, sugar_g, sodium_mg, provenance, source_id, updated_at
FROM nutrition_cache
ORDER BY normalized_name ASC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list nutrition cache: %w", err)
	}
	defer rows.Close()
	out := make([]model.CacheEntry, 0)
	for rows.Next() {
		var entry model.CacheEntry
		var updatedAt string
		if err := rows.Scan(
			&entry.NormalizedName,
			&entry.PerHundredG.CaloriesKcal, &entry.PerHundredG.ProteinG, &entry.PerHundredG.CarbsG,
			&entry.PerHundredG.FatG, &entry.PerHundredG.FiberG, &entry.PerHundredG.SugarG, &entry.PerHundredG.SodiumMg,
			&entry.Provenance, &entry.SourceID, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan nutrition cache: %w", err)
		}
		entry.LastUpdated, _ = time.Parse(time.RFC3339, updatedAt)
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nutrition cache: %w", err)
	}
	return out, nil
}

// PurgeCache is the CLI-side eviction hook; the resolution engine itself never
// deletes entries.
func PurgeCache(db *sql.DB, normalizedName string, purgeAll bool) (int64, error) {
	var (
		res sql.Result
		err error
	)
	switch {
	case purgeAll:
		res, err = db.Exec(`DELETE FROM nutrition_cache`)
	case strings.TrimSpace(normalizedName) != "":
		res, err = db.Exec(`DELETE FROM nutrition_cache WHERE normalized_name = ?`, strings.TrimSpace(normalizedName))
	default:
		return 0, fmt.Errorf("purge requires a name or the purge-all flag")
	}
	if err != nil {
		return 0, fmt.Errorf("purge nutrition cache: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge nutrition cache rows affected: %w", err)
	}
	return affected, nil
}

type seedEntry struct {
	Name     string               `json:"name"`
	Per100G  model.NutrientVector `json:"per_100g"`
	SourceID int64                `json:"source_id,omitempty"`
}

// SeedCache loads a curated JSON dataset of per-100g vectors into the cache
// with provenance "manual". Names are normalized before keying; later entries
// win when two names collapse to the same key.
func SeedCache(store CacheStore, normalizer *Normalizer, r io.Reader) (int, error) {
	var entries []seedEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}
	loaded := 0
	for i, e := range entries {
		key := normalizer.Normalize(e.Name)
		if key == "" {
			return loaded, fmt.Errorf("seed entry %d: name is required", i)
		}
		err := store.Put(model.CacheEntry{
			NormalizedName: key,
			PerHundredG:    e.Per100G,
			Provenance:     ProvenanceManual,
			SourceID:       e.SourceID,
			LastUpdated:    time.Now(),
		})
		if err != nil {
			return loaded, fmt.Errorf("seed entry %d (%s): %w", i, e.Name, err)
		}
		loaded++
	}
	return loaded, nil
}
