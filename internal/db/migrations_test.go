package db_test

import (
	"path/filepath"
	"testing"

	"github.com/saadjs/platecalc/internal/db"
)

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "platecalc.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first migration run: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second migration run: %v", err)
	}

	var count int
	if err := sqldb.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", count)
	}
}

func TestNutritionCacheSchemaConstraints(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "platecalc.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	_, err = sqldb.Exec(`
INSERT INTO nutrition_cache(normalized_name, calories_kcal, provenance, updated_at)
VALUES('rice', -10, 'manual', '2026-01-01T00:00:00Z')
`)
	if err == nil {
		t.Fatalf("expected CHECK violation for negative calories")
	}

	_, err = sqldb.Exec(`
INSERT INTO nutrition_cache(normalized_name, calories_kcal, provenance, updated_at)
VALUES('rice', 130, 'scraped', '2026-01-01T00:00:00Z')
`)
	if err == nil {
		t.Fatalf("expected CHECK violation for unknown provenance")
	}
}
