package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open prepares the nutrition-cache database. A single connection serializes
// concurrent write-through from parallel ingredient resolution; the busy
// timeout covers another platecalc process holding the file.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open nutrition cache database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping nutrition cache database: %w", err)
	}
	for _, pragma := range []string{
		`PRAGMA foreign_keys = ON;`,
		`PRAGMA busy_timeout = 5000;`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma: %w", err)
		}
	}
	return db, nil
}
