package persistence

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	// Vocabulary catalog
	wordsTable := `
	CREATE TABLE IF NOT EXISTS words (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hanzi TEXT NOT NULL,
		pinyin TEXT NOT NULL,
		english TEXT NOT NULL,
		german TEXT NOT NULL,
		category TEXT NOT NULL,
		hsk_level INTEGER NOT NULL,
		example_hanzi TEXT NOT NULL DEFAULT '',
		example_pinyin TEXT NOT NULL DEFAULT '',
		example_english TEXT NOT NULL DEFAULT '',
		example_german TEXT NOT NULL DEFAULT '',
		UNIQUE(hanzi)
	);`

	_, err := db.Exec(wordsTable)
	if err != nil {
		return fmt.Errorf("failed to create words table: %w", err)
	}

	// Append-only review log; scheduling state lives in the progress file
	historyTable := `
	CREATE TABLE IF NOT EXISTS review_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		hanzi TEXT NOT NULL,
		quality INTEGER NOT NULL,
		correct INTEGER NOT NULL,
		reviewed_at DATETIME NOT NULL
	);`

	_, err = db.Exec(historyTable)
	if err != nil {
		return fmt.Errorf("failed to create review_history table: %w", err)
	}

	historyIndex := `
	CREATE INDEX IF NOT EXISTS idx_review_history_reviewed_at
	ON review_history(reviewed_at);`

	_, err = db.Exec(historyIndex)
	if err != nil {
		return fmt.Errorf("failed to create review_history index: %w", err)
	}

	return nil
}
