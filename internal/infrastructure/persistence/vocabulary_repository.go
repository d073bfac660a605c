package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"mandarin-learning-cli/internal/domain/vocabulary"
)

type vocabularyRepository struct {
	db *sql.DB
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db *sql.DB) vocabulary.Repository {
	return &vocabularyRepository{db: db}
}

const wordColumns = `
	id, hanzi, pinyin, english, german, category, hsk_level,
	example_hanzi, example_pinyin, example_english, example_german
`

// SaveBatch persists multiple words, ignoring words already in the catalog
func (r *vocabularyRepository) SaveBatch(ctx context.Context, words []*vocabulary.Word) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO words (
			hanzi, pinyin, english, german, category, hsk_level,
			example_hanzi, example_pinyin, example_english, example_german
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, word := range words {
		example := word.Example()
		_, err := stmt.ExecContext(ctx,
			word.Hanzi(), word.Pinyin(), word.English(), word.German(),
			string(word.Category()), word.HSKLevel(),
			example.Hanzi, example.Pinyin, example.English, example.German)
		if err != nil {
			return fmt.Errorf("failed to save word %s: %w", word.Hanzi(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FindByHanzi retrieves a word by its written form
func (r *vocabularyRepository) FindByHanzi(ctx context.Context, hanzi string) (*vocabulary.Word, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+wordColumns+` FROM words WHERE hanzi = ?`, hanzi)

	word, err := scanWord(row)
	if err == sql.ErrNoRows {
		return nil, vocabulary.ErrWordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find word %s: %w", hanzi, err)
	}
	return word, nil
}

// FindAll retrieves the full catalog
func (r *vocabularyRepository) FindAll(ctx context.Context) ([]*vocabulary.Word, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+wordColumns+` FROM words ORDER BY hsk_level, hanzi`)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	return collectWords(rows)
}

// FindByCategory retrieves all words in a category
func (r *vocabularyRepository) FindByCategory(ctx context.Context, category vocabulary.Category) ([]*vocabulary.Word, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+wordColumns+` FROM words WHERE category = ? ORDER BY hsk_level, hanzi`,
		string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to query words by category: %w", err)
	}
	defer rows.Close()

	return collectWords(rows)
}

// CountByCategory returns the catalog size per category
func (r *vocabularyRepository) CountByCategory(ctx context.Context) (map[vocabulary.Category]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM words GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to count words: %w", err)
	}
	defer rows.Close()

	counts := make(map[vocabulary.Category]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[vocabulary.Category(category)] = count
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWord(row rowScanner) (*vocabulary.Word, error) {
	var id int64
	var hanzi, pinyin, english, german, category string
	var hskLevel int
	var example vocabulary.Example

	err := row.Scan(&id, &hanzi, &pinyin, &english, &german, &category, &hskLevel,
		&example.Hanzi, &example.Pinyin, &example.English, &example.German)
	if err != nil {
		return nil, err
	}

	word := vocabulary.NewWord(hanzi, pinyin, english, german, vocabulary.Category(category), hskLevel)
	word.SetID(vocabulary.ID(id))
	word.SetExample(example)
	return word, nil
}

func collectWords(rows *sql.Rows) ([]*vocabulary.Word, error) {
	var words []*vocabulary.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}
	return words, rows.Err()
}
