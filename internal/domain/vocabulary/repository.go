package vocabulary

import (
	"context"
	"errors"
)

// ErrWordNotFound is returned when a word is not in the catalog.
var ErrWordNotFound = errors.New("word not found in catalog")

// Repository defines the contract for vocabulary persistence
type Repository interface {
	// SaveBatch persists multiple words, ignoring duplicates
	SaveBatch(ctx context.Context, words []*Word) error

	// FindByHanzi retrieves a word by its written form
	FindByHanzi(ctx context.Context, hanzi string) (*Word, error)

	// FindAll retrieves the full catalog
	FindAll(ctx context.Context) ([]*Word, error)

	// FindByCategory retrieves all words in a category
	FindByCategory(ctx context.Context, category Category) ([]*Word, error)

	// CountByCategory returns the catalog size per category
	CountByCategory(ctx context.Context) (map[Category]int, error)
}
