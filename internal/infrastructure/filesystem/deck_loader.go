package filesystem

import (
	"encoding/json"
	"fmt"
	"os"

	"mandarin-learning-cli/internal/domain/vocabulary"
)

// DeckLoader handles loading vocabulary decks from JSON files
type DeckLoader struct{}

// NewDeckLoader creates a new deck loader
func NewDeckLoader() *DeckLoader {
	return &DeckLoader{}
}

// DeckFile represents the JSON structure of a vocabulary deck
type DeckFile struct {
	Words []DeckEntry `json:"words"`
}

// DeckEntry represents a single vocabulary entry in JSON
type DeckEntry struct {
	Hanzi          string `json:"hanzi"`
	Pinyin         string `json:"pinyin"`
	English        string `json:"english"`
	German         string `json:"german"`
	Category       string `json:"category"`
	HSKLevel       int    `json:"hsk_level"`
	ExampleHanzi   string `json:"example_hanzi"`
	ExamplePinyin  string `json:"example_pinyin"`
	ExampleEnglish string `json:"example_english"`
	ExampleGerman  string `json:"example_german"`
}

// LoadFromFile loads a vocabulary deck from a JSON file
func (dl *DeckLoader) LoadFromFile(filename string) ([]*vocabulary.Word, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open deck file: %w", err)
	}
	defer file.Close()

	var deck DeckFile
	if err := json.NewDecoder(file).Decode(&deck); err != nil {
		return nil, fmt.Errorf("failed to decode deck JSON: %w", err)
	}

	var words []*vocabulary.Word
	for _, entry := range deck.Words {
		if !vocabulary.IsValidCategory(entry.Category) {
			return nil, fmt.Errorf("invalid category for %s: %s", entry.Hanzi, entry.Category)
		}
		if !vocabulary.IsValidHSKLevel(entry.HSKLevel) {
			return nil, fmt.Errorf("invalid HSK level for %s: %d", entry.Hanzi, entry.HSKLevel)
		}

		word := vocabulary.NewWord(
			entry.Hanzi,
			entry.Pinyin,
			entry.English,
			entry.German,
			vocabulary.Category(entry.Category),
			entry.HSKLevel,
		)
		word.SetExample(vocabulary.Example{
			Hanzi:   entry.ExampleHanzi,
			Pinyin:  entry.ExamplePinyin,
			English: entry.ExampleEnglish,
			German:  entry.ExampleGerman,
		})
		words = append(words, word)
	}

	return words, nil
}
