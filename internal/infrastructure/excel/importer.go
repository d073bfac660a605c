package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"mandarin-learning-cli/internal/domain/vocabulary"
)

// Expected column layout, first row is a header:
// hanzi | pinyin | english | german | category | hsk_level |
// example_hanzi | example_pinyin | example_english | example_german
const minColumns = 6

// ImportResult holds the result of an import operation
type ImportResult struct {
	Words   []*vocabulary.Word
	Skipped int
	Errors  []string
}

// Importer reads custom vocabulary decks from .xlsx files
type Importer struct {
	SheetName string
}

// NewImporter creates an importer reading the workbook's first sheet
func NewImporter() *Importer {
	return &Importer{}
}

// ImportFile parses a workbook into vocabulary words. Rows that fail
// validation are collected as errors instead of aborting the import.
func (im *Importer) ImportFile(path string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := im.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		word, err := parseRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Words = append(result.Words, word)
	}

	return result, nil
}

func parseRow(row []string) (*vocabulary.Word, error) {
	if len(row) < minColumns {
		return nil, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(row))
	}

	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	hanzi := cell(0)
	if hanzi == "" {
		return nil, fmt.Errorf("empty hanzi column")
	}

	category := cell(4)
	if !vocabulary.IsValidCategory(category) {
		return nil, fmt.Errorf("invalid category: %s", category)
	}

	hskLevel, err := strconv.Atoi(cell(5))
	if err != nil || !vocabulary.IsValidHSKLevel(hskLevel) {
		return nil, fmt.Errorf("invalid HSK level: %s", cell(5))
	}

	word := vocabulary.NewWord(hanzi, cell(1), cell(2), cell(3),
		vocabulary.Category(category), hskLevel)
	word.SetExample(vocabulary.Example{
		Hanzi:   cell(6),
		Pinyin:  cell(7),
		English: cell(8),
		German:  cell(9),
	})
	return word, nil
}
