package excel

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "deck.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportFile(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"hanzi", "pinyin", "english", "german", "category", "hsk_level",
			"example_hanzi", "example_pinyin", "example_english", "example_german"},
		{"服务器", "fúwùqì", "server", "Server", "tech", "4",
			"服务器宕机了。", "Fúwùqì dàngjī le.", "The server is down.", "Der Server ist ausgefallen."},
		{"你好", "nǐ hǎo", "hello", "Hallo", "basics", "1"},
	})

	result, err := NewImporter().ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(result.Words) != 2 {
		t.Fatalf("imported %d words, want 2: %v", len(result.Words), result.Errors)
	}

	first := result.Words[0]
	if first.Hanzi() != "服务器" || first.HSKLevel() != 4 {
		t.Errorf("first word = %s/%d", first.Hanzi(), first.HSKLevel())
	}
	if first.Example().English != "The server is down." {
		t.Errorf("example = %q", first.Example().English)
	}
}

func TestImportFileCollectsRowErrors(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"hanzi", "pinyin", "english", "german", "category", "hsk_level"},
		{"你好", "nǐ hǎo", "hello", "Hallo", "basics", "1"},
		{"坏", "huài", "bad", "schlecht", "nonsense", "1"}, // invalid category
		{"", "wú", "empty", "leer", "basics", "1"},         // missing hanzi
	})

	result, err := NewImporter().ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(result.Words) != 1 {
		t.Errorf("imported %d words, want 1", len(result.Words))
	}
	if result.Skipped != 2 || len(result.Errors) != 2 {
		t.Errorf("skipped = %d, errors = %v", result.Skipped, result.Errors)
	}
}

func TestImportFileMissing(t *testing.T) {
	if _, err := NewImporter().ImportFile(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
