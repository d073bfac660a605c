package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "config.json"))

	want := Default()
	if *cfg != *want {
		t.Errorf("Load of missing file = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if *cfg != *Default() {
		t.Errorf("Load of corrupt file = %+v, want defaults", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	contents := `{"language": "de", "unknown_setting": 42}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.Language != "de" {
		t.Errorf("language = %s, want de", cfg.Language)
	}
	if cfg.ReviewSessionSize != Default().ReviewSessionSize {
		t.Errorf("review_session_size = %d, want default %d",
			cfg.ReviewSessionSize, Default().ReviewSessionSize)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Language = "en"
	cfg.MaxHSKLevel = 3
	cfg.TelegramChatID = 12345
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := Load(path)
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
