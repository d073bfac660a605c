package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppConfig holds user preferences with sensible defaults. It replaces the
// interactive app's in-session settings: callers receive it explicitly
// rather than reading process-wide state.
type AppConfig struct {
	// Display language mode: "de", "en" or "both"
	Language string `json:"language"`

	// Session sizes
	FlashcardSessionSize int `json:"flashcard_session_size"`
	QuizSessionSize      int `json:"quiz_session_size"`
	ReviewSessionSize    int `json:"review_session_size"`

	// Only include words up to this HSK level
	MaxHSKLevel int `json:"max_hsk_level"`

	// Reminder window (24-hour UTC) and target chat
	ReminderStartHour int   `json:"reminder_start_hour"`
	ReminderEndHour   int   `json:"reminder_end_hour"`
	TelegramChatID    int64 `json:"telegram_chat_id"`
}

// Default returns the configuration used when no config file exists
func Default() *AppConfig {
	return &AppConfig{
		Language:             "both",
		FlashcardSessionSize: 15,
		QuizSessionSize:      10,
		ReviewSessionSize:    20,
		MaxHSKLevel:          5,
		ReminderStartHour:    8,
		ReminderEndHour:      22,
	}
}

// Load reads the config file, falling back to defaults. A missing or
// corrupt file yields defaults; fields absent from the file keep their
// default values and unknown fields are ignored.
func Load(path string) *AppConfig {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return Default()
	}
	return cfg
}

// Save persists the config as JSON
func (c *AppConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
