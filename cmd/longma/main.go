package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"mandarin-learning-cli/internal/application/usecases"
	"mandarin-learning-cli/internal/config"
	"mandarin-learning-cli/internal/domain/learning"
	"mandarin-learning-cli/internal/infrastructure/filesystem"
	"mandarin-learning-cli/internal/infrastructure/persistence"
	"mandarin-learning-cli/internal/infrastructure/telegram"
	"mandarin-learning-cli/internal/interfaces/cli"
)

func main() {
	// Optional .env for local overrides
	_ = godotenv.Load()

	dataDir := os.Getenv("LONGMA_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dataDir = filepath.Join(home, ".longma")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	cfgPath := filepath.Join(dataDir, "config.json")
	cfg := config.Load(cfgPath)

	// Initialize database
	db, err := persistence.NewSQLiteDB(filepath.Join(dataDir, "longma.db"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	vocabRepo := persistence.NewVocabularyRepository(db)
	historyRepo := persistence.NewHistoryRepository(db)

	// Seed the catalog from the bundled deck when present; a missing deck
	// is fine once the catalog has been imported.
	deckPath := os.Getenv("LONGMA_DECK")
	if deckPath == "" {
		deckPath = "vocabulary.json"
	}
	if _, err := os.Stat(deckPath); err == nil {
		words, err := filesystem.NewDeckLoader().LoadFromFile(deckPath)
		if err != nil {
			log.Fatalf("Failed to load deck: %v", err)
		}
		if err := vocabRepo.SaveBatch(context.Background(), words); err != nil {
			log.Fatalf("Failed to populate catalog: %v", err)
		}
	}

	// Learning progress lives in a plain JSON file, separate from the
	// catalog, so corrupting one never takes down the other.
	store := persistence.NewProgressStore(filepath.Join(dataDir, "progress.json"))
	tracker, err := learning.NewTracker(store)
	if err != nil {
		log.Fatalf("Failed to load progress: %v", err)
	}

	learningUC := usecases.NewLearningUseCase(tracker, vocabRepo, historyRepo)
	analyticsUC := usecases.NewAnalyticsUseCase(tracker, vocabRepo, historyRepo,
		filepath.Join(dataDir, "reports"))

	handler := cli.NewHandler(learningUC, analyticsUC, vocabRepo, cfg, cfgPath,
		os.Stdin, os.Stdout)

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" && cfg.TelegramChatID != 0 {
		handler.RunReminder = func(ctx context.Context) error {
			bot, err := telegram.NewBot(token)
			if err != nil {
				return err
			}
			reminderCfg := usecases.DefaultReminderConfig()
			reminderCfg.QuietHoursStart = cfg.ReminderStartHour
			reminderCfg.QuietHoursEnd = cfg.ReminderEndHour
			reminder := usecases.NewReminderUseCase(bot, tracker, cfg.TelegramChatID, reminderCfg)
			return reminder.Run(ctx)
		}
	}

	// Handle graceful shutdown for long-running commands
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		log.Println("Shutting down...")
		cancel()
	}()

	if err := handler.Run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
