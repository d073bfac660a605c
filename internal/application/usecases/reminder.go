package usecases

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"mandarin-learning-cli/internal/domain/learning"
)

// ReminderConfig holds configuration for the reminder service
type ReminderConfig struct {
	// How often to check whether a reminder should go out
	CheckInterval time.Duration
	// Hours of day (24-hour UTC) when reminders may be sent
	QuietHoursStart int
	QuietHoursEnd   int
}

// DefaultReminderConfig returns sensible defaults for reminders
func DefaultReminderConfig() *ReminderConfig {
	return &ReminderConfig{
		CheckInterval:   30 * time.Minute,
		QuietHoursStart: 8,
		QuietHoursEnd:   22,
	}
}

// Notifier delivers reminder messages to the learner
type Notifier interface {
	SendMessage(chatID int64, text string) error
}

// ReminderUseCase sends at most one due-review reminder per UTC day
type ReminderUseCase struct {
	notifier Notifier
	tracker  *learning.Tracker
	chatID   int64
	config   *ReminderConfig

	now          func() time.Time
	lastSentDate string
}

// NewReminderUseCase creates a new reminder use case
func NewReminderUseCase(notifier Notifier, tracker *learning.Tracker, chatID int64, config *ReminderConfig) *ReminderUseCase {
	if config == nil {
		config = DefaultReminderConfig()
	}
	return &ReminderUseCase{
		notifier: notifier,
		tracker:  tracker,
		chatID:   chatID,
		config:   config,
		now:      time.Now,
	}
}

// Run starts the reminder schedule and blocks until the context is done
func (uc *ReminderUseCase) Run(ctx context.Context) error {
	log.Printf("Starting reminder service (check interval: %v)", uc.config.CheckInterval)

	scheduler := gocron.NewScheduler(time.UTC)
	_, err := scheduler.Every(uc.config.CheckInterval).Do(uc.checkAndSend)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder check: %w", err)
	}
	scheduler.StartAsync()

	<-ctx.Done()
	log.Println("Reminder service stopping...")
	scheduler.Stop()
	return nil
}

func (uc *ReminderUseCase) checkAndSend() {
	now := uc.now().UTC()

	hour := now.Hour()
	if hour < uc.config.QuietHoursStart || hour >= uc.config.QuietHoursEnd {
		return
	}

	today := now.Format("2006-01-02")
	if uc.lastSentDate == today {
		return
	}

	due := len(uc.tracker.DueCards())
	if due == 0 {
		return
	}

	text := fmt.Sprintf("你好! You have %d word(s) due for review. Run `longma review` to keep your %d-day streak going.",
		due, uc.tracker.Streak())
	if err := uc.notifier.SendMessage(uc.chatID, text); err != nil {
		log.Printf("Failed to send reminder: %v", err)
		return
	}
	uc.lastSentDate = today
}
