package usecases

import (
	"testing"
	"time"

	"mandarin-learning-cli/internal/domain/learning"
)

type fakeNotifier struct {
	sent []string
}

func (n *fakeNotifier) SendMessage(chatID int64, text string) error {
	n.sent = append(n.sent, text)
	return nil
}

func newReminderForTest(t *testing.T, dueCards int, at time.Time) (*ReminderUseCase, *fakeNotifier) {
	t.Helper()

	cards := make(map[string]*learning.CardState)
	for i := 0; i < dueCards; i++ {
		cards[string(rune('一'+i))] = &learning.CardState{EaseFactor: 2.5, NextReview: 1}
	}
	tracker := newTestTracker(t, &learning.Snapshot{Cards: cards})

	notifier := &fakeNotifier{}
	uc := NewReminderUseCase(notifier, tracker, 42, nil)
	uc.now = func() time.Time { return at }
	return uc, notifier
}

func TestReminderSendsOncePerDay(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	uc, notifier := newReminderForTest(t, 3, at)

	uc.checkAndSend()
	uc.checkAndSend()
	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d reminders, want 1", len(notifier.sent))
	}

	uc.now = func() time.Time { return at.AddDate(0, 0, 1) }
	uc.checkAndSend()
	if len(notifier.sent) != 2 {
		t.Fatalf("sent %d reminders after next day, want 2", len(notifier.sent))
	}
}

func TestReminderRespectsQuietHours(t *testing.T) {
	at := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	uc, notifier := newReminderForTest(t, 3, at)

	uc.checkAndSend()
	if len(notifier.sent) != 0 {
		t.Fatalf("sent %d reminders during quiet hours, want 0", len(notifier.sent))
	}
}

func TestReminderSkipsWhenNothingDue(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	uc, notifier := newReminderForTest(t, 0, at)

	uc.checkAndSend()
	if len(notifier.sent) != 0 {
		t.Fatalf("sent %d reminders with nothing due, want 0", len(notifier.sent))
	}
}
