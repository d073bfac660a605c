package learning

import (
	"context"
	"time"
)

// ReviewEvent records a single graded recall attempt.
type ReviewEvent struct {
	sessionID  string
	hanzi      string
	quality    Quality
	reviewedAt time.Time
}

// NewReviewEvent creates a review event stamped with the current time.
func NewReviewEvent(sessionID, hanzi string, quality Quality) *ReviewEvent {
	return &ReviewEvent{
		sessionID:  sessionID,
		hanzi:      hanzi,
		quality:    quality,
		reviewedAt: time.Now().UTC(),
	}
}

// Getters
func (e *ReviewEvent) SessionID() string     { return e.sessionID }
func (e *ReviewEvent) Hanzi() string         { return e.hanzi }
func (e *ReviewEvent) Quality() Quality      { return e.quality }
func (e *ReviewEvent) Correct() bool         { return e.quality.IsCorrect() }
func (e *ReviewEvent) ReviewedAt() time.Time { return e.reviewedAt }

// SetReviewedAt sets the review time (used by repositories when loading).
func (e *ReviewEvent) SetReviewedAt(at time.Time) {
	e.reviewedAt = at
}

// DailyCount is the per-day review activity used for trend display.
type DailyCount struct {
	Date    string
	Reviews int
	Correct int
}

// HistoryRepository defines the contract for the append-only review log.
// The log is observability on top of the tracker, never a source of truth.
type HistoryRepository interface {
	// Record appends one review event.
	Record(ctx context.Context, event *ReviewEvent) error

	// DailyCounts returns per-day activity for the last n days, oldest first.
	DailyCounts(ctx context.Context, days int) ([]DailyCount, error)

	// CountBySession returns how many reviews a session recorded.
	CountBySession(ctx context.Context, sessionID string) (int, error)
}
