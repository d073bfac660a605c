package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mandarin-learning-cli/internal/domain/learning"
)

type historyRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new review history repository
func NewHistoryRepository(db *sql.DB) learning.HistoryRepository {
	return &historyRepository{db: db}
}

// Record appends one review event
func (r *historyRepository) Record(ctx context.Context, event *learning.ReviewEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_history (session_id, hanzi, quality, correct, reviewed_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		event.SessionID(), event.Hanzi(), int(event.Quality()),
		event.Correct(), event.ReviewedAt().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record review: %w", err)
	}
	return nil
}

// DailyCounts returns per-day review activity for the last n days, oldest first
func (r *historyRepository) DailyCounts(ctx context.Context, days int) ([]learning.DailyCount, error) {
	since := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)

	rows, err := r.db.QueryContext(ctx, `
		SELECT date(reviewed_at), COUNT(*), SUM(correct)
		FROM review_history
		WHERE reviewed_at >= ?
		GROUP BY date(reviewed_at)
		ORDER BY date(reviewed_at)
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily counts: %w", err)
	}
	defer rows.Close()

	var counts []learning.DailyCount
	for rows.Next() {
		var count learning.DailyCount
		if err := rows.Scan(&count.Date, &count.Reviews, &count.Correct); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		counts = append(counts, count)
	}
	return counts, rows.Err()
}

// CountBySession returns how many reviews a session recorded
func (r *historyRepository) CountBySession(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review_history WHERE session_id = ?`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count session reviews: %w", err)
	}
	return count, nil
}
