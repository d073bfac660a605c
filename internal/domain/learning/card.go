package learning

import "time"

// CardState holds the SM-2 scheduling state for a single vocabulary card.
// Field names match the persisted progress file schema.
type CardState struct {
	EaseFactor     float64 `json:"ease_factor"`
	Interval       int     `json:"interval"`
	Repetitions    int     `json:"repetitions"`
	NextReview     float64 `json:"next_review"`
	TotalReviews   int     `json:"total_reviews"`
	CorrectReviews int     `json:"correct_reviews"`
	LastReviewed   float64 `json:"last_reviewed"`
}

// Mastery is a coarse bucket derived from the consecutive-success count.
type Mastery string

const (
	MasteryNew       Mastery = "new"
	MasteryLearning  Mastery = "learning"
	MasteryReviewing Mastery = "reviewing"
	MasteryMastered  Mastery = "mastered"
)

const initialEaseFactor = 2.5

// NewCardState creates a fresh card that is immediately due.
func NewCardState() *CardState {
	return &CardState{EaseFactor: initialEaseFactor}
}

// IsDue reports whether the card is due for review at the given time.
func (c *CardState) IsDue(now time.Time) bool {
	return float64(now.Unix()) >= c.NextReview
}

// MasteryLevel buckets the card purely by its consecutive-success count.
func (c *CardState) MasteryLevel() Mastery {
	switch {
	case c.Repetitions == 0:
		return MasteryNew
	case c.Repetitions < 3:
		return MasteryLearning
	case c.Repetitions < 6:
		return MasteryReviewing
	default:
		return MasteryMastered
	}
}

// Accuracy returns the lifetime accuracy percentage, 0 for unreviewed cards.
func (c *CardState) Accuracy() float64 {
	if c.TotalReviews == 0 {
		return 0
	}
	return float64(c.CorrectReviews) / float64(c.TotalReviews) * 100
}
