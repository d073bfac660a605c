package learning

import (
	"fmt"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Snapshot is the durable form of the tracker, one record per card keyed by
// the word's written form.
type Snapshot struct {
	Streak          int                   `json:"streak"`
	LastSessionDate string                `json:"last_session_date"`
	TotalSessions   int                   `json:"total_sessions"`
	Cards           map[string]*CardState `json:"cards"`
}

// Store persists tracker snapshots. A missing or corrupt store must load as
// an empty snapshot rather than fail: lost history is recoverable, a crash
// at startup is not.
type Store interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
}

// Stats summarizes the tracker for display.
type Stats struct {
	TotalTracked  int
	New           int
	Learning      int
	Reviewing     int
	Mastered      int
	DueNow        int
	Streak        int
	TotalSessions int
	AvgAccuracy   float64
}

// Tracker manages all card states plus session and streak bookkeeping, and
// flushes to its store after every review.
type Tracker struct {
	cards           map[string]*CardState
	streak          int
	lastSessionDate string
	totalSessions   int

	store Store
	now   func() time.Time
}

// NewTracker loads prior progress from the store.
func NewTracker(store Store) (*Tracker, error) {
	snap, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	t := &Tracker{
		cards: make(map[string]*CardState),
		store: store,
		now:   time.Now,
	}
	if snap != nil {
		t.streak = snap.Streak
		t.lastSessionDate = snap.LastSessionDate
		t.totalSessions = snap.TotalSessions
		for hanzi, card := range snap.Cards {
			t.cards[hanzi] = card
		}
	}
	return t, nil
}

// Card returns the state for a word, creating a fresh record on first use.
func (t *Tracker) Card(hanzi string) *CardState {
	card, ok := t.cards[hanzi]
	if !ok {
		card = NewCardState()
		t.cards[hanzi] = card
	}
	return card
}

// Tracked reports whether the word has a card already.
func (t *Tracker) Tracked(hanzi string) bool {
	_, ok := t.cards[hanzi]
	return ok
}

// Review applies one SM-2 update to the word's card, updates the daily
// streak and persists the result. The in-memory state is updated even when
// the flush fails, so the returned error only signals lost durability.
func (t *Tracker) Review(hanzi string, quality Quality) (*CardState, error) {
	card := t.Card(hanzi)
	now := t.now()
	if err := Apply(card, quality, now); err != nil {
		return nil, err
	}
	t.updateStreak(now)
	if err := t.Save(); err != nil {
		return card, fmt.Errorf("failed to persist review: %w", err)
	}
	return card, nil
}

// updateStreak runs at most once per UTC calendar day: consecutive-day use
// increments the streak, a gap of more than one day restarts it at 1.
func (t *Tracker) updateStreak(now time.Time) {
	today := now.UTC().Format(dateLayout)
	if t.lastSessionDate == today {
		return
	}

	if t.lastSessionDate == "" {
		t.streak = 1
	} else if last, err := time.Parse(dateLayout, t.lastSessionDate); err != nil {
		t.streak = 1
	} else {
		cur, _ := time.Parse(dateLayout, today)
		if int(cur.Sub(last).Hours()/24) == 1 {
			t.streak++
		} else {
			t.streak = 1
		}
	}

	t.lastSessionDate = today
	t.totalSessions++
}

// DueCards returns the words due for review, most overdue first.
func (t *Tracker) DueCards() []string {
	now := t.now()
	var due []string
	for hanzi, card := range t.cards {
		if card.IsDue(now) {
			due = append(due, hanzi)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		a, b := t.cards[due[i]], t.cards[due[j]]
		if a.NextReview != b.NextReview {
			return a.NextReview < b.NextReview
		}
		return due[i] < due[j]
	})
	return due
}

// Cards returns a copy of the card map. The card states themselves are
// shared, not copied.
func (t *Tracker) Cards() map[string]*CardState {
	out := make(map[string]*CardState, len(t.cards))
	for hanzi, card := range t.cards {
		out[hanzi] = card
	}
	return out
}

// Stats aggregates mastery buckets, due count and average accuracy. Cards
// that were never reviewed do not dilute the accuracy average.
func (t *Tracker) Stats() Stats {
	stats := Stats{
		TotalTracked:  len(t.cards),
		Streak:        t.streak,
		TotalSessions: t.totalSessions,
	}

	now := t.now()
	var accuracySum float64
	var reviewed int
	for _, card := range t.cards {
		switch card.MasteryLevel() {
		case MasteryNew:
			stats.New++
		case MasteryLearning:
			stats.Learning++
		case MasteryReviewing:
			stats.Reviewing++
		case MasteryMastered:
			stats.Mastered++
		}
		if card.IsDue(now) {
			stats.DueNow++
		}
		if card.TotalReviews > 0 {
			accuracySum += card.Accuracy()
			reviewed++
		}
	}
	if reviewed > 0 {
		stats.AvgAccuracy = accuracySum / float64(reviewed)
	}
	return stats
}

// Streak returns the current consecutive-day streak.
func (t *Tracker) Streak() int { return t.streak }

// TotalSessions returns the number of distinct study days recorded.
func (t *Tracker) TotalSessions() int { return t.totalSessions }

// Save flushes the full tracker state to the store.
func (t *Tracker) Save() error {
	return t.store.Save(t.snapshot())
}

func (t *Tracker) snapshot() *Snapshot {
	return &Snapshot{
		Streak:          t.streak,
		LastSessionDate: t.lastSessionDate,
		TotalSessions:   t.totalSessions,
		Cards:           t.Cards(),
	}
}
