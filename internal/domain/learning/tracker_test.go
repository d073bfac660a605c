package learning

import (
	"errors"
	"testing"
	"time"
)

// memStore is an in-memory Store for tracker tests.
type memStore struct {
	snap     *Snapshot
	saves    int
	failSave bool
}

func (s *memStore) Load() (*Snapshot, error) {
	if s.snap == nil {
		return &Snapshot{Cards: make(map[string]*CardState)}, nil
	}
	return s.snap, nil
}

func (s *memStore) Save(snap *Snapshot) error {
	if s.failSave {
		return errors.New("disk full")
	}
	s.saves++
	s.snap = snap
	return nil
}

func newTestTracker(t *testing.T, store *memStore, now *time.Time) *Tracker {
	t.Helper()
	tracker, err := NewTracker(store)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	tracker.now = func() time.Time { return *now }
	return tracker
}

func TestCardCreatedLazily(t *testing.T) {
	now := testNow
	tracker := newTestTracker(t, &memStore{}, &now)

	if tracker.Tracked("你好") {
		t.Fatal("word tracked before first access")
	}
	card := tracker.Card("你好")
	assertFloat(t, "initial ease_factor", card.EaseFactor, initialEaseFactor)
	assertInt(t, "initial interval", card.Interval, 0)
	if !tracker.Tracked("你好") {
		t.Fatal("word not tracked after first access")
	}
	if tracker.Card("你好") != card {
		t.Fatal("second access created a new card")
	}
}

func TestReviewPersistsEveryCall(t *testing.T) {
	now := testNow
	store := &memStore{}
	tracker := newTestTracker(t, store, &now)

	if _, err := tracker.Review("你好", QualityPerfect); err != nil {
		t.Fatalf("Review: %v", err)
	}
	if _, err := tracker.Review("谢谢", QualityBlackout); err != nil {
		t.Fatalf("Review: %v", err)
	}
	assertInt(t, "store saves", store.saves, 2)
	assertInt(t, "persisted cards", len(store.snap.Cards), 2)
}

func TestReviewRejectsInvalidQuality(t *testing.T) {
	now := testNow
	store := &memStore{}
	tracker := newTestTracker(t, store, &now)

	if _, err := tracker.Review("你好", Quality(9)); !errors.Is(err, ErrInvalidQuality) {
		t.Fatalf("Review error = %v, want ErrInvalidQuality", err)
	}
	assertInt(t, "store saves after rejected review", store.saves, 0)
}

func TestStreakConsecutiveDays(t *testing.T) {
	now := testNow
	tracker := newTestTracker(t, &memStore{}, &now)

	tracker.Review("你好", QualityPerfect)
	assertInt(t, "streak after first session", tracker.Streak(), 1)
	assertInt(t, "total sessions", tracker.TotalSessions(), 1)

	// Same day: no change.
	now = now.Add(2 * time.Hour)
	tracker.Review("谢谢", QualityPerfect)
	assertInt(t, "streak same day", tracker.Streak(), 1)
	assertInt(t, "total sessions same day", tracker.TotalSessions(), 1)

	// Next day: incremented.
	now = now.AddDate(0, 0, 1)
	tracker.Review("你好", QualityPerfect)
	assertInt(t, "streak next day", tracker.Streak(), 2)
	assertInt(t, "total sessions next day", tracker.TotalSessions(), 2)

	// Three-day gap: reset to 1, today counts as day one.
	now = now.AddDate(0, 0, 3)
	tracker.Review("你好", QualityPerfect)
	assertInt(t, "streak after gap", tracker.Streak(), 1)
	assertInt(t, "total sessions after gap", tracker.TotalSessions(), 3)
}

func TestStreakRecoversFromBadStoredDate(t *testing.T) {
	now := testNow
	store := &memStore{snap: &Snapshot{
		Streak:          7,
		LastSessionDate: "not-a-date",
		Cards:           make(map[string]*CardState),
	}}
	tracker := newTestTracker(t, store, &now)

	tracker.Review("你好", QualityPerfect)
	assertInt(t, "streak after unparseable date", tracker.Streak(), 1)
}

func TestDueCardsMostOverdueFirst(t *testing.T) {
	now := testNow
	store := &memStore{snap: &Snapshot{Cards: map[string]*CardState{
		"一": {EaseFactor: 2.5, NextReview: float64(testNow.Unix()) - 100},
		"二": {EaseFactor: 2.5, NextReview: float64(testNow.Unix()) - 5000},
		"三": {EaseFactor: 2.5, NextReview: float64(testNow.Unix()) + 5000},
	}}}
	tracker := newTestTracker(t, store, &now)

	due := tracker.DueCards()
	if len(due) != 2 {
		t.Fatalf("DueCards returned %d items, want 2", len(due))
	}
	if due[0] != "二" || due[1] != "一" {
		t.Errorf("DueCards order = %v, want [二 一]", due)
	}
}

func TestReviewExcludesFromDueUntilIntervalPasses(t *testing.T) {
	now := testNow
	tracker := newTestTracker(t, &memStore{}, &now)

	tracker.Review("你好", QualityBlackout) // failure still schedules 1 day out
	if len(tracker.DueCards()) != 0 {
		t.Fatal("card due immediately after review")
	}

	now = now.AddDate(0, 0, 1)
	if len(tracker.DueCards()) != 1 {
		t.Fatal("card not due after its interval passed")
	}
}

func TestStatsAveragesReviewedCardsOnly(t *testing.T) {
	now := testNow
	store := &memStore{snap: &Snapshot{
		Streak:        3,
		TotalSessions: 9,
		Cards: map[string]*CardState{
			"一": {EaseFactor: 2.5, Repetitions: 1, TotalReviews: 4, CorrectReviews: 4,
				NextReview: float64(testNow.Unix()) + 5000},
			"二": {EaseFactor: 2.5, Repetitions: 4, TotalReviews: 4, CorrectReviews: 2,
				NextReview: float64(testNow.Unix()) - 5000},
			"三": {EaseFactor: 2.5, Repetitions: 7, TotalReviews: 9, CorrectReviews: 9,
				NextReview: float64(testNow.Unix()) + 5000},
			"四": {EaseFactor: 2.5}, // never reviewed
		},
	}}
	tracker := newTestTracker(t, store, &now)

	stats := tracker.Stats()
	assertInt(t, "total tracked", stats.TotalTracked, 4)
	assertInt(t, "new", stats.New, 1)
	assertInt(t, "learning", stats.Learning, 1)
	assertInt(t, "reviewing", stats.Reviewing, 1)
	assertInt(t, "mastered", stats.Mastered, 1)
	assertInt(t, "streak", stats.Streak, 3)
	assertInt(t, "sessions", stats.TotalSessions, 9)
	// "四" was never reviewed and stays out of the average: (100 + 50 + 100) / 3
	assertFloat(t, "avg accuracy", stats.AvgAccuracy, (100.0+50.0+100.0)/3)
	// "二" is overdue, "四" is a fresh card and immediately due
	assertInt(t, "due now", stats.DueNow, 2)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	now := testNow
	store := &memStore{}
	tracker := newTestTracker(t, store, &now)

	tracker.Review("你好", QualityPerfect)
	tracker.Review("谢谢", QualityIncorrectFamiliar)
	want := *tracker.Card("你好")

	reloaded := newTestTracker(t, store, &now)
	got := reloaded.Card("你好")
	if *got != want {
		t.Errorf("reloaded card = %+v, want %+v", *got, want)
	}
	assertInt(t, "reloaded streak", reloaded.Streak(), tracker.Streak())
	assertInt(t, "reloaded sessions", reloaded.TotalSessions(), tracker.TotalSessions())
}

func TestReviewSurfacesWriteFailure(t *testing.T) {
	now := testNow
	store := &memStore{failSave: true}
	tracker := newTestTracker(t, store, &now)

	card, err := tracker.Review("你好", QualityPerfect)
	if err == nil {
		t.Fatal("Review did not surface the store failure")
	}
	// The in-memory update still happened; only durability was lost.
	if card == nil || card.TotalReviews != 1 {
		t.Error("in-memory card state missing after failed flush")
	}
}
