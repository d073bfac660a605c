package usecases

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"mandarin-learning-cli/internal/domain/learning"
	"mandarin-learning-cli/internal/domain/vocabulary"
)

// LearningUseCase handles learning-related business operations
type LearningUseCase struct {
	tracker     *learning.Tracker
	vocabRepo   vocabulary.Repository
	historyRepo learning.HistoryRepository
}

// NewLearningUseCase creates a new learning use case
func NewLearningUseCase(
	tracker *learning.Tracker,
	vocabRepo vocabulary.Repository,
	historyRepo learning.HistoryRepository,
) *LearningUseCase {
	return &LearningUseCase{
		tracker:     tracker,
		vocabRepo:   vocabRepo,
		historyRepo: historyRepo,
	}
}

// Session is one review session's worth of words: everything due, most
// overdue first, backfilled with words the learner has never seen.
type Session struct {
	ID    string
	Words []*vocabulary.Word
}

// ReviewOutcome pairs a word with its scheduling state after a review
type ReviewOutcome struct {
	Word *vocabulary.Word
	Card *learning.CardState
}

// Review grades one recall attempt: it updates and persists the word's
// scheduling state, then appends a history entry. The history write is
// best-effort; the SM-2 state has already been made durable.
func (uc *LearningUseCase) Review(ctx context.Context, sessionID, hanzi string, quality learning.Quality) (*ReviewOutcome, error) {
	word, err := uc.vocabRepo.FindByHanzi(ctx, hanzi)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", hanzi, err)
	}

	card, err := uc.tracker.Review(hanzi, quality)
	if err != nil {
		return nil, err
	}

	event := learning.NewReviewEvent(sessionID, hanzi, quality)
	if err := uc.historyRepo.Record(ctx, event); err != nil {
		log.Printf("Warning: failed to record review history: %v", err)
	}

	return &ReviewOutcome{Word: word, Card: card}, nil
}

// BuildSession assembles up to limit words: due words first (most overdue
// first), then unseen catalog words up to the configured HSK ceiling.
func (uc *LearningUseCase) BuildSession(ctx context.Context, limit, maxHSKLevel int) (*Session, error) {
	session := &Session{ID: uuid.NewString()}

	for _, hanzi := range uc.tracker.DueCards() {
		if len(session.Words) >= limit {
			return session, nil
		}
		word, err := uc.vocabRepo.FindByHanzi(ctx, hanzi)
		if err == vocabulary.ErrWordNotFound {
			// Progress can reference words from a removed deck; skip them.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load due word %s: %w", hanzi, err)
		}
		session.Words = append(session.Words, word)
	}

	if len(session.Words) < limit {
		all, err := uc.vocabRepo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		for _, word := range all {
			if len(session.Words) >= limit {
				break
			}
			if word.HSKLevel() > maxHSKLevel || uc.tracker.Tracked(word.Hanzi()) {
				continue
			}
			session.Words = append(session.Words, word)
		}
	}

	return session, nil
}

// DueWords returns the due words with display metadata, most overdue first
func (uc *LearningUseCase) DueWords(ctx context.Context) ([]*ReviewOutcome, error) {
	cards := uc.tracker.Cards()
	var due []*ReviewOutcome
	for _, hanzi := range uc.tracker.DueCards() {
		word, err := uc.vocabRepo.FindByHanzi(ctx, hanzi)
		if err == vocabulary.ErrWordNotFound {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load due word %s: %w", hanzi, err)
		}
		due = append(due, &ReviewOutcome{Word: word, Card: cards[hanzi]})
	}
	return due, nil
}

// Stats returns the tracker's aggregate statistics
func (uc *LearningUseCase) Stats() learning.Stats {
	return uc.tracker.Stats()
}
