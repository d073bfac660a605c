package usecases

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"mandarin-learning-cli/internal/domain/learning"
	"mandarin-learning-cli/internal/domain/vocabulary"
)

// AnalyticsUseCase derives weak-word rankings, activity trends and study
// reports from the tracker and the review log
type AnalyticsUseCase struct {
	tracker     *learning.Tracker
	vocabRepo   vocabulary.Repository
	historyRepo learning.HistoryRepository
	reportDir   string
}

// NewAnalyticsUseCase creates a new analytics use case. Reports are written
// under reportDir.
func NewAnalyticsUseCase(
	tracker *learning.Tracker,
	vocabRepo vocabulary.Repository,
	historyRepo learning.HistoryRepository,
	reportDir string,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		tracker:     tracker,
		vocabRepo:   vocabRepo,
		historyRepo: historyRepo,
		reportDir:   reportDir,
	}
}

// WeakWord is a reviewed word ranked by how much practice it needs
type WeakWord struct {
	Hanzi string
	Word  *vocabulary.Word
	Card  *learning.CardState
	Score float64
}

// WeakWords ranks reviewed words by a weakness score combining low
// accuracy, low ease factor and outright wrong answers. Higher score means
// weaker. Unreviewed words are excluded.
func (uc *AnalyticsUseCase) WeakWords(ctx context.Context, limit int) ([]WeakWord, error) {
	var weak []WeakWord
	for hanzi, card := range uc.tracker.Cards() {
		if card.TotalReviews == 0 {
			continue
		}

		score := (100-card.Accuracy())*2 +
			max0(2.5-card.EaseFactor)*30 +
			float64(card.TotalReviews-card.CorrectReviews)*10

		word, err := uc.vocabRepo.FindByHanzi(ctx, hanzi)
		if err != nil && err != vocabulary.ErrWordNotFound {
			return nil, fmt.Errorf("failed to load word %s: %w", hanzi, err)
		}

		weak = append(weak, WeakWord{Hanzi: hanzi, Word: word, Card: card, Score: score})
	}

	sort.Slice(weak, func(i, j int) bool {
		if weak[i].Score != weak[j].Score {
			return weak[i].Score > weak[j].Score
		}
		return weak[i].Hanzi < weak[j].Hanzi
	})

	if len(weak) > limit {
		weak = weak[:limit]
	}
	return weak, nil
}

// DailyActivity returns per-day review counts for the last n days
func (uc *AnalyticsUseCase) DailyActivity(ctx context.Context, days int) ([]learning.DailyCount, error) {
	return uc.historyRepo.DailyCounts(ctx, days)
}

// ExportReport writes a markdown study report and returns its path. An
// empty path picks a timestamped file under the report directory.
func (uc *AnalyticsUseCase) ExportReport(ctx context.Context, path string) (string, error) {
	if path == "" {
		if err := os.MkdirAll(uc.reportDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
		stamp := time.Now().UTC().Format("20060102_150405")
		path = filepath.Join(uc.reportDir, fmt.Sprintf("study_report_%s.md", stamp))
	}

	report, err := uc.renderReport(ctx)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

func (uc *AnalyticsUseCase) renderReport(ctx context.Context) (string, error) {
	stats := uc.tracker.Stats()

	catalogCounts, err := uc.vocabRepo.CountByCategory(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count catalog: %w", err)
	}
	var catalogTotal int
	for _, n := range catalogCounts {
		catalogTotal += n
	}

	weak, err := uc.WeakWords(ctx, 10)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# 龙码 LóngMǎ — Study Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", time.Now().UTC().Format("2006-01-02 15:04 UTC"))

	b.WriteString("## Overview\n\n")
	b.WriteString("| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| Words Studied | %d / %d |\n", stats.TotalTracked, catalogTotal)
	fmt.Fprintf(&b, "| Mastered | %d |\n", stats.Mastered)
	fmt.Fprintf(&b, "| Reviewing | %d |\n", stats.Reviewing)
	fmt.Fprintf(&b, "| Learning | %d |\n", stats.Learning)
	fmt.Fprintf(&b, "| Streak | %d day(s) |\n", stats.Streak)
	fmt.Fprintf(&b, "| Total Sessions | %d |\n", stats.TotalSessions)
	fmt.Fprintf(&b, "| Average Accuracy | %.1f%% |\n", stats.AvgAccuracy)
	fmt.Fprintf(&b, "| Due for Review | %d |\n", stats.DueNow)

	b.WriteString("\n## Category Progress\n\n")
	b.WriteString("| Category | Words Learned | Total |\n|----------|---------------|-------|\n")
	cards := uc.tracker.Cards()
	for _, category := range []vocabulary.Category{
		vocabulary.CategoryBasics, vocabulary.CategoryTech,
		vocabulary.CategoryBusiness, vocabulary.CategoryDaily,
	} {
		words, err := uc.vocabRepo.FindByCategory(ctx, category)
		if err != nil {
			return "", fmt.Errorf("failed to load category %s: %w", category, err)
		}
		var learned int
		for _, word := range words {
			if _, ok := cards[word.Hanzi()]; ok {
				learned++
			}
		}
		fmt.Fprintf(&b, "| %s | %d | %d |\n", category, learned, catalogCounts[category])
	}

	b.WriteString("\n## Weakest Words\n\n")
	if len(weak) == 0 {
		b.WriteString("_No reviewed words yet._\n")
	} else {
		b.WriteString("| Hanzi | Pinyin | Accuracy | Reviews | Level |\n")
		b.WriteString("|-------|--------|----------|---------|-------|\n")
		for _, w := range weak {
			pinyin := "?"
			if w.Word != nil {
				pinyin = w.Word.Pinyin()
			}
			fmt.Fprintf(&b, "| %s | %s | %.0f%% | %d/%d | %s |\n",
				w.Hanzi, pinyin, w.Card.Accuracy(),
				w.Card.CorrectReviews, w.Card.TotalReviews, w.Card.MasteryLevel())
		}
	}

	b.WriteString("\n## Mastered Words\n\n")
	var mastered []string
	for hanzi, card := range cards {
		if card.MasteryLevel() == learning.MasteryMastered {
			mastered = append(mastered, hanzi)
		}
	}
	sort.Strings(mastered)
	if len(mastered) == 0 {
		b.WriteString("_No mastered words yet. Keep studying! 加油！_\n")
	} else {
		for _, hanzi := range mastered {
			word, err := uc.vocabRepo.FindByHanzi(ctx, hanzi)
			if err == vocabulary.ErrWordNotFound {
				continue
			}
			if err != nil {
				return "", fmt.Errorf("failed to load word %s: %w", hanzi, err)
			}
			fmt.Fprintf(&b, "- **%s** (%s) — %s / %s\n",
				word.Hanzi(), word.Pinyin(), word.German(), word.English())
		}
	}

	b.WriteString("\n---\n*Generated by 龙码 LóngMǎ — Dragon Code*\n")
	return b.String(), nil
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
