package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"mandarin-learning-cli/internal/application/usecases"
	"mandarin-learning-cli/internal/config"
	"mandarin-learning-cli/internal/domain/learning"
	"mandarin-learning-cli/internal/domain/vocabulary"
	"mandarin-learning-cli/internal/infrastructure/excel"
	"mandarin-learning-cli/internal/infrastructure/filesystem"
)

// Handler dispatches CLI commands to the use cases
type Handler struct {
	learning  *usecases.LearningUseCase
	analytics *usecases.AnalyticsUseCase
	vocabRepo vocabulary.Repository
	cfg       *config.AppConfig
	cfgPath   string

	// RunReminder runs the foreground reminder daemon; wired by main so the
	// Telegram client is only constructed when the command asks for it.
	RunReminder func(ctx context.Context) error

	in  io.Reader
	out io.Writer
}

// NewHandler creates a new CLI handler
func NewHandler(
	learningUC *usecases.LearningUseCase,
	analyticsUC *usecases.AnalyticsUseCase,
	vocabRepo vocabulary.Repository,
	cfg *config.AppConfig,
	cfgPath string,
	in io.Reader,
	out io.Writer,
) *Handler {
	return &Handler{
		learning:  learningUC,
		analytics: analyticsUC,
		vocabRepo: vocabRepo,
		cfg:       cfg,
		cfgPath:   cfgPath,
		in:        in,
		out:       out,
	}
}

// Run executes one CLI command
func (h *Handler) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		h.printUsage()
		return nil
	}

	switch args[0] {
	case "review":
		return h.handleReview(ctx)
	case "due":
		return h.handleDue(ctx)
	case "stats":
		return h.handleStats(ctx)
	case "weak":
		return h.handleWeak(ctx)
	case "activity":
		return h.handleActivity(ctx, args[1:])
	case "report":
		return h.handleReport(ctx, args[1:])
	case "import":
		return h.handleImport(ctx, args[1:])
	case "remind":
		if h.RunReminder == nil {
			return fmt.Errorf("reminders are not configured: set TELEGRAM_BOT_TOKEN and telegram_chat_id")
		}
		return h.RunReminder(ctx)
	case "config":
		return h.handleConfig(args[1:])
	case "help":
		h.printUsage()
		return nil
	default:
		h.printUsage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (h *Handler) printUsage() {
	fmt.Fprintln(h.out, `龙码 LóngMǎ — Mandarin vocabulary trainer

Usage: longma <command>

Commands:
  review            Start a review session
  due               List words due for review
  stats             Show learning statistics
  weak              Show your weakest words
  activity [days]   Show daily review activity (default 14 days)
  report [path]     Export a markdown study report
  import <file>     Import a deck (.json or .xlsx)
  remind            Run the due-review reminder daemon
  config            Show configuration
  config set <k> <v>  Change a setting`)
}

func (h *Handler) handleReview(ctx context.Context) error {
	session, err := h.learning.BuildSession(ctx, h.cfg.ReviewSessionSize, h.cfg.MaxHSKLevel)
	if err != nil {
		return err
	}
	if len(session.Words) == 0 {
		fmt.Fprintln(h.out, "Nothing to review. 很好!")
		return nil
	}

	fmt.Fprintf(h.out, "Review session: %d word(s). Grade your recall 0-5, q to quit.\n\n", len(session.Words))
	reader := bufio.NewReader(h.in)

	reviewed := 0
	for _, word := range session.Words {
		fmt.Fprintf(h.out, "  %s  [%s]\n", word.Hanzi(), word.Pinyin())
		fmt.Fprint(h.out, "  (press Enter to reveal) ")
		if _, err := reader.ReadString('\n'); err != nil {
			break
		}

		fmt.Fprintf(h.out, "  → %s\n", word.Translation(h.cfg.Language))
		if example := word.Example(); example.Hanzi != "" {
			fmt.Fprintf(h.out, "    %s  (%s)\n", example.Hanzi, example.Pinyin)
		}

		quality, quit := h.promptQuality(reader)
		if quit {
			break
		}

		outcome, err := h.learning.Review(ctx, session.ID, word.Hanzi(), quality)
		if err != nil {
			return err
		}
		reviewed++
		fmt.Fprintf(h.out, "  next review in %d day(s), level: %s\n\n",
			outcome.Card.Interval, outcome.Card.MasteryLevel())
	}

	stats := h.learning.Stats()
	fmt.Fprintf(h.out, "Session done: %d reviewed. Streak: %d day(s).\n", reviewed, stats.Streak)
	return nil
}

// promptQuality reads a 0-5 rating, reprompting on bad input
func (h *Handler) promptQuality(reader *bufio.Reader) (learning.Quality, bool) {
	for {
		fmt.Fprint(h.out, "  quality 0-5 (0 blackout … 5 perfect, q quits): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, true
		}
		line = strings.TrimSpace(line)
		if line == "q" {
			return 0, true
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n > 5 {
			fmt.Fprintln(h.out, "  please enter a number from 0 to 5")
			continue
		}
		return learning.Quality(n), false
	}
}

func (h *Handler) handleDue(ctx context.Context) error {
	due, err := h.learning.DueWords(ctx)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		fmt.Fprintln(h.out, "No words due.")
		return nil
	}
	fmt.Fprintf(h.out, "%d word(s) due:\n", len(due))
	for _, item := range due {
		fmt.Fprintf(h.out, "  %s  [%s]  %s  (%s)\n",
			item.Word.Hanzi(), item.Word.Pinyin(),
			item.Word.Translation(h.cfg.Language), item.Card.MasteryLevel())
	}
	return nil
}

func (h *Handler) handleStats(ctx context.Context) error {
	stats := h.learning.Stats()
	fmt.Fprintf(h.out, "Words tracked:   %d\n", stats.TotalTracked)
	fmt.Fprintf(h.out, "  new:           %d\n", stats.New)
	fmt.Fprintf(h.out, "  learning:      %d\n", stats.Learning)
	fmt.Fprintf(h.out, "  reviewing:     %d\n", stats.Reviewing)
	fmt.Fprintf(h.out, "  mastered:      %d\n", stats.Mastered)
	fmt.Fprintf(h.out, "Due now:         %d\n", stats.DueNow)
	fmt.Fprintf(h.out, "Streak:          %d day(s)\n", stats.Streak)
	fmt.Fprintf(h.out, "Sessions:        %d\n", stats.TotalSessions)
	fmt.Fprintf(h.out, "Avg accuracy:    %.1f%%\n", stats.AvgAccuracy)
	return nil
}

func (h *Handler) handleWeak(ctx context.Context) error {
	weak, err := h.analytics.WeakWords(ctx, 15)
	if err != nil {
		return err
	}
	if len(weak) == 0 {
		fmt.Fprintln(h.out, "No weak words yet. Start reviewing!")
		return nil
	}
	fmt.Fprintln(h.out, "Weakest words (focus practice here):")
	for _, w := range weak {
		pinyin := "?"
		if w.Word != nil {
			pinyin = w.Word.Pinyin()
		}
		fmt.Fprintf(h.out, "  %s  [%s]  accuracy %.0f%%  (%d/%d)\n",
			w.Hanzi, pinyin, w.Card.Accuracy(), w.Card.CorrectReviews, w.Card.TotalReviews)
	}
	return nil
}

func (h *Handler) handleActivity(ctx context.Context, args []string) error {
	days := 14
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid day count: %s", args[0])
		}
		days = n
	}

	counts, err := h.analytics.DailyActivity(ctx, days)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Fprintln(h.out, "No review activity recorded.")
		return nil
	}
	for _, c := range counts {
		fmt.Fprintf(h.out, "  %s  %3d reviews, %3d correct\n", c.Date, c.Reviews, c.Correct)
	}
	return nil
}

func (h *Handler) handleReport(ctx context.Context, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	written, err := h.analytics.ExportReport(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Report exported: %s\n", written)
	return nil
}

func (h *Handler) handleImport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: import <file.json|file.xlsx>")
	}
	path := args[0]

	var words []*vocabulary.Word
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		result, err := excel.NewImporter().ImportFile(path)
		if err != nil {
			return err
		}
		for _, msg := range result.Errors {
			fmt.Fprintf(h.out, "  skipped %s\n", msg)
		}
		words = result.Words
	case ".json":
		loaded, err := filesystem.NewDeckLoader().LoadFromFile(path)
		if err != nil {
			return err
		}
		words = loaded
	default:
		return fmt.Errorf("unsupported deck format: %s", path)
	}

	if err := h.vocabRepo.SaveBatch(ctx, words); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Imported %d word(s) from %s\n", len(words), path)
	return nil
}

func (h *Handler) handleConfig(args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(h.out, "language:              %s\n", h.cfg.Language)
		fmt.Fprintf(h.out, "review_session_size:   %d\n", h.cfg.ReviewSessionSize)
		fmt.Fprintf(h.out, "max_hsk_level:         %d\n", h.cfg.MaxHSKLevel)
		fmt.Fprintf(h.out, "reminder_start_hour:   %d\n", h.cfg.ReminderStartHour)
		fmt.Fprintf(h.out, "reminder_end_hour:     %d\n", h.cfg.ReminderEndHour)
		fmt.Fprintf(h.out, "telegram_chat_id:      %d\n", h.cfg.TelegramChatID)
		return nil
	}

	if args[0] != "set" || len(args) != 3 {
		return fmt.Errorf("usage: config set <key> <value>")
	}
	key, value := args[1], args[2]

	switch key {
	case "language":
		if value != "de" && value != "en" && value != "both" {
			return fmt.Errorf("language must be de, en or both")
		}
		h.cfg.Language = value
	case "review_session_size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid session size: %s", value)
		}
		h.cfg.ReviewSessionSize = n
	case "max_hsk_level":
		n, err := strconv.Atoi(value)
		if err != nil || !vocabulary.IsValidHSKLevel(n) {
			return fmt.Errorf("HSK level must be 1-6")
		}
		h.cfg.MaxHSKLevel = n
	case "telegram_chat_id":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid chat id: %s", value)
		}
		h.cfg.TelegramChatID = n
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}

	if err := h.cfg.Save(h.cfgPath); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Saved %s = %s\n", key, value)
	return nil
}
