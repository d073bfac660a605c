package learning

import (
	"errors"
	"math"
	"time"
)

// Quality is the learner's 0-5 self-assessment of a single recall attempt.
type Quality int

const (
	// Complete blackout, unable to recall
	QualityBlackout Quality = 0
	// Wrong, but remembered upon seeing the answer
	QualityIncorrect Quality = 1
	// Wrong, but the answer felt familiar
	QualityIncorrectFamiliar Quality = 2
	// Correct, with significant difficulty
	QualityCorrectDifficult Quality = 3
	// Correct, after some hesitation
	QualityCorrectHesitation Quality = 4
	// Perfect recall
	QualityPerfect Quality = 5
)

// ErrInvalidQuality is returned when a quality rating is outside [0, 5].
var ErrInvalidQuality = errors.New("quality must be between 0 and 5")

const (
	minEaseFactor = 1.3
	secondsPerDay = 86400
)

// IsCorrect reports whether the rating counts as a successful recall.
func (q Quality) IsCorrect() bool {
	return q >= QualityCorrectDifficult
}

// Apply runs one SM-2 update on the card in place.
//
// On success (quality >= 3) the interval follows the 1 / 6 / interval*ease
// progression and the consecutive-success count grows. On failure both the
// count and the interval reset, but the ease factor only degrades smoothly,
// so a lapsed card recovers faster than a brand-new one. The ease factor is
// adjusted on every review and never drops below 1.3.
func Apply(card *CardState, quality Quality, now time.Time) error {
	if quality < QualityBlackout || quality > QualityPerfect {
		return ErrInvalidQuality
	}

	card.TotalReviews++
	card.LastReviewed = float64(now.Unix())

	if quality.IsCorrect() {
		card.CorrectReviews++
		switch card.Repetitions {
		case 0:
			card.Interval = 1
		case 1:
			card.Interval = 6
		default:
			card.Interval = int(math.Round(float64(card.Interval) * card.EaseFactor))
		}
		card.Repetitions++
	} else {
		card.Repetitions = 0
		card.Interval = 1
	}

	q := float64(quality)
	ease := card.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ease < minEaseFactor {
		ease = minEaseFactor
	}
	card.EaseFactor = ease

	card.NextReview = float64(now.Unix()) + float64(card.Interval)*secondsPerDay
	return nil
}
