package game

import "time"

// Feedback is the host's tactile/audible response to game events.
type Feedback interface {
	// Impact fires on every scored guess that did not win.
	Impact()
	// Success fires when a guess wins the game or round.
	Success()
}

// NoopFeedback ignores every event.
type NoopFeedback struct{}

func (NoopFeedback) Impact()  {}
func (NoopFeedback) Success() {}

// ReviewRequester asks the user to rate the app.
type ReviewRequester interface {
	RequestReview()
}

// NoopReviewRequester never prompts.
type NoopReviewRequester struct{}

func (NoopReviewRequester) RequestReview() {}

// ReviewPolicy gates the review prompt.
type ReviewPolicy struct {
	Threshold int           // Minimum guesses in the winning game
	Cooldown  time.Duration // Minimum time between prompts
}

// DefaultReviewPolicy prompts after a 5-guess win, at most every 130 days.
func DefaultReviewPolicy() ReviewPolicy {
	return ReviewPolicy{
		Threshold: 5,
		Cooldown:  130 * 24 * time.Hour,
	}
}

// ShouldPromptReview applies the default policy.
// A zero last means no review was ever requested.
func ShouldPromptReview(guessCount int, last, now time.Time) bool {
	return DefaultReviewPolicy().ShouldPrompt(guessCount, last, now)
}

// ShouldPrompt reports whether a won game with guessCount guesses should
// trigger a review request.
func (p ReviewPolicy) ShouldPrompt(guessCount int, last, now time.Time) bool {
	if guessCount < p.Threshold {
		return false
	}
	if last.IsZero() {
		return true
	}
	return now.Sub(last) > p.Cooldown
}
