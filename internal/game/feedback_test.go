package game

import (
	"testing"
	"time"
)

func TestShouldPromptReview(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name    string
		guesses int
		last    time.Time
		want    bool
	}{
		{"too few guesses", 4, time.Time{}, false},
		{"never asked", 5, time.Time{}, true},
		{"many guesses never asked", 12, time.Time{}, true},
		{"asked recently", 5, now.Add(-10 * day), false},
		{"cooldown not over", 5, now.Add(-129 * day), false},
		{"exactly at cooldown", 5, now.Add(-130 * day), false},
		{"cooldown over", 5, now.Add(-130*day - time.Minute), true},
		{"long ago", 8, now.Add(-400 * day), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldPromptReview(tt.guesses, tt.last, now); got != tt.want {
				t.Errorf("ShouldPromptReview(%d, %v) = %v, expected %v", tt.guesses, tt.last, got, tt.want)
			}
		})
	}
}

func TestReviewPolicyCustom(t *testing.T) {
	p := ReviewPolicy{Threshold: 1, Cooldown: time.Hour}
	now := time.Now()

	if !p.ShouldPrompt(1, now.Add(-2*time.Hour), now) {
		t.Error("custom policy should prompt after cooldown")
	}
	if p.ShouldPrompt(1, now.Add(-time.Hour), now) {
		t.Error("custom policy should wait until the cooldown has passed")
	}
	if p.ShouldPrompt(1, now.Add(-30*time.Minute), now) {
		t.Error("custom policy should respect cooldown")
	}
}

func TestSessionReviewDue(t *testing.T) {
	s := newTestSession(3, 3, 3)
	policy := DefaultReviewPolicy()
	now := time.Now()

	for range 4 {
		s.Submit(0, 0, 0)
	}
	if s.ReviewDue(policy, time.Time{}, now) {
		t.Error("ReviewDue() before a win should be false")
	}

	s.Submit(3, 3, 3)
	if !s.ReviewDue(policy, time.Time{}, now) {
		t.Error("ReviewDue() after a 5-guess win should be true")
	}
}

func TestNoopImplementations(t *testing.T) {
	var fb Feedback = NoopFeedback{}
	fb.Impact()
	fb.Success()

	var rr ReviewRequester = NoopReviewRequester{}
	rr.RequestReview()
}
