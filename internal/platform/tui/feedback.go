package tui

import (
	"io"
	"sync"

	"github.com/vovakirdan/pigmento/internal/game"
)

// FeedbackKind is the last event reported through TerminalFeedback.
type FeedbackKind int

const (
	FeedbackNone FeedbackKind = iota
	FeedbackImpact
	FeedbackSuccess
)

// TerminalFeedback implements game.Feedback for a terminal.
// A win rings the bell on out; every event is remembered so the view can
// flash the guess swatch.
type TerminalFeedback struct {
	mu    sync.Mutex
	out   io.Writer
	last  FeedbackKind
	count int
}

var _ game.Feedback = (*TerminalFeedback)(nil)

// NewTerminalFeedback creates feedback that rings the bell on out.
// A nil writer keeps the terminal silent.
func NewTerminalFeedback(out io.Writer) *TerminalFeedback {
	return &TerminalFeedback{out: out}
}

// Impact records a missed guess.
func (f *TerminalFeedback) Impact() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = FeedbackImpact
	f.count++
}

// Success records a win and rings the bell.
func (f *TerminalFeedback) Success() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = FeedbackSuccess
	f.count++
	if f.out != nil {
		//nolint:errcheck // Best-effort bell
		f.out.Write([]byte("\a"))
	}
}

// Last returns the most recent event and how many events were seen.
func (f *TerminalFeedback) Last() (FeedbackKind, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.count
}

// reviewBanner implements game.ReviewRequester by showing a banner in the
// solo view until the next game starts.
type reviewBanner struct {
	shown bool
}

var _ game.ReviewRequester = (*reviewBanner)(nil)

func (r *reviewBanner) RequestReview() {
	r.shown = true
}

const reviewText = "Enjoying Pigmento? A star on the project page helps a lot!"
