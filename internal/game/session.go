package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/pigmento/internal/color"
	"github.com/vovakirdan/pigmento/internal/core"
)

// Status is the solo game state.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "In progress"
	case StatusWon:
		return "Won"
	default:
		return "Unknown"
	}
}

// DefaultMidpoint is where sliders start.
const DefaultMidpoint = 7

// OfferResult describes what happened to an externally supplied target.
type OfferResult int

const (
	// OfferAdopted means the color became the target immediately.
	OfferAdopted OfferResult = iota
	// OfferPending means progress exists and the host must confirm.
	OfferPending
)

// Options configures a new engine.
type Options struct {
	Rand     color.Source // Random source for targets; nil uses a time seed
	Midpoint *int         // Initial slider position; nil selects DefaultMidpoint
	Feedback Feedback     // Optional; defaults to NoopFeedback
}

// OptionsFromConfig builds engine options from a runtime config.
func OptionsFromConfig(cfg core.RuntimeConfig) Options {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	midpoint := cfg.Midpoint
	return Options{
		Rand:     rand.New(rand.NewSource(seed)),
		Midpoint: &midpoint,
	}
}

func (o Options) withDefaults() Options {
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Feedback == nil {
		o.Feedback = NoopFeedback{}
	}
	if o.Midpoint == nil {
		midpoint := DefaultMidpoint
		o.Midpoint = &midpoint
	}
	return o
}

// Session is a solo game: one target, one guess history.
// It is not safe for concurrent use.
type Session struct {
	rng      color.Source
	feedback Feedback
	midpoint int

	target  color.Color
	guesses []Guess
	status  Status
	sliders Sliders
	pending *color.Color
}

// NewSession starts a game with a fresh random target.
func NewSession(opts Options) *Session {
	opts = opts.withDefaults()
	s := &Session{
		rng:      opts.Rand,
		feedback: opts.Feedback,
		midpoint: *opts.Midpoint,
	}
	s.Reset()
	return s
}

// SetFeedback replaces the feedback capability.
func (s *Session) SetFeedback(f Feedback) {
	if f == nil {
		f = NoopFeedback{}
	}
	s.feedback = f
}

// ID implements registry.Game.
func (s *Session) ID() string { return "solo" }

// Title implements registry.Game.
func (s *Session) Title() string { return "Guess the Color" }

// Players implements registry.Game.
func (s *Session) Players() int { return 1 }

// Target returns the color being guessed.
func (s *Session) Target() color.Color { return s.target }

// Status returns the current state.
func (s *Session) Status() Status { return s.status }

// Won reports whether the target has been matched.
func (s *Session) Won() bool { return s.status == StatusWon }

// Guesses returns a copy of the history, oldest first.
func (s *Session) Guesses() []Guess { return copyGuesses(s.guesses) }

// GuessCount returns the number of guesses made.
func (s *Session) GuessCount() int { return len(s.guesses) }

// Last returns the most recent guess.
func (s *Session) Last() (Guess, bool) {
	if len(s.guesses) == 0 {
		return Guess{}, false
	}
	return s.guesses[len(s.guesses)-1], true
}

// Sliders returns the current slider positions.
func (s *Session) Sliders() Sliders { return s.sliders }

// AdjustSlider moves one slider by delta, clamped to [0,15].
func (s *Session) AdjustSlider(ch Channel, delta int) {
	s.sliders.Adjust(ch, delta)
}

// SetSlider places one slider, clamped to [0,15].
func (s *Session) SetSlider(ch Channel, v int) {
	s.sliders.Set(ch, v)
}

// Submit scores a guess built from three channel values.
// After a win it returns the last guess and ErrInvalidTransition.
// Invalid channels are rejected without touching state.
func (s *Session) Submit(r, g, b float64) (Guess, error) {
	if s.status == StatusWon {
		last, _ := s.Last()
		return last, ErrInvalidTransition
	}
	c, err := color.FromChannels(r, g, b)
	if err != nil {
		return Guess{}, err
	}
	return s.submit(c), nil
}

// SubmitSliders scores the color currently on the sliders.
func (s *Session) SubmitSliders() (Guess, error) {
	return s.Submit(float64(s.sliders[Red]), float64(s.sliders[Green]), float64(s.sliders[Blue]))
}

func (s *Session) submit(c color.Color) Guess {
	guess := NewGuess(c, s.target)
	s.guesses = append(s.guesses, guess)
	if guess.Exact() {
		s.status = StatusWon
		s.feedback.Success()
	} else {
		s.feedback.Impact()
	}
	return guess
}

// Reset starts over with a new random target.
func (s *Session) Reset() {
	s.adopt(color.Generate(s.rng))
}

func (s *Session) adopt(target color.Color) {
	s.target = target
	s.guesses = nil
	s.status = StatusInProgress
	s.sliders = NewSliders(s.midpoint)
	s.pending = nil
}

// Offer proposes an externally supplied target, such as one from a deep link.
// Without any guesses the color is adopted at once; otherwise it is held
// until ConfirmPending or DeclinePending.
func (s *Session) Offer(c color.Color) OfferResult {
	if len(s.guesses) == 0 {
		s.adopt(c)
		return OfferAdopted
	}
	s.pending = &c
	return OfferPending
}

// Pending returns the color awaiting confirmation.
func (s *Session) Pending() (color.Color, bool) {
	if s.pending == nil {
		return color.Color{}, false
	}
	return *s.pending, true
}

// ConfirmPending discards progress and adopts the pending color.
// It returns false when nothing is pending.
func (s *Session) ConfirmPending() bool {
	if s.pending == nil {
		return false
	}
	s.adopt(*s.pending)
	return true
}

// DeclinePending drops the pending color and keeps the current game.
func (s *Session) DeclinePending() {
	s.pending = nil
}

// ReviewDue reports whether this session's win should trigger a review prompt.
func (s *Session) ReviewDue(p ReviewPolicy, last, now time.Time) bool {
	return s.Won() && p.ShouldPrompt(len(s.guesses), last, now)
}
