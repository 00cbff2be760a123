// Package game holds the Pigmento engines: the solo guessing session and the
// two-player battle. Engines are pure state machines; rendering, sound and
// persistence are supplied by the host through small interfaces.
package game

import (
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/vovakirdan/pigmento/internal/color"
)

// ErrInvalidTransition is returned when a guess is submitted after the
// game or round has already been decided. State is left untouched.
var ErrInvalidTransition = errors.New("game: guess submitted after the round was decided")

// ErrUnknownPlayer is returned for a player id outside the two battle slots.
var ErrUnknownPlayer = errors.New("game: unknown player")

// Guess is an attempted color scored against a target.
// The similarity is fixed at creation.
type Guess struct {
	ID         uuid.UUID   `json:"id"`
	Color      color.Color `json:"color"`
	Similarity float64     `json:"similarity"`
}

// NewGuess scores c against target.
func NewGuess(c, target color.Color) Guess {
	return Guess{
		ID:         uuid.New(),
		Color:      c,
		Similarity: color.Similarity(c, target),
	}
}

// Exact reports whether the guess matched the target.
func (g Guess) Exact() bool {
	return g.Similarity == 1.0
}

// Percent returns the similarity as a whole percentage.
func (g Guess) Percent() int {
	return int(math.Round(g.Similarity * 100))
}

func copyGuesses(in []Guess) []Guess {
	if len(in) == 0 {
		return nil
	}
	out := make([]Guess, len(in))
	copy(out, in)
	return out
}
