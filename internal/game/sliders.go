package game

import (
	"github.com/vovakirdan/pigmento/internal/color"
)

// Channel selects one slider.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	default:
		return "Unknown"
	}
}

// Next cycles forward through the channels.
func (c Channel) Next() Channel {
	return (c + 1) % 3
}

// Prev cycles backward through the channels.
func (c Channel) Prev() Channel {
	return (c + 2) % 3
}

// Sliders holds the three slider positions, each in [0,15].
type Sliders [3]int

// NewSliders places every slider at pos, clamped to the valid range.
func NewSliders(pos int) Sliders {
	pos = clampLevel(pos)
	return Sliders{pos, pos, pos}
}

// Adjust moves one slider by delta and clamps it.
func (s *Sliders) Adjust(ch Channel, delta int) {
	if ch < Red || ch > Blue {
		return
	}
	s[ch] = clampLevel(s[ch] + delta)
}

// Set places one slider, clamped to the valid range.
func (s *Sliders) Set(ch Channel, v int) {
	if ch < Red || ch > Blue {
		return
	}
	s[ch] = clampLevel(v)
}

// Color returns the color the sliders currently describe.
func (s Sliders) Color() color.Color {
	return color.MustNew(clampLevel(s[Red]), clampLevel(s[Green]), clampLevel(s[Blue]))
}

func clampLevel(v int) int {
	return max(0, min(color.MaxLevel, v))
}
