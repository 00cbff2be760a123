package core

// RuntimeConfig contains configuration passed to modes at creation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	Seed     int64 // RNG seed for reproducible targets (0 = time based)
	Midpoint int   // Slider start position on every channel
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		Seed:     0, // 0 means use current time in platform layer
		Midpoint: 7,
	}
}

// PlayerID identifies one of the two battle slots.
// The zero value means "no player" and is used for an undecided winner.
type PlayerID int

const (
	PlayerNone PlayerID = iota
	Player1
	Player2
)

// String returns a short label for the player.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "-"
	}
}

// Valid reports whether p names one of the two slots.
func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// Other returns the opposing player.
func (p PlayerID) Other() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return PlayerNone
	}
}
