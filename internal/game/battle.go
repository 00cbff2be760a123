package game

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/pigmento/internal/color"
	"github.com/vovakirdan/pigmento/internal/core"
)

// RoundState is either in progress or won by exactly one player.
type RoundState struct {
	winner core.PlayerID
}

// InProgress reports whether the round is still open.
func (r RoundState) InProgress() bool {
	return r.winner == core.PlayerNone
}

// Winner returns the round winner, if any.
func (r RoundState) Winner() (core.PlayerID, bool) {
	return r.winner, r.winner != core.PlayerNone
}

// String returns a human-readable round state.
func (r RoundState) String() string {
	if r.InProgress() {
		return "In progress"
	}
	return fmt.Sprintf("Won by %s", r.winner)
}

// Player is one battle participant.
type Player struct {
	ID      core.PlayerID `json:"id"`
	Score   int           `json:"score"`
	Guesses []Guess       `json:"guesses"`
	Sliders Sliders       `json:"sliders"`
}

// BattleSnapshot is a consistent copy of a battle.
type BattleSnapshot struct {
	Round   int           `json:"round"`
	Target  color.Color   `json:"target"`
	Winner  core.PlayerID `json:"winner"`
	Player1 Player        `json:"player1"`
	Player2 Player        `json:"player2"`
}

// State returns the round state the snapshot was taken in.
func (s BattleSnapshot) State() RoundState {
	return RoundState{winner: s.Winner}
}

// Player returns the snapshot of one player.
func (s BattleSnapshot) Player(id core.PlayerID) Player {
	if id == core.Player2 {
		return s.Player2
	}
	return s.Player1
}

// Battle is two players racing to match the same target.
// All methods are safe for concurrent use; the first exact match of a round
// wins it and no later guess can change that.
type Battle struct {
	mu       sync.Mutex
	rng      color.Source
	feedback Feedback
	midpoint int

	round   int
	target  color.Color
	players [2]Player
	state   RoundState
}

// NewBattle starts round one with zero scores.
func NewBattle(opts Options) *Battle {
	opts = opts.withDefaults()
	b := &Battle{
		rng:      opts.Rand,
		feedback: opts.Feedback,
		midpoint: *opts.Midpoint,
	}
	b.players[0].ID = core.Player1
	b.players[1].ID = core.Player2
	b.reset(true)
	return b
}

// SetFeedback replaces the feedback capability.
func (b *Battle) SetFeedback(f Feedback) {
	if f == nil {
		f = NoopFeedback{}
	}
	b.mu.Lock()
	b.feedback = f
	b.mu.Unlock()
}

// ID implements registry.Game.
func (b *Battle) ID() string { return "battle" }

// Title implements registry.Game.
func (b *Battle) Title() string { return "Color Battle" }

// Players implements registry.Game.
func (b *Battle) Players() int { return 2 }

func (b *Battle) player(id core.PlayerID) (*Player, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	return &b.players[id-1], nil
}

// Target returns the shared target.
func (b *Battle) Target() color.Color {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.target
}

// Round returns the 1-based round number since the last hard reset.
func (b *Battle) Round() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.round
}

// State returns the round state.
func (b *Battle) State() RoundState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Player returns a copy of one player.
func (b *Battle) Player(id core.PlayerID) (Player, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, err := b.player(id)
	if err != nil {
		return Player{}, err
	}
	return copyPlayer(*p), nil
}

func copyPlayer(p Player) Player {
	p.Guesses = copyGuesses(p.Guesses)
	return p
}

// Snapshot returns a consistent copy of the whole battle.
func (b *Battle) Snapshot() BattleSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BattleSnapshot{
		Round:   b.round,
		Target:  b.target,
		Winner:  b.state.winner,
		Player1: copyPlayer(b.players[0]),
		Player2: copyPlayer(b.players[1]),
	}
}

// AdjustSlider moves one of a player's sliders by delta.
func (b *Battle) AdjustSlider(id core.PlayerID, ch Channel, delta int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, err := b.player(id)
	if err != nil {
		return err
	}
	p.Sliders.Adjust(ch, delta)
	return nil
}

// Submit scores a guess for one player from three channel values.
func (b *Battle) Submit(id core.PlayerID, r, g, bl float64) (Guess, error) {
	c, err := color.FromChannels(r, g, bl)
	if err != nil {
		return Guess{}, err
	}
	return b.SubmitColor(id, c)
}

// SubmitSliders scores the color on a player's own sliders.
func (b *Battle) SubmitSliders(id core.PlayerID) (Guess, error) {
	b.mu.Lock()
	p, err := b.player(id)
	if err != nil {
		b.mu.Unlock()
		return Guess{}, err
	}
	c := p.Sliders.Color()
	b.mu.Unlock()
	return b.SubmitColor(id, c)
}

// SubmitColor scores c for one player. Once the round has a winner every
// submission returns that player's last guess and ErrInvalidTransition.
func (b *Battle) SubmitColor(id core.PlayerID, c color.Color) (Guess, error) {
	b.mu.Lock()
	p, err := b.player(id)
	if err != nil {
		b.mu.Unlock()
		return Guess{}, err
	}

	if !b.state.InProgress() {
		var last Guess
		if n := len(p.Guesses); n > 0 {
			last = p.Guesses[n-1]
		}
		b.mu.Unlock()
		return last, ErrInvalidTransition
	}

	guess := NewGuess(c, b.target)
	p.Guesses = append(p.Guesses, guess)
	won := guess.Exact()
	if won {
		b.state = RoundState{winner: id}
		p.Score++
	}
	feedback := b.feedback
	b.mu.Unlock()

	if won {
		feedback.Success()
	} else {
		feedback.Impact()
	}
	return guess, nil
}

// SoftReset starts a new round and keeps the scores.
func (b *Battle) SoftReset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset(false)
}

// HardReset starts a new round and zeroes both scores.
func (b *Battle) HardReset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset(true)
}

// Next advances like the shared reset button: a decided round moves on with
// scores kept, an undecided one is abandoned with scores cleared.
// It reports whether the scores were kept.
func (b *Battle) Next() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	soft := !b.state.InProgress()
	b.reset(!soft)
	return soft
}

// Label returns the action label shown under a player's controls.
func (b *Battle) Label(id core.PlayerID) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ButtonLabel(b.state, id)
}

// ButtonLabel maps a round state to a player's button text.
func ButtonLabel(state RoundState, id core.PlayerID) string {
	winner, decided := state.Winner()
	switch {
	case !decided:
		return "Guess"
	case winner == id:
		return "Victory"
	default:
		return "Defeat"
	}
}

// reset must be called with mu held.
func (b *Battle) reset(hard bool) {
	b.target = color.Generate(b.rng)
	b.state = RoundState{}
	if hard {
		b.round = 1
	} else {
		b.round++
	}
	for i := range b.players {
		p := &b.players[i]
		p.Guesses = nil
		p.Sliders = NewSliders(b.midpoint)
		if hard {
			p.Score = 0
		}
	}
}
