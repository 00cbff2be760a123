package game

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/pigmento/internal/color"
	"github.com/vovakirdan/pigmento/internal/deeplink"
)

// SharePayload is the serializable result of a solo game.
type SharePayload struct {
	Target  color.Color `json:"target"`
	Guesses []Guess     `json:"guesses"`
	Won     bool        `json:"won"`
	Link    string      `json:"link"`
}

// Share returns the current target and history for the host's share sheet.
func (s *Session) Share() SharePayload {
	guesses := s.Guesses()
	if guesses == nil {
		guesses = []Guess{}
	}
	return SharePayload{
		Target:  s.target,
		Guesses: guesses,
		Won:     s.Won(),
		Link:    deeplink.Build(s.target),
	}
}

// JSON encodes the payload.
func (p SharePayload) JSON() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("game: cannot encode share payload: %w", err)
	}
	return data, nil
}

// Message returns the challenge text for the payload.
func (p SharePayload) Message() string {
	return ShareMessage(len(p.Guesses), p.Target)
}

// ShareMessage is the challenge sent to friends after a win.
func ShareMessage(tries int, target color.Color) string {
	return fmt.Sprintf("I've just guessed this color in %d tries. Can you do better? %s", tries, deeplink.Build(target))
}
