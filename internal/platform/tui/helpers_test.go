package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pigmento/internal/color"
	"github.com/vovakirdan/pigmento/internal/core"
	"github.com/vovakirdan/pigmento/internal/game"
	"github.com/vovakirdan/pigmento/internal/storage"
)

// keyMsg builds the key message Bubble Tea delivers for s.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fixedLevel is a random source that always draws the same level.
type fixedLevel int

func (f fixedLevel) Intn(int) int { return int(f) }

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testSettings() Settings {
	s := Settings{
		Runtime:      core.DefaultConfig(),
		HistoryLimit: 5,
		Review:       game.DefaultReviewPolicy(),
	}
	s.Runtime.ScreenW = 100
	s.Runtime.ScreenH = 40
	return s
}

// isQuit reports whether cmd is tea.Quit.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// moveTo returns the keys that walk sliders from midpoint 7 to target,
// starting on red, using the given bindings.
func moveTo(target color.Color, dec, inc, next string) []string {
	var keys []string
	for i, level := range target.Levels() {
		delta := level - game.DefaultMidpoint
		for ; delta < 0; delta++ {
			keys = append(keys, dec)
		}
		for ; delta > 0; delta-- {
			keys = append(keys, inc)
		}
		if i < 2 {
			keys = append(keys, next)
		}
	}
	return keys
}
