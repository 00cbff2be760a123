// Package tui provides the Bubble Tea screens for Pigmento.
// It maps keys to game actions, renders swatches and sliders, and runs
// the local and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTimeout is how long a transient status line stays visible.
const statusTimeout = 3 * time.Second

// clearStatusMsg asks a model to drop the status with the given sequence.
// Newer statuses carry higher sequences and survive older timers.
type clearStatusMsg struct {
	seq int
}

// clearStatusAfter returns a command that fires clearStatusMsg after d.
func clearStatusAfter(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// status is a transient message line.
type status struct {
	text string
	seq  int
}

// set replaces the text and returns the command that will clear it.
func (s *status) set(text string) tea.Cmd {
	s.seq++
	s.text = text
	return clearStatusAfter(s.seq, statusTimeout)
}

// clear drops the text if msg belongs to the current status.
func (s *status) clear(msg clearStatusMsg) {
	if msg.seq == s.seq {
		s.text = ""
	}
}
