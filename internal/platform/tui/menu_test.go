package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pigmento/internal/multiplayer"
)

func menuKeys(t *testing.T, m MenuModel, keys ...string) (MenuModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(MenuModel)
	}
	return m, cmd
}

func TestMenuItems(t *testing.T) {
	tests := []struct {
		name   string
		online bool
		want   []MenuItem
	}{
		{
			name: "local",
			want: []MenuItem{
				{GameID: "solo", Title: "Guess the Color", Mode: multiplayer.MatchModeSolo},
				{GameID: "battle", Title: "Color Battle", Mode: multiplayer.MatchModeLocal},
			},
		},
		{
			name:   "online",
			online: true,
			want: []MenuItem{
				{GameID: "solo", Title: "Guess the Color", Mode: multiplayer.MatchModeSolo},
				{GameID: "battle", Title: "Color Battle", Mode: multiplayer.MatchModeLocal},
				{GameID: "battle", Title: "Color Battle", Mode: multiplayer.MatchModeOnlinePvP},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := NewMenuModel(80, 24, tt.online).Items()
			if len(items) != len(tt.want) {
				t.Fatalf("got %d items, expected %d: %+v", len(items), len(tt.want), items)
			}
			for i := range items {
				if items[i] != tt.want[i] {
					t.Errorf("item %d = %+v, expected %+v", i, items[i], tt.want[i])
				}
			}
		})
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(80, 24, true)

	// Cursor stops at both ends.
	m, _ = menuKeys(t, m, "up", "down", "down", "down", "down")
	m, cmd := menuKeys(t, m, "enter")
	if !isQuit(cmd) {
		t.Error("select should end the menu program")
	}
	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.Mode != multiplayer.MatchModeOnlinePvP {
		t.Errorf("selected %+v, expected online battle", sel)
	}
	if m.IsQuitting() {
		t.Error("select is not a quit")
	}
}

func TestMenuStatsAndQuit(t *testing.T) {
	m, cmd := menuKeys(t, NewMenuModel(80, 24, false), "tab")
	if !m.WantsStats() || !isQuit(cmd) {
		t.Error("tab should open stats")
	}

	m, cmd = menuKeys(t, NewMenuModel(80, 24, false), "q")
	if !m.IsQuitting() || !isQuit(cmd) || m.Selected() != nil {
		t.Error("q should quit without a selection")
	}
	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}

func TestMenuView(t *testing.T) {
	view := NewMenuModel(80, 24, true).View()
	for _, want := range []string{"P I G M E N T O", "> Guess the Color", "Color Battle (same keyboard)", "Color Battle (online)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"abc", 9, "   abc"},
		{"abc", 3, "abc"},
		{"abcdef", 4, "abcdef"},
		{titleStyle.Render("ab"), 6, "  " + titleStyle.Render("ab")},
	}

	for _, tt := range tests {
		if got := centerText(tt.text, tt.width); got != tt.want {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tt.text, tt.width, got, tt.want)
		}
	}
}
