package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/pigmento/internal/storage"
)

func statsKeys(t *testing.T, m StatsModel, keys ...string) StatsModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(StatsModel)
	}
	return m
}

func TestStatsTabs(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveSoloGame(storage.SoloGameRecord{Target: "333", Guesses: 4, BestSimilarity: 1, Won: true}); err != nil {
		t.Fatalf("SaveSoloGame() failed: %v", err)
	}
	if _, err := store.SaveBattleRound(storage.BattleRoundRecord{Mode: "Local", Round: 1, Target: "FFF", Winner: 2, Score2: 1}); err != nil {
		t.Fatalf("SaveBattleRound() failed: %v", err)
	}

	m := NewStatsModel(store, 100, 30)
	if m.tab != statsTabSolo {
		t.Fatalf("tab = %v, expected Solo", m.tab)
	}
	rows := m.Rows()
	if len(rows) != 1 || rows[0][0] != "#333" || rows[0][3] != "solved" {
		t.Errorf("solo rows = %v", rows)
	}
	if !strings.Contains(m.Summary(), "Played 1") {
		t.Errorf("summary = %q", m.Summary())
	}

	m = statsKeys(t, m, "tab")
	rows = m.Rows()
	if m.tab != statsTabBattle || len(rows) != 1 || rows[0][3] != "P2" {
		t.Errorf("battle tab %v rows = %v", m.tab, rows)
	}

	m = statsKeys(t, m, "tab")
	if m.tab != statsTabOnline || len(m.Rows()) != 0 {
		t.Errorf("online tab %v rows = %v", m.tab, m.Rows())
	}

	m = statsKeys(t, m, "tab")
	if m.tab != statsTabSolo {
		t.Errorf("tab should wrap to Solo, got %v", m.tab)
	}
	m = statsKeys(t, m, "shift+tab")
	if m.tab != statsTabOnline {
		t.Errorf("shift+tab should wrap to Online, got %v", m.tab)
	}
}

func TestStatsWithoutStore(t *testing.T) {
	m := NewStatsModel(nil, 80, 24)
	if len(m.Rows()) != 0 {
		t.Errorf("rows = %v, expected none", m.Rows())
	}
	if !strings.Contains(m.View(), "STATS") {
		t.Error("view should render without a store")
	}

	m = statsKeys(t, m, "esc")
	if !m.IsGoingBack() {
		t.Error("esc should go back")
	}
	m = statsKeys(t, NewStatsModel(nil, 80, 24), "q")
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
