package game

import (
	"errors"
	"sync"
	"testing"

	"github.com/vovakirdan/pigmento/internal/color"
	"github.com/vovakirdan/pigmento/internal/core"
)

func newTestBattle(values ...int) *Battle {
	return NewBattle(Options{Rand: &seqSource{values: values}})
}

func TestNewBattle(t *testing.T) {
	b := newTestBattle(4, 5, 6)

	if b.Target().Hex() != "456" {
		t.Errorf("Target() = %s, expected 456", b.Target())
	}
	if !b.State().InProgress() {
		t.Error("new battle should be in progress")
	}
	if b.Round() != 1 {
		t.Errorf("Round() = %d, expected 1", b.Round())
	}
	for _, id := range []core.PlayerID{core.Player1, core.Player2} {
		p, err := b.Player(id)
		if err != nil {
			t.Fatalf("Player(%v) failed: %v", id, err)
		}
		if p.ID != id || p.Score != 0 || len(p.Guesses) != 0 {
			t.Errorf("Player(%v) = %+v", id, p)
		}
		if p.Sliders != NewSliders(DefaultMidpoint) {
			t.Errorf("Player(%v).Sliders = %v, expected midpoint", id, p.Sliders)
		}
	}
}

func TestBattleSubmitSeparateHistories(t *testing.T) {
	b := newTestBattle(4, 5, 6)

	if _, err := b.Submit(core.Player1, 0, 0, 0); err != nil {
		t.Fatalf("Submit(P1) failed: %v", err)
	}
	if _, err := b.Submit(core.Player2, 1, 1, 1); err != nil {
		t.Fatalf("Submit(P2) failed: %v", err)
	}
	if _, err := b.Submit(core.Player2, 2, 2, 2); err != nil {
		t.Fatalf("Submit(P2) failed: %v", err)
	}

	p1, _ := b.Player(core.Player1)
	p2, _ := b.Player(core.Player2)
	if len(p1.Guesses) != 1 || len(p2.Guesses) != 2 {
		t.Errorf("histories = %d/%d, expected 1/2", len(p1.Guesses), len(p2.Guesses))
	}
}

func TestBattleWinAwardsPoint(t *testing.T) {
	b := newTestBattle(4, 5, 6)

	g, err := b.Submit(core.Player2, 4, 5, 6)
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if !g.Exact() {
		t.Fatal("expected exact guess")
	}

	winner, ok := b.State().Winner()
	if !ok || winner != core.Player2 {
		t.Errorf("Winner() = %v, %v; expected P2", winner, ok)
	}
	p2, _ := b.Player(core.Player2)
	if p2.Score != 1 {
		t.Errorf("P2 score = %d, expected 1", p2.Score)
	}
}

func TestBattleWinnerIsFinal(t *testing.T) {
	b := newTestBattle(4, 5, 6)
	b.Submit(core.Player1, 0, 0, 0)
	b.Submit(core.Player1, 4, 5, 6)

	for _, id := range []core.PlayerID{core.Player1, core.Player2} {
		_, err := b.Submit(id, 4, 5, 6)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Submit(%v) after round won error = %v, expected ErrInvalidTransition", id, err)
		}
	}

	last, err := b.Submit(core.Player1, 1, 1, 1)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if !last.Exact() {
		t.Error("rejected submit should return the player's last guess")
	}

	snap := b.Snapshot()
	if snap.Winner != core.Player1 {
		t.Errorf("Winner = %v, expected P1", snap.Winner)
	}
	if snap.Player1.Score != 1 || snap.Player2.Score != 0 {
		t.Errorf("scores = %d/%d, expected 1/0", snap.Player1.Score, snap.Player2.Score)
	}
	if len(snap.Player2.Guesses) != 0 {
		t.Error("rejected guesses must not be recorded")
	}
}

func TestBattleConcurrentSingleWinner(t *testing.T) {
	for range 50 {
		b := newTestBattle(9, 9, 9)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for _, id := range []core.PlayerID{core.Player1, core.Player2} {
			wg.Add(1)
			go func(id core.PlayerID) {
				defer wg.Done()
				<-start
				for range 10 {
					b.Submit(id, 9, 9, 9)
				}
			}(id)
		}
		close(start)
		wg.Wait()

		snap := b.Snapshot()
		if snap.Player1.Score+snap.Player2.Score != 1 {
			t.Fatalf("total score = %d, expected exactly 1", snap.Player1.Score+snap.Player2.Score)
		}
		if snap.Player(snap.Winner).Score != 1 {
			t.Fatalf("winner %v does not hold the point", snap.Winner)
		}
	}
}

func TestBattleSoftReset(t *testing.T) {
	b := newTestBattle(4, 5, 6, 1, 2, 3)
	b.Submit(core.Player1, 4, 5, 6)
	b.AdjustSlider(core.Player2, Red, 3)

	b.SoftReset()

	if !b.State().InProgress() {
		t.Error("SoftReset should reopen the round")
	}
	if b.Target().Hex() != "123" {
		t.Errorf("Target() = %s, expected new target 123", b.Target())
	}
	if b.Round() != 2 {
		t.Errorf("Round() = %d, expected 2", b.Round())
	}
	p1, _ := b.Player(core.Player1)
	p2, _ := b.Player(core.Player2)
	if p1.Score != 1 {
		t.Errorf("P1 score = %d after soft reset, expected 1", p1.Score)
	}
	if len(p1.Guesses) != 0 {
		t.Error("SoftReset should clear histories")
	}
	if p2.Sliders != NewSliders(DefaultMidpoint) {
		t.Errorf("P2 sliders = %v after soft reset, expected midpoint", p2.Sliders)
	}
}

func TestBattleHardReset(t *testing.T) {
	b := newTestBattle(4, 5, 6)
	wins := []core.PlayerID{core.Player1, core.Player1, core.Player1, core.Player2}
	for _, id := range wins {
		b.Submit(id, 4, 5, 6)
		b.SoftReset()
	}

	p1, _ := b.Player(core.Player1)
	p2, _ := b.Player(core.Player2)
	if p1.Score != 3 || p2.Score != 1 {
		t.Fatalf("scores = %d/%d, expected 3/1", p1.Score, p2.Score)
	}

	b.HardReset()

	p1, _ = b.Player(core.Player1)
	p2, _ = b.Player(core.Player2)
	if p1.Score != 0 || p2.Score != 0 {
		t.Errorf("scores = %d/%d after hard reset, expected 0/0", p1.Score, p2.Score)
	}
	if !b.State().InProgress() {
		t.Error("HardReset should leave the round in progress")
	}
	if b.Round() != 1 {
		t.Errorf("Round() = %d after hard reset, expected 1", b.Round())
	}
}

func TestBattleNext(t *testing.T) {
	b := newTestBattle(4, 5, 6)
	b.Submit(core.Player1, 4, 5, 6)

	if kept := b.Next(); !kept {
		t.Error("Next() after a win should keep scores")
	}
	p1, _ := b.Player(core.Player1)
	if p1.Score != 1 {
		t.Errorf("P1 score = %d, expected 1", p1.Score)
	}

	if kept := b.Next(); kept {
		t.Error("Next() on an undecided round should clear scores")
	}
	p1, _ = b.Player(core.Player1)
	if p1.Score != 0 {
		t.Errorf("P1 score = %d, expected 0", p1.Score)
	}
}

func TestBattleLabels(t *testing.T) {
	b := newTestBattle(4, 5, 6)
	if b.Label(core.Player1) != "Guess" || b.Label(core.Player2) != "Guess" {
		t.Error("labels should read Guess while in progress")
	}

	b.Submit(core.Player2, 4, 5, 6)
	if b.Label(core.Player1) != "Defeat" {
		t.Errorf("Label(P1) = %q, expected Defeat", b.Label(core.Player1))
	}
	if b.Label(core.Player2) != "Victory" {
		t.Errorf("Label(P2) = %q, expected Victory", b.Label(core.Player2))
	}
}

func TestBattleUnknownPlayer(t *testing.T) {
	b := newTestBattle(4, 5, 6)

	if _, err := b.Submit(core.PlayerNone, 1, 1, 1); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("Submit(PlayerNone) error = %v, expected ErrUnknownPlayer", err)
	}
	if _, err := b.Player(core.PlayerID(7)); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("Player(7) error = %v, expected ErrUnknownPlayer", err)
	}
	if err := b.AdjustSlider(core.PlayerNone, Red, 1); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("AdjustSlider(PlayerNone) error = %v, expected ErrUnknownPlayer", err)
	}
}

func TestBattleInvalidChannel(t *testing.T) {
	b := newTestBattle(4, 5, 6)
	if _, err := b.Submit(core.Player1, 0, -1, 0); !errors.Is(err, color.ErrInvalidChannel) {
		t.Errorf("Submit() error = %v, expected ErrInvalidChannel", err)
	}
}

func TestBattleSubmitSliders(t *testing.T) {
	b := newTestBattle(9, 7, 7)
	b.AdjustSlider(core.Player1, Red, 2)

	g, err := b.SubmitSliders(core.Player1)
	if err != nil {
		t.Fatalf("SubmitSliders() failed: %v", err)
	}
	if !g.Exact() {
		t.Errorf("SubmitSliders() = %s, expected exact 977", g.Color)
	}
}

func TestBattleSnapshotState(t *testing.T) {
	b := newTestBattle(2, 4, 6)

	snap := b.Snapshot()
	if !snap.State().InProgress() {
		t.Fatal("fresh snapshot should be in progress")
	}

	if _, err := b.SubmitColor(core.Player2, b.Target()); err != nil {
		t.Fatalf("SubmitColor() failed: %v", err)
	}
	winner, decided := b.Snapshot().State().Winner()
	if !decided || winner != core.Player2 {
		t.Errorf("State().Winner() = (%v, %v), expected (P2, true)", winner, decided)
	}

	// Earlier snapshots are not affected.
	if !snap.State().InProgress() {
		t.Error("old snapshot changed state")
	}
}
