package multiplayer

import (
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/pigmento/internal/core"
	"github.com/vovakirdan/pigmento/internal/game"
)

const waitTimeout = 2 * time.Second

// fixedSource always yields the same target.
type fixedSource struct {
	mu   sync.Mutex
	vals []int
	i    int
}

func (s *fixedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

func fixedBattle(r, g, b int) *game.Battle {
	return game.NewBattle(game.Options{Rand: &fixedSource{vals: []int{r, g, b}}})
}

func fixedFactory(r, g, b int) BattleFactory {
	return func(core.RuntimeConfig) *game.Battle {
		return fixedBattle(r, g, b)
	}
}

// expectEvent reads events until one of type T arrives.
func expectEvent[T SessionEvent](t *testing.T, s *ChannelSession) T {
	t.Helper()
	timeout := time.After(waitTimeout)
	for {
		select {
		case evt := <-s.Events():
			if e, ok := evt.(T); ok {
				return e
			}
		case <-timeout:
			var zero T
			t.Fatalf("session %s: timed out waiting for %T", s.ID(), zero)
			return zero
		}
	}
}

// expectSnapshot reads snapshots until match returns true.
func expectSnapshot(t *testing.T, s *ChannelSession, match func(game.BattleSnapshot) bool) game.BattleSnapshot {
	t.Helper()
	timeout := time.After(waitTimeout)
	for {
		select {
		case evt := <-s.Events():
			if e, ok := evt.(SnapshotEvent); ok && match(e.Snapshot) {
				return e.Snapshot
			}
		case <-timeout:
			t.Fatalf("session %s: timed out waiting for snapshot", s.ID())
			return game.BattleSnapshot{}
		}
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}
