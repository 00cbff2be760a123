package multiplayer

import "testing"

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("s1", 2)

	s.Send(LobbyCreatedEvent{Code: "A"})
	s.Send(LobbyCreatedEvent{Code: "B"})
	s.Send(LobbyCreatedEvent{Code: "C"})

	if s.Dropped() != 1 {
		t.Errorf("Dropped() = %d, expected 1", s.Dropped())
	}
	first := (<-s.Events()).(LobbyCreatedEvent)
	second := (<-s.Events()).(LobbyCreatedEvent)
	if first.Code != "B" || second.Code != "C" {
		t.Errorf("events = %s, %s, expected B, C", first.Code, second.Code)
	}
}

func TestChannelSessionClosed(t *testing.T) {
	s := NewChannelSession("s1", 4)
	s.Close()
	s.Close()

	s.Send(LobbyCreatedEvent{Code: "A"})
	select {
	case evt := <-s.Events():
		t.Errorf("closed session received %v", evt)
	default:
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done() should be closed")
	}
}

func TestSessionRegistry(t *testing.T) {
	r := NewSessionRegistry()
	a := NewChannelSession("a", 0)
	r.Register(a)

	if r.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", r.Count())
	}
	got, ok := r.Get("a")
	if !ok || got.ID() != "a" {
		t.Errorf("Get(a) = %v, %v", got, ok)
	}
	r.Unregister("a")
	if _, ok := r.Get("a"); ok {
		t.Error("Get after Unregister should fail")
	}
}

func TestMatchModeString(t *testing.T) {
	tests := map[MatchMode]string{
		MatchModeSolo:      "Solo",
		MatchModeLocal:     "Local",
		MatchModeOnlinePvP: "Online PvP",
		MatchMode(9):       "Unknown",
	}
	for mode, want := range tests {
		if got := mode.String(); got != want {
			t.Errorf("MatchMode(%d).String() = %q, expected %q", mode, got, want)
		}
	}
}
