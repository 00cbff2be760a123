package game

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vovakirdan/pigmento/internal/color"
	"github.com/vovakirdan/pigmento/internal/deeplink"
)

func TestShareMessage(t *testing.T) {
	got := ShareMessage(4, color.MustParseHex("ABC"))
	want := "I've just guessed this color in 4 tries. Can you do better? pigmento://pigmento.com/guess/QUJD"
	if got != want {
		t.Errorf("ShareMessage() = %q, expected %q", got, want)
	}
}

func TestSharePayload(t *testing.T) {
	s := newTestSession(10, 11, 12)
	s.Submit(0, 0, 0)
	s.Submit(10, 11, 12)

	p := s.Share()
	if p.Target.Hex() != "ABC" || !p.Won || len(p.Guesses) != 2 {
		t.Fatalf("Share() = %+v", p)
	}

	c, err := deeplink.Parse(p.Link)
	if err != nil {
		t.Fatalf("share link does not parse: %v", err)
	}
	if c != p.Target {
		t.Errorf("share link decodes to %s, expected %s", c, p.Target)
	}

	if !strings.Contains(p.Message(), "in 2 tries") {
		t.Errorf("Message() = %q", p.Message())
	}

	data, err := p.JSON()
	if err != nil {
		t.Fatalf("JSON() failed: %v", err)
	}
	var decoded struct {
		Target  string `json:"target"`
		Guesses []struct {
			Color      string  `json:"color"`
			Similarity float64 `json:"similarity"`
		} `json:"guesses"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.Target != "ABC" || decoded.Guesses[1].Color != "ABC" || decoded.Guesses[1].Similarity != 1 {
		t.Errorf("decoded payload = %+v", decoded)
	}
}

func TestSharePayloadEmptyHistory(t *testing.T) {
	s := newTestSession(1, 2, 3)
	data, err := s.Share().JSON()
	if err != nil {
		t.Fatalf("JSON() failed: %v", err)
	}
	if !strings.Contains(string(data), `"guesses":[]`) {
		t.Errorf("empty history should encode as [], got %s", data)
	}
}
