package color

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"testing"
)

const epsilon = 1e-6

func allColors() []Color {
	colors := make([]Color, 0, Levels*Levels*Levels)
	for r := range Levels {
		for g := range Levels {
			for b := range Levels {
				colors = append(colors, MustNew(r, g, b))
			}
		}
	}
	return colors
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(42)))
	b := Generate(rand.New(rand.NewSource(42)))
	if a != b {
		t.Errorf("Generate with same seed = %s and %s, expected equal", a, b)
	}
}

func TestGenerateInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[int]bool)
	for range 2000 {
		c := Generate(rng)
		for _, l := range c.Levels() {
			if l < 0 || l > MaxLevel {
				t.Fatalf("Generate() produced level %d", l)
			}
			seen[l] = true
		}
		if !c.OnGrid() {
			t.Fatalf("Generate() produced off-grid color %s", c.Hex6())
		}
	}
	if len(seen) != Levels {
		t.Errorf("Generate() covered %d levels, expected %d", len(seen), Levels)
	}
}

func TestGenerateNilSource(t *testing.T) {
	c := Generate(nil)
	if len(c.Hex()) != 3 {
		t.Errorf("Generate(nil).Hex() = %q", c.Hex())
	}
}

func TestFromChannels(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		want    string
		wantErr bool
	}{
		{"integers", 1, 2, 3, "123", false},
		{"floored", 10.9, 0.1, 15.99, "A0F", false},
		{"midpoint", 7, 7, 7, "777", false},
		{"max", 15, 15, 15, "FFF", false},
		{"negative", -0.5, 0, 0, "", true},
		{"too high", 0, 16, 0, "", true},
		{"nan", math.NaN(), 0, 0, "", true},
		{"inf", 0, 0, math.Inf(1), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := FromChannels(tt.r, tt.g, tt.b)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidChannel) {
					t.Fatalf("FromChannels() error = %v, expected ErrInvalidChannel", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromChannels() failed: %v", err)
			}
			if c.Hex() != tt.want {
				t.Errorf("FromChannels() = %s, expected %s", c.Hex(), tt.want)
			}
		})
	}
}

func TestNewRejectsOutOfRange(t *testing.T) {
	if _, err := New(0, 0, 16); !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("New(0,0,16) error = %v, expected ErrInvalidChannel", err)
	}
	if _, err := New(-1, 0, 0); !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("New(-1,0,0) error = %v, expected ErrInvalidChannel", err)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		levels  [3]int
		hex6    string
		wantErr bool
	}{
		{in: "ABC", levels: [3]int{10, 11, 12}, hex6: "AABBCC"},
		{in: "abc", levels: [3]int{10, 11, 12}, hex6: "AABBCC"},
		{in: "000", levels: [3]int{0, 0, 0}, hex6: "000000"},
		{in: "AABBCC", levels: [3]int{10, 11, 12}, hex6: "AABBCC"},
		{in: "FF8000", levels: [3]int{15, 8, 0}, hex6: "FF8000"},
		{in: "", wantErr: true},
		{in: "AB", wantErr: true},
		{in: "ABCD", wantErr: true},
		{in: "GGG", wantErr: true},
		{in: "+12", wantErr: true},
		{in: "0x1234", wantErr: true},
		{in: "12345Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseHex(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedHex) {
					t.Fatalf("ParseHex(%q) error = %v, expected ErrMalformedHex", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) failed: %v", tt.in, err)
			}
			if c.Levels() != tt.levels {
				t.Errorf("ParseHex(%q).Levels() = %v, expected %v", tt.in, c.Levels(), tt.levels)
			}
			if c.Hex6() != tt.hex6 {
				t.Errorf("ParseHex(%q).Hex6() = %s, expected %s", tt.in, c.Hex6(), tt.hex6)
			}
		})
	}
}

func TestSixDigitKeepsBytes(t *testing.T) {
	c := MustParseHex("FF8000")
	r, g, b := c.RGB255()
	if r != 0xFF || g != 0x80 || b != 0x00 {
		t.Errorf("RGB255() = %02X%02X%02X, expected FF8000", r, g, b)
	}
	if c.OnGrid() {
		t.Error("FF8000 should not be on the 3-digit grid")
	}
	if c.Canonical() != "FF8000" {
		t.Errorf("Canonical() = %s, expected FF8000", c.Canonical())
	}
	if c.Hex() != "F80" {
		t.Errorf("Hex() = %s, expected F80", c.Hex())
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, c := range allColors() {
		s := c.Hex()
		if len(s) != 3 {
			t.Fatalf("Hex() = %q, expected 3 characters", s)
		}
		parsed, err := ParseHex(s)
		if err != nil {
			t.Fatalf("ParseHex(%q) failed: %v", s, err)
		}
		if parsed != c {
			t.Fatalf("ParseHex(Hex(%v)) = %v", c, parsed)
		}
	}
}

func TestSimilarityProperties(t *testing.T) {
	colors := allColors()
	rng := rand.New(rand.NewSource(7))

	for _, a := range colors {
		if got := Similarity(a, a); got != 1.0 {
			t.Fatalf("Similarity(%s, %s) = %v, expected 1", a, a, got)
		}
	}

	for range 5000 {
		a := colors[rng.Intn(len(colors))]
		b := colors[rng.Intn(len(colors))]
		ab := Similarity(a, b)
		ba := Similarity(b, a)
		if ab != ba {
			t.Fatalf("Similarity(%s, %s) = %v but reverse = %v", a, b, ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Fatalf("Similarity(%s, %s) = %v out of bounds", a, b, ab)
		}
		if a != b && ab == 1.0 {
			t.Fatalf("Similarity(%s, %s) = 1 for distinct colors", a, b)
		}
	}
}

func TestSimilarityScenario(t *testing.T) {
	got := Similarity(MustParseHex("000"), MustParseHex("F0F"))
	want := 1 - math.Sqrt((math.Pow(15.0/16, 2)+0+math.Pow(15.0/16, 2))/3)
	if math.Abs(got-want) > epsilon {
		t.Errorf("Similarity(000, F0F) = %v, expected %v", got, want)
	}
	if math.Abs(got-0.235702) > epsilon {
		t.Errorf("Similarity(000, F0F) = %v, expected ~0.235702", got)
	}
}

func TestMatch(t *testing.T) {
	if !Match(MustParseHex("ABC"), MustParseHex("AABBCC")) {
		t.Error("ABC and AABBCC should match")
	}
	if !Match(MustParseHex("F80"), MustParseHex("FF8000")) {
		t.Error("F80 and FF8000 should match by level")
	}
	if Match(MustParseHex("ABC"), MustParseHex("ABD")) {
		t.Error("ABC and ABD should not match")
	}
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		C Color `json:"c"`
	}

	data, err := json.Marshal(wrapper{C: MustParseHex("1A2")})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"c":"1A2"}` {
		t.Errorf("Marshal = %s", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"c":"FF8000"}`), &w); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if w.C.Hex6() != "FF8000" {
		t.Errorf("Unmarshal = %s, expected FF8000", w.C.Hex6())
	}

	if err := json.Unmarshal([]byte(`{"c":"nope"}`), &w); err == nil {
		t.Error("Unmarshal of malformed hex should fail")
	}
}

func TestIsLight(t *testing.T) {
	if !MustParseHex("FFF").IsLight() {
		t.Error("white should be light")
	}
	if MustParseHex("000").IsLight() {
		t.Error("black should not be light")
	}
}
