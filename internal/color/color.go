// Package color implements the Pigmento color model.
//
// A game color has one hex digit per channel, so each of red, green and blue
// is a level in [0,15]. Colors that arrive as 6-digit hex (one byte per
// channel) keep their full bytes for rendering and are compared by the
// nearest level.
package color

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxLevel is the highest channel level.
const MaxLevel = 15

// Levels is the number of distinct values per channel.
const Levels = MaxLevel + 1

var (
	// ErrInvalidChannel is returned when a channel is outside [0,15].
	ErrInvalidChannel = errors.New("color: channel value out of range")

	// ErrMalformedHex is returned for strings that are not 3 or 6 hex digits.
	ErrMalformedHex = errors.New("color: malformed hex string")
)

// Color is an RGB color stored as 8-bit channels.
// Colors built from levels always sit on the 0x11 grid (0x00, 0x11 .. 0xFF).
type Color struct {
	r, g, b uint8
}

// Source is the random source used to generate targets.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Generate returns a color with every channel drawn uniformly from [0,15].
// A nil source falls back to the global math/rand generator.
func Generate(rng Source) Color {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}
	return fromLevels(intn(Levels), intn(Levels), intn(Levels))
}

// New builds a color from three integer levels.
func New(r, g, b int) (Color, error) {
	for _, v := range [3]int{r, g, b} {
		if v < 0 || v > MaxLevel {
			return Color{}, fmt.Errorf("%w: %d", ErrInvalidChannel, v)
		}
	}
	return fromLevels(r, g, b), nil
}

// MustNew is New for constant inputs. It panics on an invalid level.
func MustNew(r, g, b int) Color {
	c, err := New(r, g, b)
	if err != nil {
		panic(err)
	}
	return c
}

// FromChannels builds a color from slider values.
// Each value is floored before the range check; nothing is clamped.
func FromChannels(r, g, b float64) (Color, error) {
	var levels [3]int
	for i, v := range [3]float64{r, g, b} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Color{}, fmt.Errorf("%w: %v", ErrInvalidChannel, v)
		}
		f := math.Floor(v)
		if f < 0 || f > MaxLevel {
			return Color{}, fmt.Errorf("%w: %v", ErrInvalidChannel, v)
		}
		levels[i] = int(f)
	}
	return fromLevels(levels[0], levels[1], levels[2]), nil
}

// FromRGB255 builds a color from full 8-bit channels.
func FromRGB255(r, g, b uint8) Color {
	return Color{r: r, g: g, b: b}
}

// ParseHex parses a 3-digit (one digit per channel) or 6-digit
// (one byte per channel) hex string. Case is ignored.
func ParseHex(s string) (Color, error) {
	switch len(s) {
	case 3:
		var levels [3]int
		for i := range 3 {
			v, err := strconv.ParseUint(s[i:i+1], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: %q", ErrMalformedHex, s)
			}
			levels[i] = int(v)
		}
		return fromLevels(levels[0], levels[1], levels[2]), nil
	case 6:
		var bytes [3]uint8
		for i := range 3 {
			v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: %q", ErrMalformedHex, s)
			}
			bytes[i] = uint8(v)
		}
		return FromRGB255(bytes[0], bytes[1], bytes[2]), nil
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrMalformedHex, s)
	}
}

// MustParseHex is ParseHex for constant inputs. It panics on malformed input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func fromLevels(r, g, b int) Color {
	return Color{r: levelToByte(r), g: levelToByte(g), b: levelToByte(b)}
}

func levelToByte(level int) uint8 {
	return uint8(level * 0x11) //nolint:gosec // level is validated to [0,15]
}

// byteToLevel rounds a byte to the nearest level.
func byteToLevel(v uint8) int {
	return (int(v) + 8) / 0x11
}

// R returns the red level in [0,15].
func (c Color) R() int { return byteToLevel(c.r) }

// G returns the green level in [0,15].
func (c Color) G() int { return byteToLevel(c.g) }

// B returns the blue level in [0,15].
func (c Color) B() int { return byteToLevel(c.b) }

// Levels returns the three channel levels.
func (c Color) Levels() [3]int {
	return [3]int{c.R(), c.G(), c.B()}
}

// RGB255 returns the full 8-bit channels.
func (c Color) RGB255() (r, g, b uint8) {
	return c.r, c.g, c.b
}

// OnGrid reports whether the color is exactly representable with 3 digits.
func (c Color) OnGrid() bool {
	return c.r%0x11 == 0 && c.g%0x11 == 0 && c.b%0x11 == 0
}

// Hex renders the color as 3 uppercase hex digits, red-green-blue.
func (c Color) Hex() string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[c.R()], digits[c.G()], digits[c.B()]})
}

// Hex6 renders the full bytes as 6 uppercase hex digits.
func (c Color) Hex6() string {
	return strings.ToUpper(strings.TrimPrefix(c.Colorful().Hex(), "#"))
}

// String implements fmt.Stringer using the 3-digit form.
func (c Color) String() string {
	return c.Hex()
}

// Canonical returns the shortest hex form that ParseHex maps back to c.
func (c Color) Canonical() string {
	if c.OnGrid() {
		return c.Hex()
	}
	return c.Hex6()
}

// Colorful converts to a go-colorful color for rendering.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.r) / 255.0,
		G: float64(c.g) / 255.0,
		B: float64(c.b) / 255.0,
	}
}

// IsLight reports whether dark text reads better on top of the color.
func (c Color) IsLight() bool {
	l, _, _ := c.Colorful().Lab()
	return l > 0.6
}

// Normalized maps each level to (level+1)/16.
func (c Color) Normalized() (r, g, b float64) {
	return normalize(c.R()), normalize(c.G()), normalize(c.B())
}

func normalize(level int) float64 {
	return float64(level+1) / Levels
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Canonical()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Similarity scores how close a is to b in [0,1].
// Channels are normalized, the Euclidean distance is divided by sqrt(3),
// and the result is 1 minus that distance. Equal levels score exactly 1.
func Similarity(a, b Color) float64 {
	ar, ag, ab := a.Normalized()
	br, bg, bb := b.Normalized()

	distance := math.Sqrt(math.Pow(br-ar, 2) + math.Pow(bg-ag, 2) + math.Pow(bb-ab, 2))
	normalized := distance / math.Sqrt(3)

	return 1 - normalized
}

// Match reports whether a and b agree on every level.
func Match(a, b Color) bool {
	return a.Levels() == b.Levels()
}
