// Package deeplink encodes and decodes pigmento:// challenge links.
//
// A link has the form pigmento://pigmento.com/guess/<payload> where the
// payload is the standard base64 encoding of a 3- or 6-digit hex color.
package deeplink

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/vovakirdan/pigmento/internal/color"
)

const (
	Scheme = "pigmento"
	Host   = "pigmento.com"

	guessSegment = "guess"
)

var (
	// ErrNotPigmento is returned for URLs that are not guess links at all.
	// Hosts are expected to ignore them.
	ErrNotPigmento = errors.New("deeplink: not a pigmento guess link")

	// ErrMalformedLink is returned when a guess link carries a bad payload.
	ErrMalformedLink = errors.New("deeplink: malformed guess payload")
)

// Encode returns the base64 payload for c.
func Encode(c color.Color) string {
	return base64.StdEncoding.EncodeToString([]byte(c.Canonical()))
}

// Decode turns a base64 payload back into a color.
func Decode(payload string) (color.Color, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return color.Color{}, fmt.Errorf("%w: %w", ErrMalformedLink, err)
	}

	c, err := color.ParseHex(strings.TrimSpace(string(raw)))
	if err != nil {
		return color.Color{}, fmt.Errorf("%w: %w", ErrMalformedLink, err)
	}
	return c, nil
}

// Build returns the challenge link for c.
func Build(c color.Color) string {
	u := url.URL{
		Scheme: Scheme,
		Host:   Host,
		Path:   "/" + guessSegment + "/" + Encode(c),
	}
	return u.String()
}

// Parse extracts the target color from a challenge link.
func Parse(raw string) (color.Color, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return color.Color{}, fmt.Errorf("%w: %w", ErrNotPigmento, err)
	}
	if u.Scheme != Scheme {
		return color.Color{}, fmt.Errorf("%w: scheme %q", ErrNotPigmento, u.Scheme)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] != guessSegment {
		return color.Color{}, fmt.Errorf("%w: path %q", ErrNotPigmento, u.Path)
	}
	return Decode(parts[1])
}
