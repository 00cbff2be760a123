package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pigmento/internal/color"
	"github.com/vovakirdan/pigmento/internal/game"
)

// Swatch sizes in cells.
const (
	swatchWidth  = 18
	swatchHeight = 5
	chipWidth    = 4
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	hitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
	missStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// channelColors tints the filled part of each slider.
var channelColors = map[game.Channel]lipgloss.Color{
	game.Red:   lipgloss.Color("#FF4040"),
	game.Green: lipgloss.Color("#40FF40"),
	game.Blue:  lipgloss.Color("#4080FF"),
}

// swatch renders a filled block of c with label centered on it.
func swatch(c color.Color, label string, width, height int) string {
	fg := lipgloss.Color("#FFFFFF")
	if c.IsLight() {
		fg = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Colorful().Hex())).
		Foreground(fg).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}

// hiddenSwatch renders an empty frame in place of a swatch.
func hiddenSwatch(label string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}

// sliderLine renders one channel as a bar of 16 cells.
func sliderLine(ch game.Channel, level int, selected bool) string {
	cursor := "  "
	name := dimStyle.Render(fmt.Sprintf("%-5s", ch))
	if selected {
		cursor = "> "
		name = titleStyle.Render(fmt.Sprintf("%-5s", ch))
	}
	filled := lipgloss.NewStyle().Foreground(channelColors[ch]).Render(strings.Repeat("█", level+1))
	empty := dimStyle.Render(strings.Repeat("░", color.MaxLevel-level))
	return fmt.Sprintf("%s%s %s%s %X", cursor, name, filled, empty, level)
}

// renderSliders renders all three channels. No cursor is shown when
// focused is false.
func renderSliders(s game.Sliders, selected game.Channel, focused bool) string {
	lines := make([]string, 0, 3)
	for _, ch := range []game.Channel{game.Red, game.Green, game.Blue} {
		lines = append(lines, sliderLine(ch, s[ch], focused && ch == selected))
	}
	return strings.Join(lines, "\n")
}

// percentText renders a similarity with the hit or miss style.
func percentText(g game.Guess) string {
	text := fmt.Sprintf("%3d%%", g.Percent())
	if g.Exact() {
		return hitStyle.Render(text)
	}
	return missStyle.Render(text)
}

// guessLine renders one history entry.
func guessLine(n int, g game.Guess) string {
	return fmt.Sprintf("%3d. %s #%s %s", n, swatch(g.Color, "", chipWidth, 1), g.Color.Hex(), percentText(g))
}

// renderHistory renders the newest limit guesses, newest first.
func renderHistory(guesses []game.Guess, limit int) string {
	if len(guesses) == 0 {
		return dimStyle.Render("No guesses yet")
	}
	lines := make([]string, 0, limit)
	for i := len(guesses) - 1; i >= 0 && len(lines) < limit; i-- {
		lines = append(lines, guessLine(i+1, guesses[i]))
	}
	if hidden := len(guesses) - len(lines); hidden > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("     ... %d earlier", hidden)))
	}
	return strings.Join(lines, "\n")
}

// centerBlock centers a rendered multi-line block horizontally.
func centerBlock(block string, width int) string {
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// guessesText renders a guess count with the right noun.
func guessesText(n int) string {
	if n == 1 {
		return "1 guess"
	}
	return fmt.Sprintf("%d guesses", n)
}
