// Package banner implements the Banner Generator collaborator named in
// SPEC_FULL.md §6: a gradient-colored version banner printed on
// --version when stdout is a terminal, grounded on
// original_source/aifr/gradient_display.py's RGB interpolation approach,
// expressed with charmbracelet/lipgloss styling instead of hand-rolled
// ANSI escape codes.
package banner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// retroPalette mirrors RETRO_COLORS: cyan-teal, warm yellow, coral,
// red-orange, brown.
var retroPalette = [][3]int{
	{0x68, 0xc7, 0xc1},
	{0xfa, 0xca, 0x78},
	{0xf5, 0x7f, 0x5b},
	{0xdd, 0x53, 0x41},
	{0x79, 0x4a, 0x3a},
}

// Render returns text with each rune styled by a color sampled from a
// left-to-right gradient across the retro palette.
func Render(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range runes {
		position := float64(i) / float64(maxInt(len(runes)-1, 1))
		color := gradientColor(position)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex(color)))
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// Version renders "aifr v<version>" as a gradient banner line.
func Version(version string) string {
	return Render(fmt.Sprintf("aifr v%s", version))
}

func gradientColor(position float64) [3]int {
	if position < 0 {
		position = 0
	}
	if position > 1 {
		position = 1
	}
	segments := len(retroPalette) - 1
	scaled := position * float64(segments)
	idx := int(scaled)
	if idx >= segments {
		return retroPalette[segments]
	}
	t := scaled - float64(idx)
	return interpolate(retroPalette[idx], retroPalette[idx+1], t)
}

func interpolate(a, b [3]int, t float64) [3]int {
	return [3]int{
		a[0] + int(float64(b[0]-a[0])*t),
		a[1] + int(float64(b[1]-a[1])*t),
		a[2] + int(float64(b[2]-a[2])*t),
	}
}

func hex(c [3]int) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
