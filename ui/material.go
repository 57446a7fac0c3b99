package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Material is the overlay's background. It adapts to the terminal's color
// support and background, and falls back to a flat look on terminals without
// color.
type Material struct {
	profile termenv.Profile
	dark    bool
}

// NewMaterial detects the terminal's capabilities from the environment.
func NewMaterial() *Material {
	return NewMaterialWithProfile(termenv.EnvColorProfile(), termenv.HasDarkBackground())
}

// NewMaterialWithProfile creates a material for a known terminal.
func NewMaterialWithProfile(profile termenv.Profile, dark bool) *Material {
	return &Material{profile: profile, dark: dark}
}

// Flat reports whether the terminal has no color support.
func (m *Material) Flat() bool {
	return m.profile == termenv.Ascii
}

// Shades run from nearly the page background to fully opaque.
var (
	darkFill   = []string{"#1c1c1c", "#232323", "#2a2a2a", "#333333"}
	lightFill  = []string{"#f4f4f4", "#ebebeb", "#e0e0e0", "#d6d6d6"}
	darkEdge   = []string{"#262626", "#3a3a3a", "#5a5a5a", "#7a7a7a"}
	lightEdge  = []string{"#e6e6e6", "#c8c8c8", "#a8a8a8", "#8a8a8a"}
	accentOn   = "#7D56F4"
	accentIdle = "#6B7280"
)

// Fill returns the body color for the given opacity.
func (m *Material) Fill(alpha float64) lipgloss.TerminalColor {
	if m.dark {
		return m.pick(darkFill, alpha)
	}
	return m.pick(lightFill, alpha)
}

// Edge returns the border color for the given opacity.
func (m *Material) Edge(alpha float64) lipgloss.TerminalColor {
	if m.dark {
		return m.pick(darkEdge, alpha)
	}
	return m.pick(lightEdge, alpha)
}

// Pill returns the grabber pill color; brighter pills are being dragged.
func (m *Material) Pill(alpha float64) lipgloss.TerminalColor {
	if alpha > 0.45 {
		return m.convert(accentOn)
	}
	return m.convert(accentIdle)
}

func (m *Material) pick(ramp []string, alpha float64) lipgloss.TerminalColor {
	i := int(alpha*float64(len(ramp)-1) + 0.5)
	if i < 0 {
		i = 0
	}
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	return m.convert(ramp[i])
}

// convert degrades a hex color to what the terminal can show.
func (m *Material) convert(hex string) lipgloss.TerminalColor {
	switch c := m.profile.Color(hex).(type) {
	case termenv.RGBColor:
		return lipgloss.Color(string(c))
	case termenv.ANSI256Color:
		return lipgloss.Color(strconv.Itoa(int(c)))
	case termenv.ANSIColor:
		return lipgloss.Color(strconv.Itoa(int(c)))
	}
	return lipgloss.NoColor{}
}
