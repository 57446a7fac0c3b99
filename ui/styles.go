package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"

	"overlay-window/engine"
)

// Semantic Color Palette

// Mode colors. Each overlay mode has a distinct color and icon so the status
// line reads without color too.
var (
	// ModeFree is the normal floating state.
	ModeFree = lipgloss.AdaptiveColor{Light: "#22C55E", Dark: "#22C55E"}

	// ModeGrabber is the tucked-away state.
	ModeGrabber = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}

	// ModeResizing is an open resize session.
	ModeResizing = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

	// ModeHidden is a dismissed overlay.
	ModeHidden = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}

	// StatusError is for error text.
	StatusError = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#EF4444"}
)

// UI chrome colors - structural elements
var (
	// Primary is the accent/focus color
	Primary = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// TextPrimary is the main text color
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextMuted is for hints and subtle text
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// BackgroundSubtle is for the status line
	BackgroundSubtle = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#2a2a2a"}
)

// Mode icons for accessibility (shape + color)
const (
	IconFree     = "●"
	IconGrabber  = "◧"
	IconResizing = "⤡"
	IconHidden   = "○"
)

// TextStyles contains pre-built styles for text elements
var TextStyles = struct {
	Primary lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
}{
	Primary: lipgloss.NewStyle().Foreground(TextPrimary),
	Muted:   lipgloss.NewStyle().Foreground(TextMuted),
	Error:   lipgloss.NewStyle().Foreground(StatusError),
}

// BadgeStyle creates a styled badge with the given color
func BadgeStyle(color lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(color).
		Padding(0, 1)
}

// ModeBadge renders the badge for an overlay mode.
func ModeBadge(m engine.Mode) string {
	switch m {
	case engine.ModeFree:
		return BadgeStyle(ModeFree).Render(IconFree + " " + m.String())
	case engine.ModeGrabberHidden:
		return BadgeStyle(ModeGrabber).Render(IconGrabber + " " + m.String())
	case engine.ModeResizing:
		return BadgeStyle(ModeResizing).Render(IconResizing + " " + m.String())
	default:
		return BadgeStyle(ModeHidden).Render(IconHidden + " " + m.String())
	}
}

// StatusLine lays left and right out on one line of the given width.
func StatusLine(width int, left, right string) string {
	gap := width - ansi.PrintableRuneWidth(left) - ansi.PrintableRuneWidth(right)
	if gap < 1 {
		gap = 1
	}
	line := left + lipgloss.NewStyle().Width(gap).Render("") + right
	return lipgloss.NewStyle().
		Background(BackgroundSubtle).
		MaxWidth(width).
		Render(line)
}

// OverlayStyle creates a style for dialogs drawn over everything else
func OverlayStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2).
		Background(BackgroundSubtle)
}
