package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ActionID names an entry of the overlay menu.
type ActionID string

const (
	ActionHide   ActionID = "hide"
	ActionResize ActionID = "resize"
	ActionCopy   ActionID = "copy-geometry"
	ActionReset  ActionID = "reset-size"
)

// Action is one selectable menu entry.
type Action struct {
	ID          ActionID
	Name        string
	Description string
	Available   bool
}

// ActionMenuOverlay is the popup menu opened from the overlay's menu button.
type ActionMenuOverlay struct {
	Dismissed bool
	Selected  ActionID
	actions   []Action
	cursor    int
	width     int
}

// NewActionMenuOverlay creates the menu. The hide entry is left out when
// hiding is disabled in the configuration.
func NewActionMenuOverlay(hideEnabled bool, extra ...Action) *ActionMenuOverlay {
	var actions []Action
	if hideEnabled {
		actions = append(actions, Action{
			ID:          ActionHide,
			Name:        "Hide",
			Description: "Dismiss the overlay. Press s to bring it back.",
			Available:   true,
		})
	}
	actions = append(actions,
		Action{
			ID:          ActionResize,
			Name:        "Resize",
			Description: "Drag the bottom and side grabbers to change the size.",
			Available:   true,
		},
		Action{
			ID:          ActionReset,
			Name:        "Reset size",
			Description: "Go back to the configured default size.",
			Available:   true,
		},
	)
	actions = append(actions, extra...)

	m := &ActionMenuOverlay{actions: actions, width: 44}
	m.moveCursor(0)
	return m
}

// HandleKeyPress processes a key press and reports whether the menu closed.
func (m *ActionMenuOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
		return false
	case "down", "j":
		m.moveCursor(1)
		return false
	case "enter":
		return m.Select(m.cursor)
	case "esc", "m":
		m.Dismissed = true
		return true
	default:
		return false
	}
}

// Select picks the entry at index i if it is available.
func (m *ActionMenuOverlay) Select(i int) bool {
	if i < 0 || i >= len(m.actions) || !m.actions[i].Available {
		return false
	}
	m.cursor = i
	m.Selected = m.actions[i].ID
	m.Dismissed = true
	return true
}

// moveCursor moves the cursor by delta, wrapping and skipping unavailable
// entries. A delta of 0 settles on the nearest available entry.
func (m *ActionMenuOverlay) moveCursor(delta int) {
	n := len(m.actions)
	if n == 0 {
		return
	}
	step := delta
	if step == 0 {
		step = 1
	}
	next := ((m.cursor+delta)%n + n) % n
	for attempts := 0; attempts < n; attempts++ {
		if m.actions[next].Available {
			m.cursor = next
			return
		}
		next = ((next+step)%n + n) % n
	}
}

// Actions returns the menu entries in display order.
func (m *ActionMenuOverlay) Actions() []Action {
	return m.actions
}

// Cursor returns the index of the highlighted entry.
func (m *ActionMenuOverlay) Cursor() int {
	return m.cursor
}

// Render renders the menu
func (m *ActionMenuOverlay) Render(opts ...WhitespaceOption) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7aa2f7")).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	unavailableStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#555555")).
		Strikethrough(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		PaddingLeft(4)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Overlay"))
	content.WriteString("\n\n")

	for i, a := range m.actions {
		prefix := "  "
		nameStyle := normalStyle
		switch {
		case !a.Available:
			nameStyle = unavailableStyle
		case i == m.cursor:
			prefix = "> "
			nameStyle = selectedStyle
		}

		content.WriteString(prefix)
		content.WriteString(nameStyle.Render(a.Name))
		content.WriteString("\n")
		if i == m.cursor && a.Description != "" {
			content.WriteString(descStyle.Render(a.Description))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Render(
		"[Enter] Select  [Esc] Close  [↑/↓] Navigate"))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7aa2f7")).
		Padding(0, 1).
		Width(m.width)

	return borderStyle.Render(content.String())
}

// SetWidth sets the width of the menu
func (m *ActionMenuOverlay) SetWidth(width int) {
	m.width = width
}
