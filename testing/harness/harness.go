// Package harness drives the overlay's Bubble Tea host in tests: it sends
// terminal sizes, keys and mouse gestures on the cell grid and hands back
// the rendered screen.
package harness

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"overlay-window/ui/layout"
)

// Harness owns a model under test and the terminal size it was last given.
type Harness struct {
	t      *testing.T
	model  tea.Model
	width  int
	height int
}

// New wraps model and delivers the initial terminal size, which is what
// presents the overlay.
func New(t *testing.T, model tea.Model, width, height int) *Harness {
	t.Helper()
	h := &Harness{t: t, model: model}
	h.Resize(width, height)
	return h
}

// SendMsg runs one Update and keeps the returned model.
func (h *Harness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return cmd
}

// SendKey types a rune key such as "r" or "?".
func (h *Harness) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendSpecialKey sends a non-rune key such as Enter or Esc.
func (h *Harness) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: keyType})
}

// SendMouse sends a mouse event at the cell (col, row).
func (h *Harness) SendMouse(col, row int, action tea.MouseAction, button tea.MouseButton) tea.Cmd {
	return h.SendMsg(tea.MouseMsg{X: col, Y: row, Action: action, Button: button})
}

// Press presses the left button at (col, row).
func (h *Harness) Press(col, row int) tea.Cmd {
	return h.SendMouse(col, row, tea.MouseActionPress, tea.MouseButtonLeft)
}

// Motion moves the pointer to (col, row) with the left button held.
func (h *Harness) Motion(col, row int) tea.Cmd {
	return h.SendMouse(col, row, tea.MouseActionMotion, tea.MouseButtonLeft)
}

// Release lets go of the left button at (col, row).
func (h *Harness) Release(col, row int) tea.Cmd {
	return h.SendMouse(col, row, tea.MouseActionRelease, tea.MouseButtonNone)
}

// Resize changes the terminal size. The host maps it to a new container.
func (h *Harness) Resize(width, height int) tea.Cmd {
	h.width = width
	h.height = height
	return h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
}

// View renders the screen.
func (h *Harness) View() string {
	return h.model.View()
}

// Model returns the model after the last Update.
func (h *Harness) Model() tea.Model {
	return h.model
}

// Width is the terminal width last sent.
func (h *Harness) Width() int {
	return h.width
}

// Height is the terminal height last sent.
func (h *Harness) Height() int {
	return h.height
}

// TerminalSize is a terminal the overlay should work in, with the layout
// mode (and so the points per cell) it maps to.
type TerminalSize struct {
	Name   string
	Width  int
	Height int
	Mode   layout.LayoutMode
}

// CommonSizes has at least one terminal per usable layout mode, plus
// extreme aspect ratios where one dimension picks the mode.
var CommonSizes = []TerminalSize{
	{Name: "minimum", Width: layout.MinWidth, Height: layout.MinHeight, Mode: layout.LayoutCompact},
	{Name: "compact", Width: layout.CompactWidth, Height: layout.CompactHeight, Mode: layout.LayoutCompact},
	{Name: "standard", Width: layout.StandardWidth, Height: layout.StandardHeight, Mode: layout.LayoutStandard},
	{Name: "full", Width: 160, Height: layout.FullHeight, Mode: layout.LayoutFull},
	{Name: "wide", Width: 200, Height: layout.MinHeight, Mode: layout.LayoutCompact},
	{Name: "tall", Width: layout.MinWidth, Height: 60, Mode: layout.LayoutCompact},
}

// SizesInMode filters sizes down to one layout mode.
func SizesInMode(sizes []TerminalSize, mode layout.LayoutMode) []TerminalSize {
	var out []TerminalSize
	for _, s := range sizes {
		if s.Mode == mode {
			out = append(out, s)
		}
	}
	return out
}

// RunWithSizes runs fn as a subtest per size.
func RunWithSizes(t *testing.T, sizes []TerminalSize, fn func(t *testing.T, size TerminalSize)) {
	for _, size := range sizes {
		t.Run(size.Name, func(t *testing.T) {
			fn(t, size)
		})
	}
}

// RunWithCommonSizes runs fn for every entry of CommonSizes.
func RunWithCommonSizes(t *testing.T, fn func(t *testing.T, size TerminalSize)) {
	RunWithSizes(t, CommonSizes, fn)
}

// Sequence is a list of messages played in order.
type Sequence []tea.Msg

// NewKeySequence types each key in turn.
func NewKeySequence(keys ...string) Sequence {
	var seq Sequence
	for _, key := range keys {
		seq = append(seq, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
	return seq
}

// NewDrag presses at (fromCol, fromRow), moves to (toCol, toRow) in steps
// evenly spaced motions and releases there. All events share one instant,
// so the release carries no velocity.
func NewDrag(fromCol, fromRow, toCol, toRow, steps int) Sequence {
	if steps < 1 {
		steps = 1
	}
	seq := Sequence{tea.MouseMsg{X: fromCol, Y: fromRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}}
	for i := 1; i <= steps; i++ {
		seq = append(seq, tea.MouseMsg{
			X:      fromCol + (toCol-fromCol)*i/steps,
			Y:      fromRow + (toRow-fromRow)*i/steps,
			Action: tea.MouseActionMotion,
			Button: tea.MouseButtonLeft,
		})
	}
	return append(seq, tea.MouseMsg{X: toCol, Y: toRow, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
}

// Play sends every message in the sequence.
func (seq Sequence) Play(h *Harness) {
	for _, msg := range seq {
		h.SendMsg(msg)
	}
}
