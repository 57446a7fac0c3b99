package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"overlay-window/keys"
	"overlay-window/log"
	"overlay-window/ui"
	"overlay-window/ui/overlay"
)

// handleMenuHighlighting returns a command to highlight the pressed key in the menu.
// This is purely visual - it briefly underlines the corresponding menu item.
func (m *home) handleMenuHighlighting(msg tea.KeyMsg) tea.Cmd {
	if m.state == stateHelp {
		return nil
	}
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil
	}
	return m.keydownCallback(name)
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (mod tea.Model, cmd tea.Cmd) {
	highlightCmd := m.handleMenuHighlighting(msg)
	defer m.syncMenu()

	switch m.state {
	case stateHelp:
		m.state = stateDefault
		return m, nil
	case stateMenu:
		if !m.actionMenu.HandleKeyPress(msg) {
			return m, highlightCmd
		}
		m.state = stateDefault
		selected := m.actionMenu.Selected
		m.actionMenu = nil
		if selected == "" {
			return m, highlightCmd
		}
		return m, tea.Batch(highlightCmd, m.performAction(selected), m.scheduleFrame())
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	mode := m.engine.Mode()
	switch name {
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyHelp:
		m.state = stateHelp
		return m, highlightCmd
	case keys.KeyShow:
		if mode.Visible {
			m.cancelPendingGesture()
			m.engine.Hide()
		} else if err := m.engine.Show(); err != nil {
			return m, m.handleError(err)
		}
	case keys.KeyMenu:
		if !mode.Visible || mode.ResizeActive {
			return m, highlightCmd
		}
		m.openActionMenu()
	case keys.KeyResize:
		m.cancelPendingGesture()
		m.engine.StartResize()
	case keys.KeyEnter, keys.KeyEsc:
		if mode.ResizeActive {
			m.cancelPendingGesture()
			m.engine.EndResize()
		}
	case keys.KeyResetSize:
		m.engine.ResetSize()
	case keys.KeyKeyboard:
		if err := m.toggleKeyboard(); err != nil {
			return m, m.handleError(err)
		}
	case keys.KeyCopy:
		if cmd := m.performAction(overlay.ActionCopy); cmd != nil {
			return m, cmd
		}
	case keys.KeyGrabber:
		m.engine.Tap()
	default:
		return m, highlightCmd
	}
	return m, tea.Batch(highlightCmd, m.scheduleFrame())
}

// cancelPendingGesture drops a press whose release never arrived before a
// key changed the mode under it.
func (m *home) cancelPendingGesture() {
	if m.tracker.Active() {
		m.cancelGesture()
	}
}

func (m *home) openActionMenu() {
	copyAction := overlay.Action{
		ID:          overlay.ActionCopy,
		Name:        "Copy geometry",
		Description: "Copy the overlay's position and size to the clipboard.",
		Available:   true,
	}
	m.actionMenu = overlay.NewActionMenuOverlay(m.appConfig.HideActionEnabled, copyAction)
	m.actionMenu.SetWidth(m.dialogWidth())
	m.state = stateMenu
	m.cancelPendingGesture()
}

// closeOverlays dismisses the action menu or the help screen.
func (m *home) closeOverlays() {
	m.actionMenu = nil
	m.state = stateDefault
}

// performAction runs a menu action. It returns a command when the action
// failed and its error needs showing.
func (m *home) performAction(id overlay.ActionID) tea.Cmd {
	log.InfoLog.Printf("menu action %s", id)
	switch id {
	case overlay.ActionHide:
		m.engine.Hide()
	case overlay.ActionResize:
		m.engine.StartResize()
	case overlay.ActionReset:
		if m.engine.Mode().ResizeActive {
			m.engine.ResetSize()
		} else {
			m.engine.SetSize(m.engine.Options().DefaultSize)
		}
	case overlay.ActionCopy:
		if err := m.copy(m.geometryText()); err != nil {
			return m.handleError(fmt.Errorf("failed to copy geometry: %w", err))
		}
	}
	return nil
}

// geometryText describes the overlay for the clipboard.
func (m *home) geometryText() string {
	g := m.engine.Geometry()
	return fmt.Sprintf("x=%.0f y=%.0f w=%.0f h=%.0f mode=%s",
		g.Position.X, g.Position.Y, g.Size.Width, g.Size.Height, m.engine.Mode().Mode())
}

// toggleKeyboard shows or hides the simulated on-screen keyboard.
func (m *home) toggleKeyboard() error {
	m.keyboardShown = !m.keyboardShown
	if err := m.engine.SetKeyboardHeight(m.keyboardHeight()); err != nil {
		m.keyboardShown = !m.keyboardShown
		return fmt.Errorf("failed to toggle keyboard: %w", err)
	}
	return nil
}

var helpOrder = []keys.KeyName{
	keys.KeyShow, keys.KeyMenu, keys.KeyResize, keys.KeyResetSize,
	keys.KeyKeyboard, keys.KeyCopy, keys.KeyGrabber, keys.KeyQuit,
}

// helpText renders the key and gesture reference.
func (m *home) helpText() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(ui.Primary).Render("Overlay window"))
	b.WriteString("\n\n")
	b.WriteString("Long press the overlay, then drag to move it.\n")
	b.WriteString("Flick it past a side edge to tuck it away;\n")
	b.WriteString("click the pill to bring it back.\n\n")
	for _, name := range helpOrder {
		h := keys.GlobalkeyBindings[name].Help()
		b.WriteString(fmt.Sprintf("%-4s %s\n", h.Key, ui.TextStyles.Muted.Render(h.Desc)))
	}
	b.WriteString("\n")
	b.WriteString(ui.TextStyles.Muted.Render("Press any key to close"))

	return ui.OverlayStyle().Width(m.dialogWidth()).Render(b.String())
}
