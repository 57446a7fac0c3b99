package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"overlay-window/keys"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var actionGroupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

var separator = " • "
var verticalSeparator = " │ "

// MenuState represents different states the help line can be in
type MenuState int

const (
	StateDefault MenuState = iota
	StateHidden
	StateResizing
	StateMenuOpen
)

// The first group of each state is highlighted as the action group.
var menuGroups = map[MenuState][][]keys.KeyName{
	StateDefault: {
		{keys.KeyMenu, keys.KeyResize, keys.KeyGrabber},
		{keys.KeyKeyboard, keys.KeyCopy, keys.KeyShow},
		{keys.KeyHelp, keys.KeyQuit},
	},
	StateHidden: {
		{keys.KeyShow},
		{keys.KeyKeyboard},
		{keys.KeyHelp, keys.KeyQuit},
	},
	StateResizing: {
		{keys.KeyEnter, keys.KeyResetSize},
		{keys.KeyEsc},
	},
	StateMenuOpen: {
		{keys.KeyEnter},
		{keys.KeyUp, keys.KeyDown, keys.KeyEsc},
	},
}

// Menu is the key help line at the bottom of the screen.
type Menu struct {
	height, width int
	state         MenuState
	short         bool

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

func NewMenu() *Menu {
	return &Menu{
		state:   StateHidden,
		keyDown: -1,
	}
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state
func (m *Menu) SetState(state MenuState) {
	m.state = state
}

// State returns the current menu state.
func (m *Menu) State() MenuState {
	return m.state
}

// SetShort keeps only the action group and the last group.
func (m *Menu) SetShort(short bool) {
	m.short = short
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) groups() [][]keys.KeyName {
	groups := menuGroups[m.state]
	if m.short && len(groups) > 2 {
		return [][]keys.KeyName{groups[0], groups[len(groups)-1]}
	}
	return groups
}

func (m *Menu) String() string {
	if m.height <= 0 {
		return ""
	}

	var s strings.Builder
	groups := m.groups()
	for gi, group := range groups {
		for i, k := range group {
			binding := keys.GlobalkeyBindings[k]

			var (
				localKeyStyle  = keyStyle
				localDescStyle = descStyle
			)
			if gi == 0 {
				localKeyStyle = actionGroupStyle
				localDescStyle = actionGroupStyle
			}
			if m.keyDown == k {
				localKeyStyle = localKeyStyle.Underline(true)
				localDescStyle = localDescStyle.Underline(true)
			}

			s.WriteString(localKeyStyle.Render(binding.Help().Key))
			s.WriteString(" ")
			s.WriteString(localDescStyle.Render(binding.Help().Desc))

			if i != len(group)-1 {
				s.WriteString(sepStyle.Render(separator))
			}
		}
		if gi != len(groups)-1 {
			s.WriteString(sepStyle.Render(verticalSeparator))
		}
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s.String())
}
