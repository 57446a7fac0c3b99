package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyEnter
	KeyEsc

	KeyShow // toggles presentation
	KeyMenu
	KeyResize
	KeyResetSize
	KeyKeyboard
	KeyCopy
	KeyGrabber

	KeyHelp
	KeyQuit
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"enter":  KeyEnter,
	"esc":    KeyEsc,
	"s":      KeyShow,
	"m":      KeyMenu,
	"r":      KeyResize,
	"0":      KeyResetSize,
	"K":      KeyKeyboard,
	"y":      KeyCopy,
	"g":      KeyGrabber,
	"?":      KeyHelp,
	"q":      KeyQuit,
	"ctrl+c": KeyQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "select"),
	),
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	KeyShow: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "show/hide"),
	),
	KeyMenu: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "menu"),
	),
	KeyResize: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "resize"),
	),
	KeyResetSize: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "reset size"),
	),
	KeyKeyboard: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "keyboard"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy geometry"),
	),
	KeyGrabber: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "unhide"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
