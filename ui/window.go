package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"

	"overlay-window/engine"
	"overlay-window/inspect"
	"overlay-window/ui/layout"
)

const (
	minWindowCols = 4
	minWindowRows = 3

	// Visual channels are continuous; cells are not. These thresholds decide
	// when a fading part is drawn at all.
	visibleAlpha    = 0.05
	chromeThreshold = 0.5
	morphThreshold  = 0.5
	faintBody       = 0.75
	hiddenBody      = 0.2

	heightGrabberCols = 6
	widthGrabberRows  = 3
)

// Part identifies what a mouse press landed on.
type Part int

const (
	PartNone Part = iota
	PartWindow
	PartMenuButton
	PartHeightGrabber
	PartWidthGrabber
)

func (p Part) String() string {
	switch p {
	case PartWindow:
		return "window"
	case PartMenuButton:
		return "menu-button"
	case PartHeightGrabber:
		return "height-grabber"
	case PartWidthGrabber:
		return "width-grabber"
	default:
		return "none"
	}
}

// Layer is a rendered block placed at a screen cell.
type Layer struct {
	Col, Row int
	Content  string
}

// WindowLayout is where the overlay's parts landed on screen for one frame.
type WindowLayout struct {
	Visible       bool
	Grabber       bool
	Frame         layout.CellRect
	Body          layout.CellRect
	Pill          layout.CellRect
	MenuButton    layout.CellRect
	HeightGrabber layout.CellRect
	WidthGrabber  layout.CellRect
}

// Hit returns the part under the cell (col, row).
func (l WindowLayout) Hit(col, row int) Part {
	switch {
	case !l.Visible:
		return PartNone
	case l.HeightGrabber.Contains(col, row):
		return PartHeightGrabber
	case l.WidthGrabber.Contains(col, row):
		return PartWidthGrabber
	case l.MenuButton.Contains(col, row):
		return PartMenuButton
	case l.Frame.Contains(col, row):
		return PartWindow
	}
	return PartNone
}

// InspectNode reports the laid out parts for inspection.
func (l WindowLayout) InspectNode() *inspect.Node {
	n := inspect.NewNode("Window").WithCells(l.Frame).WithState("grabber", l.Grabber)
	n.Visible = l.Visible
	if l.Grabber {
		return n.AddChild(inspect.NewNode("Pill").WithCells(l.Pill))
	}
	return n.
		AddChild(inspect.NewNode("Body").WithCells(l.Body)).
		AddChild(inspect.NewNode("MenuButton").WithCells(l.MenuButton)).
		AddChild(inspect.NewNode("HeightGrabber").WithCells(l.HeightGrabber)).
		AddChild(inspect.NewNode("WidthGrabber").WithCells(l.WidthGrabber))
}

// Window draws the overlay from engine frames.
type Window struct {
	material *Material
	rounded  bool
	compact  bool
}

// NewWindow creates a window renderer.
func NewWindow(material *Material, rounded bool) *Window {
	return &Window{material: material, rounded: rounded}
}

// SetCompact switches to single-line chrome for small terminals.
func (w *Window) SetCompact(compact bool) {
	w.compact = compact
}

// Layout maps a frame onto the screen.
func (w *Window) Layout(f engine.Frame, c layout.Constraints) WindowLayout {
	if f.Visual.Alpha < visibleAlpha {
		return WindowLayout{}
	}

	r := f.Rect
	r.Size.Width *= f.Visual.Scale
	r.Size.Height *= f.Visual.Scale
	cr := c.ToScreen(r)
	cr.Width = max(cr.Width, minWindowCols)
	cr.Height = max(cr.Height, minWindowRows)

	l := WindowLayout{Visible: true, Frame: cr}

	if f.Visual.GrabberMorph >= morphThreshold {
		l.Grabber = true
		col := cr.Col + 1
		if f.Rect.Center.X < c.Container().Width/2 {
			// Tucked away on the left, so the pill faces right.
			col = cr.Col + cr.Width - 2
		}
		rows := max(cr.Height/3, 1)
		l.Pill = layout.CellRect{Col: col, Row: cr.Row + (cr.Height-rows)/2, Width: 1, Height: rows}
		return l
	}

	l.Body = layout.CellRect{Col: cr.Col + 1, Row: cr.Row + 1, Width: cr.Width - 2, Height: cr.Height - 2}

	if f.Visual.ChromeAlpha >= chromeThreshold {
		l.MenuButton = layout.CellRect{Col: cr.Col + cr.Width - 3, Row: cr.Row + cr.Height - 2, Width: 2, Height: 1}
	}

	if f.Visual.ResizeChrome >= chromeThreshold {
		cols := min(heightGrabberCols, cr.Width)
		l.HeightGrabber = layout.CellRect{Col: cr.Col + (cr.Width-cols)/2, Row: cr.Row + cr.Height, Width: cols, Height: 1}
		rows := min(widthGrabberRows, cr.Height)
		l.WidthGrabber = layout.CellRect{Col: cr.Col + cr.Width, Row: cr.Row + (cr.Height-rows)/2, Width: 1, Height: rows}
	}
	return l
}

// Render draws the window for a frame and its layout. Layers are returned
// bottom to top.
func (w *Window) Render(f engine.Frame, l WindowLayout, body string) []Layer {
	if !l.Visible {
		return nil
	}
	if l.Grabber {
		return []Layer{w.renderGrabber(f, l)}
	}

	v := f.Visual
	border := lipgloss.RoundedBorder()
	if !w.rounded || w.compact {
		border = lipgloss.NormalBorder()
	}
	style := lipgloss.NewStyle().
		Border(border).
		BorderForeground(w.material.Edge(v.ChromeAlpha)).
		Background(w.material.Fill(v.Alpha)).
		Width(l.Body.Width).
		Height(l.Body.Height)

	content := ""
	if v.BodyAlpha >= hiddenBody {
		content = fitBlock(body, l.Body.Width, l.Body.Height)
		if v.BodyAlpha < faintBody {
			content = lipgloss.NewStyle().Faint(true).Render(content)
		}
	}

	layers := []Layer{{Col: l.Frame.Col, Row: l.Frame.Row, Content: style.Render(content)}}

	if !l.MenuButton.Empty() {
		btn := lipgloss.NewStyle().
			Foreground(w.material.Pill(v.ChromeAlpha)).
			Background(w.material.Fill(v.Alpha)).
			Render("⋯ ")
		layers = append(layers, Layer{Col: l.MenuButton.Col, Row: l.MenuButton.Row, Content: btn})
	}

	if !l.HeightGrabber.Empty() {
		pill := lipgloss.NewStyle().Foreground(w.material.Pill(v.HeightPill)).
			Render(strings.Repeat("━", l.HeightGrabber.Width))
		layers = append(layers, Layer{Col: l.HeightGrabber.Col, Row: l.HeightGrabber.Row, Content: pill})
	}
	if !l.WidthGrabber.Empty() {
		lines := make([]string, l.WidthGrabber.Height)
		for i := range lines {
			lines[i] = "┃"
		}
		pill := lipgloss.NewStyle().Foreground(w.material.Pill(v.WidthPill)).
			Render(strings.Join(lines, "\n"))
		layers = append(layers, Layer{Col: l.WidthGrabber.Col, Row: l.WidthGrabber.Row, Content: pill})
	}
	return layers
}

func (w *Window) renderGrabber(f engine.Frame, l WindowLayout) Layer {
	fill := lipgloss.NewStyle().Background(w.material.Fill(f.Visual.Alpha))
	pill := fill.Foreground(w.material.Pill(1))

	left := l.Pill.Col - l.Frame.Col
	right := l.Frame.Width - left - 1
	lines := make([]string, l.Frame.Height)
	for i := range lines {
		row := l.Frame.Row + i
		if row >= l.Pill.Row && row < l.Pill.Row+l.Pill.Height {
			lines[i] = fill.Render(strings.Repeat(" ", left)) + pill.Render("┃") + fill.Render(strings.Repeat(" ", right))
			continue
		}
		lines[i] = fill.Render(strings.Repeat(" ", l.Frame.Width))
	}
	return Layer{Col: l.Frame.Col, Row: l.Frame.Row, Content: strings.Join(lines, "\n")}
}

// fitBlock cuts s to at most width columns and height rows.
func fitBlock(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if ansi.PrintableRuneWidth(line) > width {
			lines[i] = truncate.StringWithTail(line, uint(width), "…")
		}
	}
	return strings.Join(lines, "\n")
}
