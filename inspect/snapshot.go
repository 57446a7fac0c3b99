package inspect

import (
	"fmt"
	"strings"
	"time"

	"overlay-window/engine"
	"overlay-window/ui/layout"
)

// Snapshot represents the overlay and terminal state at a point in time.
type Snapshot struct {
	// Timestamp when the snapshot was taken.
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	// Terminal contains terminal dimensions.
	Terminal TerminalInfo `json:"terminal"`

	// Engine is the overlay's geometry, mode and reachable targets.
	Engine engine.Snapshot `json:"engine"`

	// Layout contains the cell grid the overlay is drawn on.
	Layout LayoutInfo `json:"layout"`

	// Components is the root of the component tree.
	Components *Node `json:"components,omitempty"`

	// Breakpoints contains information about responsive breakpoints.
	Breakpoints []BreakpointInfo `json:"breakpoints"`
}

// TerminalInfo contains terminal dimensions.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LayoutInfo contains layout configuration.
type LayoutInfo struct {
	// Mode is the current layout mode.
	Mode string `json:"mode"`

	// ColPoints and RowPoints are the size of one cell in points.
	ColPoints float64 `json:"col_points"`
	RowPoints float64 `json:"row_points"`

	// The container in cells. It spans the full terminal width.
	ContainerTop  int `json:"container_top"`
	ContainerCols int `json:"container_cols"`
	ContainerRows int `json:"container_rows"`

	CoversStatusLine bool `json:"covers_status_line"`

	// Degradation contains active degradation flags.
	Degradation DegradationInfo `json:"degradation"`
}

// DegradationInfo contains active UI degradation flags.
type DegradationInfo struct {
	HideHelpLine   bool `json:"hide_help_line"`
	ShortHelp      bool `json:"short_help"`
	CompactChrome  bool `json:"compact_chrome"`
	HideBodyText   bool `json:"hide_body_text"`
	ShowMinWarning bool `json:"show_min_warning"`
}

// BreakpointInfo contains information about a responsive breakpoint.
type BreakpointInfo struct {
	// Name is the breakpoint name.
	Name string `json:"name"`

	// Threshold is the dimension threshold.
	Threshold int `json:"threshold"`

	// Active indicates if this breakpoint is currently triggered.
	Active bool `json:"active"`

	// Dimension is "width" or "height".
	Dimension string `json:"dimension"`
}

// NewSnapshot creates a snapshot around an engine snapshot, taking its time.
func NewSnapshot(s engine.Snapshot) *Snapshot {
	ts := s.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	return &Snapshot{
		Timestamp: ts,
		Version:   "1.0.0",
		Engine:    s,
	}
}

// WithTerminal sets terminal info and returns the snapshot for chaining.
func (s *Snapshot) WithTerminal(width, height int) *Snapshot {
	s.Terminal = TerminalInfo{Width: width, Height: height}
	return s
}

// WithLayout sets layout info from constraints and degradation.
func (s *Snapshot) WithLayout(c layout.Constraints, d layout.Degradation) *Snapshot {
	s.Layout = LayoutInfo{
		Mode:             c.Mode.String(),
		ColPoints:        c.Scale.ColPoints,
		RowPoints:        c.Scale.RowPoints,
		ContainerTop:     c.ContainerTop,
		ContainerCols:    c.ContainerCols,
		ContainerRows:    c.ContainerRows,
		CoversStatusLine: c.CoversStatusLine,
		Degradation: DegradationInfo{
			HideHelpLine:   d.HideHelpLine,
			ShortHelp:      d.ShortHelp,
			CompactChrome:  d.CompactChrome,
			HideBodyText:   d.HideBodyText,
			ShowMinWarning: d.ShowMinWarning,
		},
	}

	s.Breakpoints = []BreakpointInfo{
		{Name: "hide_help_line", Threshold: layout.HelpHideHeight, Active: d.HideHelpLine, Dimension: "height"},
		{Name: "short_help", Threshold: layout.CompactWidth, Active: d.ShortHelp, Dimension: "width"},
		{Name: "hide_body_text", Threshold: layout.CompactHeight, Active: d.HideBodyText, Dimension: "height"},
		{Name: "min_width", Threshold: layout.MinWidth, Active: c.TerminalWidth < layout.MinWidth, Dimension: "width"},
		{Name: "min_height", Threshold: layout.MinHeight, Active: c.TerminalHeight < layout.MinHeight, Dimension: "height"},
	}

	return s
}

// WithComponents sets the component tree root.
func (s *Snapshot) WithComponents(root *Node) *Snapshot {
	s.Components = root
	return s
}

// ToText returns a human-readable text representation.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== Overlay Snapshot ===\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", s.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Terminal: %dx%d\n", s.Terminal.Width, s.Terminal.Height))
	b.WriteString(fmt.Sprintf("Mode: %s\n", s.Engine.Mode))
	b.WriteString(fmt.Sprintf("Position: %s\n", s.Engine.Geometry.Position))
	b.WriteString(fmt.Sprintf("Size: %s\n", s.Engine.Geometry.Size))
	b.WriteString(fmt.Sprintf("Container: %s\n", s.Engine.Environment.Container))

	b.WriteString("\n--- Targets ---\n")
	for _, t := range s.Engine.Targets {
		b.WriteString(fmt.Sprintf("  %s\n", t))
	}

	b.WriteString("\n--- Layout ---\n")
	b.WriteString(fmt.Sprintf("Mode: %s (%gx%g pt per cell)\n", s.Layout.Mode, s.Layout.ColPoints, s.Layout.RowPoints))
	b.WriteString(fmt.Sprintf("Container: %dx%d cells from row %d\n", s.Layout.ContainerCols, s.Layout.ContainerRows, s.Layout.ContainerTop))

	b.WriteString("\n--- Active Breakpoints ---\n")
	for _, bp := range s.Breakpoints {
		status := "[ ]"
		if bp.Active {
			status = "[X]"
		}
		b.WriteString(fmt.Sprintf("  %s %s (threshold: %d %s)\n", status, bp.Name, bp.Threshold, bp.Dimension))
	}

	if s.Components != nil {
		b.WriteString("\n--- Components ---\n")
		writeNodeText(&b, s.Components, 0)
	}

	return b.String()
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	b.WriteString(fmt.Sprintf("%s%s", prefix, node.Type))
	if node.ID != "" {
		b.WriteString(fmt.Sprintf(" [%s]", node.ID))
	}
	if node.Visible {
		b.WriteString(fmt.Sprintf(" (%dx%d at %d,%d)", node.Bounds.Width, node.Bounds.Height, node.Bounds.X, node.Bounds.Y))
	} else {
		b.WriteString(" (hidden)")
	}
	b.WriteString("\n")

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
