package layout

import "overlay-window/geom"

// Constraints holds the computed layout for one terminal size.
type Constraints struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Computed mode and the point scale it implies
	Mode  LayoutMode
	Scale Scale

	StatusHeight int
	HelpHeight   int

	// ContainerTop is the first row the overlay may occupy. The container
	// spans the full terminal width.
	ContainerTop  int
	ContainerCols int
	ContainerRows int

	// Layout flags
	CoversStatusLine bool // overlay may draw over the status line
	ShowMinWarning   bool // Terminal is below minimum size
}

// ComputeConstraints calculates layout constraints for the given terminal
// dimensions. coverStatusLine lets the overlay use the status line's row.
func ComputeConstraints(width, height int, coverStatusLine bool) Constraints {
	c := Constraints{
		TerminalWidth:    width,
		TerminalHeight:   height,
		Mode:             DetermineMode(width, height),
		StatusHeight:     StatusLineHeight,
		HelpHeight:       HelpLineHeight,
		CoversStatusLine: coverStatusLine,
	}
	c.Scale = c.Mode.Scale()

	if width < MinWidth || height < MinHeight {
		// Still compute a layout for partial display
		c.ShowMinWarning = true
	}
	if height < HelpHideHeight {
		c.HelpHeight = 0
	}

	if !coverStatusLine {
		c.ContainerTop = c.StatusHeight
	}
	c.ContainerCols = max(width, 0)
	c.ContainerRows = max(height-c.ContainerTop-c.HelpHeight, 0)
	return c
}

// Container returns the container size in points.
func (c Constraints) Container() geom.Size {
	return c.Scale.Size(c.ContainerCols, c.ContainerRows)
}

// ToContainer converts a screen cell into container points.
func (c Constraints) ToContainer(col, row int) geom.Point {
	return c.Scale.Point(col, row-c.ContainerTop)
}

// ToScreen converts a container rectangle into screen cells.
func (c Constraints) ToScreen(r geom.Rect) CellRect {
	cr := c.Scale.Rect(r)
	cr.Row += c.ContainerTop
	return cr
}

// ComputeOverlaySize calculates constrained dialog dimensions.
func ComputeOverlaySize(termWidth, termHeight int, preferredWidth, preferredHeight int) (int, int) {
	maxW := termWidth - OverlayMargin*2
	maxH := termHeight - OverlayMargin*2

	w := clamp(preferredWidth, OverlayMinWidth, min(maxW, OverlayMaxWidth))
	h := clamp(preferredHeight, OverlayMinHeight, min(maxH, OverlayMaxHeight))

	return w, h
}

func clamp(value, minVal, maxVal int) int {
	if value > maxVal {
		value = maxVal
	}
	if value < minVal {
		value = minVal
	}
	return value
}
