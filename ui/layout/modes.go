// Package layout maps the terminal grid onto the point space the overlay
// engine works in.
package layout

// LayoutMode is the size class of the terminal.
type LayoutMode int

const (
	// LayoutFull is for large terminals (>= 140w x 50h).
	LayoutFull LayoutMode = iota

	// LayoutStandard is for medium terminals (>= 120w x 40h).
	LayoutStandard

	// LayoutCompact is for smaller terminals (>= 80w x 24h).
	LayoutCompact

	// LayoutMinimal is for terminals below minimum size.
	LayoutMinimal
)

// String returns the string representation of the layout mode.
func (m LayoutMode) String() string {
	switch m {
	case LayoutFull:
		return "full"
	case LayoutStandard:
		return "standard"
	case LayoutCompact:
		return "compact"
	case LayoutMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// Scale returns how many points one cell covers in this mode. Smaller
// terminals get coarser cells so the engine's point-sized overlay still fits.
func (m LayoutMode) Scale() Scale {
	switch m {
	case LayoutFull:
		return Scale{ColPoints: 3, RowPoints: 6}
	case LayoutStandard:
		return Scale{ColPoints: 4, RowPoints: 8}
	case LayoutCompact:
		return Scale{ColPoints: 5, RowPoints: 10}
	default:
		return Scale{ColPoints: 6, RowPoints: 12}
	}
}

// DetermineMode calculates the appropriate layout mode for the given dimensions.
func DetermineMode(width, height int) LayoutMode {
	if width < MinWidth || height < MinHeight {
		return LayoutMinimal
	}

	// The more restrictive dimension wins.
	widthMode := determineWidthMode(width)
	heightMode := determineHeightMode(height)
	if widthMode > heightMode {
		return widthMode
	}
	return heightMode
}

func determineWidthMode(width int) LayoutMode {
	switch {
	case width >= FullWidth:
		return LayoutFull
	case width >= StandardWidth:
		return LayoutStandard
	case width >= MinWidth:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}

func determineHeightMode(height int) LayoutMode {
	switch {
	case height >= FullHeight:
		return LayoutFull
	case height >= StandardHeight:
		return LayoutStandard
	case height >= MinHeight:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}
