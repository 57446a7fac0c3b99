package layout

// Width breakpoints
const (
	// MinWidth is the smallest terminal width that gets a normal layout.
	MinWidth = 80

	// CompactWidth shortens the help line below this width.
	CompactWidth = 100

	// StandardWidth is the threshold for standard layout.
	StandardWidth = 120

	// FullWidth is the threshold for the densest point scale.
	FullWidth = 140
)

// Height breakpoints
const (
	// MinHeight is the absolute minimum terminal height (standard terminal).
	MinHeight = 24

	// CompactHeight triggers compact mode features.
	CompactHeight = 30

	// StandardHeight is the threshold for standard layout.
	StandardHeight = 40

	// FullHeight is the threshold for full layout.
	FullHeight = 50
)

// Fixed rows
const (
	// StatusLineHeight is the status line at the top of the screen.
	StatusLineHeight = 1

	// HelpLineHeight is the key help line at the bottom of the screen.
	HelpLineHeight = 1

	// HelpHideHeight drops the help line below this height.
	HelpHideHeight = 16
)

// Overlay constraints for dialogs drawn over everything else.
const (
	// OverlayMaxWidth is the maximum dialog width.
	OverlayMaxWidth = 60

	// OverlayMaxHeight is the maximum dialog height.
	OverlayMaxHeight = 20

	// OverlayMinWidth is the minimum dialog width.
	OverlayMinWidth = 24

	// OverlayMinHeight is the minimum dialog height.
	OverlayMinHeight = 5

	// OverlayMargin is the minimum margin from terminal edges.
	OverlayMargin = 2
)
