package engine

import (
	"overlay-window/geom"
)

// Phase is the stage of a gesture a sample belongs to.
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Finished reports whether the phase ends the gesture.
func (p Phase) Finished() bool {
	return p == PhaseEnded || p == PhaseCancelled
}

// GestureSample is one update of a pan gesture. Translation is relative to
// where the gesture began; velocity is in points per second.
type GestureSample struct {
	Phase       Phase
	Translation geom.Vector
	Velocity    geom.Vector
}

// Geometry is the live overlay rectangle. Position is the center.
type Geometry struct {
	Position geom.Point `json:"position"`
	Size     geom.Size  `json:"size"`
}

// Frame returns the overlay rectangle.
func (g Geometry) Frame() geom.Rect {
	return geom.Rect{Center: g.Position, Size: g.Size}
}

// Bounds limits one resize axis.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Clamp hard-clamps v into the bounds.
func (b Bounds) Clamp(v float64) float64 {
	return geom.Clamp(v, b.Min, b.Max)
}

// Visual holds the presentation values that animate alongside the
// geometry. The render host reads them every frame.
type Visual struct {
	// Alpha is the overall overlay opacity.
	Alpha float64 `json:"alpha"`
	// Scale is the touch and presentation scale around the center.
	Scale float64 `json:"scale"`
	// BodyAlpha is the opacity of the hosted content.
	BodyAlpha float64 `json:"body_alpha"`
	// ChromeAlpha is the opacity of the menu button and border.
	ChromeAlpha float64 `json:"chrome_alpha"`
	// GrabberMorph goes from 0 (full window) to 1 (edge pill).
	GrabberMorph float64 `json:"grabber_morph"`
	// ResizeChrome reveals the resize outline and grabbers.
	ResizeChrome float64 `json:"resize_chrome"`
	// HeightPill and WidthPill are the grabber pill opacities.
	HeightPill float64 `json:"height_pill"`
	WidthPill  float64 `json:"width_pill"`
	// Body is the size of the content viewport, which trails the overlay
	// size while it is rubber-banding.
	Body geom.Size `json:"body"`
}

const (
	pillIdle   = 0.3
	pillActive = 0.6
)

func hiddenVisual() Visual {
	return Visual{
		Alpha:       0,
		Scale:       0.9,
		BodyAlpha:   1,
		ChromeAlpha: 1,
		HeightPill:  pillIdle,
		WidthPill:   pillIdle,
	}
}

// Frame is what the engine hands to the render host each tick.
type Frame struct {
	Rect   geom.Rect
	Visual Visual
	Mode   ModeState
}
