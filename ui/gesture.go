package ui

import (
	"time"

	"overlay-window/engine"
	"overlay-window/geom"
	"overlay-window/ui/layout"
)

const (
	// velocityWindow is how far back release velocity looks.
	velocityWindow = 100 * time.Millisecond
	// A press that stays within tapSlop cells and ends within tapTimeout is
	// a tap.
	tapSlop    = 1
	tapTimeout = 300 * time.Millisecond
)

type cellSample struct {
	at       time.Time
	col, row int
}

// GestureTracker turns mouse press, motion and release on the cell grid into
// engine gesture samples in points.
type GestureTracker struct {
	scale   layout.Scale
	active  bool
	moved   bool
	start   cellSample
	samples []cellSample
}

// NewGestureTracker creates a tracker for the given cell scale.
func NewGestureTracker(scale layout.Scale) *GestureTracker {
	return &GestureTracker{scale: scale}
}

// SetScale changes the cell scale, e.g. after a terminal resize.
func (g *GestureTracker) SetScale(scale layout.Scale) {
	g.scale = scale
}

// Active reports whether a press is being tracked.
func (g *GestureTracker) Active() bool {
	return g.active
}

// Moved reports whether the current press has left the tap slop.
func (g *GestureTracker) Moved() bool {
	return g.moved
}

// Begin starts tracking a press.
func (g *GestureTracker) Begin(col, row int, at time.Time) engine.GestureSample {
	g.active = true
	g.moved = false
	g.start = cellSample{at: at, col: col, row: row}
	g.samples = append(g.samples[:0], g.start)
	return engine.GestureSample{Phase: engine.PhaseBegan}
}

// Move records pointer motion.
func (g *GestureTracker) Move(col, row int, at time.Time) engine.GestureSample {
	g.record(col, row, at)
	return engine.GestureSample{Phase: engine.PhaseChanged, Translation: g.translation(col, row)}
}

// End finishes the press. tap is true when the press never moved and was
// short.
func (g *GestureTracker) End(col, row int, at time.Time) (s engine.GestureSample, tap bool) {
	g.record(col, row, at)
	tap = !g.moved && at.Sub(g.start.at) < tapTimeout
	s = engine.GestureSample{
		Phase:       engine.PhaseEnded,
		Translation: g.translation(col, row),
		Velocity:    g.velocity(),
	}
	g.active = false
	return s, tap
}

// Cancel abandons the press.
func (g *GestureTracker) Cancel() engine.GestureSample {
	g.active = false
	g.samples = g.samples[:0]
	return engine.GestureSample{Phase: engine.PhaseCancelled}
}

func (g *GestureTracker) record(col, row int, at time.Time) {
	if abs(col-g.start.col) > tapSlop || abs(row-g.start.row) > tapSlop {
		g.moved = true
	}
	g.samples = append(g.samples, cellSample{at: at, col: col, row: row})
	cutoff := at.Add(-velocityWindow)
	i := 0
	for i < len(g.samples)-1 && g.samples[i].at.Before(cutoff) {
		i++
	}
	g.samples = g.samples[i:]
}

func (g *GestureTracker) translation(col, row int) geom.Vector {
	return geom.Vector{
		DX: float64(col-g.start.col) * g.scale.ColPoints,
		DY: float64(row-g.start.row) * g.scale.RowPoints,
	}
}

// velocity is the average over the samples inside the window.
func (g *GestureTracker) velocity() geom.Vector {
	if len(g.samples) < 2 {
		return geom.Vector{}
	}
	first, last := g.samples[0], g.samples[len(g.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return geom.Vector{}
	}
	return g.scale.Velocity(float64(last.col-first.col)/dt, float64(last.row-first.row)/dt)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
