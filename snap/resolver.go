// Package snap resolves where the overlay may come to rest. Targets are
// derived from the environment on every call and never cached.
package snap

import (
	"math"

	"overlay-window/geom"
)

const (
	// WideThreshold is how close to the container width an overlay must be
	// before it switches from four corner targets to two centered ones.
	WideThreshold = 112
	// EdgeMargin separates a resting overlay from the container edges.
	EdgeMargin = 12
	// HiddenSliver is how much of an edge-hidden overlay stays on screen.
	HiddenSliver = 28
)

// Indices into the four-target set.
const (
	TopLeftIndex = iota
	TopRightIndex
	BottomLeftIndex
	BottomRightIndex
)

// IsWide reports whether an overlay of the given size uses the two-target
// layout in env.
func IsWide(size geom.Size, env Environment) bool {
	return size.Width >= env.Container.Width-WideThreshold
}

// TopRowY is the y coordinate shared by the top targets.
func TopRowY(size geom.Size, env Environment) float64 {
	return env.CornerInsetTop + size.Height/2 + EdgeMargin
}

// BottomRowY is the y coordinate shared by the bottom targets.
func BottomRowY(size geom.Size, env Environment) float64 {
	return env.Container.Height - size.Height/2 - env.bottomInset() - EdgeMargin
}

// ComputeAllTargets returns every on-screen rest position for an overlay of
// the given size: top-left, top-right, bottom-left, bottom-right for narrow
// overlays, top and bottom for wide ones.
func ComputeAllTargets(size geom.Size, env Environment) []geom.Point {
	top := TopRowY(size, env)
	bottom := BottomRowY(size, env)

	if IsWide(size, env) {
		x := env.Container.Width / 2
		return []geom.Point{
			{X: x, Y: top},
			{X: x, Y: bottom},
		}
	}

	left := size.Width/2 + EdgeMargin
	right := env.Container.Width - size.Width/2 - EdgeMargin
	return []geom.Point{
		{X: left, Y: top},
		{X: right, Y: top},
		{X: left, Y: bottom},
		{X: right, Y: bottom},
	}
}

// ComputePossibleTargets narrows ComputeAllTargets to what makes sense from
// the overlay's current position. An overlay touching the left or right
// container edge may only settle in that column or tuck itself away as an
// edge-hidden sliver, which is appended last.
func ComputePossibleTargets(current geom.Point, size geom.Size, env Environment) []geom.Point {
	all := ComputeAllTargets(size, env)
	frame := geom.Rect{Center: current, Size: size}
	wide := len(all) == 2

	var column []geom.Point
	var hiddenX float64
	switch {
	case frame.MinX() <= 0:
		column = all
		if !wide {
			column = []geom.Point{all[TopLeftIndex], all[BottomLeftIndex]}
		}
		hiddenX = -size.Width/2 + HiddenSliver
	case frame.MaxX() >= env.Container.Width:
		column = all
		if !wide {
			column = []geom.Point{all[TopRightIndex], all[BottomRightIndex]}
		}
		hiddenX = env.Container.Width + size.Width/2 - HiddenSliver
	default:
		return all
	}

	targets := make([]geom.Point, 0, len(column)+1)
	targets = append(targets, column...)
	anchor := nearestRow(current.Y, column)
	return append(targets, geom.Point{X: hiddenX, Y: anchor.Y})
}

// HiddenTarget reports whether p is an edge-hidden rest position, i.e. its
// center lies outside the container.
func HiddenTarget(p geom.Point, env Environment) bool {
	return p.X < 0 || p.X > env.Container.Width
}

// NearestTarget returns the candidate closest to p. Ties go to the candidate
// listed first. It panics when candidates is empty, which the resolver never
// produces.
func NearestTarget(p geom.Point, candidates []geom.Point) geom.Point {
	if len(candidates) == 0 {
		panic("snap: NearestTarget called with no candidates")
	}
	best := candidates[0]
	bestDist := p.Distance(best)
	for _, c := range candidates[1:] {
		if d := p.Distance(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func nearestRow(y float64, candidates []geom.Point) geom.Point {
	best := candidates[0]
	bestDist := math.Abs(y - best.Y)
	for _, c := range candidates[1:] {
		if d := math.Abs(y - c.Y); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
