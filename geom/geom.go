// Package geom holds the value types the overlay engine works in. All values
// are in points; the host decides how points map onto its own surface.
package geom

import (
	"fmt"
	"math"
)

// Point is a location in container coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vector is a displacement or a velocity (points per second).
type Vector struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle described by its center and size,
// matching how the engine stores the overlay.
type Rect struct {
	Center Point `json:"center"`
	Size   Size  `json:"size"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add translates p by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.DX, Y: p.Y + v.DY}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{DX: p.X - q.X, DY: p.Y - q.Y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// Half returns the size scaled by one half.
func (s Size) Half() Size {
	return Size{Width: s.Width / 2, Height: s.Height / 2}
}

// IsZero reports whether either dimension is zero or negative.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%.1fx%.1f", s.Width, s.Height)
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.Center.X - r.Size.Width/2 }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.Center.X + r.Size.Width/2 }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Center.Y - r.Size.Height/2 }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Center.Y + r.Size.Height/2 }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.MinX(), Y: r.MinY()} }

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
