package layout

import (
	"math"

	"overlay-window/geom"
)

// Scale converts between terminal cells and engine points.
type Scale struct {
	ColPoints float64
	RowPoints float64
}

// CellRect is a rectangle on the terminal grid.
type CellRect struct {
	Col, Row      int
	Width, Height int
}

// Contains reports whether the cell (col, row) lies inside r.
func (r CellRect) Contains(col, row int) bool {
	return col >= r.Col && col < r.Col+r.Width && row >= r.Row && row < r.Row+r.Height
}

// Empty reports whether r covers no cells.
func (r CellRect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Size converts a cell grid size into points.
func (s Scale) Size(cols, rows int) geom.Size {
	return geom.Size{Width: float64(cols) * s.ColPoints, Height: float64(rows) * s.RowPoints}
}

// Point returns the point at the center of cell (col, row).
func (s Scale) Point(col, row int) geom.Point {
	return geom.Point{
		X: (float64(col) + 0.5) * s.ColPoints,
		Y: (float64(row) + 0.5) * s.RowPoints,
	}
}

// Cell returns the cell containing p.
func (s Scale) Cell(p geom.Point) (col, row int) {
	return int(math.Floor(p.X / s.ColPoints)), int(math.Floor(p.Y / s.RowPoints))
}

// Cols converts a horizontal length in points into whole columns.
func (s Scale) Cols(points float64) int {
	return int(math.Round(points / s.ColPoints))
}

// Rows converts a vertical length in points into whole rows.
func (s Scale) Rows(points float64) int {
	return int(math.Round(points / s.RowPoints))
}

// Rect snaps a point rectangle onto the grid. The result may extend past
// the container on any side.
func (s Scale) Rect(r geom.Rect) CellRect {
	col := int(math.Round(r.MinX() / s.ColPoints))
	row := int(math.Round(r.MinY() / s.RowPoints))
	return CellRect{
		Col:    col,
		Row:    row,
		Width:  int(math.Round(r.MaxX()/s.ColPoints)) - col,
		Height: int(math.Round(r.MaxY()/s.RowPoints)) - row,
	}
}

// Velocity converts cells per second into points per second.
func (s Scale) Velocity(colsPerSec, rowsPerSec float64) geom.Vector {
	return geom.Vector{DX: colsPerSec * s.ColPoints, DY: rowsPerSec * s.RowPoints}
}
