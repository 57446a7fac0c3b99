package snap

import (
	"fmt"
	"strings"

	"overlay-window/geom"
)

// Corner is the preferred resting corner used before the user has moved the
// overlay.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// ParseCorner accepts the names produced by Corner.String.
func ParseCorner(s string) (Corner, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top-left", "topleft", "tl":
		return TopLeft, nil
	case "top-right", "topright", "tr":
		return TopRight, nil
	case "bottom-left", "bottomleft", "bl":
		return BottomLeft, nil
	case "bottom-right", "bottomright", "br":
		return BottomRight, nil
	}
	return TopLeft, fmt.Errorf("unknown corner %q (want top-left, top-right, bottom-left or bottom-right)", s)
}

// MarshalText implements encoding.TextMarshaler so configs store names.
func (c Corner) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Corner) UnmarshalText(b []byte) error {
	parsed, err := ParseCorner(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// index maps the corner onto a target set of n entries. With two targets
// left and right collapse onto top and bottom.
func (c Corner) index(n int) int {
	if n < 3 {
		if c == BottomLeft || c == BottomRight {
			return 1
		}
		return 0
	}
	return int(c)
}

// DefaultTarget picks the target for the configured corner out of the
// output of ComputeAllTargets.
func DefaultTarget(corner Corner, all []geom.Point) geom.Point {
	if len(all) == 0 {
		panic("snap: DefaultTarget called with no targets")
	}
	i := corner.index(len(all))
	if i >= len(all) {
		i = len(all) - 1
	}
	return all[i]
}
