package snap

import (
	"errors"
	"fmt"
	"math"

	"overlay-window/geom"
)

// ErrInvalidEnvironment is returned when an environment snapshot cannot be
// used to place the overlay.
var ErrInvalidEnvironment = errors.New("invalid environment")

// Top insets applied above the top row of targets.
const (
	RoundedCornerInset = 38
	SquareCornerInset  = 16
)

// Environment is a read-only snapshot of the space the overlay lives in.
type Environment struct {
	// Container is the size of the window hosting the overlay.
	Container geom.Size `json:"container"`
	// KeyboardHeight is the height of the on-screen keyboard, nil when hidden.
	KeyboardHeight *float64 `json:"keyboard_height,omitempty"`
	// CornerInsetTop keeps the top targets clear of rounded display corners.
	CornerInsetTop float64 `json:"corner_inset_top"`
	// BottomSafeInset is the host's bottom safe-area inset.
	BottomSafeInset float64 `json:"bottom_safe_inset"`
}

// CornerInset returns the top inset for a display with or without rounded
// corners.
func CornerInset(rounded bool) float64 {
	if rounded {
		return RoundedCornerInset
	}
	return SquareCornerInset
}

// Validate rejects environments the resolver cannot reason about.
func (e Environment) Validate() error {
	if e.Container.IsZero() {
		return fmt.Errorf("%w: container size %s", ErrInvalidEnvironment, e.Container)
	}
	if e.KeyboardHeight != nil {
		kb := *e.KeyboardHeight
		if kb < 0 || math.IsNaN(kb) {
			return fmt.Errorf("%w: negative keyboard height %v", ErrInvalidEnvironment, kb)
		}
		if kb > e.Container.Height {
			return fmt.Errorf("%w: keyboard height %v exceeds container height %v",
				ErrInvalidEnvironment, kb, e.Container.Height)
		}
	}
	if e.CornerInsetTop < 0 || e.BottomSafeInset < 0 {
		return fmt.Errorf("%w: negative inset", ErrInvalidEnvironment)
	}
	return nil
}

// WithKeyboard returns a copy of e with the keyboard height replaced. A nil
// height means the keyboard is hidden.
func (e Environment) WithKeyboard(height *float64) Environment {
	if height != nil {
		h := *height
		height = &h
	}
	e.KeyboardHeight = height
	return e
}

// bottomInset is the space reserved below the bottom row of targets.
func (e Environment) bottomInset() float64 {
	if e.KeyboardHeight != nil {
		return math.Max(*e.KeyboardHeight, e.BottomSafeInset)
	}
	return e.BottomSafeInset
}
