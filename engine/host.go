package engine

import (
	"time"

	"overlay-window/geom"
)

// RenderHost draws the overlay. The engine never draws anything itself.
type RenderHost interface {
	// ContainerSize returns the size of the space the overlay floats in.
	ContainerSize() geom.Size
	// Render receives the live overlay state once per tick.
	Render(Frame)
	// CommitLayout is called after discrete, unanimated geometry writes so
	// the host can lay out dependent decorations.
	CommitLayout()
}

// Persistence stores the overlay's last settled position and size.
type Persistence interface {
	LoadLastPosition() (geom.Point, bool)
	SaveLastPosition(geom.Point) error
	LoadLastSize() (geom.Size, bool)
	SaveLastSize(geom.Size) error
}

// Clock supplies the current time. Hosts pass a real clock; tests drive a
// fake one.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

type nopHost struct{}

func (nopHost) ContainerSize() geom.Size { return geom.Size{} }
func (nopHost) Render(Frame)             {}
func (nopHost) CommitLayout()            {}

type nopStore struct{}

func (nopStore) LoadLastPosition() (geom.Point, bool) { return geom.Point{}, false }
func (nopStore) SaveLastPosition(geom.Point) error    { return nil }
func (nopStore) LoadLastSize() (geom.Size, bool)      { return geom.Size{}, false }
func (nopStore) SaveLastSize(geom.Size) error         { return nil }
