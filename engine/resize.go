package engine

import (
	"time"

	"overlay-window/geom"
	"overlay-window/log"
	"overlay-window/physics"
	"overlay-window/snap"
)

// resizeSessionHold is how long opening or closing the resize session keeps
// the frame rate elevated.
const resizeSessionHold = 1500 * time.Millisecond

// Axis selects which dimension a resize grabber controls.
type Axis int

const (
	AxisHeight Axis = iota
	AxisWidth
)

func (a Axis) String() string {
	if a == AxisWidth {
		return "width"
	}
	return "height"
}

type resizeAxis struct {
	active  bool
	initial float64
	request *RateRequest
}

// axis bundles everything that differs between the two resize grabbers.
type axis struct {
	state    *resizeAxis
	size     Channel
	position Channel
	pill     Channel
	bounds   Bounds
	softness physics.Softness
}

func (e *Engine) axis(a Axis) axis {
	if a == AxisWidth {
		return axis{
			state:    &e.width,
			size:     ChannelWidth,
			position: ChannelX,
			pill:     ChannelWidthPill,
			bounds:   e.WidthBounds(),
			softness: e.opts.WidthSoftness,
		}
	}
	return axis{
		state:    &e.height,
		size:     ChannelHeight,
		position: ChannelY,
		pill:     ChannelHeightPill,
		bounds:   e.HeightBounds(),
		softness: e.opts.HeightSoftness,
	}
}

// translation picks the component of a pan that drives axis a.
func (a Axis) translation(v geom.Vector) float64 {
	if a == AxisWidth {
		return v.DX
	}
	return v.DY
}

func (a Axis) center(p geom.Point) float64 {
	if a == AxisWidth {
		return p.X
	}
	return p.Y
}

// ResizeHeight feeds a bottom grabber sample.
func (e *Engine) ResizeHeight(s GestureSample) {
	e.resize(AxisHeight, s)
}

// ResizeWidth feeds a side grabber sample.
func (e *Engine) ResizeWidth(s GestureSample) {
	e.resize(AxisWidth, s)
}

// resize drives one axis. The overlay grows symmetrically about the resize
// center, so a grabber moved by t changes the dimension by 2t. Past the
// bounds the dimension rubber-bands and springs back on release.
func (e *Engine) resize(a Axis, s GestureSample) {
	if !e.mode.ResizeActive {
		return
	}
	ax := e.axis(a)
	st := ax.state

	switch s.Phase {
	case PhaseBegan:
		st.request.Release()
		st.request = e.rate.Acquire(maxGestureHold)
		st.initial = e.anim.cancel(ax.size)
		st.active = true
		e.anim.start(ax.pill, pillActive, 0, physics.Critical(400*time.Millisecond))

	case PhaseChanged:
		if !st.active {
			return
		}
		raw := st.initial + 2*a.translation(s.Translation)
		v := ax.softness.Clamp(raw, ax.bounds.Min, ax.bounds.Max)
		e.setChannel(ax.size, v)
		e.anim.cancel(ax.position)
		e.setChannel(ax.position, a.center(e.ResizeCenter()))

	case PhaseEnded, PhaseCancelled:
		if !st.active {
			return
		}
		st.active = false
		e.rate.Perform(400 * time.Millisecond)
		st.request.Release()
		st.request = nil

		settled := ax.bounds.Clamp(e.channel(ax.size))
		e.anim.start(ax.size, settled, 0, e.opts.ResizeSettle)
		e.anim.start(ax.position, a.center(e.ResizeCenter()), 0, e.opts.ResizeSettle)
		e.anim.start(ax.pill, pillIdle, 0, physics.Critical(400*time.Millisecond))
		e.saveSize(e.targetSize())
		log.InfoLog.Printf("resized %s to %v", a, settled)
	}
}

// targetSize is the size the overlay is heading to.
func (e *Engine) targetSize() geom.Size {
	return geom.Size{Width: e.anim.target(ChannelWidth), Height: e.anim.target(ChannelHeight)}
}

// Resizing reports whether a grabber is being dragged.
func (e *Engine) Resizing() bool {
	return e.height.active || e.width.active
}

// StartResize opens the resize session: the overlay leaves grabber mode,
// moves to the resize center, and shows its grabbers. Drag and long press
// are disabled until EndResize.
func (e *Engine) StartResize() {
	if !e.mode.Visible || e.mode.ResizeActive {
		return
	}
	e.cancelDrag()
	if e.longPress {
		e.LongPress(PhaseCancelled)
	}
	e.sched.cancel(keyGrabberUpdate)
	e.setGrabberMode(false)
	e.sched.cancel(keyChromeReveal)
	e.anim.start(ChannelBodyAlpha, 1, 0, physics.Critical(300*time.Millisecond))
	e.mode.ScrollLocked = true
	e.mode.ResizeActive = true

	e.rate.Perform(resizeSessionHold)
	e.moveTo(e.ResizeCenter(), physics.Critical(600*time.Millisecond))
	e.anim.start(ChannelChromeAlpha, 0, 0, physics.Critical(600*time.Millisecond))
	e.sched.after(e.clock.Now(), keyResizeChrome, 300*time.Millisecond, func() {
		e.anim.start(ChannelResizeChrome, 1, 0, physics.Critical(time.Second))
	})
	e.host.CommitLayout()
	log.InfoLog.Printf("resize session started")
}

// EndResize closes the resize session and returns the overlay to its cached
// endpoint.
func (e *Engine) EndResize() {
	if !e.mode.ResizeActive {
		return
	}
	for _, a := range []Axis{AxisHeight, AxisWidth} {
		if e.axis(a).state.active {
			e.resize(a, GestureSample{Phase: PhaseCancelled})
		}
	}
	e.mode.ResizeActive = false
	e.rate.Perform(resizeSessionHold)

	e.sched.cancel(keyResizeChrome)
	e.anim.start(ChannelResizeChrome, 0, 0, physics.Critical(200*time.Millisecond))

	size := e.geo.Size
	e.geo.Size = e.targetSize()
	target := e.cachedEndpoint()
	e.geo.Size = size
	e.moveTo(target, physics.Critical(600*time.Millisecond))

	hidden := snap.HiddenTarget(target, e.env)
	if hidden {
		e.setGrabberMode(true)
	} else {
		e.anim.start(ChannelChromeAlpha, 1, 0, physics.Critical(600*time.Millisecond))
	}
	e.mode.ScrollLocked = !hidden
	e.host.CommitLayout()
	log.InfoLog.Printf("resize session ended, returning to %s", target)
}

// ResetSize animates the overlay back to the default size while the resize
// session is open.
func (e *Engine) ResetSize() {
	if !e.mode.ResizeActive {
		return
	}
	def := e.opts.DefaultSize
	def.Width = e.WidthBounds().Clamp(def.Width)
	def.Height = e.HeightBounds().Clamp(def.Height)

	e.rate.Perform(400 * time.Millisecond)
	e.anim.start(ChannelWidth, def.Width, 0, physics.Critical(400*time.Millisecond))
	e.anim.start(ChannelHeight, def.Height, 0, physics.Critical(400*time.Millisecond))
	e.moveTo(e.ResizeCenter(), physics.Critical(400*time.Millisecond))
	e.saveSize(def)
}
