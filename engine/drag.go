package engine

import (
	"time"

	"overlay-window/geom"
	"overlay-window/log"
	"overlay-window/physics"
	"overlay-window/snap"
)

// grabberEdgeMargin is how far past a container edge the overlay must be
// dragged before it turns into the edge pill.
const grabberEdgeMargin = 30

type dragState struct {
	active  bool
	initial geom.Point
	request *RateRequest
	// interrupted is set when the press stopped a settle in flight.
	interrupted bool
}

// Drag feeds one pan sample to the drag controller. Samples are ignored
// while the overlay is hidden or the resize session is open.
func (e *Engine) Drag(s GestureSample) {
	if !e.mode.Visible || e.mode.ResizeActive {
		return
	}

	switch s.Phase {
	case PhaseBegan:
		e.drag.request.Release()
		e.drag.request = e.rate.Acquire(maxGestureHold)
		e.drag.interrupted = e.anim.running(ChannelX) || e.anim.running(ChannelY) || e.sched.has(keyGrabberUpdate)
		e.anim.cancel(ChannelX)
		e.anim.cancel(ChannelY)
		e.sched.cancel(keyGrabberUpdate)
		e.drag.initial = e.geo.Position
		e.drag.active = true
		log.Debug("drag began at %s", e.drag.initial)

	case PhaseChanged:
		if !e.drag.active || e.mode.ScrollLocked {
			return
		}
		e.geo.Position = e.drag.initial.Add(s.Translation)
		e.updateGrabberFromPosition()

	case PhaseEnded, PhaseCancelled:
		if !e.drag.active {
			return
		}
		e.drag.active = false
		e.rate.Perform(500 * time.Millisecond)
		e.drag.request.Release()
		e.drag.request = nil
		if e.mode.ScrollLocked {
			// The content owned the gesture, so its velocity is not ours.
			// A stopped settle still has to land on a target.
			if e.drag.interrupted {
				e.settle(geom.Vector{})
			}
			return
		}
		e.settle(s.Velocity)
	}
}

// updateGrabberFromPosition shows the edge pill once the overlay is dragged
// mostly past the left or right edge.
func (e *Engine) updateGrabberFromPosition() {
	f := e.geo.Frame()
	visible := f.MaxX() > grabberEdgeMargin && f.MinX() < e.env.Container.Width-grabberEdgeMargin
	e.setGrabberMode(!visible)
}

// settle throws the overlay toward the target nearest to where its velocity
// would carry it.
func (e *Engine) settle(v geom.Vector) {
	cur := e.geo.Position
	projected := geom.Point{
		X: cur.X + physics.Project(v.DX, e.opts.Deceleration),
		Y: cur.Y + physics.Project(v.DY, e.opts.Deceleration),
	}
	targets := snap.ComputePossibleTargets(cur, e.geo.Size, e.env)
	target := snap.NearestTarget(projected, targets)

	e.anim.start(ChannelX, target.X, physics.RelativeVelocity(v.DX, cur.X, target.X), e.opts.Settle)
	e.anim.start(ChannelY, target.Y, physics.RelativeVelocity(v.DY, cur.Y, target.Y), e.opts.Settle)
	e.savePosition(target)
	log.InfoLog.Printf("settling from %s to %s", cur, target)

	e.sched.after(e.clock.Now(), keyGrabberUpdate, 50*time.Millisecond, func() {
		e.setGrabberMode(snap.HiddenTarget(target, e.env))
		e.mode.ScrollLocked = !e.mode.GrabberMode
		if e.onSettle != nil {
			e.onSettle(e.Snapshot())
		}
	})
}

func (e *Engine) cancelDrag() {
	if !e.drag.active {
		return
	}
	e.drag.active = false
	e.drag.request.Release()
	e.drag.request = nil
}

// Dragging reports whether a drag gesture is in progress.
func (e *Engine) Dragging() bool {
	return e.drag.active
}

// LongPress lifts the overlay so a following drag moves it instead of
// scrolling its content.
func (e *Engine) LongPress(phase Phase) {
	switch phase {
	case PhaseBegan:
		if !e.mode.Visible || e.mode.GrabberMode || e.mode.ResizeActive {
			return
		}
		e.longPress = true
		e.mode.ScrollLocked = false
		e.anim.start(ChannelScale, 1.04, 0, physics.Critical(400*time.Millisecond))
		e.anim.start(ChannelBodyAlpha, 0.5, 0, physics.Critical(400*time.Millisecond))
		e.anim.start(ChannelChromeAlpha, 0.5, 0, physics.Critical(400*time.Millisecond))

	case PhaseEnded, PhaseCancelled:
		if !e.longPress {
			return
		}
		e.longPress = false
		if !e.mode.GrabberMode {
			e.mode.ScrollLocked = true
		}
		e.anim.start(ChannelScale, 1, 0, physics.SpringParams{Damping: 0.5, Response: 800 * time.Millisecond})
		if !e.mode.GrabberMode {
			e.anim.start(ChannelBodyAlpha, 1, 0, physics.Critical(400*time.Millisecond))
			e.anim.start(ChannelChromeAlpha, 1, 0, physics.Critical(400*time.Millisecond))
		}
	}
}

// Touch animates press feedback. It never moves the overlay.
func (e *Engine) Touch(down bool) {
	if !e.mode.Visible {
		return
	}
	if down {
		if e.mode.GrabberMode {
			return
		}
		e.anim.start(ChannelScale, 0.95, 0, physics.SpringParams{Damping: 0.5, Response: 1250 * time.Millisecond})
		return
	}
	e.anim.start(ChannelScale, 1, 0, physics.SpringParams{Damping: 0.4, Response: 800 * time.Millisecond})
	if !e.mode.GrabberMode && !e.longPress {
		e.anim.start(ChannelBodyAlpha, 1, 0, physics.Critical(400*time.Millisecond))
		if !e.mode.ResizeActive {
			e.anim.start(ChannelChromeAlpha, 1, 0, physics.Critical(400*time.Millisecond))
		}
	}
}

// Tap brings an edge-hidden overlay back on screen. Taps on a fully visible
// overlay belong to its content and are ignored.
func (e *Engine) Tap() {
	if !e.mode.Visible || !e.mode.GrabberMode || e.drag.active {
		return
	}
	targets := snap.ComputePossibleTargets(e.geo.Position, e.geo.Size, e.env)
	visible := make([]geom.Point, 0, len(targets))
	for _, t := range targets {
		if !snap.HiddenTarget(t, e.env) {
			visible = append(visible, t)
		}
	}
	if len(visible) == 0 {
		visible = snap.ComputeAllTargets(e.geo.Size, e.env)
	}
	target := snap.NearestTarget(e.geo.Position, visible)

	e.sched.cancel(keyGrabberUpdate)
	e.moveTo(target, physics.Critical(500*time.Millisecond))
	e.rate.Perform(500 * time.Millisecond)
	e.setGrabberMode(false)
	e.mode.ScrollLocked = true
	e.savePosition(target)
	log.InfoLog.Printf("unhid overlay to %s", target)
}
