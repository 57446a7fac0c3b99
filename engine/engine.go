// Package engine owns the overlay's geometry and mode and turns gesture
// samples into motion. It is driven from a single goroutine: the host feeds
// samples and calls Tick once per frame.
package engine

import (
	"fmt"
	"math"
	"time"

	"overlay-window/geom"
	"overlay-window/log"
	"overlay-window/physics"
	"overlay-window/snap"
)

// maxFrameDelta caps the time a single Tick may advance animations, so a
// stalled host does not teleport the overlay.
const maxFrameDelta = 250 * time.Millisecond

// Deferred action keys.
const (
	keyGrabberUpdate = "grabber-update"
	keyGrabberMorph  = "grabber-morph"
	keyChromeReveal  = "chrome-reveal"
	keyResizeChrome  = "resize-chrome"
)

// Options tunes the engine. DefaultOptions matches the stock overlay.
type Options struct {
	DefaultCorner   snap.Corner
	DefaultSize     geom.Size
	RoundedCorners  bool
	BottomSafeInset float64

	HeightBounds Bounds
	MinWidth     float64
	// WidthInset is subtracted from the container width to get the maximum
	// overlay width.
	WidthInset float64

	HeightSoftness physics.Softness
	WidthSoftness  physics.Softness

	Settle       physics.SpringParams
	ResizeSettle physics.SpringParams
	Deceleration float64
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		DefaultCorner:  snap.TopLeft,
		DefaultSize:    geom.Size{Width: 240, Height: 148},
		RoundedCorners: true,
		HeightBounds:   Bounds{Min: 108, Max: 346},
		MinWidth:       112,
		WidthInset:     56,
		HeightSoftness: physics.DefaultSoftness,
		WidthSoftness:  physics.DefaultSoftness,
		Settle:         physics.SettleSpring,
		ResizeSettle:   physics.ResizeSpring,
		Deceleration:   physics.DecelerationNormal,
	}
}

// Snapshot is a serializable view of the engine's state.
type Snapshot struct {
	Time        time.Time        `json:"time"`
	Mode        string           `json:"mode"`
	State       ModeState        `json:"state"`
	Geometry    Geometry         `json:"geometry"`
	Environment snap.Environment `json:"environment"`
	Targets     []geom.Point     `json:"targets"`
	Visual      Visual           `json:"visual"`
}

// Engine is the overlay's state and the controllers that mutate it.
type Engine struct {
	opts  Options
	host  RenderHost
	store Persistence
	clock Clock

	env    snap.Environment
	geo    Geometry
	mode   ModeState
	visual Visual

	configured bool
	longPress  bool
	lastTick   time.Time

	anim  *animator
	sched scheduler
	rate  *FrameRate

	drag   dragState
	height resizeAxis
	width  resizeAxis

	onSettle func(Snapshot)
}

// New creates a hidden engine. Nil dependencies are replaced with no-ops and
// the system clock.
func New(opts Options, host RenderHost, store Persistence, clock Clock) *Engine {
	if host == nil {
		host = nopHost{}
	}
	if store == nil {
		store = nopStore{}
	}
	if clock == nil {
		clock = SystemClock
	}
	e := &Engine{
		opts:  opts,
		host:  host,
		store: store,
		clock: clock,
		env: snap.Environment{
			Container:       host.ContainerSize(),
			CornerInsetTop:  snap.CornerInset(opts.RoundedCorners),
			BottomSafeInset: opts.BottomSafeInset,
		},
		geo:    Geometry{Size: opts.DefaultSize},
		mode:   initialModeState(),
		visual: hiddenVisual(),
		rate:   newFrameRate(clock),
	}
	e.visual.Body = bodySize(opts.DefaultSize, e.HeightBounds(), e.WidthBounds())
	e.anim = newAnimator(e.channel, e.setChannel)
	return e
}

// OnSettle registers fn to be called each time the overlay comes to rest
// after a drag.
func (e *Engine) OnSettle(fn func(Snapshot)) {
	e.onSettle = fn
}

func (e *Engine) Geometry() Geometry            { return e.geo }
func (e *Engine) Mode() ModeState               { return e.mode }
func (e *Engine) Visual() Visual                { return e.visual }
func (e *Engine) Environment() snap.Environment { return e.env }
func (e *Engine) Options() Options              { return e.opts }
func (e *Engine) FrameRate() *FrameRate         { return e.rate }

// Frame returns what the host should draw right now.
func (e *Engine) Frame() Frame {
	return Frame{Rect: e.geo.Frame(), Visual: e.visual, Mode: e.mode}
}

// Snapshot captures the current state, including the targets the overlay
// could settle on from where it is.
func (e *Engine) Snapshot() Snapshot {
	var targets []geom.Point
	if e.env.Validate() == nil {
		targets = snap.ComputePossibleTargets(e.geo.Position, e.geo.Size, e.env)
	}
	return Snapshot{
		Time:        e.clock.Now(),
		Mode:        e.mode.Mode().String(),
		State:       e.mode,
		Geometry:    e.geo,
		Environment: e.env,
		Targets:     targets,
		Visual:      e.visual,
	}
}

// HeightBounds returns the hard limits for the overlay height.
func (e *Engine) HeightBounds() Bounds {
	return e.opts.HeightBounds
}

// WidthBounds returns the hard limits for the overlay width, which depend on
// the container.
func (e *Engine) WidthBounds() Bounds {
	hi := e.env.Container.Width - e.opts.WidthInset
	if hi < e.opts.MinWidth {
		hi = e.opts.MinWidth
	}
	return Bounds{Min: e.opts.MinWidth, Max: hi}
}

// ResizeCenter is where the overlay sits while the resize session is open.
func (e *Engine) ResizeCenter() geom.Point {
	y := math.Round(e.env.Container.Height / 2)
	if !e.opts.RoundedCorners {
		y += 24
	}
	return geom.Point{X: math.Round(e.env.Container.Width / 2), Y: y}
}

// Show presents the overlay. The first call loads the persisted size and
// places the overlay on its cached endpoint.
func (e *Engine) Show() error {
	if e.mode.Visible {
		return nil
	}
	if !e.configured {
		if err := e.configure(); err != nil {
			return err
		}
	} else {
		e.reanchor()
	}
	e.mode.Visible = true
	e.visual.Scale = 0.9
	e.anim.start(ChannelScale, 1, 0, physics.SpringParams{Damping: 0.6, Response: 500 * time.Millisecond})
	e.anim.start(ChannelAlpha, 1, 0, physics.Critical(400*time.Millisecond))
	e.rate.Perform(600 * time.Millisecond)
	log.InfoLog.Printf("overlay shown at %s", e.geo.Position)
	return nil
}

// Hide dismisses the overlay, closing the resize session if it is open.
func (e *Engine) Hide() {
	if !e.mode.Visible {
		return
	}
	if e.mode.ResizeActive {
		e.EndResize()
	}
	e.cancelDrag()
	e.mode.Visible = false
	e.anim.start(ChannelScale, 0.9, 0, physics.Critical(400*time.Millisecond))
	e.anim.start(ChannelAlpha, 0, 0, physics.Critical(300*time.Millisecond))
	e.rate.Perform(400 * time.Millisecond)
	log.InfoLog.Printf("overlay hidden")
}

func (e *Engine) configure() error {
	if e.env.Container.IsZero() {
		e.env.Container = e.host.ContainerSize()
	}
	if err := e.env.Validate(); err != nil {
		return fmt.Errorf("failed to configure overlay: %w", err)
	}

	size := e.opts.DefaultSize
	if s, ok := e.store.LoadLastSize(); ok && !s.IsZero() {
		size = s
	}
	size = e.clampSize(size)
	e.writeSize(size)

	target := e.cachedEndpoint()
	e.geo.Position = target
	if snap.HiddenTarget(target, e.env) {
		e.mode.GrabberMode = true
		e.mode.ScrollLocked = false
		e.visual.GrabberMorph = 1
		e.visual.BodyAlpha = 0
		e.visual.ChromeAlpha = 0
	}
	e.configured = true
	e.host.CommitLayout()
	log.InfoLog.Printf("overlay configured: size %s, position %s, container %s", size, target, e.env.Container)
	return nil
}

// cachedEndpoint resolves the persisted position, or the default corner,
// into a target reachable from it.
func (e *Engine) cachedEndpoint() geom.Point {
	cached, ok := e.store.LoadLastPosition()
	if !ok {
		cached = snap.DefaultTarget(e.opts.DefaultCorner, snap.ComputeAllTargets(e.geo.Size, e.env))
	}
	return snap.NearestTarget(cached, snap.ComputePossibleTargets(cached, e.geo.Size, e.env))
}

// reanchor puts a hidden overlay back on a target of the current
// environment, which may have changed while it was away.
func (e *Engine) reanchor() {
	pos := e.targetPosition()
	target := snap.NearestTarget(pos, snap.ComputePossibleTargets(pos, e.targetSize(), e.env))
	e.anim.cancel(ChannelX)
	e.anim.cancel(ChannelY)
	e.sched.cancel(keyGrabberUpdate)
	e.geo.Position = target

	hidden := snap.HiddenTarget(target, e.env)
	e.setGrabberMode(hidden)
	e.mode.ScrollLocked = !hidden
	if target != pos {
		e.savePosition(target)
		log.InfoLog.Printf("re-anchored from %s to %s", pos, target)
	}
	e.host.CommitLayout()
}

// SetGrabberMode morphs the overlay into or out of its edge pill.
func (e *Engine) SetGrabberMode(on bool) {
	e.setGrabberMode(on)
}

func (e *Engine) setGrabberMode(on bool) {
	if e.mode.GrabberMode == on {
		return
	}
	e.mode.GrabberMode = on
	now := e.clock.Now()
	if on {
		e.sched.cancel(keyChromeReveal)
		e.anim.start(ChannelBodyAlpha, 0, 0, physics.Critical(300*time.Millisecond))
		e.anim.start(ChannelChromeAlpha, 0, 0, physics.Critical(300*time.Millisecond))
		e.sched.after(now, keyGrabberMorph, 60*time.Millisecond, func() {
			e.anim.start(ChannelGrabberMorph, 1, 0, physics.Critical(400*time.Millisecond))
		})
		return
	}
	e.sched.cancel(keyGrabberMorph)
	e.anim.start(ChannelGrabberMorph, 0, 0, physics.Critical(400*time.Millisecond))
	e.sched.after(now, keyChromeReveal, 200*time.Millisecond, func() {
		e.anim.start(ChannelBodyAlpha, 1, 0, physics.Critical(300*time.Millisecond))
		e.anim.start(ChannelChromeAlpha, 1, 0, physics.Critical(300*time.Millisecond))
	})
}

// SetSize writes a new overlay size, clamped to the bounds, and persists it.
// Outside a resize session the overlay then settles onto the nearest target
// for its new size.
func (e *Engine) SetSize(size geom.Size) {
	size = e.clampSize(size)
	e.anim.cancel(ChannelWidth)
	e.anim.cancel(ChannelHeight)
	e.writeSize(size)
	e.saveSize(size)
	e.host.CommitLayout()

	if !e.configured || e.mode.ResizeActive || e.drag.active {
		return
	}
	targets := snap.ComputePossibleTargets(e.geo.Position, size, e.env)
	e.moveTo(snap.NearestTarget(e.geo.Position, targets), physics.Critical(400*time.Millisecond))
	e.savePosition(e.targetPosition())
}

func (e *Engine) clampSize(size geom.Size) geom.Size {
	return geom.Size{
		Width:  e.WidthBounds().Clamp(size.Width),
		Height: e.HeightBounds().Clamp(size.Height),
	}
}

// fitWidth springs the width back under the bound of a container that
// shrank. A grabber being dragged is left alone; its release clamps.
func (e *Engine) fitWidth() {
	if e.width.active {
		return
	}
	want := e.anim.target(ChannelWidth)
	fit := e.WidthBounds().Clamp(want)
	if fit == want {
		return
	}
	e.anim.start(ChannelWidth, fit, 0, e.opts.ResizeSettle)
	e.rate.Perform(400 * time.Millisecond)
	e.saveSize(e.targetSize())
	log.InfoLog.Printf("width %v no longer fits, settling to %v", want, fit)
}

func (e *Engine) writeSize(size geom.Size) {
	e.geo.Size = size
	e.visual.Body = bodySize(size, e.HeightBounds(), e.WidthBounds())
}

// bodySize is the content viewport for an overlay of the given size. Width
// stops at the bounds; height keeps following a rubber-banding overlay at a
// third of the excess less.
func bodySize(size geom.Size, hb, wb Bounds) geom.Size {
	w := wb.Clamp(size.Width) - 2
	var h float64
	switch {
	case size.Height > hb.Max:
		h = hb.Max - 2 + (size.Height-hb.Max)*2/3
	case size.Height < hb.Min:
		h = hb.Min - 2 + (size.Height-hb.Min)*2/3
	default:
		h = size.Height - 2
	}
	return geom.Size{Width: w, Height: h}
}

// SetEnvironment replaces the environment. Invalid environments are
// rejected and the old one is kept. A visible overlay at rest re-settles
// against the targets of the new environment.
func (e *Engine) SetEnvironment(env snap.Environment) error {
	if err := env.Validate(); err != nil {
		log.WarningLog.Printf("rejected environment update: %v", err)
		return err
	}
	old := e.env
	e.env = env
	if e.configured && old.Container != env.Container {
		e.fitWidth()
	}
	if !e.configured || !e.mode.Visible || e.drag.active {
		return nil
	}
	if e.mode.ResizeActive {
		e.moveTo(e.ResizeCenter(), physics.Critical(550*time.Millisecond))
		e.rate.Perform(550 * time.Millisecond)
		return nil
	}
	e.resnap(old.Container != env.Container)
	return nil
}

// SetKeyboardHeight updates the keyboard height. Nil hides the keyboard.
func (e *Engine) SetKeyboardHeight(height *float64) error {
	return e.SetEnvironment(e.env.WithKeyboard(height))
}

// SetContainerSize updates the size of the space the overlay floats in.
func (e *Engine) SetContainerSize(size geom.Size) error {
	env := e.env
	env.Container = size
	return e.SetEnvironment(env)
}

// resnap moves the overlay after an environment change. Keyboard changes
// leave an overlay resting on the top row alone and otherwise pick among the
// targets below it; container changes pick among all possible targets.
func (e *Engine) resnap(containerChanged bool) {
	pos := e.targetPosition()
	size := e.targetSize()
	targets := snap.ComputePossibleTargets(pos, size, e.env)

	if !containerChanged {
		top := snap.TopRowY(size, e.env)
		if math.Abs(pos.Y-top) < 0.5 {
			return
		}
		below := make([]geom.Point, 0, len(targets))
		for _, t := range targets {
			if math.Abs(t.Y-top) >= 0.5 {
				below = append(below, t)
			}
		}
		if len(below) > 0 {
			targets = below
		}
	}

	target := snap.NearestTarget(pos, targets)
	if target == pos && !e.anim.running(ChannelX) && !e.anim.running(ChannelY) {
		return
	}
	e.moveTo(target, physics.Critical(550*time.Millisecond))
	e.rate.Perform(550 * time.Millisecond)
	if !e.longPress {
		hidden := snap.HiddenTarget(target, e.env)
		e.setGrabberMode(hidden)
		e.mode.ScrollLocked = !hidden
	}
	log.InfoLog.Printf("re-snapped to %s after environment change", target)
}

// moveTo animates the position to p.
func (e *Engine) moveTo(p geom.Point, params physics.SpringParams) {
	e.anim.start(ChannelX, p.X, 0, params)
	e.anim.start(ChannelY, p.Y, 0, params)
}

// targetPosition is where the overlay is heading, or where it is when still.
func (e *Engine) targetPosition() geom.Point {
	return geom.Point{X: e.anim.target(ChannelX), Y: e.anim.target(ChannelY)}
}

func (e *Engine) savePosition(p geom.Point) {
	if err := e.store.SaveLastPosition(p); err != nil {
		log.WarningLog.Printf("failed to persist overlay position: %v", err)
	}
}

func (e *Engine) saveSize(s geom.Size) {
	if err := e.store.SaveLastSize(s); err != nil {
		log.WarningLog.Printf("failed to persist overlay size: %v", err)
	}
}

// NeedsFrames reports whether anything is moving or pending.
func (e *Engine) NeedsFrames() bool {
	return e.rate.Elevated() || e.anim.active() || e.sched.len() > 0
}

// PreferredFrameInterval is how long the host should wait before the next
// Tick.
func (e *Engine) PreferredFrameInterval() time.Duration {
	if e.NeedsFrames() {
		return ElevatedFrameInterval
	}
	return IdleFrameInterval
}

// Tick advances the engine to the clock's current time: due deferred
// actions run first, then animations step, then expired frame-rate requests
// end, and finally the host renders.
func (e *Engine) Tick() {
	prof := log.GetProfiler()
	defer prof.StartFrame()()
	now := e.clock.Now()
	var dt time.Duration
	if !e.lastTick.IsZero() {
		dt = now.Sub(e.lastTick)
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	if dt < 0 {
		dt = 0
	}
	e.lastTick = now

	e.sched.run(now)
	stepped := prof.StartStage("animate")
	e.anim.step(dt)
	stepped()
	e.rate.expire(now)
	rendered := prof.StartStage("render")
	e.host.Render(e.Frame())
	rendered()
}

func (e *Engine) channel(ch Channel) float64 {
	switch ch {
	case ChannelX:
		return e.geo.Position.X
	case ChannelY:
		return e.geo.Position.Y
	case ChannelWidth:
		return e.geo.Size.Width
	case ChannelHeight:
		return e.geo.Size.Height
	case ChannelAlpha:
		return e.visual.Alpha
	case ChannelScale:
		return e.visual.Scale
	case ChannelBodyAlpha:
		return e.visual.BodyAlpha
	case ChannelChromeAlpha:
		return e.visual.ChromeAlpha
	case ChannelGrabberMorph:
		return e.visual.GrabberMorph
	case ChannelResizeChrome:
		return e.visual.ResizeChrome
	case ChannelHeightPill:
		return e.visual.HeightPill
	case ChannelWidthPill:
		return e.visual.WidthPill
	}
	return 0
}

func (e *Engine) setChannel(ch Channel, v float64) {
	switch ch {
	case ChannelX:
		e.geo.Position.X = v
	case ChannelY:
		e.geo.Position.Y = v
	case ChannelWidth:
		e.writeSize(geom.Size{Width: v, Height: e.geo.Size.Height})
	case ChannelHeight:
		e.writeSize(geom.Size{Width: e.geo.Size.Width, Height: v})
	case ChannelAlpha:
		e.visual.Alpha = v
	case ChannelScale:
		e.visual.Scale = v
	case ChannelBodyAlpha:
		e.visual.BodyAlpha = v
	case ChannelChromeAlpha:
		e.visual.ChromeAlpha = v
	case ChannelGrabberMorph:
		e.visual.GrabberMorph = v
	case ChannelResizeChrome:
		e.visual.ResizeChrome = v
	case ChannelHeightPill:
		e.visual.HeightPill = v
	case ChannelWidthPill:
		e.visual.WidthPill = v
	}
}
