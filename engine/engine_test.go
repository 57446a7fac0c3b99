package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overlay-window/geom"
	"overlay-window/physics"
	"overlay-window/snap"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeHost struct {
	size    geom.Size
	frames  []Frame
	commits int
}

func (h *fakeHost) ContainerSize() geom.Size { return h.size }
func (h *fakeHost) Render(f Frame)           { h.frames = append(h.frames, f) }
func (h *fakeHost) CommitLayout()            { h.commits++ }

type fakeStore struct {
	pos     *geom.Point
	size    *geom.Size
	saveErr error
	saves   int
}

func (s *fakeStore) LoadLastPosition() (geom.Point, bool) {
	if s.pos == nil {
		return geom.Point{}, false
	}
	return *s.pos, true
}

func (s *fakeStore) SaveLastPosition(p geom.Point) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.pos = &p
	return nil
}

func (s *fakeStore) LoadLastSize() (geom.Size, bool) {
	if s.size == nil {
		return geom.Size{}, false
	}
	return *s.size, true
}

func (s *fakeStore) SaveLastSize(size geom.Size) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.size = &size
	return nil
}

type fixture struct {
	e     *Engine
	clock *fakeClock
	host  *fakeHost
	store *fakeStore
}

// newFixture builds an engine for a 390x844 rounded-corner phone with a 34pt
// bottom safe inset.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	opts := DefaultOptions()
	opts.BottomSafeInset = 34
	f := &fixture{
		clock: newFakeClock(),
		host:  &fakeHost{size: geom.Size{Width: 390, Height: 844}},
		store: &fakeStore{},
	}
	f.e = New(opts, f.host, f.store, f.clock)
	return f
}

func (f *fixture) show(t *testing.T) {
	t.Helper()
	require.NoError(t, f.e.Show())
	f.run(2500 * time.Millisecond)
}

// run ticks the engine at 60Hz for d.
func (f *fixture) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += ElevatedFrameInterval {
		f.clock.Advance(ElevatedFrameInterval)
		f.e.Tick()
	}
}

// fling performs a long-press drag ending with velocity v.
func (f *fixture) fling(translation, v geom.Vector) {
	f.e.LongPress(PhaseBegan)
	f.e.Drag(GestureSample{Phase: PhaseBegan})
	f.e.Drag(GestureSample{Phase: PhaseChanged, Translation: translation})
	f.e.Drag(GestureSample{Phase: PhaseEnded, Translation: translation, Velocity: v})
	f.e.LongPress(PhaseEnded)
}

var (
	topLeft     = geom.Pt(132, 124)
	topRight    = geom.Pt(258, 124)
	bottomLeft  = geom.Pt(132, 724)
	bottomRight = geom.Pt(258, 724)
)

func TestShowPlacesOverlayOnDefaultCorner(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, ModeHidden, f.e.Mode().Mode())

	f.show(t)

	assert.Equal(t, topLeft, f.e.Geometry().Position)
	assert.Equal(t, geom.Size{Width: 240, Height: 148}, f.e.Geometry().Size)
	assert.Equal(t, ModeFree, f.e.Mode().Mode())
	assert.True(t, f.e.Mode().ScrollLocked)
	assert.Equal(t, 1.0, f.e.Visual().Alpha)
	assert.Equal(t, 1.0, f.e.Visual().Scale)
	assert.NotEmpty(t, f.host.frames)
	assert.Equal(t, 1, f.host.commits)
}

func TestShowRestoresPersistedState(t *testing.T) {
	f := newFixture(t)
	f.store.pos = &bottomRight
	f.store.size = &geom.Size{Width: 200, Height: 200}

	f.show(t)

	// The persisted position is re-resolved for the persisted size.
	want := geom.Pt(390-100-12, 844-100-34-12)
	assert.Equal(t, want, f.e.Geometry().Position)
	assert.Equal(t, geom.Size{Width: 200, Height: 200}, f.e.Geometry().Size)
}

func TestShowRestoresEdgeHiddenPosition(t *testing.T) {
	f := newFixture(t)
	hidden := geom.Pt(-92, 124)
	f.store.pos = &hidden

	f.show(t)

	assert.Equal(t, hidden, f.e.Geometry().Position)
	assert.Equal(t, ModeGrabberHidden, f.e.Mode().Mode())
	assert.False(t, f.e.Mode().ScrollLocked)
	assert.Equal(t, 1.0, f.e.Visual().GrabberMorph)
}

func TestShowRejectsInvalidContainer(t *testing.T) {
	f := newFixture(t)
	f.host.size = geom.Size{}
	f.e = New(f.e.Options(), f.host, f.store, f.clock)

	err := f.e.Show()
	require.Error(t, err)
	assert.True(t, errors.Is(err, snap.ErrInvalidEnvironment))
	assert.False(t, f.e.Mode().Visible)
}

func TestHideFadesOut(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.e.Hide()
	assert.Equal(t, ModeHidden, f.e.Mode().Mode())
	f.run(2 * time.Second)

	assert.Equal(t, 0.0, f.e.Visual().Alpha)
	assert.Equal(t, 0.9, f.e.Visual().Scale)

	// Showing again keeps the position.
	require.NoError(t, f.e.Show())
	assert.Equal(t, topLeft, f.e.Geometry().Position)
}

func TestDragSettlesOnNearestCorner(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.fling(geom.Vector{DX: 100, DY: 500}, geom.Vector{})
	f.run(3 * time.Second)

	assert.Equal(t, bottomRight, f.e.Geometry().Position)
	assert.Equal(t, ModeFree, f.e.Mode().Mode())
	assert.True(t, f.e.Mode().ScrollLocked)
	require.NotNil(t, f.store.pos)
	assert.Equal(t, bottomRight, *f.store.pos)
}

func TestDragFollowsTranslation(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.e.LongPress(PhaseBegan)
	f.e.Drag(GestureSample{Phase: PhaseBegan})
	f.e.Drag(GestureSample{Phase: PhaseChanged, Translation: geom.Vector{DX: 40, DY: 60}})

	assert.Equal(t, geom.Pt(172, 184), f.e.Geometry().Position)
	assert.True(t, f.e.Dragging())
}

func TestDragIgnoredWhileScrollLocked(t *testing.T) {
	f := newFixture(t)
	f.show(t)
	require.True(t, f.e.Mode().ScrollLocked)

	f.e.Drag(GestureSample{Phase: PhaseBegan})
	f.e.Drag(GestureSample{Phase: PhaseChanged, Translation: geom.Vector{DX: 40, DY: 60}})
	f.e.Drag(GestureSample{Phase: PhaseEnded, Velocity: geom.Vector{DX: 3000}})
	f.run(time.Second)

	assert.Equal(t, topLeft, f.e.Geometry().Position)
	assert.Zero(t, f.store.saves)
}

func TestFlingPastLeftEdgeHides(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.e.LongPress(PhaseBegan)
	f.e.Drag(GestureSample{Phase: PhaseBegan})
	f.e.Drag(GestureSample{Phase: PhaseChanged, Translation: geom.Vector{DX: -150}})
	assert.False(t, f.e.Mode().GrabberMode)
	f.e.Drag(GestureSample{Phase: PhaseEnded, Translation: geom.Vector{DX: -150}, Velocity: geom.Vector{DX: -1000}})
	f.e.LongPress(PhaseEnded)
	f.run(3 * time.Second)

	assert.Equal(t, geom.Pt(-92, 124), f.e.Geometry().Position)
	assert.Equal(t, ModeGrabberHidden, f.e.Mode().Mode())
	assert.False(t, f.e.Mode().ScrollLocked)
	assert.Equal(t, 1.0, f.e.Visual().GrabberMorph)
	assert.Equal(t, 0.0, f.e.Visual().BodyAlpha)
}

func TestDragPastEdgeShowsGrabberLive(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.e.LongPress(PhaseBegan)
	f.e.Drag(GestureSample{Phase: PhaseBegan})
	// maxX = 132 - 230 + 120 = 22, under the 30pt margin.
	f.e.Drag(GestureSample{Phase: PhaseChanged, Translation: geom.Vector{DX: -230}})
	assert.True(t, f.e.Mode().GrabberMode)

	f.e.Drag(GestureSample{Phase: PhaseChanged, Translation: geom.Vector{DX: -100}})
	assert.False(t, f.e.Mode().GrabberMode)
}

func TestScrollLockMatchesGrabberModeAfterSettle(t *testing.T) {
	flings := []struct {
		name        string
		translation geom.Vector
		velocity    geom.Vector
	}{
		{"stay", geom.Vector{DX: 10, DY: 10}, geom.Vector{}},
		{"down right", geom.Vector{DX: 100, DY: 500}, geom.Vector{DX: 300, DY: 800}},
		{"hide left", geom.Vector{DX: -150}, geom.Vector{DX: -1000}},
		{"hide right", geom.Vector{DX: 250}, geom.Vector{DX: 2000}},
		{"fast up", geom.Vector{DY: 300}, geom.Vector{DY: -4000}},
	}
	for _, tt := range flings {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.show(t)

			f.fling(tt.translation, tt.velocity)
			f.run(3 * time.Second)

			m := f.e.Mode()
			assert.Equal(t, !m.GrabberMode, m.ScrollLocked)
			assert.Equal(t, snap.HiddenTarget(f.e.Geometry().Position, f.e.Environment()), m.GrabberMode)
			assert.Contains(t, append(snap.ComputeAllTargets(f.e.Geometry().Size, f.e.Environment()),
				geom.Pt(-92, 124), geom.Pt(-92, 724), geom.Pt(482, 124), geom.Pt(482, 724)),
				f.e.Geometry().Position)
		})
	}
}

func TestDragBeganMidSettleReanchorsWithoutJump(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.e.LongPress(PhaseBegan)
	f.e.Drag(GestureSample{Phase: PhaseBegan})
	f.e.Drag(GestureSample{Phase: PhaseChanged, Translation: geom.Vector{DX: 100, DY: 500}})
	f.e.Drag(GestureSample{Phase: PhaseEnded, Translation: geom.Vector{DX: 100, DY: 500}})

	// Two frames in: the settle is in flight and the grabber update pending.
	f.run(2 * ElevatedFrameInterval)
	mid := f.e.Geometry().Position
	require.NotEqual(t, bottomRight, mid)

	f.e.Drag(GestureSample{Phase: PhaseBegan})
	assert.Equal(t, mid, f.e.Geometry().Position)

	f.run(500 * time.Millisecond)
	assert.Equal(t, mid, f.e.Geometry().Position, "cancelled settle must not keep moving")
	assert.False(t, f.e.Mode().ScrollLocked, "pending grabber update must be dropped")

	f.e.Drag(GestureSample{Phase: PhaseChanged, Translation: geom.Vector{DX: 5, DY: 5}})
	assert.Equal(t, mid.Add(geom.Vector{DX: 5, DY: 5}), f.e.Geometry().Position)
}

func TestDragHoldsFrameRateAndDeactivatesOnce(t *testing.T) {
	f := newFixture(t)
	f.show(t)
	f.run(time.Second)
	rate := f.e.FrameRate()
	require.False(t, rate.Elevated())
	activations, deactivations := rate.activations, rate.deactivations

	f.e.LongPress(PhaseBegan)
	f.e.Drag(GestureSample{Phase: PhaseBegan})
	assert.True(t, rate.Elevated())
	assert.Equal(t, ElevatedFrameInterval, f.e.PreferredFrameInterval())
	f.e.Drag(GestureSample{Phase: PhaseChanged, Translation: geom.Vector{DX: 100, DY: 500}})
	f.e.Drag(GestureSample{Phase: PhaseEnded})
	f.e.LongPress(PhaseEnded)
	assert.True(t, rate.Elevated())

	f.run(3 * time.Second)
	assert.False(t, rate.Elevated())
	assert.Equal(t, activations+1, rate.activations)
	assert.Equal(t, deactivations+1, rate.deactivations)
	assert.False(t, f.e.NeedsFrames())
	assert.Equal(t, IdleFrameInterval, f.e.PreferredFrameInterval())
}

func TestTapUnhidesOverlay(t *testing.T) {
	f := newFixture(t)
	hidden := geom.Pt(-92, 724)
	f.store.pos = &hidden
	f.show(t)
	require.True(t, f.e.Mode().GrabberMode)

	f.e.Tap()
	assert.False(t, f.e.Mode().GrabberMode)
	assert.True(t, f.e.Mode().ScrollLocked)
	f.run(3 * time.Second)

	assert.Equal(t, bottomLeft, f.e.Geometry().Position)
	assert.Equal(t, bottomLeft, *f.store.pos)
	assert.Equal(t, 0.0, f.e.Visual().GrabberMorph)
	assert.Equal(t, 1.0, f.e.Visual().BodyAlpha)
}

func TestTapIgnoredWhenNotHidden(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.e.Tap()
	assert.Equal(t, topLeft, f.e.Geometry().Position)
	assert.Zero(t, f.store.saves)
}

func TestLongPressIgnoredInGrabberMode(t *testing.T) {
	f := newFixture(t)
	hidden := geom.Pt(-92, 124)
	f.store.pos = &hidden
	f.show(t)

	f.e.LongPress(PhaseBegan)
	f.run(time.Second)
	assert.Equal(t, 1.0, f.e.Visual().Scale)
	f.e.LongPress(PhaseEnded)
	assert.False(t, f.e.Mode().ScrollLocked)
}

func TestLongPressLiftsOverlay(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.e.LongPress(PhaseBegan)
	assert.False(t, f.e.Mode().ScrollLocked)
	f.run(2 * time.Second)
	assert.Equal(t, 1.04, f.e.Visual().Scale)
	assert.Equal(t, 0.5, f.e.Visual().BodyAlpha)

	f.e.LongPress(PhaseEnded)
	assert.True(t, f.e.Mode().ScrollLocked)
	f.run(4 * time.Second)
	assert.Equal(t, 1.0, f.e.Visual().Scale)
	assert.Equal(t, 1.0, f.e.Visual().BodyAlpha)
}

func TestTouchFeedbackNeverMoves(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.e.Touch(true)
	f.run(500 * time.Millisecond)
	assert.Less(t, f.e.Visual().Scale, 1.0)
	f.e.Touch(false)
	f.run(4 * time.Second)

	assert.Equal(t, 1.0, f.e.Visual().Scale)
	assert.Equal(t, topLeft, f.e.Geometry().Position)
}

func TestPersistenceFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.store.saveErr = errors.New("disk full")
	f.show(t)

	f.fling(geom.Vector{DX: 100, DY: 500}, geom.Vector{})
	f.run(3 * time.Second)

	assert.Equal(t, bottomRight, f.e.Geometry().Position)
	assert.Equal(t, 1, f.store.saves)
}

func TestSetEnvironmentRejectsInvalid(t *testing.T) {
	f := newFixture(t)
	f.show(t)
	before := f.e.Environment()

	neg := -10.0
	err := f.e.SetKeyboardHeight(&neg)
	assert.ErrorIs(t, err, snap.ErrInvalidEnvironment)

	tall := 900.0
	err = f.e.SetKeyboardHeight(&tall)
	assert.ErrorIs(t, err, snap.ErrInvalidEnvironment)

	err = f.e.SetContainerSize(geom.Size{Width: 0, Height: 844})
	assert.ErrorIs(t, err, snap.ErrInvalidEnvironment)

	assert.Equal(t, before, f.e.Environment())
}

func TestKeyboardMovesBottomOverlayUp(t *testing.T) {
	f := newFixture(t)
	f.store.pos = &bottomRight
	f.show(t)
	require.Equal(t, bottomRight, f.e.Geometry().Position)

	kb := 300.0
	require.NoError(t, f.e.SetKeyboardHeight(&kb))
	f.run(3 * time.Second)
	assert.Equal(t, geom.Pt(258, 844-74-300-12), f.e.Geometry().Position)

	require.NoError(t, f.e.SetKeyboardHeight(nil))
	f.run(3 * time.Second)
	assert.Equal(t, bottomRight, f.e.Geometry().Position)

	// Keyboard movement is transient and never persisted.
	assert.Zero(t, f.store.saves)
}

func TestKeyboardLeavesTopRowAlone(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	kb := 300.0
	require.NoError(t, f.e.SetKeyboardHeight(&kb))
	f.run(time.Second)
	assert.Equal(t, topLeft, f.e.Geometry().Position)
}

func TestKeyboardDuringDragDefersToSettle(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.e.LongPress(PhaseBegan)
	f.e.Drag(GestureSample{Phase: PhaseBegan})
	f.e.Drag(GestureSample{Phase: PhaseChanged, Translation: geom.Vector{DX: 100, DY: 500}})
	kb := 300.0
	require.NoError(t, f.e.SetKeyboardHeight(&kb))
	assert.Equal(t, geom.Pt(232, 624), f.e.Geometry().Position)

	f.e.Drag(GestureSample{Phase: PhaseEnded})
	f.e.LongPress(PhaseEnded)
	f.run(3 * time.Second)
	assert.Equal(t, geom.Pt(258, 458), f.e.Geometry().Position)
}

func TestContainerChangeResnaps(t *testing.T) {
	f := newFixture(t)
	f.store.pos = &bottomRight
	f.show(t)

	landscape := geom.Size{Width: 844, Height: 390}
	require.NoError(t, f.e.SetContainerSize(landscape))
	f.run(3 * time.Second)

	targets := snap.ComputeAllTargets(f.e.Geometry().Size, f.e.Environment())
	assert.Contains(t, targets, f.e.Geometry().Position)
	assert.Equal(t, geom.Pt(132, 390-74-34-12), f.e.Geometry().Position)
}

func TestSettleReplaceToSameTargetIsNoop(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	target := geom.Pt(200, 400)
	f.e.moveTo(target, physics.Critical(time.Second))
	first := f.e.anim.motions[ChannelX]
	require.NotNil(t, first)
	f.run(100 * time.Millisecond)

	f.e.moveTo(target, physics.Critical(time.Second))
	assert.Same(t, first, f.e.anim.motions[ChannelX])

	f.run(5 * time.Second)
	assert.Equal(t, target, f.e.Geometry().Position)
}

func TestOnSettleReceivesSnapshot(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	var got []Snapshot
	f.e.OnSettle(func(s Snapshot) { got = append(got, s) })
	f.fling(geom.Vector{DX: 100, DY: 500}, geom.Vector{})
	f.run(time.Second)

	require.Len(t, got, 1)
	assert.Equal(t, "free", got[0].Mode)
	assert.NotEmpty(t, got[0].Targets)
}

func TestWideOverlayUsesCenteredTargets(t *testing.T) {
	f := newFixture(t)
	f.store.size = &geom.Size{Width: 300, Height: 148}
	f.show(t)

	assert.Equal(t, geom.Pt(195, 124), f.e.Geometry().Position)

	f.fling(geom.Vector{DY: 500}, geom.Vector{})
	f.run(3 * time.Second)
	assert.Equal(t, geom.Pt(195, 724), f.e.Geometry().Position)
}

func TestSetSizeClampsAndPersists(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.e.SetSize(geom.Size{Width: 1000, Height: 50})
	assert.Equal(t, geom.Size{Width: 334, Height: 108}, f.e.Geometry().Size)
	require.NotNil(t, f.store.size)
	assert.Equal(t, geom.Size{Width: 334, Height: 108}, *f.store.size)

	f.run(3 * time.Second)
	// 334 is wide in a 390pt container, so the overlay centers on the top row.
	assert.Equal(t, geom.Pt(195, 38+54+12), f.e.Geometry().Position)
}

func TestBodyTrailsRubberBandingHeight(t *testing.T) {
	hb := Bounds{Min: 108, Max: 346}
	wb := Bounds{Min: 112, Max: 334}

	assert.Equal(t, geom.Size{Width: 238, Height: 146}, bodySize(geom.Size{Width: 240, Height: 148}, hb, wb))
	assert.Equal(t, geom.Size{Width: 332, Height: 344 + 20}, bodySize(geom.Size{Width: 400, Height: 376}, hb, wb))
	assert.Equal(t, geom.Size{Width: 110, Height: 106 - 6}, bodySize(geom.Size{Width: 100, Height: 99}, hb, wb))
}

func TestPressDuringSettleStillLandsOnTarget(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.fling(geom.Vector{DX: 100, DY: 400}, geom.Vector{DX: 500, DY: 2000})
	f.run(3 * ElevatedFrameInterval)
	require.True(t, f.e.Mode().ScrollLocked)
	mid := f.e.Geometry().Position
	require.NotEqual(t, bottomRight, mid)

	// A plain click on the body: no long press, so the content owns it.
	f.e.Drag(GestureSample{Phase: PhaseBegan})
	f.e.Drag(GestureSample{Phase: PhaseEnded, Velocity: geom.Vector{DX: -3000}})
	f.run(3 * time.Second)

	assert.Equal(t, bottomRight, f.e.Geometry().Position)
	assert.Contains(t, snap.ComputeAllTargets(f.e.Geometry().Size, f.e.Environment()), f.e.Geometry().Position)
	require.NotNil(t, f.store.pos)
	assert.Equal(t, bottomRight, *f.store.pos)
	assert.True(t, f.e.Mode().ScrollLocked)
}

func TestPressAtRestDoesNotResettle(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.e.Drag(GestureSample{Phase: PhaseBegan})
	f.e.Drag(GestureSample{Phase: PhaseEnded})
	f.run(time.Second)

	assert.Equal(t, topLeft, f.e.Geometry().Position)
	assert.Zero(t, f.store.saves)
}

func TestShowClampsPersistedSize(t *testing.T) {
	f := newFixture(t)
	f.store.size = &geom.Size{Width: 600, Height: 900}

	f.show(t)

	assert.Equal(t, geom.Size{Width: 334, Height: 346}, f.e.Geometry().Size)
	targets := snap.ComputeAllTargets(f.e.Geometry().Size, f.e.Environment())
	assert.Contains(t, targets, f.e.Geometry().Position)
}

func TestShrinkingContainerRefitsWidth(t *testing.T) {
	f := newFixture(t)
	f.show(t)
	f.e.SetSize(geom.Size{Width: 330, Height: 148})
	f.run(2 * time.Second)
	require.Equal(t, 330.0, f.e.Geometry().Size.Width)

	require.NoError(t, f.e.SetContainerSize(geom.Size{Width: 300, Height: 844}))
	f.run(3 * time.Second)

	assert.Equal(t, 244.0, f.e.Geometry().Size.Width)
	assert.Equal(t, 148.0, f.e.Geometry().Size.Height)
	require.NotNil(t, f.store.size)
	assert.Equal(t, geom.Size{Width: 244, Height: 148}, *f.store.size)
	// 244 is wide in a 300pt container: centered targets.
	assert.Equal(t, 150.0, f.e.Geometry().Position.X)
}

func TestShowReanchorsAfterHiddenEnvironmentChange(t *testing.T) {
	f := newFixture(t)
	f.show(t)

	f.fling(geom.Vector{DX: 250, DY: 600}, geom.Vector{DX: 2000})
	f.run(3 * time.Second)
	hiddenRight := geom.Pt(390+92, 724)
	require.Equal(t, hiddenRight, f.e.Geometry().Position)
	require.True(t, f.e.Mode().GrabberMode)

	f.e.Hide()
	f.run(time.Second)
	require.NoError(t, f.e.SetContainerSize(geom.Size{Width: 390, Height: 500}))
	assert.Equal(t, hiddenRight, f.e.Geometry().Position, "hidden overlays do not move")

	require.NoError(t, f.e.Show())
	want := geom.Pt(390+92, 500-74-34-12)
	assert.Equal(t, want, f.e.Geometry().Position)
	assert.True(t, f.e.Mode().GrabberMode)
	assert.False(t, f.e.Mode().ScrollLocked)
	require.NotNil(t, f.store.pos)
	assert.Equal(t, want, *f.store.pos)

	f.run(2 * time.Second)
	assert.Equal(t, want, f.e.Geometry().Position)
	assert.LessOrEqual(t, f.e.Geometry().Frame().MaxY(), 500.0)
}
