package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overlay-window/config"
	"overlay-window/engine"
	"overlay-window/geom"
	"overlay-window/testing/harness"
	"overlay-window/testing/snapshot"
	"overlay-window/ui"
	"overlay-window/ui/layout"
)

const frameStep = 16 * time.Millisecond

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type memStore struct {
	pos  *geom.Point
	size *geom.Size
}

func (s *memStore) LoadLastPosition() (geom.Point, bool) {
	if s.pos == nil {
		return geom.Point{}, false
	}
	return *s.pos, true
}

func (s *memStore) SaveLastPosition(p geom.Point) error {
	s.pos = &p
	return nil
}

func (s *memStore) LoadLastSize() (geom.Size, bool) {
	if s.size == nil {
		return geom.Size{}, false
	}
	return *s.size, true
}

func (s *memStore) SaveLastSize(size geom.Size) error {
	s.size = &size
	return nil
}

type fixture struct {
	t     *testing.T
	m     *home
	h     *harness.Harness
	clock *fakeClock
	store *memStore
}

func newFixture(t *testing.T, cfg *config.Config, store *memStore) *fixture {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if store == nil {
		store = &memStore{}
	}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	m := newHome(context.Background(), cfg, store, clock)
	m.window = ui.NewWindow(ui.NewMaterialWithProfile(termenv.Ascii, true), cfg.RoundedCorners)

	f := &fixture{t: t, m: m, clock: clock, store: store}
	f.h = harness.New(t, m, 120, 40)
	f.run(3 * time.Second)
	return f
}

// run ticks the engine the way the frame timer would.
func (f *fixture) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frameStep {
		f.clock.Advance(frameStep)
		f.h.SendMsg(frameMsg{gen: f.m.frameGen})
	}
}

func (f *fixture) wait(d time.Duration) {
	f.clock.Advance(d)
}

// longPress fires the pending long-press timer.
func (f *fixture) longPress() {
	f.wait(longPressDelay + 20*time.Millisecond)
	f.h.SendMsg(longPressMsg{gen: f.m.pressGen})
}

func (f *fixture) position() geom.Point {
	return f.m.engine.Geometry().Position
}

func assertPoint(t *testing.T, want, got geom.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 0.01, "x")
	assert.InDelta(t, want.Y, got.Y, 0.01, "y")
}

func TestInitialPresentation(t *testing.T) {
	f := newFixture(t, nil, nil)

	assert.Equal(t, engine.ModeFree, f.m.engine.Mode().Mode())
	assertPoint(t, geom.Pt(132, 124), f.position())
	assert.Equal(t, layout.CellRect{Col: 3, Row: 7, Width: 60, Height: 19}, f.m.winLayout.Frame)
	assert.Equal(t, ui.StateDefault, f.m.menu.State())

	view := f.h.View()
	assert.Equal(t, 40, snapshot.Lines(view))
	col, row, ok := snapshot.Find(view, "╭")
	require.True(t, ok)
	assert.Equal(t, 3, col)
	assert.Equal(t, 7, row)
	assert.Contains(t, snapshot.StripANSI(view), "free")
	assert.Contains(t, snapshot.StripANSI(view), "line 01")
}

func TestStartsTuckedAwayFromHiddenPosition(t *testing.T) {
	hidden := geom.Pt(-92, 124)
	f := newFixture(t, nil, &memStore{pos: &hidden})

	mode := f.m.engine.Mode()
	assert.True(t, mode.GrabberMode)
	assert.False(t, mode.ScrollLocked)
	assert.True(t, f.m.winLayout.Grabber)
	assert.Equal(t, '┃', snapshot.Cell(f.h.View(), 5, 13))
}

func TestLongPressDragThrowsToNearestCorner(t *testing.T) {
	f := newFixture(t, nil, nil)

	f.h.Press(10, 10)
	f.longPress()
	assert.True(t, f.m.longPressed)
	assert.False(t, f.m.engine.Mode().ScrollLocked)

	f.wait(100 * time.Millisecond)
	f.h.Motion(30, 10)
	f.wait(100 * time.Millisecond)
	f.h.Motion(50, 10)
	assertPoint(t, geom.Pt(292, 124), f.position())

	f.wait(150 * time.Millisecond)
	f.h.Release(50, 10)
	f.run(5 * time.Second)

	assertPoint(t, geom.Pt(348, 124), f.position())
	require.NotNil(t, f.store.pos)
	assertPoint(t, geom.Pt(348, 124), *f.store.pos)

	mode := f.m.engine.Mode()
	assert.False(t, mode.GrabberMode)
	assert.True(t, mode.ScrollLocked)
	assert.False(t, f.m.longPressed)

	col, row, ok := snapshot.Find(f.h.View(), "╭")
	require.True(t, ok)
	assert.Equal(t, 57, col)
	assert.Equal(t, 7, row)
}

func TestDragWithoutLongPressScrollsContent(t *testing.T) {
	f := newFixture(t, nil, nil)

	f.h.Press(10, 10)
	f.wait(20 * time.Millisecond)
	f.h.Motion(10, 5)
	assert.Equal(t, 5, f.m.body.YOffset)

	// The timer fires after the pointer moved: no lift.
	f.longPress()
	assert.False(t, f.m.longPressed)

	f.h.Release(10, 5)
	f.run(time.Second)
	assertPoint(t, geom.Pt(132, 124), f.position())
}

func TestWheelScrollsContent(t *testing.T) {
	f := newFixture(t, nil, nil)

	f.h.SendMouse(10, 10, tea.MouseActionPress, tea.MouseButtonWheelDown)
	f.h.SendMouse(10, 10, tea.MouseActionPress, tea.MouseButtonWheelDown)
	assert.Equal(t, 2, f.m.body.YOffset)

	f.h.SendMouse(100, 30, tea.MouseActionPress, tea.MouseButtonWheelUp)
	assert.Equal(t, 2, f.m.body.YOffset, "outside the overlay")
}

func TestFlickTucksAwayAndTapBringsBack(t *testing.T) {
	f := newFixture(t, nil, nil)

	f.h.Press(40, 10)
	f.longPress()
	f.wait(50 * time.Millisecond)
	f.h.Motion(20, 10)
	f.wait(50 * time.Millisecond)
	f.h.Motion(0, 10)
	f.wait(16 * time.Millisecond)
	f.h.Release(0, 10)
	f.run(3 * time.Second)

	assertPoint(t, geom.Pt(-92, 124), f.position())
	mode := f.m.engine.Mode()
	require.True(t, mode.GrabberMode)
	assert.False(t, mode.ScrollLocked)
	assert.Equal(t, engine.ModeGrabberHidden, mode.Mode())
	assert.Equal(t, layout.CellRect{Col: 5, Row: 13, Width: 1, Height: 6}, f.m.winLayout.Pill)
	assert.Equal(t, '┃', snapshot.Cell(f.h.View(), 5, 14))

	f.h.Press(5, 14)
	f.wait(50 * time.Millisecond)
	f.h.Release(5, 14)
	f.run(3 * time.Second)

	assertPoint(t, geom.Pt(132, 124), f.position())
	mode = f.m.engine.Mode()
	assert.False(t, mode.GrabberMode)
	assert.True(t, mode.ScrollLocked)
	require.NotNil(t, f.store.pos)
	assertPoint(t, geom.Pt(132, 124), *f.store.pos)
}

func TestGrabberKeyUnhides(t *testing.T) {
	hidden := geom.Pt(-92, 124)
	f := newFixture(t, nil, &memStore{pos: &hidden})

	f.h.SendKey("g")
	f.run(3 * time.Second)
	assertPoint(t, geom.Pt(132, 124), f.position())
	assert.Equal(t, engine.ModeFree, f.m.engine.Mode().Mode())
}

func TestResizeSession(t *testing.T) {
	f := newFixture(t, nil, nil)

	f.h.SendKey("r")
	f.run(5 * time.Second)
	require.Equal(t, engine.ModeResizing, f.m.engine.Mode().Mode())
	assert.Equal(t, ui.StateResizing, f.m.menu.State())
	assertPoint(t, geom.Pt(240, 152), f.position())

	gb := f.m.winLayout.HeightGrabber
	require.False(t, gb.Empty())
	view := snapshot.StripANSI(f.h.View())
	assert.Contains(t, view, "Resize")
	assert.Contains(t, view, "240 × 148 pt")

	f.h.Press(gb.Col+1, gb.Row)
	f.wait(100 * time.Millisecond)
	f.h.Motion(gb.Col+1, gb.Row+4)
	f.wait(200 * time.Millisecond)
	f.h.Release(gb.Col+1, gb.Row+4)
	f.run(2 * time.Second)

	assert.InDelta(t, 212, f.m.engine.Geometry().Size.Height, 0.01)
	require.NotNil(t, f.store.size)
	assert.InDelta(t, 212, f.store.size.Height, 0.01)
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "240 × 212 pt")

	f.h.SendKey("0")
	f.run(2 * time.Second)
	assert.InDelta(t, 148, f.m.engine.Geometry().Size.Height, 0.01)

	f.h.SendSpecialKey(tea.KeyEnter)
	f.run(3 * time.Second)
	assert.Equal(t, engine.ModeFree, f.m.engine.Mode().Mode())
	assertPoint(t, geom.Pt(132, 124), f.position())
	assert.True(t, f.m.winLayout.HeightGrabber.Empty())
}

func TestMenuButtonCopiesGeometry(t *testing.T) {
	f := newFixture(t, nil, nil)
	var copied string
	f.m.copy = func(s string) error {
		copied = s
		return nil
	}

	mb := f.m.winLayout.MenuButton
	require.False(t, mb.Empty())
	f.h.Press(mb.Col, mb.Row)
	require.Equal(t, stateMenu, f.m.state)
	assert.Equal(t, ui.StateMenuOpen, f.m.menu.State())
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "Copy geometry")

	harness.NewKeySequence("j", "j", "j").Play(f.h)
	f.h.SendSpecialKey(tea.KeyEnter)

	assert.Equal(t, stateDefault, f.m.state)
	assert.Equal(t, "x=132 y=124 w=240 h=148 mode=free", copied)
}

func TestCopyFailureShowsError(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.m.copy = func(string) error { return errors.New("no clipboard") }

	cmd := f.h.SendKey("y")
	assert.NotNil(t, cmd)
	assert.Contains(t, f.m.errText, "no clipboard")
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "no clipboard")

	f.h.SendMsg(hideErrMsg{})
	assert.Empty(t, f.m.errText)
}

func TestMenuHideAndShow(t *testing.T) {
	f := newFixture(t, nil, nil)

	f.h.SendKey("m")
	require.Equal(t, stateMenu, f.m.state)
	f.h.SendSpecialKey(tea.KeyEnter)
	f.run(2 * time.Second)

	assert.Equal(t, engine.ModeHidden, f.m.engine.Mode().Mode())
	assert.False(t, f.m.winLayout.Visible)
	assert.Equal(t, ui.StateHidden, f.m.menu.State())

	f.h.SendKey("s")
	f.run(3 * time.Second)
	assert.Equal(t, engine.ModeFree, f.m.engine.Mode().Mode())
	assert.True(t, f.m.winLayout.Visible)
}

func TestMenuWithoutHideAction(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HideActionEnabled = false
	f := newFixture(t, cfg, nil)

	f.h.SendKey("m")
	require.NotNil(t, f.m.actionMenu)
	assert.NotContains(t, snapshot.StripANSI(f.h.View()), "Hide")

	f.h.SendSpecialKey(tea.KeyEsc)
	assert.Equal(t, stateDefault, f.m.state)
	assert.Nil(t, f.m.actionMenu)
}

func TestPressClosesMenu(t *testing.T) {
	f := newFixture(t, nil, nil)

	f.h.SendKey("m")
	require.Equal(t, stateMenu, f.m.state)
	f.h.Press(100, 30)
	assert.Equal(t, stateDefault, f.m.state)
	assert.False(t, f.m.tracker.Active())
}

func TestKeyboardToggle(t *testing.T) {
	f := newFixture(t, nil, nil)

	f.h.SendKey("K")
	kb := f.m.engine.Environment().KeyboardHeight
	require.NotNil(t, kb)
	assert.InDelta(t, 0.4*304, *kb, 1e-9)

	f.run(2 * time.Second)
	// Resting on the top row: the keyboard does not move the overlay.
	assertPoint(t, geom.Pt(132, 124), f.position())

	_, row, ok := snapshot.Find(f.h.View(), "keyboard")
	require.True(t, ok)
	assert.GreaterOrEqual(t, row, 24)
	assert.Less(t, row, 39)

	f.h.SendKey("K")
	assert.Nil(t, f.m.engine.Environment().KeyboardHeight)
}

func TestTerminalResizeResnaps(t *testing.T) {
	f := newFixture(t, nil, nil)

	f.h.Press(10, 10)
	f.longPress()
	f.wait(100 * time.Millisecond)
	f.h.Motion(30, 10)
	f.wait(100 * time.Millisecond)
	f.h.Motion(50, 10)
	f.wait(150 * time.Millisecond)
	f.h.Release(50, 10)
	f.run(5 * time.Second)
	assertPoint(t, geom.Pt(348, 124), f.position())

	f.h.Resize(200, 50)
	f.run(3 * time.Second)

	assert.Equal(t, geom.Size{Width: 600, Height: 288}, f.m.engine.Environment().Container)
	assertPoint(t, geom.Pt(468, 124), f.position())
	assert.Equal(t, 116, f.m.winLayout.Frame.Col)
}

func TestEmptyTerminalIsRejected(t *testing.T) {
	f := newFixture(t, nil, nil)

	f.h.Resize(0, 0)
	assert.NotEmpty(t, f.m.errText)
	assert.Equal(t, geom.Size{Width: 480, Height: 304}, f.m.engine.Environment().Container)
	assert.Empty(t, f.h.View())

	f.h.Resize(120, 40)
	f.run(time.Second)
	assert.True(t, f.m.winLayout.Visible)
}

func TestExcludeFromStatusBar(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ExcludeFromStatusBar = true
	f := newFixture(t, cfg, nil)

	assert.Equal(t, 0, f.m.constraints.ContainerTop)
	assert.Equal(t, geom.Size{Width: 480, Height: 312}, f.m.engine.Environment().Container)
	assert.Equal(t, 6, f.m.winLayout.Frame.Row)
}

func TestHelpScreen(t *testing.T) {
	f := newFixture(t, nil, nil)

	f.h.SendKey("?")
	require.Equal(t, stateHelp, f.m.state)
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "Press any key to close")

	f.h.SendKey("x")
	assert.Equal(t, stateDefault, f.m.state)
}

func TestQuit(t *testing.T) {
	f := newFixture(t, nil, nil)

	cmd := f.h.SendKey("q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStaleFrameIsDropped(t *testing.T) {
	f := newFixture(t, nil, nil)

	f.h.SendKey("r")
	before := f.m.engine.Geometry()
	f.wait(100 * time.Millisecond)
	f.h.SendMsg(frameMsg{gen: f.m.frameGen - 1})
	assert.Equal(t, before, f.m.engine.Geometry())

	f.h.SendMsg(frameMsg{gen: f.m.frameGen})
	assert.NotEqual(t, before, f.m.engine.Geometry())
}

func TestInspectSnapshot(t *testing.T) {
	f := newFixture(t, nil, nil)

	s := f.m.inspectSnapshot(f.m.engine.Snapshot())
	assert.Equal(t, 120, s.Terminal.Width)
	assert.Equal(t, 1, s.Layout.ContainerTop)
	assert.Equal(t, "free", s.Engine.Mode)
	assert.NotEmpty(t, s.Engine.Targets)

	w := s.Components.Find("Window")
	require.NotNil(t, w)
	assert.True(t, w.Visible)
	assert.Equal(t, 3, w.Bounds.X)
}

func TestCommonSizesRender(t *testing.T) {
	harness.RunWithCommonSizes(t, func(t *testing.T, size harness.TerminalSize) {
		f := newFixture(t, nil, nil)
		f.h.Resize(size.Width, size.Height)
		f.run(3 * time.Second)

		assert.Equal(t, size.Mode, f.m.constraints.Mode)
		view := f.h.View()
		assert.LessOrEqual(t, snapshot.Width(view), size.Width)
		assert.True(t, f.m.winLayout.Visible)
	})
}

func TestCompactSizesUseCoarseScale(t *testing.T) {
	sizes := harness.SizesInMode(harness.CommonSizes, layout.LayoutCompact)
	require.NotEmpty(t, sizes)
	harness.RunWithSizes(t, sizes, func(t *testing.T, size harness.TerminalSize) {
		f := newFixture(t, nil, nil)
		f.h.Resize(size.Width, size.Height)
		f.run(3 * time.Second)

		assert.Equal(t, layout.LayoutCompact.Scale(), f.m.constraints.Scale)
	})
}

func TestSlowDragScrollsWithoutMoving(t *testing.T) {
	f := newFixture(t, nil, nil)

	harness.NewDrag(10, 12, 10, 8, 4).Play(f.h)
	assert.Equal(t, 4, f.m.body.YOffset)
	assert.False(t, f.m.longPressed)

	f.run(time.Second)
	assertPoint(t, geom.Pt(132, 124), f.position())
	assert.Equal(t, engine.ModeFree, f.m.engine.Mode().Mode())
}
