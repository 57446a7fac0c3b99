package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"overlay-window/config"
	"overlay-window/engine"
	"overlay-window/geom"
	"overlay-window/inspect"
	"overlay-window/keys"
	"overlay-window/log"
	"overlay-window/ui"
	"overlay-window/ui/layout"
	"overlay-window/ui/overlay"
)

// longPressDelay is how long a press must rest on the overlay before it
// lifts and a drag moves it instead of scrolling its content.
const longPressDelay = 100 * time.Millisecond

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config, state *config.State) error {
	p := tea.NewProgram(
		newHome(ctx, cfg, state, engine.SystemClock),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // press, drag and release
	)
	_, err := p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// stateMenu is the state when the overlay's action menu is open.
	stateMenu
	// stateHelp is the state when the key help is displayed.
	stateHelp
)

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	// appConfig stores persistent application configuration
	appConfig *config.Config
	// store keeps the last settled position and size
	store engine.Persistence
	clock engine.Clock

	// -- Engine --

	engine *engine.Engine
	// frame is the last frame the engine handed over
	frame engine.Frame
	// frameGen identifies the live frame timer. Timers from older
	// generations are dropped when they fire.
	frameGen int
	started  bool
	// settledAt is when the overlay last came to rest
	settledAt time.Time

	// -- Layout --

	width, height int
	constraints   layout.Constraints
	degradation   layout.Degradation
	winLayout     ui.WindowLayout
	keyboardShown bool

	// -- State --

	state state

	// -- Gestures --

	tracker *ui.GestureTracker
	// target is the part the current press landed on
	target ui.Part
	// pressGen identifies the current press for its long-press timer.
	pressGen    int
	longPressed bool
	pressRow    int
	scrollStart int

	// -- UI Components --

	window *ui.Window
	// menu displays the bottom help line
	menu *ui.Menu
	// actionMenu is the popup opened from the overlay's menu button
	actionMenu *overlay.ActionMenuOverlay
	// resizePanel shows the size readout during a resize session
	resizePanel *overlay.ResizePanel
	// spinner animates the overlay's content
	spinner spinner.Model
	// body is the scrollable content inside the overlay
	body    viewport.Model
	errText string

	// copy writes to the system clipboard
	copy func(string) error
}

func newHome(ctx context.Context, cfg *config.Config, store engine.Persistence, clock engine.Clock) *home {
	m := &home{
		ctx:         ctx,
		appConfig:   cfg,
		store:       store,
		clock:       clock,
		window:      ui.NewWindow(ui.NewMaterial(), cfg.RoundedCorners),
		menu:        ui.NewMenu(),
		resizePanel: overlay.NewResizePanel(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		body:        viewport.New(0, 0),
		tracker:     ui.NewGestureTracker(layout.Scale{ColPoints: 1, RowPoints: 1}),
		target:      ui.PartNone,
		copy:        clipboard.WriteAll,
	}
	m.engine = engine.New(cfg.EngineOptions(), m, store, clock)
	m.engine.OnSettle(m.recordSettle)
	m.frame = m.engine.Frame()
	return m
}

// ContainerSize is the part of the terminal the overlay floats in, in points.
func (m *home) ContainerSize() geom.Size {
	return m.constraints.Container()
}

// Render takes the frame the engine produced this tick.
func (m *home) Render(f engine.Frame) {
	m.frame = f
	m.relayout()
}

// CommitLayout picks up a geometry write that happened outside a tick.
func (m *home) CommitLayout() {
	m.frame = m.engine.Frame()
	m.relayout()
}

func (m *home) relayout() {
	if m.constraints.ContainerCols == 0 || m.constraints.ContainerRows == 0 {
		m.winLayout = ui.WindowLayout{}
		return
	}
	m.winLayout = m.window.Layout(m.frame, m.constraints)
	if !m.winLayout.Body.Empty() {
		m.body.Width = m.winLayout.Body.Width
		m.body.Height = m.winLayout.Body.Height
	}
	m.resizePanel.SetSize(m.frame.Rect.Size)
}

// updateHandleWindowSizeEvent recomputes the cell grid and hands the new
// container, and the keyboard scaled to it, to the engine.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) tea.Cmd {
	m.width, m.height = msg.Width, msg.Height
	m.constraints = layout.ComputeConstraints(msg.Width, msg.Height, m.appConfig.ExcludeFromStatusBar)
	m.degradation = layout.ComputeDegradation(m.constraints)
	log.LayoutTrace("terminal %dx%d, mode %s, container %s",
		msg.Width, msg.Height, m.constraints.Mode, m.constraints.Container())

	m.menu.SetSize(msg.Width, m.constraints.HelpHeight)
	m.menu.SetShort(m.degradation.ShortHelp)
	m.window.SetCompact(m.degradation.CompactChrome)
	m.tracker.SetScale(m.constraints.Scale)
	if m.actionMenu != nil {
		m.actionMenu.SetWidth(m.dialogWidth())
	}
	m.resizePanel.SetWidth(min(m.dialogWidth(), 30))

	env := m.engine.Environment()
	env.Container = m.constraints.Container()
	env.KeyboardHeight = m.keyboardHeight()
	if err := m.engine.SetEnvironment(env); err != nil {
		return m.handleError(err)
	}
	if !m.started {
		if err := m.engine.Show(); err != nil {
			return m.handleError(err)
		}
		m.started = true
	}
	m.CommitLayout()
	m.refreshBody()
	return nil
}

// dialogWidth is the width of the menu and help dialogs.
func (m *home) dialogWidth() int {
	w, _ := layout.ComputeOverlaySize(m.width, m.height, 44, layout.OverlayMinHeight)
	return w
}

// keyboardHeight is the simulated keyboard for the current container, nil
// while it is hidden.
func (m *home) keyboardHeight() *float64 {
	if !m.keyboardShown {
		return nil
	}
	h := m.constraints.Container().Height * m.appConfig.KeyboardFraction
	return &h
}

func (m *home) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.scheduleFrame(),
	)
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.gen != m.frameGen {
			return m, nil
		}
		m.engine.Tick()
		m.syncMenu()
		return m, m.scheduleFrame()
	case longPressMsg:
		m.handleLongPress(msg)
		return m, m.scheduleFrame()
	case hideErrMsg:
		m.errText = ""
		return m, nil
	case keyupMsg:
		m.menu.ClearKeydown()
		return m, nil
	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		m.syncMenu()
		return m, tea.Batch(cmd, m.scheduleFrame())
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		cmd := m.updateHandleWindowSizeEvent(msg)
		m.syncMenu()
		return m, tea.Batch(cmd, m.scheduleFrame())
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshBody()
		return m, cmd
	}
	return m, nil
}

// scheduleFrame starts a new frame timer at the rate the engine asks for,
// retiring any timer already in flight.
func (m *home) scheduleFrame() tea.Cmd {
	m.frameGen++
	gen := m.frameGen
	return tea.Tick(m.engine.PreferredFrameInterval(), func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	log.GetProfiler().LogStats()
	return m, tea.Quit
}

// syncMenu points the help line at whatever the keys currently do.
func (m *home) syncMenu() {
	mode := m.engine.Mode()
	switch {
	case m.state == stateMenu:
		m.menu.SetState(ui.StateMenuOpen)
	case mode.ResizeActive:
		m.menu.SetState(ui.StateResizing)
	case !mode.Visible:
		m.menu.SetState(ui.StateHidden)
	default:
		m.menu.SetState(ui.StateDefault)
	}
}

// refreshBody fills the overlay's viewport.
func (m *home) refreshBody() {
	m.body.SetContent(m.bodyText())
}

func (m *home) bodyText() string {
	g := m.engine.Geometry()
	head := m.spinner.View() + " live"
	if m.degradation.HideBodyText {
		return head
	}
	lines := []string{
		head,
		"",
		fmt.Sprintf("position  %s", g.Position),
		fmt.Sprintf("size      %s", g.Size),
		fmt.Sprintf("mode      %s", m.engine.Mode().Mode()),
		fmt.Sprintf("settled   %s", ui.FormatLastSettled(m.settledAt, m.clock.Now())),
		"",
	}
	for i := 1; i <= 40; i++ {
		lines = append(lines, fmt.Sprintf("line %02d", i))
	}
	return strings.Join(lines, "\n")
}

// handleMouse turns presses, motion and releases on the overlay into
// engine gestures.
func (m *home) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.state != stateDefault {
		if msg.Action == tea.MouseActionPress {
			m.closeOverlays()
		}
		return nil
	}
	now := m.clock.Now()

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBody(msg, -1)
			return nil
		case tea.MouseButtonWheelDown:
			m.scrollBody(msg, 1)
			return nil
		case tea.MouseButtonLeft:
			return m.press(msg.X, msg.Y, now)
		}
	case tea.MouseActionMotion:
		if m.tracker.Active() {
			m.motion(msg.X, msg.Y, now)
		}
	case tea.MouseActionRelease:
		if m.tracker.Active() {
			m.release(msg.X, msg.Y, now)
		}
	}
	return nil
}

func (m *home) press(col, row int, now time.Time) tea.Cmd {
	if m.tracker.Active() {
		// A press without a release in between: the release got lost.
		m.cancelGesture()
	}
	part := m.winLayout.Hit(col, row)
	log.GestureTrace("press", "%s at %d,%d", part, col, row)

	switch part {
	case ui.PartMenuButton:
		m.openActionMenu()
		return nil
	case ui.PartHeightGrabber:
		m.target = part
		m.engine.ResizeHeight(m.tracker.Begin(col, row, now))
		return nil
	case ui.PartWidthGrabber:
		m.target = part
		m.engine.ResizeWidth(m.tracker.Begin(col, row, now))
		return nil
	case ui.PartWindow:
		m.target = part
		m.pressRow = row
		m.scrollStart = m.body.YOffset
		m.engine.Touch(true)
		m.engine.Drag(m.tracker.Begin(col, row, now))

		mode := m.engine.Mode()
		if mode.GrabberMode || mode.ResizeActive {
			return nil
		}
		m.pressGen++
		gen := m.pressGen
		return tea.Tick(longPressDelay, func(time.Time) tea.Msg {
			return longPressMsg{gen: gen}
		})
	}
	return nil
}

func (m *home) handleLongPress(msg longPressMsg) {
	if msg.gen != m.pressGen || !m.tracker.Active() || m.target != ui.PartWindow || m.tracker.Moved() {
		return
	}
	log.GestureTrace("long-press", "began")
	m.longPressed = true
	m.engine.LongPress(engine.PhaseBegan)
}

func (m *home) motion(col, row int, now time.Time) {
	s := m.tracker.Move(col, row, now)
	switch m.target {
	case ui.PartHeightGrabber:
		m.engine.ResizeHeight(s)
	case ui.PartWidthGrabber:
		m.engine.ResizeWidth(s)
	case ui.PartWindow:
		if m.engine.Mode().ScrollLocked {
			m.body.SetYOffset(m.scrollStart - (row - m.pressRow))
		}
		m.engine.Drag(s)
	}
}

func (m *home) release(col, row int, now time.Time) {
	s, tap := m.tracker.End(col, row, now)
	log.GestureTrace("release", "%s at %d,%d, tap %v, velocity %v", m.target, col, row, tap, s.Velocity)

	switch m.target {
	case ui.PartHeightGrabber:
		m.engine.ResizeHeight(s)
	case ui.PartWidthGrabber:
		m.engine.ResizeWidth(s)
	case ui.PartWindow:
		m.engine.Drag(s)
		m.endPress()
		if tap && m.engine.Mode().GrabberMode {
			m.engine.Tap()
		}
	}
	m.target = ui.PartNone
}

// cancelGesture abandons the gesture in progress.
func (m *home) cancelGesture() {
	s := m.tracker.Cancel()
	switch m.target {
	case ui.PartHeightGrabber:
		m.engine.ResizeHeight(s)
	case ui.PartWidthGrabber:
		m.engine.ResizeWidth(s)
	case ui.PartWindow:
		m.engine.Drag(s)
		m.endPress()
	}
	m.target = ui.PartNone
}

// endPress lets go of the long press and the touch feedback.
func (m *home) endPress() {
	m.pressGen++
	if m.longPressed {
		m.longPressed = false
		m.engine.LongPress(engine.PhaseEnded)
	}
	m.engine.Touch(false)
}

func (m *home) scrollBody(msg tea.MouseMsg, delta int) {
	if m.winLayout.Hit(msg.X, msg.Y) != ui.PartWindow || !m.engine.Mode().ScrollLocked {
		return
	}
	m.body.SetYOffset(m.body.YOffset + delta)
}

// recordSettle writes an inspection snapshot each time the overlay comes to
// rest.
func (m *home) recordSettle(s engine.Snapshot) {
	log.Debug("settled: %s at %s", s.Mode, s.Geometry.Position)
	m.settledAt = s.Time
	if err := inspect.WriteSnapshot(m.inspectSnapshot(s)); err != nil {
		log.WarningLog.Printf("failed to write inspection snapshot: %v", err)
	}
}

func (m *home) inspectSnapshot(s engine.Snapshot) *inspect.Snapshot {
	root := inspect.NewNode("Screen").
		WithBounds(0, 0, m.width, m.height).
		WithState("state", m.state.String()).
		AddChild(m.winLayout.InspectNode())
	return inspect.NewSnapshot(s).
		WithTerminal(m.width, m.height).
		WithLayout(m.constraints, m.degradation).
		WithComponents(root)
}

func (s state) String() string {
	switch s {
	case stateMenu:
		return "menu"
	case stateHelp:
		return "help"
	default:
		return "default"
	}
}

type keyupMsg struct{}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}

// hideErrMsg implements tea.Msg and clears the error text from the screen.
type hideErrMsg struct{}

// frameMsg asks for an engine tick. gen ties it to the timer that sent it.
type frameMsg struct {
	gen int
}

// longPressMsg fires when a press has rested long enough to lift the
// overlay.
type longPressMsg struct {
	gen int
}

// handleError shows err on the status line and returns a command that
// clears it after 3 seconds.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	m.errText = err.Error()
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(3 * time.Second):
		}

		return hideErrMsg{}
	}
}

func (m *home) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	status := m.statusLine()
	rows := m.height - layout.StatusLineHeight - m.constraints.HelpHeight
	parts := []string{status}
	if rows > 0 {
		hint := ui.TextStyles.Muted.Render("long press to lift • flick to throw • m for menu")
		parts = append(parts, lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, hint))
	}
	if m.constraints.HelpHeight > 0 {
		parts = append(parts, m.menu.String())
	}
	mainView := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if kb := m.keyboardRows(); kb > 0 {
		block := lipgloss.NewStyle().
			Width(m.width).
			Height(kb).
			Align(lipgloss.Center, lipgloss.Center).
			Background(ui.BackgroundSubtle).
			Foreground(ui.TextMuted).
			Render("keyboard")
		mainView = overlay.PlaceOverlay(0, m.constraints.ContainerTop+m.constraints.ContainerRows-kb, block, mainView, false, false)
	}

	for _, l := range m.window.Render(m.frame, m.winLayout, m.body.View()) {
		mainView = overlay.PlaceOverlay(l.Col, l.Row, l.Content, mainView, false, false)
	}

	if m.engine.Mode().ResizeActive {
		hb, wb := m.engine.HeightBounds(), m.engine.WidthBounds()
		m.resizePanel.SetBounds(wb.Min, wb.Max, hb.Min, hb.Max)
		panel := m.resizePanel.Render()
		x := (m.width - lipgloss.Width(panel)) / 2
		mainView = overlay.PlaceOverlay(x, m.constraints.ContainerTop, panel, mainView, false, false)
	}

	switch m.state {
	case stateMenu:
		if m.actionMenu == nil {
			log.ErrorLog.Printf("action menu is nil")
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.actionMenu.Render(), mainView, true, true)
	case stateHelp:
		return overlay.PlaceOverlay(0, 0, m.helpText(), mainView, true, true)
	}
	return mainView
}

func (m *home) statusLine() string {
	mode := m.engine.Mode().Mode()
	left := ui.ModeBadge(mode) + " " + ui.TextStyles.Primary.Render("overlay-window")

	var right string
	switch {
	case m.errText != "":
		right = ui.TextStyles.Error.Render(m.errText)
	case m.constraints.ShowMinWarning:
		right = ui.TextStyles.Error.Render(fmt.Sprintf("terminal below %dx%d", layout.MinWidth, layout.MinHeight))
	default:
		g := m.engine.Geometry()
		right = ui.TextStyles.Muted.Render(fmt.Sprintf("%s @ %s", g.Size, g.Position))
	}
	return ui.StatusLine(m.width, left, right)
}

// keyboardRows is the height of the simulated keyboard in rows.
func (m *home) keyboardRows() int {
	h := m.keyboardHeight()
	if h == nil {
		return 0
	}
	return min(m.constraints.Scale.Rows(*h), m.constraints.ContainerRows)
}
