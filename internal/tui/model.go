package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/sysoverlay/internal/logging"
	"github.com/agbru/sysoverlay/internal/overlay"
	"github.com/agbru/sysoverlay/internal/sysmon"
)

// DefaultPosition is where the window first appears.
var DefaultPosition = overlay.Point{X: 2, Y: 1}

// Observer receives every sampling outcome, e.g. a metrics exporter.
type Observer interface {
	Observe(snap sysmon.Snapshot)
	ObserveError(err error)
}

type nopObserver struct{}

func (nopObserver) Observe(sysmon.Snapshot) {}
func (nopObserver) ObserveError(error)      {}

// Options configures the overlay program.
type Options struct {
	Interval    time.Duration
	AlwaysOnTop bool
	Position    overlay.Point
	Observer    Observer
	Logger      logging.Logger
}

// Model is the root bubbletea model hosting the overlay window.
type Model struct {
	view     overlay.View
	sampler  sysmon.Sampler
	observer Observer
	logger   logging.Logger
	keymap   KeyMap
	interval time.Duration
	ctx      context.Context
	now      func() time.Time
	lastTick time.Time

	width    int
	height   int
	quitting bool
}

// NewModel creates the overlay model and performs the first sample
// synchronously, so the window is never shown blank.
func NewModel(ctx context.Context, sampler sysmon.Sampler, opts Options) Model {
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}

	m := Model{
		view: overlay.NewView(overlay.Options{
			Position:    opts.Position,
			AlwaysOnTop: opts.AlwaysOnTop,
		}),
		sampler:  sampler,
		observer: opts.Observer,
		logger:   opts.Logger,
		keymap:   DefaultKeyMap(),
		interval: opts.Interval,
		ctx:      ctx,
		now:      time.Now,
	}

	snap, err := sampler.Sample(ctx)
	m.apply(SampleMsg{Snapshot: snap, Err: err})
	return m
}

// Window returns the overlay window state.
func (m Model) Window() overlay.View { return m.view }

// Quitting reports whether the Close action was taken.
func (m Model) Quitting() bool { return m.quitting }

// Init starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		m.lastTick = time.Time(msg)
		return m, sampleCmd(m.ctx, m.sampler)

	case SampleMsg:
		m.apply(msg)
		// The next tick is armed only once this one is applied, so ticks
		// never overlap.
		return m, tickCmd(m.nextTickDelay())
	}

	return m, nil
}

// nextTickDelay keeps ticks at a fixed rate measured from the last TickMsg:
// time spent sampling is deducted, and an overrun fires at once.
func (m Model) nextTickDelay() time.Duration {
	if m.lastTick.IsZero() {
		return m.interval
	}
	return max(0, m.interval-m.now().Sub(m.lastTick))
}

func (m *Model) apply(msg SampleMsg) {
	defer func() {
		m.view.SetSize(measure(renderPanel(m.view.Display())))
	}()
	if !m.view.Tick(msg.Snapshot, msg.Err) {
		m.observer.ObserveError(msg.Err)
		m.logger.Error("sample failed, keeping previous display", msg.Err)
		return
	}
	m.observer.Observe(msg.Snapshot)
	m.logger.Debug("sample applied",
		logging.Float64("cpu_percent", msg.Snapshot.CPU.Percent),
		logging.Float64("mem_percent", msg.Snapshot.Memory.UsedPercent),
		logging.String("temperature", msg.Snapshot.Temperature.String()),
		logging.Duration("took", msg.Snapshot.Took))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()

	case key.Matches(msg, m.keymap.ToggleOnTop):
		m.view.ToggleAlwaysOnTop()
		m.logger.Info("always on top toggled", logging.Bool("on_top", m.view.AlwaysOnTop()))
		return m, nil

	case key.Matches(msg, m.keymap.Dismiss):
		m.view.DismissMenu()
		return m, nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ev := tea.MouseEvent(msg)
	if ev.IsWheel() {
		return m, nil
	}
	at := overlay.Point{X: ev.X, Y: ev.Y}

	switch ev.Action {
	case tea.MouseActionPress:
		wasOnTop := m.view.AlwaysOnTop()
		if m.view.PointerDown(buttonFor(ev.Button), at) == overlay.EffectQuit {
			return m.quit()
		}
		if m.view.AlwaysOnTop() != wasOnTop {
			m.logger.Info("always on top toggled", logging.Bool("on_top", m.view.AlwaysOnTop()))
		}
	case tea.MouseActionMotion:
		m.view.PointerMove(at, ev.Button == tea.MouseButtonLeft)
	case tea.MouseActionRelease:
		m.view.PointerUp(buttonFor(ev.Button))
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.logger.Info("close requested")
	return m, tea.Quit
}

func buttonFor(b tea.MouseButton) overlay.Button {
	switch b {
	case tea.MouseButtonLeft:
		return overlay.ButtonPrimary
	case tea.MouseButtonRight:
		return overlay.ButtonSecondary
	default:
		return overlay.ButtonOther
	}
}

// View renders the screen: the status bar backdrop, the window stacked
// above or below it according to its hint, and the context menu on top.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	panel := renderPanel(m.view.Display())
	if m.width == 0 || m.height == 0 {
		return panel
	}

	c := newCanvas(m.width, m.height)
	status := m.renderStatus()
	statusAt := overlay.Point{X: 0, Y: m.height - 1}

	if m.view.Stacking() == overlay.StackAbove {
		c.draw(status, statusAt)
		c.draw(panel, m.view.Position())
	} else {
		c.draw(panel, m.view.Position())
		c.draw(status, statusAt)
	}

	if menu := m.view.Menu(); menu.IsOpen() {
		c.draw(renderMenu(menu), menu.Bounds().Min)
	}
	return c.String()
}

// Run is the public entry point for the overlay.
// It creates the bubbletea program, runs it until Close or cancellation,
// and returns the final model.
func Run(ctx context.Context, sampler sysmon.Sampler, opts Options) (Model, error) {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, sampler, opts)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return model, ctx.Err()
		}
		return model, err
	}
	if m, ok := finalModel.(Model); ok {
		return m, nil
	}
	return model, nil
}

// tickCmd returns a command that sends a TickMsg after d.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleCmd samples the host and returns a SampleMsg.
func sampleCmd(ctx context.Context, sampler sysmon.Sampler) tea.Cmd {
	return func() tea.Msg {
		snap, err := sampler.Sample(ctx)
		return SampleMsg{Snapshot: snap, Err: err}
	}
}
