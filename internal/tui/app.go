// Package tui implements the interactive terminal application: the season
// browser screens (year, session type, race list, results) and the race
// replay view.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bcdxn/f1replay/internal/domain"
	"github.com/bcdxn/f1replay/internal/jolpica"
	"github.com/bcdxn/f1replay/internal/replay"
	"github.com/bcdxn/f1replay/internal/tui/styles"
)

var s = styles.Default()

// minSeasonYear is the first F1 world championship season.
const minSeasonYear = 1950

// framePeriod is the replay frame interval (~30 fps).
const framePeriod = time.Second / 30

// Fetcher is the schedule/results data source for the browser screens.
type Fetcher interface {
	Schedule(ctx context.Context, year int, opts jolpica.ScheduleOptions) ([]domain.Event, error)
	RaceDetails(ctx context.Context, year, round int, sessionType domain.SessionType) (domain.RaceDetails, error)
}

// ReplayLoader assembles a replay engine for a completed session.
type ReplayLoader interface {
	Load(ctx context.Context, details domain.RaceDetails, geom replay.Geometry) (*replay.Engine, error)
}

// NewApp returns the bubbletea program for the application.
func NewApp(opts ...AppOption) *tea.Program {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	yi := textinput.New()
	yi.Placeholder = fmt.Sprintf("%d", time.Now().Year())
	yi.CharLimit = 4
	yi.Focus()

	a := App{
		ctx:       context.Background(),
		logger:    slog.Default(),
		screen:    screenYear,
		spinner:   sp,
		yearInput: yi,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return tea.NewProgram(a, tea.WithContext(a.ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
}

type AppOption = func(a *App)

// WithContext configures the context to use within the TUI program.
func WithContext(ctx context.Context) AppOption {
	return func(a *App) { a.ctx = ctx }
}

// WithLogger configures the logger to use within the TUI program.
func WithLogger(l *slog.Logger) AppOption {
	return func(a *App) { a.logger = l }
}

// WithFetcher configures the schedule/results data source.
func WithFetcher(f Fetcher) AppOption {
	return func(a *App) { a.fetcher = f }
}

// WithLoader configures the replay data loader.
func WithLoader(l ReplayLoader) AppOption {
	return func(a *App) { a.loader = l }
}

/* Type Definitions
------------------------------------------------------------------------------------------------- */

type screen int

const (
	screenYear screen = iota
	screenSessionType
	screenRaceList
	screenLoading
	screenDetails
	screenReplay
)

type App struct {
	ctx     context.Context
	logger  *slog.Logger
	fetcher Fetcher
	loader  ReplayLoader

	screen screen
	width  int
	height int
	errMsg string

	spinner    spinner.Model
	loadingMsg string

	yearInput textinput.Model
	year      int

	sessionCursor int
	sessionType   domain.SessionType

	events     []domain.Event
	raceCursor int

	details domain.RaceDetails

	engine    *replay.Engine
	lastFrame time.Time
}

/* Bubbletea Interface Implementation
------------------------------------------------------------------------------------------------- */

func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.spinner.Tick)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyMsg(a, msg)
	case tea.MouseMsg:
		return handleMouseMsg(a, msg)
	case tea.WindowSizeMsg:
		return handleWindowSizeMsg(a, msg)
	case ScheduleMsg:
		return handleScheduleMsg(a, msg)
	case DetailsMsg:
		return handleDetailsMsg(a, msg)
	case ReplayReadyMsg:
		return handleReplayReadyMsg(a, msg)
	case FrameMsg:
		return handleFrameMsg(a, msg)
	case ErrMsg:
		return handleErrMsg(a, msg)
	default:
		var cmd tea.Cmd
		if a.screen == screenLoading {
			a.spinner, cmd = a.spinner.Update(msg)
		}
		return a, cmd
	}
}

func (a App) View() string {
	var v string
	switch a.screen {
	case screenYear:
		v = yearView(a)
	case screenSessionType:
		v = sessionTypeView(a)
	case screenRaceList:
		v = raceListView(a)
	case screenLoading:
		v = fmt.Sprintf("%s %s", a.spinner.View(), a.loadingMsg)
	case screenDetails:
		v = detailsView(a)
	case screenReplay:
		v = replayView(a)
	}
	return s.Doc.Render(v)
}

/* Tea Message Types
------------------------------------------------------------------------------------------------- */

type ScheduleMsg []domain.Event
type DetailsMsg domain.RaceDetails
type ReplayReadyMsg struct{ Engine *replay.Engine }
type FrameMsg time.Time
type ErrMsg struct{ Err error }

/* Tea Commands
------------------------------------------------------------------------------------------------- */

func (a App) fetchScheduleCmd(year int, sessionType domain.SessionType) tea.Cmd {
	return func() tea.Msg {
		opts := jolpica.ScheduleOptions{ExcludeTesting: true}
		if sessionType == domain.SessionTypeSprint {
			opts.SprintOnly = true
		}
		events, err := a.fetcher.Schedule(a.ctx, year, opts)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ScheduleMsg(events)
	}
}

func (a App) fetchDetailsCmd(year, round int, sessionType domain.SessionType) tea.Cmd {
	return func() tea.Msg {
		details, err := a.fetcher.RaceDetails(a.ctx, year, round, sessionType)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DetailsMsg(details)
	}
}

func (a App) buildReplayCmd(details domain.RaceDetails) tea.Cmd {
	geom := replayGeometry(a.width, a.height)
	return func() tea.Msg {
		engine, err := a.loader.Load(a.ctx, details, geom)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ReplayReadyMsg{Engine: engine}
	}
}

func frameTickCmd() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

/* Tea Message Handlers
------------------------------------------------------------------------------------------------- */

func handleKeyMsg(a App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.logger.Debug("received quit key")
		return a, tea.Quit
	}

	switch a.screen {
	case screenYear:
		return handleYearKey(a, msg)
	case screenSessionType:
		return handleSessionTypeKey(a, msg)
	case screenRaceList:
		return handleRaceListKey(a, msg)
	case screenDetails:
		return handleDetailsKey(a, msg)
	case screenReplay:
		return handleReplayKey(a, msg)
	default:
		if msg.String() == "q" {
			return a, tea.Quit
		}
	}
	return a, nil
}

func handleWindowSizeMsg(a App, msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	h, v := s.Doc.GetFrameSize()
	a.width = msg.Width - h
	a.height = msg.Height - v
	return a, nil
}

func handleScheduleMsg(a App, msg ScheduleMsg) (tea.Model, tea.Cmd) {
	a.events = msg
	a.raceCursor = 0
	a.errMsg = ""
	a.screen = screenRaceList
	return a, nil
}

func handleDetailsMsg(a App, msg DetailsMsg) (tea.Model, tea.Cmd) {
	a.details = domain.RaceDetails(msg)
	a.errMsg = ""
	a.screen = screenDetails
	return a, nil
}

func handleReplayReadyMsg(a App, msg ReplayReadyMsg) (tea.Model, tea.Cmd) {
	a.engine = msg.Engine
	a.errMsg = ""
	a.screen = screenReplay
	a.lastFrame = time.Now()
	return a, frameTickCmd()
}

func handleFrameMsg(a App, msg FrameMsg) (tea.Model, tea.Cmd) {
	// Stop the tick chain once the user has left the replay.
	if a.screen != screenReplay || a.engine == nil {
		return a, nil
	}
	now := time.Time(msg)
	dt := now.Sub(a.lastFrame)
	if dt < 0 || dt > time.Second {
		dt = framePeriod
	}
	a.lastFrame = now
	a.engine.Advance(dt.Seconds())
	return a, frameTickCmd()
}

func handleErrMsg(a App, msg ErrMsg) (tea.Model, tea.Cmd) {
	a.logger.Error("fetch failed", "err", msg.Err)
	a.errMsg = msg.Err.Error()
	// Fall back to the screen the failed fetch started from.
	switch {
	case a.events == nil:
		a.screen = screenSessionType
	case a.details.Status == "":
		a.screen = screenRaceList
	default:
		a.screen = screenDetails
	}
	return a, nil
}

func handleMouseMsg(a App, msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.screen != screenReplay || a.engine == nil {
		return a, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.engine.ZoomIn(replay.ZoomStepWheel)
	case tea.MouseButtonWheelDown:
		a.engine.ZoomOut(replay.ZoomStepWheel)
	}
	return a, nil
}

/* Private Helper Functions
------------------------------------------------------------------------------------------------- */

// replayGeometry derives the replay canvas layout from the terminal size,
// leaving room for the header, footer and the leaderboard panel.
func replayGeometry(width, height int) replay.Geometry {
	cw := width - leaderboardWidth - 1
	ch := height - 5
	if cw < 20 {
		cw = 20
	}
	if ch < 10 {
		ch = 10
	}
	return replay.Geometry{
		CanvasWidth:  float64(cw),
		CanvasHeight: float64(ch),
		TrackX:       float64(cw) * 0.08,
		TrackY:       float64(ch) * 0.08,
		TrackWidth:   float64(cw) * 0.84,
		TrackHeight:  float64(ch) * 0.84,
		OvalInset:    2,
	}
}
