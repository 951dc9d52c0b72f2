package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bcdxn/f1replay/internal/replay"
)

const (
	leaderboardWidth = 22
	// ovalSegments controls how smooth the synthetic fallback outline is
	ovalSegments = 100

	trackRune     = '·'
	carRune       = '●'
	startLineRune = '▞'
)

func handleReplayKey(a App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		a.engine = nil
		a.screen = screenDetails
		return a, nil
	case " ":
		a.engine.TogglePause()
	case "r":
		a.engine.Restart()
	case "up":
		a.engine.SpeedUp()
	case "down":
		a.engine.SlowDown()
	case "+", "=":
		a.engine.ZoomIn(replay.ZoomStepKey)
	case "-":
		a.engine.ZoomOut(replay.ZoomStepKey)
	case "0":
		a.engine.ResetZoom()
	}
	return a, nil
}

func replayView(a App) string {
	e := a.engine
	if e == nil {
		return ""
	}

	geom := e.Geometry()
	c := newCanvas(int(geom.CanvasWidth), int(geom.CanvasHeight))

	drawTrack(c, e)
	drawCars(c, e)

	status := fmt.Sprintf("Lap %d / %d · Speed %.0fx · Zoom %.1fx", e.LeadLap(), maxLaps(e), e.Speed(), e.Zoom())
	if e.Paused() {
		status += " · " + s.Error.Render("PAUSED")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, c.render(), " ", leaderboardPanel(e))

	return lipgloss.JoinVertical(
		lipgloss.Top,
		s.TitleBar.Width(a.width).Render(a.details.Event.Name),
		s.SubtitleBar.Width(a.width).Render(status),
		body,
		s.Help.Render("space pause/resume · r restart · ↑/↓ speed · +/-/wheel zoom · 0 reset zoom · esc back · q quit"),
	)
}

// drawTrack plots the circuit outline: the real track map when telemetry was
// available, the synthetic oval otherwise. The first point of a real map gets
// a start/finish marker.
func drawTrack(c *canvas, e *replay.Engine) {
	track := e.Track()
	if len(track) == 0 {
		track = replay.OvalOutline(e.Geometry(), ovalSegments)
	}
	for _, p := range track {
		c.set(e.ApplyZoom(p), trackRune, s.Color.Dark)
	}
	c.set(e.ApplyZoom(track[0]), startLineRune, s.Color.Light)
}

// drawCars plots the field back to front so the leader is drawn on top of any
// overlap, each car with its team color and driver code.
func drawCars(c *canvas, e *replay.Engine) {
	standings := e.Standings()
	for i := len(standings) - 1; i >= 0; i-- {
		car := standings[i]
		p := e.ApplyZoom(car.Position())
		color := lipgloss.Color(car.Color)
		c.set(p, carRune, color)
		c.setText(replay.Point{X: p.X + 1, Y: p.Y}, car.Code, color)
	}
}

// leaderboardPanel renders the live position list next to the canvas.
func leaderboardPanel(e *replay.Engine) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(s.Color.Yellow).Render("Position"))
	b.WriteString("\n")
	for i, car := range e.Standings() {
		tire := lipgloss.NewStyle().Foreground(s.TireColor(car.Compound())).Render("●")
		line := fmt.Sprintf("%2d. %s — L%d ", i+1, car.Code, car.CurrentLap()+1)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(car.Color)).Render(line))
		b.WriteString(tire)
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(leaderboardWidth).Render(b.String())
}

func maxLaps(e *replay.Engine) int {
	max := 0
	for _, car := range e.Cars() {
		if car.TotalLaps() > max {
			max = car.TotalLaps()
		}
	}
	return max
}
