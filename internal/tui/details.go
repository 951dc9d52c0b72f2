package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"

	"github.com/bcdxn/f1replay/internal/domain"
)

// maxResultRows limits the results grid to the top finishers; the rest are
// summarized below the table.
const maxResultRows = 10

func handleDetailsKey(a App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc", "b":
		a.errMsg = ""
		a.screen = screenRaceList
		return a, nil
	case "y":
		a.errMsg = ""
		a.yearInput.SetValue("")
		a.screen = screenYear
		return a, textinput.Blink
	case "a":
		if !canAnimate(a.details) {
			return a, nil
		}
		a.screen = screenLoading
		a.loadingMsg = fmt.Sprintf("Loading replay data for %s...", a.details.Event.Name)
		return a, tea.Batch(a.spinner.Tick, a.buildReplayCmd(a.details))
	}
	return a, nil
}

// canAnimate reports whether the selected session can be replayed: completed
// race or sprint sessions with results only. Qualifying has no positional
// replay model.
func canAnimate(details domain.RaceDetails) bool {
	return details.Status == domain.SessionStatusCompleted &&
		len(details.Results) > 0 &&
		details.SessionType != domain.SessionTypeQualifying
}

func detailsView(a App) string {
	d := a.details
	var b strings.Builder

	b.WriteString(s.TitleBar.Width(a.width).Render(d.Event.Name))
	b.WriteString("\n")
	b.WriteString(s.SubtitleBar.Width(a.width).Render(fmt.Sprintf(
		"%s, %s — Round %d — %s — %s",
		d.Event.Location, d.Event.Country, d.Event.Round,
		d.Event.Date.Format("2006-01-02"),
		strings.ToUpper(string(d.Status)),
	)))
	b.WriteString("\n\n")

	switch d.Status {
	case domain.SessionStatusUpcoming:
		b.WriteString(s.StatusBox.Render("This race hasn't taken place yet."))
	case domain.SessionStatusUnavailable:
		reason := "Race data is not yet available."
		if d.Reason != "" {
			reason += "\n" + d.Reason
		}
		b.WriteString(s.StatusBox.BorderForeground(s.Color.Yellow).Render(reason))
	default:
		b.WriteString(resultsTable(a))
		if extra := len(d.Results) - maxResultRows; extra > 0 {
			b.WriteString("\n")
			b.WriteString(s.Subtle.Render(fmt.Sprintf("... and %d more drivers", extra)))
		}
	}

	if a.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Error.Render(a.errMsg))
	}

	b.WriteString("\n\n")
	help := "b back · y change year · q quit"
	if canAnimate(d) {
		help = "a animate · " + help
	}
	b.WriteString(s.Help.Render(help))
	return b.String()
}

func resultsTable(a App) string {
	rows := make([]table.Row, 0, maxResultRows)
	for i, res := range a.details.Results {
		if i >= maxResultRows {
			break
		}
		driverStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(domain.TeamColor(res.TeamName)))
		rows = append(rows, table.NewRow(table.RowData{
			"position": res.Position,
			"driver":   table.NewStyledCell(res.DriverName, driverStyle),
			"team":     res.TeamName,
			"time":     res.Time,
			"status":   res.Status,
			"points":   res.Points,
		}))
	}

	return table.New([]table.Column{
		table.NewColumn("position", "POS", 4),
		table.NewColumn("driver", "DRIVER", 20).WithStyle(lipgloss.NewStyle().Align(lipgloss.Left)),
		table.NewColumn("team", "TEAM", 16).WithStyle(lipgloss.NewStyle().Align(lipgloss.Left)),
		table.NewColumn("time", "TIME", 12),
		table.NewColumn("status", "STATUS", 12),
		table.NewColumn("points", "PTS", 5),
	}).
		WithRows(rows).
		WithBaseStyle(lipgloss.NewStyle().AlignHorizontal(lipgloss.Center)).
		View()
}
