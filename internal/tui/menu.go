package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bcdxn/f1replay/internal/domain"
)

// sessionChoices are the session type menu entries, in display order.
var sessionChoices = []struct {
	Label string
	Type  domain.SessionType
}{
	{"Races", domain.SessionTypeRace},
	{"Sprint Races", domain.SessionTypeSprint},
	{"Qualifying", domain.SessionTypeQualifying},
}

/* Year Selection
------------------------------------------------------------------------------------------------- */

func handleYearKey(a App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return a, tea.Quit
	case "enter":
		year, err := parseYear(a.yearInput.Value())
		if err != nil {
			a.errMsg = err.Error()
			return a, nil
		}
		a.year = year
		a.errMsg = ""
		a.sessionCursor = 0
		a.screen = screenSessionType
		return a, nil
	}

	var cmd tea.Cmd
	a.yearInput, cmd = a.yearInput.Update(msg)
	return a, cmd
}

// parseYear validates the year prompt input; blank means the current year.
func parseYear(input string) (int, error) {
	currentYear := time.Now().Year()
	input = strings.TrimSpace(input)
	if input == "" {
		return currentYear, nil
	}
	year, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid input, please enter a valid year")
	}
	if year < minSeasonYear || year > currentYear {
		return 0, fmt.Errorf("invalid year, please enter a year between %d and %d", minSeasonYear, currentYear)
	}
	return year, nil
}

func yearView(a App) string {
	var b strings.Builder
	b.WriteString(s.TitleBar.Width(a.width).Render("F1 RACE REPLAY — Year Selection"))
	b.WriteString("\n\n")
	b.WriteString(s.Prompt.Render(fmt.Sprintf("Enter a year (%d-%d) or press enter for the current season:", minSeasonYear, time.Now().Year())))
	b.WriteString("\n\n")
	b.WriteString(a.yearInput.View())
	if a.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Error.Render(a.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(s.Help.Render("enter confirm · esc quit"))
	return b.String()
}

/* Session Type Selection
------------------------------------------------------------------------------------------------- */

func handleSessionTypeKey(a App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc", "0":
		a.screen = screenYear
		return a, nil
	case "up", "k":
		if a.sessionCursor > 0 {
			a.sessionCursor--
		}
	case "down", "j":
		if a.sessionCursor < len(sessionChoices)-1 {
			a.sessionCursor++
		}
	case "1", "2", "3":
		a.sessionCursor, _ = strconv.Atoi(msg.String())
		a.sessionCursor--
		fallthrough
	case "enter":
		a.sessionType = sessionChoices[a.sessionCursor].Type
		a.errMsg = ""
		a.events = nil
		a.screen = screenLoading
		a.loadingMsg = fmt.Sprintf("Loading the %d season schedule...", a.year)
		return a, tea.Batch(a.spinner.Tick, a.fetchScheduleCmd(a.year, a.sessionType))
	}
	return a, nil
}

func sessionTypeView(a App) string {
	var b strings.Builder
	b.WriteString(s.TitleBar.Width(a.width).Render(fmt.Sprintf("F1 RACE REPLAY — %d Season", a.year)))
	b.WriteString("\n\n")
	b.WriteString(s.Prompt.Render("Select session type:"))
	b.WriteString("\n\n")
	for i, choice := range sessionChoices {
		cursor := "  "
		line := fmt.Sprintf("%d. %s", i+1, choice.Label)
		if i == a.sessionCursor {
			cursor = s.Cursor.Render("> ")
			line = s.Cursor.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	if a.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(a.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Help.Render("↑/↓ move · enter select · esc back to year · q quit"))
	return b.String()
}

/* Race Selection
------------------------------------------------------------------------------------------------- */

func handleRaceListKey(a App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc", "0":
		a.screen = screenSessionType
		return a, nil
	case "up", "k":
		if a.raceCursor > 0 {
			a.raceCursor--
		}
	case "down", "j":
		if a.raceCursor < len(a.events)-1 {
			a.raceCursor++
		}
	case "enter":
		if len(a.events) == 0 {
			return a, nil
		}
		event := a.events[a.raceCursor]
		a.details = domain.RaceDetails{}
		a.screen = screenLoading
		a.loadingMsg = fmt.Sprintf("Loading %s details...", event.Name)
		return a, tea.Batch(a.spinner.Tick, a.fetchDetailsCmd(a.year, event.Round, a.sessionType))
	}
	return a, nil
}

func raceListView(a App) string {
	var b strings.Builder
	b.WriteString(s.TitleBar.Width(a.width).Render(fmt.Sprintf("F1 RACE REPLAY — %d Season", a.year)))
	b.WriteString("\n\n")
	b.WriteString(s.Prompt.Render("Select a race to view details:"))
	b.WriteString("\n\n")

	// keep the cursor visible in long seasons
	visible := a.height - 10
	if visible < 5 {
		visible = 5
	}
	start := 0
	if a.raceCursor >= visible {
		start = a.raceCursor - visible + 1
	}
	for i := start; i < len(a.events) && i < start+visible; i++ {
		ev := a.events[i]
		badge := ""
		if ev.Format == domain.EventFormatSprint {
			badge = " " + s.Badge.Render("[SPRINT]")
		}
		line := fmt.Sprintf("%2d. Round %2d — %s (%s)%s — %s",
			i+1, ev.Round, ev.Name, ev.Country, badge, ev.Date.Format("2006-01-02"))
		if i == a.raceCursor {
			b.WriteString(s.Cursor.Render("> ") + s.Cursor.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if a.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(a.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Help.Render("↑/↓ move · enter select · esc back · q quit"))
	return lipgloss.NewStyle().MaxWidth(a.width).Render(b.String())
}
