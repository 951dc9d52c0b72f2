package jolpica

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/bcdxn/f1replay/internal/domain"
)

// dateLayout is the calendar date format used by the jolpica-f1 API.
const dateLayout = "2006-01-02"

// ScheduleOptions filter the season schedule.
type ScheduleOptions struct {
	SprintOnly     bool // SprintOnly keeps only sprint-format weekends
	ExcludeTesting bool // ExcludeTesting drops non-championship (round 0) entries
}

// Schedule returns the season calendar for the given year.
func (c *Client) Schedule(ctx context.Context, year int, opts ScheduleOptions) ([]domain.Event, error) {
	body, err := c.get(ctx, fmt.Sprintf("/%d.json?limit=100", year))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve season schedule: %w", err)
	}

	var sr scheduleResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to decode season schedule: %w", err)
	}

	events := make([]domain.Event, 0, len(sr.MRData.RaceTable.Races))
	for _, race := range sr.MRData.RaceTable.Races {
		ev := toEvent(race)
		if opts.SprintOnly && ev.Format != domain.EventFormatSprint {
			continue
		}
		if opts.ExcludeTesting && ev.Round <= 0 {
			continue
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("no events found for the %d season", year)
	}

	return events, nil
}

// toEvent normalizes one schedule row into the domain model.
func toEvent(race apiRace) domain.Event {
	format := domain.EventFormatConventional
	if race.Sprint != nil {
		format = domain.EventFormatSprint
	}

	date, err := time.Parse(dateLayout, race.Date)
	if err != nil {
		date = time.Time{}
	}

	round, _ := strconv.Atoi(race.Round)

	return domain.Event{
		Name:     race.RaceName,
		Location: race.Circuit.Location.Locality,
		Country:  race.Circuit.Location.Country,
		Round:    round,
		Date:     date,
		Format:   format,
	}
}

/* API Response Types
------------------------------------------------------------------------------------------------- */

type scheduleResponse struct {
	MRData struct {
		RaceTable struct {
			Season string    `json:"season"`
			Races  []apiRace `json:"Races"`
		} `json:"RaceTable"`
	} `json:"MRData"`
}

type apiRace struct {
	Season   string `json:"season"`
	Round    string `json:"round"`
	RaceName string `json:"raceName"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Circuit  struct {
		CircuitID   string `json:"circuitId"`
		CircuitName string `json:"circuitName"`
		Location    struct {
			Locality string `json:"locality"`
			Country  string `json:"country"`
		} `json:"Location"`
	} `json:"Circuit"`
	Sprint *struct {
		Date string `json:"date"`
		Time string `json:"time"`
	} `json:"Sprint,omitempty"`
}
