package jolpica

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LapTimes returns a driver's recorded lap durations for a race, in lap
// order. Laps with unparseable times are returned as zero durations; the
// replay engine substitutes a synthetic estimate for those.
func (c *Client) LapTimes(ctx context.Context, year, round int, driverID string) ([]time.Duration, error) {
	body, err := c.get(ctx, fmt.Sprintf("/%d/%d/drivers/%s/laps.json?limit=500", year, round, driverID))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lap times: %w", err)
	}

	var lr lapsResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("failed to decode lap times: %w", err)
	}
	if len(lr.MRData.RaceTable.Races) == 0 {
		return nil, fmt.Errorf("no lap times published for driver %s", driverID)
	}

	laps := lr.MRData.RaceTable.Races[0].Laps
	durations := make([]time.Duration, 0, len(laps))
	for _, lap := range laps {
		if len(lap.Timings) == 0 {
			durations = append(durations, 0)
			continue
		}
		d, err := ParseLapTime(lap.Timings[0].Time)
		if err != nil {
			c.logger.Debug("unparseable lap time", "driver", driverID, "lap", lap.Number, "time", lap.Timings[0].Time)
			d = 0
		}
		durations = append(durations, d)
	}

	return durations, nil
}

// ParseLapTime parses an elapsed time string as published by the API, either
// "M:SS.mmm" or "H:MM:SS.mmm".
func ParseLapTime(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid lap time %q", s)
	}

	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid lap time %q: %w", s, err)
	}
	mins, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return 0, fmt.Errorf("invalid lap time %q: %w", s, err)
	}
	hours := 0
	if len(parts) == 3 {
		hours, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid lap time %q: %w", s, err)
		}
	}

	d := time.Duration(hours)*time.Hour +
		time.Duration(mins)*time.Minute +
		time.Duration(secs*float64(time.Second))
	return d, nil
}

/* API Response Types
------------------------------------------------------------------------------------------------- */

type lapsResponse struct {
	MRData struct {
		RaceTable struct {
			Races []struct {
				Laps []struct {
					Number  string `json:"number"`
					Timings []struct {
						DriverID string `json:"driverId"`
						Position string `json:"position"`
						Time     string `json:"time"`
					} `json:"Timings"`
				} `json:"Laps"`
			} `json:"Races"`
		} `json:"RaceTable"`
	} `json:"MRData"`
}
