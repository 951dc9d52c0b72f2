package openf1

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bcdxn/f1replay/internal/domain"
)

// defaultLapWindow bounds a lap whose duration the API did not record, so its
// samples can still be bucketed.
const defaultLapWindow = 3 * time.Minute

// DriverLapSamples returns the raw on-track coordinate samples for every lap
// a driver completed in a race, bucketed by lap. Laps without samples come
// back with empty coordinate slices; the replay engine falls back to the
// synthetic oval for those.
func (c *Client) DriverLapSamples(ctx context.Context, year, round int, driverNumber string) ([]domain.LapTelemetry, error) {
	sessionKey, err := c.raceSessionKey(ctx, year, round)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve race session: %w", err)
	}

	laps, err := c.driverLaps(ctx, sessionKey, driverNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve laps: %w", err)
	}

	samples, err := c.locations(ctx, sessionKey, driverNumber, raceWindow(laps))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve locations: %w", err)
	}

	return bucketByLap(laps, samples), nil
}

// locationSample is one timestamped on-track coordinate.
type locationSample struct {
	at time.Time
	x  float64
	y  float64
}

// window is a half-open [from, to) time interval.
type window struct {
	from time.Time
	to   time.Time
}

// raceWindow spans from the first known lap start to the end of the last lap.
func raceWindow(laps []lapRecord) window {
	var w window
	for _, lap := range laps {
		if lap.Start.IsZero() {
			continue
		}
		if w.from.IsZero() {
			w.from = lap.Start
		}
		end := lapEnd(lap)
		if end.After(w.to) {
			w.to = end
		}
	}
	return w
}

func lapEnd(lap lapRecord) time.Time {
	if lap.Duration > 0 {
		return lap.Start.Add(time.Duration(lap.Duration * float64(time.Second)))
	}
	return lap.Start.Add(defaultLapWindow)
}

// locations fetches all of a driver's coordinate samples within the window in
// one call; one race worth of samples is large but well within what the API
// serves.
func (c *Client) locations(ctx context.Context, sessionKey int, driverNumber string, w window) ([]locationSample, error) {
	if w.from.IsZero() {
		return nil, fmt.Errorf("no lap start times to bound the location query")
	}

	path := fmt.Sprintf("/location?session_key=%d&driver_number=%s&date>=%s&date<%s",
		sessionKey, driverNumber, formatDate(w.from), formatDate(w.to))
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var rows []apiLocation
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}

	samples := make([]locationSample, 0, len(rows))
	for _, row := range rows {
		t, err := parseDate(row.Date)
		if err != nil {
			continue
		}
		samples = append(samples, locationSample{at: t, x: row.X, y: row.Y})
	}
	return samples, nil
}

// bucketByLap assigns each sample to the lap whose time window contains it.
// Samples are returned by the API in time order, so a single forward pass
// suffices.
func bucketByLap(laps []lapRecord, samples []locationSample) []domain.LapTelemetry {
	out := make([]domain.LapTelemetry, len(laps))
	for i, lap := range laps {
		out[i].Compound = lap.Compound
	}

	i := 0
	for _, s := range samples {
		for i < len(laps) && !s.at.Before(lapEnd(laps[i])) {
			i++
		}
		if i >= len(laps) {
			break
		}
		if laps[i].Start.IsZero() || s.at.Before(laps[i].Start) {
			continue
		}
		out[i].X = append(out[i].X, s.x)
		out[i].Y = append(out[i].Y, s.y)
	}

	return out
}

/* API Response Types
------------------------------------------------------------------------------------------------- */

type apiLocation struct {
	Date string  `json:"date"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}
