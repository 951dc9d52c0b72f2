package openf1

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"dario.cat/mergo"

	"github.com/bcdxn/f1replay/internal/domain"
)

// lapRecord is the assembled per-lap metadata for one driver: when the lap
// started, how long it took, and the tyre compound in use.
type lapRecord struct {
	Number   int
	Start    time.Time
	Duration float64 // seconds; 0 when the API had no recorded duration
	Compound domain.TireCompound
}

// driverLaps fetches a driver's lap metadata and overlays the stint data on
// it. Lap and stint rows arrive as separate partial records keyed by lap
// number; each patch is merged over the accumulated record, later values
// overriding earlier zero fields.
func (c *Client) driverLaps(ctx context.Context, sessionKey int, driverNumber string) ([]lapRecord, error) {
	body, err := c.get(ctx, fmt.Sprintf("/laps?session_key=%d&driver_number=%s", sessionKey, driverNumber))
	if err != nil {
		return nil, err
	}

	var laps []apiLap
	if err := json.Unmarshal(body, &laps); err != nil {
		return nil, fmt.Errorf("failed to decode laps: %w", err)
	}
	if len(laps) == 0 {
		return nil, fmt.Errorf("no laps for driver %s", driverNumber)
	}

	records := make(map[int]lapRecord, len(laps))
	for _, lap := range laps {
		patch := lapRecord{Number: lap.LapNumber}
		if lap.DateStart != nil {
			if t, err := parseDate(*lap.DateStart); err == nil {
				patch.Start = t
			}
		}
		if lap.LapDuration != nil {
			patch.Duration = *lap.LapDuration
		}
		rec := records[lap.LapNumber]
		if err := mergo.Merge(&rec, patch, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge lap record: %w", err)
		}
		records[lap.LapNumber] = rec
	}

	// stints carry the compound per lap range; failure here only loses tyre
	// labels
	if stints, err := c.driverStints(ctx, sessionKey, driverNumber); err != nil {
		c.logger.Debug("no stint data", "driver", driverNumber, "err", err)
	} else {
		for _, s := range stints {
			for n := s.LapStart; n <= s.LapEnd; n++ {
				rec, ok := records[n]
				if !ok {
					continue
				}
				patch := lapRecord{Number: n, Compound: domain.TireCompound(s.Compound)}
				if err := mergo.Merge(&rec, patch, mergo.WithOverride); err != nil {
					return nil, fmt.Errorf("failed to merge stint record: %w", err)
				}
				records[n] = rec
			}
		}
	}

	ordered := make([]lapRecord, 0, len(records))
	for _, rec := range records {
		if rec.Compound == "" {
			rec.Compound = domain.TireCompoundUnknown
		}
		ordered = append(ordered, rec)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	return ordered, nil
}

func (c *Client) driverStints(ctx context.Context, sessionKey int, driverNumber string) ([]apiStint, error) {
	body, err := c.get(ctx, fmt.Sprintf("/stints?session_key=%d&driver_number=%s", sessionKey, driverNumber))
	if err != nil {
		return nil, err
	}

	var stints []apiStint
	if err := json.Unmarshal(body, &stints); err != nil {
		return nil, fmt.Errorf("failed to decode stints: %w", err)
	}
	return stints, nil
}

/* API Response Types
------------------------------------------------------------------------------------------------- */

type apiLap struct {
	LapNumber   int      `json:"lap_number"`
	DateStart   *string  `json:"date_start"`
	LapDuration *float64 `json:"lap_duration"`
}

type apiStint struct {
	StintNumber int    `json:"stint_number"`
	Compound    string `json:"compound"`
	LapStart    int    `json:"lap_start"`
	LapEnd      int    `json:"lap_end"`
}
