package jolpica

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bcdxn/f1replay/internal/domain"
)

// RaceDetails returns everything known about one session of one event:
// event metadata, a status classification and, for completed sessions, the
// normalized results. Data-retrieval failures after the event has taken place
// are not errors; they are reported as the data_unavailable status with a
// human-readable reason so the caller can display them. An error is returned
// only when the event itself cannot be resolved (schedule fetch failure or an
// unknown round).
func (c *Client) RaceDetails(ctx context.Context, year, round int, sessionType domain.SessionType) (domain.RaceDetails, error) {
	events, err := c.Schedule(ctx, year, ScheduleOptions{})
	if err != nil {
		return domain.RaceDetails{}, fmt.Errorf("failed to retrieve race details: %w", err)
	}

	var event domain.Event
	found := false
	for _, ev := range events {
		if ev.Round == round {
			event = ev
			found = true
			break
		}
	}
	if !found {
		return domain.RaceDetails{}, fmt.Errorf("no round %d in the %d season", round, year)
	}

	details := domain.RaceDetails{
		Event:       event,
		SessionType: sessionType,
	}

	// Events later than "now" have no results to fetch.
	if c.now().Before(event.Date) {
		details.Status = domain.SessionStatusUpcoming
		return details, nil
	}

	results, totalLaps, err := c.sessionResults(ctx, year, round, sessionType)
	if err != nil {
		c.logger.Warn("could not load session results", "year", year, "round", round, "err", err)
		details.Status = domain.SessionStatusUnavailable
		details.Reason = fmt.Sprintf("Could not load race data: %s", err)
		return details, nil
	}

	details.Status = domain.SessionStatusCompleted
	details.Results = results
	details.TotalLaps = totalLaps
	return details, nil
}

// sessionResults fetches and normalizes the classification for the requested
// session type.
func (c *Client) sessionResults(ctx context.Context, year, round int, sessionType domain.SessionType) ([]domain.RaceResult, int, error) {
	switch sessionType {
	case domain.SessionTypeSprint:
		return c.raceResults(ctx, fmt.Sprintf("/%d/%d/sprint.json", year, round))
	case domain.SessionTypeQualifying:
		return c.qualifyingResults(ctx, fmt.Sprintf("/%d/%d/qualifying.json", year, round))
	default:
		return c.raceResults(ctx, fmt.Sprintf("/%d/%d/results.json", year, round))
	}
}

func (c *Client) raceResults(ctx context.Context, path string) ([]domain.RaceResult, int, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, 0, err
	}

	var rr resultsResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return nil, 0, fmt.Errorf("failed to decode results: %w", err)
	}
	if len(rr.MRData.RaceTable.Races) == 0 {
		return nil, 0, fmt.Errorf("no results published yet")
	}

	race := rr.MRData.RaceTable.Races[0]
	rows := race.Results
	if len(rows) == 0 {
		rows = race.SprintResults
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no results published yet")
	}

	totalLaps := 0
	results := make([]domain.RaceResult, 0, len(rows))
	for _, row := range rows {
		if laps, err := strconv.Atoi(row.Laps); err == nil && laps > totalLaps {
			totalLaps = laps
		}
		results = append(results, toResult(row))
	}

	return results, totalLaps, nil
}

func (c *Client) qualifyingResults(ctx context.Context, path string) ([]domain.RaceResult, int, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, 0, err
	}

	var qr qualifyingResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, 0, fmt.Errorf("failed to decode qualifying results: %w", err)
	}
	if len(qr.MRData.RaceTable.Races) == 0 || len(qr.MRData.RaceTable.Races[0].QualifyingResults) == 0 {
		return nil, 0, fmt.Errorf("no qualifying results published yet")
	}

	rows := qr.MRData.RaceTable.Races[0].QualifyingResults
	results := make([]domain.RaceResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, domain.RaceResult{
			Position:     row.Position,
			DriverID:     row.Driver.DriverID,
			DriverNumber: row.Driver.PermanentNumber,
			DriverCode:   row.Driver.Code,
			DriverName:   row.Driver.GivenName + " " + row.Driver.FamilyName,
			TeamName:     row.Constructor.Name,
			Time:         bestQualifyingTime(row),
			Status:       "Qualified",
		})
	}

	return results, 0, nil
}

// toResult normalizes one classification row. Unclassified finishes (retired,
// disqualified, etc.) surface the DNF marker instead of a position.
func toResult(row apiResult) domain.RaceResult {
	position := row.PositionText
	if _, err := strconv.Atoi(position); err != nil {
		position = domain.PositionDNF
	}

	elapsed := "N/A"
	if row.Time != nil && row.Time.Time != "" {
		elapsed = row.Time.Time
	}

	points, _ := strconv.ParseFloat(row.Points, 64)

	// The car number actually raced can differ from the driver's permanent
	// number (champions may run #1), and positional telemetry is keyed by the
	// raced number.
	number := row.Number
	if number == "" {
		number = row.Driver.PermanentNumber
	}

	return domain.RaceResult{
		Position:     position,
		DriverID:     row.Driver.DriverID,
		DriverNumber: number,
		DriverCode:   row.Driver.Code,
		DriverName:   row.Driver.GivenName + " " + row.Driver.FamilyName,
		TeamName:     row.Constructor.Name,
		Time:         elapsed,
		Status:       row.Status,
		Points:       points,
	}
}

// bestQualifyingTime returns the best time from the latest qualifying part
// the driver took part in.
func bestQualifyingTime(row apiQualifyingResult) string {
	switch {
	case row.Q3 != "":
		return row.Q3
	case row.Q2 != "":
		return row.Q2
	case row.Q1 != "":
		return row.Q1
	default:
		return "N/A"
	}
}

/* API Response Types
------------------------------------------------------------------------------------------------- */

type resultsResponse struct {
	MRData struct {
		RaceTable struct {
			Races []struct {
				RaceName      string      `json:"raceName"`
				Results       []apiResult `json:"Results"`
				SprintResults []apiResult `json:"SprintResults"`
			} `json:"Races"`
		} `json:"RaceTable"`
	} `json:"MRData"`
}

type apiResult struct {
	Number       string `json:"number"`
	Position     string `json:"position"`
	PositionText string `json:"positionText"`
	Points       string `json:"points"`
	Grid         string `json:"grid"`
	Laps         string `json:"laps"`
	Status       string `json:"status"`
	Driver       apiDriver
	Constructor  apiConstructor
	Time         *struct {
		Millis string `json:"millis"`
		Time   string `json:"time"`
	} `json:"Time,omitempty"`
}

type qualifyingResponse struct {
	MRData struct {
		RaceTable struct {
			Races []struct {
				RaceName          string                `json:"raceName"`
				QualifyingResults []apiQualifyingResult `json:"QualifyingResults"`
			} `json:"Races"`
		} `json:"RaceTable"`
	} `json:"MRData"`
}

type apiQualifyingResult struct {
	Position    string `json:"position"`
	Driver      apiDriver
	Constructor apiConstructor
	Q1          string `json:"Q1"`
	Q2          string `json:"Q2"`
	Q3          string `json:"Q3"`
}

type apiDriver struct {
	DriverID        string `json:"driverId"`
	PermanentNumber string `json:"permanentNumber"`
	Code            string `json:"code"`
	GivenName       string `json:"givenName"`
	FamilyName      string `json:"familyName"`
}

type apiConstructor struct {
	ConstructorID string `json:"constructorId"`
	Name          string `json:"name"`
}
