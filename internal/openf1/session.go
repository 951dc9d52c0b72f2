package openf1

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// raceSessionKey resolves the OpenF1 session key for a season round's race
// session. Meetings are published in calendar order, so the Nth
// non-testing meeting of a year is round N. The result is cached for the
// lifetime of the client; every driver of a replay shares it.
func (c *Client) raceSessionKey(ctx context.Context, year, round int) (int, error) {
	cacheKey := fmt.Sprintf("%d/%d", year, round)
	c.mu.Lock()
	key, ok := c.sessionKeys[cacheKey]
	c.mu.Unlock()
	if ok {
		return key, nil
	}

	body, err := c.get(ctx, fmt.Sprintf("/meetings?year=%d", year))
	if err != nil {
		return 0, err
	}

	var meetings []apiMeeting
	if err := json.Unmarshal(body, &meetings); err != nil {
		return 0, fmt.Errorf("failed to decode meetings: %w", err)
	}

	var meetingKey int
	n := 0
	for _, m := range meetings {
		if strings.Contains(m.MeetingName, "Testing") {
			continue
		}
		n++
		if n == round {
			meetingKey = m.MeetingKey
			break
		}
	}
	if meetingKey == 0 {
		return 0, fmt.Errorf("no meeting for %d round %d", year, round)
	}

	body, err = c.get(ctx, fmt.Sprintf("/sessions?meeting_key=%d&session_name=Race", meetingKey))
	if err != nil {
		return 0, err
	}

	var sessions []apiSession
	if err := json.Unmarshal(body, &sessions); err != nil {
		return 0, fmt.Errorf("failed to decode sessions: %w", err)
	}
	if len(sessions) == 0 {
		return 0, fmt.Errorf("no race session for %d round %d", year, round)
	}

	key = sessions[0].SessionKey
	c.mu.Lock()
	c.sessionKeys[cacheKey] = key
	c.mu.Unlock()
	return key, nil
}

/* API Response Types
------------------------------------------------------------------------------------------------- */

type apiMeeting struct {
	MeetingKey  int    `json:"meeting_key"`
	MeetingName string `json:"meeting_name"`
	CountryName string `json:"country_name"`
	DateStart   string `json:"date_start"`
	Year        int    `json:"year"`
}

type apiSession struct {
	SessionKey  int    `json:"session_key"`
	SessionName string `json:"session_name"`
	DateStart   string `json:"date_start"`
	DateEnd     string `json:"date_end"`
}
