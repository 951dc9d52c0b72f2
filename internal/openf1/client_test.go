package openf1

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/bcdxn/f1replay/internal/domain"
)

// serveFixture writes a canned API response from testdata.
func serveFixture(t *testing.T, w http.ResponseWriter, name string) {
	t.Helper()
	body, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("expected to read fixture %s but found error %v", name, err)
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(
		WithBaseURL(server.URL),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

// fixtureHandler serves one canned race weekend: a testing meeting followed
// by two grands prix, with laps, stints and locations for one driver.
func fixtureHandler(t *testing.T, meetingRequests *int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/meetings":
			if meetingRequests != nil {
				*meetingRequests++
			}
			serveFixture(t, w, "meetings.json")
		case "/sessions":
			serveFixture(t, w, "sessions.json")
		case "/laps":
			serveFixture(t, w, "laps.json")
		case "/stints":
			serveFixture(t, w, "stints.json")
		case "/location":
			serveFixture(t, w, "location.json")
		default:
			http.NotFound(w, r)
		}
	}
}

func TestDriverLapSamples(t *testing.T) {
	t.Run("buckets location samples by lap with tyre compounds", func(t *testing.T) {
		client := newTestClient(t, fixtureHandler(t, nil))

		laps, err := client.DriverLapSamples(context.Background(), 2024, 1, "1")
		if err != nil {
			t.Fatalf("expected no error but found %v", err)
		}

		if len(laps) != 2 {
			t.Fatalf("expected %d laps but found %d", 2, len(laps))
		}
		// the partial lap rows merge into one record with both a start time and
		// a duration, so lap 1 holds exactly the samples inside its 90s window
		if len(laps[0].X) != 2 {
			t.Errorf("expected %d samples on lap 1 but found %d", 2, len(laps[0].X))
		}
		if laps[0].Compound != domain.TireCompoundSoft {
			t.Errorf("expected compound %s but found %s", domain.TireCompoundSoft, laps[0].Compound)
		}
		// the out-of-window trailing sample is dropped
		if len(laps[1].X) != 1 {
			t.Errorf("expected %d samples on lap 2 but found %d", 1, len(laps[1].X))
		}
		if laps[1].Compound != domain.TireCompoundHard {
			t.Errorf("expected compound %s but found %s", domain.TireCompoundHard, laps[1].Compound)
		}
		if laps[1].X[0] != -1360 || laps[1].Y[0] != 4960 {
			t.Errorf("expected lap 2 sample (-1360, 4960) but found (%v, %v)", laps[1].X[0], laps[1].Y[0])
		}
	})

	t.Run("skips testing meetings when resolving the round", func(t *testing.T) {
		requested := ""
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/sessions" {
				requested = r.URL.Query().Get("meeting_key")
			}
			fixtureHandler(t, nil)(w, r)
		})

		if _, err := client.DriverLapSamples(context.Background(), 2024, 1, "1"); err != nil {
			t.Fatalf("expected no error but found %v", err)
		}

		// round 1 is the first meeting after pre-season testing
		if requested != "1229" {
			t.Errorf("expected meeting key %s but found %s", "1229", requested)
		}
	})

	t.Run("caches the session key across drivers", func(t *testing.T) {
		meetingRequests := 0
		client := newTestClient(t, fixtureHandler(t, &meetingRequests))

		for _, driver := range []string{"1", "11", "44"} {
			if _, err := client.DriverLapSamples(context.Background(), 2024, 1, driver); err != nil {
				t.Fatalf("expected no error but found %v", err)
			}
		}

		if meetingRequests != 1 {
			t.Errorf("expected %d meeting lookup but found %d", 1, meetingRequests)
		}
	})

	t.Run("returns an error for an unknown round", func(t *testing.T) {
		client := newTestClient(t, fixtureHandler(t, nil))

		if _, err := client.DriverLapSamples(context.Background(), 2024, 99, "1"); err == nil {
			t.Error("expected an error but found none")
		}
	})

	t.Run("returns an error when the driver has no laps", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/laps" {
				_, _ = w.Write([]byte("[]"))
				return
			}
			fixtureHandler(t, nil)(w, r)
		})

		if _, err := client.DriverLapSamples(context.Background(), 2024, 1, "99"); err == nil {
			t.Error("expected an error but found none")
		}
	})
}

func TestBucketByLap(t *testing.T) {
	start := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	laps := []lapRecord{
		{Number: 1, Start: start, Duration: 90, Compound: domain.TireCompoundSoft},
		{Number: 2, Start: start.Add(90 * time.Second), Compound: domain.TireCompoundSoft},
	}
	samples := []locationSample{
		{at: start.Add(-time.Second), x: 1, y: 1},                               // before the race
		{at: start, x: 2, y: 2},                                                 // lap 1 start
		{at: start.Add(89 * time.Second), x: 3, y: 3},                           // lap 1 end
		{at: start.Add(91 * time.Second), x: 4, y: 4},                           // lap 2
		{at: start.Add(90*time.Second + defaultLapWindow), x: 5, y: 5},          // past the default window
		{at: start.Add(90*time.Second + defaultLapWindow + time.Hour), x: 6, y: 6},
	}

	out := bucketByLap(laps, samples)

	if len(out) != 2 {
		t.Fatalf("expected %d laps but found %d", 2, len(out))
	}
	if len(out[0].X) != 2 || out[0].X[0] != 2 || out[0].X[1] != 3 {
		t.Errorf("expected lap 1 samples [2 3] but found %v", out[0].X)
	}
	// the zero-duration lap falls back to the default window
	if len(out[1].X) != 1 || out[1].X[0] != 4 {
		t.Errorf("expected lap 2 samples [4] but found %v", out[1].X)
	}
}

func TestRaceWindow(t *testing.T) {
	start := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)

	t.Run("spans from the first lap start to the last lap end", func(t *testing.T) {
		laps := []lapRecord{
			{Number: 1, Start: start, Duration: 90},
			{Number: 2, Start: start.Add(90 * time.Second), Duration: 92},
		}

		w := raceWindow(laps)

		if !w.from.Equal(start) {
			t.Errorf("expected window start %v but found %v", start, w.from)
		}
		want := start.Add(182 * time.Second)
		if !w.to.Equal(want) {
			t.Errorf("expected window end %v but found %v", want, w.to)
		}
	})

	t.Run("skips laps with no recorded start", func(t *testing.T) {
		laps := []lapRecord{
			{Number: 1},
			{Number: 2, Start: start, Duration: 90},
		}

		w := raceWindow(laps)

		if !w.from.Equal(start) {
			t.Errorf("expected window start %v but found %v", start, w.from)
		}
	})

	t.Run("is zero with no usable laps", func(t *testing.T) {
		w := raceWindow([]lapRecord{{Number: 1}})
		if !w.from.IsZero() {
			t.Errorf("expected a zero window but found start %v", w.from)
		}
	})
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"zone offset", "2024-03-02T15:00:00.200000+00:00", time.Date(2024, 3, 2, 15, 0, 0, 200000000, time.UTC), false},
		{"zoneless fractional", "2024-03-02T15:00:00.200000", time.Date(2024, 3, 2, 15, 0, 0, 200000000, time.UTC), false},
		{"zoneless whole seconds", "2024-03-02T15:00:00", time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC), false},
		{"garbage", "last tuesday", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error but found none")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error but found %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v but found %v", tt.want, got)
			}
		})
	}
}
