package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/bcdxn/f1replay/internal/domain"
	"github.com/bcdxn/f1replay/internal/replay"
)

func TestParseYear(t *testing.T) {
	currentYear := time.Now().Year()

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"blank defaults to the current season", "", currentYear, false},
		{"whitespace defaults to the current season", "  ", currentYear, false},
		{"valid year", "2023", 2023, false},
		{"first championship season", "1950", 1950, false},
		{"before the first championship", "1949", 0, true},
		{"future season", "2100", 0, true},
		{"not a number", "twenty", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseYear(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error but found none")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error but found %v", err)
			}
			if got != tt.want {
				t.Errorf("expected year %d but found %d", tt.want, got)
			}
		})
	}
}

func TestCanAnimate(t *testing.T) {
	completed := domain.RaceDetails{
		SessionType: domain.SessionTypeRace,
		Status:      domain.SessionStatusCompleted,
		Results:     []domain.RaceResult{{Position: "1", DriverCode: "VER"}},
	}

	if !canAnimate(completed) {
		t.Error("expected a completed race to be animatable")
	}

	upcoming := completed
	upcoming.Status = domain.SessionStatusUpcoming
	upcoming.Results = nil
	if canAnimate(upcoming) {
		t.Error("expected an upcoming race to not be animatable")
	}

	qualifying := completed
	qualifying.SessionType = domain.SessionTypeQualifying
	if canAnimate(qualifying) {
		t.Error("expected qualifying to not be animatable")
	}
}

func TestReplayGeometry(t *testing.T) {
	t.Run("derives the canvas from the terminal size", func(t *testing.T) {
		geom := replayGeometry(120, 40)

		wantW := float64(120 - leaderboardWidth - 1)
		if geom.CanvasWidth != wantW {
			t.Errorf("expected canvas width %v but found %v", wantW, geom.CanvasWidth)
		}
		if geom.CanvasHeight != 35 {
			t.Errorf("expected canvas height %v but found %v", 35.0, geom.CanvasHeight)
		}
		if geom.TrackX+geom.TrackWidth > geom.CanvasWidth {
			t.Error("expected the track region to fit inside the canvas")
		}
	})

	t.Run("clamps tiny terminals to a usable minimum", func(t *testing.T) {
		geom := replayGeometry(10, 4)

		if geom.CanvasWidth != 20 {
			t.Errorf("expected canvas width %v but found %v", 20.0, geom.CanvasWidth)
		}
		if geom.CanvasHeight != 10 {
			t.Errorf("expected canvas height %v but found %v", 10.0, geom.CanvasHeight)
		}
	})
}

func TestCanvas(t *testing.T) {
	t.Run("renders with the origin at the bottom left", func(t *testing.T) {
		c := newCanvas(3, 2)
		c.set(replay.Point{X: 0, Y: 0}, 'a', "")
		c.set(replay.Point{X: 2, Y: 1}, 'b', "")

		got := c.render()
		want := "  b\na  "
		if got != want {
			t.Errorf("expected %q but found %q", want, got)
		}
	})

	t.Run("drops out-of-bounds points", func(t *testing.T) {
		c := newCanvas(3, 2)
		c.set(replay.Point{X: -1, Y: 0}, 'x', "")
		c.set(replay.Point{X: 0, Y: 5}, 'x', "")
		c.set(replay.Point{X: 99, Y: 0}, 'x', "")

		if got := c.render(); strings.ContainsRune(got, 'x') {
			t.Errorf("expected no plotted runes but found %q", got)
		}
	})

	t.Run("truncates labels at the canvas edge", func(t *testing.T) {
		c := newCanvas(3, 1)
		c.setText(replay.Point{X: 1, Y: 0}, "VER", "")

		got := c.render()
		want := " VE"
		if got != want {
			t.Errorf("expected %q but found %q", want, got)
		}
	})
}
