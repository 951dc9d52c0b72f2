package replay

import (
	"math"
	"testing"
	"time"

	"github.com/bcdxn/f1replay/internal/domain"
)

func testGeometry() Geometry {
	return DefaultGeometry()
}

// line101 returns a 101-point straight line so nearest-sample indexes are
// easy to read off: point i sits at x == i.
func line101() []Point {
	pts := make([]Point, 101)
	for i := range pts {
		pts[i] = Point{X: float64(i), Y: 0}
	}
	return pts
}

func TestUpdatePosition(t *testing.T) {
	t.Run("halfway through a 90s lap lands on sample 50 of 101", func(t *testing.T) {
		c := NewCar("VER", "Max Verstappen", "#3671C6", 0,
			[]time.Duration{90 * time.Second},
			[][]Point{line101()}, nil, testGeometry())

		c.UpdatePosition(45)

		if c.Position().X != 50 {
			t.Errorf("expected x %v but found %v", 50, c.Position().X)
		}
	})

	t.Run("advances to the next lap when the lap time elapses", func(t *testing.T) {
		c := NewCar("VER", "Max Verstappen", "#3671C6", 0,
			[]time.Duration{90 * time.Second, 90 * time.Second},
			[][]Point{line101(), line101()}, nil, testGeometry())

		c.UpdatePosition(90)

		if c.CurrentLap() != 1 {
			t.Errorf("expected current lap %d but found %d", 1, c.CurrentLap())
		}
		if c.Finished() {
			t.Error("expected car to still be racing")
		}
	})

	t.Run("freezes once all laps are exhausted", func(t *testing.T) {
		c := NewCar("VER", "Max Verstappen", "#3671C6", 0,
			[]time.Duration{90 * time.Second},
			[][]Point{line101()}, nil, testGeometry())

		c.UpdatePosition(89)
		frozen := c.Position()
		c.UpdatePosition(90)
		if !c.Finished() {
			t.Fatal("expected car to be finished")
		}
		// further updates with increasing elapsed time are no-ops
		c.UpdatePosition(500)
		c.UpdatePosition(10000)
		if c.Position() != frozen {
			t.Errorf("expected frozen position %v but found %v", frozen, c.Position())
		}
		if c.CurrentLap() != 1 {
			t.Errorf("expected current lap %d but found %d", 1, c.CurrentLap())
		}
	})

	t.Run("substitutes a synthetic estimate for invalid lap durations", func(t *testing.T) {
		c := NewCar("VER", "Max Verstappen", "#3671C6", 2,
			[]time.Duration{0, -5 * time.Second},
			nil, nil, testGeometry())

		// must not panic or divide by zero
		c.UpdatePosition(1)

		if c.lapTimes[0] != SyntheticLapTime(2, 0) {
			t.Errorf("expected synthetic lap time %v but found %v", SyntheticLapTime(2, 0), c.lapTimes[0])
		}
		if c.lapTimes[1] != SyntheticLapTime(2, 1) {
			t.Errorf("expected synthetic lap time %v but found %v", SyntheticLapTime(2, 1), c.lapTimes[1])
		}
	})

	t.Run("falls back to the oval when the lap has no telemetry", func(t *testing.T) {
		geom := testGeometry()
		c := NewCar("VER", "Max Verstappen", "#3671C6", 0,
			[]time.Duration{100 * time.Second},
			nil, nil, geom)

		c.UpdatePosition(0)

		// progress 0 puts the car at angle 0: rightmost point of the oval
		wantX := geom.TrackX + geom.TrackWidth/2 + (geom.TrackWidth/2 - geom.OvalInset)
		wantY := geom.TrackY + geom.TrackHeight/2
		if math.Abs(c.Position().X-wantX) > 1e-9 || math.Abs(c.Position().Y-wantY) > 1e-9 {
			t.Errorf("expected oval position (%v, %v) but found %v", wantX, wantY, c.Position())
		}
	})
}

func TestReset(t *testing.T) {
	c := NewCar("HAM", "Lewis Hamilton", "#27F4D2", 3,
		[]time.Duration{90 * time.Second, 90 * time.Second},
		[][]Point{line101(), line101()}, nil, testGeometry())
	initial := c.Position()

	c.UpdatePosition(130)
	if c.CurrentLap() == 0 && c.Position() == initial {
		t.Fatal("expected car to have moved before reset")
	}

	c.Reset()

	if c.CurrentLap() != 0 {
		t.Errorf("expected current lap %d but found %d", 0, c.CurrentLap())
	}
	if c.lapStartTime != 0 {
		t.Errorf("expected lap start time %v but found %v", 0, c.lapStartTime)
	}
	if c.Position() != initial {
		t.Errorf("expected initial position %v but found %v", initial, c.Position())
	}
}

func TestProgress(t *testing.T) {
	c := NewCar("VER", "Max Verstappen", "#3671C6", 0,
		[]time.Duration{90 * time.Second},
		[][]Point{line101()}, nil, testGeometry())

	if p := c.Progress(45); p != 0.5 {
		t.Errorf("expected progress %v but found %v", 0.5, p)
	}

	c.UpdatePosition(90)
	if p := c.Progress(91); p != 1.0 {
		t.Errorf("expected finished progress %v but found %v", 1.0, p)
	}
}

func TestNearestSampleIndex(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		n        int
		want     int
	}{
		{"start of lap", 0.0, 101, 0},
		{"end of lap", 1.0, 101, 100},
		{"halfway", 0.5, 101, 50},
		{"rounds to nearest", 0.504, 101, 51},
		{"clamps past the end", 1.2, 101, 100},
		{"clamps below zero", -0.1, 101, 0},
		{"single sample", 1.0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nearestSampleIndex(tt.progress, tt.n); got != tt.want {
				t.Errorf("expected index %d but found %d", tt.want, got)
			}
		})
	}
}

func TestCompound(t *testing.T) {
	c := NewCar("VER", "Max Verstappen", "#3671C6", 0,
		[]time.Duration{90 * time.Second, 90 * time.Second},
		nil,
		[]domain.TireCompound{domain.TireCompoundSoft, domain.TireCompoundHard},
		testGeometry())

	if got := c.Compound(); got != domain.TireCompoundSoft {
		t.Errorf("expected compound %s but found %s", domain.TireCompoundSoft, got)
	}
	c.UpdatePosition(90)
	if got := c.Compound(); got != domain.TireCompoundHard {
		t.Errorf("expected compound %s but found %s", domain.TireCompoundHard, got)
	}
	// finished cars keep reporting the last known compound
	c.UpdatePosition(180)
	c.UpdatePosition(181)
	if got := c.Compound(); got != domain.TireCompoundHard {
		t.Errorf("expected compound %s but found %s", domain.TireCompoundHard, got)
	}
}
