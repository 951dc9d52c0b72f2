package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bcdxn/f1replay/internal/domain"
)

type fakeLapSource struct {
	laps map[string][]time.Duration
	err  error
}

func (f fakeLapSource) LapTimes(_ context.Context, _, _ int, driverID string) ([]time.Duration, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.laps[driverID], nil
}

type fakeTelemetrySource struct {
	samples map[string][]domain.LapTelemetry
	err     error
}

func (f fakeTelemetrySource) DriverLapSamples(_ context.Context, _, _ int, driverNumber string) ([]domain.LapTelemetry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.samples[driverNumber], nil
}

func testDetails(results ...domain.RaceResult) domain.RaceDetails {
	return domain.RaceDetails{
		Event: domain.Event{
			Name:  "Bahrain Grand Prix",
			Round: 1,
			Date:  time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC),
		},
		SessionType: domain.SessionTypeRace,
		Status:      domain.SessionStatusCompleted,
		Results:     results,
		TotalLaps:   2,
	}
}

func TestLoad(t *testing.T) {
	t.Run("returns an error with no results", func(t *testing.T) {
		l := NewLoader()

		_, err := l.Load(context.Background(), domain.RaceDetails{}, Geometry{})

		if !errors.Is(err, ErrNoResults) {
			t.Errorf("expected error %v but found %v", ErrNoResults, err)
		}
	})

	t.Run("builds cars from recorded laps and telemetry", func(t *testing.T) {
		details := testDetails(
			domain.RaceResult{Position: "1", DriverID: "max_verstappen", DriverNumber: "1", DriverCode: "VER", DriverName: "Max Verstappen", TeamName: "Red Bull"},
			domain.RaceResult{Position: "2", DriverID: "perez", DriverNumber: "11", DriverCode: "PER", DriverName: "Sergio Pérez", TeamName: "Red Bull"},
		)
		laps := fakeLapSource{laps: map[string][]time.Duration{
			"max_verstappen": {95 * time.Second, 94 * time.Second},
			"perez":          {96 * time.Second, 95 * time.Second},
		}}
		telemetry := fakeTelemetrySource{samples: map[string][]domain.LapTelemetry{
			"1": {
				{X: []float64{0, 100, 100, 0}, Y: []float64{0, 0, 50, 50}, Compound: domain.TireCompoundSoft},
				{X: []float64{0, 100, 100, 0}, Y: []float64{0, 0, 50, 50}, Compound: domain.TireCompoundHard},
			},
		}}
		l := NewLoader(WithLapSource(laps), WithTelemetrySource(telemetry))

		e, err := l.Load(context.Background(), details, Geometry{})
		if err != nil {
			t.Fatalf("expected no error but found %v", err)
		}

		if len(e.Track()) != 4 {
			t.Errorf("expected track outline of %d points but found %d", 4, len(e.Track()))
		}
		cars := e.Cars()
		if len(cars) != 2 {
			t.Fatalf("expected %d cars but found %d", 2, len(cars))
		}
		if cars[0].TotalLaps() != 2 {
			t.Errorf("expected %d laps but found %d", 2, cars[0].TotalLaps())
		}
		if cars[0].Compound() != domain.TireCompoundSoft {
			t.Errorf("expected compound %s but found %s", domain.TireCompoundSoft, cars[0].Compound())
		}
		if cars[0].Color != domain.TeamColor("Red Bull") {
			t.Errorf("expected color %s but found %s", domain.TeamColor("Red Bull"), cars[0].Color)
		}
	})

	t.Run("degrades to synthetic laps when the lap source fails", func(t *testing.T) {
		details := testDetails(
			domain.RaceResult{Position: "1", DriverID: "max_verstappen", DriverNumber: "1", DriverCode: "VER", DriverName: "Max Verstappen", TeamName: "Red Bull"},
		)
		l := NewLoader(
			WithLapSource(fakeLapSource{err: errors.New("jolpica is down")}),
			WithTelemetrySource(fakeTelemetrySource{err: errors.New("openf1 is down")}),
		)

		e, err := l.Load(context.Background(), details, Geometry{})
		if err != nil {
			t.Fatalf("expected no error but found %v", err)
		}

		if len(e.Track()) != 0 {
			t.Errorf("expected an empty track outline but found %d points", len(e.Track()))
		}
		cars := e.Cars()
		if cars[0].TotalLaps() != details.TotalLaps {
			t.Errorf("expected %d synthetic laps but found %d", details.TotalLaps, cars[0].TotalLaps())
		}
	})

	t.Run("sizes the synthetic race when the distance is unknown", func(t *testing.T) {
		details := testDetails(
			domain.RaceResult{Position: "1", DriverID: "max_verstappen", DriverNumber: "1", DriverCode: "VER", DriverName: "Max Verstappen", TeamName: "Red Bull"},
		)
		details.TotalLaps = 0
		l := NewLoader()

		e, err := l.Load(context.Background(), details, Geometry{})
		if err != nil {
			t.Fatalf("expected no error but found %v", err)
		}

		if got := e.Cars()[0].TotalLaps(); got != defaultTotalLaps {
			t.Errorf("expected %d synthetic laps but found %d", defaultTotalLaps, got)
		}
	})

	t.Run("runs without any configured data sources", func(t *testing.T) {
		details := testDetails(
			domain.RaceResult{Position: "1", DriverID: "max_verstappen", DriverNumber: "1", DriverCode: "VER", DriverName: "Max Verstappen", TeamName: "Red Bull"},
			domain.RaceResult{Position: "2", DriverID: "perez", DriverNumber: "11", DriverCode: "PER", DriverName: "Sergio Pérez", TeamName: "Red Bull"},
		)
		l := NewLoader()

		e, err := l.Load(context.Background(), details, Geometry{})
		if err != nil {
			t.Fatalf("expected no error but found %v", err)
		}
		if len(e.Cars()) != 2 {
			t.Errorf("expected %d cars but found %d", 2, len(e.Cars()))
		}
	})

	t.Run("uses the caller's geometry when provided", func(t *testing.T) {
		details := testDetails(
			domain.RaceResult{Position: "1", DriverID: "max_verstappen", DriverNumber: "1", DriverCode: "VER", DriverName: "Max Verstappen", TeamName: "Red Bull"},
		)
		geom := Geometry{
			CanvasWidth: 100, CanvasHeight: 40,
			TrackX: 5, TrackY: 3, TrackWidth: 80, TrackHeight: 30,
			OvalInset: 2,
		}
		l := NewLoader()

		e, err := l.Load(context.Background(), details, geom)
		if err != nil {
			t.Fatalf("expected no error but found %v", err)
		}
		if e.Geometry() != geom {
			t.Errorf("expected geometry %+v but found %+v", geom, e.Geometry())
		}
	})
}
