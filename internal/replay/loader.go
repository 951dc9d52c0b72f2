package replay

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bcdxn/f1replay/internal/domain"
)

const (
	// defaultTotalLaps sizes the synthetic race when the real distance is
	// unknown.
	defaultTotalLaps = 50
	// fetchConcurrency bounds the per-driver fan-out so the public APIs aren't
	// hammered with one burst per field.
	fetchConcurrency = 4
)

var ErrNoResults = errors.New("replay: no results to animate")

// LapSource provides per-driver recorded lap durations for a session.
// Unrecorded laps may be returned as zero durations.
type LapSource interface {
	LapTimes(ctx context.Context, year, round int, driverID string) ([]time.Duration, error)
}

// TelemetrySource provides per-driver raw on-track coordinate samples already
// bucketed by lap.
type TelemetrySource interface {
	DriverLapSamples(ctx context.Context, year, round int, driverNumber string) ([]domain.LapTelemetry, error)
}

// NewLoader returns a Loader; data sources are optional, and every fetch
// failure degrades to synthetic data rather than aborting the replay.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		geom:   DefaultGeometry(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type LoaderOption = func(l *Loader)

// WithLapSource configures the source of recorded lap durations.
func WithLapSource(s LapSource) LoaderOption {
	return func(l *Loader) { l.laps = s }
}

// WithTelemetrySource configures the source of raw positional telemetry.
func WithTelemetrySource(s TelemetrySource) LoaderOption {
	return func(l *Loader) { l.telemetry = s }
}

// WithGeometry configures the canvas layout for the replay.
func WithGeometry(g Geometry) LoaderOption {
	return func(l *Loader) { l.geom = g }
}

// WithLoaderLogger configures the logger used during setup.
func WithLoaderLogger(log *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = log }
}

// Loader performs the one-shot data assembly that runs before the frame loop
// starts: fetch lap times and telemetry for every finisher, derive the track
// map from a reference lap, and build one car per driver.
type Loader struct {
	laps      LapSource
	telemetry TelemetrySource
	geom      Geometry
	logger    *slog.Logger
}

// driverData is the per-driver fetch result, degraded field by field.
type driverData struct {
	lapTimes []time.Duration
	samples  []domain.LapTelemetry
}

// Load builds a ready-to-run engine for a completed session. The geometry
// argument sets the canvas layout (the caller derives it from the terminal
// size); pass the zero value to use the loader's configured default. Fetch
// failures for individual drivers degrade that driver to synthetic laps and
// the oval path; only an empty result list is an error.
func (l *Loader) Load(ctx context.Context, details domain.RaceDetails, geom Geometry) (*Engine, error) {
	if len(details.Results) == 0 {
		return nil, ErrNoResults
	}
	if geom == (Geometry{}) {
		geom = l.geom
	}

	data := l.fetchAll(ctx, details)

	// The track map comes from the first driver with telemetry on any lap;
	// every lap of every driver is then mapped through the same fit.
	mapper, refLap := l.referenceMapper(geom, data)

	totalLaps := details.TotalLaps
	if totalLaps <= 0 {
		totalLaps = defaultTotalLaps
	}

	var track []Point
	if mapper != nil {
		track = mapper.MapAll(refLap.X, refLap.Y)
	}

	cars := make([]*Car, 0, len(details.Results))
	for i, res := range details.Results {
		lapTimes := data[i].lapTimes
		if len(lapTimes) == 0 {
			lapTimes = syntheticLaps(i, totalLaps)
		}

		points := make([][]Point, len(lapTimes))
		compounds := make([]domain.TireCompound, 0, len(lapTimes))
		if mapper != nil {
			for lap, s := range data[i].samples {
				if lap >= len(points) {
					break
				}
				points[lap] = mapper.MapAll(s.X, s.Y)
			}
		}
		for _, s := range data[i].samples {
			compounds = append(compounds, s.Compound)
		}

		cars = append(cars, NewCar(
			res.DriverCode,
			res.DriverName,
			domain.TeamColor(res.TeamName),
			i,
			lapTimes,
			points,
			compounds,
			geom,
		))
	}

	return New(geom, track, cars), nil
}

// fetchAll fans out the per-driver lap time and telemetry fetches. Each
// driver's slot is written only by its own goroutine.
func (l *Loader) fetchAll(ctx context.Context, details domain.RaceDetails) []driverData {
	data := make([]driverData, len(details.Results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, res := range details.Results {
		i, res := i, res
		g.Go(func() error {
			if l.laps != nil {
				lapTimes, err := l.laps.LapTimes(gctx, yearOf(details), details.Event.Round, res.DriverID)
				if err != nil {
					l.logger.Warn("lap times unavailable", "driver", res.DriverCode, "err", err)
				} else {
					data[i].lapTimes = lapTimes
				}
			}
			if l.telemetry != nil {
				samples, err := l.telemetry.DriverLapSamples(gctx, yearOf(details), details.Event.Round, res.DriverNumber)
				if err != nil {
					l.logger.Warn("telemetry unavailable", "driver", res.DriverCode, "err", err)
				} else {
					data[i].samples = samples
				}
			}
			// errors degrade, they never cancel the group
			return nil
		})
	}
	// Go funcs never return errors; Wait only synchronizes.
	_ = g.Wait()

	return data
}

// referenceMapper finds the first lap with telemetry across the field and
// fits the canvas to it.
func (l *Loader) referenceMapper(geom Geometry, data []driverData) (*Mapper, domain.LapTelemetry) {
	for _, d := range data {
		for _, s := range d.samples {
			if len(s.X) == 0 {
				continue
			}
			m, err := NewMapper(geom, s.X, s.Y)
			if err != nil {
				continue
			}
			return m, s
		}
	}
	l.logger.Info("no telemetry available; replay will use the synthetic oval")
	return nil, domain.LapTelemetry{}
}

func syntheticLaps(gridIndex, totalLaps int) []time.Duration {
	laps := make([]time.Duration, totalLaps)
	for i := range laps {
		laps[i] = SyntheticLapTime(gridIndex, i)
	}
	return laps
}

func yearOf(details domain.RaceDetails) int {
	return details.Event.Date.Year()
}
