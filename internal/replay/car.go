package replay

import (
	"math"
	"time"

	"github.com/bcdxn/f1replay/internal/domain"
)

const (
	// syntheticLapBase is the estimated lap duration substituted when a
	// recorded lap time is missing or invalid (e.g. formation laps).
	syntheticLapBase = 100 * time.Second
	// syntheticLapOffset staggers the synthetic estimate per entrant so the
	// fallback field doesn't run in lock step.
	syntheticLapOffset = 1500 * time.Millisecond
	// gridRows spreads cars vertically along the track region edge before the
	// first frame positions them on track.
	gridRows = 20
)

// NewCar returns a car entity for one driver. Lap durations are sanitized on
// construction: non-positive values are replaced with a synthetic estimate so
// the update loop never divides by zero or stalls. lapPoints holds one mapped
// point sequence per lap (empty when no telemetry was available for that lap)
// and compounds optionally carries one tyre label per lap; both are padded to
// the lap count.
func NewCar(code, name, color string, gridIndex int, lapTimes []time.Duration, lapPoints [][]Point, compounds []domain.TireCompound, geom Geometry) *Car {
	durations := make([]time.Duration, len(lapTimes))
	for i, lt := range lapTimes {
		if lt <= 0 {
			lt = SyntheticLapTime(gridIndex, i)
		}
		durations[i] = lt
	}

	points := make([][]Point, len(durations))
	copy(points, lapPoints)
	tires := make([]domain.TireCompound, len(durations))
	for i := range tires {
		tires[i] = domain.TireCompoundUnknown
	}
	copy(tires, compounds)

	c := &Car{
		Code:      code,
		Name:      name,
		Color:     color,
		gridIndex: gridIndex,
		lapTimes:  durations,
		lapPoints: points,
		compounds: tires,
		geom:      geom,
		initial: Point{
			X: geom.TrackX,
			Y: geom.TrackY + float64(gridIndex%gridRows)*geom.TrackHeight/gridRows,
		},
	}
	c.pos = c.initial
	return c
}

// Car is one animated entity per driver: identity, per-lap durations, per-lap
// mapped position sequences and the mutable replay state (current lap, lap
// start time, current position). It is mutated only by UpdatePosition and
// Reset.
type Car struct {
	Code  string // Code is the 3-letter driver abbreviation
	Name  string // Name is the driver's full name
	Color string // Color is the team display color as a hex string

	gridIndex int
	lapTimes  []time.Duration
	lapPoints [][]Point
	compounds []domain.TireCompound

	currentLap   int
	lapStartTime float64
	pos          Point
	initial      Point
	geom         Geometry
}

// UpdatePosition advances the car to its interpolated track position for the
// given simulated elapsed time (seconds). Once the car has completed all known
// laps it freezes at its last computed point; further calls are no-ops.
func (c *Car) UpdatePosition(elapsed float64) {
	if c.currentLap >= len(c.lapTimes) {
		return
	}

	lapTime := c.lapTimes[c.currentLap].Seconds()
	timeInLap := elapsed - c.lapStartTime

	if timeInLap >= lapTime {
		c.currentLap++
		c.lapStartTime = elapsed
		if c.currentLap >= len(c.lapTimes) {
			return
		}
		lapTime = c.lapTimes[c.currentLap].Seconds()
		timeInLap = 0
	}

	progress := 0.0
	if lapTime > 0 {
		progress = timeInLap / lapTime
	}

	if pts := c.lapPoints[c.currentLap]; len(pts) > 0 {
		c.pos = pts[nearestSampleIndex(progress, len(pts))]
	} else {
		c.pos = ovalPosition(c.geom, progress)
	}
}

// Reset returns the car to its initial pre-race state.
func (c *Car) Reset() {
	c.currentLap = 0
	c.lapStartTime = 0
	c.pos = c.initial
}

// Position returns the car's current canvas position.
func (c *Car) Position() Point {
	return c.pos
}

// CurrentLap returns the 0-based index of the lap the car is on; it equals
// the lap count once the car has finished.
func (c *Car) CurrentLap() int {
	return c.currentLap
}

// TotalLaps returns the number of known laps for this car.
func (c *Car) TotalLaps() int {
	return len(c.lapTimes)
}

// Finished reports whether the car has completed all known laps.
func (c *Car) Finished() bool {
	return c.currentLap >= len(c.lapTimes)
}

// Compound returns the tyre compound for the car's current lap.
func (c *Car) Compound() domain.TireCompound {
	if c.currentLap < len(c.compounds) {
		return c.compounds[c.currentLap]
	}
	if n := len(c.compounds); n > 0 {
		return c.compounds[n-1]
	}
	return domain.TireCompoundUnknown
}

// Progress returns the fraction (0-1) of the current lap completed at the
// given elapsed time. A finished car reports 1.0 so it sorts ahead of cars
// still on the same lap.
func (c *Car) Progress(elapsed float64) float64 {
	if c.currentLap >= len(c.lapTimes) {
		return 1.0
	}
	lapTime := c.lapTimes[c.currentLap].Seconds()
	if lapTime <= 0 {
		return 0
	}
	progress := (elapsed - c.lapStartTime) / lapTime
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// SyntheticLapTime estimates a lap duration for an entrant when no recorded
// time exists.
func SyntheticLapTime(gridIndex, lap int) time.Duration {
	base := syntheticLapBase + time.Duration(gridIndex)*syntheticLapOffset
	// small periodic variation so synthetic laps aren't identical
	variation := time.Duration((lap%5))*500*time.Millisecond - time.Second
	return base + variation
}

// nearestSampleIndex picks the telemetry sample nearest to the given lap
// progress. The result is always a valid index, even at progress 0.0 or 1.0.
func nearestSampleIndex(progress float64, n int) int {
	idx := int(math.Round(progress * float64(n-1)))
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}
