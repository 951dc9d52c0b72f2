package replay

import (
	"sort"
)

const (
	MinSpeed  = 10.0 // minimum time-compression multiplier
	MaxSpeed  = 1000.0
	SpeedStep = 10.0

	MinZoom       = 0.5
	MaxZoom       = 5.0
	ZoomStepKey   = 0.2 // zoom increment for keyboard input
	ZoomStepWheel = 0.1 // zoom increment for mouse wheel input
)

// New returns a replay engine over the given cars and circuit outline. The
// outline may be empty, in which case the synthetic oval is used. The engine
// starts running at the minimum speed multiplier with zoom 1.0.
func New(geom Geometry, track []Point, cars []*Car) *Engine {
	return &Engine{
		geom:  geom,
		track: track,
		cars:  cars,
		speed: MinSpeed,
		zoom:  1.0,
	}
}

// Engine drives the replay: it owns simulated time, the pause flag and the
// speed/zoom parameters, and advances every car once per rendered frame. It
// is single threaded by design; the frame loop calls Advance and reads state
// sequentially.
type Engine struct {
	geom    Geometry
	track   []Point
	cars    []*Car
	elapsed float64
	paused  bool
	speed   float64
	zoom    float64
}

// Advance moves simulated time forward by dt wall seconds scaled by the speed
// multiplier and updates every car's position. It is a no-op while paused.
func (e *Engine) Advance(dt float64) {
	if e.paused {
		return
	}
	e.elapsed += dt * e.speed
	for _, c := range e.cars {
		c.UpdatePosition(e.elapsed)
	}
}

// TogglePause flips between the running and paused states.
func (e *Engine) TogglePause() {
	e.paused = !e.paused
}

// Paused reports whether simulated time is currently frozen.
func (e *Engine) Paused() bool {
	return e.paused
}

// Restart rewinds the replay to the start: elapsed time to zero, every car to
// its initial state, and the engine to running. Speed and zoom are deliberate
// carry-overs; they are view parameters, not race state.
func (e *Engine) Restart() {
	e.elapsed = 0
	e.paused = false
	for _, c := range e.cars {
		c.Reset()
	}
}

// SpeedUp increases the time-compression multiplier, clamped to MaxSpeed.
func (e *Engine) SpeedUp() {
	e.speed += SpeedStep
	if e.speed > MaxSpeed {
		e.speed = MaxSpeed
	}
}

// SlowDown decreases the time-compression multiplier, clamped to MinSpeed.
func (e *Engine) SlowDown() {
	e.speed -= SpeedStep
	if e.speed < MinSpeed {
		e.speed = MinSpeed
	}
}

// Speed returns the current time-compression multiplier.
func (e *Engine) Speed() float64 {
	return e.speed
}

// ZoomIn increases the zoom level by the given step, clamped to MaxZoom.
func (e *Engine) ZoomIn(step float64) {
	e.zoom += step
	if e.zoom > MaxZoom {
		e.zoom = MaxZoom
	}
}

// ZoomOut decreases the zoom level by the given step, clamped to MinZoom.
func (e *Engine) ZoomOut(step float64) {
	e.zoom -= step
	if e.zoom < MinZoom {
		e.zoom = MinZoom
	}
}

// ResetZoom returns the zoom level to 1.0.
func (e *Engine) ResetZoom() {
	e.zoom = 1.0
}

// Zoom returns the current zoom level.
func (e *Engine) Zoom() float64 {
	return e.zoom
}

// ApplyZoom scales a canvas point around the canvas center by the current
// zoom level. This is a pure view transform; stored coordinates are never
// mutated.
func (e *Engine) ApplyZoom(p Point) Point {
	c := e.geom.canvasCenter()
	return Point{
		X: c.X + (p.X-c.X)*e.zoom,
		Y: c.Y + (p.Y-c.Y)*e.zoom,
	}
}

// Elapsed returns the simulated race time in seconds.
func (e *Engine) Elapsed() float64 {
	return e.elapsed
}

// Geometry returns the canvas layout the engine was built with.
func (e *Engine) Geometry() Geometry {
	return e.geom
}

// Track returns the circuit outline polyline; empty when running on the
// synthetic oval.
func (e *Engine) Track() []Point {
	return e.track
}

// Cars returns the cars in setup (finishing classification) order.
func (e *Engine) Cars() []*Car {
	return e.cars
}

// LeadLap returns the 1-based lap number of the furthest-advanced car.
func (e *Engine) LeadLap() int {
	lead := 0
	for _, c := range e.cars {
		if c.currentLap > lead {
			lead = c.currentLap
		}
	}
	return lead + 1
}

// Standings returns cars ordered by how far they have traveled: furthest
// (lap, progress) first. Ties keep setup order; the sort is stable.
func (e *Engine) Standings() []*Car {
	sorted := make([]*Car, len(e.cars))
	copy(sorted, e.cars)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].currentLap != sorted[j].currentLap {
			return sorted[i].currentLap > sorted[j].currentLap
		}
		return sorted[i].Progress(e.elapsed) > sorted[j].Progress(e.elapsed)
	})
	return sorted
}
