package replay

import (
	"errors"
	"math"
)

// fitMargin reserves a 10% margin inside the track region when fitting raw
// telemetry onto the canvas.
const fitMargin = 0.9

var ErrNoSamples = errors.New("replay: no telemetry samples to map")

// Mapper translates raw on-track telemetry coordinates into canvas space. It
// is computed once per replay session from a reference lap and reused for
// every lap of every driver, so all laps render in one consistent coordinate
// frame. Both axes share a single scale factor, preserving the circuit's
// aspect ratio.
type Mapper struct {
	geom   Geometry
	xMin   float64
	yMin   float64
	xRange float64
	yRange float64
	scale  float64
}

// NewMapper computes the canvas fit from the reference lap's raw X/Y samples.
func NewMapper(geom Geometry, xs, ys []float64) (*Mapper, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return nil, ErrNoSamples
	}

	xMin, xMax := bounds(xs)
	yMin, yMax := bounds(ys)

	xRange := xMax - xMin
	yRange := yMax - yMin
	// Degenerate telemetry (all samples on one axis) must not divide by zero.
	if xRange <= 0 {
		xRange = 1
	}
	if yRange <= 0 {
		yRange = 1
	}

	scale := math.Min(geom.TrackWidth/xRange, geom.TrackHeight/yRange) * fitMargin

	return &Mapper{
		geom:   geom,
		xMin:   xMin,
		yMin:   yMin,
		xRange: xRange,
		yRange: yRange,
		scale:  scale,
	}, nil
}

// Map translates one raw telemetry sample into canvas space, centered on the
// track region.
func (m *Mapper) Map(x, y float64) Point {
	return Point{
		X: m.geom.TrackX + m.geom.TrackWidth/2 + (x-m.xMin-m.xRange/2)*m.scale,
		Y: m.geom.TrackY + m.geom.TrackHeight/2 + (y-m.yMin-m.yRange/2)*m.scale,
	}
}

// MapAll translates parallel raw X/Y sample slices into a canvas polyline.
// Extra samples on the longer slice are dropped.
func (m *Mapper) MapAll(xs, ys []float64) []Point {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		pts[i] = m.Map(xs[i], ys[i])
	}
	return pts
}

// Scale exposes the shared per-axis scale factor.
func (m *Mapper) Scale() float64 {
	return m.scale
}

// OvalOutline returns a closed synthetic oval polyline inside the track
// region; it is the circuit outline used when no real telemetry is available.
func OvalOutline(geom Geometry, segments int) []Point {
	if segments < 3 {
		segments = 3
	}
	c := geom.trackCenter()
	rx := geom.TrackWidth/2 - geom.OvalInset
	ry := geom.TrackHeight/2 - geom.OvalInset

	pts := make([]Point, 0, segments+1)
	for i := 0; i < segments; i++ {
		angle := float64(i) / float64(segments) * 2 * math.Pi
		pts = append(pts, Point{
			X: c.X + rx*math.Cos(angle),
			Y: c.Y + ry*math.Sin(angle),
		})
	}
	// close the loop
	pts = append(pts, pts[0])
	return pts
}

// ovalPosition computes a car's position on the synthetic oval for a given
// lap progress fraction. The loop is smooth and closed: progress 0 and 1 land
// on the same point.
func ovalPosition(geom Geometry, progress float64) Point {
	angle := progress * 2 * math.Pi
	c := geom.trackCenter()
	return Point{
		X: c.X + (geom.TrackWidth/2-geom.OvalInset)*math.Cos(angle),
		Y: c.Y + (geom.TrackHeight/2-geom.OvalInset)*math.Sin(angle),
	}
}

func bounds(vs []float64) (min, max float64) {
	min, max = vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
