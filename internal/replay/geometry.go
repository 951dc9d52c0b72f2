package replay

// Point is a position in canvas coordinates.
type Point struct {
	X float64
	Y float64
}

// Geometry describes the drawing canvas and the track region within it. All
// values are in canvas units; the TUI builds one in terminal cells, while the
// defaults mirror a conventional pixel canvas.
type Geometry struct {
	CanvasWidth  float64
	CanvasHeight float64
	TrackX       float64 // TrackX is the left edge of the track region
	TrackY       float64 // TrackY is the bottom edge of the track region
	TrackWidth   float64
	TrackHeight  float64
	OvalInset    float64 // OvalInset shrinks the fallback oval inside the track region
}

// DefaultGeometry returns the canvas layout used when no terminal-derived
// layout is supplied.
func DefaultGeometry() Geometry {
	return Geometry{
		CanvasWidth:  1200,
		CanvasHeight: 800,
		TrackX:       150,
		TrackY:       100,
		TrackWidth:   900,
		TrackHeight:  600,
		OvalInset:    50,
	}
}

// trackCenter returns the midpoint of the track region.
func (g Geometry) trackCenter() Point {
	return Point{
		X: g.TrackX + g.TrackWidth/2,
		Y: g.TrackY + g.TrackHeight/2,
	}
}

// canvasCenter returns the midpoint of the full canvas; the zoom view
// transform scales around this point.
func (g Geometry) canvasCenter() Point {
	return Point{X: g.CanvasWidth / 2, Y: g.CanvasHeight / 2}
}
