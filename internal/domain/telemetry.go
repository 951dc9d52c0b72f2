package domain

// LapTelemetry holds the raw on-track coordinate samples recorded during one
// lap of one driver, plus the tyre compound in use if known. Coordinates are
// in the source's own units; the replay engine maps them onto the canvas.
type LapTelemetry struct {
	X        []float64
	Y        []float64
	Compound TireCompound
}
