package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bcdxn/f1replay/internal/replay"
)

// canvas is the rune grid the replay view draws into. Canvas coordinates have
// the origin at the bottom-left with y growing upward, matching the replay
// engine; rendering flips rows for the terminal.
type canvas struct {
	w     int
	h     int
	cells []canvasCell
}

type canvasCell struct {
	ch    rune
	color lipgloss.Color
}

func newCanvas(w, h int) *canvas {
	cells := make([]canvasCell, w*h)
	for i := range cells {
		cells[i].ch = ' '
	}
	return &canvas{w: w, h: h, cells: cells}
}

// set plots one rune at a canvas position; out-of-bounds points are dropped
// (zoomed-in geometry routinely pushes points off screen).
func (c *canvas) set(p replay.Point, ch rune, color lipgloss.Color) {
	x := int(math.Round(p.X))
	y := int(math.Round(p.Y))
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.cells[(c.h-1-y)*c.w+x] = canvasCell{ch: ch, color: color}
}

// setText plots a short label starting at a canvas position.
func (c *canvas) setText(p replay.Point, text string, color lipgloss.Color) {
	for i, ch := range text {
		c.set(replay.Point{X: p.X + float64(i), Y: p.Y}, ch, color)
	}
}

// render flattens the grid into styled terminal rows. Runs of equally-colored
// cells share one style invocation to keep the frame cheap.
func (c *canvas) render() string {
	var b strings.Builder
	for row := 0; row < c.h; row++ {
		line := c.cells[row*c.w : (row+1)*c.w]
		i := 0
		for i < len(line) {
			j := i
			for j < len(line) && line[j].color == line[i].color {
				j++
			}
			var run strings.Builder
			for _, cell := range line[i:j] {
				run.WriteRune(cell.ch)
			}
			if line[i].color == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(line[i].color).Render(run.String()))
			}
			i = j
		}
		if row < c.h-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
