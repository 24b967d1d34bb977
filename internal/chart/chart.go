// Package chart renders fastest-lap speed traces to PNG.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/telemetry"
)

// ErrNoTraces is returned when there is nothing to draw.
var ErrNoTraces = errors.New("no telemetry traces to plot")

// Palette is applied to traces in order and wraps when exhausted.
var Palette = []color.RGBA{
	{R: 0xFF, G: 0x1E, B: 0x00, A: 0xFF},
	{R: 0x00, G: 0xD2, B: 0xBE, A: 0xFF},
	{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF},
}

var (
	background = color.RGBA{R: 0x15, G: 0x15, B: 0x1E, A: 0xFF}
	foreground = color.RGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 0xFF}
	gridColor  = color.RGBA{R: 0x3A, G: 0x3A, B: 0x48, A: 0xFF}
)

const (
	defaultWidth  = 10 * vg.Inch
	defaultHeight = 5 * vg.Inch
)

// Renderer draws speed-vs-distance charts.
type Renderer struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a Renderer with the default canvas size.
func NewRenderer() *Renderer {
	return &Renderer{
		Title:  "Fastest Lap Speed Comparison",
		Width:  defaultWidth,
		Height: defaultHeight,
	}
}

// Render draws one line per trace and encodes the canvas as PNG.
func (r *Renderer) Render(traces []telemetry.Trace) ([]byte, error) {
	drawn := 0
	p := plot.New()
	r.theme(p)

	for i, tr := range traces {
		if len(tr.Samples) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(tr.Samples))
		for j, s := range tr.Samples {
			pts[j].X = s.Distance
			pts[j].Y = s.Speed
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("trace %s: %w", tr.Label, err)
		}
		line.LineStyle.Color = Palette[i%len(Palette)]
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(tr.Label, line)
		drawn++
	}
	if drawn == 0 {
		return nil, ErrNoTraces
	}

	w, h := r.Width, r.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) theme(p *plot.Plot) {
	p.BackgroundColor = background
	p.Title.Text = r.Title
	p.Title.TextStyle.Color = foreground
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Speed (km/h)"
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Color = foreground
		ax.LineStyle.Color = foreground
		ax.Tick.Label.Color = foreground
		ax.Tick.LineStyle.Color = foreground
	}
	p.Legend.TextStyle.Color = foreground
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)
}
