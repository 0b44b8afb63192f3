package report

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"epigrid/internal/sims/epidemic"
)

// ChartStrip renders the state shares recorded so far as a width*height
// line chart. The x axis spans [0, xMax] so consecutive strips of a growing
// history line up frame to frame.
func ChartStrip(h *epidemic.History, width, height int, xMax float64) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("chart strip size %dx%d", width, height)
	}
	if n := float64(h.Len() - 1); xMax < n {
		xMax = n
	}
	if xMax < 1 {
		xMax = 1
	}

	steps := make([]float64, h.Len())
	for i := range steps {
		steps[i] = float64(i)
	}
	series := make([]chart.Series, 0, len(epidemic.States))
	for _, s := range epidemic.States {
		c := epidemic.StateColor(s)
		series = append(series, chart.ContinuousSeries{
			Name:    s.String(),
			XValues: steps,
			YValues: h.Percentages(s),
			Style: chart.Style{
				StrokeColor: drawing.Color{R: c.R, G: c.G, B: c.B, A: 255},
				StrokeWidth: 2.0,
			},
		})
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Style: chart.Style{FontSize: 8.0},
			Range: &chart.ContinuousRange{Min: 0, Max: xMax},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 8.0},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), decoded, decoded.Bounds().Min, draw.Src)
	return out, nil
}
