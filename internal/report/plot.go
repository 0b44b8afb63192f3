package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"epigrid/internal/sims/epidemic"
)

// PlotSize is the page size used by SavePlot.
var PlotSize = struct{ W, H vg.Length }{8 * vg.Inch, 4 * vg.Inch}

// NewPlot charts the share of every health state over time, one line per
// state in its display color.
func NewPlot(h *epidemic.History, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "Population (%)"
	p.Y.Min = 0
	p.Y.Max = 100
	p.Legend.Top = true

	for _, s := range epidemic.States {
		pcts := h.Percentages(s)
		pts := make(plotter.XYs, len(pcts))
		for i, v := range pcts {
			pts[i].X = float64(i)
			pts[i].Y = v
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("plot %s: %w", s, err)
		}
		line.LineStyle.Color = epidemic.StateColor(s)
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.String(), line)
	}
	return p, nil
}

// SavePlot renders the state shares to path. The image format follows the
// file extension (png, svg, pdf, ...).
func SavePlot(path string, h *epidemic.History, title string) error {
	p, err := NewPlot(h, title)
	if err != nil {
		return err
	}
	return p.Save(PlotSize.W, PlotSize.H, path)
}
