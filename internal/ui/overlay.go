//go:build ebiten

package ui

import (
	"image/color"

	"epigrid/internal/core"
	"epigrid/internal/sims/epidemic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type historyProvider interface {
	History() *epidemic.History
}

// Overlay draws a translucent chart of the state shares over the lower part
// of the grid. C toggles it.
type Overlay struct {
	sim      core.Sim
	scale    int
	maxSteps func() int
	show     bool
}

// NewOverlay constructs an overlay for sim drawn at the given cell scale.
// maxSteps, when set, fixes the x range of the chart.
func NewOverlay(sim core.Sim, scale int, maxSteps func() int) *Overlay {
	return &Overlay{sim: sim, scale: scale, maxSteps: maxSteps, show: true}
}

// Visible reports whether the chart is shown.
func (o *Overlay) Visible() bool { return o.show }

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.show = !o.show
	}
}

// Draw renders the chart onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	provider, ok := o.sim.(historyProvider)
	if !ok {
		return
	}
	h := provider.History()
	size := o.sim.Size()
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	w := float32(size.W * scale)
	gridH := float32(size.H * scale)
	chartH := gridH / 4
	top := gridH - chartH

	vector.DrawFilledRect(screen, 0, top, w, chartH, color.RGBA{R: 0, G: 0, B: 0, A: 150}, false)

	xMax := float32(h.Len() - 1)
	if o.maxSteps != nil {
		if m := float32(o.maxSteps()); m > xMax {
			xMax = m
		}
	}
	if xMax < 1 {
		xMax = 1
	}
	const pad = 4
	plotW := w - 2*pad
	plotH := chartH - 2*pad
	for _, s := range epidemic.States {
		pcts := h.Percentages(s)
		c := epidemic.StateColor(s)
		for i := 1; i < len(pcts); i++ {
			x0 := pad + plotW*float32(i-1)/xMax
			x1 := pad + plotW*float32(i)/xMax
			y0 := top + pad + plotH*(1-float32(pcts[i-1])/100)
			y1 := top + pad + plotH*(1-float32(pcts[i])/100)
			vector.StrokeLine(screen, x0, y0, x1, y1, 1.5, c, true)
		}
	}
}
