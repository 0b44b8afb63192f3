//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"epigrid/internal/core"
	"epigrid/internal/render"
	"epigrid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type pacer interface {
	StepInterval() time.Duration
}

type stepLimiter interface {
	MaxSteps() int
}

type stepCounter interface {
	StepCount() int
}

// Game adapts a core simulation to the ebiten.Game interface. Steps are
// paced by a FixedStep timer rather than the frame rate.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.FixedStep
	palette []color.RGBA

	scale    int
	panel    int
	paused   bool
	tickOnce bool
	seed     int64
	steps    int
	reported bool

	log *slog.Logger
}

// New constructs a Game for sim using the viewer settings in cfg.
func New(sim core.Sim, cfg Config) *Game {
	size := sim.Size()
	interval := cfg.Interval
	if p, ok := sim.(pacer); ok && interval <= 0 {
		interval = p.StepInterval()
	}
	var maxSteps func() int
	if l, ok := sim.(stepLimiter); ok {
		maxSteps = l.MaxSteps
	}
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, cfg.Scale, maxSteps),
		timer:   core.NewFixedStep(interval),
		scale:   cfg.Scale,
		panel:   cfg.Panel,
		seed:    cfg.Seed,
		log:     slog.Default(),
	}
	if cfg.Panel > 0 {
		g.hud = ui.NewHUD(sim, cfg.Panel)
	}
	if p, ok := sim.(core.PaletteProvider); ok {
		g.palette = p.Palette()
	} else {
		g.palette = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}
	}
	return g
}

// Reset reinitializes the simulation with seed and restarts the pacing.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.steps = 0
	g.reported = false
	g.timer.Restart()
	g.log.Info("reset", "sim", g.sim.Name(), "seed", seed)
}

func (g *Game) finished() bool {
	f, ok := g.sim.(core.Finisher)
	return ok && f.IsFinished()
}

// Update handles input and advances the simulation when the timer fires.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update(g.gridWidth())

	if g.finished() {
		g.tickOnce = false
		if !g.reported {
			g.reported = true
			g.log.Info("run finished", "sim", g.sim.Name(), "steps", g.steps)
		}
		return nil
	}
	if g.tickOnce || (!g.paused && g.timer.ShouldStep()) {
		g.sim.Step()
		g.steps++
		g.tickOnce = false
	}
	return nil
}

// Draw renders the grid, the chart overlay, the panel and a status line.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	_, h := g.Layout(0, 0)
	g.hud.Draw(screen, g.gridWidth(), h)

	steps := g.steps
	if c, ok := g.sim.(stepCounter); ok {
		steps = c.StepCount()
	}
	status := fmt.Sprintf("step %d", steps)
	switch {
	case g.finished():
		status += "  finished (R to restart)"
	case g.paused:
		status += "  paused"
	}
	text.Draw(screen, status, basicfont.Face7x13, 6, 16, color.Black)
}

func (g *Game) gridWidth() int { return g.sim.Size().W * g.scale }

// Layout returns the logical screen size: the grid plus the panel, tall
// enough for whichever is higher.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	w := s.W*g.scale + g.panel
	h := s.H * g.scale
	if m := g.hud.MinHeight(); m > h {
		h = m
	}
	return w, h
}
