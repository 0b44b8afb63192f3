//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"epigrid/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type paletteProvider interface {
	Palette() []color.RGBA
}

// HUD renders the control panel to the right of the grid: +/- buttons for
// numeric settings, an on/off button for toggles and the live state counts.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []controlState
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	boolSetter   core.BoolParameterSetter
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for sim with a panel of the given width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: sim.Name() + " controls"}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]controlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = controlState{control: ctrl, value: "--"}
		}
		h.layoutControls()
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	h.boolSetter, _ = sim.(core.BoolParameterSetter)
	return h
}

// MinHeight is the panel height needed to show every control and the counts.
func (h *HUD) MinHeight() int {
	if h == nil {
		return 0
	}
	return controlsTop + len(h.controls)*lineHeight + countsGap + (countLines+1)*countLineHeight + panelPadding
}

// Update refreshes the cached snapshot and handles clicks on the panel.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.sim.(parameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the panel at offsetX. The panel is at least height pixels tall.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	h.drawCounts()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		state.hasValue = false
		state.value = "--"
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.intValue = parsed
			state.value = strconv.Itoa(parsed)
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
		case core.ParamTypeBool:
			parsed, err := strconv.ParseBool(param.Value)
			if err != nil {
				continue
			}
			state.boolValue = parsed
			state.value = "off"
			if parsed {
				state.value = "on"
			}
		default:
			continue
		}
		state.hasValue = true
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if state.control.Type == core.ParamTypeBool {
			if image.Pt(px, my).In(state.toggleRect) && h.boolSetter != nil {
				h.boolSetter.SetBoolParameter(state.control.Key, !state.boolValue)
			}
			continue
		}
		if image.Pt(px, my).In(state.minusRect) {
			h.adjust(state, -1)
			return
		}
		if image.Pt(px, my).In(state.plusRect) {
			h.adjust(state, 1)
			return
		}
	}
}

// target returns the value one step in direction and whether it stays in
// bounds and differs from the current value.
func (h *HUD) target(state *controlState, direction int) (float64, bool) {
	ctrl := state.control
	var current, step float64
	switch ctrl.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return 0, false
		}
		current = float64(state.intValue)
		step = math.Max(1, math.Round(ctrl.Step))
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return 0, false
		}
		current = state.floatValue
		step = ctrl.Step
		if step <= 0 {
			step = 0.01
		}
	default:
		return 0, false
	}
	next := current + float64(direction)*step
	if ctrl.HasMin && next < ctrl.Min {
		next = ctrl.Min
	}
	if ctrl.HasMax && next > ctrl.Max {
		next = ctrl.Max
	}
	if math.Abs(next-current) < 1e-9 {
		return 0, false
	}
	return next, true
}

func (h *HUD) adjust(state *controlState, direction int) {
	next, ok := h.target(state, direction)
	if !ok {
		return
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		v := int(math.Round(next))
		if h.intSetter.SetIntParameter(state.control.Key, v) {
			state.intValue = v
			state.value = strconv.Itoa(v)
		}
	case core.ParamTypeFloat:
		// Round away accumulated binary error so repeated clicks land on the
		// slider grid.
		v := math.Round(next/state.control.Step) * state.control.Step
		if h.floatSetter.SetFloatParameter(state.control.Key, v) {
			state.floatValue = v
			state.value = formatFloat(state.control, v)
		}
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, headerColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, panelPadding+headerBaseline+lineHeight, dimColor)
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		y := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, y, labelColor)

		valueColor := labelColor
		if !state.hasValue {
			valueColor = dimColor
		}
		if state.control.Type == core.ParamTypeBool {
			h.drawButton(state.toggleRect, state.value, state.hasValue && h.boolSetter != nil)
			continue
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, y, valueColor)

		_, minus := h.target(state, -1)
		_, plus := h.target(state, 1)
		h.drawButton(state.minusRect, "-", state.hasValue && minus)
		h.drawButton(state.plusRect, "+", state.hasValue && plus)
	}
}

// drawCounts lists the Counts group of the snapshot with a color swatch per
// state when the sim provides a palette.
func (h *HUD) drawCounts() {
	var group *core.ParameterGroup
	for i := range h.snapshot.Groups {
		if h.snapshot.Groups[i].Name == "Counts" {
			group = &h.snapshot.Groups[i]
		}
	}
	if group == nil {
		return
	}
	var palette []color.RGBA
	if p, ok := h.sim.(paletteProvider); ok {
		palette = p.Palette()
	}

	face := basicfont.Face7x13
	top := controlsTop + len(h.controls)*lineHeight + countsGap
	text.Draw(h.panel, "Counts ("+group.Summary+")", face, panelPadding, top, headerColor)
	for i, param := range group.Params {
		y := top + (i+1)*countLineHeight
		x := panelPadding
		if i < len(palette) {
			h.fillRect(image.Rect(x, y-swatchSize, x+swatchSize, y), palette[i])
			x += swatchSize + buttonGap
		}
		line := param.Label + ": " + param.Value
		if param.Description != "" {
			line += " (" + param.Description + ")"
		}
		text.Draw(h.panel, line, face, x, y, labelColor)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) fillRect(rect image.Rectangle, c color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
		h.controls[i].toggleRect = image.Rect(minus.Min.X, buttonY, plus.Max.X, buttonY+buttonSize)
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	precision := 1
	switch step := ctrl.Step; {
	case step <= 0:
		precision = 2
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	boolValue  bool
	hasValue   bool

	top        int
	minusRect  image.Rectangle
	plusRect   image.Rectangle
	toggleRect image.Rectangle
}

var (
	headerColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding    = 12
	lineHeight      = 28
	buttonSize      = 22
	buttonGap       = 6
	headerBaseline  = 18
	labelBaseline   = 18
	controlsTop     = panelPadding + headerBaseline + 10
	countsGap       = 24
	countLines      = 5
	countLineHeight = 18
	swatchSize      = 10
)
