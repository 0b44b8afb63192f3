package epidemic

import "image/color"

// stateColors are the marker colors drawn at half opacity over a white page.
var stateColors = [numStates]color.NRGBA{
	Susceptible: {R: 0, G: 0, B: 255, A: 128},
	Infectious:  {R: 255, G: 0, B: 0, A: 128},
	Recovered:   {R: 0, G: 225, B: 255, A: 128},
	Dead:        {R: 255, G: 1, B: 255, A: 128},
	Vaccinated:  {R: 226, G: 198, B: 0, A: 128},
}

var background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

var epidemicPalette = buildPalette()

// Palette maps the values returned by Cells to opaque colors.
func (m *Model) Palette() []color.RGBA {
	return epidemicPalette
}

// StateColor returns the opaque color used for state s.
func StateColor(s HealthState) color.RGBA {
	if !s.Valid() {
		return toRGBA(background)
	}
	return epidemicPalette[s]
}

func buildPalette() []color.RGBA {
	palette := make([]color.RGBA, numStates)
	for _, s := range States {
		c := stateColors[s]
		palette[s] = toRGBA(blendColors(background, c, float64(c.A)/255))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	inv := 1 - overlayWeight
	mix := func(b, o uint8) uint8 {
		return uint8(float64(b)*inv + float64(o)*overlayWeight + 0.5)
	}
	return color.NRGBA{R: mix(base.R, overlay.R), G: mix(base.G, overlay.G), B: mix(base.B, overlay.B), A: 255}
}
