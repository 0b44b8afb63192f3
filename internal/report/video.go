package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"epigrid/internal/core"
	"epigrid/internal/render"
	"epigrid/internal/sims/epidemic"
)

// VideoOptions controls the layout of recorded frames.
type VideoOptions struct {
	// Scale is the pixel size of one cell.
	Scale int
	// FPS is the playback rate written to the AVI header.
	FPS int
	// ChartHeight adds a line chart of the state shares below the grid.
	// Zero leaves it out.
	ChartHeight int
	// Steps fixes the chart's x range; usually the run's MaxSteps.
	Steps int
	// Quality is the JPEG quality of each frame.
	Quality int
}

// DefaultVideoOptions returns a 4x scale, 10 fps layout with a chart strip.
func DefaultVideoOptions() VideoOptions {
	return VideoOptions{Scale: 4, FPS: 10, ChartHeight: 120, Quality: 75}
}

// Video writes the grid, one frame per call to AddFrame, to a Motion JPEG
// AVI file.
type Video struct {
	aw     mjpeg.AviWriter
	opts   VideoOptions
	size   core.Size
	canvas *image.RGBA
	buf    bytes.Buffer
	frames int
}

// NewVideo creates path and prepares frames for a grid of the given size.
func NewVideo(path string, size core.Size, opts VideoOptions) (*Video, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.FPS <= 0 {
		opts.FPS = 10
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = 75
	}
	if opts.ChartHeight < 0 {
		opts.ChartHeight = 0
	}
	w := size.W * opts.Scale
	h := size.H*opts.Scale + opts.ChartHeight
	aw, err := mjpeg.New(path, int32(w), int32(h), int32(opts.FPS))
	if err != nil {
		return nil, fmt.Errorf("create video %s: %w", path, err)
	}
	return &Video{
		aw:     aw,
		opts:   opts,
		size:   size,
		canvas: image.NewRGBA(image.Rect(0, 0, w, h)),
	}, nil
}

// AddFrame paints cells with palette, appends the chart strip for h when
// enabled and writes the frame.
func (v *Video) AddFrame(cells []uint8, palette []color.RGBA, h *epidemic.History) error {
	draw.Draw(v.canvas, v.canvas.Bounds(), image.White, image.Point{}, draw.Src)
	render.PaintFrame(v.canvas, cells, v.size, palette, v.opts.Scale)

	if v.opts.ChartHeight > 0 && h != nil {
		strip, err := ChartStrip(h, v.canvas.Bounds().Dx(), v.opts.ChartHeight, float64(v.opts.Steps))
		if err != nil {
			return err
		}
		top := v.size.H * v.opts.Scale
		r := image.Rect(0, top, v.canvas.Bounds().Dx(), top+v.opts.ChartHeight)
		draw.Draw(v.canvas, r, strip, image.Point{}, draw.Src)
	}

	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, v.canvas, &jpeg.Options{Quality: v.opts.Quality}); err != nil {
		return fmt.Errorf("encode frame %d: %w", v.frames, err)
	}
	if err := v.aw.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("add frame %d: %w", v.frames, err)
	}
	v.frames++
	return nil
}

// Frames returns the number of frames written.
func (v *Video) Frames() int { return v.frames }

// Close finalises the AVI index.
func (v *Video) Close() error { return v.aw.Close() }
