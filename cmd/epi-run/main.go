// Command epi-run steps an epidemic to completion without a window and
// writes its time series as CSV, a chart and optionally an MJPEG video.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"epigrid/internal/core"
	"epigrid/internal/report"
	"epigrid/internal/sims/epidemic"
)

type kvList []string

func (l *kvList) String() string { return strings.Join(*l, ",") }

func (l *kvList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

type options struct {
	overrides kvList
	seed      int64
	interval  time.Duration
	timeout   time.Duration

	csvPath   string
	plotPath  string
	videoPath string
	scale     int
	fps       int
	every     int

	verbose bool
	json    bool
}

func main() {
	var opts options
	flag.Var(&opts.overrides, "set", "model setting in key=value form (repeatable), e.g. -set i_rate=0.3")
	flag.Int64Var(&opts.seed, "seed", 0, "random seed (0 keeps the configured seed)")
	flag.DurationVar(&opts.interval, "interval", 0, "pause between steps; 0 runs flat out")
	flag.DurationVar(&opts.timeout, "timeout", 0, "abort the run after this long (0 disables)")
	flag.StringVar(&opts.csvPath, "csv", "", "write the per-step counts to this CSV file")
	flag.StringVar(&opts.plotPath, "plot", "", "save a chart of the state shares (png, svg or pdf)")
	flag.StringVar(&opts.videoPath, "video", "", "record the grid to this MJPEG AVI file")
	flag.IntVar(&opts.scale, "scale", 4, "pixels per cell in the video")
	flag.IntVar(&opts.fps, "fps", 10, "video frame rate")
	flag.IntVar(&opts.every, "every", 1, "record a video frame every N steps")
	flag.BoolVar(&opts.verbose, "v", false, "log every step")
	flag.BoolVar(&opts.json, "json", false, "log as JSON")
	flag.Parse()

	logger := newLogger(opts.verbose, opts.json)
	slog.SetDefault(logger)

	if err := run(logger, opts); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(verbose, json bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stderr, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
}

func run(logger *slog.Logger, opts options) error {
	settings := map[string]string{}
	for _, kv := range opts.overrides {
		key, value, _ := strings.Cut(kv, "=")
		settings[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	cfg, err := epidemic.FromMap(settings)
	if err != nil {
		return err
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	model, err := epidemic.NewWithConfig(cfg, epidemic.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("starting run",
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"seed", model.Seed(),
		"variant", cfg.Variant.String(),
		"start_infected", model.Counts().Infectious,
		"max_steps", cfg.MaxSteps,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	var video *report.Video
	if opts.videoPath != "" {
		vopts := report.DefaultVideoOptions()
		vopts.Scale = opts.scale
		vopts.FPS = opts.fps
		vopts.Steps = cfg.MaxSteps
		video, err = report.NewVideo(opts.videoPath, model.Size(), vopts)
		if err != nil {
			return err
		}
		if err := video.AddFrame(model.Cells(), model.Palette(), model.History()); err != nil {
			video.Close()
			return err
		}
	}

	every := opts.every
	if every <= 0 {
		every = 1
	}
	var frameErr error
	steps, driveErr := core.Drive(ctx, model, opts.interval, func(step int) {
		logger.Debug("step", "step", step, "counts", model.Counts().String(), "changed", len(model.Changed()))
		if video == nil || frameErr != nil {
			return
		}
		if step%every == 0 || model.IsFinished() {
			frameErr = video.AddFrame(model.Cells(), model.Palette(), model.History())
		}
	})
	if video != nil {
		if err := video.Close(); err != nil && frameErr == nil {
			frameErr = err
		}
		if frameErr == nil {
			logger.Info("video written", "path", opts.videoPath, "frames", video.Frames())
		}
	}
	if driveErr != nil && !errors.Is(driveErr, context.Canceled) && !errors.Is(driveErr, context.DeadlineExceeded) {
		return driveErr
	}
	if driveErr != nil {
		logger.Warn("run interrupted", "steps", steps, "err", driveErr)
	}

	res := epidemic.Summarize(model)
	logger.Info("run finished",
		"steps", res.Steps,
		"peak_infectious", res.PeakInfectious,
		"peak_step", res.PeakStep,
		"attack_rate", fmt.Sprintf("%.3f", res.AttackRate),
		"extinct", res.Extinct,
		"final", res.Final.String(),
	)
	if n := model.ClampEvents(); n > 0 {
		logger.Warn("counts needed clamping", "events", n)
	}

	if opts.csvPath != "" {
		if err := report.SaveCSV(opts.csvPath, model.History()); err != nil {
			return err
		}
		logger.Info("csv written", "path", opts.csvPath)
	}
	if opts.plotPath != "" {
		title := fmt.Sprintf("Epidemic %dx%d, seed %d", cfg.Width, cfg.Height, model.Seed())
		if err := report.SavePlot(opts.plotPath, model.History(), title); err != nil {
			return err
		}
		logger.Info("plot written", "path", opts.plotPath)
	}
	return frameErr
}
