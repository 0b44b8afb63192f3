package app

import (
	"flag"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Config holds the command-line settings of the interactive viewer.
type Config struct {
	Sim      string
	Scale    int
	Seed     int64
	Panel    int
	Interval time.Duration

	// Overrides are key=value settings handed to the sim factory.
	Overrides map[string]string
}

// NewConfig returns the viewer defaults.
func NewConfig() Config {
	return Config{
		Sim:       "epidemic",
		Scale:     8,
		Panel:     300,
		Overrides: map[string]string{},
	}
}

// Bind registers the viewer flags on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	if c.Overrides == nil {
		c.Overrides = map[string]string{}
	}
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 keeps the configured seed)")
	fs.IntVar(&c.Panel, "panel", c.Panel, "width of the control panel in pixels, 0 hides it")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "time between steps (0 keeps the configured pacing)")
	fs.Var(overrideFlag(c.Overrides), "set", "sim setting as key=value, repeatable (e.g. -set i_rate=0.3)")
}

// SimConfig merges the overrides with the seed and interval flags into the
// map passed to the sim factory.
func (c Config) SimConfig() map[string]string {
	out := maps.Clone(c.Overrides)
	if out == nil {
		out = map[string]string{}
	}
	if c.Seed != 0 {
		out["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	if c.Interval > 0 {
		out["interval"] = c.Interval.String()
	}
	return out
}

// Validate checks the viewer settings that the sim does not own.
func (c Config) Validate() error {
	if c.Sim == "" {
		return fmt.Errorf("no sim selected")
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %d", c.Scale)
	}
	if c.Panel < 0 {
		return fmt.Errorf("panel width must not be negative, got %d", c.Panel)
	}
	return nil
}

type overrideFlag map[string]string

func (f overrideFlag) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + f[k]
	}
	return strings.Join(parts, ",")
}

func (f overrideFlag) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	f[key] = strings.TrimSpace(value)
	return nil
}
