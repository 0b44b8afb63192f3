package epidemic

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}

func TestValidateRejectsOutOfRangeValues(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*Config)
	}{
		{"width", func(c *Config) { c.Width = 0 }},
		{"height", func(c *Config) { c.Height = -3 }},
		{"i_rate", func(c *Config) { c.Rates.Infection = 1.5 }},
		{"r_rate", func(c *Config) { c.Rates.Recovery = -0.1 }},
		{"d_rate", func(c *Config) { c.Rates.Death = math.NaN() }},
		{"v_rate", func(c *Config) { c.Rates.Vaccination = 2 }},
		{"reinfection_recovered", func(c *Config) { c.Rates.ReinfectionRecovered = -1 }},
		{"reinfection_vaccinated", func(c *Config) { c.Rates.ReinfectionVaccinated = 1.01 }},
		{"travel_radius", func(c *Config) { c.TravelRadius = 0 }},
		{"travel_radius", func(c *Config) { c.TravelRadius = MaxTravelRadius(c.Width, c.Height) + 1 }},
		{"meetings", func(c *Config) { c.Meetings = 0 }},
		{"start_infected", func(c *Config) { c.PercentStartInfected = 0 }},
		{"start_infected", func(c *Config) { c.PercentStartInfected = 1 }},
		{"max_steps", func(c *Config) { c.MaxSteps = 0 }},
		{"variant", func(c *Config) { c.Variant = Variant(9) }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		err := cfg.Validate()
		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			t.Fatalf("%s: expected ConfigError, got %v", tc.field, err)
		}
		if cerr.Field != tc.field {
			t.Fatalf("%s: error names field %q", tc.field, cerr.Field)
		}
		if _, err := NewWithConfig(cfg); err == nil {
			t.Fatalf("%s: NewWithConfig accepted invalid config", tc.field)
		}
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	cfg.Meetings = 0
	err := cfg.Validate()
	fields := map[string]bool{}
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var cerr *ConfigError
		if errors.As(e, &cerr) {
			fields[cerr.Field] = true
		}
	}
	if !fields["width"] || !fields["meetings"] {
		t.Fatalf("expected width and meetings errors, got %v", err)
	}
}

func TestFromMapParsesValues(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"w":              "12",
		"h":              "7",
		"seed":           "5",
		"i_rate":         "0.4",
		"travel_radius":  "2",
		"meetings":       "6",
		"start_infected": "0.05",
		"cluster":        "true",
		"variant":        "basic",
		"max_steps":      "42",
		"interval":       "250ms",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg.Width != 12 || cfg.Height != 7 || cfg.Seed != 5 {
		t.Fatalf("dimensions/seed not parsed: %+v", cfg)
	}
	if cfg.Rates.Infection != 0.4 || cfg.TravelRadius != 2 || cfg.Meetings != 6 {
		t.Fatalf("contact settings not parsed: %+v", cfg)
	}
	if !cfg.ClusterMode || cfg.Variant != VariantBasic || cfg.MaxSteps != 42 {
		t.Fatalf("mode settings not parsed: %+v", cfg)
	}
	if cfg.StepInterval != 250*time.Millisecond {
		t.Fatalf("interval %v, want 250ms", cfg.StepInterval)
	}
	if cfg.Rates.Recovery != DefaultConfig().Rates.Recovery {
		t.Fatal("absent keys should keep defaults")
	}

	back, err := FromMap(cfg.ToMap())
	if err != nil || back != cfg {
		t.Fatalf("ToMap/FromMap lost data: %+v vs %+v (%v)", back, cfg, err)
	}
}

func TestFromMapReportsUnparsableValues(t *testing.T) {
	_, err := FromMap(map[string]string{"w": "wide", "variant": "sirs"})
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestStartInfectedRoundsAndKeepsOne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 10, 10
	cfg.PercentStartInfected = 0.01
	if got := cfg.StartInfected(); got != 1 {
		t.Fatalf("StartInfected = %d, want 1", got)
	}
	cfg.PercentStartInfected = 0.001
	if got := cfg.StartInfected(); got != 1 {
		t.Fatalf("StartInfected = %d, want at least 1", got)
	}
	cfg.PercentStartInfected = 0.256
	if got := cfg.StartInfected(); got != 26 {
		t.Fatalf("StartInfected = %d, want 26", got)
	}
}
