package epidemic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Variant selects which neighbors an infectious individual can reach.
type Variant uint8

const (
	// VariantBasic only spreads to susceptible neighbors; recovered and
	// vaccinated individuals stay immune for the rest of the run.
	VariantBasic Variant = iota
	// VariantReinfection also reclaims recovered and vaccinated neighbors at
	// their own reinfection rates.
	VariantReinfection
)

func (v Variant) String() string {
	switch v {
	case VariantBasic:
		return "basic"
	case VariantReinfection:
		return "reinfection"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// ParseVariant accepts the names produced by Variant.String.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "basic":
		return VariantBasic, nil
	case "reinfection":
		return VariantReinfection, nil
	}
	return 0, fmt.Errorf("unknown variant %q", s)
}

// Rates holds the per-step transition probabilities.
type Rates struct {
	Infection   float64
	Recovery    float64
	Death       float64
	Vaccination float64

	ReinfectionRecovered  float64
	ReinfectionVaccinated float64
}

// Config controls the epidemic model.
type Config struct {
	Width  int
	Height int

	Seed int64

	Rates   Rates
	Variant Variant

	TravelRadius int
	Meetings     int

	PercentStartInfected float64
	ClusterMode          bool

	MaxSteps int

	// StepInterval paces interactive and scheduled drivers. The model
	// itself ignores it.
	StepInterval time.Duration
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  80,
		Height: 50,
		Seed:   1337,
		Rates: Rates{
			Infection:             0.1,
			Recovery:              0.1,
			Death:                 0,
			Vaccination:           0.1,
			ReinfectionRecovered:  0.05,
			ReinfectionVaccinated: 0.02,
		},
		Variant:              VariantReinfection,
		TravelRadius:         3,
		Meetings:             4,
		PercentStartInfected: 0.01,
		MaxSteps:             500,
		StepInterval:         100 * time.Millisecond,
	}
}

// Population returns the number of cells.
func (c Config) Population() int { return c.Width * c.Height }

// MaxTravelRadius returns the largest radius accepted for a w*h grid: the
// grid diagonal, rounded.
func MaxTravelRadius(w, h int) int {
	return int(math.Round(math.Hypot(float64(w), float64(h))))
}

// StartInfected returns how many individuals are seeded at step 0.
func (c Config) StartInfected() int {
	n := c.Population()
	k := int(math.Round(c.PercentStartInfected * float64(n)))
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	return k
}

// contactRate returns the probability that contact infects an individual in
// state s, and whether s can be infected at all under the configured variant.
func (c Config) contactRate(s HealthState) (float64, bool) {
	switch s {
	case Susceptible:
		return c.Rates.Infection, true
	case Recovered:
		if c.Variant == VariantReinfection {
			return c.Rates.ReinfectionRecovered, true
		}
	case Vaccinated:
		if c.Variant == VariantReinfection {
			return c.Rates.ReinfectionVaccinated, true
		}
	}
	return 0, false
}

// Validate rejects out-of-range values. Every failing field is reported.
func (c Config) Validate() error {
	var errs []error
	bad := func(field string, value any, reason string) {
		errs = append(errs, &ConfigError{Field: field, Value: value, Reason: reason})
	}

	if c.Width <= 0 {
		bad("width", c.Width, "must be positive")
	}
	if c.Height <= 0 {
		bad("height", c.Height, "must be positive")
	}
	probabilities := []struct {
		name  string
		value float64
	}{
		{"i_rate", c.Rates.Infection},
		{"r_rate", c.Rates.Recovery},
		{"d_rate", c.Rates.Death},
		{"v_rate", c.Rates.Vaccination},
		{"reinfection_recovered", c.Rates.ReinfectionRecovered},
		{"reinfection_vaccinated", c.Rates.ReinfectionVaccinated},
	}
	for _, p := range probabilities {
		if !validProbability(p.value) {
			bad(p.name, p.value, "must be within [0, 1]")
		}
	}
	if c.Variant != VariantBasic && c.Variant != VariantReinfection {
		bad("variant", c.Variant, "must be basic or reinfection")
	}
	if c.TravelRadius < 1 {
		bad("travel_radius", c.TravelRadius, "must be at least 1")
	} else if c.Width > 0 && c.Height > 0 {
		if limit := MaxTravelRadius(c.Width, c.Height); c.TravelRadius > limit {
			bad("travel_radius", c.TravelRadius, fmt.Sprintf("must not exceed the grid diagonal %d", limit))
		}
	}
	if c.Meetings < 1 {
		bad("meetings", c.Meetings, "must be at least 1")
	}
	if math.IsNaN(c.PercentStartInfected) || c.PercentStartInfected <= 0 || c.PercentStartInfected >= 1 {
		bad("start_infected", c.PercentStartInfected, "must be within (0, 1)")
	}
	if c.MaxSteps <= 0 {
		bad("max_steps", c.MaxSteps, "must be positive")
	}
	if c.StepInterval < 0 {
		bad("interval", c.StepInterval, "must not be negative")
	}
	return errors.Join(errs...)
}

func validProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unparsable values are reported; range checks are left to Validate.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	var errs []error
	parseInt := func(key string, dst *int) {
		v, ok := cfg[key]
		if !ok {
			return
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, &ConfigError{Field: key, Value: v, Reason: "not an integer"})
			return
		}
		*dst = parsed
	}
	parseFloat := func(key string, dst *float64) {
		v, ok := cfg[key]
		if !ok {
			return
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, &ConfigError{Field: key, Value: v, Reason: "not a number"})
			return
		}
		*dst = parsed
	}

	parseInt("w", &c.Width)
	parseInt("h", &c.Height)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		} else {
			errs = append(errs, &ConfigError{Field: "seed", Value: v, Reason: "not an integer"})
		}
	}
	parseFloat("i_rate", &c.Rates.Infection)
	parseFloat("r_rate", &c.Rates.Recovery)
	parseFloat("d_rate", &c.Rates.Death)
	parseFloat("v_rate", &c.Rates.Vaccination)
	parseFloat("reinfection_recovered", &c.Rates.ReinfectionRecovered)
	parseFloat("reinfection_vaccinated", &c.Rates.ReinfectionVaccinated)
	parseInt("travel_radius", &c.TravelRadius)
	parseInt("meetings", &c.Meetings)
	parseFloat("start_infected", &c.PercentStartInfected)
	parseInt("max_steps", &c.MaxSteps)
	if v, ok := cfg["cluster"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.ClusterMode = parsed
		} else {
			errs = append(errs, &ConfigError{Field: "cluster", Value: v, Reason: "not a boolean"})
		}
	}
	if v, ok := cfg["variant"]; ok {
		if parsed, err := ParseVariant(v); err == nil {
			c.Variant = parsed
		} else {
			errs = append(errs, &ConfigError{Field: "variant", Value: v, Reason: err.Error()})
		}
	}
	if v, ok := cfg["interval"]; ok {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.StepInterval = parsed
		} else {
			errs = append(errs, &ConfigError{Field: "interval", Value: v, Reason: "not a duration"})
		}
	}
	return c, errors.Join(errs...)
}

// ToMap is the inverse of FromMap.
func (c Config) ToMap() map[string]string {
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return map[string]string{
		"w":                      strconv.Itoa(c.Width),
		"h":                      strconv.Itoa(c.Height),
		"seed":                   strconv.FormatInt(c.Seed, 10),
		"i_rate":                 ff(c.Rates.Infection),
		"r_rate":                 ff(c.Rates.Recovery),
		"d_rate":                 ff(c.Rates.Death),
		"v_rate":                 ff(c.Rates.Vaccination),
		"reinfection_recovered":  ff(c.Rates.ReinfectionRecovered),
		"reinfection_vaccinated": ff(c.Rates.ReinfectionVaccinated),
		"travel_radius":          strconv.Itoa(c.TravelRadius),
		"meetings":               strconv.Itoa(c.Meetings),
		"start_infected":         ff(c.PercentStartInfected),
		"cluster":                strconv.FormatBool(c.ClusterMode),
		"max_steps":              strconv.Itoa(c.MaxSteps),
		"variant":                c.Variant.String(),
		"interval":               c.StepInterval.String(),
	}
}
