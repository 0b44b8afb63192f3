package epidemic

import (
	"strconv"

	"epigrid/internal/core"
)

// Parameters reports the active configuration and the live counts.
func (m *Model) Parameters() core.ParameterSnapshot {
	cfg := m.cfg
	rates := cfg.Rates
	counts := m.counts
	n := len(m.states)
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", cfg.Width),
				intParam("h", "Height", cfg.Height),
				int64Param("seed", "Seed", m.seed),
				stringParam("variant", "Variant", cfg.Variant.String()),
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				floatParam("start_infected", "Start infected", cfg.PercentStartInfected),
				boolParam("cluster", "Cluster mode", cfg.ClusterMode),
			},
		},
		{
			Name: "Rates",
			Params: []core.Parameter{
				floatParam("i_rate", "Infection", rates.Infection),
				floatParam("r_rate", "Recovery", rates.Recovery),
				floatParam("v_rate", "Vaccination", rates.Vaccination),
				floatParam("d_rate", "Death", rates.Death),
				floatParam("reinfection_recovered", "Reinfect recovered", rates.ReinfectionRecovered),
				floatParam("reinfection_vaccinated", "Reinfect vaccinated", rates.ReinfectionVaccinated),
			},
		},
		{
			Name: "Contacts",
			Params: []core.Parameter{
				intParam("travel_radius", "Travel radius", cfg.TravelRadius),
				intParam("meetings", "Meetings", cfg.Meetings),
				intParam("max_steps", "Max steps", cfg.MaxSteps),
			},
		},
		{
			Name:    "Counts",
			Summary: "step " + strconv.Itoa(m.step),
			Params: []core.Parameter{
				countParam(Susceptible, counts, n),
				countParam(Infectious, counts, n),
				countParam(Recovered, counts, n),
				countParam(Dead, counts, n),
				countParam(Vaccinated, counts, n),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable settings and their slider
// ranges.
func (m *Model) ParameterControls() []core.ParameterControl {
	rate := func(key, label string) core.ParameterControl {
		return core.ParameterControl{Key: key, Label: label, Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true}
	}
	return []core.ParameterControl{
		{Key: "start_infected", Label: "Start infected", Type: core.ParamTypeFloat, Step: 0.001, Min: 0.001, Max: 0.1, HasMin: true, HasMax: true},
		{Key: "cluster", Label: "Cluster mode", Type: core.ParamTypeBool},
		rate("i_rate", "Infection"),
		rate("r_rate", "Recovery"),
		rate("v_rate", "Vaccination"),
		rate("d_rate", "Death"),
		rate("reinfection_recovered", "Reinfect recovered"),
		rate("reinfection_vaccinated", "Reinfect vaccinated"),
		{Key: "travel_radius", Label: "Travel radius", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: float64(MaxTravelRadius(m.cfg.Width, m.cfg.Height)), HasMin: true, HasMax: true},
		{Key: "meetings", Label: "Meetings", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 50, HasMin: true, HasMax: true},
		{Key: "max_steps", Label: "Max steps", Type: core.ParamTypeInt, Step: 100, Min: 200, Max: 2000, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a rate or the seeding fraction. Out-of-range
// values are rejected. Rates apply from the next step; changing the seeding
// fraction restarts the outbreak with the current seed.
func (m *Model) SetFloatParameter(key string, value float64) bool {
	cfg := m.cfg
	switch key {
	case "i_rate":
		cfg.Rates.Infection = value
	case "r_rate":
		cfg.Rates.Recovery = value
	case "d_rate":
		cfg.Rates.Death = value
	case "v_rate":
		cfg.Rates.Vaccination = value
	case "reinfection_recovered":
		cfg.Rates.ReinfectionRecovered = value
	case "reinfection_vaccinated":
		cfg.Rates.ReinfectionVaccinated = value
	case "start_infected":
		cfg.PercentStartInfected = value
	default:
		return false
	}
	if cfg.Validate() != nil {
		return false
	}
	m.cfg = cfg
	if key == "start_infected" {
		m.Reset(m.seed)
	}
	return true
}

// SetIntParameter updates the contact settings or the step limit.
func (m *Model) SetIntParameter(key string, value int) bool {
	cfg := m.cfg
	switch key {
	case "travel_radius":
		cfg.TravelRadius = value
	case "meetings":
		cfg.Meetings = value
	case "max_steps":
		cfg.MaxSteps = value
	default:
		return false
	}
	if cfg.Validate() != nil {
		return false
	}
	m.cfg = cfg
	if cfg.TravelRadius != m.sampler.Radius() || cfg.Meetings != m.sampler.Meetings() {
		m.sampler = NewSampler(m.grid, cfg.TravelRadius, cfg.Meetings)
	}
	return true
}

// SetBoolParameter toggles cluster seeding and restarts the outbreak.
func (m *Model) SetBoolParameter(key string, value bool) bool {
	if key != "cluster" {
		return false
	}
	m.cfg.ClusterMode = value
	m.Reset(m.seed)
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}

func countParam(s HealthState, c Counts, n int) core.Parameter {
	return core.Parameter{
		Key:         "count_" + s.String(),
		Label:       s.String(),
		Type:        core.ParamTypeInt,
		Value:       strconv.Itoa(c.Get(s)),
		Description: strconv.FormatFloat(c.Percent(s, n), 'f', 1, 64) + "%",
	}
}
