package optimizer

import "github.com/yourusername/godbot/internal/prediction"

// Preset is a named spread-side configuration entered into a tournament
type Preset struct {
	Name    string
	Weights prediction.Weights
}

type spreadOverride struct {
	name                                              string
	efficiency, margin, recentForm, rest, injury, hca float64
}

var tournamentOverrides = []spreadOverride{
	{"Balanced Sharp", 0.35, 0.20, 0.25, 2.5, 1.0, 3.2},
	{"Momentum", 0.20, 0.10, 0.60, 1.5, 0.8, 3.0},
	{"Situational", 0.25, 0.15, 0.15, 4.5, 2.0, 3.5},
	{"Fundamentalist", 0.60, 0.30, 0.05, 1.0, 0.5, 2.5},
	{"Home Court Hero", 0.30, 0.15, 0.15, 2.0, 1.0, 5.5},
}

// Presets returns the tournament field. Each preset overrides the spread
// coefficients of base; totals coefficients are inherited unchanged.
func Presets(base prediction.Weights) []Preset {
	presets := make([]Preset, 0, len(tournamentOverrides))
	for _, o := range tournamentOverrides {
		w := base.WithName(o.name)
		w.Efficiency = o.efficiency
		w.Margin = o.margin
		w.RecentForm = o.recentForm
		w.Rest = o.rest
		w.InjuryScalar = o.injury
		w.HomeCourt = o.hca
		presets = append(presets, Preset{Name: o.name, Weights: w})
	}
	return presets
}
