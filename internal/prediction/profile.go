package prediction

import (
	"fmt"

	"github.com/yourusername/godbot/internal/models"
)

// Weights is an immutable set of coefficients for the prediction model.
// Pass by value; never share a mutable instance between profile passes.
type Weights struct {
	Name string `json:"name" mapstructure:"name"`

	// Spread coefficients
	Efficiency   float64 `json:"efficiency" mapstructure:"efficiency" validate:"gte=0"`
	Margin       float64 `json:"margin" mapstructure:"margin" validate:"gte=0"`
	RecentForm   float64 `json:"recent_form" mapstructure:"recent_form" validate:"gte=0"`
	Rest         float64 `json:"rest" mapstructure:"rest"`
	InjuryScalar float64 `json:"injury_scalar" mapstructure:"injury_scalar"`
	HomeCourt    float64 `json:"home_court" mapstructure:"home_court"`

	// Totals coefficients
	Pace    float64 `json:"pace" mapstructure:"pace" validate:"gte=0"`
	PPG     float64 `json:"ppg" mapstructure:"ppg" validate:"gte=0"`
	Def     float64 `json:"def" mapstructure:"def" validate:"gte=0"`
	Fatigue float64 `json:"fatigue" mapstructure:"fatigue"`
}

// Zeus is the spread profile
var Zeus = Weights{
	Name:         string(models.ProfileZeus),
	Efficiency:   0.25,
	Margin:       0.15,
	RecentForm:   0.15,
	Rest:         4.5,
	InjuryScalar: 2.0,
	HomeCourt:    3.5,
	Pace:         0.40,
	PPG:          0.35,
	Def:          0.35,
	Fatigue:      -2.5,
}

// Loki is the moneyline profile, weighted toward momentum
var Loki = Weights{
	Name:         string(models.ProfileLoki),
	Efficiency:   0.10,
	Margin:       0.15,
	RecentForm:   0.60,
	Rest:         2.0,
	InjuryScalar: 2.0,
	HomeCourt:    2.5,
	Pace:         0.40,
	PPG:          0.35,
	Def:          0.35,
	Fatigue:      -2.5,
}

// Shiva is the totals profile
var Shiva = Weights{
	Name:         string(models.ProfileShiva),
	Efficiency:   0.25,
	Margin:       0.15,
	RecentForm:   0.15,
	Rest:         4.5,
	InjuryScalar: 2.0,
	HomeCourt:    3.5,
	Pace:         0.40,
	PPG:          0.35,
	Def:          0.35,
	Fatigue:      -2.5,
}

// ForProfile returns the canonical weights for a profile
func ForProfile(p models.Profile) (Weights, error) {
	switch p {
	case models.ProfileZeus:
		return Zeus, nil
	case models.ProfileLoki:
		return Loki, nil
	case models.ProfileShiva:
		return Shiva, nil
	}
	return Weights{}, fmt.Errorf("unknown profile %q", p)
}

// WithName returns a copy of w carrying a new name
func (w Weights) WithName(name string) Weights {
	w.Name = name
	return w
}
