// Package scenario describes a simulation run as an editable document and turns it into a
// validated simulation.Config.
package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"invsim/internal/simulation"

	"github.com/shopspring/decimal"
)

// DistributionSpec lists the probabilities of consecutive categories. Categories, when set,
// overrides the FirstCategory numbering.
type DistributionSpec struct {
	FirstCategory int       `json:"first_category,omitempty" yaml:"first_category,omitempty" jsonschema:"value of the first category; later ones count up by one"`
	Categories    []int     `json:"categories,omitempty" yaml:"categories,omitempty" jsonschema:"explicit category values, one per probability" validate:"omitempty,dive,gte=0"`
	Probabilities []float64 `json:"probabilities" yaml:"probabilities" jsonschema:"relative weights; normalized to sum to 1 before use" validate:"required,min=1,dive,gte=0"`
}

// CategoryValues returns the category of every probability.
func (d DistributionSpec) CategoryValues() []int {
	if len(d.Categories) > 0 {
		return d.Categories
	}
	return simulation.Sequential(d.FirstCategory, len(d.Probabilities))
}

// Scenario is one complete set of simulation inputs.
type Scenario struct {
	Name             string           `json:"name,omitempty" yaml:"name,omitempty" jsonschema:"free-form label"`
	InitialInventory int              `json:"initial_inventory" yaml:"initial_inventory" jsonschema:"stock on hand before week 1" validate:"gte=0"`
	OrderPoint       int              `json:"order_point" yaml:"order_point" jsonschema:"order when ending inventory is at or below this level" validate:"gte=0"`
	MaxInventory     int              `json:"max_inventory" yaml:"max_inventory" jsonschema:"orders bring inventory back up to this level" validate:"gtfield=OrderPoint"`
	ShortageCost     float64          `json:"shortage_cost" yaml:"shortage_cost" jsonschema:"cost per unit of unmet demand" validate:"gte=0"`
	OrderCost        float64          `json:"order_cost" yaml:"order_cost" jsonschema:"fixed cost per order placed" validate:"gte=0"`
	Weeks            int              `json:"weeks" yaml:"weeks" jsonschema:"number of weeks to simulate" validate:"gte=1"`
	Demand           DistributionSpec `json:"demand" yaml:"demand" jsonschema:"weekly demand distribution"`
	LeadTime         DistributionSpec `json:"lead_time" yaml:"lead_time" jsonschema:"replenishment lead time distribution in weeks"`
	DemandDigits     []int            `json:"demand_digits" yaml:"demand_digits" jsonschema:"one random digit (1-100) per week" validate:"dive,min=1,max=100"`
	LeadTimeDigits   []int            `json:"lead_time_digits" yaml:"lead_time_digits" jsonschema:"random digits (1-100) consumed once per order placed" validate:"dive,min=1,max=100"`
	UnitScale        int              `json:"unit_scale,omitempty" yaml:"unit_scale,omitempty" jsonschema:"display multiplier for quantities, e.g. 1000 when the unit is thousands" validate:"gte=0"`
}

// Reference returns the desk calendar wholesaler case used throughout the textbook
// literature, with the probabilities as entered (not yet normalized).
func Reference() Scenario {
	return Scenario{
		Name:             "desk calendars",
		InitialInventory: 3,
		OrderPoint:       2,
		MaxInventory:     4,
		ShortageCost:     10,
		OrderCost:        50,
		Weeks:            20,
		Demand: DistributionSpec{
			FirstCategory: 0,
			Probabilities: []float64{0.2, 0.2, 0.2, 0.2},
		},
		LeadTime: DistributionSpec{
			FirstCategory: 2,
			Probabilities: []float64{0.33, 0.33, 0.33},
		},
		DemandDigits:   []int{31, 70, 53, 86, 32, 78, 26, 64, 45, 12, 99, 52, 43, 84, 38, 40, 19, 87, 83, 73},
		LeadTimeDigits: []int{29, 83, 58, 41, 13},
		UnitScale:      1000,
	}
}

// Scale returns the display multiplier, defaulting to 1.
func (s Scenario) Scale() int {
	if s.UnitScale <= 0 {
		return 1
	}
	return s.UnitScale
}

// Distributions normalizes both probability vectors and builds their digit ranges.
func (s Scenario) Distributions() (demand, leadTime simulation.Distribution, err error) {
	demand, err = buildDistribution("demand", s.Demand)
	if err != nil {
		return demand, leadTime, err
	}
	leadTime, err = buildDistribution("lead time", s.LeadTime)
	return demand, leadTime, err
}

func buildDistribution(name string, d DistributionSpec) (simulation.Distribution, error) {
	probs, err := Normalize(d.Probabilities)
	if err != nil {
		return simulation.Distribution{}, &simulation.DistributionError{Name: name, Reason: err.Error()}
	}
	return simulation.NewDistribution(name, d.CategoryValues(), probs)
}

// SimulationConfig validates the scenario against maxWeeks and converts it. Any error is
// returned before a single week is simulated.
func (s Scenario) SimulationConfig(maxWeeks int) (simulation.Config, error) {
	if err := s.Validate(maxWeeks); err != nil {
		return simulation.Config{}, err
	}

	demand, leadTime, err := s.Distributions()
	if err != nil {
		return simulation.Config{}, err
	}

	return simulation.Config{
		Params: simulation.Params{
			InitialInventory: s.InitialInventory,
			OrderPoint:       s.OrderPoint,
			MaxInventory:     s.MaxInventory,
			Weeks:            s.Weeks,
			ShortageCost:     decimal.NewFromFloat(s.ShortageCost),
			OrderCost:        decimal.NewFromFloat(s.OrderCost),
		},
		Demand:         demand,
		LeadTime:       leadTime,
		DemandDigits:   s.DemandDigits,
		LeadTimeDigits: s.LeadTimeDigits,
	}, nil
}

// Normalize rescales non-negative weights so they sum to 1.
func Normalize(weights []float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("no probabilities")
	}

	sum := 0.0
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("probability %d is negative (%v)", i, w)
		}
		sum += w
	}
	if sum <= 0 {
		return nil, fmt.Errorf("probabilities sum to zero")
	}

	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / sum
	}
	return out, nil
}

// ParseDigits reads a comma- or whitespace-separated list such as "31,70, 53".
func ParseDigits(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	digits := make([]int, 0, len(fields))
	for i, f := range fields {
		d, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q) is not a number", i+1, f)
		}
		if d < simulation.MinDigit || d > simulation.MaxDigit {
			return nil, &simulation.DigitError{Index: i, Digit: d, Stream: "input"}
		}
		digits = append(digits, d)
	}
	return digits, nil
}

// ParseProbabilities reads a comma-separated list of weights such as "0.2,0.3,0.5".
func ParseProbabilities(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })

	out := make([]float64, 0, len(fields))
	for i, f := range fields {
		p, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q) is not a number", i+1, f)
		}
		out = append(out, p)
	}
	return out, nil
}
