package scenario

import "fmt"

// Overrides replaces individual fields of a scenario. Nil fields leave the scenario as is.
// Digit streams are given in the comma-separated entry form accepted by ParseDigits.
type Overrides struct {
	InitialInventory *int
	OrderPoint       *int
	MaxInventory     *int
	Weeks            *int
	DemandDigits     *string
	LeadTimeDigits   *string
}

// Apply returns a copy of s with the overrides applied. The result is not validated.
func (o Overrides) Apply(s Scenario) (Scenario, error) {
	out := s
	out.DemandDigits = append([]int(nil), s.DemandDigits...)
	out.LeadTimeDigits = append([]int(nil), s.LeadTimeDigits...)

	if o.InitialInventory != nil {
		out.InitialInventory = *o.InitialInventory
	}
	if o.OrderPoint != nil {
		out.OrderPoint = *o.OrderPoint
	}
	if o.MaxInventory != nil {
		out.MaxInventory = *o.MaxInventory
	}
	if o.Weeks != nil {
		out.Weeks = *o.Weeks
	}
	if o.DemandDigits != nil {
		digits, err := ParseDigits(*o.DemandDigits)
		if err != nil {
			return Scenario{}, fmt.Errorf("demand digits: %w", err)
		}
		out.DemandDigits = digits
	}
	if o.LeadTimeDigits != nil {
		digits, err := ParseDigits(*o.LeadTimeDigits)
		if err != nil {
			return Scenario{}, fmt.Errorf("lead time digits: %w", err)
		}
		out.LeadTimeDigits = digits
	}
	return out, nil
}
