package mcp

import (
	"invsim/internal/scenario"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SimulateInput are the arguments of simulate_inventory. Every field is optional; without a
// scenario the textbook desk calendar case is used.
type SimulateInput struct {
	Scenario         *scenario.Scenario `json:"scenario,omitempty" jsonschema:"complete scenario document; omit to start from the textbook reference case"`
	InitialInventory *int               `json:"initial_inventory,omitempty" jsonschema:"override the starting stock"`
	OrderPoint       *int               `json:"order_point,omitempty" jsonschema:"override the order point"`
	MaxInventory     *int               `json:"max_inventory,omitempty" jsonschema:"override the order-up-to level"`
	Weeks            *int               `json:"weeks,omitempty" jsonschema:"override the number of weeks"`
	DemandDigits     *string            `json:"demand_digits,omitempty" jsonschema:"comma-separated demand digits (1-100), one per week"`
	LeadTimeDigits   *string            `json:"lead_time_digits,omitempty" jsonschema:"comma-separated lead time digits (1-100), one per order"`
	Format           string             `json:"format,omitempty" jsonschema:"json (default) for structured output or text for an aligned ledger table"`
}

// RangesInput are the arguments of digit_ranges.
type RangesInput struct {
	Scenario *scenario.Scenario `json:"scenario,omitempty" jsonschema:"scenario whose distributions are shown; omit for the reference case"`
}

// SweepInput are the arguments of sweep_policy.
type SweepInput struct {
	Scenario    *scenario.Scenario `json:"scenario,omitempty" jsonschema:"scenario to sweep; omit for the reference case"`
	OrderPoints []int              `json:"order_points" jsonschema:"order points to try"`
	MaxLevels   []int              `json:"max_levels" jsonschema:"maximum inventory levels to try"`
	Top         int                `json:"top,omitempty" jsonschema:"return only the N cheapest policies"`
}

func (s *Server) registerTools(server *sdkmcp.Server) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name: "simulate_inventory",
		Description: "Simulate a periodic-review inventory policy week by week using the random-digit method. " +
			"Demand and lead time are sampled by looking up the supplied two-digit random numbers in cumulative probability ranges, " +
			"so identical inputs always give identical ledgers.\n\n" +
			"Returns one row per week (inventory, demand, shortage, orders) plus shortage, ordering and total cost.\n" +
			"DO NOT invent random digits on the user's behalf without saying so; the result is only as meaningful as the digits supplied.",
	}, toolHandler("simulate_inventory", s.handleSimulate))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name: "digit_ranges",
		Description: "Show which random digits (1-100) map to each demand and lead time category. " +
			"Use it to explain or check a simulation table by hand.",
	}, toolHandler("digit_ranges", s.handleRanges))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name: "sweep_policy",
		Description: "Run the same scenario for every combination of order point and maximum inventory and rank the policies by total cost. " +
			"Combinations where the maximum does not exceed the order point are skipped.\n\n" +
			"The ranking holds for the supplied digit streams only; it is not a statistical optimum.",
	}, toolHandler("sweep_policy", s.handleSweep))
}
