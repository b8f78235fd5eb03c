// Package runner is the application service shared by the CLI, MCP and HTTP surfaces. It
// turns scenarios into simulator runs and keeps the metrics up to date.
package runner

import (
	"context"
	"fmt"
	"time"

	"invsim/internal/metrics"
	"invsim/internal/scenario"
	"invsim/internal/simulation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Surfaces label where a run was requested from.
const (
	SurfaceCLI  = "cli"
	SurfaceMCP  = "mcp"
	SurfaceHTTP = "http"
)

// Report is a finished run together with everything needed to render it.
type Report struct {
	RunID       string                  `json:"run_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Scenario    scenario.Scenario       `json:"scenario"`
	Demand      simulation.Distribution `json:"demand_ranges"`
	LeadTime    simulation.Distribution `json:"lead_time_ranges"`
	Result      simulation.Result       `json:"result"`
	Warnings    []string                `json:"warnings,omitempty"`
}

// Scale returns the quantity display multiplier of the report's scenario.
func (r *Report) Scale() int {
	return r.Scenario.Scale()
}

// Runner executes scenarios.
type Runner struct {
	metrics     *metrics.Metrics
	maxWeeks    int
	concurrency int
}

// New creates a Runner. maxWeeks caps every scenario's horizon; concurrency bounds sweeps.
func New(m *metrics.Metrics, maxWeeks, concurrency int) *Runner {
	if m == nil {
		m = metrics.New()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{metrics: m, maxWeeks: maxWeeks, concurrency: concurrency}
}

// MaxWeeks returns the horizon cap applied to scenarios.
func (r *Runner) MaxWeeks() int {
	return r.maxWeeks
}

// Run validates the scenario and simulates it. A rejected scenario returns an error and no
// report. The context is only checked before the run starts; a run is never interrupted.
func (r *Runner) Run(ctx context.Context, surface string, sc scenario.Scenario) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := sc.SimulationConfig(r.maxWeeks)
	if err != nil {
		r.metrics.RecordRejected(surface)
		return nil, err
	}
	sim, err := simulation.NewSimulator(cfg)
	if err != nil {
		r.metrics.RecordRejected(surface)
		return nil, err
	}

	start := time.Now()
	result := sim.Run()
	elapsed := time.Since(start)

	r.metrics.RecordRun(surface, elapsed, result.Totals.OrdersPlaced, result.Totals.ShortageUnits, result.Totals.DeferredOrders)

	report := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Scenario:    sc,
		Demand:      cfg.Demand,
		LeadTime:    cfg.LeadTime,
		Result:      result,
		Warnings:    warnings(cfg, result),
	}

	log.Info().
		Str("runId", report.RunID).
		Str("surface", surface).
		Str("scenario", sc.Name).
		Int("weeks", sc.Weeks).
		Int("orders", result.Totals.OrdersPlaced).
		Str("totalCost", result.Totals.TotalCost.String()).
		Dur("elapsed", elapsed).
		Msg("Simulation run completed")

	return report, nil
}

// Ranges builds the digit assignment of both distributions without running anything.
func (r *Runner) Ranges(sc scenario.Scenario) (demand, leadTime simulation.Distribution, err error) {
	demand, leadTime, err = sc.Distributions()
	if err != nil {
		return demand, leadTime, err
	}
	for _, d := range []simulation.Distribution{demand, leadTime} {
		if u := d.Unreachable(); len(u) > 0 {
			log.Warn().Str("distribution", d.Name).Ints("categories", u).Msg("Categories have no digits assigned")
		}
	}
	return demand, leadTime, nil
}

func warnings(cfg simulation.Config, result simulation.Result) []string {
	var out []string

	for _, d := range []simulation.Distribution{cfg.Demand, cfg.LeadTime} {
		if u := d.Unreachable(); len(u) > 0 {
			out = append(out, fmt.Sprintf("%s categories %v have zero probability and can never be drawn.", d.Name, u))
		}
	}

	if n := len(cfg.DemandDigits); n < cfg.Weeks {
		out = append(out, fmt.Sprintf("Only %d demand digits for %d weeks: weeks %d-%d were simulated with zero demand.", n, cfg.Weeks, n+1, cfg.Weeks))
	}

	if result.Totals.DeferredOrders > 0 {
		first := 0
		for _, w := range result.Weeks {
			if w.OrderDeferred {
				first = w.Week
				break
			}
		}
		out = append(out, fmt.Sprintf("Lead time digits ran out in week %d: %d order(s) that the policy called for were not placed.", first, result.Totals.DeferredOrders))
	}

	return out
}
