package mcp

import (
	"bytes"
	"context"
	"fmt"

	"invsim/internal/report"
	"invsim/internal/runner"
	"invsim/internal/scenario"
	"invsim/internal/visuals"
)

func (s *Server) handleSimulate(ctx context.Context, in SimulateInput) (any, error) {
	sc := scenario.Reference()
	if in.Scenario != nil {
		sc = *in.Scenario
	}

	sc, err := scenario.Overrides{
		InitialInventory: in.InitialInventory,
		OrderPoint:       in.OrderPoint,
		MaxInventory:     in.MaxInventory,
		Weeks:            in.Weeks,
		DemandDigits:     in.DemandDigits,
		LeadTimeDigits:   in.LeadTimeDigits,
	}.Apply(sc)
	if err != nil {
		return nil, err
	}

	rep, err := s.runner.Run(ctx, runner.SurfaceMCP, sc)
	if err != nil {
		return nil, err
	}

	chart := ""
	if s.cfg.EnableMermaidCharts {
		chart = visuals.Charts(rep.Result, sc.OrderPoint, sc.MaxInventory, rep.Scale())
	}

	switch in.Format {
	case "", "json":
	case "text":
		var buf bytes.Buffer
		if err := report.Text(&buf, rep, report.Options{Chart: chart}); err != nil {
			return nil, err
		}
		return buf.String(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q: use json or text", in.Format)
	}

	res := map[string]any{
		"weeks":  rep.Result.Weeks,
		"totals": rep.Result.Totals,
	}
	meta := map[string]any{
		"run_id":           rep.RunID,
		"scenario":         rep.Scenario,
		"demand_ranges":    rep.Demand,
		"lead_time_ranges": rep.LeadTime,
		"unit_scale":       rep.Scale(),
	}
	guidance := []string{
		"Quantities in 'weeks' are in scenario units; multiply by unit_scale for display.",
		"A week with a null demand_digit ran out of demand digits and was simulated with zero demand.",
	}
	if rep.Result.Totals.DeferredOrders > 0 {
		guidance = append(guidance, "Weeks marked order_deferred wanted to order but no lead time digit was left. Supply more lead_time_digits to see those orders.")
	}

	env := WrapResponse(res, meta, rep.Warnings, guidance)
	env.Chart = chart
	return env, nil
}

func (s *Server) handleRanges(_ context.Context, in RangesInput) (any, error) {
	sc := scenario.Reference()
	if in.Scenario != nil {
		sc = *in.Scenario
	}
	if err := sc.Validate(s.runner.MaxWeeks()); err != nil {
		return nil, err
	}

	demand, leadTime, err := s.runner.Ranges(sc)
	if err != nil {
		return nil, err
	}

	var warnings []string
	for _, d := range []struct {
		name        string
		unreachable []int
	}{{demand.Name, demand.Unreachable()}, {leadTime.Name, leadTime.Unreachable()}} {
		if len(d.unreachable) > 0 {
			warnings = append(warnings, fmt.Sprintf("%s categories %v have no digits and can never be drawn.", d.name, d.unreachable))
		}
	}

	res := map[string]any{
		"demand":    demand,
		"lead_time": leadTime,
	}
	return WrapResponse(res, nil, warnings, nil), nil
}

func (s *Server) handleSweep(ctx context.Context, in SweepInput) (any, error) {
	sc := scenario.Reference()
	if in.Scenario != nil {
		sc = *in.Scenario
	}

	sweep, err := s.runner.Sweep(ctx, runner.SurfaceMCP, sc, runner.SweepRequest{
		OrderPoints: in.OrderPoints,
		MaxLevels:   in.MaxLevels,
	})
	if err != nil {
		return nil, err
	}

	points := sweep.Points
	if in.Top > 0 && in.Top < len(points) {
		points = points[:in.Top]
	}

	res := map[string]any{
		"points":    points,
		"evaluated": len(sweep.Points),
		"skipped":   sweep.Skipped,
	}
	meta := map[string]any{"scenario": sweep.Scenario}
	guidance := []string{
		"Points are sorted by total cost, then order point. The first entry is the cheapest policy for these digits.",
	}
	return WrapResponse(res, meta, nil, guidance), nil
}
