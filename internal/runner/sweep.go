package runner

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"invsim/internal/scenario"
	"invsim/internal/simulation"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidSweep reports a sweep request that cannot be evaluated as given.
var ErrInvalidSweep = errors.New("invalid sweep")

// MaxSweepPoints caps the number of policy combinations a single sweep may evaluate.
const MaxSweepPoints = 2500

// SweepRequest lists the order points and maximum levels to try. Pairs where the maximum
// does not exceed the order point are skipped.
type SweepRequest struct {
	OrderPoints []int `json:"order_points"`
	MaxLevels   []int `json:"max_levels"`
}

// SweepPoint is the outcome of one policy combination.
type SweepPoint struct {
	OrderPoint   int                  `json:"order_point"`
	MaxInventory int                  `json:"max_inventory"`
	Totals       simulation.RunTotals `json:"totals"`
}

// SweepReport ranks the evaluated policies, cheapest first.
type SweepReport struct {
	Scenario string       `json:"scenario"`
	Points   []SweepPoint `json:"points"`
	Skipped  int          `json:"skipped"`
}

// Best returns the cheapest policy, if any was evaluated.
func (s *SweepReport) Best() (SweepPoint, bool) {
	if len(s.Points) == 0 {
		return SweepPoint{}, false
	}
	return s.Points[0], true
}

// Sweep runs the scenario once per (order point, max level) pair. Runs are independent and
// execute in parallel; the first failure cancels the rest.
func (r *Runner) Sweep(ctx context.Context, surface string, sc scenario.Scenario, req SweepRequest) (*SweepReport, error) {
	type pair struct{ orderPoint, maxLevel int }

	// The cap is enforced while pairs are collected so oversized requests never allocate
	// more than MaxSweepPoints entries.
	var pairs []pair
	skipped := 0
	for _, op := range req.OrderPoints {
		for _, ml := range req.MaxLevels {
			if ml <= op {
				skipped++
				continue
			}
			if len(pairs) == MaxSweepPoints {
				return nil, fmt.Errorf("%w: more than %d combinations", ErrInvalidSweep, MaxSweepPoints)
			}
			pairs = append(pairs, pair{op, ml})
		}
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no valid combinations, every max level must exceed an order point", ErrInvalidSweep)
	}

	// Distributions and digits do not change between points, so reject bad input once.
	base, err := sc.SimulationConfig(r.maxWeeks)
	if err != nil {
		r.metrics.RecordRejected(surface)
		return nil, err
	}

	points := make([]SweepPoint, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cfg := base
			cfg.OrderPoint = p.orderPoint
			cfg.MaxInventory = p.maxLevel

			sim, err := simulation.NewSimulator(cfg)
			if err != nil {
				return fmt.Errorf("order point %d, max %d: %w", p.orderPoint, p.maxLevel, err)
			}
			res := sim.Run()
			points[i] = SweepPoint{OrderPoint: p.orderPoint, MaxInventory: p.maxLevel, Totals: res.Totals}
			r.metrics.SweepPoints.Inc()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.metrics.RecordRejected(surface)
		return nil, err
	}

	sort.SliceStable(points, func(i, j int) bool {
		if c := points[i].Totals.TotalCost.Cmp(points[j].Totals.TotalCost); c != 0 {
			return c < 0
		}
		if points[i].OrderPoint != points[j].OrderPoint {
			return points[i].OrderPoint < points[j].OrderPoint
		}
		return points[i].MaxInventory < points[j].MaxInventory
	})

	log.Info().
		Str("surface", surface).
		Str("scenario", sc.Name).
		Int("points", len(points)).
		Int("skipped", skipped).
		Msg("Policy sweep completed")

	return &SweepReport{Scenario: sc.Name, Points: points, Skipped: skipped}, nil
}
