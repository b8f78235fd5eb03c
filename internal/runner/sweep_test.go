package runner

import (
	"context"
	"errors"
	"testing"

	"invsim/internal/scenario"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSweep_SortedByCost(t *testing.T) {
	r, m := newTestRunner()

	report, err := r.Sweep(context.Background(), SurfaceCLI, scenario.Reference(), SweepRequest{
		OrderPoints: []int{1, 2, 3},
		MaxLevels:   []int{3, 4, 5, 6},
	})
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	// (3,3) is the only pair where the max does not exceed the order point.
	if report.Skipped != 1 {
		t.Errorf("expected 1 skipped pair, got %d", report.Skipped)
	}
	if len(report.Points) != 11 {
		t.Fatalf("expected 11 points, got %d", len(report.Points))
	}
	if got := testutil.ToFloat64(m.SweepPoints); got != 11 {
		t.Errorf("expected 11 sweep points counted, got %v", got)
	}

	for i := 1; i < len(report.Points); i++ {
		prev, cur := report.Points[i-1], report.Points[i]
		c := prev.Totals.TotalCost.Cmp(cur.Totals.TotalCost)
		if c > 0 || (c == 0 && prev.OrderPoint > cur.OrderPoint) {
			t.Errorf("points %d and %d are out of order: %+v then %+v", i-1, i, prev, cur)
		}
	}

	for _, p := range report.Points {
		if p.MaxInventory <= p.OrderPoint {
			t.Errorf("invalid pair evaluated: %+v", p)
		}
		if p.OrderPoint == 2 && p.MaxInventory == 4 && p.Totals.TotalCost.String() != "450" {
			t.Errorf("reference policy should cost 450, got %s", p.Totals.TotalCost)
		}
	}

	best, ok := report.Best()
	if !ok || !best.Totals.TotalCost.Equal(report.Points[0].Totals.TotalCost) {
		t.Errorf("Best() should return the first point, got %+v", best)
	}
}

func TestSweep_MatchesSingleRuns(t *testing.T) {
	r, _ := newTestRunner()
	sc := scenario.Reference()

	report, err := r.Sweep(context.Background(), SurfaceCLI, sc, SweepRequest{OrderPoints: []int{0, 1}, MaxLevels: []int{5}})
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range report.Points {
		single := sc
		single.OrderPoint, single.MaxInventory = p.OrderPoint, p.MaxInventory
		run, err := r.Run(context.Background(), SurfaceCLI, single)
		if err != nil {
			t.Fatal(err)
		}
		if !run.Result.Totals.TotalCost.Equal(p.Totals.TotalCost) {
			t.Errorf("op=%d max=%d: sweep cost %s, single run cost %s", p.OrderPoint, p.MaxInventory, p.Totals.TotalCost, run.Result.Totals.TotalCost)
		}
	}
}

func TestSweep_Rejections(t *testing.T) {
	r, _ := newTestRunner()

	tests := []struct {
		name string
		sc   func() scenario.Scenario
		req  SweepRequest
	}{
		{"NoValidPairs", scenario.Reference, SweepRequest{OrderPoints: []int{5}, MaxLevels: []int{2, 5}}},
		{"TooLarge", scenario.Reference, SweepRequest{OrderPoints: seq(0, 60), MaxLevels: seq(61, 60)}},
		{"Empty", scenario.Reference, SweepRequest{}},
		{"BadDigits", func() scenario.Scenario {
			sc := scenario.Reference()
			sc.DemandDigits = []int{0}
			return sc
		}, SweepRequest{OrderPoints: []int{1}, MaxLevels: []int{4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Sweep(context.Background(), SurfaceCLI, tt.sc(), tt.req); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSweep_OversizedRequestStopsAtLimit(t *testing.T) {
	r, _ := newTestRunner()
	req := SweepRequest{OrderPoints: seq(0, 4000), MaxLevels: seq(5000, 4000)}

	_, err := r.Sweep(context.Background(), SurfaceHTTP, scenario.Reference(), req)
	if !errors.Is(err, ErrInvalidSweep) {
		t.Fatalf("expected ErrInvalidSweep, got %v", err)
	}

	// Collecting up to the limit takes a handful of slice growths; listing all 16M pairs
	// first would take dozens.
	allocs := testing.AllocsPerRun(3, func() {
		_, _ = r.Sweep(context.Background(), SurfaceHTTP, scenario.Reference(), req)
	})
	if allocs > 100 {
		t.Errorf("expected the sweep to stop at the limit, got %.0f allocations", allocs)
	}
}

func TestSweep_ExactlyAtLimit(t *testing.T) {
	r, _ := newTestRunner()

	report, err := r.Sweep(context.Background(), SurfaceCLI, scenario.Reference(), SweepRequest{
		OrderPoints: seq(0, 50),
		MaxLevels:   seq(50, 50),
	})
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if len(report.Points) != MaxSweepPoints {
		t.Errorf("expected %d points, got %d", MaxSweepPoints, len(report.Points))
	}
}

func TestSweep_InvalidIsSentinel(t *testing.T) {
	r, _ := newTestRunner()

	_, err := r.Sweep(context.Background(), SurfaceCLI, scenario.Reference(), SweepRequest{OrderPoints: []int{3}, MaxLevels: []int{3}})
	if !errors.Is(err, ErrInvalidSweep) {
		t.Errorf("expected ErrInvalidSweep, got %v", err)
	}
}

func seq(first, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = first + i
	}
	return out
}

func TestSweep_CancelledContext(t *testing.T) {
	r, _ := newTestRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Sweep(ctx, SurfaceCLI, scenario.Reference(), SweepRequest{OrderPoints: []int{1, 2}, MaxLevels: []int{4, 5}})
	if err == nil {
		t.Error("expected cancellation error")
	}
}
