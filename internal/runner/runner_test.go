package runner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"invsim/internal/metrics"
	"invsim/internal/scenario"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestRunner() (*Runner, *metrics.Metrics) {
	m := metrics.New()
	return New(m, 52, 4), m
}

func TestRun_Reference(t *testing.T) {
	r, m := newTestRunner()

	report, err := r.Run(context.Background(), SurfaceCLI, scenario.Reference())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.RunID == "" {
		t.Error("expected a run id")
	}
	if len(report.Result.Weeks) != 20 {
		t.Fatalf("expected 20 weeks, got %d", len(report.Result.Weeks))
	}
	if got := report.Result.Totals.TotalCost.String(); got != "450" {
		t.Errorf("expected total cost 450, got %s", got)
	}
	if report.Scale() != 1000 {
		t.Errorf("expected scale 1000, got %d", report.Scale())
	}
	if len(report.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", report.Warnings)
	}
	if report.Demand.Ranges[0].String() != "1-25" {
		t.Errorf("unexpected demand ranges %+v", report.Demand.Ranges)
	}

	if got := testutil.ToFloat64(m.RunsTotal.WithLabelValues(SurfaceCLI, "ok")); got != 1 {
		t.Errorf("expected 1 ok run, got %v", got)
	}
	if got := testutil.ToFloat64(m.OrdersPlaced); got != 5 {
		t.Errorf("expected 5 orders counted, got %v", got)
	}
	if got := testutil.ToFloat64(m.ShortageUnits); got != 20 {
		t.Errorf("expected 20 shortage units counted, got %v", got)
	}
}

func TestRun_DistinctRunIDs(t *testing.T) {
	r, _ := newTestRunner()

	a, err := r.Run(context.Background(), SurfaceCLI, scenario.Reference())
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Run(context.Background(), SurfaceCLI, scenario.Reference())
	if err != nil {
		t.Fatal(err)
	}
	if a.RunID == b.RunID {
		t.Error("expected each run to get its own id")
	}
	if !a.Result.Totals.TotalCost.Equal(b.Result.Totals.TotalCost) {
		t.Error("identical inputs must give identical totals")
	}
}

func TestRun_RejectsInvalidScenario(t *testing.T) {
	r, m := newTestRunner()

	sc := scenario.Reference()
	sc.MaxInventory = sc.OrderPoint

	report, err := r.Run(context.Background(), SurfaceHTTP, sc)
	if err == nil {
		t.Fatal("expected rejection")
	}
	if report != nil {
		t.Error("a rejected scenario must not produce a report")
	}
	var verr *scenario.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected *scenario.ValidationError, got %T", err)
	}
	if got := testutil.ToFloat64(m.RunsTotal.WithLabelValues(SurfaceHTTP, "rejected")); got != 1 {
		t.Errorf("expected 1 rejected run, got %v", got)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	r, _ := newTestRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Run(ctx, SurfaceCLI, scenario.Reference()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRun_Warnings(t *testing.T) {
	r, m := newTestRunner()

	sc := scenario.Reference()
	sc.DemandDigits = sc.DemandDigits[:10]
	sc.LeadTimeDigits = sc.LeadTimeDigits[:1]
	sc.Demand.Probabilities = []float64{0.5, 0, 0.5}

	report, err := r.Run(context.Background(), SurfaceCLI, sc)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	joined := strings.Join(report.Warnings, "\n")
	for _, want := range []string{"[1]", "weeks 11-20", "Lead time digits ran out"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected a warning mentioning %q, got:\n%s", want, joined)
		}
	}
	if report.Result.Totals.DeferredOrders == 0 {
		t.Error("expected deferred orders")
	}
	if got := testutil.ToFloat64(m.DeferredOrders); got != float64(report.Result.Totals.DeferredOrders) {
		t.Errorf("expected deferred counter %d, got %v", report.Result.Totals.DeferredOrders, got)
	}
}

func TestRanges(t *testing.T) {
	r, _ := newTestRunner()

	demand, leadTime, err := r.Ranges(scenario.Reference())
	if err != nil {
		t.Fatalf("Ranges() error = %v", err)
	}
	if len(demand.Ranges) != 4 || len(leadTime.Ranges) != 3 {
		t.Fatalf("unexpected range counts %d/%d", len(demand.Ranges), len(leadTime.Ranges))
	}
	if leadTime.Ranges[2].String() != "68-100" {
		t.Errorf("expected last lead time range 68-100, got %s", leadTime.Ranges[2])
	}
}
