package simulation_test

import (
	"bytes"
	"encoding/csv"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"invsim/internal/simulation"

	"github.com/shopspring/decimal"
)

var update = flag.Bool("update", false, "update golden files")

func TestTextbookLedger_Golden(t *testing.T) {
	// 1. Distributions from the classic calendar wholesaler example
	demand, err := simulation.NewDistribution("demand", simulation.Sequential(0, 4), []float64{0.25, 0.25, 0.25, 0.25})
	if err != nil {
		t.Fatalf("Failed to build demand distribution: %v", err)
	}
	leadTime, err := simulation.NewDistribution("lead time", simulation.Sequential(2, 3), []float64{1.0 / 3, 1.0 / 3, 1.0 / 3})
	if err != nil {
		t.Fatalf("Failed to build lead time distribution: %v", err)
	}

	// 2. Run
	sim, err := simulation.NewSimulator(simulation.Config{
		Params: simulation.Params{
			InitialInventory: 3,
			OrderPoint:       2,
			MaxInventory:     4,
			Weeks:            20,
			ShortageCost:     decimal.NewFromInt(10),
			OrderCost:        decimal.NewFromInt(50),
		},
		Demand:         demand,
		LeadTime:       leadTime,
		DemandDigits:   []int{31, 70, 53, 86, 32, 78, 26, 64, 45, 12, 99, 52, 43, 84, 38, 40, 19, 87, 83, 73},
		LeadTimeDigits: []int{29, 83, 58, 41, 13},
	})
	if err != nil {
		t.Fatalf("Failed to build simulator: %v", err)
	}
	result := sim.Run()

	// 3. Serialize the flat ledger
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(simulation.Columns); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteAll(result.Rows(1)); err != nil {
		t.Fatalf("Failed to write ledger: %v", err)
	}
	actual := buf.Bytes()

	goldenPath := filepath.Join("..", "testdata", "golden", "textbook_ledger.csv")

	if *update {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
			t.Fatalf("Failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, actual, 0644); err != nil {
			t.Fatalf("Failed to write golden file: %v", err)
		}
		t.Logf("Golden file updated at %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file not found at %s. Run tests with -update flag to generate it.", goldenPath)
		}
		t.Fatalf("Failed to read golden file: %v", err)
	}

	if !bytes.Equal(expected, actual) {
		t.Errorf("Mismatch between actual ledger and golden file.")
		tmpPath := goldenPath + ".actual"
		os.WriteFile(tmpPath, actual, 0644)
		t.Errorf("Wrote actual output to %s for comparison. If the change was intentional, re-run with 'go test ./... -update'", tmpPath)
	}
}
