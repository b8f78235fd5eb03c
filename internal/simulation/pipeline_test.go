package simulation

import (
	"reflect"
	"testing"
)

func TestAdvanceWeek(t *testing.T) {
	tests := []struct {
		name              string
		outstanding       []OutstandingOrder
		expectedArrived   int
		expectedRemaining []OutstandingOrder
	}{
		{"Empty", nil, 0, []OutstandingOrder{}},
		{"DueNow", []OutstandingOrder{{Quantity: 2, WeeksRemaining: 0}}, 2, []OutstandingOrder{}},
		{"InTransit", []OutstandingOrder{{Quantity: 2, WeeksRemaining: 3}}, 0, []OutstandingOrder{{Quantity: 2, WeeksRemaining: 2}}},
		{
			"Mixed",
			[]OutstandingOrder{{Quantity: 1, WeeksRemaining: 0}, {Quantity: 4, WeeksRemaining: 1}, {Quantity: 3, WeeksRemaining: 0}},
			4,
			[]OutstandingOrder{{Quantity: 4, WeeksRemaining: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arrived, remaining := AdvanceWeek(tt.outstanding)
			if arrived != tt.expectedArrived {
				t.Errorf("expected arrived %d, got %d", tt.expectedArrived, arrived)
			}
			if !reflect.DeepEqual(remaining, tt.expectedRemaining) {
				t.Errorf("expected remaining %v, got %v", tt.expectedRemaining, remaining)
			}
		})
	}
}

func TestAdvanceWeek_DoesNotMutateInput(t *testing.T) {
	in := []OutstandingOrder{{Quantity: 2, WeeksRemaining: 2}}
	AdvanceWeek(in)
	if in[0].WeeksRemaining != 2 {
		t.Errorf("input was aged in place: %v", in)
	}
}

func TestAdvanceWeek_OrderIndependent(t *testing.T) {
	a := []OutstandingOrder{{Quantity: 1, WeeksRemaining: 0}, {Quantity: 5, WeeksRemaining: 2}, {Quantity: 3, WeeksRemaining: 0}}
	b := []OutstandingOrder{a[2], a[1], a[0]}

	arrivedA, remainingA := AdvanceWeek(a)
	arrivedB, remainingB := AdvanceWeek(b)
	if arrivedA != arrivedB {
		t.Errorf("arrival depends on order: %d vs %d", arrivedA, arrivedB)
	}
	if pipelineQuantity(remainingA) != pipelineQuantity(remainingB) {
		t.Errorf("remaining quantity depends on order: %v vs %v", remainingA, remainingB)
	}
}

func TestAdvanceWeek_LeadTimeMeansArrivalAfterThatManyFullWeeks(t *testing.T) {
	pipeline := []OutstandingOrder{{Quantity: 2, WeeksRemaining: 2}}

	for week := 1; week <= 2; week++ {
		arrived, rest := AdvanceWeek(pipeline)
		if arrived != 0 {
			t.Fatalf("week %d: order arrived early", week)
		}
		pipeline = rest
	}

	arrived, rest := AdvanceWeek(pipeline)
	if arrived != 2 || len(rest) != 0 {
		t.Errorf("third advance: expected arrival of 2 and empty pipeline, got %d and %v", arrived, rest)
	}
}
