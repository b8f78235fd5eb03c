package simulation

// OutstandingOrder is a replenishment order that has been placed but not yet received.
type OutstandingOrder struct {
	Quantity       int `json:"quantity"`
	WeeksRemaining int `json:"weeks_remaining"`
}

// AdvanceWeek ages the pipeline by one week. Orders with no weeks remaining arrive and
// their quantity is returned; every other order comes back one week closer. The input
// slice is left untouched.
func AdvanceWeek(outstanding []OutstandingOrder) (arrived int, remaining []OutstandingOrder) {
	remaining = make([]OutstandingOrder, 0, len(outstanding))
	for _, o := range outstanding {
		if o.WeeksRemaining == 0 {
			arrived += o.Quantity
			continue
		}
		remaining = append(remaining, OutstandingOrder{
			Quantity:       o.Quantity,
			WeeksRemaining: o.WeeksRemaining - 1,
		})
	}
	return arrived, remaining
}

func pipelineQuantity(outstanding []OutstandingOrder) int {
	total := 0
	for _, o := range outstanding {
		total += o.Quantity
	}
	return total
}
