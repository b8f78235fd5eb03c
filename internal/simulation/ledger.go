package simulation

import (
	"fmt"
	"strconv"
)

// Placeholder marks a cell with no value: no digit drawn, no order placed.
const Placeholder = "-"

// TotalsLabel is the week cell of the synthetic totals row.
const TotalsLabel = "Total"

// Columns is the header of the flat ledger produced by Rows.
var Columns = []string{
	"Week",
	"Beginning Inventory",
	"Demand Digit",
	"Demand",
	"Ending Inventory",
	"Shortage",
	"Shortage Cost",
	"Lead Time Digit",
	"Lead Time (weeks)",
	"Quantity Ordered",
	"Ordering Cost",
}

// quantityColumns are the Columns indexes that Rows multiplies by the scale.
var quantityColumns = []int{1, 3, 4, 5, 9}

// Header returns Columns with the display unit appended to every scaled quantity column,
// e.g. "Shortage (x1000)". With a scale of 1 it is Columns unchanged.
func Header(scale int) []string {
	header := append([]string(nil), Columns...)
	if scale <= 1 {
		return header
	}
	for _, i := range quantityColumns {
		header[i] = fmt.Sprintf("%s (x%d)", header[i], scale)
	}
	return header
}

// Rows flattens the ledger into string cells, one row per week and a trailing totals row.
// Quantities are multiplied by scale for display (1000 shows thousands as units); digits,
// lead times and costs are never scaled.
func (r Result) Rows(scale int) [][]string {
	if scale <= 0 {
		scale = 1
	}

	rows := make([][]string, 0, len(r.Weeks)+1)
	for _, w := range r.Weeks {
		orderingCost := Placeholder
		if w.QuantityOrdered != nil {
			orderingCost = w.OrderingCost.String()
		}
		rows = append(rows, []string{
			strconv.Itoa(w.Week),
			strconv.Itoa(w.BeginningInventory * scale),
			optional(w.DemandDigit, 1),
			strconv.Itoa(w.Demand * scale),
			strconv.Itoa(w.EndingInventory * scale),
			strconv.Itoa(w.Shortage * scale),
			w.ShortageCost.String(),
			optional(w.LeadTimeDigit, 1),
			optional(w.LeadTime, 1),
			optional(w.QuantityOrdered, scale),
			orderingCost,
		})
	}

	totals := make([]string, len(Columns))
	for i := range totals {
		totals[i] = Placeholder
	}
	totals[0] = TotalsLabel
	totals[5] = strconv.Itoa(r.Totals.ShortageUnits * scale)
	totals[6] = r.Totals.ShortageCost.String()
	totals[10] = r.Totals.OrderingCost.String()

	return append(rows, totals)
}

func optional(v *int, scale int) string {
	if v == nil {
		return Placeholder
	}
	return strconv.Itoa(*v * scale)
}
