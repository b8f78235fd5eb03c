package visuals

import (
	"fmt"
	"math"
	"strings"

	"invsim/internal/simulation"
)

// maxPoints is where Mermaid's xychart starts overlapping its axis labels.
const maxPoints = 60

// InventoryChart creates a Mermaid xychart-beta with beginning and ending inventory per week,
// plus the order point and maximum level as flat reference lines.
func InventoryChart(res simulation.Result, orderPoint, maxInventory, scale int) string {
	if len(res.Weeks) == 0 {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}

	var labels []string
	var beginning []string
	var ending []string
	var orderPoints []string
	var maxLevels []string

	step := subsampleRate(len(res.Weeks))
	maxY := maxInventory
	for i, w := range res.Weeks {
		if w.BeginningInventory > maxY {
			maxY = w.BeginningInventory
		}
		if i%step != 0 && i != len(res.Weeks)-1 {
			continue
		}
		labels = append(labels, fmt.Sprintf("%d", w.Week))
		beginning = append(beginning, fmt.Sprintf("%d", w.BeginningInventory*scale))
		ending = append(ending, fmt.Sprintf("%d", w.EndingInventory*scale))
		orderPoints = append(orderPoints, fmt.Sprintf("%d", orderPoint*scale))
		maxLevels = append(maxLevels, fmt.Sprintf("%d", maxInventory*scale))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Inventory Level by Week\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Units\" 0 --> %d\n", int(math.Ceil(float64(maxY*scale)*1.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(beginning, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(ending, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(orderPoints, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(maxLevels, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// ShortageChart creates a Mermaid bar chart of the shortage cost incurred each week. Runs
// without any shortage produce no chart.
func ShortageChart(res simulation.Result) string {
	if len(res.Weeks) == 0 || res.Totals.ShortageUnits == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0.0

	step := subsampleRate(len(res.Weeks))
	for i, w := range res.Weeks {
		cost := w.ShortageCost.InexactFloat64()
		if cost > maxVal {
			maxVal = cost
		}
		if i%step != 0 && i != len(res.Weeks)-1 {
			continue
		}
		labels = append(labels, fmt.Sprintf("%d", w.Week))
		values = append(values, w.ShortageCost.StringFixed(2))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Shortage Cost by Week\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Cost\" 0 --> %d\n", int(math.Ceil(maxVal*1.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// Charts joins every non-empty chart of a run.
func Charts(res simulation.Result, orderPoint, maxInventory, scale int) string {
	var parts []string
	for _, c := range []string{
		InventoryChart(res, orderPoint, maxInventory, scale),
		ShortageChart(res),
	} {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "\n\n")
}

func subsampleRate(n int) int {
	if n <= maxPoints {
		return 1
	}
	return int(math.Ceil(float64(n) / maxPoints))
}
