package commands

import (
	"fmt"
	"strconv"
	"strings"

	"invsim/internal/scenario"
)

// loadScenario reads the scenario file, or returns the reference case when path is empty.
func loadScenario(path string) (scenario.Scenario, error) {
	if path == "" {
		return scenario.Reference(), nil
	}
	return scenario.Load(path, cfg.MaxWeeks)
}

// parseIntList reads non-negative values such as "1,2,5" or ranges such as "0-4"
// (inclusive), mixed freely.
func parseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if lo, hi, ok := strings.Cut(part, "-"); ok && lo != "" {
			from, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("invalid range %q", part)
			}
			to, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("invalid range %q", part)
			}
			if to < from {
				return nil, fmt.Errorf("range %q runs backwards", part)
			}
			for v := from; v <= to; v++ {
				out = append(out, v)
			}
			continue
		}

		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", part)
		}
		if v < 0 {
			return nil, fmt.Errorf("%d is negative", v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no values in %q", s)
	}
	return out, nil
}
