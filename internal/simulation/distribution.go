package simulation

import (
	"fmt"
	"math"
)

const (
	// MinDigit and MaxDigit bound the two-digit random numbers (00 is read as 100).
	MinDigit = 1
	MaxDigit = 100

	// sumTolerance is how far a probability vector may drift from 1 and still be accepted.
	sumTolerance = 1e-6
)

// CategoryRange assigns the digits Start..End (inclusive) to one category.
type CategoryRange struct {
	Category    int     `json:"category"`
	Probability float64 `json:"probability"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
}

// Empty reports whether no digit maps to this category. Zero-probability categories can
// end up with Start == End+1.
func (r CategoryRange) Empty() bool {
	return r.End < r.Start
}

// Contains reports whether digit falls inside the range, both ends inclusive.
func (r CategoryRange) Contains(digit int) bool {
	return r.Start <= digit && digit <= r.End
}

func (r CategoryRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Distribution is an ordered, gap-free partition of 1..100 into categories.
type Distribution struct {
	Name   string          `json:"name,omitempty"`
	Ranges []CategoryRange `json:"ranges"`
}

// BuildRanges turns probabilities into contiguous digit ranges. The category of the i-th
// range is i. Every upper bound except the last is the cumulative probability times 100
// rounded up; the last is pinned to 100. Values within 1e-9 of an integer are treated as
// that integer, so five categories of 0.2 give 1-20, 21-40, 41-60, 61-80, 81-100.
func BuildRanges(probabilities []float64) ([]CategoryRange, error) {
	if len(probabilities) == 0 {
		return nil, &DistributionError{Reason: "no probabilities"}
	}

	sum := 0.0
	for i, p := range probabilities {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return nil, &DistributionError{Reason: fmt.Sprintf("probability %d is %v", i, p)}
		}
		sum += p
	}
	if math.Abs(sum-1) > sumTolerance {
		return nil, &DistributionError{Reason: fmt.Sprintf("probabilities sum to %.6f, want 1", sum)}
	}

	ranges := make([]CategoryRange, len(probabilities))
	cumulative := 0.0
	start := MinDigit
	for i, p := range probabilities {
		cumulative += p

		end := MaxDigit
		if i < len(probabilities)-1 {
			end = ceilDigit(cumulative)
		}

		ranges[i] = CategoryRange{
			Category:    i,
			Probability: p,
			Start:       start,
			End:         end,
		}
		start = end + 1
	}

	return ranges, nil
}

// ceilDigit scales a cumulative probability to 1..100 and rounds up. The product is snapped
// to nine decimals first so 0.6000000000000001 lands on 60, not 61.
func ceilDigit(cumulative float64) int {
	scaled := math.Round(cumulative*MaxDigit*1e9) / 1e9
	end := int(math.Ceil(scaled))
	if end > MaxDigit {
		end = MaxDigit
	}
	return end
}

// NewDistribution builds the ranges for probabilities and labels them with categories,
// position by position.
func NewDistribution(name string, categories []int, probabilities []float64) (Distribution, error) {
	if len(categories) != len(probabilities) {
		return Distribution{}, &DistributionError{
			Name:   name,
			Reason: fmt.Sprintf("%d categories for %d probabilities", len(categories), len(probabilities)),
		}
	}

	ranges, err := BuildRanges(probabilities)
	if err != nil {
		if de, ok := err.(*DistributionError); ok {
			de.Name = name
		}
		return Distribution{}, err
	}
	for i := range ranges {
		ranges[i].Category = categories[i]
	}

	return Distribution{Name: name, Ranges: ranges}, nil
}

// Sequential returns n consecutive category values starting at first.
func Sequential(first, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = first + i
	}
	return out
}

// Resolve returns the category of the first range containing digit. ok is false when no
// range matches, which only happens for digits outside 1..100 or a malformed distribution.
func (d Distribution) Resolve(digit int) (category int, ok bool) {
	for _, r := range d.Ranges {
		if r.Contains(digit) {
			return r.Category, true
		}
	}
	return 0, false
}

// Validate checks that the ranges start at 1, end at 100 and follow each other without
// gaps or overlaps.
func (d Distribution) Validate() error {
	if len(d.Ranges) == 0 {
		return &DistributionError{Name: d.Name, Reason: "no ranges"}
	}

	next := MinDigit
	for i, r := range d.Ranges {
		if r.Start != next {
			return &DistributionError{Name: d.Name, Reason: fmt.Sprintf("range %d starts at %d, want %d", i, r.Start, next)}
		}
		if r.End < r.Start-1 {
			return &DistributionError{Name: d.Name, Reason: fmt.Sprintf("range %d ends at %d before it starts at %d", i, r.End, r.Start)}
		}
		next = r.End + 1
	}

	if last := d.Ranges[len(d.Ranges)-1]; last.End != MaxDigit {
		return &DistributionError{Name: d.Name, Reason: fmt.Sprintf("ranges end at %d, want %d", last.End, MaxDigit)}
	}
	return nil
}

// Unreachable lists the categories no digit can select.
func (d Distribution) Unreachable() []int {
	var out []int
	for _, r := range d.Ranges {
		if r.Empty() {
			out = append(out, r.Category)
		}
	}
	return out
}
