package label

import "math"

// MaxAlphabet is the largest label alphabet the deficiency bitmask can
// represent. Callers constructing labelled graphs must enforce this bound.
const MaxAlphabet = 32

// Incomparable is the sentinel distance returned when two distributions
// have different lengths and cannot be compared.
var Incomparable = math.Inf(1)

// Distribution is a histogram over a finite label alphabet. Relative
// frequencies are derived from the absolute counts on demand.
type Distribution struct {
	frequencies []int
	sum         int
}

// NewDistribution creates an all-zero distribution over n labels.
func NewDistribution(n int) *Distribution {
	return &Distribution{frequencies: make([]int, n)}
}

// FromCounts creates a distribution from explicit per-label counts.
func FromCounts(counts []int) *Distribution {
	d := &Distribution{frequencies: make([]int, len(counts))}
	copy(d.frequencies, counts)
	for _, c := range counts {
		d.sum += c
	}
	return d
}

// Len returns the size of the label alphabet.
func (d *Distribution) Len() int {
	return len(d.frequencies)
}

// Frequency returns the relative frequency of label i, or 0 if the
// distribution is empty or i is out of bounds.
func (d *Distribution) Frequency(i int) float64 {
	if i < 0 || i >= len(d.frequencies) || d.sum == 0 {
		return 0
	}
	return float64(d.frequencies[i]) / float64(d.sum)
}

// Distance returns the sum of absolute differences in relative frequency
// between d and other. The last label is excluded: its frequency is linearly
// determined by the others, and including it would double-count every
// discrepancy. Returns Incomparable if the lengths differ.
func (d *Distribution) Distance(other *Distribution) float64 {
	if other == nil || len(d.frequencies) != other.Len() {
		return Incomparable
	}
	var distance float64
	for i := 0; i < len(d.frequencies)-1; i++ {
		distance += math.Abs(d.Frequency(i) - other.Frequency(i))
	}
	return distance
}

// Deficiencies compares d against other and returns a bitmask of the labels
// in which d is under-represented (bit i set means label i deficient). If
// the total absolute difference across all labels is below alpha, d is
// already proximal to other and 0 is returned.
func (d *Distribution) Deficiencies(other *Distribution, alpha float64) uint32 {
	var deficiencies uint32
	var difference float64

	for i := 0; i < len(d.frequencies); i++ {
		diff := other.Frequency(i) - d.Frequency(i)
		if diff > 0 {
			deficiencies |= 1 << uint(i)
			difference += diff
		} else {
			difference -= diff
		}
	}

	if difference < alpha {
		return 0
	}
	return deficiencies
}
