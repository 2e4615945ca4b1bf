package label

import (
	"math"
	"testing"
)

func TestDistance_ConcreteVectors(t *testing.T) {
	// Frequencies {7, 2, 1} vs {2, 4, 4}: the last label is excluded,
	// so the distance is |0.7-0.2| + |0.2-0.4| = 0.7.
	a := FromCounts([]int{7, 2, 1})
	b := FromCounts([]int{2, 4, 4})

	got := a.Distance(b)
	if math.Abs(got-0.7) > 1e-9 {
		t.Errorf("Expected distance 0.7, got %v", got)
	}
}

func TestDistance_SingleLabel(t *testing.T) {
	// With one label there is nothing to compare once the
	// dependent coordinate is dropped.
	a := FromCounts([]int{5})
	b := FromCounts([]int{9})

	if got := a.Distance(b); got != 0 {
		t.Errorf("Expected distance 0 for single-label distributions, got %v", got)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := FromCounts([]int{3, 1, 6})
	b := FromCounts([]int{2, 2, 2})

	if a.Distance(b) != b.Distance(a) {
		t.Errorf("Expected symmetric distance, got %v and %v", a.Distance(b), b.Distance(a))
	}
}

func TestDistance_SelfIsZero(t *testing.T) {
	a := FromCounts([]int{4, 4, 2})

	if got := a.Distance(a); got != 0 {
		t.Errorf("Expected zero self-distance, got %v", got)
	}
}

func TestDistance_MismatchedAlphabets(t *testing.T) {
	a := FromCounts([]int{1, 2})
	b := FromCounts([]int{1, 2, 3})

	if got := a.Distance(b); !math.IsInf(got, 1) {
		t.Errorf("Expected Incomparable for mismatched lengths, got %v", got)
	}
	if got := b.Distance(a); !math.IsInf(got, 1) {
		t.Errorf("Expected Incomparable in both directions, got %v", got)
	}
}

func TestFrequency_EmptyAndOutOfRange(t *testing.T) {
	empty := NewDistribution(3)
	if got := empty.Frequency(0); got != 0 {
		t.Errorf("Expected zero frequency on empty distribution, got %v", got)
	}

	d := FromCounts([]int{1, 3})
	if got := d.Frequency(-1); got != 0 {
		t.Errorf("Expected zero frequency for negative label, got %v", got)
	}
	if got := d.Frequency(5); got != 0 {
		t.Errorf("Expected zero frequency past the alphabet, got %v", got)
	}
	if got := d.Frequency(1); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Expected frequency 0.75, got %v", got)
	}
}

func TestDeficiencies_ProximalPairIsZero(t *testing.T) {
	a := FromCounts([]int{5, 5})
	b := FromCounts([]int{5, 5})

	if mask := a.Deficiencies(b, 0.1); mask != 0 {
		t.Errorf("Expected no deficiencies for identical distributions, got mask %b", mask)
	}
}

func TestDeficiencies_FlagsUnderrepresentedLabels(t *testing.T) {
	// Neighbourhood {4, 0, 0} against global {4, 4, 4}: labels 1 and 2
	// are underrepresented and the total gap exceeds alpha.
	neighbourhood := FromCounts([]int{4, 0, 0})
	global := FromCounts([]int{4, 4, 4})

	mask := neighbourhood.Deficiencies(global, 0.2)
	if mask != 0b110 {
		t.Errorf("Expected deficiency mask 110, got %b", mask)
	}
}

func TestDeficiencies_WithinAlphaIsZero(t *testing.T) {
	neighbourhood := FromCounts([]int{10, 9, 10})
	global := FromCounts([]int{10, 10, 10})

	if mask := neighbourhood.Deficiencies(global, 0.5); mask != 0 {
		t.Errorf("Expected zero mask when the gap is within alpha, got %b", mask)
	}
}
