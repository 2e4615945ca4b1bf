package graph

import (
	"math/rand"
	"testing"

	"github.com/privgraph/graphanon/pkg/label"
)

func TestNewLabelled_AlphabetBounds(t *testing.T) {
	if _, err := NewLabelled(5, 0); err == nil {
		t.Errorf("Expected an error for an empty alphabet")
	}
	if _, err := NewLabelled(5, label.MaxAlphabet+1); err == nil {
		t.Errorf("Expected an error for an alphabet beyond %d labels", label.MaxAlphabet)
	}
	lg, err := NewLabelled(5, 3)
	if err != nil {
		t.Fatalf("Expected a 3-label graph to construct, got %v", err)
	}
	if lg.Alphabet() != 3 {
		t.Errorf("Expected alphabet 3, got %d", lg.Alphabet())
	}
}

func TestSetLabel_RejectsOutOfAlphabet(t *testing.T) {
	lg, _ := NewLabelled(4, 2)
	if err := lg.SetLabel(0, 2); err == nil {
		t.Errorf("Expected label 2 to be rejected for a 2-label alphabet")
	}
	if err := lg.SetLabel(0, 1); err != nil {
		t.Errorf("Expected label 1 to be accepted, got %v", err)
	}
	if lg.Label(0) != 1 {
		t.Errorf("Expected label 1, got %d", lg.Label(0))
	}
}

func TestEvenlyDistributeLabels_BalancedCounts(t *testing.T) {
	lg, _ := NewLabelled(10, 3)
	lg.WithRand(rand.New(rand.NewSource(42)))
	lg.EvenlyDistributeLabels()

	counts := make([]int, 3)
	for v := 0; v < 10; v++ {
		counts[lg.Label(v)]++
	}
	for l, c := range counts {
		if c < 3 || c > 4 {
			t.Errorf("Expected 3 or 4 vertices with label %d, got %d", l, c)
		}
	}
}

func TestGlobalDistribution_MatchesLabels(t *testing.T) {
	lg, _ := NewLabelled(4, 2)
	lg.SetLabel(0, 1)
	lg.SetLabel(1, 1)
	lg.SetLabel(2, 1)

	d := lg.GlobalDistribution()
	if got := d.Frequency(1); got != 0.75 {
		t.Errorf("Expected frequency 0.75 for label 1, got %v", got)
	}
	if got := d.Frequency(0); got != 0.25 {
		t.Errorf("Expected frequency 0.25 for label 0, got %v", got)
	}
}

func TestNeighbourhoodDistribution_IncludesOwnLabel(t *testing.T) {
	lg, _ := NewLabelled(3, 2)
	lg.SetLabel(0, 0)
	lg.SetLabel(1, 1)
	lg.SetLabel(2, 1)
	lg.AddEdge(0, 1)
	lg.AddEdge(0, 2)

	// Vertex 0's closed neighbourhood carries labels {0, 1, 1}.
	d := lg.NeighbourhoodDistribution(0)
	if got := d.Frequency(0); got < 0.333 || got > 0.334 {
		t.Errorf("Expected frequency 1/3 for label 0, got %v", got)
	}
	if got := d.Frequency(1); got < 0.666 || got > 0.667 {
		t.Errorf("Expected frequency 2/3 for label 1, got %v", got)
	}

	// Vertex 1's closed neighbourhood is itself plus vertex 0.
	d1 := lg.NeighbourhoodDistribution(1)
	if got := d1.Frequency(1); got != 0.5 {
		t.Errorf("Expected frequency 0.5 for label 1, got %v", got)
	}
}
