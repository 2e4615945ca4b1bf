package output

import (
	"math"
	"testing"
)

func TestOccupancyChange_Relative(t *testing.T) {
	got := OccupancyChange(0.2, 0.3)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected a 50%% relative increase, got %v", got)
	}
}

func TestOccupancyChange_FromZero(t *testing.T) {
	if got := OccupancyChange(0, 0.4); got != 0 {
		t.Errorf("Expected 0 when starting from an edgeless graph, got %v", got)
	}
}

func TestOccupancyChange_NoChange(t *testing.T) {
	if got := OccupancyChange(0.25, 0.25); got != 0 {
		t.Errorf("Expected 0 for an unchanged graph, got %v", got)
	}
}
