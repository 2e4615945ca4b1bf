// Package output renders anonymization run reports, to the console with
// colors and as plain data for the web API.
package output

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/privgraph/graphanon/pkg/metrics"
)

// Report summarizes one anonymization run.
type Report struct {
	Mode string `json:"mode"`

	VerticesBefore int `json:"vertices_before"`
	VerticesAfter  int `json:"vertices_after"`
	EdgesBefore    int `json:"edges_before"`
	EdgesAfter     int `json:"edges_after"`

	OccupancyBefore float64 `json:"occupancy_before"`
	OccupancyAfter  float64 `json:"occupancy_after"`
	// OccupancyChange is relative: (after - before) / before.
	OccupancyChange float64 `json:"occupancy_change"`

	Metrics *GraphMetrics `json:"metrics,omitempty"`
}

// GraphMetrics carries the optional post-run structural metrics.
type GraphMetrics struct {
	ClusteringCoefficient float64             `json:"clustering_coefficient"`
	AveragePathLength     float64             `json:"average_path_length"`
	HarmonicMean          float64             `json:"harmonic_mean"`
	SubgraphCentrality    float64             `json:"subgraph_centrality"`
	SubgraphCentralityLim int                 `json:"subgraph_centrality_limit"`
	Components            int                 `json:"components"`
	Degrees               metrics.DegreeStats `json:"degrees"`
	HopPlot               metrics.HopPlot     `json:"hop_plot"`
}

// OccupancyChange computes the relative occupancy change, 0 when the graph
// started with no edges.
func OccupancyChange(before, after float64) float64 {
	if before == 0 {
		return 0
	}
	return (after - before) / before
}

// PrintReport writes the run report to stdout with colors.
func PrintReport(r *Report) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	bold.Println("GraphAnon - Anonymization Report")
	bold.Println("================================")
	fmt.Printf("Mode: %s\n", r.Mode)

	if r.VerticesAfter != r.VerticesBefore {
		yellow.Printf("Vertices: %d -> %d\n", r.VerticesBefore, r.VerticesAfter)
	} else {
		fmt.Printf("Vertices: %d\n", r.VerticesBefore)
	}
	if r.EdgesAfter != r.EdgesBefore {
		yellow.Printf("Edges: %d -> %d\n", r.EdgesBefore, r.EdgesAfter)
	} else {
		fmt.Printf("Edges: %d\n", r.EdgesBefore)
	}

	// The occupancy triple is the headline measure: how much of the
	// complete graph the anonymization had to fill in.
	fmt.Printf("Occupancy: %.6f %.6f ", r.OccupancyBefore, r.OccupancyAfter)
	changeColor := green
	if r.OccupancyChange > 0.25 {
		changeColor = yellow
	}
	changeColor.Printf("(%+.2f%%)\n", r.OccupancyChange*100)

	if r.Metrics != nil {
		fmt.Println()
		bold.Println("Graph metrics")
		cyan.Printf("  clustering coefficient: %.6f\n", r.Metrics.ClusteringCoefficient)
		cyan.Printf("  average path length:    %.6f\n", r.Metrics.AveragePathLength)
		cyan.Printf("  harmonic mean:          %.6f\n", r.Metrics.HarmonicMean)
		cyan.Printf("  subgraph centrality:    %.6f (limit %d)\n",
			r.Metrics.SubgraphCentrality, r.Metrics.SubgraphCentralityLim)
		cyan.Printf("  components:             %d\n", r.Metrics.Components)
		cyan.Printf("  degree mean/stddev:     %.2f / %.2f (min %.0f, max %.0f)\n",
			r.Metrics.Degrees.Mean, r.Metrics.Degrees.StdDev,
			r.Metrics.Degrees.Min, r.Metrics.Degrees.Max)
	}
}
