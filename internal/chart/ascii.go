package chart

import "github.com/guptarohit/asciigraph"

// Plot renders a series as a terminal graph.
func Plot(data []float64, caption string, width, height int) string {
	if len(data) == 0 {
		return "(no data)"
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
