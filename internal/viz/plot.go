package viz

import "github.com/guptarohit/asciigraph"

// TimeSeries plots one state component against sample index.
func TimeSeries(series []float64, caption string, width, height int) string {
	if len(series) < 2 {
		return "(not enough samples to plot)"
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// Overlay plots several trajectories of the same component in one graph,
// used by the method comparison.
func Overlay(series [][]float64, caption string, width, height int) string {
	plottable := make([][]float64, 0, len(series))
	for _, s := range series {
		if len(s) >= 2 {
			plottable = append(plottable, s)
		}
	}
	if len(plottable) == 0 {
		return "(not enough samples to plot)"
	}
	return asciigraph.PlotMany(plottable,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(
			asciigraph.Red,
			asciigraph.Yellow,
			asciigraph.Green,
			asciigraph.Blue,
		),
	)
}
