package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mechdyn/internal/sweep"
)

// PlotSeries charts one quantity of a sweep.
func PlotSeries(res *sweep.Result, name string, width, height int) (string, error) {
	col, ok := res.Series[name]
	if !ok {
		return "", fmt.Errorf("viz: sweep has no series %q", name)
	}
	if len(col) == 0 {
		return "", fmt.Errorf("viz: series %q is empty", name)
	}
	caption := fmt.Sprintf("%s over %s[%d] in [%g, %g]",
		name, res.Joint, res.Coord, res.Values[0], res.Values[len(res.Values)-1])
	return asciigraph.Plot(col,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption)), nil
}

// PlotResult charts every quantity of a sweep, stacked.
func PlotResult(res *sweep.Result, width, height int) string {
	var b strings.Builder
	for i, name := range res.Names {
		if i > 0 {
			b.WriteString("\n\n")
		}
		chart, err := PlotSeries(res, name, width, height)
		if err != nil {
			continue
		}
		b.WriteString(chart)
	}
	return b.String()
}
