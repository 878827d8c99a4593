package render

import (
	"fmt"
	"io"

	"github.com/banshee-data/seriesprep/internal/monitoring"
	"github.com/banshee-data/seriesprep/series"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// echartsGap is the value echarts treats as a missing sample.
const echartsGap = "-"

func cell(f float64) interface{} {
	if !finite(f) {
		return echartsGap
	}
	return f
}

// LineData pairs xs and ys as [x, y] samples for a value-axis line chart.
// Non-finite samples become gaps.
func LineData(xs, ys []float64) []opts.LineData {
	n := min(len(xs), len(ys))
	out := make([]opts.LineData, n)
	for i := 0; i < n; i++ {
		out[i] = opts.LineData{Value: []interface{}{cell(xs[i]), cell(ys[i])}}
	}
	return out
}

// SurfaceData flattens a surface grid into [x, y, z] samples, column by
// column.
func SurfaceData(g *SurfaceGrid) []opts.Chart3DData {
	c, r := g.Dims()
	out := make([]opts.Chart3DData, 0, c*r)
	for i := 0; i < c; i++ {
		for j := 0; j < r; j++ {
			out = append(out, opts.Chart3DData{Value: []interface{}{g.X(i), g.Y(j), cell(g.Z(i, j))}})
		}
	}
	return out
}

// PathData zips three coordinate slices into [x, y, z] samples.
func PathData(xs, ys, zs []float64) []opts.Chart3DData {
	n := min(len(xs), len(ys), len(zs))
	out := make([]opts.Chart3DData, n)
	for i := 0; i < n; i++ {
		out[i] = opts.Chart3DData{Value: []interface{}{cell(xs[i]), cell(ys[i]), cell(zs[i])}}
	}
	return out
}

// Preview writes an HTML page with one chart for the 2D records and one per
// 3D record. Records that cannot be charted are logged and skipped.
func Preview(w io.Writer, title string, recs []series.Record) error {
	page := components.NewPage()
	page.PageTitle = title

	colors := seriesColors(len(recs))
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("series=%d", len(recs))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "y"}),
	)
	lines := 0

	var extra []components.Charter
	for i, rec := range recs {
		switch z := rec.Z.(type) {
		case nil:
			xs, ys, err := Coordinates(rec)
			if err != nil {
				monitoring.Logf("render: skipping %v", err)
				continue
			}
			line.AddSeries(label(rec), LineData(xs, ys),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(colors[i])}))
			lines++
		case series.Surface:
			g, err := NewSurfaceGrid(rec)
			if err != nil {
				monitoring.Logf("render: skipping surface: %v", err)
				continue
			}
			surf := charts.NewSurface3D()
			surf.SetGlobalOptions(
				charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "600px"}),
				charts.WithTitleOpts(opts.Title{Title: label(rec)}),
			)
			surf.AddSeries(label(rec), SurfaceData(g))
			extra = append(extra, surf)
		default:
			xs, ys, err := Coordinates(rec)
			if err != nil {
				monitoring.Logf("render: skipping %v", err)
				continue
			}
			zs, err := series.Numeric(z)
			if err != nil {
				monitoring.Logf("render: skipping series %d z: %v", rec.Index, err)
				continue
			}
			scatter := charts.NewScatter3D()
			scatter.SetGlobalOptions(
				charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "600px"}),
				charts.WithTitleOpts(opts.Title{Title: label(rec)}),
			)
			scatter.AddSeries(label(rec), PathData(xs, ys, zs))
			extra = append(extra, scatter)
		}
	}

	if lines > 0 {
		page.AddCharts(line)
	}
	page.AddCharts(extra...)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	return nil
}
