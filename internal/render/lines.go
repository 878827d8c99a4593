// Package render adapts sliced series records to the plotting libraries:
// gonum/plot for static images and go-echarts for HTML previews.
package render

import (
	"fmt"
	"math"

	"github.com/banshee-data/seriesprep/series"
	"gonum.org/v1/plot/plotter"
)

// Segments splits paired coordinates into runs of finite points. NaN in
// either coordinate ends the current run, the same way a missing value breaks
// a drawn line. The excess of the longer slice is ignored.
func Segments(xs, ys []float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i, n := 0, min(len(xs), len(ys)); i < n; i++ {
		if !finite(xs[i]) || !finite(ys[i]) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Lines builds one plotter.Line per segment of (xs, ys).
func Lines(xs, ys []float64) ([]*plotter.Line, error) {
	segs := Segments(xs, ys)
	lines := make([]*plotter.Line, 0, len(segs))
	for _, s := range segs {
		l, err := plotter.NewLine(s)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// Band returns one closed outline per run where x and both bounds are
// finite: the lower bound left to right, then the upper bound back. Runs of
// a single point enclose nothing and are dropped.
func Band(xs, lower, upper []float64) []plotter.XYs {
	n := min(len(xs), len(lower), len(upper))
	var out []plotter.XYs
	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= 2 {
			ring := make(plotter.XYs, 0, 2*(end-start))
			for i := start; i < end; i++ {
				ring = append(ring, plotter.XY{X: xs[i], Y: lower[i]})
			}
			for i := end - 1; i >= start; i-- {
				ring = append(ring, plotter.XY{X: xs[i], Y: upper[i]})
			}
			out = append(out, ring)
		}
		start = -1
	}
	for i := 0; i < n; i++ {
		if finite(xs[i]) && finite(lower[i]) && finite(upper[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(n)
	return out
}

// Coordinates returns the numeric x and y of a 2D record.
func Coordinates(rec series.Record) (xs, ys []float64, err error) {
	xs, err = series.Numeric(rec.X)
	if err != nil {
		return nil, nil, fmt.Errorf("series %d x: %w", rec.Index, err)
	}
	ys, err = series.Numeric(rec.Y)
	if err != nil {
		return nil, nil, fmt.Errorf("series %d y: %w", rec.Index, err)
	}
	return xs, ys, nil
}

// ShadingBounds turns a record's fill-range or ribbon into lower and upper
// bounds around ys. A fill-range shades between the series and the fill
// values; a ribbon r shades ys-r to ys+r, and a ribbon Pair (lo, hi) shades
// ys-lo to ys+hi. The ribbon wins when both are set. ok is false when the
// record carries no shading.
func ShadingBounds(rec series.Record, ys []float64) (lower, upper []float64, ok bool, err error) {
	switch {
	case rec.Ribbon != nil:
		lo, hi := rec.Ribbon, rec.Ribbon
		if p, isPair := rec.Ribbon.(series.Pair); isPair {
			lo, hi = p.First, p.Second
		}
		dlo, err := broadcast(lo, len(ys))
		if err != nil {
			return nil, nil, false, fmt.Errorf("series %d ribbon: %w", rec.Index, err)
		}
		dhi, err := broadcast(hi, len(ys))
		if err != nil {
			return nil, nil, false, fmt.Errorf("series %d ribbon: %w", rec.Index, err)
		}
		lower = make([]float64, len(ys))
		upper = make([]float64, len(ys))
		for i, y := range ys {
			lower[i] = y - dlo[i]
			upper[i] = y + dhi[i]
		}
		return lower, upper, true, nil
	case rec.FillRange != nil:
		fill, err := broadcast(rec.FillRange, len(ys))
		if err != nil {
			return nil, nil, false, fmt.Errorf("series %d fillrange: %w", rec.Index, err)
		}
		return fill, ys, true, nil
	}
	return nil, nil, false, nil
}

// broadcast expands a scalar to n copies and pads or cuts a vector to n,
// padding with NaN.
func broadcast(v series.Value, n int) ([]float64, error) {
	var scalar float64
	switch d := v.(type) {
	case series.Float:
		scalar = float64(d)
	case series.Int:
		scalar = float64(d)
	default:
		vals, err := series.Numeric(v)
		if err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i := range out {
			if i < len(vals) {
				out[i] = vals[i]
			} else {
				out[i] = math.NaN()
			}
		}
		return out, nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = scalar
	}
	return out, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
