package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/banshee-data/seriesprep/internal/monitoring"
	"github.com/banshee-data/seriesprep/series"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot draws records onto a new gonum plot. 2D records become lines with
// their fill-range or ribbon shaded underneath; surface records become heat
// maps. Records that cannot be drawn (text axes, volumes, 3D paths) are
// skipped with a log line.
func Plot(title string, recs []series.Record) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title

	colors := seriesColors(len(recs))
	for i, rec := range recs {
		if _, ok := rec.Z.(series.Surface); ok {
			g, err := NewSurfaceGrid(rec)
			if err != nil {
				monitoring.Logf("render: skipping surface: %v", err)
				continue
			}
			p.Add(plotter.NewHeatMap(g, palette.Heat(16, 1)))
			continue
		}
		if rec.Z != nil {
			monitoring.Logf("render: skipping series %d: z of kind %s has no 2D view", rec.Index, series.KindOf(rec.Z))
			continue
		}

		xs, ys, err := Coordinates(rec)
		if err != nil {
			monitoring.Logf("render: skipping %v", err)
			continue
		}

		lower, upper, shaded, err := ShadingBounds(rec, ys)
		if err != nil {
			return nil, err
		}
		if shaded {
			for _, ring := range Band(xs, lower, upper) {
				poly, err := plotter.NewPolygon(ring)
				if err != nil {
					return nil, fmt.Errorf("series %d shading: %w", rec.Index, err)
				}
				poly.Color = fade(colors[i])
				poly.LineStyle.Width = 0
				p.Add(poly)
			}
		}

		lines, err := Lines(xs, ys)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", rec.Index, err)
		}
		for j, l := range lines {
			l.Color = colors[i]
			l.Width = vg.Points(1)
			p.Add(l)
			if j == 0 {
				p.Legend.Add(label(rec), l)
			}
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WritePNG plots recs and encodes the image as PNG onto w.
func WritePNG(w io.Writer, title string, recs []series.Record) error {
	p, err := Plot(title, recs)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(10*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// label prefers a "label" attribute, falling back to the series index.
func label(rec series.Record) string {
	if s, ok := rec.Attrs["label"].(string); ok && s != "" {
		return s
	}
	return fmt.Sprintf("series %d", rec.Index)
}

func fade(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 64}
}
