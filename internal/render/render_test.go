package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/banshee-data/seriesprep/internal/monitoring"
	"github.com/banshee-data/seriesprep/internal/testutil"
	"github.com/banshee-data/seriesprep/series"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
)

var nan = math.NaN()

func TestSegments_SplitsAtGaps(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6}
	ys := []float64{1, nan, 3, 4, math.Inf(1), 6}

	got := Segments(xs, ys)
	want := []plotter.XYs{
		{{X: 1, Y: 1}},
		{{X: 3, Y: 3}, {X: 4, Y: 4}},
		{{X: 6, Y: 6}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Segments mismatch (-want +got):\n%s", diff)
	}
}

func TestSegments_UnevenAndEmpty(t *testing.T) {
	assert.Empty(t, Segments(nil, nil))
	assert.Empty(t, Segments([]float64{nan}, []float64{1}))

	got := Segments([]float64{1, 2, 3}, []float64{5, 6})
	require.Len(t, got, 1)
	assert.Len(t, got[0], 2, "the longer slice is cut to the shorter")
}

func TestLines(t *testing.T) {
	lines, err := Lines([]float64{1, 2, 3, 4}, []float64{1, 2, nan, 4})
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestBand(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	lower := []float64{0, 0, nan, 0, 0}
	upper := []float64{1, 1, 1, 2, 2}

	got := Band(xs, lower, upper)
	want := []plotter.XYs{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		{{X: 3, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 3, Y: 2}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Band mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, Band([]float64{0, 1}, []float64{0, nan}, []float64{1, 1}), "a lone point encloses nothing")
}

func TestShadingBounds(t *testing.T) {
	ys := []float64{1, 2, 3}
	tests := []struct {
		name         string
		rec          series.Record
		lower, upper []float64
		shaded       bool
	}{
		{name: "none", rec: series.Record{}},
		{
			name:  "scalar ribbon",
			rec:   series.Record{Ribbon: series.Float(0.5)},
			lower: []float64{0.5, 1.5, 2.5}, upper: []float64{1.5, 2.5, 3.5}, shaded: true,
		},
		{
			name:  "pair ribbon",
			rec:   series.Record{Ribbon: series.Pair{First: series.Int(1), Second: series.Floats{1, 2, 3}}},
			lower: []float64{0, 1, 2}, upper: []float64{2, 4, 6}, shaded: true,
		},
		{
			name:  "scalar fill",
			rec:   series.Record{FillRange: series.Int(0)},
			lower: []float64{0, 0, 0}, upper: ys, shaded: true,
		},
		{
			name:  "short fill vector",
			rec:   series.Record{FillRange: series.Floats{0, 1}},
			lower: []float64{0, 1, nan}, upper: ys, shaded: true,
		},
		{
			name:  "ribbon beats fill",
			rec:   series.Record{FillRange: series.Int(0), Ribbon: series.Int(1)},
			lower: []float64{0, 1, 2}, upper: []float64{2, 3, 4}, shaded: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lower, upper, shaded, err := ShadingBounds(tt.rec, ys)
			require.NoError(t, err)
			assert.Equal(t, tt.shaded, shaded)
			if diff := cmp.Diff(tt.lower, lower, cmpopts.EquateNaNs()); diff != "" {
				t.Errorf("lower mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.upper, upper, cmpopts.EquateNaNs()); diff != "" {
				t.Errorf("upper mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, _, _, err := ShadingBounds(series.Record{Index: 4, Ribbon: series.Strings{"a"}}, ys)
	require.Error(t, err)
	assert.ErrorIs(t, err, series.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "series 4 ribbon")
}

func surfaceRecord() series.Record {
	return series.Record{
		Index: 1,
		X:     series.IndexRange(2),
		Y:     series.Floats{10, 20, 30},
		Z:     series.Surface{Grid: series.NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6}).M},
	}
}

func TestSurfaceGrid(t *testing.T) {
	g, err := NewSurfaceGrid(surfaceRecord())
	require.NoError(t, err)

	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 3, r)
	assert.Equal(t, 2.0, g.X(1))
	assert.Equal(t, 30.0, g.Y(2))
	assert.Equal(t, 6.0, g.Z(1, 2))
	assert.Equal(t, 2.0, g.Z(0, 1))
}

func TestSurfaceGrid_Errors(t *testing.T) {
	rec := surfaceRecord()
	rec.Y = series.Floats{1, 2}
	_, err := NewSurfaceGrid(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surface is 2x3 but axes are 2 and 2 long")

	_, err = NewSurfaceGrid(series.Record{Z: series.Floats{1}})
	assert.Error(t, err)

	_, err = NewSurfaceGrid(series.Record{Z: series.Surface{Opaque: "image"}})
	assert.Error(t, err)
}

func TestLineData_Gaps(t *testing.T) {
	got := LineData([]float64{1, 2}, []float64{nan, 4})
	require.Len(t, got, 2)
	assert.Equal(t, []interface{}{1.0, "-"}, got[0].Value)
	assert.Equal(t, []interface{}{2.0, 4.0}, got[1].Value)
}

func TestSurfaceData(t *testing.T) {
	g, err := NewSurfaceGrid(surfaceRecord())
	require.NoError(t, err)
	data := SurfaceData(g)
	require.Len(t, data, 6)
	assert.Equal(t, []interface{}{1.0, 10.0, 1.0}, data[0].Value)
	assert.Equal(t, []interface{}{2.0, 30.0, 6.0}, data[5].Value)
}

func TestPlot_SkipsUndrawableRecords(t *testing.T) {
	var rec monitoring.Recorder
	restore := monitoring.SetLogger(rec.Logf)
	defer restore()

	recs := []series.Record{
		{Index: 1, X: series.Floats{1, 2, 3}, Y: series.Floats{1, nan, 3}, Ribbon: series.Float(0.5)},
		{Index: 2, X: series.Strings{"a", "b"}, Y: series.Floats{1, 2}},
		{Index: 3, X: series.Floats{1}, Y: series.Floats{1}, Z: series.Volume{}},
		surfaceRecord(),
	}
	p, err := Plot("demo", recs)
	require.NoError(t, err)
	assert.Equal(t, "demo", p.Title.Text)

	lines := strings.Join(rec.Lines(), "\n")
	assert.Contains(t, lines, "series 2 x")
	assert.Contains(t, lines, "series 3: z of kind volume")
}

func TestWritePNG(t *testing.T) {
	recs := []series.Record{
		{Index: 1, X: series.IndexRange(4), Y: series.Ints{3, 1, 4, 1}, FillRange: series.Int(0), Attrs: series.Attributes{"label": "pi"}},
	}
	var buf bytes.Buffer
	testutil.AssertNoError(t, WritePNG(&buf, "digits", recs))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "output should be a PNG image")
}

func TestPreview(t *testing.T) {
	var rec monitoring.Recorder
	restore := monitoring.SetLogger(rec.Logf)
	defer restore()

	recs := []series.Record{
		{Index: 1, X: series.IndexRange(3), Y: series.Floats{1, 2, 3}, Attrs: series.Attributes{"label": "rising"}},
		{Index: 2, X: series.Floats{1, 2}, Y: series.Floats{1, 2}, Z: series.Floats{0, 1}},
		surfaceRecord(),
		{Index: 4, X: series.Floats{1}, Y: series.Floats{1}, Z: series.Strings{"x"}},
	}
	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, "preview run", recs))

	html := buf.String()
	assert.Contains(t, html, "preview run")
	assert.Contains(t, html, "rising")
	require.Len(t, rec.Lines(), 1)
	assert.Contains(t, rec.Lines()[0], "series 4 z")
}

func TestSeriesColors(t *testing.T) {
	assert.Nil(t, seriesColors(0))
	colors := seriesColors(3)
	require.Len(t, colors, 3)
	assert.Equal(t, "#d82626", hexColor(colors[0]))
	assert.NotEqual(t, hexColor(colors[0]), hexColor(colors[1]))
}
