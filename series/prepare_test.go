package series

import (
	"errors"
	"image"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var nan = math.NaN()

func TestPrepare_Passthrough(t *testing.T) {
	t.Parallel()

	got, err := Prepare(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	r := Range{Start: 0, Step: 0.5, Len: 4}
	got, err = Prepare(r)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	p := Pair{First: Float(1), Second: Float(2)}
	got, err = Prepare(p)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	ip := Pair{First: Int(1), Second: Int(2)}
	got, err = Prepare(ip)
	require.NoError(t, err)
	assert.Equal(t, ip, got)

	got, err = Prepare(Func(math.Sin))
	require.NoError(t, err)
	_, ok := got.(Func)
	assert.True(t, ok, "functions pass through")
}

func TestPrepare_NumericVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Value
		want Floats
	}{
		{"floats keep NaN", Floats{1, nan, 3}, Floats{1, nan, 3}},
		{"infinities become NaN", Floats{math.Inf(1), 2, math.Inf(-1)}, Floats{nan, 2, nan}},
		{"ints become floats", Ints{1, 2, 3}, Floats{1, 2, 3}},
		{"points with missing", Points{Num(1), NA(), Num(math.Inf(1))}, Floats{1, nan, nan}},
		{"all missing", Points{NA(), NA()}, Floats{nan, nan}},
		{"empty", Floats{}, Floats{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Prepare(tt.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateNaNs()); diff != "" {
				t.Errorf("Prepare mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrepare_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := Floats{1, math.Inf(1)}
	_, err := Prepare(in)
	require.NoError(t, err)
	assert.True(t, math.IsInf(in[1], 1), "input must stay untouched")
}

func TestPrepare_NaNIffMissingOrNonFinite(t *testing.T) {
	t.Parallel()

	in := Points{Num(0), NA(), Num(-2.5), Num(math.Inf(-1)), Num(math.NaN()), Num(1e300)}
	got, err := Prepare(in)
	require.NoError(t, err)
	out := got.(Floats)
	require.Len(t, out, len(in))
	for k, p := range in {
		bad := p.IsMissing() || math.IsInf(p.Float(), 0) || math.IsNaN(p.Float())
		assert.Equal(t, bad, math.IsNaN(out[k]), "index %d", k)
		if !bad {
			assert.Equal(t, p.Float(), out[k])
		}
	}
}

func TestPrepare_Text(t *testing.T) {
	t.Parallel()

	got, err := Prepare(Points{Str("a"), NA(), Str("c")})
	require.NoError(t, err)
	assert.Equal(t, Strings{"a", "", "c"}, got)

	got, err = Prepare(Strings{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, Strings{"x", "y"}, got)
}

func TestPrepare_BigNumbers(t *testing.T) {
	t.Parallel()

	got, err := Prepare(BigInts{big.NewInt(7), nil})
	require.NoError(t, err)
	bf, ok := got.(BigFloats)
	require.True(t, ok)
	require.Len(t, bf, 2)
	f, _ := bf[0].Float64()
	assert.Equal(t, 7.0, f)
	assert.Nil(t, bf[1])

	got, err = Prepare(BigFloats{big.NewFloat(1.5), new(big.Float).SetInf(false)})
	require.NoError(t, err)
	bf = got.(BigFloats)
	assert.NotNil(t, bf[0])
	assert.Nil(t, bf[1], "infinite big floats become the nil sentinel")
}

func TestPrepare_MatrixKeepsShape(t *testing.T) {
	t.Parallel()

	m := NewMatrix(2, 3, []float64{1, math.Inf(1), 3, nan, 5, 6})
	got, err := Prepare(m)
	require.NoError(t, err)
	pm := got.(Matrix)
	r, c := pm.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.True(t, math.IsNaN(pm.M.At(0, 1)))
	assert.True(t, math.IsNaN(pm.M.At(1, 0)))
	assert.Equal(t, 6.0, pm.M.At(1, 2))
	assert.True(t, math.IsInf(m.M.At(0, 1), 1), "input matrix must stay untouched")
}

func TestPrepare_Surface(t *testing.T) {
	t.Parallel()

	grid := mat.NewDense(2, 2, []float64{1, math.Inf(-1), 3, 4})
	got, err := Prepare(Surface{Grid: grid})
	require.NoError(t, err)
	s := got.(Surface)
	require.True(t, s.IsNumeric())
	assert.True(t, math.IsNaN(s.Grid.At(0, 1)))
	assert.True(t, mat.Equal(s.Grid.Slice(1, 2, 0, 2), grid.Slice(1, 2, 0, 2)))

	img := image.NewGray(image.Rect(0, 0, 2, 2))
	opaque := Surface{Opaque: img}
	got, err = Prepare(opaque)
	require.NoError(t, err)
	assert.Same(t, img, got.(Surface).Opaque.(*image.Gray), "opaque surfaces pass through")
}

func TestPrepare_VolumeKeepsExtents(t *testing.T) {
	t.Parallel()

	v := Volume{
		Values:   []float64{1, math.Inf(1), 3, 4, 5, 6, 7, 8},
		Dims:     [3]int{2, 2, 2},
		XExtents: Extent{0, 1},
		YExtents: Extent{-1, 1},
		ZExtents: Extent{10, 20},
	}
	got, err := Prepare(v)
	require.NoError(t, err)
	pv := got.(Volume)
	assert.Equal(t, v.Dims, pv.Dims)
	assert.Equal(t, v.XExtents, pv.XExtents)
	assert.Equal(t, v.YExtents, pv.YExtents)
	assert.Equal(t, v.ZExtents, pv.ZExtents)
	assert.True(t, math.IsNaN(pv.At(0, 0, 1)))
	assert.Equal(t, 8.0, pv.At(1, 1, 1))
}

func TestPrepare_Unsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Value
		kind string
	}{
		{"float scalar", Float(1), "float"},
		{"text scalar", Text("a"), "text"},
		{"mixed pair", Pair{First: Float(1), Second: Int(2)}, "pair"},
		{"list", List{Floats{1}}, "list"},
		{"formatted", Formatted{Data: Floats{1}}, "formatted"},
		{"mixed points", Points{Num(1), Str("a")}, "points mixing numbers and text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Prepare(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedType))
			var ute *UnsupportedTypeError
			require.ErrorAs(t, err, &ute)
			assert.Equal(t, tt.kind, ute.Type)
			assert.Contains(t, err.Error(), tt.kind)
		})
	}
}
