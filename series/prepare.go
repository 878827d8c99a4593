package series

import (
	"math"
	"math/big"

	"gonum.org/v1/gonum/mat"
)

// Prepare canonicalises one data container into renderer-safe form.
//
// Numeric arrays become float with missing and non-finite entries replaced
// by NaN; text arrays get missing entries replaced by "". Shapes are kept.
// Functions, ranges, same-typed number pairs and opaque surfaces pass
// through untouched. Anything else is an *UnsupportedTypeError.
func Prepare(v Value) (Value, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case Pair:
		if isNumberPair(d) {
			return d, nil
		}
	case Func, Func2, Range:
		return v, nil
	case Floats:
		return prepareFloats(d), nil
	case Ints:
		out := make(Floats, len(d))
		for i, x := range d {
			out[i] = float64(x)
		}
		return out, nil
	case BigFloats:
		return prepareBigFloats(d), nil
	case BigInts:
		out := make(BigFloats, len(d))
		for i, x := range d {
			if x != nil {
				out[i] = new(big.Float).SetInt(x)
			}
		}
		return out, nil
	case Strings:
		return append(Strings{}, d...), nil
	case Points:
		return preparePoints(d)
	case Matrix:
		return Matrix{M: prepareDense(d.M)}, nil
	case Surface:
		if !d.IsNumeric() {
			return d, nil
		}
		return Surface{Grid: prepareDense(d.Grid)}, nil
	case Volume:
		return Volume{
			Values:   prepareFloats(d.Values),
			Dims:     d.Dims,
			XExtents: d.XExtents,
			YExtents: d.YExtents,
			ZExtents: d.ZExtents,
		}, nil
	}
	return nil, unsupported(v, "prepare")
}

func isNumberPair(p Pair) bool {
	switch p.First.(type) {
	case Float:
		_, ok := p.Second.(Float)
		return ok
	case Int:
		_, ok := p.Second.(Int)
		return ok
	}
	return false
}

func sanitise(x float64) float64 {
	if math.IsInf(x, 0) {
		return math.NaN()
	}
	return x
}

func prepareFloats(d []float64) Floats {
	out := make(Floats, len(d))
	for i, x := range d {
		out[i] = sanitise(x)
	}
	return out
}

func prepareBigFloats(d BigFloats) BigFloats {
	out := make(BigFloats, len(d))
	for i, x := range d {
		if x == nil || x.IsInf() {
			continue
		}
		out[i] = new(big.Float).Copy(x)
	}
	return out
}

// preparePoints resolves a heterogeneous vector to Floats or Strings. An
// all-missing vector counts as numeric.
func preparePoints(d Points) (Value, error) {
	var numbers, texts int
	for _, p := range d {
		switch {
		case p.IsNumber():
			numbers++
		case p.IsText():
			texts++
		}
	}
	switch {
	case texts == 0:
		out := make(Floats, len(d))
		for i, p := range d {
			out[i] = sanitise(p.Float())
		}
		return out, nil
	case numbers == 0:
		out := make(Strings, len(d))
		for i, p := range d {
			out[i] = p.Text()
		}
		return out, nil
	}
	return nil, &UnsupportedTypeError{Type: "points mixing numbers and text", Op: "prepare"}
}

func prepareDense(m *mat.Dense) *mat.Dense {
	if m == nil || m.IsEmpty() {
		return &mat.Dense{}
	}
	var out mat.Dense
	out.CloneFrom(m)
	out.Apply(func(_, _ int, v float64) float64 { return sanitise(v) }, &out)
	return &out
}
