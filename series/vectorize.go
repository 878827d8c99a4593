package series

import (
	"gonum.org/v1/gonum/mat"
)

// Context carries what vectorisation needs to know about the plot.
type Context interface {
	// Is3D reports whether matrices should be read as one surface rather
	// than a set of column series.
	Is3D() bool
}

// Flat3D is a fixed Context.
type Flat3D bool

func (f Flat3D) Is3D() bool { return bool(f) }

// Vectorize splits one argument into an ordered list of single-series data.
// Rules are tried in order and the first match wins:
//
//  1. nothing is one absent series
//  2. an Int n asks for n empty numeric series
//  3. a homogeneous vector is one series
//  4. a List is coerced to a vector when it holds only numbers/missing or
//     only text/missing, otherwise each element is vectorised in turn
//  5. a Matrix is one Surface in 3D, else one series per column
//  6. anything else is one prepared series
func Vectorize(v Value, ctx Context) ([]Value, error) {
	switch d := v.(type) {
	case nil:
		return []Value{nil}, nil
	case Int:
		n := max(int(d), 0)
		out := make([]Value, n)
		for i := range out {
			out[i] = Floats{}
		}
		return out, nil
	case Floats, Ints, BigFloats, BigInts, Strings, Points:
		return prepareOne(v)
	case List:
		return vectorizeList(d, ctx)
	case Matrix:
		return vectorizeMatrix(d, ctx)
	}
	return prepareOne(v)
}

func prepareOne(v Value) ([]Value, error) {
	p, err := Prepare(v)
	if err != nil {
		return nil, err
	}
	return []Value{p}, nil
}

func vectorizeList(l List, ctx Context) ([]Value, error) {
	if pts, ok := listPoints(l, false); ok {
		return prepareOne(pts)
	}
	if pts, ok := listPoints(l, true); ok {
		return prepareOne(pts)
	}
	var out []Value
	for _, e := range l {
		sub, err := Vectorize(e, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// listPoints coerces l to Points when every element is a number or missing
// (text false) or every element is text or missing (text true).
func listPoints(l List, text bool) (Points, bool) {
	out := make(Points, len(l))
	for i, e := range l {
		switch d := e.(type) {
		case Missing:
			out[i] = NA()
		case Float:
			if text {
				return nil, false
			}
			out[i] = Num(float64(d))
		case Int:
			if text {
				return nil, false
			}
			out[i] = Num(float64(d))
		case Text:
			if !text {
				return nil, false
			}
			out[i] = Str(string(d))
		default:
			return nil, false
		}
	}
	return out, true
}

func vectorizeMatrix(m Matrix, ctx Context) ([]Value, error) {
	if ctx != nil && ctx.Is3D() {
		grid := m.M
		if grid == nil {
			grid = &mat.Dense{}
		}
		return prepareOne(Surface{Grid: grid})
	}
	_, cols := m.Dims()
	out := make([]Value, cols)
	for j := 0; j < cols; j++ {
		out[j] = prepareFloats(mat.Col(nil, j, m.M))
	}
	return out, nil
}
