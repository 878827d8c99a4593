package series

import (
	"math"

	"github.com/banshee-data/seriesprep/internal/monitoring"
)

// Resolve fills in the omitted coordinates of one series and checks that
// the result is consistent.
//
// Omitted x becomes the 1-based index range of y (or of z when y is also
// omitted), omitted x and y with a z grid give y the index range of z's
// second axis. Function axes are evaluated against their companion axis and
// a z Matrix is wrapped as a Surface. Without z, y must be as long as x.
func Resolve(x, y, z Value) (Value, Value, Value, error) {
	switch {
	case x == nil && y == nil && z == nil:
		return nil, nil, nil, &MissingAxisError{}
	case x == nil && isFuncs(y):
		return nil, nil, nil, &AmbiguousFunctionError{Axis: "y", Needs: "x"}
	case x == nil && y == nil && isFuncs(z):
		return nil, nil, nil, &AmbiguousFunctionError{Axis: "z", Needs: "x/y"}
	}

	rx, err := resolveX(x, y, z)
	if err != nil {
		return nil, nil, nil, err
	}
	ry, err := resolveY(x, rx, y, z)
	if err != nil {
		return nil, nil, nil, err
	}
	rz, err := resolveZ(rx, ry, z)
	if err != nil {
		return nil, nil, nil, err
	}
	rx, ry, rz = Downcast(rx), Downcast(ry), Downcast(rz)

	if rx != nil && ry != nil && rz == nil {
		xn, xok := Len(rx)
		yn, yok := Len(ry)
		if xok && yok && xn != yn {
			return nil, nil, nil, &DimensionMismatchError{XLen: xn, YLen: yn}
		}
	}
	return rx, ry, rz, nil
}

func resolveX(x, y, z Value) (Value, error) {
	switch {
	case x == nil && y == nil:
		return indexAxis(z, 1)
	case x == nil:
		return indexAxis(y, 1)
	}
	switch f := x.(type) {
	case Func:
		return applyFunc(f, y, "x", "y")
	case Func2:
		return nil, &UnsupportedTypeError{Type: "two-argument func", Op: "resolve x"}
	}
	return x, nil
}

// resolveY looks at the caller's x to decide whether y is implicit and at
// the resolved x to evaluate a function y.
func resolveY(x, rx, y, z Value) (Value, error) {
	if y == nil && x == nil && z != nil {
		return indexAxis(z, 2)
	}
	switch f := y.(type) {
	case Func:
		return applyFunc(f, rx, "y", "x")
	case Func2:
		return nil, &UnsupportedTypeError{Type: "two-argument func", Op: "resolve y"}
	}
	return y, nil
}

func resolveZ(x, y, z Value) (Value, error) {
	switch d := z.(type) {
	case Func2:
		if x == nil || y == nil {
			return nil, &AmbiguousFunctionError{Axis: "z", Needs: "x/y"}
		}
		xs, err := Numeric(x)
		if err != nil {
			return nil, err
		}
		ys, err := Numeric(y)
		if err != nil {
			return nil, err
		}
		out := make(Floats, min(len(xs), len(ys)))
		for i := range out {
			out[i] = d(xs[i], ys[i])
		}
		return out, nil
	case Func:
		return nil, &UnsupportedTypeError{Type: "single-argument func", Op: "resolve z"}
	case Matrix:
		return Surface{Grid: d.M}, nil
	}
	return z, nil
}

func indexAxis(v Value, dim int) (Value, error) {
	n, ok := axisLen(v, dim)
	if !ok {
		return nil, unsupported(v, "implicit axis")
	}
	return IndexRange(n), nil
}

func applyFunc(f Func, over Value, axis, needs string) (Value, error) {
	if over == nil {
		return nil, &AmbiguousFunctionError{Axis: axis, Needs: needs}
	}
	xs, err := Numeric(over)
	if err != nil {
		return nil, err
	}
	out := make(Floats, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out, nil
}

// Downcast narrows arbitrary-precision vectors to float64 and int64 for
// renderers without big number support. Precision beyond those types is
// dropped; out of range integers saturate.
func Downcast(v Value) Value {
	switch d := v.(type) {
	case BigFloats:
		out := make(Floats, len(d))
		for i, x := range d {
			out[i] = bigToFloat(x)
		}
		monitoring.Logf("series: narrowed %d arbitrary-precision floats to float64", len(d))
		return out
	case BigInts:
		out := make(Ints, len(d))
		for i, x := range d {
			switch {
			case x == nil:
			case x.IsInt64():
				out[i] = x.Int64()
			case x.Sign() > 0:
				out[i] = math.MaxInt64
			default:
				out[i] = math.MinInt64
			}
		}
		monitoring.Logf("series: narrowed %d arbitrary-precision ints to int64", len(d))
		return out
	}
	return v
}
