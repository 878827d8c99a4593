package series

import (
	"fmt"
	"math/big"

	"gonum.org/v1/gonum/mat"
)

// Of converts a plain Go value into a Value. Values pass through; nil is
// nothing. Slices of interface{} convert element by element into a List, with
// nil elements read as Missing, and a [2]interface{} becomes a Pair. Nested
// plain slices become a List with one vector per row.
func Of(v interface{}) (Value, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case Value:
		return d, nil
	case float64:
		return Float(d), nil
	case float32:
		return Float(d), nil
	case int:
		return Int(d), nil
	case int64:
		return Int(d), nil
	case int32:
		return Int(d), nil
	case string:
		return Text(d), nil
	case []float64:
		return Floats(d), nil
	case []float32:
		out := make(Floats, len(d))
		for i, x := range d {
			out[i] = float64(x)
		}
		return out, nil
	case []int:
		out := make(Ints, len(d))
		for i, x := range d {
			out[i] = int64(x)
		}
		return out, nil
	case []int64:
		return Ints(d), nil
	case []string:
		return Strings(d), nil
	case [][]float64:
		return rows(len(d), func(i int) interface{} { return d[i] })
	case [][]float32:
		return rows(len(d), func(i int) interface{} { return d[i] })
	case [][]int:
		return rows(len(d), func(i int) interface{} { return d[i] })
	case [][]int64:
		return rows(len(d), func(i int) interface{} { return d[i] })
	case [][]string:
		return rows(len(d), func(i int) interface{} { return d[i] })
	case []*big.Float:
		return BigFloats(d), nil
	case []*big.Int:
		return BigInts(d), nil
	case *mat.Dense:
		return Matrix{M: d}, nil
	case func(float64) float64:
		return Func(d), nil
	case func(float64, float64) float64:
		return Func2(d), nil
	case [2]interface{}:
		first, err := Of(d[0])
		if err != nil {
			return nil, err
		}
		second, err := Of(d[1])
		if err != nil {
			return nil, err
		}
		return Pair{First: first, Second: second}, nil
	case []interface{}:
		out := make(List, len(d))
		for i, e := range d {
			ev, err := Of(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			if ev == nil {
				ev = Missing{}
			}
			out[i] = ev
		}
		return out, nil
	}
	return nil, &UnsupportedTypeError{Type: fmt.Sprintf("%T", v), Op: "convert"}
}

// rows converts each row of a plain nested slice into one List entry.
func rows(n int, row func(int) interface{}) (Value, error) {
	out := make(List, n)
	for i := 0; i < n; i++ {
		v, err := Of(row(i))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
