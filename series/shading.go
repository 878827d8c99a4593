package series

// ProcessFillRange normalises the fill-range side channel into one entry per
// series. A bare number applies to every series as is.
func ProcessFillRange(v Value, ctx Context) ([]Value, error) {
	if isNumber(v) {
		return []Value{v}, nil
	}
	return Vectorize(v, ctx)
}

// ProcessRibbon normalises the ribbon side channel. Besides the fill-range
// forms it accepts a Pair of (lower, upper): each side is vectorised on its
// own and the results are zipped, dropping the excess of the longer side.
func ProcessRibbon(v Value, ctx Context) ([]Value, error) {
	if isNumber(v) {
		return []Value{v}, nil
	}
	p, ok := v.(Pair)
	if !ok {
		return Vectorize(v, ctx)
	}
	lower, err := Vectorize(p.First, ctx)
	if err != nil {
		return nil, err
	}
	upper, err := Vectorize(p.Second, ctx)
	if err != nil {
		return nil, err
	}
	n := min(len(lower), len(upper))
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = Pair{First: lower[i], Second: upper[i]}
	}
	return out, nil
}

// evalShading evaluates a function fill-range or ribbon over the resolved x
// axis. Other values are used as they are.
func evalShading(v, x Value) (Value, error) {
	switch f := v.(type) {
	case Func:
		return applyFunc(f, x, "shading", "x")
	case Func2:
		return nil, &UnsupportedTypeError{Type: "two-argument func", Op: "shading"}
	}
	return v, nil
}
