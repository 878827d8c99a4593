package series

import (
	"fmt"
	"math"
	"math/big"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNothing Kind = iota
	KindFloat
	KindInt
	KindText
	KindMissing
	KindFunc
	KindFunc2
	KindRange
	KindFloats
	KindInts
	KindBigFloats
	KindBigInts
	KindStrings
	KindPoints
	KindMatrix
	KindSurface
	KindVolume
	KindPair
	KindList
	KindFormatted
)

var kindNames = [...]string{
	KindNothing:   "nothing",
	KindFloat:     "float",
	KindInt:       "int",
	KindText:      "text",
	KindMissing:   "missing",
	KindFunc:      "func",
	KindFunc2:     "func2",
	KindRange:     "range",
	KindFloats:    "floats",
	KindInts:      "ints",
	KindBigFloats: "bigfloats",
	KindBigInts:   "bigints",
	KindStrings:   "strings",
	KindPoints:    "points",
	KindMatrix:    "matrix",
	KindSurface:   "surface",
	KindVolume:    "volume",
	KindPair:      "pair",
	KindList:      "list",
	KindFormatted: "formatted",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is the closed set of inputs accepted for x, y, z, fill-range and
// ribbon. A nil Value means "nothing". The set is sealed: only the types in
// this file implement it.
type Value interface {
	Kind() Kind
	sealed()
}

// KindOf returns the kind of v, treating nil as KindNothing.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNothing
	}
	return v.Kind()
}

// Float is a scalar number.
type Float float64

// Int is a scalar integer. As a series argument it requests that many empty
// series.
type Int int64

// Text is a scalar string.
type Text string

// Missing is a scalar missing marker, mostly seen as a List element.
type Missing struct{}

// Func is a lazily evaluated axis: applied elementwise to a companion axis.
type Func func(float64) float64

// Func2 is a lazily evaluated z axis, applied over paired (x, y) elements.
type Func2 func(x, y float64) float64

// Range is an arithmetic sequence Start, Start+Step, ... of Len elements.
type Range struct {
	Start float64
	Step  float64
	Len   int
}

// IndexRange returns the implicit axis 1..n.
func IndexRange(n int) Range {
	if n < 0 {
		n = 0
	}
	return Range{Start: 1, Step: 1, Len: n}
}

// At returns the i-th (0-based) element of the range.
func (r Range) At(i int) float64 { return r.Start + float64(i)*r.Step }

// Values materialises the range.
func (r Range) Values() []float64 {
	switch {
	case r.Len <= 0:
		return []float64{}
	case r.Len == 1:
		return []float64{r.Start}
	}
	return floats.Span(make([]float64, r.Len), r.Start, r.At(r.Len-1))
}

// Floats is a numeric vector. NaN is the missing sentinel.
type Floats []float64

// Ints is an integer vector.
type Ints []int64

// BigFloats is an arbitrary-precision vector. A nil element is missing.
type BigFloats []*big.Float

// BigInts is an arbitrary-precision integer vector. A nil element is missing.
type BigInts []*big.Int

// Strings is a text vector.
type Strings []string

type pointKind uint8

const (
	pointMissing pointKind = iota
	pointNumber
	pointText
)

// Point is a single DataPoint: a number, a text value or missing.
type Point struct {
	kind pointKind
	num  float64
	text string
}

// Num returns a numeric point.
func Num(f float64) Point { return Point{kind: pointNumber, num: f} }

// Str returns a text point.
func Str(s string) Point { return Point{kind: pointText, text: s} }

// NA returns a missing point.
func NA() Point { return Point{} }

func (p Point) IsMissing() bool { return p.kind == pointMissing }
func (p Point) IsNumber() bool  { return p.kind == pointNumber }
func (p Point) IsText() bool    { return p.kind == pointText }

// Float returns the numeric value, or NaN for anything that is not a number.
func (p Point) Float() float64 {
	if p.kind != pointNumber {
		return math.NaN()
	}
	return p.num
}

// Text returns the text value, or "" for anything that is not text.
func (p Point) Text() string { return p.text }

// Points is a vector of heterogeneous DataPoints.
type Points []Point

// Matrix is a 2D grid. NaN entries are missing values.
type Matrix struct {
	M *mat.Dense
}

// NewMatrix builds a rows x cols matrix from row-major data.
func NewMatrix(rows, cols int, data []float64) Matrix {
	if rows == 0 || cols == 0 {
		return Matrix{M: &mat.Dense{}}
	}
	return Matrix{M: mat.NewDense(rows, cols, data)}
}

// Dims returns the matrix shape; a nil matrix is 0x0.
func (m Matrix) Dims() (r, c int) {
	if m.M == nil || m.M.IsEmpty() {
		return 0, 0
	}
	return m.M.Dims()
}

// Surface marks a 2D grid as a single 3D series. Opaque holds non-numeric
// payloads such as images and is only consulted when Grid is nil.
type Surface struct {
	Grid   *mat.Dense
	Opaque interface{}
}

// IsNumeric reports whether the surface wraps a numeric grid.
func (s Surface) IsNumeric() bool { return s.Grid != nil }

// Dims returns the grid shape, 0x0 for opaque surfaces.
func (s Surface) Dims() (r, c int) {
	if s.Grid == nil || s.Grid.IsEmpty() {
		return 0, 0
	}
	return s.Grid.Dims()
}

// Extent is the span an axis of a Volume covers.
type Extent struct {
	Min float64
	Max float64
}

// Volume is a 3D grid stored in row-major order (x fastest varying last).
type Volume struct {
	Values   []float64
	Dims     [3]int
	XExtents Extent
	YExtents Extent
	ZExtents Extent
}

// At returns the value at (i, j, k).
func (v Volume) At(i, j, k int) float64 {
	return v.Values[(i*v.Dims[1]+j)*v.Dims[2]+k]
}

// Pair is a 2-tuple, e.g. a coordinate pair or an asymmetric ribbon.
type Pair struct {
	First  Value
	Second Value
}

// List is a general list whose elements may be any Value, including lists.
type List []Value

// Formatted bundles data with a display formatter for its axis labels.
type Formatted struct {
	Data      Value
	Formatter func(float64) string
}

func (Float) Kind() Kind     { return KindFloat }
func (Int) Kind() Kind       { return KindInt }
func (Text) Kind() Kind      { return KindText }
func (Missing) Kind() Kind   { return KindMissing }
func (Func) Kind() Kind      { return KindFunc }
func (Func2) Kind() Kind     { return KindFunc2 }
func (Range) Kind() Kind     { return KindRange }
func (Floats) Kind() Kind    { return KindFloats }
func (Ints) Kind() Kind      { return KindInts }
func (BigFloats) Kind() Kind { return KindBigFloats }
func (BigInts) Kind() Kind   { return KindBigInts }
func (Strings) Kind() Kind   { return KindStrings }
func (Points) Kind() Kind    { return KindPoints }
func (Matrix) Kind() Kind    { return KindMatrix }
func (Surface) Kind() Kind   { return KindSurface }
func (Volume) Kind() Kind    { return KindVolume }
func (Pair) Kind() Kind      { return KindPair }
func (List) Kind() Kind      { return KindList }
func (Formatted) Kind() Kind { return KindFormatted }

func (Float) sealed()     {}
func (Int) sealed()       {}
func (Text) sealed()      {}
func (Missing) sealed()   {}
func (Func) sealed()      {}
func (Func2) sealed()     {}
func (Range) sealed()     {}
func (Floats) sealed()    {}
func (Ints) sealed()      {}
func (BigFloats) sealed() {}
func (BigInts) sealed()   {}
func (Strings) sealed()   {}
func (Points) sealed()    {}
func (Matrix) sealed()    {}
func (Surface) sealed()   {}
func (Volume) sealed()    {}
func (Pair) sealed()      {}
func (List) sealed()      {}
func (Formatted) sealed() {}

func isNumber(v Value) bool {
	switch v.(type) {
	case Float, Int:
		return true
	}
	return false
}

// isFuncs reports whether v is a function or a non-empty list of functions.
func isFuncs(v Value) bool {
	switch d := v.(type) {
	case Func, Func2:
		return true
	case List:
		if len(d) == 0 {
			return false
		}
		for _, e := range d {
			if !isFuncs(e) {
				return false
			}
		}
		return true
	}
	return false
}

// Len returns the length along the first axis of an array-like value.
func Len(v Value) (int, bool) {
	return axisLen(v, 1)
}

// axisLen returns the extent of v along axis dim (1 or 2). Vectors have a
// second axis of length 1.
func axisLen(v Value, dim int) (int, bool) {
	var n int
	switch d := v.(type) {
	case Floats:
		n = len(d)
	case Ints:
		n = len(d)
	case BigFloats:
		n = len(d)
	case BigInts:
		n = len(d)
	case Strings:
		n = len(d)
	case Points:
		n = len(d)
	case Range:
		n = max(d.Len, 0)
	case Matrix:
		r, c := d.Dims()
		if dim == 2 {
			return c, true
		}
		return r, true
	case Surface:
		if !d.IsNumeric() {
			return 0, false
		}
		r, c := d.Dims()
		if dim == 2 {
			return c, true
		}
		return r, true
	case Volume:
		return d.Dims[dim-1], true
	default:
		return 0, false
	}
	if dim == 2 {
		return 1, true
	}
	return n, true
}

// Numeric returns the float64 values of a numeric vector-like value. Missing
// elements come back as NaN.
func Numeric(v Value) ([]float64, error) {
	switch d := v.(type) {
	case Floats:
		return []float64(d), nil
	case Ints:
		out := make([]float64, len(d))
		for i, x := range d {
			out[i] = float64(x)
		}
		return out, nil
	case BigFloats:
		out := make([]float64, len(d))
		for i, x := range d {
			out[i] = bigToFloat(x)
		}
		return out, nil
	case BigInts:
		out := make([]float64, len(d))
		for i, x := range d {
			if x == nil {
				out[i] = math.NaN()
				continue
			}
			out[i], _ = new(big.Float).SetInt(x).Float64()
		}
		return out, nil
	case Range:
		return d.Values(), nil
	case Points:
		out := make([]float64, len(d))
		for i, p := range d {
			if p.IsText() {
				return nil, &UnsupportedTypeError{Type: "text point", Op: "numeric"}
			}
			out[i] = p.Float()
		}
		return out, nil
	}
	return nil, unsupported(v, "numeric")
}

func bigToFloat(x *big.Float) float64 {
	if x == nil || x.IsInf() {
		return math.NaN()
	}
	f, _ := x.Float64()
	return f
}
