// Package jsoninput decodes JSON documents into series values.
//
// Plain JSON maps onto the series model directly: null is nothing (or a
// missing element inside an array), numbers are Int or Float, strings are
// Text and arrays are vectors or lists. Objects with a single tag key carry
// the shapes JSON has no syntax for:
//
//	{"matrix":  [[1, 2], [3, null]]}
//	{"surface": [[1, 2], [3, 4]]}
//	{"range":   {"start": 0, "step": 0.5, "len": 10}}
//	{"pair":    [lower, upper]}
//	{"volume":  {"values": [...], "dims": [2, 2, 2], "x_extents": [0, 1], ...}}
package jsoninput

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/banshee-data/seriesprep/series"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidInput marks documents that do not describe a series value.
var ErrInvalidInput = errors.New("jsoninput: invalid input")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Decode parses one JSON document into a series.Value.
func Decode(data []byte) (series.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return convert(raw)
}

// Request is one slicing call read from JSON.
type Request struct {
	X          series.Value
	Y          series.Value
	Z          series.Value
	Attributes series.Attributes
}

type rawRequest struct {
	X          json.RawMessage        `json:"x"`
	Y          json.RawMessage        `json:"y"`
	Z          json.RawMessage        `json:"z"`
	FillRange  json.RawMessage        `json:"fillrange"`
	Ribbon     json.RawMessage        `json:"ribbon"`
	Attributes map[string]interface{} `json:"attributes"`
}

// DecodeRequest reads a request document. fillrange and ribbon are placed
// on the attributes, where the slicer expects them.
func DecodeRequest(r io.Reader) (*Request, error) {
	var raw rawRequest
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse request JSON: %w", err)
	}

	req := &Request{Attributes: series.Attributes{}}
	for k, v := range raw.Attributes {
		req.Attributes[k] = v
	}

	fields := []struct {
		name string
		msg  json.RawMessage
		dst  *series.Value
	}{
		{series.KeyX, raw.X, &req.X},
		{series.KeyY, raw.Y, &req.Y},
		{series.KeyZ, raw.Z, &req.Z},
	}
	for _, f := range fields {
		v, err := decodeField(f.msg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}

	for _, side := range []struct {
		key string
		msg json.RawMessage
	}{{series.KeyFillRange, raw.FillRange}, {series.KeyRibbon, raw.Ribbon}} {
		v, err := decodeField(side.msg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", side.key, err)
		}
		if v != nil {
			req.Attributes[side.key] = v
		}
	}
	return req, nil
}

func decodeField(msg json.RawMessage) (series.Value, error) {
	if len(msg) == 0 {
		return nil, nil
	}
	return Decode(msg)
}

func convert(raw interface{}) (series.Value, error) {
	switch d := raw.(type) {
	case nil:
		return nil, nil
	case json.Number:
		return number(d)
	case string:
		return series.Text(d), nil
	case []interface{}:
		return array(d)
	case map[string]interface{}:
		return tagged(d)
	case bool:
		return nil, invalidf("booleans have no series meaning")
	}
	return nil, invalidf("unexpected JSON value %T", raw)
}

func number(n json.Number) (series.Value, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return series.Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, invalidf("number %s: %v", n, err)
	}
	return series.Float(f), nil
}

// array turns an all-number array into Ints or Floats and anything else
// into a List, with null elements as Missing.
func array(a []interface{}) (series.Value, error) {
	out := make(series.List, len(a))
	allNumbers, allInts := true, true
	for i, e := range a {
		v, err := convert(e)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		switch v.(type) {
		case series.Int:
		case series.Float:
			allInts = false
		case nil:
			v = series.Missing{}
			allNumbers = false
		default:
			allNumbers = false
		}
		out[i] = v
	}
	if !allNumbers || len(a) == 0 {
		return out, nil
	}
	if allInts {
		ints := make(series.Ints, len(out))
		for i, v := range out {
			ints[i] = int64(v.(series.Int))
		}
		return ints, nil
	}
	fs := make(series.Floats, len(out))
	for i, v := range out {
		switch n := v.(type) {
		case series.Int:
			fs[i] = float64(n)
		case series.Float:
			fs[i] = float64(n)
		}
	}
	return fs, nil
}

func tagged(m map[string]interface{}) (series.Value, error) {
	if len(m) != 1 {
		return nil, invalidf("tagged object must have exactly one key, got %d", len(m))
	}
	for tag, body := range m {
		switch tag {
		case "matrix":
			d, err := dense(body)
			if err != nil {
				return nil, fmt.Errorf("matrix: %w", err)
			}
			return series.Matrix{M: d}, nil
		case "surface":
			d, err := dense(body)
			if err != nil {
				return nil, fmt.Errorf("surface: %w", err)
			}
			return series.Surface{Grid: d}, nil
		case "range":
			return rangeValue(body)
		case "pair":
			return pair(body)
		case "volume":
			return volume(body)
		}
		return nil, invalidf("unknown tag %q", tag)
	}
	return nil, nil
}

func toFloat(v interface{}) (float64, error) {
	switch d := v.(type) {
	case nil:
		return math.NaN(), nil
	case json.Number:
		return d.Float64()
	}
	return 0, invalidf("expected a number, got %T", v)
}

func floatRow(v interface{}) ([]float64, error) {
	a, ok := v.([]interface{})
	if !ok {
		return nil, invalidf("expected an array, got %T", v)
	}
	out := make([]float64, len(a))
	for i, e := range a {
		f, err := toFloat(e)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// dense reads an array of equally long rows.
func dense(v interface{}) (*mat.Dense, error) {
	rows, ok := v.([]interface{})
	if !ok {
		return nil, invalidf("expected an array of rows, got %T", v)
	}
	if len(rows) == 0 {
		return &mat.Dense{}, nil
	}
	var data []float64
	cols := -1
	for i, r := range rows {
		row, err := floatRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if cols >= 0 && len(row) != cols {
			return nil, invalidf("row %d has %d columns, want %d", i, len(row), cols)
		}
		cols = len(row)
		data = append(data, row...)
	}
	if cols == 0 {
		return &mat.Dense{}, nil
	}
	return mat.NewDense(len(rows), cols, data), nil
}

func rangeValue(v interface{}) (series.Value, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, invalidf("range: expected an object, got %T", v)
	}
	r := series.Range{Step: 1}
	if s, ok := m["start"]; ok {
		f, err := toFloat(s)
		if err != nil {
			return nil, fmt.Errorf("range start: %w", err)
		}
		r.Start = f
	}
	if s, ok := m["step"]; ok {
		f, err := toFloat(s)
		if err != nil {
			return nil, fmt.Errorf("range step: %w", err)
		}
		r.Step = f
	}
	n, ok := m["len"].(json.Number)
	if !ok {
		return nil, invalidf("range: len is required")
	}
	l, err := n.Int64()
	if err != nil || l < 0 {
		return nil, invalidf("range: len must be a non-negative integer, got %s", n)
	}
	r.Len = int(l)
	return r, nil
}

func pair(v interface{}) (series.Value, error) {
	a, ok := v.([]interface{})
	if !ok || len(a) != 2 {
		return nil, invalidf("pair: expected a two element array")
	}
	first, err := convert(a[0])
	if err != nil {
		return nil, fmt.Errorf("pair[0]: %w", err)
	}
	second, err := convert(a[1])
	if err != nil {
		return nil, fmt.Errorf("pair[1]: %w", err)
	}
	return series.Pair{First: first, Second: second}, nil
}

func extent(m map[string]interface{}, key string) (series.Extent, error) {
	raw, ok := m[key]
	if !ok {
		return series.Extent{}, nil
	}
	row, err := floatRow(raw)
	if err != nil || len(row) != 2 {
		return series.Extent{}, invalidf("volume %s: expected [min, max]", key)
	}
	return series.Extent{Min: row[0], Max: row[1]}, nil
}

func volume(v interface{}) (series.Value, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, invalidf("volume: expected an object, got %T", v)
	}
	values, err := floatRow(m["values"])
	if err != nil {
		return nil, fmt.Errorf("volume values: %w", err)
	}
	dims, err := floatRow(m["dims"])
	if err != nil || len(dims) != 3 {
		return nil, invalidf("volume dims: expected three sizes")
	}
	vol := series.Volume{Values: values}
	size := 1
	for i, d := range dims {
		if d < 0 || d != math.Trunc(d) {
			return nil, invalidf("volume dims[%d] = %v is not a size", i, d)
		}
		vol.Dims[i] = int(d)
		size *= int(d)
	}
	if size != len(values) {
		return nil, invalidf("volume has %d values, dims need %d", len(values), size)
	}
	if vol.XExtents, err = extent(m, "x_extents"); err != nil {
		return nil, err
	}
	if vol.YExtents, err = extent(m, "y_extents"); err != nil {
		return nil, err
	}
	if vol.ZExtents, err = extent(m, "z_extents"); err != nil {
		return nil, err
	}
	return vol, nil
}
