package main

import (
	"math"

	"github.com/banshee-data/seriesprep/series"
	"gonum.org/v1/gonum/mat"
)

// RunOutput is the JSON document written for one slicing run.
type RunOutput struct {
	RunID   string         `json:"run_id"`
	Version string         `json:"version"`
	Series  []SeriesOutput `json:"series"`
}

// SeriesOutput is the JSON form of one series.Record. Values use the same
// tagged shapes the request decoder accepts, so output can be fed back in.
type SeriesOutput struct {
	Index      int                    `json:"index"`
	X          interface{}            `json:"x"`
	Y          interface{}            `json:"y"`
	Z          interface{}            `json:"z,omitempty"`
	FillRange  interface{}            `json:"fillrange,omitempty"`
	Ribbon     interface{}            `json:"ribbon,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

func encodeRecords(recs []series.Record) []SeriesOutput {
	out := make([]SeriesOutput, len(recs))
	for i, r := range recs {
		out[i] = SeriesOutput{
			Index:      r.Index,
			X:          encodeValue(r.X),
			Y:          encodeValue(r.Y),
			Z:          encodeValue(r.Z),
			FillRange:  encodeValue(r.FillRange),
			Ribbon:     encodeValue(r.Ribbon),
			Attributes: encodeAttrs(r.Attrs),
		}
	}
	return out
}

// jsonFloat maps non-finite values to null; JSON has no NaN.
func jsonFloat(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

func jsonFloats(fs []float64) []interface{} {
	out := make([]interface{}, len(fs))
	for i, f := range fs {
		out[i] = jsonFloat(f)
	}
	return out
}

func denseRows(d *mat.Dense) [][]interface{} {
	if d == nil || d.IsEmpty() {
		return [][]interface{}{}
	}
	r, _ := d.Dims()
	rows := make([][]interface{}, r)
	for i := range rows {
		rows[i] = jsonFloats(d.RawRowView(i))
	}
	return rows
}

func encodeValue(v series.Value) interface{} {
	switch d := v.(type) {
	case nil:
		return nil
	case series.Float:
		return jsonFloat(float64(d))
	case series.Int:
		return int64(d)
	case series.Text:
		return string(d)
	case series.Missing:
		return nil
	case series.Floats:
		return jsonFloats(d)
	case series.Ints:
		return []int64(d)
	case series.Strings:
		return []string(d)
	case series.Points:
		out := make([]interface{}, len(d))
		for i, p := range d {
			switch {
			case p.IsText():
				out[i] = p.Text()
			case p.IsNumber():
				out[i] = jsonFloat(p.Float())
			}
		}
		return out
	case series.Range:
		return map[string]interface{}{"range": map[string]interface{}{"start": d.Start, "step": d.Step, "len": d.Len}}
	case series.Matrix:
		return map[string]interface{}{"matrix": denseRows(d.M)}
	case series.Surface:
		if !d.IsNumeric() {
			return map[string]interface{}{"surface": "opaque"}
		}
		return map[string]interface{}{"surface": denseRows(d.Grid)}
	case series.Volume:
		return map[string]interface{}{"volume": map[string]interface{}{
			"values":    jsonFloats(d.Values),
			"dims":      d.Dims,
			"x_extents": [2]float64{d.XExtents.Min, d.XExtents.Max},
			"y_extents": [2]float64{d.YExtents.Min, d.YExtents.Max},
			"z_extents": [2]float64{d.ZExtents.Min, d.ZExtents.Max},
		}}
	case series.Pair:
		return map[string]interface{}{"pair": []interface{}{encodeValue(d.First), encodeValue(d.Second)}}
	case series.List:
		out := make([]interface{}, len(d))
		for i, e := range d {
			out[i] = encodeValue(e)
		}
		return out
	case series.Func, series.Func2:
		return map[string]interface{}{"function": "unevaluated"}
	}
	// Big numbers are narrowed before records are built; fall back to floats.
	if fs, err := series.Numeric(v); err == nil {
		return jsonFloats(fs)
	}
	return nil
}

// encodeAttrs keeps plain attribute values and replaces formatters with a
// marker.
func encodeAttrs(a series.Attributes) map[string]interface{} {
	if len(a) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(a))
	for k, v := range a {
		switch v := v.(type) {
		case series.Value:
			out[k] = encodeValue(v)
		case func(float64) string:
			out[k] = "formatter"
		default:
			out[k] = v
		}
	}
	return out
}
