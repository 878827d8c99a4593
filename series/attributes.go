package series

import "maps"

// Attribute keys read or written by the slicer.
const (
	KeySeriesType = "seriestype"
	KeyX          = "x"
	KeyY          = "y"
	KeyZ          = "z"
	KeyFillRange  = "fillrange"
	KeyRibbon     = "ribbon"
	KeyXFormatter = "xformatter"
	KeyYFormatter = "yformatter"
	KeyZFormatter = "zformatter"
)

// DefaultSeriesTypes3D lists the series types whose matrices are surfaces.
var DefaultSeriesTypes3D = []string{
	"path3d", "scatter3d", "shape3d", "surface", "wireframe", "contour3d", "volume", "mesh3d",
}

// Attributes is the shared attribute map of one slicing call.
type Attributes map[string]interface{}

// Clone returns an independent shallow copy. A nil map clones to an empty one.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return Attributes{}
	}
	return maps.Clone(a)
}

// Pop removes key and returns its value.
func (a Attributes) Pop(key string) (interface{}, bool) {
	v, ok := a[key]
	if ok {
		delete(a, key)
	}
	return v, ok
}

// SeriesType returns the seriestype attribute, or "" when unset.
func (a Attributes) SeriesType() string {
	s, _ := a[KeySeriesType].(string)
	return s
}

// Record is one output series: resolved coordinates, shading and a private
// copy of the shared attributes.
type Record struct {
	// Index is the 1-based series index within its slicing call.
	Index     int
	X         Value
	Y         Value
	Z         Value
	FillRange Value
	Ribbon    Value
	Attrs     Attributes
}

// Get looks key up the way a flat attribute map would: the coordinate and
// shading keys map to the record fields, everything else to Attrs.
func (r Record) Get(key string) (interface{}, bool) {
	switch key {
	case KeyX:
		return r.X, true
	case KeyY:
		return r.Y, true
	case KeyZ:
		return r.Z, true
	case KeyFillRange:
		return r.FillRange, true
	case KeyRibbon:
		return r.Ribbon, true
	}
	v, ok := r.Attrs[key]
	return v, ok
}

// SeriesList is the caller-owned output collection. Records keep the order
// they were appended in.
type SeriesList struct {
	records []Record
}

// Append adds records in order.
func (l *SeriesList) Append(recs ...Record) {
	l.records = append(l.records, recs...)
}

// Len returns the number of records.
func (l *SeriesList) Len() int { return len(l.records) }

// Records returns the records appended so far.
func (l *SeriesList) Records() []Record { return l.records }
