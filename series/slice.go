package series

import (
	"fmt"
	"slices"

	"github.com/banshee-data/seriesprep/internal/monitoring"
)

// Options tune a Slicer. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// SeriesTypes3D are the seriestype values that read matrices as surfaces.
	SeriesTypes3D []string
	// Keys the formatter of a Formatted x, y or z is stored under.
	XFormatterKey string
	YFormatterKey string
	ZFormatterKey string
}

// DefaultOptions returns the standard key names and 3D series types.
func DefaultOptions() Options {
	return Options{
		SeriesTypes3D: slices.Clone(DefaultSeriesTypes3D),
		XFormatterKey: KeyXFormatter,
		YFormatterKey: KeyYFormatter,
		ZFormatterKey: KeyZFormatter,
	}
}

// Context returns the vectorisation context for a call with attrs: matrices
// are surfaces when the seriestype is one of SeriesTypes3D.
func (o Options) Context(attrs Attributes) Context {
	return Flat3D(slices.Contains(o.SeriesTypes3D, attrs.SeriesType()))
}

// Slicer combines x, y, z and shading arguments into series records.
// It holds no state between calls.
type Slicer struct {
	opts Options
}

// NewSlicer returns a Slicer using opts.
func NewSlicer(opts Options) *Slicer {
	return &Slicer{opts: opts}
}

var defaultSlicer = NewSlicer(DefaultOptions())

// Slice runs the default Slicer.
func Slice(out *SeriesList, x, y, z Value, attrs Attributes) error {
	return defaultSlicer.Slice(out, x, y, z, attrs)
}

// Slice splits x, y and z into series, cycles the shorter lists against the
// longest and appends one Record per series to out.
//
// attrs is the caller's shared map: the fillrange and ribbon keys are
// consumed from it and formatter keys are written to it when an axis is
// Formatted. Records are appended only when every series resolved, so a
// failing call leaves out unchanged. When x, y or z splits into no series at
// all nothing is appended and no error is returned.
func (s *Slicer) Slice(out *SeriesList, x, y, z Value, attrs Attributes) error {
	if attrs == nil {
		attrs = Attributes{}
	}
	x = unwrapFormatted(x, s.opts.XFormatterKey, attrs)
	y = unwrapFormatted(y, s.opts.YFormatterKey, attrs)
	z = unwrapFormatted(z, s.opts.ZFormatterKey, attrs)

	ctx := s.opts.Context(attrs)

	xs, err := Vectorize(x, ctx)
	if err != nil {
		return fmt.Errorf("vectorize x: %w", err)
	}
	ys, err := Vectorize(y, ctx)
	if err != nil {
		return fmt.Errorf("vectorize y: %w", err)
	}
	zs, err := Vectorize(z, ctx)
	if err != nil {
		return fmt.Errorf("vectorize z: %w", err)
	}

	fr, err := popValue(attrs, KeyFillRange)
	if err != nil {
		return err
	}
	fillranges, err := ProcessFillRange(fr, ctx)
	if err != nil {
		return fmt.Errorf("process fillrange: %w", err)
	}
	rib, err := popValue(attrs, KeyRibbon)
	if err != nil {
		return err
	}
	ribbons, err := ProcessRibbon(rib, ctx)
	if err != nil {
		return fmt.Errorf("process ribbon: %w", err)
	}

	mx, my, mz := len(xs), len(ys), len(zs)
	if mx == 0 || my == 0 || mz == 0 {
		monitoring.Logf("series: x/y/z split into %d/%d/%d series, nothing to emit", mx, my, mz)
		return nil
	}

	n := max(mx, my, mz)
	staged := make([]Record, 0, n)
	for i := 1; i <= n; i++ {
		rx, ry, rz, err := Resolve(xs[(i-1)%mx], ys[(i-1)%my], zs[(i-1)%mz])
		if err != nil {
			return fmt.Errorf("series %d: %w", i, err)
		}
		rfr, err := evalShading(cycle(fillranges, i), rx)
		if err != nil {
			return fmt.Errorf("series %d fillrange: %w", i, err)
		}
		rrib, err := evalShading(cycle(ribbons, i), rx)
		if err != nil {
			return fmt.Errorf("series %d ribbon: %w", i, err)
		}
		staged = append(staged, Record{
			Index:     i,
			X:         rx,
			Y:         ry,
			Z:         rz,
			FillRange: rfr,
			Ribbon:    rrib,
			Attrs:     attrs.Clone(),
		})
	}
	out.Append(staged...)
	return nil
}

// cycle picks the entry for 1-based series i. An empty list yields nothing.
func cycle(vs []Value, i int) Value {
	if len(vs) == 0 {
		return nil
	}
	return vs[(i-1)%len(vs)]
}

func unwrapFormatted(v Value, key string, attrs Attributes) Value {
	f, ok := v.(Formatted)
	if !ok {
		return v
	}
	attrs[key] = f.Formatter
	return f.Data
}

func popValue(attrs Attributes, key string) (Value, error) {
	raw, ok := attrs.Pop(key)
	if !ok {
		return nil, nil
	}
	v, err := Of(raw)
	if err != nil {
		return nil, fmt.Errorf("attribute %s: %w", key, err)
	}
	return v, nil
}
