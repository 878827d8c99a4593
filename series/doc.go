// Package series turns heterogeneously shaped plot input into an ordered
// list of independent series records.
//
// A caller hands Slice the x, y and z arguments plus a shared attribute map.
// Each argument is split into per-series data (Vectorize), shading side
// channels are normalised the same way (ProcessFillRange, ProcessRibbon),
// shorter lists are cycled against the longest, omitted coordinates are
// filled in (Resolve) and one Record per series is appended to the caller's
// SeriesList.
//
// Missing and non-finite numbers are canonicalised to NaN and missing text
// to "". Shapes are never changed by that step.
package series
