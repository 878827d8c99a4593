package render

import (
	"fmt"

	"github.com/banshee-data/seriesprep/series"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"
)

// SurfaceGrid exposes a surface record as a plotter.GridXYZ. Grid rows follow
// x and grid columns follow y, matching how the slicer derives implicit axes
// from a matrix.
type SurfaceGrid struct {
	xs, ys []float64
	z      *mat.Dense
}

var _ plotter.GridXYZ = (*SurfaceGrid)(nil)

// NewSurfaceGrid checks that rec carries a numeric surface whose axes match
// the grid shape.
func NewSurfaceGrid(rec series.Record) (*SurfaceGrid, error) {
	s, ok := rec.Z.(series.Surface)
	if !ok {
		return nil, fmt.Errorf("series %d: z is %s, not a surface", rec.Index, series.KindOf(rec.Z))
	}
	if !s.IsNumeric() {
		return nil, fmt.Errorf("series %d: surface has no numeric grid", rec.Index)
	}
	xs, ys, err := Coordinates(rec)
	if err != nil {
		return nil, err
	}
	r, c := s.Dims()
	if len(xs) != r || len(ys) != c {
		return nil, fmt.Errorf("series %d: surface is %dx%d but axes are %d and %d long", rec.Index, r, c, len(xs), len(ys))
	}
	return &SurfaceGrid{xs: xs, ys: ys, z: s.Grid}, nil
}

// Dims implements plotter.GridXYZ. Columns run along x and rows along y.
func (g *SurfaceGrid) Dims() (c, r int) { return len(g.xs), len(g.ys) }

// Z implements plotter.GridXYZ.
func (g *SurfaceGrid) Z(c, r int) float64 { return g.z.At(c, r) }

// X implements plotter.GridXYZ.
func (g *SurfaceGrid) X(c int) float64 { return g.xs[c] }

// Y implements plotter.GridXYZ.
func (g *SurfaceGrid) Y(r int) float64 { return g.ys[r] }
