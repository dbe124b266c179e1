package render

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/wiless/blockarray/antenna"
)

// PlotRenderer saves layout.png and pattern.png into Dir.
type PlotRenderer struct {
	Dir    string
	Width  vg.Length
	Height vg.Length
}

const (
	LayoutFile  = "layout.png"
	PatternFile = "pattern.png"
)

func (r *PlotRenderer) size() (vg.Length, vg.Length) {
	w, h := r.Width, r.Height
	if w == 0 {
		w = 6 * vg.Inch
	}
	if h == 0 {
		h = 4 * vg.Inch
	}
	return w, h
}

func (r *PlotRenderer) Render(snap antenna.Snapshot, pattern *antenna.Pattern) error {
	if pattern == nil {
		return errNoPattern
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := r.layout(snap); err != nil {
		return err
	}
	if snap.Geometry == antenna.Planar {
		return r.heatMap(pattern)
	}
	return r.line(pattern)
}

func (r *PlotRenderer) save(p *plot.Plot, name string) error {
	w, h := r.size()
	if err := p.Save(w, h, filepath.Join(r.Dir, name)); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func (r *PlotRenderer) layout(snap antenna.Snapshot) error {
	locs := snap.Positions()
	pts := make(plotter.XYs, len(locs))
	for i, l := range locs {
		pts[i].X, pts[i].Y = l.X, l.Y
	}

	p := plot.New()
	p.Title.Text = "Antenna Positions"
	p.X.Label.Text = "X Position"
	p.Y.Label.Text = "Y Position"
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("render layout: %w", err)
	}
	p.Add(s, plotter.NewGrid())
	return r.save(p, LayoutFile)
}

func (r *PlotRenderer) line(pattern *antenna.Pattern) error {
	thetas := pattern.Grid.Thetas()
	cut := pattern.Cut(0)
	pts := make(plotter.XYs, len(cut))
	for i := range cut {
		pts[i].X, pts[i].Y = thetas[i], cut[i]
	}

	p := plot.New()
	p.Title.Text = "Block-Generated Beamform"
	p.X.Label.Text = "Angle from Array (Degrees)"
	p.Y.Label.Text = "Array Factor"
	l, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("render pattern: %w", err)
	}
	p.Add(l, plotter.NewGrid())
	return r.save(p, PatternFile)
}

// patternGrid exposes a Pattern as plotter.GridXYZ with phi on X and theta
// on Y, both in degrees.
type patternGrid struct {
	p *antenna.Pattern
}

func (g patternGrid) Dims() (c, r int)   { return g.p.Grid.NPhi, g.p.Grid.NTheta }
func (g patternGrid) Z(c, r int) float64 { return g.p.Values[r][c] }
func (g patternGrid) X(c int) float64    { return antenna.Degree(g.p.Grid.Phi(c)) }
func (g patternGrid) Y(r int) float64    { return antenna.Degree(g.p.Grid.Theta(r)) }

func (r *PlotRenderer) heatMap(pattern *antenna.Pattern) error {
	p := plot.New()
	p.Title.Text = "Block-Generated Beamform"
	p.X.Label.Text = "Azimuth (Degrees)"
	p.Y.Label.Text = "Elevation (Degrees)"
	p.Add(plotter.NewHeatMap(patternGrid{pattern}, palette.Heat(16, 1)))
	return r.save(p, PatternFile)
}
