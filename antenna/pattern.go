package antenna

import (
	"context"
	"math/cmplx"

	"github.com/wiless/vlib"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Grid is a uniform theta×phi sampling grid, angles in radians.
type Grid struct {
	NTheta     int
	ThetaStart float64
	ThetaStep  float64
	NPhi       int
	PhiStart   float64
	PhiStep    float64
}

// DefaultGrid is 0°..180° in 1° steps for Linear arrays and a 90×360 grid of
// 1° steps (elevation × azimuth) for Planar arrays.
func DefaultGrid(g Geometry) Grid {
	if g == Planar {
		return Grid{NTheta: 90, ThetaStep: Radian(1), NPhi: 360, PhiStep: Radian(1)}
	}
	return Grid{NTheta: 181, ThetaStep: Radian(1), NPhi: 1}
}

func (g Grid) IsZero() bool {
	return g == Grid{}
}

func (g Grid) Theta(i int) float64 { return g.ThetaStart + float64(i)*g.ThetaStep }
func (g Grid) Phi(j int) float64   { return g.PhiStart + float64(j)*g.PhiStep }

func (g Grid) Direction(i, j int) Direction {
	return Direction{Theta: g.Theta(i), Phi: g.Phi(j)}
}

// Thetas returns the theta axis in degrees.
func (g Grid) Thetas() vlib.VectorF {
	result := vlib.NewVectorF(g.NTheta)
	for i := range result {
		result[i] = Degree(g.Theta(i))
	}
	return result
}

// Phis returns the phi axis in degrees.
func (g Grid) Phis() vlib.VectorF {
	result := vlib.NewVectorF(g.NPhi)
	for j := range result {
		result[j] = Degree(g.Phi(j))
	}
	return result
}

// Pattern holds |AF| sampled on Grid, indexed Values[theta][phi].
// Patterns handed out by SamplePattern are shared and must be treated as
// read-only.
type Pattern struct {
	Grid   Grid
	Values vlib.MatrixF
}

// Cut returns the theta cut at phi column j.
func (p *Pattern) Cut(j int) vlib.VectorF {
	result := vlib.NewVectorF(p.Grid.NTheta)
	for i := range result {
		result[i] = p.Values[i][j]
	}
	return result
}

func (p *Pattern) flat() []float64 {
	result := make([]float64, 0, p.Grid.NTheta*p.Grid.NPhi)
	for i := 0; i < p.Grid.NTheta; i++ {
		result = append(result, []float64(p.Values[i])...)
	}
	return result
}

// Mean is the average |AF| over every grid point.
func (p *Pattern) Mean() float64 {
	return stat.Mean(p.flat(), nil)
}

// Peak returns the largest |AF| and the grid direction where it occurs.
func (p *Pattern) Peak() (float64, Direction) {
	values := p.flat()
	idx := floats.MaxIdx(values)
	return values[idx], p.Grid.Direction(idx/p.Grid.NPhi, idx%p.Grid.NPhi)
}

// SamplePattern returns |AF| over grid, a zero Grid meaning DefaultGrid.
// The result is cached until Solve or SetTarget runs, or a different grid
// is requested.
func (m *ArrayModel) SamplePattern(grid Grid) *Pattern {
	p, _ := m.SamplePatternContext(context.Background(), grid)
	return p
}

// SamplePatternContext is SamplePattern that stops between theta rows once
// ctx is done. A cancelled sample returns ctx's error and is not cached.
func (m *ArrayModel) SamplePatternContext(ctx context.Context, grid Grid) (*Pattern, error) {
	// Holding the read lock keeps Solve and SetTarget out until the sampled
	// pattern is published.
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.samplePattern(ctx, grid)
}

func normalGrid(g Geometry, grid Grid) Grid {
	if grid.IsZero() || grid.NTheta <= 0 {
		grid = DefaultGrid(g)
	}
	if grid.NPhi <= 0 {
		grid.NPhi = 1
	}
	return grid
}

// samplePattern must be called with mu held for reading.
func (m *ArrayModel) samplePattern(ctx context.Context, grid Grid) (*Pattern, error) {
	grid = normalGrid(m.geometry, grid)

	m.cacheMu.Lock()
	if m.cacheValid && m.cache.Grid == grid {
		p := m.cache
		m.cacheMu.Unlock()
		m.log.Debug("pattern cache hit")
		return p, nil
	}
	m.cacheMu.Unlock()

	p, err := m.sample(ctx, grid)
	if err != nil {
		return nil, err
	}

	m.cacheMu.Lock()
	m.cache, m.cacheValid = p, true
	m.cacheMu.Unlock()
	m.log.WithField("points", grid.NTheta*grid.NPhi).Debug("pattern sampled")
	return p, nil
}

// sample evaluates one theta row per goroutine. Caller holds mu for reading.
func (m *ArrayModel) sample(ctx context.Context, grid Grid) (*Pattern, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := &Pattern{Grid: grid, Values: vlib.NewMatrixF(grid.NTheta, grid.NPhi)}
	exc := m.excitations()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i := 0; i < grid.NTheta; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := p.Values[i]
			for j := 0; j < grid.NPhi; j++ {
				row[j] = cmplx.Abs(m.arrayFactor(exc, grid.Direction(i, j)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// Summary condenses a solved array into the figures printed after a run.
type Summary struct {
	ElementCount  int
	Target        Direction
	TargetGain    float64
	MeanGain      float64
	PeakGain      float64
	PeakDirection Direction
}

// Summarize evaluates |AF(target)| and the statistics of the pattern on grid.
// Pattern and target gain come from the same excitations.
func (m *ArrayModel) Summarize(grid Grid) Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, _ := m.samplePattern(context.Background(), grid)
	peak, dir := p.Peak()
	return Summary{
		ElementCount:  len(m.positions),
		Target:        m.target,
		TargetGain:    cmplx.Abs(m.arrayFactor(m.excitations(), m.target)),
		MeanGain:      p.Mean(),
		PeakGain:      peak,
		PeakDirection: dir,
	}
}
