package antenna

import (
	"math"
	"math/cmplx"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiless/vlib"
)

func broadsideArray(t *testing.T) *ArrayModel {
	t.Helper()
	m, err := NewLinearArray(nil, []float64{-2.58, 2.58}, Radian(90))
	require.NoError(t, err)
	return m
}

func planarArray(t *testing.T, target Direction) *ArrayModel {
	t.Helper()
	centres := []vlib.Location3D{{X: 0, Y: 0}, {X: 10, Y: 8}, {X: -17, Y: 20}, {X: -7, Y: 0}, {X: 4, Y: -25}, {X: -5, Y: -17}, {X: -1, Y: 17}}
	m, err := NewPlanarArray(nil, centres, target)
	require.NoError(t, err)
	return m
}

func TestFlatteningCorrespondence(t *testing.T) {
	lin, err := NewLinearArray(nil, []float64{-20, -DefaultWavelength, 1.3 * DefaultWavelength, 30, 35, 40, 50}, Radian(125))
	require.NoError(t, err)
	pln := planarArray(t, DirectionDeg(30, 0))

	for _, m := range []*ArrayModel{lin, pln} {
		arity := m.Geometry().Arity()
		snap := m.Snapshot()
		positions := m.Positions()
		require.Len(t, positions, arity*len(snap.Blocks))
		assert.Equal(t, len(positions), m.ElementCount())
		for b, bs := range snap.Blocks {
			require.Len(t, bs.Elements, arity)
			for i, e := range bs.Elements {
				assert.Equal(t, positions[b*arity+i], e.Position, "%s block %d element %d", m.Geometry(), b, i)
				assert.Equal(t, b*arity+i, e.Index)
			}
		}
	}
}

func TestConstructionErrors(t *testing.T) {
	_, err := NewLinearArray(nil, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewPlanarArray(nil, []vlib.Location3D{}, Direction{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewLinearArray(nil, []float64{0, math.NaN()}, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewLinearArray(nil, []float64{0}, math.Inf(-1))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	s := NewSetting()
	s.Wavelength = math.NaN()
	_, err = NewLinearArray(s, []float64{0}, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	s = NewSetting()
	s.Geometry = Geometry(7)
	_, err = NewArray(s, []vlib.Location3D{{}}, Direction{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSteeringCoherence(t *testing.T) {
	lin, err := NewLinearArray(nil, []float64{-20, -DefaultWavelength, 1.3 * DefaultWavelength, 30, 35, 40, 50}, Radian(125))
	require.NoError(t, err)
	require.NoError(t, lin.Solve())
	assert.InDelta(t, float64(lin.ElementCount()), cmplx.Abs(lin.ArrayFactor(lin.Target())), 1e-9)

	for _, target := range []Direction{DirectionDeg(30, 0), DirectionDeg(45, 120), DirectionDeg(80, 275)} {
		pln := planarArray(t, target)
		require.NoError(t, pln.Solve())
		assert.InDelta(t, 28.0, cmplx.Abs(pln.ArrayFactor(target)), 1e-9, "target %v", target)
		for _, I := range pln.Excitations() {
			assert.InDelta(t, 1.0, cmplx.Abs(I), 1e-12)
		}
	}
}

func TestNormalisationBeforeSolve(t *testing.T) {
	m := broadsideArray(t)
	assert.False(t, m.Solved())
	// cos(90°) = 0: every element contributes exp(0)
	assert.InDelta(t, 4.0, cmplx.Abs(m.ArrayFactor(DirectionDeg(90, 0))), 1e-9)

	p := planarArray(t, DirectionDeg(30, 0))
	assert.InDelta(t, 28.0, cmplx.Abs(p.ArrayFactor(Direction{})), 1e-12)
}

func TestBroadsideSymmetry(t *testing.T) {
	m := broadsideArray(t)
	require.NoError(t, m.Solve())
	a := cmplx.Abs(m.ArrayFactor(DirectionDeg(30, 0)))
	b := cmplx.Abs(m.ArrayFactor(DirectionDeg(150, 0)))
	assert.InDelta(t, a, b, 1e-9)
}

func TestBroadsideScenario(t *testing.T) {
	m := broadsideArray(t)
	require.NoError(t, m.Solve())
	assert.True(t, m.Solved())
	for _, b := range m.Snapshot().Blocks {
		for _, e := range b.Elements {
			assert.InDelta(t, 1.0, e.Amplitude, 1e-12)
			assert.InDelta(t, 0.0, e.Phase, 1e-12)
		}
	}
	assert.InDelta(t, 4.0, cmplx.Abs(m.ArrayFactor(DirectionDeg(90, 0))), 1e-9)
	assert.Less(t, cmplx.Abs(m.ArrayFactor(DirectionDeg(0, 0))), 4.0)
}

func TestArrayFactorIsPure(t *testing.T) {
	m := planarArray(t, DirectionDeg(40, 60))
	require.NoError(t, m.Solve())
	before := m.Excitations()
	first := m.ArrayFactor(DirectionDeg(12, 200))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.ArrayFactor(DirectionDeg(12, 200)))
	}
	assert.Equal(t, before, m.Excitations())
}

func TestPhiIgnoredForLinear(t *testing.T) {
	m := broadsideArray(t)
	require.NoError(t, m.SetTarget(DirectionDeg(60, 0)))
	require.NoError(t, m.Solve())
	assert.Equal(t, m.ArrayFactor(DirectionDeg(20, 0)), m.ArrayFactor(DirectionDeg(20, 137)))
}

func TestSetTarget(t *testing.T) {
	m := broadsideArray(t)
	require.NoError(t, m.Solve())
	require.NoError(t, m.SetTarget(DirectionDeg(45, 0)))
	assert.False(t, m.Solved())
	assert.ErrorIs(t, m.SetTarget(Direction{Theta: math.NaN()}), ErrInvalidArgument)
	assert.Equal(t, DirectionDeg(45, 0), m.Target())

	require.NoError(t, m.Solve())
	assert.InDelta(t, 4.0, cmplx.Abs(m.ArrayFactor(DirectionDeg(45, 0))), 1e-9)
}

func TestBlockSpacingOverride(t *testing.T) {
	s := NewSetting()
	s.Wavelength = 2
	s.BlockSpacing = map[int]Spacing{1: {X: 0.5}}
	m, err := NewLinearArray(s, []float64{0, 10}, Radian(90))
	require.NoError(t, err)
	pos := m.Positions()
	assert.Equal(t, []float64{-0.5, 0.5, 9.75, 10.25}, []float64{pos[0].X, pos[1].X, pos[2].X, pos[3].X})
	// the caller's setting keeps its own geometry
	assert.Equal(t, Linear, s.Geometry)
}

func TestWavelengthFromFrequency(t *testing.T) {
	s := NewSetting()
	s.Wavelength = 0
	s.FreqHz = 3e9
	m, err := NewLinearArray(s, []float64{0}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, m.Wavelength(), 1e-15)
	assert.InDelta(t, 2*math.Pi/0.1, m.Wavenumber(), 1e-9)
}

func TestConcurrentReaders(t *testing.T) {
	m := planarArray(t, DirectionDeg(30, 0))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = m.Solve()
			}
			_ = m.SamplePattern(Grid{NTheta: 10, ThetaStep: Radian(9), NPhi: 10, PhiStep: Radian(36)})
			_ = m.ArrayFactor(DirectionDeg(float64(i), 0))
		}(i)
	}
	wg.Wait()
	assert.InDelta(t, 28.0, cmplx.Abs(m.ArrayFactor(DirectionDeg(30, 0))), 1e-9)
}
