package deployment_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiless/vlib"

	"github.com/wiless/blockarray/deployment"
)

func TestLinearCentres(t *testing.T) {
	pts := deployment.LinearCentres(4, 2)
	require.Len(t, pts, 4)
	for i, want := range []float64{-3, -1, 1, 3} {
		assert.InDelta(t, want, pts[i].X, 1e-12)
		assert.Equal(t, 0.0, pts[i].Y)
	}
}

func TestRectangularCentres(t *testing.T) {
	pts := deployment.RectangularCentres(3, 2, 2, 4)
	require.Len(t, pts, 6)
	assert.Equal(t, vlib.Location3D{X: -2, Y: 2}, pts[0])
	assert.Equal(t, vlib.Location3D{X: 2, Y: 2}, pts[2])
	assert.Equal(t, vlib.Location3D{X: -2, Y: -2}, pts[3])
	assert.Equal(t, vlib.Location3D{X: 2, Y: -2}, pts[5])
}

func TestCircularCentres(t *testing.T) {
	pts := deployment.CircularCentres(8, 5)
	require.Len(t, pts, 8)
	for _, p := range pts {
		assert.InDelta(t, 5.0, math.Hypot(p.X, p.Y), 1e-12)
	}
	assert.InDelta(t, 5.0, pts[0].X, 1e-12)
	assert.InDelta(t, 5.0, pts[2].Y, 1e-12)
}

func TestHexCentres(t *testing.T) {
	pts := deployment.HexCentres(7, 3)
	require.Len(t, pts, 7)
	assert.Equal(t, vlib.Location3D{}, pts[0])
	for i := 1; i < 7; i++ {
		assert.InDelta(t, 3.0, math.Hypot(pts[i].X, pts[i].Y), 1e-9, "ring-1 centre %d", i)
	}
	// second ring starts once the first is full
	pts = deployment.HexCentres(19, 1)
	for i := 7; i < 19; i++ {
		assert.Greater(t, math.Hypot(pts[i].X, pts[i].Y), 1.5)
	}
}

func TestDrop(t *testing.T) {
	pts, err := deployment.Drop(deployment.LayoutParameter{
		Type:           deployment.Linear,
		NCount:         2,
		Pitch:          2,
		Centre:         vlib.Location3D{X: 10, Y: 5},
		RotationDegree: 90,
	})
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.InDelta(t, 10.0, pts[0].X, 1e-9)
	assert.InDelta(t, 4.0, pts[0].Y, 1e-9)
	assert.InDelta(t, 6.0, pts[1].Y, 1e-9)

	_, err = deployment.Drop(deployment.LayoutParameter{Type: deployment.Rectangular, NX: 2})
	assert.Error(t, err)
	_, err = deployment.Drop(deployment.LayoutParameter{Type: deployment.LayoutType(9), NCount: 1, Pitch: 1})
	assert.Error(t, err)
}

func TestParseLayoutType(t *testing.T) {
	l, err := deployment.ParseLayoutType("hexagonal")
	require.NoError(t, err)
	assert.Equal(t, deployment.Hexagonal, l)
	assert.Equal(t, "Hexagonal", l.String())
	_, err = deployment.ParseLayoutType("spiral")
	assert.Error(t, err)
}
