package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiless/vlib"

	"github.com/wiless/blockarray/antenna"
	"github.com/wiless/blockarray/report"
)

func TestReportLinear(t *testing.T) {
	m, err := antenna.NewLinearArray(nil, []float64{-2.58, 2.58}, antenna.Radian(90))
	require.NoError(t, err)
	require.NoError(t, m.Solve())

	var out bytes.Buffer
	r := report.New(&out, false)
	require.NoError(t, r.Report(m.Snapshot(), m.Summarize(antenna.Grid{})))

	text := out.String()
	assert.Contains(t, text, "Required antenna configuration (Linear, 2 blocks")
	assert.Contains(t, text, "Block 1 @ -2.580:")
	assert.Contains(t, text, "Block 2 @ 2.580:")
	assert.Contains(t, text, "Antenna #")
	assert.Contains(t, text, "1.000000")
	assert.Contains(t, text, "--- Best expected array factor: 4")
	assert.Contains(t, text, "--- Array factor at target: 4.000000")
	assert.NotContains(t, text, "not solved")
	assert.NotContains(t, text, "\x1b[")
}

func TestReportPlanarUnsolved(t *testing.T) {
	m, err := antenna.NewPlanarArray(nil, []vlib.Location3D{{X: 0, Y: 0}}, antenna.DirectionDeg(30, 45))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, report.New(&out, false).Blocks(m.Snapshot()))
	text := out.String()
	assert.Contains(t, text, "φ=45.00°")
	assert.Contains(t, text, "not solved")
	assert.Contains(t, text, "Block 1 @ (0.000, 0.000):")
	// four element rows
	assert.Equal(t, 4, strings.Count(text, "1.000000"))
}

func TestReportMarksDegenerateElements(t *testing.T) {
	snap := antenna.Snapshot{
		Geometry: antenna.Linear,
		Solved:   true,
		Blocks: []antenna.BlockState{{
			Elements: []antenna.ElementState{
				{Amplitude: 1, Phase: 1.5707963267948966, Degenerate: true},
				{Amplitude: 1},
			},
		}},
	}
	var out bytes.Buffer
	require.NoError(t, report.New(&out, false).Blocks(snap))
	assert.Contains(t, out.String(), "1.000000*")
	assert.Contains(t, out.String(), "90.0000")
}
