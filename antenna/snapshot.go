package antenna

import (
	"github.com/wiless/vlib"
)

// ElementState is a read-only view of one element. Excitation is split into
// Re/Im for JSON output.
type ElementState struct {
	Index      int
	Position   vlib.Location3D
	Excitation complex128 `json:"-"`
	Re, Im     float64
	Amplitude  float64
	Phase      float64 // radians
	Degenerate bool
}

type BlockState struct {
	Index    int
	Centre   vlib.Location3D
	Spacing  Spacing
	Elements []ElementState
}

// Snapshot is what reporters and renderers get to see of an ArrayModel.
type Snapshot struct {
	Geometry   Geometry
	Wavelength float64
	Target     Direction
	Solved     bool
	Blocks     []BlockState
}

// Positions returns every element position in flattened order.
func (s Snapshot) Positions() []vlib.Location3D {
	var result []vlib.Location3D
	for _, b := range s.Blocks {
		for _, e := range b.Elements {
			result = append(result, e.Position)
		}
	}
	return result
}

// Snapshot copies the current state of every block and element.
func (m *ArrayModel) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		Geometry:   m.geometry,
		Wavelength: m.lamda,
		Target:     m.target,
		Solved:     m.solved,
		Blocks:     make([]BlockState, len(m.blocks)),
	}
	idx := 0
	for b, blk := range m.blocks {
		bs := BlockState{Index: b, Centre: blk.Centre(), Spacing: blk.Spacing()}
		for _, e := range blk.Elements() {
			phase, amp := e.PhaseAmp()
			exc := e.Excitation()
			bs.Elements = append(bs.Elements, ElementState{
				Index:      idx,
				Position:   e.Position,
				Excitation: exc,
				Re:         real(exc),
				Im:         imag(exc),
				Amplitude:  amp,
				Phase:      phase,
				Degenerate: e.Degenerate(),
			})
			idx++
		}
		snap.Blocks[b] = bs
	}
	return snap
}
