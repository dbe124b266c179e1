package antenna

import (
	"math"
	"math/cmplx"

	"github.com/wiless/vlib"
)

// degenerateCos is the |cos(phase)| below which Re/cos(phase) is not trusted.
const degenerateCos = 1e-12

// Element is a single point radiator. Phase and amplitude are always derived
// from the stored excitation.
type Element struct {
	Position   vlib.Location3D
	excitation complex128
}

func newElement(pos vlib.Location3D) Element {
	return Element{Position: pos, excitation: 1}
}

// Excitation returns the complex driving signal of the element.
func (e Element) Excitation() complex128 {
	return e.excitation
}

// Phase returns atan2(Im, Re) of the excitation in radians.
func (e Element) Phase() float64 {
	return math.Atan2(imag(e.excitation), real(e.excitation))
}

// Amplitude returns Re(I)/cos(phase). When the phase sits on ±π/2 the
// magnitude of the excitation is returned instead.
func (e Element) Amplitude() float64 {
	_, amp := e.PhaseAmp()
	return amp
}

// PhaseAmp returns the (phase, amplitude) pair of the element.
func (e Element) PhaseAmp() (phase, amp float64) {
	phase = e.Phase()
	c := math.Cos(phase)
	if math.Abs(c) < degenerateCos {
		return phase, cmplx.Abs(e.excitation)
	}
	return phase, real(e.excitation) / c
}

// Degenerate reports whether PhaseAmp had to fall back to the magnitude.
func (e Element) Degenerate() bool {
	return math.Abs(math.Cos(e.Phase())) < degenerateCos
}
