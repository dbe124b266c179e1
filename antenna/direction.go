package antenna

import (
	"math"

	"github.com/wiless/vlib"
)

// Direction is an observation or steering direction in radians. Theta is
// measured from the array axis for Linear arrays and is the elevation for
// Planar arrays; Phi is the azimuth and is ignored by Linear arrays.
type Direction struct {
	Theta float64
	Phi   float64
}

// DirectionDeg builds a Direction from degrees.
func DirectionDeg(theta, phi float64) Direction {
	return Direction{Theta: Radian(theta), Phi: Radian(phi)}
}

// Degrees returns theta and phi in degrees.
func (d Direction) Degrees() (theta, phi float64) {
	return Degree(d.Theta), Degree(d.Phi)
}

func (d Direction) finite() bool {
	return isFinite(d.Theta, d.Phi)
}

// unit projects the direction onto the element plane.
func (d Direction) unit(g Geometry) (ux, uy float64) {
	if g == Planar {
		st := math.Sin(d.Theta)
		return st * math.Cos(d.Phi), st * math.Sin(d.Phi)
	}
	return math.Cos(d.Theta), 0
}

// pathPhase is k·(p·u) for one element position.
func pathPhase(k float64, p vlib.Location3D, ux, uy float64) float64 {
	return k * (p.X*ux + p.Y*uy)
}
