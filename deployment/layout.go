// Package deployment generates regular block-centre layouts for block arrays.
package deployment

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/wiless/vlib"
)

type LayoutType int

const (
	Linear LayoutType = iota
	Rectangular
	Circular
	Hexagonal
)

var LayoutTypes = [...]string{
	"Linear",
	"Rectangular",
	"Circular",
	"Hexagonal",
}

func (l LayoutType) String() string {
	if int(l) < 0 || int(l) >= len(LayoutTypes) {
		return "Unknown-LayoutType"
	}
	return LayoutTypes[l]
}

// ParseLayoutType matches a LayoutTypes name, ignoring case.
func ParseLayoutType(s string) (LayoutType, error) {
	for i, name := range LayoutTypes {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return LayoutType(i), nil
		}
	}
	return Linear, fmt.Errorf("unknown layout type %q", s)
}

// LayoutParameter describes one regular drop of block centres.
type LayoutParameter struct {
	Type   LayoutType
	Centre vlib.Location3D

	// Number of blocks for Linear, Circular and Hexagonal
	NCount int
	// Grid size for Rectangular
	NX, NY int

	// Pitch is the centre-to-centre distance; PitchY is the row distance of
	// Rectangular layouts and defaults to Pitch
	Pitch  float64
	PitchY float64
	Radius float64

	/// Angles are in degree
	RotationDegree float64
}

// Drop returns the block centres described by p.
func Drop(p LayoutParameter) ([]vlib.Location3D, error) {
	var result []vlib.Location3D
	switch p.Type {
	case Linear:
		if p.NCount <= 0 || p.Pitch <= 0 {
			return nil, fmt.Errorf("linear layout needs NCount>0 and Pitch>0, got %d, %v", p.NCount, p.Pitch)
		}
		result = LinearCentres(p.NCount, p.Pitch)
	case Rectangular:
		py := p.PitchY
		if py == 0 {
			py = p.Pitch
		}
		if p.NX <= 0 || p.NY <= 0 || p.Pitch <= 0 || py <= 0 {
			return nil, fmt.Errorf("rectangular layout needs NX,NY>0 and positive pitch, got %dx%d, %v/%v", p.NX, p.NY, p.Pitch, py)
		}
		result = RectangularCentres(p.NX, p.NY, p.Pitch, py)
	case Circular:
		if p.NCount <= 0 || p.Radius <= 0 {
			return nil, fmt.Errorf("circular layout needs NCount>0 and Radius>0, got %d, %v", p.NCount, p.Radius)
		}
		result = CircularCentres(p.NCount, p.Radius)
	case Hexagonal:
		if p.NCount <= 0 || p.Pitch <= 0 {
			return nil, fmt.Errorf("hexagonal layout needs NCount>0 and Pitch>0, got %d, %v", p.NCount, p.Pitch)
		}
		result = HexCentres(p.NCount, p.Pitch)
	default:
		return nil, fmt.Errorf("unknown layout type %d", int(p.Type))
	}
	return place(result, p.Centre, p.RotationDegree), nil
}

// place rotates origin-centred points by rdegree and shifts them to centre.
func place(pts []vlib.Location3D, centre vlib.Location3D, rdegree float64) []vlib.Location3D {
	rotate := cmplx.Rect(1, rdegree*math.Pi/180.0)
	for i, pt := range pts {
		moved := vlib.FromCmplx(pt.Cmplx()*rotate + centre.Cmplx())
		moved.Z = centre.Z
		pts[i] = moved
	}
	return pts
}

// LinearCentres drops N points along x, pitch apart, centred on the origin.
func LinearCentres(N int, pitch float64) []vlib.Location3D {
	line := vlib.NewVectorC(N)
	var xloc float64
	for i := 0; i < N; i++ {
		line[i] = complex(xloc, 0)
		xloc += pitch
	}
	line = line.AddC(-vlib.MeanC(line))

	result := make([]vlib.Location3D, N)
	for i, c := range line {
		result[i] = vlib.FromCmplx(c)
	}
	return result
}

// RectangularCentres drops an nx×ny grid centred on the origin, row by row
// from the top (+y) row.
func RectangularCentres(nx, ny int, px, py float64) []vlib.Location3D {
	result := make([]vlib.Location3D, 0, nx*ny)
	x0 := -float64(nx-1) * px / 2.0
	y0 := float64(ny-1) * py / 2.0
	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			result = append(result, vlib.Location3D{X: x0 + float64(c)*px, Y: y0 - float64(r)*py})
		}
	}
	return result
}

// CircularCentres drops N points equally spaced on a circle, the first on +x.
func CircularCentres(N int, radius float64) []vlib.Location3D {
	result := make([]vlib.Location3D, N)
	delTheta := 2 * math.Pi / float64(N)
	for i := 0; i < N; i++ {
		result[i] = vlib.FromCmplx(cmplx.Rect(radius, delTheta*float64(i)))
	}
	return result
}

// HexCentres fills hexagonal rings around the origin until N centres are
// placed; neighbouring centres are pitch apart.
func HexCentres(N int, pitch float64) []vlib.Location3D {
	directions := []vlib.Location3D{{X: 1, Y: -1, Z: 0}, {X: 1, Y: 0, Z: -1}, {X: 0, Y: +1, Z: -1}, {X: -1, Y: +1, Z: 0}, {X: -1, Y: 0, Z: +1}, {X: 0, Y: -1, Z: +1}}
	hexsize := pitch / math.Sqrt(3)
	result := make([]vlib.Location3D, N)

	n := 1
	for r := 1; n < N; r++ {
		cube := directions[4].Scale3D(float64(r))
		for i := 0; i < 6 && n < N; i++ {
			for j := 0; j < r && n < N; j++ {
				result[n] = cube2XY(cube, hexsize)
				cube = directions[i].Shift3D(cube)
				n++
			}
		}
	}
	return result
}

func cube2XY(cube vlib.Location3D, hexsize float64) vlib.Location3D {
	var result vlib.Location3D
	x := hexsize * math.Sqrt(3) * (cube.X + cube.Z*0.5)
	y := hexsize * 1.5 * cube.Z
	result.X, result.Y = y, x
	return result
}
