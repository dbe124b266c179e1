package antenna

import (
	"github.com/wiless/vlib"
)

// Spacing is the per-axis element spacing inside a block. Linear blocks only
// use X.
type Spacing struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
}

// HalfWave returns λ/2 spacing on both axes.
func HalfWave(lamda float64) Spacing {
	return Spacing{X: lamda / 2.0, Y: lamda / 2.0}
}

// Block is a fixed-geometry cluster of elements sharing one centre.
// Elements are returned in the same order SetExcitations expects them.
type Block interface {
	Centre() vlib.Location3D
	Spacing() Spacing
	Arity() int
	Elements() []Element
	SetExcitations(values vlib.VectorC) error
}

// LinearBlock holds two elements on the x axis: left (-x) then right (+x).
type LinearBlock struct {
	centre   vlib.Location3D
	spacing  Spacing
	elements [2]Element
}

// NewLinearBlock places two elements at centre ± spacing.X/2.
func NewLinearBlock(centre vlib.Location3D, spacing Spacing) (*LinearBlock, error) {
	if !finiteLocation(centre) {
		return nil, invalidf("block centre %v is not finite", centre)
	}
	if !isFinite(spacing.X) || spacing.X <= 0 {
		return nil, invalidf("linear spacing %v", spacing.X)
	}
	b := &LinearBlock{centre: centre, spacing: spacing}
	dx := spacing.X / 2.0
	b.elements[0] = newElement(vlib.Location3D{X: centre.X - dx, Y: centre.Y, Z: centre.Z})
	b.elements[1] = newElement(vlib.Location3D{X: centre.X + dx, Y: centre.Y, Z: centre.Z})
	return b, nil
}

func (b *LinearBlock) Centre() vlib.Location3D { return b.centre }
func (b *LinearBlock) Spacing() Spacing        { return b.spacing }
func (b *LinearBlock) Arity() int              { return len(b.elements) }

// Elements returns a copy of the two elements.
func (b *LinearBlock) Elements() []Element {
	result := make([]Element, len(b.elements))
	copy(result, b.elements[:])
	return result
}

// SetExcitations assigns values[0] to the left and values[1] to the right element.
func (b *LinearBlock) SetExcitations(values vlib.VectorC) error {
	if len(values) != len(b.elements) {
		return invalidf("linear block expects %d excitations, got %d", len(b.elements), len(values))
	}
	for i := range b.elements {
		b.elements[i].excitation = values[i]
	}
	return nil
}

// PlanarBlock holds four elements on a rectangle in the order
// (-x,+y), (+x,+y), (-x,-y), (+x,-y).
type PlanarBlock struct {
	centre   vlib.Location3D
	spacing  Spacing
	elements [4]Element
}

// NewPlanarBlock places four elements at the corner offsets ±spacing/2.
func NewPlanarBlock(centre vlib.Location3D, spacing Spacing) (*PlanarBlock, error) {
	if !finiteLocation(centre) {
		return nil, invalidf("block centre %v is not finite", centre)
	}
	if !isFinite(spacing.X, spacing.Y) || spacing.X <= 0 || spacing.Y <= 0 {
		return nil, invalidf("planar spacing %v", spacing)
	}
	b := &PlanarBlock{centre: centre, spacing: spacing}
	dx, dy := spacing.X/2.0, spacing.Y/2.0
	offsets := [4][2]float64{{-dx, dy}, {dx, dy}, {-dx, -dy}, {dx, -dy}}
	for i, off := range offsets {
		b.elements[i] = newElement(vlib.Location3D{X: centre.X + off[0], Y: centre.Y + off[1], Z: centre.Z})
	}
	return b, nil
}

func (b *PlanarBlock) Centre() vlib.Location3D { return b.centre }
func (b *PlanarBlock) Spacing() Spacing        { return b.spacing }
func (b *PlanarBlock) Arity() int              { return len(b.elements) }

// Elements returns a copy of the four elements.
func (b *PlanarBlock) Elements() []Element {
	result := make([]Element, len(b.elements))
	copy(result, b.elements[:])
	return result
}

func (b *PlanarBlock) SetExcitations(values vlib.VectorC) error {
	if len(values) != len(b.elements) {
		return invalidf("planar block expects %d excitations, got %d", len(b.elements), len(values))
	}
	for i := range b.elements {
		b.elements[i].excitation = values[i]
	}
	return nil
}
