package geometry

import (
	"github.com/chewxy/math32"

	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
)

// Cylinder is a closed cylinder of radius 1 spanning y = -1 to y = 1.
type Cylinder struct {
	// Slices is the number of rim vertices around each cap.
	Slices int
}

// Shape implements Generator.
func (Cylinder) Shape() Shape { return ShapeCylinder }

// Generate builds 2·Slices+2 vertices and 4·Slices faces.
//
// Index layout: 0 is the top pole, 1 the bottom pole, then the top rim
// followed by the bottom rim. Normal 0 points up, normal 1 down, and normal
// 2+i is the radial direction of rim column i.
func (c Cylinder) Generate(names *Names) (*MeshBuffer, error) {
	if err := checkMin(ShapeCylinder, "slices", c.Slices, MinSlices); err != nil {
		return nil, err
	}
	n := c.Slices
	b := newBuilder(ShapeCylinder, names.Next(ShapeCylinder), 2*n+2, n+2, 4*n)

	top := b.vertex(math.Vec3{X: 0, Y: 1, Z: 0})
	bottom := b.vertex(math.Vec3{X: 0, Y: -1, Z: 0})
	up := b.normal(math.Vec3{X: 0, Y: 1, Z: 0})
	down := b.normal(math.Vec3{X: 0, Y: -1, Z: 0})

	step := 2 * math32.Pi / float32(n)
	radial := make([]uint32, n)
	for i := 0; i < n; i++ {
		s, co := math32.Sincos(float32(i) * step)
		b.vertex(math.Vec3{X: s, Y: 1, Z: co})
		radial[i] = b.normal(math.Vec3{X: s, Y: 0, Z: co}.Normalize())
	}
	for i := 0; i < n; i++ {
		s, co := math32.Sincos(float32(i) * step)
		b.vertex(math.Vec3{X: s, Y: -1, Z: co})
	}

	topRim := func(i int) uint32 { return uint32(2 + i%n) }
	bottomRim := func(i int) uint32 { return uint32(2 + n + i%n) }

	for i := 0; i < n; i++ {
		b.tri(top, topRim(i), topRim(i+1), up, up, up)
	}
	for i := 0; i < n; i++ {
		b.tri(bottom, bottomRim(i+1), bottomRim(i), down, down, down)
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		ni, nj := radial[i], radial[j]
		b.tri(topRim(i), bottomRim(i), bottomRim(j), ni, ni, nj)
		b.tri(topRim(i), bottomRim(j), topRim(j), ni, nj, nj)
	}

	return b.buf, nil
}
