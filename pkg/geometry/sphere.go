package geometry

import (
	"github.com/chewxy/math32"

	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
)

// Sphere is a UV sphere of radius 1.
type Sphere struct {
	// Slices is the number of vertices around each ring.
	Slices int
	// Stacks is the number of latitude bands; Stacks-1 rings are emitted.
	Stacks int
}

// Shape implements Generator.
func (Sphere) Shape() Shape { return ShapeSphere }

// Generate builds (Stacks-1)·Slices+2 vertices and 2·Slices·(Stacks-1) faces.
// Index 0 is the top pole and the last index the bottom pole. Normals share
// the vertex indexing since every position on the unit sphere is its own
// outward normal.
func (sp Sphere) Generate(names *Names) (*MeshBuffer, error) {
	if err := checkMin(ShapeSphere, "slices", sp.Slices, MinSlices); err != nil {
		return nil, err
	}
	if err := checkMin(ShapeSphere, "stacks", sp.Stacks, MinStacks); err != nil {
		return nil, err
	}
	slices, stacks := sp.Slices, sp.Stacks
	rings := stacks - 1
	nv := rings*slices + 2
	b := newBuilder(ShapeSphere, names.Next(ShapeSphere), nv, nv, 2*slices*rings)

	add := func(p math.Vec3) uint32 {
		b.normal(p)
		return b.vertex(p)
	}

	top := add(math.Vec3{X: 0, Y: 1, Z: 0})
	dPhi := math32.Pi / float32(stacks)
	dTheta := 2 * math32.Pi / float32(slices)
	for i := 1; i < stacks; i++ {
		sinPhi, cosPhi := math32.Sincos(float32(i) * dPhi)
		for j := 0; j < slices; j++ {
			sinTheta, cosTheta := math32.Sincos(float32(j) * dTheta)
			add(math.Vec3{X: sinPhi * sinTheta, Y: cosPhi, Z: sinPhi * cosTheta})
		}
	}
	bottom := add(math.Vec3{X: 0, Y: -1, Z: 0})

	ring := func(r, j int) uint32 { return uint32(1 + r*slices + j%slices) }

	for j := 0; j < slices; j++ {
		b.smoothTri(top, ring(0, j), ring(0, j+1))
	}
	for r := 0; r < rings-1; r++ {
		for j := 0; j < slices; j++ {
			b.smoothTri(ring(r, j), ring(r+1, j), ring(r+1, j+1))
			b.smoothTri(ring(r, j), ring(r+1, j+1), ring(r, j+1))
		}
	}
	last := rings - 1
	for j := 0; j < slices; j++ {
		b.smoothTri(bottom, ring(last, j+1), ring(last, j))
	}

	return b.buf, nil
}
