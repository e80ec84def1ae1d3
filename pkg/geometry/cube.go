package geometry

import "github.com/KreesDaShrimp/Figure8-sub001/pkg/math"

// Cube is an axis-aligned cube with half-extent 1.
type Cube struct{}

// Shape implements Generator.
func (Cube) Shape() Shape { return ShapeCube }

// cubeSides lists each side's outward normal and its corners in
// counter-clockwise order seen from outside. Corner i sits at
// (±1, ±1, ±1) with bit 0 selecting +X, bit 1 +Y and bit 2 +Z.
var cubeSides = [6]struct {
	normal  math.Vec3
	corners [4]uint32
}{
	{math.Vec3{X: 1}, [4]uint32{1, 3, 7, 5}},
	{math.Vec3{X: -1}, [4]uint32{0, 4, 6, 2}},
	{math.Vec3{Y: 1}, [4]uint32{2, 6, 7, 3}},
	{math.Vec3{Y: -1}, [4]uint32{0, 1, 5, 4}},
	{math.Vec3{Z: 1}, [4]uint32{4, 5, 7, 6}},
	{math.Vec3{Z: -1}, [4]uint32{0, 2, 3, 1}},
}

// Generate builds 8 shared corners, 6 side normals and 12 faces.
func (Cube) Generate(names *Names) (*MeshBuffer, error) {
	b := newBuilder(ShapeCube, names.Next(ShapeCube), 8, 6, 12)

	for i := 0; i < 8; i++ {
		b.vertex(math.Vec3{X: sign(i & 1), Y: sign(i & 2), Z: sign(i & 4)})
	}
	for _, side := range cubeSides {
		n := b.normal(side.normal)
		c := side.corners
		b.tri(c[0], c[1], c[2], n, n, n)
		b.tri(c[0], c[2], c[3], n, n, n)
	}

	return b.buf, nil
}

func sign(bit int) float32 {
	if bit != 0 {
		return 1
	}
	return -1
}
