package geometry

import (
	"fmt"

	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
)

// Face is a triangle. V indexes MeshBuffer.Positions and N indexes
// MeshBuffer.Normals, corner by corner.
type Face struct {
	V [3]uint32
	N [3]uint32
}

// MeshBuffer is an indexed triangle mesh with separately indexed normals.
// Faces wind counter-clockwise when seen from outside the shape.
type MeshBuffer struct {
	Name      string
	Shape     Shape
	Positions []math.Vec3
	Normals   []math.Vec3
	Faces     []Face
}

// Vertex represents a flattened mesh vertex ready for GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh holds de-indexed mesh data ready for GPU upload: one vertex per
// face corner and a triangle list.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// VertexCount returns the number of positions.
func (b *MeshBuffer) VertexCount() int { return len(b.Positions) }

// FaceCount returns the number of triangles.
func (b *MeshBuffer) FaceCount() int { return len(b.Faces) }

// Validate checks that every face index is in range and that no face
// repeats a vertex.
func (b *MeshBuffer) Validate() error {
	nv := uint32(len(b.Positions))
	nn := uint32(len(b.Normals))
	for i, f := range b.Faces {
		for c := 0; c < 3; c++ {
			if f.V[c] >= nv {
				return fmt.Errorf("face %d: vertex index %d out of range (%d vertices)", i, f.V[c], nv)
			}
			if f.N[c] >= nn {
				return fmt.Errorf("face %d: normal index %d out of range (%d normals)", i, f.N[c], nn)
			}
		}
		if f.V[0] == f.V[1] || f.V[1] == f.V[2] || f.V[0] == f.V[2] {
			return fmt.Errorf("face %d: repeated vertex in %v", i, f.V)
		}
	}
	return nil
}

// IsManifold reports whether every undirected edge is shared by exactly two
// faces, and each of those faces walks the edge in opposite directions.
func (b *MeshBuffer) IsManifold() bool {
	type edge struct{ a, b uint32 }
	directed := make(map[edge]int, len(b.Faces)*3)
	for _, f := range b.Faces {
		for c := 0; c < 3; c++ {
			directed[edge{f.V[c], f.V[(c+1)%3]}]++
		}
	}
	for e, n := range directed {
		if n != 1 || directed[edge{e.b, e.a}] != 1 {
			return false
		}
	}
	return len(b.Faces) > 0
}

// FaceNormal returns the geometric normal of face i from its winding.
func (b *MeshBuffer) FaceNormal(i int) math.Vec3 {
	f := b.Faces[i]
	v0 := b.Positions[f.V[0]]
	e1 := b.Positions[f.V[1]].Sub(v0)
	e2 := b.Positions[f.V[2]].Sub(v0)
	return e1.Cross(e2).Normalize()
}

// Centroid returns the centroid of face i.
func (b *MeshBuffer) Centroid(i int) math.Vec3 {
	f := b.Faces[i]
	sum := b.Positions[f.V[0]].Add(b.Positions[f.V[1]]).Add(b.Positions[f.V[2]])
	return sum.Scale(1.0 / 3.0)
}

// Bounds returns the axis-aligned bounding box of the positions.
func (b *MeshBuffer) Bounds() Bounds {
	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, p := range b.Positions {
		updateBounds(&bounds, p.Array())
	}
	return bounds
}

// Flatten de-indexes the buffer into one vertex per face corner, pairing
// each corner's position with its own normal.
func (b *MeshBuffer) Flatten() *Mesh {
	vertices := make([]Vertex, 0, len(b.Faces)*3)
	indices := make([]uint32, 0, len(b.Faces)*3)

	for _, f := range b.Faces {
		for c := 0; c < 3; c++ {
			indices = append(indices, uint32(len(vertices)))
			vertices = append(vertices, Vertex{
				Position: b.Positions[f.V[c]].Array(),
				Normal:   b.Normals[f.N[c]].Array(),
			})
		}
	}

	return &Mesh{
		Name:     b.Name,
		Vertices: vertices,
		Indices:  indices,
		Bounds:   b.Bounds(),
	}
}

// PositionArray returns the flattened mesh positions as x, y, z triples.
func (m *Mesh) PositionArray() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2])
	}
	return out
}

// NormalArray returns the flattened mesh normals as x, y, z triples.
func (m *Mesh) NormalArray() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.Normal[0], v.Normal[1], v.Normal[2])
	}
	return out
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// builder accumulates positions, normals and faces while a generator runs.
type builder struct {
	buf *MeshBuffer
}

func newBuilder(shape Shape, name string, vertices, normals, faces int) *builder {
	return &builder{buf: &MeshBuffer{
		Name:      name,
		Shape:     shape,
		Positions: make([]math.Vec3, 0, vertices),
		Normals:   make([]math.Vec3, 0, normals),
		Faces:     make([]Face, 0, faces),
	}}
}

func (b *builder) vertex(p math.Vec3) uint32 {
	b.buf.Positions = append(b.buf.Positions, p)
	return uint32(len(b.buf.Positions) - 1)
}

func (b *builder) normal(n math.Vec3) uint32 {
	b.buf.Normals = append(b.buf.Normals, n)
	return uint32(len(b.buf.Normals) - 1)
}

// tri adds a face whose corners use the given vertex and normal indices.
func (b *builder) tri(v0, v1, v2, n0, n1, n2 uint32) {
	b.buf.Faces = append(b.buf.Faces, Face{
		V: [3]uint32{v0, v1, v2},
		N: [3]uint32{n0, n1, n2},
	})
}

// smoothTri adds a face whose normal indices equal its vertex indices.
func (b *builder) smoothTri(v0, v1, v2 uint32) {
	b.tri(v0, v1, v2, v0, v1, v2)
}
