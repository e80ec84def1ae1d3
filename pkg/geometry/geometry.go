// Package geometry generates closed, outward-wound triangle meshes of unit
// parametric solids.
//
// Every generator produces a shape of radius 1 centered at the origin with
// its poles on the Y axis. Tessellation parameters are validated and
// rejected, never clamped.
package geometry

import (
	"fmt"
	"strings"
)

// Shape identifies a generator variant.
type Shape int

const (
	ShapeCylinder Shape = iota + 1
	ShapeSphere
	ShapeCube
)

// MinSlices is the smallest number of radial slices accepted by the round shapes.
const MinSlices = 3

// MinStacks is the smallest number of stacks accepted by the sphere.
const MinStacks = 2

func (s Shape) String() string {
	switch s {
	case ShapeCylinder:
		return "cylinder"
	case ShapeSphere:
		return "sphere"
	case ShapeCube:
		return "cube"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// ParseShape converts a shape name ("cylinder", "sphere", "cube") to a Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(name) {
	case "cylinder":
		return ShapeCylinder, nil
	case "sphere":
		return ShapeSphere, nil
	case "cube", "box":
		return ShapeCube, nil
	default:
		return 0, fmt.Errorf("unknown shape %q", name)
	}
}

// Generator builds a mesh from its shape parameters.
type Generator interface {
	// Shape returns the variant tag.
	Shape() Shape

	// Generate builds the mesh. names supplies the mesh name and may be nil.
	Generate(names *Names) (*MeshBuffer, error)
}

// ShapeConfig describes a generator in configuration form.
type ShapeConfig struct {
	Shape  string `yaml:"shape"`
	Slices int    `yaml:"slices"`
	Stacks int    `yaml:"stacks"`
}

// New returns the generator described by cfg.
// Parameters are checked when the generator runs, not here.
func New(cfg ShapeConfig) (Generator, error) {
	shape, err := ParseShape(cfg.Shape)
	if err != nil {
		return nil, err
	}
	switch shape {
	case ShapeCylinder:
		return Cylinder{Slices: cfg.Slices}, nil
	case ShapeSphere:
		return Sphere{Slices: cfg.Slices, Stacks: cfg.Stacks}, nil
	default:
		return Cube{}, nil
	}
}

// Names hands out default mesh names, one counter per shape.
// The zero value is ready to use. A Names is owned by its caller; there is
// no package-level counter.
type Names struct {
	Prefix string
	counts map[Shape]int
}

// NewNames returns a naming context whose names start with prefix.
func NewNames(prefix string) *Names {
	return &Names{Prefix: prefix}
}

// Next returns the next name for shape, e.g. "cylinder.0", "cylinder.1".
func (n *Names) Next(shape Shape) string {
	if n == nil {
		return shape.String()
	}
	if n.counts == nil {
		n.counts = make(map[Shape]int)
	}
	i := n.counts[shape]
	n.counts[shape] = i + 1
	name := fmt.Sprintf("%s.%d", shape, i)
	if n.Prefix != "" {
		name = n.Prefix + "/" + name
	}
	return name
}

// Count returns how many names were handed out for shape.
func (n *Names) Count(shape Shape) int {
	if n == nil {
		return 0
	}
	return n.counts[shape]
}
