// Package rig assembles a humanoid figure from generated meshes and authors
// keyframe clips on it.
//
// Every segment hangs from (or stands on) its proximal joint. The joint is
// the node's pivot, so rotating a node swings the segment and all of its
// descendants about that joint. Segment scale is isolated on a geometry
// child so children never inherit it.
package rig

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/KreesDaShrimp/Figure8-sub001/internal/logger"
	"github.com/KreesDaShrimp/Figure8-sub001/pkg/geometry"
	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
	"github.com/KreesDaShrimp/Figure8-sub001/pkg/scene"
)

// RootName is the name of the rig's root node.
const RootName = "figure"

// Sides are the prefixes of the mirrored limb chains. The figure faces +Z,
// so its left side is +X.
var Sides = []string{"l", "r"}

// Config holds rig proportions and clip authoring settings.
type Config struct {
	Height     float32 // Ground to top of head, in world units
	Slices     int     // Radial tessellation of every segment
	Stacks     int     // Sphere stacks
	StepFrames int     // Frames between authored keys
	LegSwing   float32 // Peak hip swing in radians
	ArmSwing   float32 // Peak shoulder swing in radians

	Logger *zap.Logger // nil discards
}

// DefaultConfig returns a 1.8 unit tall figure.
func DefaultConfig() Config {
	return Config{
		Height:     1.8,
		Slices:     12,
		Stacks:     8,
		StepFrames: 10,
		LegSwing:   0.5,
		ArmSwing:   0.35,
	}
}

// segment describes one body part. Offsets and sizes are fractions of the
// figure height; pivot is in unit mesh space.
type segment struct {
	name   string
	parent string
	shape  geometry.Shape
	pivot  math.Vec3 // proximal joint on the unit mesh
	offset math.Vec3 // joint relative to the parent's joint
	size   math.Vec3 // half extents
}

var (
	hang  = math.Vec3{Y: 1}  // joint at the top of the mesh
	stand = math.Vec3{Y: -1} // joint at the bottom of the mesh
)

// Head top lands at 1.0 and foot soles at 0.0.
var trunk = []segment{
	{"pelvis", RootName, geometry.ShapeSphere, math.Vec3{}, math.Vec3{Y: 0.52}, math.Vec3{X: 0.085, Y: 0.05, Z: 0.06}},
	{"torso", "pelvis", geometry.ShapeCylinder, stand, math.Vec3{Y: 0.03}, math.Vec3{X: 0.075, Y: 0.15, Z: 0.045}},
	{"neck", "torso", geometry.ShapeCylinder, stand, math.Vec3{Y: 0.30}, math.Vec3{X: 0.025, Y: 0.02, Z: 0.025}},
	{"head", "neck", geometry.ShapeSphere, stand, math.Vec3{Y: 0.04}, math.Vec3{X: 0.05, Y: 0.055, Z: 0.055}},
}

// limbs are authored for the left side and mirrored on X for the right.
var limbs = []segment{
	{"arm.upper", "torso", geometry.ShapeCylinder, hang, math.Vec3{X: 0.1, Y: 0.28}, math.Vec3{X: 0.025, Y: 0.085, Z: 0.025}},
	{"arm.lower", "arm.upper", geometry.ShapeCylinder, hang, math.Vec3{Y: -0.17}, math.Vec3{X: 0.02, Y: 0.075, Z: 0.02}},
	{"hand", "arm.lower", geometry.ShapeSphere, hang, math.Vec3{Y: -0.15}, math.Vec3{X: 0.02, Y: 0.04, Z: 0.015}},
	{"leg.upper", "pelvis", geometry.ShapeCylinder, hang, math.Vec3{X: 0.05}, math.Vec3{X: 0.035, Y: 0.1225, Z: 0.035}},
	{"leg.lower", "leg.upper", geometry.ShapeCylinder, hang, math.Vec3{Y: -0.245}, math.Vec3{X: 0.028, Y: 0.1225, Z: 0.028}},
	{"foot", "leg.lower", geometry.ShapeCube, hang, math.Vec3{Y: -0.245, Z: 0.025}, math.Vec3{X: 0.03, Y: 0.015, Z: 0.06}},
}

// segments returns the full body plan with sided limb names.
func segments() []segment {
	out := append([]segment(nil), trunk...)
	for _, side := range Sides {
		mirror := float32(1)
		if side == "r" {
			mirror = -1
		}
		for _, s := range limbs {
			s.name = side + "." + s.name
			if s.parent != "torso" && s.parent != "pelvis" {
				s.parent = side + "." + s.parent
			}
			s.offset.X *= mirror
			out = append(out, s)
		}
	}
	return out
}

// Rig is a humanoid built into a scene graph.
type Rig struct {
	Graph *scene.Graph
	Root  scene.Handle

	cfg    Config
	log    *zap.Logger
	joints map[string]scene.Handle
	rest   map[scene.Handle]scene.Transform
	clips  []Clip
}

// Build assembles the humanoid under a new root of g. Meshes are named
// through names.
func Build(g *scene.Graph, cfg Config, names *geometry.Names) (*Rig, error) {
	if cfg.Height <= 0 {
		return nil, fmt.Errorf("rig height must be positive, got %v", cfg.Height)
	}
	if cfg.StepFrames <= 0 {
		return nil, fmt.Errorf("rig step frames must be positive, got %d", cfg.StepFrames)
	}

	root, err := g.Add(scene.Nil, RootName)
	if err != nil {
		return nil, err
	}
	r := &Rig{
		Graph:  g,
		Root:   root,
		cfg:    cfg,
		log:    logger.OrNop(cfg.Logger).Named("rig"),
		joints: map[string]scene.Handle{RootName: root},
		rest:   make(map[scene.Handle]scene.Transform),
	}
	pivots := map[string]math.Vec3{RootName: {}}

	for _, s := range segments() {
		parent, ok := r.joints[s.parent]
		if !ok {
			return nil, fmt.Errorf("segment %s: unknown parent %s", s.name, s.parent)
		}
		h, err := r.addSegment(parent, pivots[s.parent], s, names)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", s.name, err)
		}
		r.joints[s.name] = h
		pivots[s.name] = s.pivot
	}

	for _, h := range r.joints {
		r.rest[h] = g.Node(h).Transform
	}

	r.log.Debug("rig built",
		zap.Float32("height", cfg.Height),
		zap.Int("joints", len(r.joints)),
		zap.Int("nodes", g.Len()))
	return r, nil
}

func (r *Rig) addSegment(parent scene.Handle, parentPivot math.Vec3, s segment, names *geometry.Names) (scene.Handle, error) {
	gen, err := geometry.New(geometry.ShapeConfig{
		Shape:  s.shape.String(),
		Slices: r.cfg.Slices,
		Stacks: r.cfg.Stacks,
	})
	if err != nil {
		return scene.Nil, err
	}
	mesh, err := gen.Generate(names)
	if err != nil {
		return scene.Nil, err
	}

	h, err := r.Graph.Add(parent, s.name)
	if err != nil {
		return scene.Nil, err
	}
	n := r.Graph.Node(h)
	n.Mesh = mesh

	pos := parentPivot.Add(s.offset.Scale(r.cfg.Height)).Sub(s.pivot)
	size := s.size.Scale(r.cfg.Height)
	n.Transform.SetPosition(pos.X, pos.Y, pos.Z)
	n.Transform.SetPivot(s.pivot.X, s.pivot.Y, s.pivot.Z)
	n.Transform.SetScale(size.X, size.Y, size.Z)

	if _, err := r.Graph.IsolateScale(h); err != nil {
		return scene.Nil, err
	}
	return h, nil
}

// Joint returns the node for a joint name such as "l.arm.upper".
func (r *Rig) Joint(name string) (scene.Handle, bool) {
	h, ok := r.joints[name]
	return h, ok
}

// JointNames returns every joint name in sorted order.
func (r *Rig) JointNames() []string {
	names := make([]string, 0, len(r.joints))
	for name := range r.joints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// JointPosition returns the world position of a joint's pivot.
func (r *Rig) JointPosition(name string) (math.Vec3, bool) {
	h, ok := r.joints[name]
	if !ok {
		return math.Vec3{}, false
	}
	n := r.Graph.Node(h)
	return r.Graph.WorldMatrix(h).TransformPoint(n.Transform.Pivot), true
}

// Reset returns every joint to its rest transform. Geometry scale is left
// alone.
func (r *Rig) Reset() {
	for h, t := range r.rest {
		r.Graph.Node(h).Transform = t
	}
}

// Clips returns the clips authored so far, in authoring order.
func (r *Rig) Clips() []Clip {
	return append([]Clip(nil), r.clips...)
}

// Clip returns the authored clip with the given name.
func (r *Rig) Clip(name string) (Clip, bool) {
	for _, c := range r.clips {
		if c.Name == name {
			return c, true
		}
	}
	return Clip{}, false
}

// rotate sets the live rotation of a joint.
func (r *Rig) rotate(name string, x, y, z float32) {
	r.Graph.Node(r.joints[name]).Transform.SetRotation(x, y, z)
}

// offset moves a joint away from its rest position.
func (r *Rig) offset(name string, d math.Vec3) {
	h := r.joints[name]
	rest := r.rest[h].Position.Add(d)
	r.Graph.Node(h).Transform.SetPosition(rest.X, rest.Y, rest.Z)
}

// recordAll snapshots every joint at frame so clips never bleed into each
// other through clamping.
func (r *Rig) recordAll(frame int) error {
	for _, name := range r.JointNames() {
		if err := r.Graph.RecordPose(r.joints[name], frame); err != nil {
			return err
		}
	}
	return nil
}
