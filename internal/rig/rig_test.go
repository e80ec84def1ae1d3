package rig

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/KreesDaShrimp/Figure8-sub001/pkg/geometry"
	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
	"github.com/KreesDaShrimp/Figure8-sub001/pkg/scene"
)

func build(t *testing.T) *Rig {
	t.Helper()
	r, err := Build(scene.NewGraph(), DefaultConfig(), geometry.NewNames("figure"))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return r
}

func TestBuildJoints(t *testing.T) {
	r := build(t)

	want := []string{RootName, "pelvis", "torso", "neck", "head"}
	for _, side := range Sides {
		for _, limb := range []string{"arm.upper", "arm.lower", "hand", "leg.upper", "leg.lower", "foot"} {
			want = append(want, side+"."+limb)
		}
	}
	for _, name := range want {
		h, ok := r.Joint(name)
		if !ok {
			t.Errorf("missing joint %s", name)
			continue
		}
		if got := r.Graph.Node(h).Name; got != name {
			t.Errorf("joint %s has node name %s", name, got)
		}
	}
	if got := len(r.JointNames()); got != len(want) {
		t.Errorf("joint count = %d, want %d", got, len(want))
	}

	// One geometry child per segment, none for the root.
	geoms := r.Graph.FindByName(r.Root, scene.GeometrySuffix)
	if len(geoms) != len(want)-1 {
		t.Errorf("geometry nodes = %d, want %d", len(geoms), len(want)-1)
	}
	if r.Graph.Len() != len(want)+len(geoms) {
		t.Errorf("graph has %d nodes, want %d", r.Graph.Len(), len(want)+len(geoms))
	}
}

func TestBuildHierarchy(t *testing.T) {
	r := build(t)

	tests := []struct{ child, parent string }{
		{"pelvis", RootName},
		{"torso", "pelvis"},
		{"head", "neck"},
		{"l.arm.upper", "torso"},
		{"r.hand", "r.arm.lower"},
		{"l.leg.upper", "pelvis"},
		{"r.foot", "r.leg.lower"},
	}
	for _, tt := range tests {
		c, _ := r.Joint(tt.child)
		p, _ := r.Joint(tt.parent)
		if got := r.Graph.Node(c).Parent(); got != p {
			t.Errorf("parent of %s = %s, want %s", tt.child, r.Graph.Node(got).Name, tt.parent)
		}
	}
}

// worldBounds returns the world-space vertical extent of every mesh.
func worldBounds(r *Rig) (lo, hi float32) {
	lo, hi = math32.MaxFloat32, -math32.MaxFloat32
	r.Graph.Traverse(r.Root, func(h scene.Handle, n *scene.Node) {
		if n.Mesh == nil {
			return
		}
		m := r.Graph.WorldMatrix(h)
		for _, p := range n.Mesh.Positions {
			y := m.TransformPoint(p).Y
			lo = math32.Min(lo, y)
			hi = math32.Max(hi, y)
		}
	})
	return lo, hi
}

func TestBuildProportions(t *testing.T) {
	r := build(t)
	height := DefaultConfig().Height

	lo, hi := worldBounds(r)
	if math32.Abs(lo) > 1e-4 {
		t.Errorf("lowest vertex at y = %f, want 0", lo)
	}
	if math32.Abs(hi-height) > 1e-4 {
		t.Errorf("highest vertex at y = %f, want %f", hi, height)
	}

	for _, limb := range []string{"arm.upper", "hand", "leg.lower", "foot"} {
		l, _ := r.JointPosition("l." + limb)
		rr, _ := r.JointPosition("r." + limb)
		if !l.ApproxEqual(math.Vec3{X: -rr.X, Y: rr.Y, Z: rr.Z}, 1e-5) {
			t.Errorf("%s not mirrored: l=%v r=%v", limb, l, rr)
		}
		if l.X <= 0 {
			t.Errorf("left %s at x = %f, want positive", limb, l.X)
		}
	}
}

func TestBuildIsolatesScale(t *testing.T) {
	r := build(t)

	for _, name := range r.JointNames() {
		h, _ := r.Joint(name)
		n := r.Graph.Node(h)
		if n.Transform.Scale != math.One {
			t.Errorf("joint %s carries scale %v", name, n.Transform.Scale)
		}
		if n.Mesh != nil {
			t.Errorf("joint %s holds a mesh", name)
		}
		if s := r.Graph.WorldMatrix(h).ScaleFactors(); !s.ApproxEqual(math.One, 1e-5) {
			t.Errorf("joint %s world scale = %v, want (1, 1, 1)", name, s)
		}
	}
}

func TestBuildInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Slices = 2
	if _, err := Build(scene.NewGraph(), cfg, nil); !errors.Is(err, geometry.ErrShapeParameter) {
		t.Errorf("slices=2: expected ErrShapeParameter, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Height = 0
	if _, err := Build(scene.NewGraph(), cfg, nil); err == nil {
		t.Error("height=0: expected error")
	}
}

func TestBuildSharesGraph(t *testing.T) {
	g := scene.NewGraph()
	names := geometry.NewNames("")
	a, err := Build(g, DefaultConfig(), names)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(g, DefaultConfig(), names)
	if err != nil {
		t.Fatal(err)
	}

	if len(g.Roots()) != 2 || a.Root == b.Root {
		t.Errorf("roots = %v, want two distinct figures", g.Roots())
	}
	// The shared naming context keeps counting across figures.
	ha, _ := a.Joint("head")
	hb, _ := b.Joint("head")
	ma := g.Node(g.Node(ha).Children()[0]).Mesh
	mb := g.Node(g.Node(hb).Children()[0]).Mesh
	if ma.Name == mb.Name {
		t.Errorf("both heads use mesh name %q", ma.Name)
	}
}
