// figtool builds, inspects, animates and exports procedural figures.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/KreesDaShrimp/Figure8-sub001/internal/config"
	"github.com/KreesDaShrimp/Figure8-sub001/internal/export"
	"github.com/KreesDaShrimp/Figure8-sub001/internal/logger"
	"github.com/KreesDaShrimp/Figure8-sub001/internal/rig"
	"github.com/KreesDaShrimp/Figure8-sub001/pkg/geometry"
	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
	"github.com/KreesDaShrimp/Figure8-sub001/pkg/scene"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	args = args[1:]

	switch command {
	case "shape":
		cmdShape(cfg, args)
	case "rig", "tree":
		cmdRig(cfg, args)
	case "pose":
		cmdPose(cfg, args)
	case "track":
		cmdTrack(cfg, args)
	case "dump":
		cmdDump(cfg, args)
	case "export":
		cmdExport(cfg, args)
	case "config":
		cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`figtool - procedural figure builder

Usage:
  figtool [-config file] [-debug] [-log file] [-slices N] [-stacks N] [-out path] <command> [options]

Commands:
  shape [-slices N] [-stacks N] <cylinder|sphere|cube>  Generate a shape and report its mesh
  rig                                                   Build the humanoid and print its tree
  pose [-clip name] [-loop] [-seconds] <node> <frame>   Evaluate matching nodes at a frame
  track <node>                                          Dump recorded keyframes as YAML
  dump [-raw] <node>                                    Show node details
  export [-frame F | -time S] [-out path] [-binary]     Write the posed rig as glTF
  config [-save] [-path file]                           Print or save the effective config

Examples:
  figtool shape -slices 8 cylinder
  figtool pose l.leg 15
  figtool pose -clip walk -loop l.leg.upper 55
  figtool track r.arm.upper
  figtool -debug export -frame 20 -out walk.glb`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	logger.Sync()
	os.Exit(1)
}

func cmdShape(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("shape", flag.ExitOnError)
	slices := fs.Int("slices", cfg.Geometry.Slices, "Radial slices")
	stacks := fs.Int("stacks", cfg.Geometry.Stacks, "Sphere stacks")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: figtool shape [-slices N] [-stacks N] <cylinder|sphere|cube>")
		os.Exit(1)
	}

	gen, err := geometry.New(geometry.ShapeConfig{Shape: fs.Arg(0), Slices: *slices, Stacks: *stacks})
	if err != nil {
		fatal(err)
	}
	mesh, err := gen.Generate(geometry.NewNames(""))
	if err != nil {
		fatal(err)
	}

	b := mesh.Bounds()
	fmt.Printf("Shape:    %s\n", mesh.Shape)
	fmt.Printf("Name:     %s\n", mesh.Name)
	fmt.Printf("Vertices: %d\n", mesh.VertexCount())
	fmt.Printf("Normals:  %d\n", len(mesh.Normals))
	fmt.Printf("Faces:    %d\n", mesh.FaceCount())
	fmt.Printf("Bounds:   (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])

	if err := mesh.Validate(); err != nil {
		fmt.Printf("Valid:    no (%v)\n", err)
	} else {
		fmt.Println("Valid:    yes")
	}
	if mesh.IsManifold() {
		fmt.Println("Manifold: yes")
	} else {
		fmt.Println("Manifold: no")
	}
}

// buildRig builds the humanoid with both clips authored.
func buildRig(cfg *config.Config) *rig.Rig {
	rc := rig.Config{
		Height:     cfg.Rig.Height,
		Slices:     cfg.RigSlices(),
		Stacks:     cfg.RigStacks(),
		StepFrames: cfg.Rig.StepFrames,
		LegSwing:   cfg.Rig.LegSwing,
		ArmSwing:   cfg.Rig.ArmSwing,
		Logger:     logger.Log,
	}
	r, err := rig.Build(scene.NewGraph(), rc, geometry.NewNames(rig.RootName))
	if err != nil {
		fatal(err)
	}
	if _, err := r.AuthorWalk(cfg.Rig.WalkStart); err != nil {
		fatal(err)
	}
	if _, err := r.AuthorWave(cfg.Rig.WaveStart); err != nil {
		fatal(err)
	}
	return r
}

// matches resolves a name substring or exits.
func matches(r *rig.Rig, sub string) []scene.Handle {
	hs := r.Graph.FindByName(r.Root, sub)
	if len(hs) == 0 {
		fmt.Fprintf(os.Stderr, "No nodes match: %s\n", sub)
		os.Exit(1)
	}
	return hs
}

func cmdRig(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("rig", flag.ExitOnError)
	fs.Parse(args)

	r := buildRig(cfg)
	g := r.Graph

	g.Traverse(r.Root, func(h scene.Handle, n *scene.Node) {
		indent := strings.Repeat("  ", g.Depth(h))
		line := indent + n.Name
		if n.Mesh != nil {
			line += fmt.Sprintf("  [%s, %d faces]", n.Mesh.Name, n.Mesh.FaceCount())
		} else if p, ok := r.JointPosition(n.Name); ok {
			line += fmt.Sprintf("  @ %s", formatVec(p))
		}
		fmt.Println(line)
	})

	fmt.Println()
	fmt.Printf("Nodes:  %d\n", g.Len())
	fmt.Printf("Joints: %d\n", len(r.JointNames()))
	for _, c := range r.Clips() {
		fmt.Printf("Clip:   %-6s frames %d-%d\n", c.Name, c.Start, c.End)
	}
}

// parseFrame reads a frame argument, rejecting NaN and the infinities.
func parseFrame(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid frame %q: %w", s, err)
	}
	frame := float32(f)
	if math32.IsNaN(frame) || math32.IsInf(frame, 0) {
		return 0, fmt.Errorf("invalid frame %q: not a finite number", s)
	}
	return frame, nil
}

func cmdPose(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("pose", flag.ExitOnError)
	clipName := fs.String("clip", "", "Treat frame as a playback counter within this clip")
	loop := fs.Bool("loop", false, "Wrap the playback counter around the clip")
	seconds := fs.Bool("seconds", false, "Read the time argument in seconds at rig.fps")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: figtool pose [-clip name] [-loop] [-seconds] <node> <frame>")
		os.Exit(1)
	}

	frame, err := parseFrame(fs.Arg(1))
	if err != nil {
		fatal(err)
	}
	if *seconds {
		frame = cfg.FrameAt(frame)
	}

	r := buildRig(cfg)
	if *clipName != "" {
		clip, ok := r.Clip(*clipName)
		if !ok {
			fatal(fmt.Errorf("unknown clip %q", *clipName))
		}
		frame = clip.Frame(frame, *loop)
	}

	posed := r.Graph.Seek(r.Root, frame)
	logger.Debug("rig posed", zap.Float32("frame", frame), zap.Int("posed", posed))

	fmt.Printf("Frame: %g\n\n", frame)
	for _, h := range matches(r, fs.Arg(0)) {
		n := r.Graph.Node(h)
		fmt.Printf("%s\n", r.Graph.Path(h))
		fmt.Printf("  position: %s\n", formatVec(n.Transform.Position))
		fmt.Printf("  rotation: %s\n", formatVec(n.Transform.Rotation))
		fmt.Printf("  scale:    %s\n", formatVec(r.Graph.EffectiveScale(h)))
		fmt.Printf("  world:    %s\n", formatVec(r.Graph.WorldPosition(h)))
	}
}

// trackDump is the YAML shape of one node's keyframes.
type trackDump struct {
	Node string    `yaml:"node"`
	Keys []keyDump `yaml:"keys"`
}

type keyDump struct {
	Frame     int             `yaml:"frame"`
	Transform scene.Transform `yaml:"transform"`
}

func cmdTrack(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: figtool track <node>")
		os.Exit(1)
	}

	r := buildRig(cfg)

	var dumps []trackDump
	for _, h := range matches(r, fs.Arg(0)) {
		n := r.Graph.Node(h)
		tr := n.Track()
		if tr == nil {
			continue
		}
		d := trackDump{Node: r.Graph.Path(h)}
		for i := 0; i < tr.Len(); i++ {
			k := tr.At(i)
			d.Keys = append(d.Keys, keyDump{Frame: k.Frame, Transform: k.Pose.Transform()})
		}
		dumps = append(dumps, d)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(dumps); err != nil {
		fatal(err)
	}
	enc.Close()
}

func cmdDump(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	raw := fs.Bool("raw", false, "Dump the raw node structure")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: figtool dump [-raw] <node>")
		os.Exit(1)
	}

	r := buildRig(cfg)
	g := r.Graph

	dumper := spew.ConfigState{Indent: "  ", MaxDepth: 3, DisablePointerAddresses: true, SortKeys: true}
	for _, h := range matches(r, fs.Arg(0)) {
		n := g.Node(h)
		if *raw {
			fmt.Printf("%s (handle %d)\n", g.Path(h), h)
			dumper.Fdump(os.Stdout, n)
			continue
		}

		fmt.Printf("Node:     %s (handle %d)\n", g.Path(h), h)
		fmt.Printf("Depth:    %d\n", g.Depth(h))
		if p := n.Parent(); p != scene.Nil {
			fmt.Printf("Parent:   %s\n", g.Node(p).Name)
		}
		var children []string
		for _, c := range n.Children() {
			children = append(children, g.Node(c).Name)
		}
		fmt.Printf("Children: %s\n", strings.Join(children, ", "))
		if n.Mesh != nil {
			fmt.Printf("Mesh:     %s (%d vertices, %d faces)\n", n.Mesh.Name, n.Mesh.VertexCount(), n.Mesh.FaceCount())
		}
		if st := n.ScaleTarget(); st != scene.Nil {
			fmt.Printf("Scale on: %s\n", g.Node(st).Name)
		}
		fmt.Printf("Position: %s\n", formatVec(n.Transform.Position))
		fmt.Printf("Rotation: %s\n", formatVec(n.Transform.Rotation))
		fmt.Printf("Scale:    %s\n", formatVec(n.Transform.Scale))
		fmt.Printf("Pivot:    %s\n", formatVec(n.Transform.Pivot))
		if tr := n.Track(); tr != nil {
			first, last, _ := tr.Range()
			fmt.Printf("Track:    %d keys, frames %d-%d\n", tr.Len(), first, last)
		}
		fmt.Println("World:")
		printMatrix(g.WorldMatrix(h))
		fmt.Println()
	}
}

func cmdExport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	frame := fs.Float64("frame", float64(cfg.Export.Frame), "Frame to pose the rig at")
	at := fs.Float64("time", -1, "Pose time in seconds at rig.fps; overrides -frame")
	out := fs.String("out", cfg.Export.Path, "Output path (.glb or .gltf)")
	binary := fs.Bool("binary", cfg.Export.Binary, "Write GLB regardless of extension")
	fs.Parse(args)

	// The extension decides unless -binary was given explicitly.
	asBinary := *binary
	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "binary" {
			explicit = true
		}
	})
	if !explicit {
		switch strings.ToLower(filepath.Ext(*out)) {
		case ".glb":
			asBinary = true
		case ".gltf":
			asBinary = false
		}
	}

	if *at >= 0 {
		*frame = float64(cfg.FrameAt(float32(*at)))
	}

	r := buildRig(cfg)
	e := export.New(logger.Log)
	if _, err := e.AddFrame(r.Graph, r.Root, float32(*frame)); err != nil {
		fatal(err)
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fatal(err)
		}
	}
	if err := e.Save(*out, asBinary); err != nil {
		fatal(err)
	}

	doc := e.Document()
	fmt.Printf("Exported %s at frame %g (%d nodes, %d meshes)\n", *out, *frame, len(doc.Nodes), len(doc.Meshes))
}

func cmdConfig(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.Bool("save", false, "Save the effective config to the user config directory")
	path := fs.String("path", "", "Save to this file instead")
	fs.Parse(args)

	switch {
	case *path != "":
		if err := cfg.SaveTo(*path); err != nil {
			fatal(err)
		}
		fmt.Printf("Saved %s\n", *path)
	case *save:
		if err := cfg.Save(); err != nil {
			fatal(err)
		}
		fmt.Printf("Saved %s\n", filepath.Join(config.ConfigDir(), config.FileName))
	default:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fatal(err)
		}
		os.Stdout.Write(data)
	}
}

func formatVec(v math.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

func printMatrix(m math.Mat4) {
	for row := 0; row < 4; row++ {
		fmt.Printf("  [%8.4f %8.4f %8.4f %8.4f]\n", m[row], m[4+row], m[8+row], m[12+row])
	}
}
