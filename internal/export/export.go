// Package export writes scene graphs as glTF 2.0 documents.
//
// Every scene node becomes a glTF node carrying its local matrix, so pivots
// and isolated scale survive unchanged. Meshes are de-indexed per face
// corner because glTF attributes are per vertex.
package export

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/KreesDaShrimp/Figure8-sub001/internal/logger"
	"github.com/KreesDaShrimp/Figure8-sub001/pkg/geometry"
	"github.com/KreesDaShrimp/Figure8-sub001/pkg/scene"
)

// Generator is written to the asset header.
const Generator = "figtool"

// Exporter accumulates graphs into one glTF document.
type Exporter struct {
	doc    *gltf.Document
	meshes map[*geometry.MeshBuffer]uint32
	log    *zap.Logger
}

// New creates an exporter with an empty document. A nil log discards.
func New(log *zap.Logger) *Exporter {
	doc := gltf.NewDocument()
	doc.Asset.Generator = Generator
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: "default",
	})
	return &Exporter{
		doc:    doc,
		meshes: make(map[*geometry.MeshBuffer]uint32),
		log:    logger.OrNop(log).Named("export"),
	}
}

// Document returns the document built so far.
func (e *Exporter) Document() *gltf.Document { return e.doc }

// AddGraph adds the subtree rooted at root, in its current pose, as a scene
// root and returns the glTF indices of the added roots. Pass scene.Nil to
// add every tree of g.
func (e *Exporter) AddGraph(g *scene.Graph, root scene.Handle) ([]uint32, error) {
	roots := []scene.Handle{root}
	if root == scene.Nil {
		roots = g.Roots()
	}

	var added []uint32
	for _, h := range roots {
		if !g.Valid(h) {
			return nil, errors.Wrapf(scene.ErrInvalidHandle, "export root %d", h)
		}
		idx, err := e.addNode(g, h)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to export %q", g.Node(h).Name)
		}
		e.doc.Scenes[0].Nodes = append(e.doc.Scenes[0].Nodes, idx)
		added = append(added, idx)
	}

	e.log.Debug("graph exported",
		zap.Int("roots", len(added)),
		zap.Int("nodes", len(e.doc.Nodes)),
		zap.Int("meshes", len(e.doc.Meshes)))
	return added, nil
}

// AddFrame poses the subtree rooted at root at frame and adds it.
func (e *Exporter) AddFrame(g *scene.Graph, root scene.Handle, frame float32) ([]uint32, error) {
	posed := g.Seek(root, frame)
	e.log.Debug("posed for export", zap.Float32("frame", frame), zap.Int("posed", posed))
	return e.AddGraph(g, root)
}

func (e *Exporter) addNode(g *scene.Graph, h scene.Handle) (uint32, error) {
	n := g.Node(h)
	local := g.LocalMatrix(h)

	node := &gltf.Node{
		Name:     n.Name,
		Matrix:   [16]float32(local),
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
	idx := uint32(len(e.doc.Nodes))
	e.doc.Nodes = append(e.doc.Nodes, node)

	if n.Mesh != nil {
		mesh, err := e.mesh(n.Mesh)
		if err != nil {
			return 0, err
		}
		node.Mesh = gltf.Index(mesh)
		if det := mgl32.Mat4(g.WorldMatrix(h)).Det(); det < 0 {
			e.log.Warn("mirrored transform flips winding",
				zap.String("node", g.Path(h)),
				zap.Float32("det", det))
		}
	}

	for _, c := range n.Children() {
		child, err := e.addNode(g, c)
		if err != nil {
			return 0, err
		}
		node.Children = append(node.Children, child)
	}
	return idx, nil
}

// mesh returns the glTF mesh index for buf, writing it on first use.
func (e *Exporter) mesh(buf *geometry.MeshBuffer) (uint32, error) {
	if idx, ok := e.meshes[buf]; ok {
		return idx, nil
	}
	if err := buf.Validate(); err != nil {
		return 0, errors.Wrapf(err, "Invalid mesh %q", buf.Name)
	}

	flat := buf.Flatten()
	positions := make([][3]float32, len(flat.Vertices))
	normals := make([][3]float32, len(flat.Vertices))
	for i, v := range flat.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
	}

	indices := modeler.WriteIndices(e.doc, flat.Indices)
	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(e.doc, positions),
		"NORMAL":   modeler.WriteNormal(e.doc, normals),
	}

	idx := uint32(len(e.doc.Meshes))
	e.doc.Meshes = append(e.doc.Meshes, &gltf.Mesh{
		Name: buf.Name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: attributes,
			Material:   gltf.Index(0),
		}},
	})
	e.meshes[buf] = idx
	return idx, nil
}

// Write encodes the document to w, as GLB when binary is set.
func (e *Exporter) Write(w io.Writer, binary bool) error {
	if !binary {
		e.embedBuffers()
	}
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = binary
	if err := encoder.Encode(e.doc); err != nil {
		return errors.Wrap(err, "Failed to encode gltf")
	}
	return nil
}

// Save writes the document to path, as GLB when binary is set.
func (e *Exporter) Save(path string, binary bool) error {
	var err error
	if binary {
		err = gltf.SaveBinary(e.doc, path)
	} else {
		e.embedBuffers()
		err = gltf.Save(e.doc, path)
	}
	if err != nil {
		return errors.Wrapf(err, "Failed to save %s", path)
	}
	e.log.Info("saved",
		zap.String("path", path),
		zap.Bool("binary", binary),
		zap.Int("nodes", len(e.doc.Nodes)),
		zap.Int("meshes", len(e.doc.Meshes)))
	return nil
}

// embedBuffers keeps .gltf output self contained.
func (e *Exporter) embedBuffers() {
	for _, b := range e.doc.Buffers {
		if b.URI == "" {
			b.EmbeddedResource()
		}
	}
}
