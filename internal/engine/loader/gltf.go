// Package loader imports glTF 2.0 models as scene trees.
package loader

import (
	"encoding/binary"
	"fmt"
	gomath "math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/hot7585325/WebVR/internal/engine/scene"
	"github.com/hot7585325/WebVR/pkg/math"
)

// Load reads a glTF or GLB file and builds its default scene as a node tree
// named after the file. Parsed documents are cached by absolute path; use
// Reload to force a fresh read.
func Load(path string) (*scene.Node, error) {
	doc, err := document(path)
	if err != nil {
		return nil, err
	}
	return LoadDocument(doc, filepath.Base(path))
}

// Reload drops any cached document for path and loads it from disk again.
func Reload(path string) (*scene.Node, error) {
	if abs, err := filepath.Abs(path); err == nil {
		documents.drop(abs)
	}
	return Load(path)
}

func document(path string) (*gltf.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if doc, ok := documents.get(abs); ok {
		return doc, nil
	}
	doc, err := gltf.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("opening model %s: %w", path, err)
	}
	documents.set(abs, doc)
	return doc, nil
}

// LoadDocument builds a node tree from an already-parsed document. The
// returned root carries the given name and an identity transform; the
// document's nodes hang off it with their glTF names and local transforms.
// Every load builds fresh nodes, meshes, and materials, so callers holding
// references into an older tree keep seeing that tree.
func LoadDocument(doc *gltf.Document, name string) (*scene.Node, error) {
	meshes := make([]*scene.Mesh, len(doc.Meshes))
	for i, m := range doc.Meshes {
		mesh, err := buildMesh(doc, m)
		if err != nil {
			return nil, fmt.Errorf("mesh %d (%s): %w", i, m.Name, err)
		}
		meshes[i] = mesh
	}

	root := scene.NewNode(name)
	seen := make(map[int]bool)
	for _, idx := range rootIndices(doc) {
		child, err := buildNode(doc, idx, meshes, seen)
		if err != nil {
			return nil, err
		}
		if child != nil {
			root.AddChild(child)
		}
	}
	return root, nil
}

// rootIndices picks the node set to instantiate: the default scene, else the
// first scene, else every unparented node in the document.
func rootIndices(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}

	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// buildNode converts one document node and its subtree. seen guards against
// malformed documents with node cycles; a revisited node is dropped.
func buildNode(doc *gltf.Document, idx int, meshes []*scene.Mesh, seen map[int]bool) (*scene.Node, error) {
	if idx < 0 || idx >= len(doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if seen[idx] {
		return nil, nil
	}
	seen[idx] = true

	src := doc.Nodes[idx]
	node := scene.NewNode(src.Name)
	node.Transform = localTransform(src)

	if src.Mesh != nil {
		if *src.Mesh < 0 || *src.Mesh >= len(meshes) {
			return nil, fmt.Errorf("node %q: mesh index %d out of range", src.Name, *src.Mesh)
		}
		node.Mesh = meshes[*src.Mesh]
	}

	for _, c := range src.Children {
		child, err := buildNode(doc, c, meshes, seen)
		if err != nil {
			return nil, err
		}
		if child != nil {
			node.AddChild(child)
		}
	}
	return node, nil
}

var identityMatrix = [16]float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// localTransform composes a node's local matrix. glTF nodes carry either an
// explicit column-major matrix or a translation/rotation/scale triple.
// Hand-built documents can leave rotation and scale at their Go zero values,
// which are not the glTF defaults, so both spellings of "unset" map to
// identity here.
func localTransform(n *gltf.Node) math.Mat4 {
	if n.Matrix != ([16]float64{}) && n.Matrix != identityMatrix {
		var m math.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := math.Translate(
		float32(n.Translation[0]),
		float32(n.Translation[1]),
		float32(n.Translation[2]),
	)

	// A zero quaternion normalizes to identity inside ToMat4.
	q := math.Quat{
		X: float32(n.Rotation[0]),
		Y: float32(n.Rotation[1]),
		Z: float32(n.Rotation[2]),
		W: float32(n.Rotation[3]),
	}
	r := q.ToMat4()

	sx, sy, sz := float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2])
	if n.Scale == ([3]float64{}) {
		sx, sy, sz = 1, 1, 1
	}

	return t.Mul(r).Mul(math.Scale(sx, sy, sz))
}

// buildMesh converts the triangle primitives of one glTF mesh. Non-triangle
// primitives (lines, points) are skipped.
func buildMesh(doc *gltf.Document, m *gltf.Mesh) (*scene.Mesh, error) {
	mesh := &scene.Mesh{}
	for pi, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3(doc, posIdx)
		if err != nil {
			return nil, fmt.Errorf("primitive %d positions: %w", pi, err)
		}

		var normals []math.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3(doc, normIdx)
			if err != nil {
				return nil, fmt.Errorf("primitive %d normals: %w", pi, err)
			}
		}

		p := &scene.Primitive{
			Vertices: make([]scene.Vertex, len(positions)),
			Material: materialFor(doc, prim, pi),
		}
		for i, pos := range positions {
			p.Vertices[i].Position = pos
			if i < len(normals) {
				p.Vertices[i].Normal = normals[i]
			}
		}

		if prim.Indices != nil {
			p.Indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return nil, fmt.Errorf("primitive %d indices: %w", pi, err)
			}
		} else {
			// Unindexed: sequential triangles.
			p.Indices = make([]uint32, len(positions))
			for i := range p.Indices {
				p.Indices[i] = uint32(i)
			}
		}

		mesh.Primitives = append(mesh.Primitives, p)
	}
	mesh.ComputeBounds()
	return mesh, nil
}

// materialFor resolves a primitive's material slot to a recolorable scene
// material. Primitives without a document material still get a slot, so
// every piece of geometry stays addressable for recoloring.
func materialFor(doc *gltf.Document, prim *gltf.Primitive, slot int) *scene.Material {
	name := fmt.Sprintf("material%d", slot)
	color := scene.Color{R: 1, G: 1, B: 1, A: 1}

	if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(doc.Materials) {
		src := doc.Materials[*prim.Material]
		if src.Name != "" {
			name = src.Name
		}
		if pbr := src.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			f := pbr.BaseColorFactor
			color = scene.Color{
				R: float32(f[0]),
				G: float32(f[1]),
				B: float32(f[2]),
				A: float32(f[3]),
			}
		}
	}
	return scene.NewMaterial(name, color)
}

// readVec3 reads a VEC3 float accessor through its buffer view, honoring
// interleaved strides.
func readVec3(doc *gltf.Document, idx int) ([]math.Vec3, error) {
	accessor, data, stride, err := accessorBytes(doc, idx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("accessor %d: want VEC3 float, got %v/%v", idx, accessor.Type, accessor.ComponentType)
	}
	if stride == 0 {
		stride = 12
	}
	if accessor.Count > 0 {
		if need := (accessor.Count-1)*stride + 12; need > len(data) {
			return nil, fmt.Errorf("accessor %d: %d elements past buffer end", idx, accessor.Count)
		}
	}

	out := make([]math.Vec3, accessor.Count)
	for i := range out {
		off := i * stride
		out[i] = math.Vec3{
			X: readFloat32(data[off:]),
			Y: readFloat32(data[off+4:]),
			Z: readFloat32(data[off+8:]),
		}
	}
	return out, nil
}

// readIndices reads a scalar index accessor, widening every supported
// component type to uint32.
func readIndices(doc *gltf.Document, idx int) ([]uint32, error) {
	accessor, data, stride, err := accessorBytes(doc, idx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("accessor %d: want SCALAR indices, got %v", idx, accessor.Type)
	}

	var width int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		width = 1
	case gltf.ComponentUshort:
		width = 2
	case gltf.ComponentUint:
		width = 4
	default:
		return nil, fmt.Errorf("accessor %d: unsupported index component %v", idx, accessor.ComponentType)
	}
	if stride == 0 {
		stride = width
	}
	if accessor.Count > 0 {
		if need := (accessor.Count-1)*stride + width; need > len(data) {
			return nil, fmt.Errorf("accessor %d: %d indices past buffer end", idx, accessor.Count)
		}
	}

	out := make([]uint32, accessor.Count)
	for i := range out {
		off := i * stride
		switch width {
		case 1:
			out[i] = uint32(data[off])
		case 2:
			out[i] = uint32(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			out[i] = binary.LittleEndian.Uint32(data[off:])
		}
	}
	return out, nil
}

// accessorBytes resolves an accessor to its backing bytes with the accessor
// offset already applied, plus the view's byte stride (0 means packed).
func accessorBytes(doc *gltf.Document, idx int) (*gltf.Accessor, []byte, int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, nil, 0, fmt.Errorf("accessor index %d out of range", idx)
	}
	accessor := doc.Accessors[idx]
	if accessor.BufferView == nil {
		return nil, nil, 0, fmt.Errorf("accessor %d has no buffer view", idx)
	}
	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, nil, 0, fmt.Errorf("accessor %d: buffer view %d out of range", idx, *accessor.BufferView)
	}
	view := doc.BufferViews[*accessor.BufferView]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, nil, 0, fmt.Errorf("buffer view %d: buffer %d out of range", *accessor.BufferView, view.Buffer)
	}
	buf := doc.Buffers[view.Buffer]
	if len(buf.Data) == 0 {
		return nil, nil, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	start := view.ByteOffset + accessor.ByteOffset
	end := view.ByteOffset + view.ByteLength
	if view.ByteLength == 0 {
		end = len(buf.Data)
	}
	if start > len(buf.Data) || end > len(buf.Data) || start > end {
		return nil, nil, 0, fmt.Errorf("accessor %d: view bounds [%d:%d] past buffer size %d", idx, start, end, len(buf.Data))
	}
	return accessor, buf.Data[start:end], view.ByteStride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return gomath.Float32frombits(binary.LittleEndian.Uint32(b))
}
