package scene

import "github.com/hot7585325/WebVR/pkg/math"

// Vertex is a single mesh vertex.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Primitive is one indexed triangle list with a single material. A mesh
// with several materials carries one primitive per material slot.
type Primitive struct {
	Vertices []Vertex
	Indices  []uint32
	Material *Material
}

// Bounds is an object-space axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the box midpoint.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Merge returns the smallest box containing both b and other.
func (b Bounds) Merge(other Bounds) Bounds {
	return Bounds{
		Min: b.Min.Min(other.Min),
		Max: b.Max.Max(other.Max),
	}
}

// Mesh is renderable geometry attached to a scene node.
type Mesh struct {
	Primitives []*Primitive
	Bounds     Bounds
}

// Materials returns the mesh's material slots in primitive order.
// Primitives without a material are skipped, so the result is the ordered
// list of recolorable slots.
func (m *Mesh) Materials() []*Material {
	if m == nil {
		return nil
	}
	var mats []*Material
	for _, p := range m.Primitives {
		if p.Material != nil {
			mats = append(mats, p.Material)
		}
	}
	return mats
}

// VertexCount returns the total vertex count across primitives.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, p := range m.Primitives {
		n += len(p.Vertices)
	}
	return n
}

// TriangleCount returns the total triangle count across primitives.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, p := range m.Primitives {
		n += len(p.Indices) / 3
	}
	return n
}

// ComputeBounds recalculates Bounds from the primitive vertices.
// A mesh with no vertices gets a zero box.
func (m *Mesh) ComputeBounds() {
	first := true
	var b Bounds
	for _, p := range m.Primitives {
		for _, v := range p.Vertices {
			if first {
				b.Min, b.Max = v.Position, v.Position
				first = false
				continue
			}
			b.Min = b.Min.Min(v.Position)
			b.Max = b.Max.Max(v.Position)
		}
	}
	m.Bounds = b
}
