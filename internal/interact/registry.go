package interact

import "github.com/hot7585325/WebVR/internal/engine/scene"

// UnnamedMesh is the display name for meshes whose node carries no name.
const UnnamedMesh = "Unnamed"

// MeshRecord describes one discovered mesh node. Records are built once per
// discovery pass and never mutated; a rediscovery replaces them wholesale.
type MeshRecord struct {
	Name       string
	Node       *scene.Node
	ParentName string
}

// DiscoverMeshes walks the subtree under root depth-first and records every
// node carrying a mesh, in traversal order. A nil or empty subtree yields no
// records. The scene itself is not touched.
func DiscoverMeshes(root *scene.Node) []MeshRecord {
	if root == nil {
		return nil
	}
	var records []MeshRecord
	root.Walk(func(n *scene.Node) bool {
		if n.Mesh == nil {
			return true
		}
		rec := MeshRecord{Name: displayName(n), Node: n}
		if p := n.Parent(); p != nil {
			rec.ParentName = p.Name
		}
		records = append(records, rec)
		return true
	})
	return records
}

func displayName(n *scene.Node) string {
	if n.Name == "" {
		return UnnamedMesh
	}
	return n.Name
}
