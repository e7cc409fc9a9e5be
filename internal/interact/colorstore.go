package interact

import "github.com/hot7585325/WebVR/internal/engine/scene"

// ColorStore remembers the original material colors of meshes, keyed by
// node identity so that two meshes sharing a name stay distinct. Pure data;
// reading colors off a scene node is the Highlighter's job.
type ColorStore struct {
	colors map[*scene.Node][]scene.Color
}

// NewColorStore returns an empty store.
func NewColorStore() *ColorStore {
	return &ColorStore{colors: make(map[*scene.Node][]scene.Color)}
}

// Capture stores a copy of colors for node unless a snapshot already
// exists. The first capture wins; later calls store nothing and report
// false, so the stored colors always mean "before any highlight".
func (s *ColorStore) Capture(node *scene.Node, colors []scene.Color) bool {
	if node == nil || len(colors) == 0 {
		return false
	}
	if _, ok := s.colors[node]; ok {
		return false
	}
	s.colors[node] = append([]scene.Color(nil), colors...)
	return true
}

// Lookup returns the snapshot for node, if one exists.
func (s *ColorStore) Lookup(node *scene.Node) ([]scene.Color, bool) {
	colors, ok := s.colors[node]
	return colors, ok
}

// Has reports whether node has a snapshot.
func (s *ColorStore) Has(node *scene.Node) bool {
	_, ok := s.colors[node]
	return ok
}

// Len returns the number of snapshots held.
func (s *ColorStore) Len() int {
	return len(s.colors)
}

// Nodes returns the snapshotted nodes, in no particular order.
func (s *ColorStore) Nodes() []*scene.Node {
	nodes := make([]*scene.Node, 0, len(s.colors))
	for n := range s.colors {
		nodes = append(nodes, n)
	}
	return nodes
}

// Reset drops every snapshot. Model reloads rebuild the store from scratch
// so entries for vanished meshes cannot pile up.
func (s *ColorStore) Reset() {
	s.colors = make(map[*scene.Node][]scene.Color)
}
