// Package scene defines the node graph the viewer renders and interacts with.
package scene

import (
	"github.com/hot7585325/WebVR/internal/engine/events"
	"github.com/hot7585325/WebVR/pkg/math"
)

// Node is a scene-graph element. A node with a non-nil Mesh is renderable
// and discoverable by the interaction layer; pure grouping nodes carry only
// a transform and children.
type Node struct {
	Name      string
	Transform math.Mat4
	Mesh      *Mesh

	parent   *Node
	children []*Node
	emitter  *events.Emitter
}

// NewNode creates a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: math.Identity(),
	}
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children in insertion order. The returned
// slice is the node's own; callers must not mutate it.
func (n *Node) Children() []*Node {
	return n.children
}

// AddChild appends child to n, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n. No-op if child is not a child of n.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return
		}
	}
}

// Events returns the node's event emitter, creating it on first use.
func (n *Node) Events() *events.Emitter {
	if n.emitter == nil {
		n.emitter = events.NewEmitter()
	}
	return n.emitter
}

// Walk visits n and its descendants pre-order, children in insertion order.
// Returning false from fn aborts the traversal.
func (n *Node) Walk(fn func(*Node) bool) {
	n.walk(fn)
}

func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// WorldMatrix returns the node's local-to-world transform, composed from
// the parent chain.
func (n *Node) WorldMatrix() math.Mat4 {
	if n.parent == nil {
		return n.Transform
	}
	return n.parent.WorldMatrix().Mul(n.Transform)
}
