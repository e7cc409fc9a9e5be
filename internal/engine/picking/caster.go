package picking

import (
	"github.com/hot7585325/WebVR/internal/engine/events"
	"github.com/hot7585325/WebVR/internal/engine/scene"
	"github.com/hot7585325/WebVR/pkg/math"
)

// Topics emitted on the host emitter as the pointer ray moves and clicks.
const (
	EventIntersected        = "raycaster-intersected"
	EventIntersectedCleared = "raycaster-intersected-cleared"
	EventClick              = "click"
)

// Hit describes a ray intersection with a registered target.
type Hit struct {
	Node     *scene.Node
	Point    math.Vec3
	Distance float32
}

// Raycaster casts pointer rays against an explicitly registered target set
// and reports hover transitions and clicks on a host emitter. Targets must
// be registered via SetTargets; nothing is picked implicitly.
type Raycaster struct {
	emitter *events.Emitter
	targets []*scene.Node
	hovered *scene.Node
}

// NewRaycaster creates a raycaster that emits on the given emitter.
func NewRaycaster(emitter *events.Emitter) *Raycaster {
	return &Raycaster{emitter: emitter}
}

// SetTargets replaces the registered picking targets. Nodes without a mesh
// are dropped. If the currently hovered node is no longer a target, a
// cleared event fires immediately so listeners do not hold a stale hover.
func (rc *Raycaster) SetTargets(nodes []*scene.Node) {
	rc.targets = rc.targets[:0]
	for _, n := range nodes {
		if n != nil && n.Mesh != nil {
			rc.targets = append(rc.targets, n)
		}
	}

	if rc.hovered == nil {
		return
	}
	for _, n := range rc.targets {
		if n == rc.hovered {
			return
		}
	}
	rc.Clear()
}

// Targets returns the number of registered targets.
func (rc *Raycaster) Targets() int {
	return len(rc.targets)
}

// Hovered returns the target the last Update intersected, or nil.
func (rc *Raycaster) Hovered() *scene.Node {
	return rc.hovered
}

// Cast returns the nearest registered target hit by ray.
func (rc *Raycaster) Cast(ray Ray) (Hit, bool) {
	var best Hit
	found := false
	for _, n := range rc.targets {
		box := TransformAABB(n.WorldMatrix(), AABB{Min: n.Mesh.Bounds.Min, Max: n.Mesh.Bounds.Max})
		t, hit := ray.IntersectAABB(box)
		if !hit {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Node: n, Point: ray.At(t), Distance: t}
			found = true
		}
	}
	return best, found
}

// Update casts the ray and emits hover transitions: a cleared event for the
// previously intersected target, then an intersected event for the new one.
// Re-intersecting the same target emits nothing.
func (rc *Raycaster) Update(ray Ray) {
	hit, ok := rc.Cast(ray)

	if ok && hit.Node == rc.hovered {
		return
	}

	if rc.hovered != nil {
		prev := rc.hovered
		rc.hovered = nil
		rc.emitter.Emit(EventIntersectedCleared, Hit{Node: prev})
	}
	if ok {
		rc.hovered = hit.Node
		rc.emitter.Emit(EventIntersected, hit)
	}
}

// Click casts the ray and emits a click event carrying the intersection.
// A miss emits nothing.
func (rc *Raycaster) Click(ray Ray) {
	hit, ok := rc.Cast(ray)
	if !ok {
		return
	}
	rc.emitter.Emit(EventClick, hit)
}

// Clear drops the hover state, emitting a cleared event if a target was
// intersected. Used when the pointer leaves the viewport.
func (rc *Raycaster) Clear() {
	if rc.hovered == nil {
		return
	}
	prev := rc.hovered
	rc.hovered = nil
	rc.emitter.Emit(EventIntersectedCleared, Hit{Node: prev})
}
