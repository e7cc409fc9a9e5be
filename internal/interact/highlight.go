package interact

import "github.com/hot7585325/WebVR/internal/engine/scene"

// Highlighter swaps mesh material colors and restores the originals from a
// ColorStore. Every method degrades to a no-op on nodes without materials;
// a mesh that cannot be recolored simply shows no feedback.
type Highlighter struct {
	store *ColorStore
}

// NewHighlighter binds a highlighter to its restoration store.
func NewHighlighter(store *ColorStore) *Highlighter {
	return &Highlighter{store: store}
}

// Store returns the underlying snapshot store.
func (h *Highlighter) Store() *ColorStore {
	return h.store
}

// Snapshot captures the node's current material colors into the store.
// Capture-once: nodes that already hold a snapshot keep it.
func (h *Highlighter) Snapshot(node *scene.Node) {
	if node == nil || h.store.Has(node) {
		return
	}
	mats := node.Mesh.Materials()
	if len(mats) == 0 {
		return
	}
	colors := make([]scene.Color, len(mats))
	for i, m := range mats {
		colors[i] = m.Color()
	}
	h.store.Capture(node, colors)
}

// Apply writes color into every material slot of the node, marking each
// slot for a render-state refresh.
func (h *Highlighter) Apply(node *scene.Node, color scene.Color) {
	if node == nil {
		return
	}
	for _, m := range node.Mesh.Materials() {
		m.SetColor(color)
	}
}

// Restore writes the snapshotted colors back, slot by slot. Without a
// snapshot it is a no-op. If the slot count drifted since capture, the
// shorter prefix is restored.
func (h *Highlighter) Restore(node *scene.Node) {
	if node == nil {
		return
	}
	colors, ok := h.store.Lookup(node)
	if !ok {
		return
	}
	mats := node.Mesh.Materials()
	n := min(len(colors), len(mats))
	for i := 0; i < n; i++ {
		mats[i].SetColor(colors[i])
	}
}
