package interact

import (
	"time"

	"github.com/hot7585325/WebVR/internal/engine/events"
	"github.com/hot7585325/WebVR/internal/engine/scene"
	"github.com/hot7585325/WebVR/pkg/math"
)

// Topics emitted for external listeners.
const (
	EventHoverEnter = "mesh-hover-enter"
	EventHoverLeave = "mesh-hover-leave"
	EventClicked    = "mesh-clicked"
)

// clickRestoreDelay is how long click feedback stays on a mesh before its
// color falls back to the hover or snapshot state.
const clickRestoreDelay = 300 * time.Millisecond

// HoverEvent is the payload for EventHoverEnter and EventHoverLeave.
type HoverEvent struct {
	Node *scene.Node
	Name string
}

// ClickEvent is the payload for EventClicked.
type ClickEvent struct {
	Node  *scene.Node
	Name  string
	Point math.Vec3
}

// Machine owns the hover and click-feedback state for the interactive set.
// Two states: idle, or hovering exactly one node. Events referencing nodes
// outside the set are ignored. All transitions run to completion on the
// thread that delivers the event.
type Machine struct {
	highlighter *Highlighter
	scheduler   *Scheduler
	emitter     *events.Emitter

	hoverColor scene.Color
	clickColor scene.Color
	delay      time.Duration

	interactive map[*scene.Node]bool
	hovered     *scene.Node
	pending     map[*scene.Node]*Task
}

// NewMachine wires a machine to its collaborators. The emitter may be nil
// for silent operation.
func NewMachine(h *Highlighter, s *Scheduler, emitter *events.Emitter) *Machine {
	return &Machine{
		highlighter: h,
		scheduler:   s,
		emitter:     emitter,
		hoverColor:  scene.MustColor(DefaultHoverColor),
		clickColor:  scene.MustColor(DefaultClickColor),
		delay:       clickRestoreDelay,
		interactive: make(map[*scene.Node]bool),
		pending:     make(map[*scene.Node]*Task),
	}
}

// SetColors configures the hover and click feedback colors.
func (m *Machine) SetColors(hover, click scene.Color) {
	m.hoverColor = hover
	m.clickColor = click
}

// SetDelay overrides the click feedback delay. Zero or negative is ignored.
func (m *Machine) SetDelay(d time.Duration) {
	if d > 0 {
		m.delay = d
	}
}

// SetInteractive replaces the membership set events are checked against.
// If the hovered node drops out of the set its hover ends immediately.
func (m *Machine) SetInteractive(nodes []*scene.Node) {
	set := make(map[*scene.Node]bool, len(nodes))
	for _, n := range nodes {
		if n != nil {
			set[n] = true
		}
	}
	m.interactive = set
	if m.hovered != nil && !set[m.hovered] {
		m.PointerLeave()
	}
}

// Interactive reports whether node is in the membership set.
func (m *Machine) Interactive(node *scene.Node) bool {
	return m.interactive[node]
}

// Hovered returns the hovered node, or nil when idle.
func (m *Machine) Hovered() *scene.Node {
	return m.hovered
}

// PointerEnter processes an intersection with node. Re-entering the hovered
// node is a no-op; entering a different node restores the previous one
// first, so at most one mesh ever wears the hover color.
func (m *Machine) PointerEnter(node *scene.Node) {
	if node == nil || !m.interactive[node] || node == m.hovered {
		return
	}
	if m.hovered != nil {
		m.highlighter.Restore(m.hovered)
	}
	m.highlighter.Apply(node, m.hoverColor)
	m.hovered = node
	m.emit(EventHoverEnter, HoverEvent{Node: node, Name: displayName(node)})
}

// PointerLeave ends the current hover and restores the mesh color. No-op
// when idle.
func (m *Machine) PointerLeave() {
	if m.hovered == nil {
		return
	}
	node := m.hovered
	m.hovered = nil
	m.highlighter.Restore(node)
	m.emit(EventHoverLeave, HoverEvent{Node: node, Name: displayName(node)})
}

// Click flashes the click color on node and schedules the fallback. The
// fallback reads live state when it fires: still hovering this node means
// the hover color comes back, anything else means the snapshot does. A
// second click on the same node before the fallback fires supersedes it.
func (m *Machine) Click(node *scene.Node, point math.Vec3) {
	if node == nil || !m.interactive[node] {
		return
	}
	m.highlighter.Apply(node, m.clickColor)
	m.emit(EventClicked, ClickEvent{Node: node, Name: displayName(node), Point: point})

	if prev := m.pending[node]; prev != nil {
		prev.Cancel()
	}
	m.pending[node] = m.scheduler.After(m.delay, func() {
		delete(m.pending, node)
		if m.hovered == node {
			m.highlighter.Apply(node, m.hoverColor)
			return
		}
		m.highlighter.Restore(node)
	})
}

// Reset returns the machine to idle: hover forgotten, membership cleared,
// pending fallbacks cancelled without firing. Nothing is emitted and no
// colors are touched; reloads replace the scene wholesale anyway.
func (m *Machine) Reset() {
	for _, t := range m.pending {
		t.Cancel()
	}
	m.pending = make(map[*scene.Node]*Task)
	m.hovered = nil
	m.interactive = make(map[*scene.Node]bool)
}

func (m *Machine) emit(topic string, payload any) {
	if m.emitter != nil {
		m.emitter.Emit(topic, payload)
	}
}
