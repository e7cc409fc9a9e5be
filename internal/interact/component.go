// Package interact adds pointer-driven interactivity to mesh scene nodes.
// It discovers the meshes under a model root, resolves a configured subset
// as interactive, swaps material colors on hover and click, and restores
// the captured originals afterwards. The only asynchronous piece is the
// deferred click-feedback restoration, driven by a loop-advanced scheduler.
package interact

import (
	"fmt"
	"strings"
	"time"

	"github.com/hot7585325/WebVR/internal/engine/events"
	"github.com/hot7585325/WebVR/internal/engine/picking"
	"github.com/hot7585325/WebVR/internal/engine/scene"
	"github.com/hot7585325/WebVR/internal/logger"
)

// EventModelLoaded announces a (re)loaded model root on the host emitter.
// The payload is the new root *scene.Node.
const EventModelLoaded = "model-loaded"

// Default feedback colors, overridable through Options.
const (
	DefaultHoverColor  = "yellow"
	DefaultClickColor  = "red"
	DefaultNormalColor = "white"
)

// Options configures a Component. Color strings accept hex or named colors;
// a string that does not parse falls back to that option's default.
type Options struct {
	// InteractiveMeshes is a comma-separated mesh name allow-list.
	// Empty means every discovered mesh is interactive.
	InteractiveMeshes string
	HoverColor        string
	ClickColor        string
	NormalColor       string
	// Debug logs the discovered-mesh listing on every model load.
	Debug bool
}

// Picker registers the targets the ray-picking subsystem tests against.
// Rewiring after every set change keeps picking and interactivity in step.
type Picker interface {
	SetTargets([]*scene.Node)
}

// Component wires mesh discovery, the interactive set, color snapshots, and
// the state machine to a host node's event stream. It subscribes to
// model-loaded plus the raycaster topics on construction and reacts until
// Detach.
type Component struct {
	host   *scene.Node
	picker Picker
	opts   Options

	hoverColor  scene.Color
	clickColor  scene.Color
	normalColor scene.Color

	store       *ColorStore
	highlighter *Highlighter
	scheduler   *Scheduler
	machine     *Machine

	filter      []string
	records     []MeshRecord
	interactive []*scene.Node

	sceneReady     bool
	pendingTargets bool
	subs           []events.Handle
}

// New builds a component against the host node and subscribes it to the
// host's emitter. The picker may be nil for headless use.
func New(host *scene.Node, picker Picker, opts Options) *Component {
	c := &Component{
		host:        host,
		picker:      picker,
		opts:        opts,
		hoverColor:  parseColorOr(opts.HoverColor, DefaultHoverColor),
		clickColor:  parseColorOr(opts.ClickColor, DefaultClickColor),
		normalColor: parseColorOr(opts.NormalColor, DefaultNormalColor),
		filter:      ParseFilter(opts.InteractiveMeshes),
	}
	c.store = NewColorStore()
	c.highlighter = NewHighlighter(c.store)
	c.scheduler = NewScheduler()
	c.machine = NewMachine(c.highlighter, c.scheduler, host.Events())
	c.machine.SetColors(c.hoverColor, c.clickColor)
	c.subscribe()
	return c
}

func parseColorOr(s, fallback string) scene.Color {
	if c, err := scene.ParseColor(s); err == nil {
		return c
	}
	return scene.MustColor(fallback)
}

func (c *Component) subscribe() {
	em := c.host.Events()
	c.subs = append(c.subs,
		em.On(EventModelLoaded, c.onModelLoaded),
		em.On(picking.EventIntersected, c.onIntersected),
		em.On(picking.EventIntersectedCleared, c.onIntersectionCleared),
		em.On(picking.EventClick, c.onClick),
	)
}

func (c *Component) onModelLoaded(payload any) {
	root, ok := payload.(*scene.Node)
	if !ok {
		return
	}
	c.load(root)
}

func (c *Component) onIntersected(payload any) {
	if hit, ok := payload.(picking.Hit); ok {
		c.machine.PointerEnter(hit.Node)
	}
}

func (c *Component) onIntersectionCleared(any) {
	c.machine.PointerLeave()
}

func (c *Component) onClick(payload any) {
	if hit, ok := payload.(picking.Hit); ok {
		c.machine.Click(hit.Node, hit.Point)
	}
}

// load runs the discovery pipeline against a loaded model root. State from
// any previous model is dropped wholesale; stale snapshots for meshes that
// no longer exist would otherwise pile up across reloads.
func (c *Component) load(root *scene.Node) {
	c.machine.Reset()
	c.store.Reset()
	c.records = DiscoverMeshes(root)
	c.rebuild()

	if c.opts.Debug {
		logger.Sugar.Infof("discovered %d meshes\n%s", len(c.records), c.DebugListing())
	}
}

// rebuild recomputes the interactive set from the current records, captures
// snapshots for members that lack one, and re-registers picking targets.
func (c *Component) rebuild() {
	c.interactive = Resolve(c.records, c.filter)
	for _, n := range c.interactive {
		c.highlighter.Snapshot(n)
	}
	c.machine.SetInteractive(c.interactive)
	c.registerTargets()
}

// registerTargets pushes the interactive set to the picker. Until the scene
// is ready the push is parked; SceneReady flushes it.
func (c *Component) registerTargets() {
	if c.picker == nil {
		return
	}
	if !c.sceneReady {
		c.pendingTargets = true
		return
	}
	c.picker.SetTargets(c.interactive)
}

// SceneReady releases the one-shot readiness gate, flushing any parked
// target registration. Later calls are no-ops.
func (c *Component) SceneReady() {
	if c.sceneReady {
		return
	}
	c.sceneReady = true
	if c.pendingTargets {
		c.pendingTargets = false
		c.registerTargets()
	}
}

// SetInteractive replaces the name filter from a comma-separated list and
// recomputes the interactive set against the existing records. No
// rediscovery happens; snapshots are captured only for meshes that just
// became interactive.
func (c *Component) SetInteractive(spec string) {
	c.filter = ParseFilter(spec)
	c.rebuild()
}

// SetInteractiveList is SetInteractive for an explicit name list. The names
// are matched as given, without trimming.
func (c *Component) SetInteractiveList(names []string) {
	c.filter = append([]string(nil), names...)
	c.rebuild()
}

// SetColors swaps the feedback palette at runtime.
func (c *Component) SetColors(hover, click, normal scene.Color) {
	c.hoverColor, c.clickColor, c.normalColor = hover, click, normal
	c.machine.SetColors(hover, click)
}

// Colors returns the active hover, click, and normal colors.
func (c *Component) Colors() (hover, click, normal scene.Color) {
	return c.hoverColor, c.clickColor, c.normalColor
}

// MeshNames returns every discovered mesh name in discovery order.
func (c *Component) MeshNames() []string {
	names := make([]string, len(c.records))
	for i, r := range c.records {
		names[i] = r.Name
	}
	return names
}

// FindMesh returns the first discovered mesh with the given name.
func (c *Component) FindMesh(name string) (*scene.Node, bool) {
	for _, r := range c.records {
		if r.Name == name {
			return r.Node, true
		}
	}
	return nil, false
}

// Records returns the discovery records. Callers must not mutate them.
func (c *Component) Records() []MeshRecord {
	return c.records
}

// Interactive reports whether node is in the interactive set.
func (c *Component) Interactive(node *scene.Node) bool {
	return c.machine.Interactive(node)
}

// Hovered returns the currently hovered node, or nil.
func (c *Component) Hovered() *scene.Node {
	return c.machine.Hovered()
}

// DebugListing renders the discovered meshes one per line, 1-indexed, in
// discovery order, with parent context and interactive status.
func (c *Component) DebugListing() string {
	var b strings.Builder
	for i, r := range c.records {
		fmt.Fprintf(&b, "%d. %s", i+1, r.Name)
		if r.ParentName != "" {
			fmt.Fprintf(&b, " (under %s)", r.ParentName)
		}
		if c.machine.Interactive(r.Node) {
			b.WriteString(" [interactive]")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Tick advances the deferred-action clock. The host loop calls this once
// per frame with the current time.
func (c *Component) Tick(now time.Time) {
	c.scheduler.Advance(now)
}

// ApplyNormal paints every interactive mesh with the configured normal
// color. Snapshots keep the true originals, so a later restore still
// returns meshes to their load-time colors.
func (c *Component) ApplyNormal() {
	for _, n := range c.interactive {
		c.highlighter.Apply(n, c.normalColor)
	}
}

// Detach unhooks the component from the host emitter, ends any hover,
// cancels pending feedback, and restores every snapshotted mesh.
func (c *Component) Detach() {
	c.machine.PointerLeave()
	c.machine.Reset()
	for _, n := range c.store.Nodes() {
		c.highlighter.Restore(n)
	}
	for _, h := range c.subs {
		h.Remove()
	}
	c.subs = nil
}
