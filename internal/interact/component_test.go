package interact

import (
	"strings"
	"testing"
	"time"

	"github.com/hot7585325/WebVR/internal/engine/picking"
	"github.com/hot7585325/WebVR/internal/engine/scene"
	"github.com/hot7585325/WebVR/pkg/math"
)

type fakePicker struct {
	targets []*scene.Node
	calls   int
}

func (p *fakePicker) SetTargets(nodes []*scene.Node) {
	p.targets = append(p.targets[:0], nodes...)
	p.calls++
}

func TestComponentLoadPipeline(t *testing.T) {
	root, wheel, body, glass := carScene()
	host := scene.NewNode("app")
	picker := &fakePicker{}

	c := New(host, picker, Options{InteractiveMeshes: "Wheel, Glass", Debug: true})
	c.SceneReady()
	host.Events().Emit(EventModelLoaded, root)

	if got := len(c.Records()); got != 3 {
		t.Fatalf("discovered %d meshes, want 3", got)
	}
	if !c.Interactive(wheel) || !c.Interactive(glass) {
		t.Error("filtered meshes not interactive")
	}
	if c.Interactive(body) {
		t.Error("Body is interactive despite the filter")
	}
	if len(picker.targets) != 2 || picker.targets[0] != wheel || picker.targets[1] != glass {
		t.Errorf("picker targets = %v", picker.targets)
	}

	lines := strings.Split(strings.TrimRight(c.DebugListing(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("listing has %d lines:\n%s", len(lines), c.DebugListing())
	}
	if !strings.HasPrefix(lines[0], "1. Wheel") || !strings.Contains(lines[0], "[interactive]") {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2. Body") || strings.Contains(lines[1], "[interactive]") {
		t.Errorf("line 2 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "3. Glass") || !strings.Contains(lines[2], "(under Trim)") {
		t.Errorf("line 3 = %q", lines[2])
	}
}

func TestComponentHoverClickFlow(t *testing.T) {
	root, wheel, _, _ := carScene()
	host := scene.NewNode("app")

	c := New(host, nil, Options{HoverColor: "#00FFFF", ClickColor: "#FF00FF"})
	em := host.Events()

	var notes []string
	em.On(EventHoverEnter, func(p any) { notes = append(notes, "enter "+p.(HoverEvent).Name) })
	em.On(EventHoverLeave, func(p any) { notes = append(notes, "leave "+p.(HoverEvent).Name) })
	em.On(EventClicked, func(p any) { notes = append(notes, "click "+p.(ClickEvent).Name) })

	em.Emit(EventModelLoaded, root)
	base := time.Now()
	c.Tick(base)

	em.Emit(picking.EventIntersected, picking.Hit{Node: wheel})
	if colorOf(wheel) != scene.MustColor("#00FFFF") {
		t.Errorf("wheel color = %v on hover, want cyan", colorOf(wheel))
	}

	em.Emit(picking.EventClick, picking.Hit{Node: wheel, Point: math.Vec3{X: 1}})
	if colorOf(wheel) != scene.MustColor("#FF00FF") {
		t.Errorf("wheel color = %v on click, want magenta", colorOf(wheel))
	}

	c.Tick(base.Add(300 * time.Millisecond))
	if colorOf(wheel) != scene.MustColor("#00FFFF") {
		t.Errorf("wheel color = %v after delay, want hover cyan", colorOf(wheel))
	}

	em.Emit(picking.EventIntersectedCleared, picking.Hit{Node: wheel})
	if colorOf(wheel) != scene.MustColor("blue") {
		t.Errorf("wheel color = %v after clear, want blue", colorOf(wheel))
	}

	want := []string{"enter Wheel", "click Wheel", "leave Wheel"}
	if len(notes) != len(want) {
		t.Fatalf("notes = %v, want %v", notes, want)
	}
	for i := range want {
		if notes[i] != want[i] {
			t.Errorf("notes[%d] = %q, want %q", i, notes[i], want[i])
		}
	}
}

func TestComponentFilterUpdateWithoutRediscovery(t *testing.T) {
	root, _, body, _ := carScene()
	host := scene.NewNode("app")
	picker := &fakePicker{}

	c := New(host, picker, Options{InteractiveMeshes: "Wheel"})
	c.SceneReady()
	host.Events().Emit(EventModelLoaded, root)

	recordsBefore := c.Records()

	// Recolor Body while it is outside the interactive set. The snapshot
	// taken when it joins must capture this color, not the load-time one.
	purple := scene.MustColor("purple")
	for _, m := range body.Mesh.Materials() {
		m.SetColor(purple)
	}

	c.SetInteractive("Wheel, Body")

	if &recordsBefore[0] != &c.Records()[0] {
		t.Error("filter update rebuilt the records")
	}
	if !c.Interactive(body) {
		t.Fatal("Body not interactive after the update")
	}
	if picker.calls != 2 {
		t.Errorf("picker rewired %d times, want 2", picker.calls)
	}

	em := host.Events()
	em.Emit(picking.EventIntersected, picking.Hit{Node: body})
	em.Emit(picking.EventIntersectedCleared, picking.Hit{Node: body})
	if colorOf(body) != purple {
		t.Errorf("body color = %v after hover, want the purple snapshot", colorOf(body))
	}
}

func TestComponentSetInteractiveList(t *testing.T) {
	root, wheel, body, glass := carScene()
	host := scene.NewNode("app")

	c := New(host, nil, Options{})
	host.Events().Emit(EventModelLoaded, root)

	c.SetInteractiveList([]string{"Glass"})
	if c.Interactive(wheel) || c.Interactive(body) || !c.Interactive(glass) {
		t.Error("explicit list did not narrow the set to Glass")
	}

	c.SetInteractiveList(nil)
	if !c.Interactive(wheel) || !c.Interactive(body) || !c.Interactive(glass) {
		t.Error("nil list did not widen the set to every mesh")
	}
}

func TestComponentReloadResets(t *testing.T) {
	root1, wheel1, _, _ := carScene()
	root2, wheel2, _, _ := carScene()
	host := scene.NewNode("app")
	picker := &fakePicker{}

	c := New(host, picker, Options{})
	c.SceneReady()
	em := host.Events()

	em.Emit(EventModelLoaded, root1)
	em.Emit(picking.EventIntersected, picking.Hit{Node: wheel1})
	if c.Hovered() != wheel1 {
		t.Fatal("hover on the first model did not register")
	}

	em.Emit(EventModelLoaded, root2)

	if c.Hovered() != nil {
		t.Error("hover survived the reload")
	}
	if !c.Interactive(wheel2) {
		t.Error("new model's wheel not interactive")
	}
	if c.Interactive(wheel1) {
		t.Error("old model's wheel still interactive")
	}

	// The old node is gone from the records; pointing at it does nothing.
	em.Emit(picking.EventIntersected, picking.Hit{Node: wheel1})
	if c.Hovered() != nil {
		t.Error("stale node accepted after reload")
	}
	if picker.targets[0] != wheel2 {
		t.Errorf("picker targets = %v, want the new model's meshes", picker.targets)
	}
}

func TestComponentAccessors(t *testing.T) {
	root, wheel, _, _ := carScene()
	root.AddChild(meshNode("Wheel", scene.MustColor("red")))
	host := scene.NewNode("app")

	c := New(host, nil, Options{})
	host.Events().Emit(EventModelLoaded, root)

	names := c.MeshNames()
	want := []string{"Wheel", "Body", "Glass", "Wheel"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	found, ok := c.FindMesh("Wheel")
	if !ok || found != wheel {
		t.Error("FindMesh did not return the first Wheel")
	}
	if _, ok := c.FindMesh("Spoiler"); ok {
		t.Error("FindMesh invented a mesh")
	}
}

func TestComponentSceneReadyGate(t *testing.T) {
	root, _, _, _ := carScene()
	host := scene.NewNode("app")
	picker := &fakePicker{}

	c := New(host, picker, Options{})
	host.Events().Emit(EventModelLoaded, root)

	if picker.calls != 0 {
		t.Fatalf("picker called %d times before scene readiness", picker.calls)
	}

	c.SceneReady()
	if picker.calls != 1 || len(picker.targets) != 3 {
		t.Errorf("calls = %d, targets = %v; want one call with all 3 meshes",
			picker.calls, picker.targets)
	}

	c.SceneReady()
	if picker.calls != 1 {
		t.Errorf("second SceneReady re-pushed targets (calls = %d)", picker.calls)
	}
}

func TestComponentApplyNormalAndDetach(t *testing.T) {
	root, wheel, body, glass := carScene()
	host := scene.NewNode("app")

	c := New(host, nil, Options{NormalColor: "#112233"})
	em := host.Events()
	em.Emit(EventModelLoaded, root)

	c.ApplyNormal()
	normal := scene.MustColor("#112233")
	for _, n := range []*scene.Node{wheel, body, glass} {
		if colorOf(n) != normal {
			t.Errorf("%s color = %v, want the normal color", n.Name, colorOf(n))
		}
	}

	c.Detach()
	if colorOf(wheel) != scene.MustColor("blue") {
		t.Errorf("wheel color = %v after detach, want blue", colorOf(wheel))
	}
	if colorOf(glass) != scene.MustColor("white") {
		t.Errorf("glass color = %v after detach, want white", colorOf(glass))
	}
	mats := body.Mesh.Materials()
	if mats[0].Color() != scene.MustColor("green") || mats[1].Color() != scene.MustColor("gray") {
		t.Error("body slots not restored to green/gray")
	}

	// Detached: raycaster traffic no longer reaches the machine.
	em.Emit(picking.EventIntersected, picking.Hit{Node: wheel})
	if c.Hovered() != nil || colorOf(wheel) != scene.MustColor("blue") {
		t.Error("component reacted to events after detach")
	}
}

func TestComponentBadColorFallsBack(t *testing.T) {
	host := scene.NewNode("app")
	c := New(host, nil, Options{HoverColor: "not-a-color", ClickColor: "", NormalColor: "zzz"})

	hover, click, normal := c.Colors()
	if hover != scene.MustColor(DefaultHoverColor) {
		t.Errorf("hover = %v, want the %s default", hover, DefaultHoverColor)
	}
	if click != scene.MustColor(DefaultClickColor) {
		t.Errorf("click = %v, want the %s default", click, DefaultClickColor)
	}
	if normal != scene.MustColor(DefaultNormalColor) {
		t.Errorf("normal = %v, want the %s default", normal, DefaultNormalColor)
	}
}
