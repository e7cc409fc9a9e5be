package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/hot7585325/WebVR/internal/engine/scene"
	"github.com/hot7585325/WebVR/pkg/math"
)

// renderSceneTree renders the node hierarchy in the left panel.
func (app *App) renderSceneTree() {
	if app.root == nil {
		imgui.TextDisabled("Open a model to browse its scene")
		return
	}
	app.renderNode(app.root)
}

func (app *App) renderNode(n *scene.Node) {
	treeFlags := imgui.TreeNodeFlagsOpenOnArrow | imgui.TreeNodeFlagsSpanAvailWidth | imgui.TreeNodeFlagsDefaultOpen
	if len(n.Children()) == 0 {
		treeFlags |= imgui.TreeNodeFlagsLeaf
	}
	if n == app.selected {
		treeFlags |= imgui.TreeNodeFlagsSelected
	}

	label := meshName(n)
	if n.Mesh != nil {
		label = fmt.Sprintf("%s (%d prim)", label, len(n.Mesh.Primitives))
	}

	open := imgui.TreeNodeExStrV(fmt.Sprintf("%s##%p", label, n), treeFlags)
	if imgui.IsItemClicked() && n.Mesh != nil {
		app.selected = n
	}
	if open {
		for _, c := range n.Children() {
			app.renderNode(c)
		}
		imgui.TreePop()
	}
}

// renderInspector renders details for the selected mesh in the center panel.
func (app *App) renderInspector() {
	if app.selected == nil || app.selected.Mesh == nil {
		imgui.TextDisabled("Select a mesh node in the scene tree")
		return
	}

	n := app.selected
	mesh := n.Mesh

	imgui.Text("Mesh: " + meshName(n))
	if p := n.Parent(); p != nil {
		imgui.TextDisabled("under " + meshName(p))
	}
	imgui.Separator()

	imgui.Text(fmt.Sprintf("Primitives: %d", len(mesh.Primitives)))
	imgui.Text(fmt.Sprintf("Vertices:   %d", mesh.VertexCount()))
	imgui.Text(fmt.Sprintf("Triangles:  %d", mesh.TriangleCount()))

	imgui.Spacing()
	imgui.Text("Bounds:")
	imgui.Text(fmt.Sprintf("  Min: (%.2f, %.2f, %.2f)", mesh.Bounds.Min.X, mesh.Bounds.Min.Y, mesh.Bounds.Min.Z))
	imgui.Text(fmt.Sprintf("  Max: (%.2f, %.2f, %.2f)", mesh.Bounds.Max.X, mesh.Bounds.Max.Y, mesh.Bounds.Max.Z))

	imgui.Spacing()
	imgui.Separator()
	imgui.Text("Materials:")
	for i, m := range mesh.Materials() {
		if m == nil {
			imgui.TextDisabled(fmt.Sprintf("  slot %d: (none)", i))
			continue
		}
		c := m.Color()
		imgui.TextColored(imgui.NewVec4(c.R, c.G, c.B, 1), "  ##")
		imgui.SameLine()
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("slot %d", i)
		}
		imgui.Text(fmt.Sprintf("%s  %s", name, c.Hex()))
	}

	// Snapshot view: what restore would bring back.
	if colors, ok := app.store.Lookup(n); ok {
		imgui.Spacing()
		imgui.Text("Snapshot:")
		for i, c := range colors {
			imgui.TextColored(imgui.NewVec4(c.R, c.G, c.B, 1), "  ##")
			imgui.SameLine()
			imgui.Text(fmt.Sprintf("slot %d  %s", i, c.Hex()))
		}
	}
}

// renderInteractivity renders the filter controls, the simulated pointer
// buttons, the debug listing, and the event log.
func (app *App) renderInteractivity() {
	if app.root == nil {
		imgui.TextDisabled("No model loaded")
		return
	}

	imgui.Text("Interactive meshes:")
	imgui.SetNextItemWidth(-1)
	if imgui.InputTextWithHint("##filter", "comma-separated, empty = all", &app.filterText, 0, nil) {
		app.rebuildSet()
	}

	imgui.Spacing()
	imgui.Text("Hover color:")
	imgui.SameLine()
	imgui.SetNextItemWidth(100)
	if imgui.InputTextWithHint("##hover", "yellow", &app.hoverText, 0, nil) {
		app.applyColors()
	}
	imgui.Text("Click color:")
	imgui.SameLine()
	imgui.SetNextItemWidth(100)
	if imgui.InputTextWithHint("##click", "red", &app.clickText, 0, nil) {
		app.applyColors()
	}
	if app.filterError != "" {
		imgui.TextColored(imgui.NewVec4(1, 0.6, 0.3, 1), app.filterError)
	}

	imgui.Spacing()
	imgui.Separator()

	// Pointer simulation against the real machine; the deferred click
	// restoration fires through the scheduler a frame tick later.
	canAct := app.selected != nil && app.machine != nil
	imgui.BeginDisabledV(!canAct)
	if imgui.Button("Enter") && canAct {
		app.machine.PointerEnter(app.selected)
	}
	imgui.SameLine()
	if imgui.Button("Leave") && app.machine != nil {
		app.machine.PointerLeave()
	}
	imgui.SameLine()
	if imgui.Button("Click") && canAct {
		app.machine.Click(app.selected, math.Vec3{})
	}
	imgui.EndDisabled()

	if app.machine != nil && app.machine.Hovered() != nil {
		imgui.Text("Hovering: " + meshName(app.machine.Hovered()))
	} else {
		imgui.TextDisabled("Hovering: (none)")
	}

	imgui.Spacing()
	imgui.Separator()
	imgui.Text("Meshes:")
	if imgui.BeginChildStrV("##listing", imgui.NewVec2(0, 220), imgui.ChildFlagsBorders, 0) {
		for i, r := range app.records {
			status := ""
			if app.machine != nil && app.machine.Interactive(r.Node) {
				status = " [interactive]"
			}
			label := fmt.Sprintf("%d. %s%s", i+1, r.Name, status)
			if imgui.SelectableBoolV(label, r.Node == app.selected, 0, imgui.NewVec2(0, 0)) {
				app.selected = r.Node
			}
		}
	}
	imgui.EndChild()

	imgui.Spacing()
	imgui.Text("Events:")
	if len(app.eventLog) == 0 {
		imgui.TextDisabled("  (none yet)")
	}
	for _, line := range app.eventLog {
		imgui.Text("  " + line)
	}
}
