// Mesh Browser - a graphical tool for inspecting glTF scenes and trying out
// mesh interactivity filters without the full viewer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"

	"github.com/hot7585325/WebVR/internal/engine/loader"
	"github.com/hot7585325/WebVR/internal/engine/scene"
	"github.com/hot7585325/WebVR/internal/interact"
)

func main() {
	runtime.LockOSThread()

	modelPath := flag.String("model", "", "Path to a glTF model to open")
	flag.Parse()

	app := NewApp()

	if *modelPath != "" {
		if err := app.OpenModel(*modelPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening model: %v\n", err)
		}
	}

	app.Run()
}

// App holds the browser state: the loaded scene, the discovery records, and
// a live interaction stack (store, highlighter, scheduler, machine) driven
// by the UI instead of a raycaster.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]

	// Scene state
	root      *scene.Node
	modelPath string
	records   []interact.MeshRecord

	// Interaction stack
	store       *interact.ColorStore
	highlighter *interact.Highlighter
	scheduler   *interact.Scheduler
	machine     *interact.Machine
	interactive []*scene.Node

	// UI state
	selected    *scene.Node
	filterText  string
	hoverText   string
	clickText   string
	filterError string
	eventLog    []string

	// File dialog state (must open on main thread)
	pendingModelPath string
}

// NewApp creates the application and its window.
func NewApp() *App {
	app := &App{
		hoverText: interact.DefaultHoverColor,
		clickText: interact.DefaultClickColor,
	}
	app.store = interact.NewColorStore()
	app.highlighter = interact.NewHighlighter(app.store)
	app.scheduler = interact.NewScheduler()

	var err error
	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		panic(fmt.Sprintf("failed to create backend: %v", err))
	}

	app.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	app.backend.CreateWindow("Mesh Browser", 1100, 720)

	if err := gl.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: OpenGL init failed: %v\n", err)
	}

	return app
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// openFileDialog shows a native file dialog to select a model.
func (app *App) openFileDialog() {
	// SDL window operations must stay on the main thread, so the goroutine
	// only records the chosen path; render() picks it up next frame.
	go func() {
		filename, err := dialog.File().
			Filter("glTF models", "gltf", "glb").
			Filter("All Files", "*").
			Title("Open Model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
			}
			return
		}
		app.pendingModelPath = filename
	}()
}

// OpenModel loads a glTF scene and rebuilds the interaction stack on it.
func (app *App) OpenModel(path string) error {
	root, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("failed to open model: %w", err)
	}

	app.root = root
	app.modelPath = path
	app.records = interact.DiscoverMeshes(root)
	app.selected = nil
	app.eventLog = nil

	app.store.Reset()
	app.machine = interact.NewMachine(app.highlighter, app.scheduler, root.Events())
	app.applyColors()
	app.rebuildSet()
	app.subscribeLog(root)

	app.backend.SetWindowTitle(fmt.Sprintf("Mesh Browser - %s", filepath.Base(path)))
	return nil
}

// rebuildSet re-resolves the interactive set from the filter text and
// snapshots any newly interactive meshes.
func (app *App) rebuildSet() {
	if app.machine == nil {
		return
	}
	app.interactive = interact.Resolve(app.records, interact.ParseFilter(app.filterText))
	for _, n := range app.interactive {
		app.highlighter.Snapshot(n)
	}
	app.machine.SetInteractive(app.interactive)
}

// applyColors parses the color text fields into the machine. Unparseable
// strings leave the previous color standing and surface as filterError.
func (app *App) applyColors() {
	if app.machine == nil {
		return
	}
	app.filterError = ""
	hover, err := scene.ParseColor(app.hoverText)
	if err != nil {
		app.filterError = fmt.Sprintf("hover: %v", err)
		hover = scene.MustColor(interact.DefaultHoverColor)
	}
	click, err := scene.ParseColor(app.clickText)
	if err != nil {
		app.filterError = fmt.Sprintf("click: %v", err)
		click = scene.MustColor(interact.DefaultClickColor)
	}
	app.machine.SetColors(hover, click)
}

// subscribeLog mirrors the interaction events into the UI event log.
func (app *App) subscribeLog(root *scene.Node) {
	em := root.Events()
	em.On(interact.EventHoverEnter, func(p any) {
		if ev, ok := p.(interact.HoverEvent); ok {
			app.logEvent("hover-enter " + ev.Name)
		}
	})
	em.On(interact.EventHoverLeave, func(p any) {
		if ev, ok := p.(interact.HoverEvent); ok {
			app.logEvent("hover-leave " + ev.Name)
		}
	})
	em.On(interact.EventClicked, func(p any) {
		if ev, ok := p.(interact.ClickEvent); ok {
			app.logEvent("clicked " + ev.Name)
		}
	})
}

func (app *App) logEvent(msg string) {
	app.eventLog = append(app.eventLog, time.Now().Format("15:04:05")+" "+msg)
	if len(app.eventLog) > 12 {
		app.eventLog = app.eventLog[len(app.eventLog)-12:]
	}
}

// render is called each frame to draw the UI.
func (app *App) render() {
	// Process pending file dialog result on the main thread.
	if app.pendingModelPath != "" {
		path := app.pendingModelPath
		app.pendingModelPath = ""
		if err := app.OpenModel(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening model: %v\n", err)
		}
	}

	// The deferred click restorations run on the UI loop, same as the
	// viewer's frame loop.
	app.scheduler.Advance(time.Now())

	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open Model...") {
				app.openFileDialog()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Exit") {
				os.Exit(0)
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	leftPanelWidth := float32(300)
	rightPanelWidth := float32(340)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight
	centerWidth := workSize.X - leftPanelWidth - rightPanelWidth

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, contentHeight))
	if imgui.BeginV("Scene", nil, flags) {
		app.renderSceneTree()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(centerWidth, contentHeight))
	if imgui.BeginV("Mesh", nil, flags) {
		app.renderInspector()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth+centerWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(rightPanelWidth, contentHeight))
	if imgui.BeginV("Interactivity", nil, flags) {
		app.renderInteractivity()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()
}

// renderStatusBar renders the status bar at the bottom.
func (app *App) renderStatusBar() {
	if app.root == nil {
		imgui.Text("No model loaded")
		return
	}
	selected := "(none)"
	if app.selected != nil {
		selected = meshName(app.selected)
	}
	imgui.Text(fmt.Sprintf("%d meshes | %d interactive | Selected: %s",
		len(app.records), len(app.interactive), selected))
}

// meshName applies the registry's display-name fallback for UI labels.
func meshName(n *scene.Node) string {
	if n.Name == "" {
		return interact.UnnamedMesh
	}
	return n.Name
}
