// Package viewer wires the engine packages and the interaction component
// into a single windowed application.
package viewer

import (
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/hot7585325/WebVR/internal/config"
	"github.com/hot7585325/WebVR/internal/engine/audio"
	"github.com/hot7585325/WebVR/internal/engine/camera"
	"github.com/hot7585325/WebVR/internal/engine/debug"
	"github.com/hot7585325/WebVR/internal/engine/input"
	"github.com/hot7585325/WebVR/internal/engine/loader"
	"github.com/hot7585325/WebVR/internal/engine/picking"
	"github.com/hot7585325/WebVR/internal/engine/renderer"
	"github.com/hot7585325/WebVR/internal/engine/scene"
	"github.com/hot7585325/WebVR/internal/engine/window"
	"github.com/hot7585325/WebVR/internal/interact"
	"github.com/hot7585325/WebVR/internal/logger"
)

// Viewer is the running application: window, renderer, camera, picking, the
// interaction component, and the model currently on screen.
type Viewer struct {
	config *config.Config

	window    *window.Window
	input     *input.Input
	renderer  *renderer.Renderer
	camera    *camera.OrbitCamera
	raycaster *picking.Raycaster
	audio     *audio.Manager
	capture   *debug.ScreenshotCapture

	// host carries both the engine events the component consumes and the
	// interaction events it emits.
	host      *scene.Node
	component *interact.Component
	modelRoot *scene.Node
	modelPath string

	dragging bool
	running  bool
}

// New builds the viewer. The window and GL context come up here; the model
// is loaded lazily by Run so a missing path can fall back to a file dialog.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		host:   scene.NewNode("viewer"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "WebVR Mesh Viewer",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	// Renderer needs the GL context the window just created.
	clear, err := scene.ParseColor(cfg.Viewer.Background)
	if err != nil {
		clear = scene.MustColor("#1E2430")
	}
	v.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		ClearColor: clear,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera()
	v.raycaster = picking.NewRaycaster(v.host.Events())
	v.capture = debug.NewScreenshotCapture("screenshots", "viewer")
	v.capture.SetFormat(cfg.Viewer.ScreenshotFormat)

	v.component = interact.New(v.host, v.raycaster, interact.Options{
		InteractiveMeshes: cfg.Interaction.Meshes,
		HoverColor:        cfg.Interaction.HoverColor,
		ClickColor:        cfg.Interaction.ClickColor,
		NormalColor:       cfg.Interaction.NormalColor,
		Debug:             cfg.Interaction.Debug,
	})

	v.audio = audio.New()
	v.audio.SetEnabled(cfg.Audio.Enabled)
	v.audio.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	if cfg.Audio.Enabled {
		if err := v.audio.Init(); err != nil {
			logger.Warn("audio unavailable, cues disabled", zap.Error(err))
			v.audio.SetEnabled(false)
		}
	}
	v.wireCues()

	return v, nil
}

// wireCues plays a short tick on hover and a blip on click. Cue failures
// only get logged; feedback sound is strictly optional.
func (v *Viewer) wireCues() {
	em := v.host.Events()
	em.On(interact.EventHoverEnter, func(any) {
		if err := v.audio.Hover(); err != nil {
			logger.Debug("hover cue", zap.Error(err))
		}
	})
	em.On(interact.EventClicked, func(any) {
		if err := v.audio.Click(); err != nil {
			logger.Debug("click cue", zap.Error(err))
		}
	})
	em.On(interact.EventHoverEnter, func(p any) {
		if ev, ok := p.(interact.HoverEvent); ok {
			logger.Debug("hover enter", zap.String("mesh", ev.Name))
		}
	})
	em.On(interact.EventClicked, func(p any) {
		if ev, ok := p.(interact.ClickEvent); ok {
			logger.Info("mesh clicked",
				zap.String("mesh", ev.Name),
				zap.Float32("x", ev.Point.X),
				zap.Float32("y", ev.Point.Y),
				zap.Float32("z", ev.Point.Z),
			)
		}
	})
}

// Close tears down the viewer in reverse creation order.
func (v *Viewer) Close() {
	if v.component != nil {
		v.component.Detach()
	}
	if v.audio != nil {
		v.audio.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// Run loads the configured model (or asks for one) and enters the frame
// loop. It returns when the window is closed or Esc is pressed.
func (v *Viewer) Run() error {
	path := v.config.Viewer.Model
	if path == "" {
		chosen, err := dialog.File().
			Filter("glTF models", "gltf", "glb").
			Filter("All Files", "*").
			Title("Open Model").
			Load()
		if err != nil {
			if err == dialog.ErrCancelled {
				return fmt.Errorf("no model selected")
			}
			return fmt.Errorf("file dialog: %w", err)
		}
		path = chosen
	}

	if err := v.loadModel(path, false); err != nil {
		return err
	}
	// The GL scene exists now, so picking targets may be registered.
	v.component.SceneReady()

	v.running = true
	lastFPS := time.Now()
	frames := 0

	for v.running {
		if v.input.Update() {
			break
		}
		v.handleEvents()

		v.camera.Update()
		v.castPointer()
		v.component.Tick(time.Now())

		width, height := v.window.GetSize()
		aspect := float32(width) / float32(height)
		view := v.camera.ViewMatrix()
		proj := v.camera.ProjectionMatrix(aspect)

		v.renderer.Begin()
		v.renderer.Draw(view, proj, v.camera.Position())
		v.renderer.End()
		v.window.SwapBuffers()

		frames++
		if time.Since(lastFPS) >= time.Second {
			logger.Debug("frame rate", zap.Int("fps", frames))
			frames = 0
			lastFPS = time.Now()
		}
	}
	return nil
}

// handleEvents reacts to this frame's input. Left drag orbits, the wheel
// zooms, a left click without drag picks. R reloads the model, N resets the
// interactive set to the normal color, F12 captures a screenshot.
func (v *Viewer) handleEvents() {
	for _, ev := range v.input.Events() {
		switch ev.Type {
		case input.EventQuit:
			v.running = false

		case input.EventWindowResize:
			v.renderer.Resize(ev.Width, ev.Height)

		case input.EventKeyDown:
			v.handleKey(ev.Key)

		case input.EventMouseDown:
			if ev.Button == sdl.BUTTON_LEFT {
				v.dragging = true
			}

		case input.EventMouseUp:
			if ev.Button == sdl.BUTTON_LEFT {
				v.dragging = false
				v.raycaster.Click(v.pointerRay(float32(ev.MouseX), float32(ev.MouseY)))
			}

		case input.EventMouseMove:
			if v.dragging {
				v.camera.HandleDrag(float32(ev.RelX), float32(ev.RelY))
			}

		case input.EventMouseWheel:
			v.camera.HandleZoom(ev.WheelY)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false

	case sdl.SCANCODE_R:
		if err := v.loadModel(v.modelPath, true); err != nil {
			logger.Error("reload failed", zap.Error(err))
		}

	case sdl.SCANCODE_N:
		v.component.ApplyNormal()

	case sdl.SCANCODE_F12:
		width, height := v.window.DrawableSize()
		path, err := v.capture.Capture(width, height)
		if err != nil {
			logger.Warn("screenshot failed", zap.Error(err))
		} else {
			logger.Info("screenshot saved", zap.String("path", path))
		}
	}
}

// castPointer updates the hover ray from the current cursor position.
func (v *Viewer) castPointer() {
	pos := v.input.MousePosition()
	v.raycaster.Update(v.pointerRay(pos.X, pos.Y))
}

func (v *Viewer) pointerRay(x, y float32) picking.Ray {
	width, height := v.window.GetSize()
	aspect := float32(width) / float32(height)
	viewProj := v.camera.ProjectionMatrix(aspect).Mul(v.camera.ViewMatrix())
	return picking.ScreenToRay(x, y, float32(width), float32(height), viewProj.Inverse())
}

// loadModel swaps the scene for the model at path and announces it on the
// host emitter, which re-runs the component's discovery pipeline. Reloads
// bypass the document cache so file edits show up.
func (v *Viewer) loadModel(path string, reload bool) error {
	load := loader.Load
	if reload {
		load = loader.Reload
	}
	root, err := load(path)
	if err != nil {
		return fmt.Errorf("load model %s: %w", path, err)
	}

	if v.modelRoot != nil {
		v.host.RemoveChild(v.modelRoot)
	}
	v.modelRoot = root
	v.modelPath = path
	v.host.AddChild(root)

	v.renderer.LoadScene(root)
	v.fitCamera(root)

	v.host.Events().Emit(interact.EventModelLoaded, root)

	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("primitives", v.renderer.PrimitiveCount()),
		zap.Strings("meshes", v.component.MeshNames()),
	)
	return nil
}

// fitCamera frames the whole model: every mesh's bounds taken to world
// space and merged.
func (v *Viewer) fitCamera(root *scene.Node) {
	var bounds picking.AABB
	found := false
	root.Walk(func(n *scene.Node) bool {
		if n.Mesh == nil {
			return true
		}
		box := picking.TransformAABB(n.WorldMatrix(), picking.AABB{
			Min: n.Mesh.Bounds.Min,
			Max: n.Mesh.Bounds.Max,
		})
		if !found {
			bounds = box
			found = true
		} else {
			bounds.Min = bounds.Min.Min(box.Min)
			bounds.Max = bounds.Max.Max(box.Max)
		}
		return true
	})
	if found {
		v.camera.FitToBounds(bounds.Min, bounds.Max)
	}
}

// Component exposes the interaction component for tooling built on the
// viewer (the browser reuses this wiring headlessly in tests).
func (v *Viewer) Component() *interact.Component {
	return v.component
}
