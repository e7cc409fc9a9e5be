// Package camera provides the orbit camera the viewer renders through.
package camera

import (
	gomath "math"

	"github.com/charmbracelet/harmonica"

	"github.com/hot7585325/WebVR/pkg/math"
)

// updateRate is the spring timestep. Update advances one step per frame.
const updateRate = 60

// spring animates one scalar toward its target, critically damped so the
// value settles without overshoot.
type spring struct {
	value    float64
	velocity float64
	target   float64
	s        harmonica.Spring
}

func newSpring(frequency, initial float64) spring {
	return spring{
		value:  initial,
		target: initial,
		s:      harmonica.NewSpring(harmonica.FPS(updateRate), frequency, 1.0),
	}
}

func (sp *spring) update() {
	sp.value, sp.velocity = sp.s.Update(sp.value, sp.velocity, sp.target)
}

// snap moves value and target together, killing any in-flight animation.
func (sp *spring) snap(v float64) {
	sp.value = v
	sp.target = v
	sp.velocity = 0
}

// OrbitCamera orbits a center point at a spring-smoothed distance and
// orientation. Input handlers move the spring targets; Update advances the
// springs one frame toward them.
type OrbitCamera struct {
	center math.Vec3

	distance spring
	pitch    spring
	yaw      spring

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FOV  float32 // vertical field of view, radians
	Near float32
	Far  float32
}

// NewOrbitCamera creates an orbit camera with defaults sized for meter-scale
// models. FitToBounds retunes distance and far plane per model.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		distance:        newSpring(6.0, 4.0),
		pitch:           newSpring(8.0, 0.5),
		yaw:             newSpring(8.0, 0.0),
		MinDistance:     0.2,
		MaxDistance:     500.0,
		MinPitch:        -1.45,
		MaxPitch:        1.45,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             gomath.Pi / 4,
		Near:            0.05,
		Far:             1000.0,
	}
}

// Update advances the springs one frame.
func (c *OrbitCamera) Update() {
	c.distance.update()
	c.pitch.update()
	c.yaw.update()
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	d := float32(c.distance.value)
	sp, cp := gomath.Sincos(c.pitch.value)
	sy, cy := gomath.Sincos(c.yaw.value)

	return math.Vec3{
		X: c.center.X + d*float32(cp*sy),
		Y: c.center.Y + d*float32(sp),
		Z: c.center.Z + d*float32(cp*cy),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.center, up)
}

// ProjectionMatrix returns the perspective projection for the given aspect
// ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// HandleDrag updates the orbit targets from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.yaw.target -= float64(deltaX * c.DragSensitivity)
	c.pitch.target = clamp(
		c.pitch.target+float64(deltaY*c.DragSensitivity),
		float64(c.MinPitch), float64(c.MaxPitch),
	)
}

// HandleZoom updates the distance target from a scroll wheel delta. Positive
// deltas zoom in. The step scales with distance so zooming feels uniform.
func (c *OrbitCamera) HandleZoom(delta float32) {
	t := c.distance.target
	t -= float64(delta) * t * float64(c.ZoomSensitivity)
	c.distance.target = clamp(t, float64(c.MinDistance), float64(c.MaxDistance))
}

// Pan shifts the orbit center in the view plane, scaled by distance.
func (c *OrbitCamera) Pan(deltaX, deltaY float32) {
	speed := float32(c.distance.value) * 0.002
	sy, cy := gomath.Sincos(c.yaw.value)
	right := math.Vec3{X: float32(cy), Z: float32(-sy)}

	c.center = c.center.Add(right.Scale(-deltaX * speed))
	c.center.Y += deltaY * speed
}

// Center returns the orbit center.
func (c *OrbitCamera) Center() math.Vec3 {
	return c.center
}

// SetCenter moves the orbit center immediately.
func (c *OrbitCamera) SetCenter(v math.Vec3) {
	c.center = v
}

// Distance returns the smoothed orbit distance.
func (c *OrbitCamera) Distance() float32 {
	return float32(c.distance.value)
}

// Pitch returns the smoothed pitch in radians.
func (c *OrbitCamera) Pitch() float32 {
	return float32(c.pitch.value)
}

// Yaw returns the smoothed yaw in radians.
func (c *OrbitCamera) Yaw() float32 {
	return float32(c.yaw.value)
}

// FitToBounds frames the given bounding box: center on the box, back the
// camera off far enough for the whole box to fit the field of view, and
// settle into a three-quarter view. Values snap so the first frame after a
// load is already framed.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.center = min.Add(max).Scale(0.5)

	radius := max.Sub(c.center).Length()
	if radius < 1e-4 {
		radius = 1
	}

	dist := 1.2 * radius / float32(gomath.Sin(float64(c.FOV)/2))
	if dist < c.MinDistance {
		dist = c.MinDistance
	}
	if dist > c.MaxDistance {
		dist = c.MaxDistance
	}

	c.distance.snap(float64(dist))
	c.pitch.snap(0.5)
	c.yaw.snap(0.6)

	if far := dist + radius*4; far > c.Far {
		c.Far = far
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
