package camera

import (
	gomath "math"
	"testing"

	"github.com/hot7585325/WebVR/pkg/math"
)

func settle(c *OrbitCamera) {
	for i := 0; i < 600; i++ {
		c.Update()
	}
}

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func TestPositionOnOrbitSphere(t *testing.T) {
	c := NewOrbitCamera()
	c.SetCenter(math.Vec3{X: 1, Y: 2, Z: 3})

	got := c.Position().Sub(c.Center()).Length()
	if !near(got, c.Distance()) {
		t.Errorf("camera sits %v from center, want %v", got, c.Distance())
	}
}

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.SetCenter(math.Vec3{X: -2, Y: 1, Z: 5})

	// The orbit center must land on the view-space -Z axis.
	v := c.ViewMatrix().TransformVec3(c.Center())
	if !near(v.X, 0) || !near(v.Y, 0) {
		t.Errorf("center off axis in view space: %+v", v)
	}
	if !near(v.Z, -c.Distance()) {
		t.Errorf("center at view depth %v, want %v", v.Z, -c.Distance())
	}
}

func TestDragMovesYawSmoothly(t *testing.T) {
	c := NewOrbitCamera()
	before := c.Yaw()

	c.HandleDrag(100, 0)
	if c.Yaw() != before {
		t.Error("yaw jumped before any update")
	}

	c.Update()
	mid := c.Yaw()
	if mid == before {
		t.Error("yaw did not move after update")
	}

	settle(c)
	want := before - 100*c.DragSensitivity
	if !near(c.Yaw(), want) {
		t.Errorf("yaw settled at %v, want %v", c.Yaw(), want)
	}
	if gomath.Abs(float64(mid-before)) >= gomath.Abs(float64(c.Yaw()-before)) {
		t.Error("first step overshot the full swing")
	}
}

func TestDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6)
	settle(c)
	if c.Pitch() > c.MaxPitch+1e-3 {
		t.Errorf("pitch %v above max %v", c.Pitch(), c.MaxPitch)
	}

	c.HandleDrag(0, -1e6)
	settle(c)
	if c.Pitch() < c.MinPitch-1e-3 {
		t.Errorf("pitch %v below min %v", c.Pitch(), c.MinPitch)
	}
}

func TestZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera()

	for i := 0; i < 200; i++ {
		c.HandleZoom(5) // zoom in hard
	}
	settle(c)
	if !near(c.Distance(), c.MinDistance) {
		t.Errorf("distance %v, want clamped to %v", c.Distance(), c.MinDistance)
	}

	for i := 0; i < 200; i++ {
		c.HandleZoom(-5)
	}
	settle(c)
	if !near(c.Distance(), c.MaxDistance) {
		t.Errorf("distance %v, want clamped to %v", c.Distance(), c.MaxDistance)
	}
}

func TestPanMovesCenter(t *testing.T) {
	c := NewOrbitCamera()
	before := c.Center()

	c.Pan(50, -30)
	if c.Center() == before {
		t.Error("pan left the center in place")
	}

	// Vertical pan component maps straight to Y.
	if c.Center().Y >= before.Y {
		t.Errorf("center Y = %v, want below %v", c.Center().Y, before.Y)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	min := math.Vec3{X: -1, Y: -1, Z: -1}
	max := math.Vec3{X: 1, Y: 1, Z: 1}

	c.FitToBounds(min, max)

	if c.Center() != (math.Vec3{}) {
		t.Errorf("center = %+v, want origin", c.Center())
	}

	radius := max.Sub(c.Center()).Length()
	if c.Distance() <= radius {
		t.Errorf("distance %v inside the bounding sphere (radius %v)", c.Distance(), radius)
	}

	// Snapped: the very next frame is already framed.
	pos := c.Position()
	c.Update()
	if c.Position() != pos {
		t.Error("fit animated instead of snapping")
	}

	if c.Far < c.Distance()+radius {
		t.Errorf("far plane %v clips the model at distance %v", c.Far, c.Distance())
	}
}

func TestFitToBoundsDegenerate(t *testing.T) {
	c := NewOrbitCamera()
	p := math.Vec3{X: 2, Y: 2, Z: 2}

	c.FitToBounds(p, p) // zero-size box

	if c.Center() != p {
		t.Errorf("center = %+v, want %+v", c.Center(), p)
	}
	if c.Distance() < c.MinDistance {
		t.Errorf("distance %v below min", c.Distance())
	}
}
