package picking

import (
	gomath "math"
	"testing"

	"github.com/hot7585325/WebVR/pkg/math"
)

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name    string
		ray     Ray
		wantHit bool
		wantT   float32
	}{
		{
			name:    "head on",
			ray:     Ray{Origin: math.Vec3{X: 0, Y: 0, Z: 5}, Direction: math.Vec3{X: 0, Y: 0, Z: -1}},
			wantHit: true,
			wantT:   4,
		},
		{
			name:    "pointing away",
			ray:     Ray{Origin: math.Vec3{X: 0, Y: 0, Z: 5}, Direction: math.Vec3{X: 0, Y: 0, Z: 1}},
			wantHit: false,
		},
		{
			name:    "miss to the side",
			ray:     Ray{Origin: math.Vec3{X: 5, Y: 0, Z: 5}, Direction: math.Vec3{X: 0, Y: 0, Z: -1}},
			wantHit: false,
		},
		{
			name:    "inside the box exits",
			ray:     Ray{Origin: math.Vec3{X: 0, Y: 0, Z: 0}, Direction: math.Vec3{X: 0, Y: 0, Z: -1}},
			wantHit: true,
			wantT:   1,
		},
		{
			name:    "axis-parallel inside slab",
			ray:     Ray{Origin: math.Vec3{X: 0.5, Y: 0.5, Z: 5}, Direction: math.Vec3{X: 0, Y: 0, Z: -1}},
			wantHit: true,
			wantT:   4,
		},
		{
			name:    "axis-parallel outside slab",
			ray:     Ray{Origin: math.Vec3{X: 2, Y: 0, Z: 5}, Direction: math.Vec3{X: 0, Y: 0, Z: -1}},
			wantHit: false,
		},
		{
			name:    "diagonal corner hit",
			ray:     Ray{Origin: math.Vec3{X: 3, Y: 3, Z: 3}, Direction: math.Vec3{X: -1, Y: -1, Z: -1}.Normalize()},
			wantHit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, hit := tt.ray.IntersectAABB(box)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if tt.wantHit && tt.wantT != 0 && absf(dist-tt.wantT) > 0.001 {
				t.Errorf("t = %f, want %f", dist, tt.wantT)
			}
		})
	}
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1, Y: 2, Z: 3}, Direction: math.Vec3{X: 0, Y: 0, Z: -1}}
	p := r.At(2)
	if p != (math.Vec3{X: 1, Y: 2, Z: 1}) {
		t.Errorf("At(2) = %v, want {1 2 1}", p)
	}
}

func TestNewAABBSwapsCorners(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: -2, Z: 3}, math.Vec3{X: -1, Y: 2, Z: -3})
	if box.Min != (math.Vec3{X: -1, Y: -2, Z: -3}) || box.Max != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("NewAABB = %v..%v", box.Min, box.Max)
	}
}

func TestTransformAABBRotation(t *testing.T) {
	// A unit box rotated 45 degrees around Y grows to sqrt(2) on X and Z.
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	m := math.RotateY(float32(gomath.Pi / 4))

	out := TransformAABB(m, box)
	want := float32(gomath.Sqrt2)

	if absf(out.Max.X-want) > 0.001 || absf(out.Min.X+want) > 0.001 {
		t.Errorf("rotated X extent = %f..%f, want +-%f", out.Min.X, out.Max.X, want)
	}
	if absf(out.Max.Y-1) > 0.001 {
		t.Errorf("rotated Y extent changed: %f", out.Max.Y)
	}
}

func TestScreenToRayCenter(t *testing.T) {
	// Looking down -Z from (0,0,10): the viewport center ray must point at -Z.
	proj := math.Perspective(float32(gomath.Pi/4), 800.0/600.0, 0.1, 100)
	view := math.LookAt(math.Vec3{X: 0, Y: 0, Z: 10}, math.Vec3{}, math.Vec3{X: 0, Y: 1, Z: 0})
	inv := proj.Mul(view).Inverse()

	ray := ScreenToRay(400, 300, 800, 600, inv)

	if absf(ray.Direction.X) > 0.001 || absf(ray.Direction.Y) > 0.001 || absf(ray.Direction.Z+1) > 0.001 {
		t.Errorf("center ray direction = %v, want {0 0 -1}", ray.Direction)
	}
	if absf(ray.Origin.X) > 0.01 || absf(ray.Origin.Y) > 0.01 {
		t.Errorf("center ray origin off axis: %v", ray.Origin)
	}
}

func TestScreenToRayOffCenter(t *testing.T) {
	proj := math.Perspective(float32(gomath.Pi/4), 1, 0.1, 100)
	view := math.LookAt(math.Vec3{X: 0, Y: 0, Z: 10}, math.Vec3{}, math.Vec3{X: 0, Y: 1, Z: 0})
	inv := proj.Mul(view).Inverse()

	// Right half of the screen bends the ray toward +X, upper half toward +Y.
	ray := ScreenToRay(600, 150, 800, 600, inv)
	if ray.Direction.X <= 0 {
		t.Errorf("right-of-center ray X = %f, want > 0", ray.Direction.X)
	}
	if ray.Direction.Y <= 0 {
		t.Errorf("above-center ray Y = %f, want > 0", ray.Direction.Y)
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
