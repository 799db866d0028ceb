package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testFrustum() Frustum {
	proj := PerspectiveMat4(mgl32.DegToRad(45), 4.0/3.0, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	return ExtractFrustum(proj.Mul4(view))
}

func TestFrustumContainsPoint(t *testing.T) {
	f := testFrustum()
	testCases := []struct {
		name  string
		point mgl32.Vec3
		want  bool
	}{
		{name: "origin in front of camera", point: mgl32.Vec3{0, 0, 0}, want: true},
		{name: "behind camera", point: mgl32.Vec3{0, 0, 5}, want: false},
		{name: "closer than near plane", point: mgl32.Vec3{0, 0, 2.95}, want: false},
		{name: "just past near plane", point: mgl32.Vec3{0, 0, 2.85}, want: true},
		{name: "beyond far plane", point: mgl32.Vec3{0, 0, -200}, want: false},
		{name: "far left", point: mgl32.Vec3{-50, 0, 0}, want: false},
		{name: "far above", point: mgl32.Vec3{0, 50, 0}, want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.ContainsPoint(tc.point); got != tc.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.want)
			}
		})
	}
}

func TestFrustumPlanesNormalized(t *testing.T) {
	for i, p := range testFrustum().Planes {
		if l := p.Normal.Len(); l < 0.999 || l > 1.001 {
			t.Errorf("plane %d normal length %v", i, l)
		}
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	f := testFrustum()
	// Point just outside the left plane at the origin's depth, pulled in by a large radius.
	outside := mgl32.Vec3{-5, 0, 0}
	if f.IntersectsSphere(outside, 0.1) {
		t.Error("small sphere outside the left plane should be culled")
	}
	if !f.IntersectsSphere(outside, 5) {
		t.Error("large sphere overlapping the frustum should pass")
	}
}
