package common

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := float32(0.1), float32(100)
	m := PerspectiveMat4(mgl32.DegToRad(45), 4.0/3.0, near, far)

	project := func(z float32) float32 {
		clip := m.Mul4x1(mgl32.Vec4{0, 0, -z, 1})
		return clip.Z() / clip.W()
	}

	if d := project(near); math.Abs(float64(d)) > 1e-5 {
		t.Errorf("near plane should map to depth 0, got %v", d)
	}
	if d := project(far); math.Abs(float64(d-1)) > 1e-4 {
		t.Errorf("far plane should map to depth 1, got %v", d)
	}
	if m[11] != -1 || m[15] != 0 {
		t.Errorf("unexpected w row: m[11]=%v m[15]=%v", m[11], m[15])
	}

	f := float32(1 / math.Tan(float64(mgl32.DegToRad(45))/2))
	if math.Abs(float64(m[0]-f/(4.0/3.0))) > 1e-5 || math.Abs(float64(m[5]-f)) > 1e-5 {
		t.Errorf("unexpected focal terms: m[0]=%v m[5]=%v", m[0], m[5])
	}
}

func TestMat4Bytes(t *testing.T) {
	m := mgl32.Ident4()
	m[12] = 3.5

	buf := Mat4Bytes(m)
	if len(buf) != 64 {
		t.Fatalf("expected 64 bytes, got %d", len(buf))
	}
	for i := range 16 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != m[i] {
			t.Errorf("element %d: expected %v, got %v", i, m[i], got)
		}
	}
}

func TestClamp(t *testing.T) {
	testCases := []struct {
		v, lo, hi, want float32
	}{
		{v: 5, lo: 1, hi: 45, want: 5},
		{v: -3, lo: 1, hi: 45, want: 1},
		{v: 90, lo: -89, hi: 89, want: 89},
		{v: -90, lo: -89, hi: 89, want: -89},
	}
	for _, tc := range testCases {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 3, 4); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("expected zero value, got %q", got)
	}
}
