package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

func TestBox_Intersect_AxisAligned(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), white)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectedT float64
		normal    core.Vec3
	}{
		{"front", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), 4, core.NewVec3(0, 0, 1)},
		{"back", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 4, core.NewVec3(0, 0, -1)},
		{"right", core.NewVec3(3, 0.5, 0), core.NewVec3(-1, 0, 0), 2, core.NewVec3(1, 0, 0)},
		{"left", core.NewVec3(-3, 0, 0.5), core.NewVec3(1, 0, 0), 2, core.NewVec3(-1, 0, 0)},
		{"top", core.NewVec3(0.2, 4, 0.2), core.NewVec3(0, -1, 0), 3, core.NewVec3(0, 1, 0)},
		{"bottom", core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), 1, core.NewVec3(0, -1, 0)},
		{"from inside", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 1, core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := box.Intersect(core.NewRay(tt.origin, tt.direction), 0.001, 100)
			if !ok {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if !vecClose(hit.N, tt.normal, 1e-9) {
				t.Errorf("Expected outward normal %v, got %v", tt.normal, hit.N)
			}
		})
	}

	if _, ok := box.Intersect(core.NewRay(core.NewVec3(3, 3, 5), core.NewVec3(0, 0, -1)), 0.001, 100); ok {
		t.Error("Expected miss")
	}
}

func TestBox_Rotated(t *testing.T) {
	// A cube turned 45° around Y presents an edge at z=√2; the ray lands just
	// beside it on the face whose normal is (1, 0, 1)/√2
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(0, math.Pi/4, 0), white)

	hit, ok := box.Intersect(core.NewRay(core.NewVec3(0.1, 0, 5), core.NewVec3(0, 0, -1)), 0.001, 100)
	if !ok {
		t.Fatal("Expected hit")
	}
	if expected := 5.1 - math.Sqrt2; math.Abs(hit.T-expected) > 1e-9 {
		t.Errorf("Expected t=%f, got %f", expected, hit.T)
	}
	if !vecClose(hit.N, core.NewVec3(1, 0, 1).Normalize(), 1e-9) {
		t.Errorf("Unexpected normal %v", hit.N)
	}

	bounds, _ := box.PartialBoundingBox()
	if math.Abs(bounds.Max.X-math.Sqrt2) > 1e-9 || math.Abs(bounds.Max.Y-1) > 1e-9 {
		t.Errorf("Unexpected bounds %v", bounds)
	}
}

func TestBox_Transform(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), white)
	box.Transform(core.Translate(core.NewVec3(10, 0, 0)))

	bounds, _ := box.PartialBoundingBox()
	if !vecClose(bounds.Min, core.NewVec3(10, 0, 0), 1e-12) || !vecClose(bounds.Max, core.NewVec3(11, 1, 1), 1e-12) {
		t.Errorf("Unexpected bounds after transform %v", bounds)
	}
	if _, ok := box.Intersect(core.NewRay(core.NewVec3(10.5, 0.5, -3), core.NewVec3(0, 0, 1)), 0.001, 100); !ok {
		t.Error("Expected hit on translated box")
	}
}
