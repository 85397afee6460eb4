package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance && math.Abs(a.Z-b.Z) <= tolerance
}

func TestCamera_Ray(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 90, 200, 100)

	tests := []struct {
		name     string
		x, y     float64
		expected core.Vec3
	}{
		{"center", 100, 50, core.NewVec3(0, 0, -1)},
		{"top center", 100, 0, core.NewVec3(0, 1, -1).Normalize()},
		{"bottom center", 100, 100, core.NewVec3(0, -1, -1).Normalize()},
		// aspect 2 doubles the horizontal extent
		{"right center", 200, 50, core.NewVec3(2, 0, -1).Normalize()},
		{"top left", 0, 0, core.NewVec3(-2, 1, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.Ray(tt.x, tt.y)
			if ray.Origin != camera.Position {
				t.Errorf("Expected origin at camera position, got %v", ray.Origin)
			}
			if !vecClose(ray.Direction, tt.expected, 1e-12) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCamera_KeyframesRequired(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 30, 10, 10)
	if _, err := camera.At(0); !errors.Is(err, ErrNotEnoughKeyframes) {
		t.Errorf("Expected ErrNotEnoughKeyframes, got %v", err)
	}

	camera.SetKeyframes([]CameraKeyframe{{Time: 0}})
	if _, err := camera.At(0); !errors.Is(err, ErrNotEnoughKeyframes) {
		t.Errorf("Expected ErrNotEnoughKeyframes with one keyframe, got %v", err)
	}
}

func TestCamera_At(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 30, 10, 10)
	up := core.NewVec3(0, 1, 0)

	// Deliberately unsorted
	camera.SetKeyframes([]CameraKeyframe{
		{Time: 2, Position: core.NewVec3(10, 0, 0), Up: up},
		{Time: 0, Position: core.NewVec3(0, 0, 0), Up: up},
		{Time: 1, Position: core.NewVec3(2, 0, 0), Up: up},
	})

	tests := []struct {
		time     float64
		expected core.Vec3
	}{
		{-1, core.NewVec3(0, 0, 0)},
		{0, core.NewVec3(0, 0, 0)},
		{0.5, core.NewVec3(1, 0, 0)},
		{1, core.NewVec3(2, 0, 0)},
		{1.25, core.NewVec3(4, 0, 0)},
		{2, core.NewVec3(10, 0, 0)},
		{5, core.NewVec3(10, 0, 0)},
	}

	for _, tt := range tests {
		posed, err := camera.At(tt.time)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !vecClose(posed.Position, tt.expected, 1e-12) {
			t.Errorf("Time %v: expected position %v, got %v", tt.time, tt.expected, posed.Position)
		}
		if posed.Width != camera.Width || posed.FOV != camera.FOV {
			t.Errorf("Time %v: image settings not carried over", tt.time)
		}
		if len(posed.Keyframes) != 3 {
			t.Errorf("Time %v: expected keyframes carried over", tt.time)
		}
	}
}
