package core

import (
	"math"
	"testing"
)

func vecClose(a, b Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"min", a.Min(b), NewVec3(1, -5, 3)},
		{"max", a.Max(b), NewVec3(4, 2, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if dot := a.Dot(b); dot != 12 {
		t.Errorf("Expected dot 12, got %f", dot)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}

	if zero := Zero().Normalize(); zero != Zero() {
		t.Errorf("Expected zero vector to normalize to zero, got %v", zero)
	}
}

func TestVec3_Lerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(2, 4, -6)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Expected %v at t=0, got %v", a, got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Expected %v at t=1, got %v", b, got)
	}
	if got := a.Lerp(b, 0.5); got != NewVec3(1, 2, -3) {
		t.Errorf("Expected midpoint, got %v", got)
	}
}

func TestVec3_Reflect(t *testing.T) {
	incoming := NewVec3(1, -1, 0).Normalize()
	reflected := incoming.Reflect(NewVec3(0, 1, 0))
	expected := NewVec3(1, 1, 0).Normalize()

	if !vecClose(reflected, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}
}

func TestVec3_Refract(t *testing.T) {
	normal := NewVec3(0, 1, 0)

	t.Run("normal incidence passes straight through", func(t *testing.T) {
		dir, ok := NewVec3(0, -1, 0).Refract(normal, 1.5)
		if !ok {
			t.Fatal("Expected refraction, got total internal reflection")
		}
		if !vecClose(dir, NewVec3(0, -1, 0), 1e-12) {
			t.Errorf("Expected straight direction, got %v", dir)
		}
	})

	t.Run("entering bends toward normal", func(t *testing.T) {
		incoming := NewVec3(1, -1, 0).Normalize()
		dir, ok := incoming.Refract(normal, 1.5)
		if !ok {
			t.Fatal("Expected refraction")
		}
		sinI := math.Abs(incoming.X)
		sinT := math.Abs(dir.Normalize().X)
		if math.Abs(sinI-1.5*sinT) > 1e-9 {
			t.Errorf("Snell's law violated: sinI=%f sinT=%f", sinI, sinT)
		}
	})

	t.Run("total internal reflection when leaving at grazing angle", func(t *testing.T) {
		// Travelling along the outward normal side means we are inside the medium.
		incoming := NewVec3(0.9, 0.1, 0).Normalize()
		if _, ok := incoming.Refract(normal, 1.5); ok {
			t.Error("Expected total internal reflection")
		}
	})
}

func TestVec3_ComponentAndMax(t *testing.T) {
	v := NewVec3(1, 7, 3)
	for axis, expected := range []float64{1, 7, 3} {
		if got := v.Component(axis); got != expected {
			t.Errorf("Axis %d: expected %f, got %f", axis, expected, got)
		}
	}
	if v.MaxComponent() != 7 {
		t.Errorf("Expected max component 7, got %f", v.MaxComponent())
	}
}
