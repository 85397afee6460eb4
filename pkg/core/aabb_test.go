package core

import (
	"math"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name      string
		origin    Vec3
		direction Vec3
		expected  bool
	}{
		{"straight through", NewVec3(-5, 0, 0), NewVec3(1, 0, 0), true},
		{"pointing away", NewVec3(-5, 0, 0), NewVec3(-1, 0, 0), false},
		{"parallel outside slab", NewVec3(-5, 2, 0), NewVec3(1, 0, 0), false},
		{"parallel on boundary", NewVec3(-5, 1, 0), NewVec3(1, 0, 0), true},
		{"origin inside", NewVec3(0, 0, 0), NewVec3(0, 0, 1), true},
		{"diagonal hit", NewVec3(-5, -5, -5), NewVec3(1, 1, 1), true},
		{"diagonal miss", NewVec3(-5, 5, 0), NewVec3(1, 1, 0), false},
		{"negative zero component", NewVec3(0, 5, 0), NewVec3(math.Copysign(0, -1), -1, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(tt.origin, tt.direction)
			if got := box.Hit(ray, 0, math.Inf(1)); got != tt.expected {
				t.Errorf("Expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestAABB_HitRespectsRange(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	ray := NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0))

	if box.Hit(ray, 0, 3) {
		t.Error("Expected miss when tMax ends before the box")
	}
	if box.Hit(ray, 7, 100) {
		t.Error("Expected miss when tMin starts after the box")
	}
	if !box.Hit(ray, 0, 4.5) {
		t.Error("Expected hit when range overlaps the box")
	}
}

func TestAABB_UnionAndContains(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 0), NewVec3(0.5, 2, 3))
	u := a.Union(b)

	expected := NewAABB(NewVec3(-1, 0, 0), NewVec3(1, 2, 3))
	if u != expected {
		t.Errorf("Expected %v, got %v", expected, u)
	}
	if !u.Contains(a) || !u.Contains(b) {
		t.Error("Union should contain both inputs")
	}
	if a.Contains(b) {
		t.Error("a should not contain b")
	}
	if !u.ContainsPoint(NewVec3(0, 1, 2)) {
		t.Error("Expected point inside union")
	}
}

func TestAABB_Octants(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(2, 2, 2))

	var total AABB
	for i := 0; i < 8; i++ {
		octant := box.Octant(i)
		if octant.Size() != NewVec3(1, 1, 1) {
			t.Errorf("Octant %d: expected unit size, got %v", i, octant.Size())
		}
		if !box.Contains(octant) {
			t.Errorf("Octant %d escapes its parent: %v", i, octant)
		}
		if i == 0 {
			total = octant
		} else {
			total = total.Union(octant)
		}
	}

	if total != box {
		t.Errorf("Octants should cover the parent, got %v", total)
	}
	if box.Octant(7).Min != NewVec3(1, 1, 1) {
		t.Errorf("Expected octant 7 to be the upper corner, got %v", box.Octant(7))
	}
}

func TestAABB_IsFinite(t *testing.T) {
	if !NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)).IsFinite() {
		t.Error("Expected finite box")
	}
	if NewAABB(NewVec3(math.Inf(-1), 0, 0), NewVec3(1, 1, 1)).IsFinite() {
		t.Error("Expected infinite box to be reported")
	}
}
