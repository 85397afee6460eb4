package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min = min.Min(point)
		max = max.Max(point)
	}

	return AABB{Min: min, Max: max}
}

// Hit tests if a ray intersects with this AABB within [tMin, tMax] using the slab method.
//
// The ray's precomputed inverse direction and sign bits select the near and far
// planes per axis without branching on the direction. Infinite reciprocals from
// zero direction components are valid input: a NaN produced by 0*Inf never
// narrows the interval because every comparison against NaN is false.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	bounds := [2]Vec3{aabb.Min, aabb.Max}

	for axis := 0; axis < 3; axis++ {
		near, far := bounds[1], bounds[0]
		if ray.Signs[axis] {
			near, far = bounds[0], bounds[1]
		}

		origin := ray.Origin.Component(axis)
		inv := ray.InvDirection.Component(axis)
		t0 := (near.Component(axis) - origin) * inv
		t1 := (far.Component(axis) - origin) * inv

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// Contains reports whether other lies entirely inside this AABB
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && other.Max.X <= aabb.Max.X &&
		aabb.Min.Y <= other.Min.Y && other.Max.Y <= aabb.Max.Y &&
		aabb.Min.Z <= other.Min.Z && other.Max.Z <= aabb.Max.Z
}

// ContainsPoint reports whether p lies inside this AABB (boundary inclusive)
func (aabb AABB) ContainsPoint(p Vec3) bool {
	return aabb.Min.X <= p.X && p.X <= aabb.Max.X &&
		aabb.Min.Y <= p.Y && p.Y <= aabb.Max.Y &&
		aabb.Min.Z <= p.Z && p.Z <= aabb.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Octant returns the i-th of the eight boxes obtained by splitting at the center.
// Bit 0 of i selects the upper X half, bit 1 the upper Y half and bit 2 the upper Z half.
func (aabb AABB) Octant(i int) AABB {
	c := aabb.Center()
	octant := AABB{Min: aabb.Min, Max: c}
	if i&1 != 0 {
		octant.Min.X, octant.Max.X = c.X, aabb.Max.X
	}
	if i&2 != 0 {
		octant.Min.Y, octant.Max.Y = c.Y, aabb.Max.Y
	}
	if i&4 != 0 {
		octant.Min.Z, octant.Max.Z = c.Z, aabb.Max.Z
	}
	return octant
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// IsFinite reports whether every corner component is a finite number
func (aabb AABB) IsFinite() bool {
	for axis := 0; axis < 3; axis++ {
		lo, hi := aabb.Min.Component(axis), aabb.Max.Component(axis)
		if math.IsInf(lo, 0) || math.IsNaN(lo) || math.IsInf(hi, 0) || math.IsNaN(hi) {
			return false
		}
	}
	return true
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}
