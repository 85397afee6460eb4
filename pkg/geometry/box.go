package geometry

import (
	"slices"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// Box represents a rectangular box made up of 6 outward-facing quads
type Box struct {
	Material material.Material
	faces    [6]*Quad
	bbox     core.AABB
}

// NewBox creates a box with the given center and half-extents, rotated by
// angles in radians around X, Y and Z (applied in that order)
func NewBox(center, halfSize, rotation core.Vec3, material material.Material) *Box {
	place := core.Scale(halfSize).
		Then(core.RotateX(rotation.X)).
		Then(core.RotateY(rotation.Y)).
		Then(core.RotateZ(rotation.Z)).
		Then(core.Translate(center))

	b := &Box{Material: material}
	b.generateFaces(place)
	return b
}

// NewAxisAlignedBox creates a box spanning min to max
func NewAxisAlignedBox(min, max core.Vec3, material material.Material) *Box {
	center := min.Add(max).Multiply(0.5)
	return NewBox(center, max.Subtract(center), core.Vec3{}, material)
}

// generateFaces places the faces of the unit cube [-1, 1]³
func (b *Box) generateFaces(place core.Transform) {
	var corners [8]core.Vec3
	for i := range corners {
		unit := core.NewVec3(
			float64(i&1)*2-1,
			float64(i>>1&1)*2-1,
			float64(i>>2&1)*2-1,
		)
		corners[i] = place.Point(unit)
	}

	// Corner index bits are x, y, z. Each face is corner, u, v with u × v outward.
	faces := [6][3]int{
		{4, 5, 6}, // Z+
		{1, 0, 3}, // Z-
		{5, 1, 7}, // X+
		{0, 4, 2}, // X-
		{2, 6, 3}, // Y+
		{0, 1, 4}, // Y-
	}
	for i, f := range faces {
		corner := corners[f[0]]
		b.faces[i] = NewQuad(corner, corners[f[1]].Subtract(corner), corners[f[2]].Subtract(corner), b.Material)
	}

	b.bbox = core.NewAABBFromPoints(corners[:]...)
}

// Intersect returns the nearest face hit
func (b *Box) Intersect(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	return NearestHit(slices.Values(b.faces[:]), ray, tMin, tMax)
}

// PartialBoundingBox returns the box around the eight corners
func (b *Box) PartialBoundingBox() (core.AABB, bool) {
	return b.bbox, true
}

// Transform moves every face
func (b *Box) Transform(t core.Transform) {
	for _, face := range b.faces {
		face.Transform(t)
	}
	b.bbox = b.faces[0].bbox
	for _, face := range b.faces[1:] {
		b.bbox = b.bbox.Union(face.bbox)
	}
}
