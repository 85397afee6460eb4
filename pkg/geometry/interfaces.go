package geometry

import (
	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// Prim is a primitive that can be hit by rays and indexed by an octree
type Prim interface {
	// Intersect returns the nearest hit with t strictly inside (tMin, tMax)
	Intersect(ray core.Ray, tMin, tMax float64) (*Intersection, bool)
	// PartialBoundingBox reports false for primitives without finite extent
	PartialBoundingBox() (core.AABB, bool)
	// Transform moves the primitive in place. Not safe once rendering starts.
	Transform(t core.Transform)
}

// Intersection is the result of a successful ray query. Material refers to
// the hit primitive's shared material and must be treated as read-only.
type Intersection struct {
	N        core.Vec3 // Outward unit surface normal
	T        float64   // Parameter t along the ray
	U, V     float64   // Surface coordinates
	Position core.Vec3 // World-space hit point
	Material material.Material
}

// FrontFace reports whether ray arrived from the side N points to
func (i *Intersection) FrontFace(ray core.Ray) bool {
	return ray.Direction.Dot(i.N) < 0
}

// FacingNormal returns N flipped, if needed, to point against the ray
func (i *Intersection) FacingNormal(ray core.Ray) core.Vec3 {
	if i.FrontFace(ray) {
		return i.N
	}
	return i.N.Negate()
}
