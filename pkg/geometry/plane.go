package geometry

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3 // A point on the plane
	Normal   core.Vec3 // Unit normal
	Material material.Material

	tangent, bitangent core.Vec3 // Basis for planar uvs
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material material.Material) *Plane {
	p := &Plane{Point: point, Normal: normal.Normalize(), Material: material}
	p.updateBasis()
	return p
}

func (p *Plane) updateBasis() {
	// Pick the world axis least aligned with the normal
	axis := core.NewVec3(1, 0, 0)
	if math.Abs(p.Normal.X) > 0.9 {
		axis = core.NewVec3(0, 1, 0)
	}
	p.tangent = axis.Cross(p.Normal).Normalize()
	p.bitangent = p.Normal.Cross(p.tangent)
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to plane
	if math.Abs(denominator) < 1e-12 {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= tMin || t >= tMax {
		return nil, false
	}

	position := ray.At(t)
	local := position.Subtract(p.Point)

	return &Intersection{
		N:        p.Normal,
		T:        t,
		U:        local.Dot(p.tangent),
		V:        local.Dot(p.bitangent),
		Position: position,
		Material: p.Material,
	}, true
}

// PartialBoundingBox reports that a plane has no finite bounds
func (p *Plane) PartialBoundingBox() (core.AABB, bool) {
	return core.AABB{}, false
}

// Transform moves the plane's anchor point and normal
func (p *Plane) Transform(t core.Transform) {
	p.Point = t.Point(p.Point)
	p.Normal = t.Normal(p.Normal)
	p.updateBasis()
}
