package geometry

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors.
// Its normal is U × V; (U, V) surface coordinates run from 0 to 1 along the edges.
type Quad struct {
	Corner   core.Vec3
	U        core.Vec3
	V        core.Vec3
	Material material.Material

	normal core.Vec3 // Unit normal
	d      float64   // Plane constant: normal · p = d
	w      core.Vec3 // Cached n / (n · n) for the edge coordinates, n = U × V
	bbox   core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material material.Material) *Quad {
	q := &Quad{Corner: corner, U: u, V: v, Material: material}
	q.update()
	return q
}

func (q *Quad) update() {
	n := q.U.Cross(q.V)
	q.normal = n.Normalize()
	q.d = q.normal.Dot(q.Corner)
	q.w = n.Multiply(1 / n.Dot(n))
	q.bbox = core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	)
}

// Intersect tests if a ray intersects with the quad
func (q *Quad) Intersect(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	denominator := ray.Direction.Dot(q.normal)

	// Ray is parallel to the quad
	if math.Abs(denominator) < 1e-12 {
		return nil, false
	}

	t := (q.d - ray.Origin.Dot(q.normal)) / denominator
	if t <= tMin || t >= tMax {
		return nil, false
	}

	position := ray.At(t)
	local := position.Subtract(q.Corner)

	alpha := q.w.Dot(local.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(local))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	return &Intersection{
		N:        q.normal,
		T:        t,
		U:        alpha,
		V:        beta,
		Position: position,
		Material: q.Material,
	}, true
}

// PartialBoundingBox returns the box around the four corners. Axis-aligned
// quads produce a flat box, which the slab test accepts.
func (q *Quad) PartialBoundingBox() (core.AABB, bool) {
	return q.bbox, true
}

// Transform moves the corner and edges
func (q *Quad) Transform(t core.Transform) {
	q.Corner = t.Point(q.Corner)
	q.U = t.Vector(q.U)
	q.V = t.Vector(q.V)
	q.update()
}
