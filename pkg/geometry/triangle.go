package geometry

import (
	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// TriangleVertex carries per-vertex shading attributes
type TriangleVertex struct {
	Pos  core.Vec3
	N    core.Vec3 // Vertex normal; zero means "use the face normal"
	U, V float64
}

// Triangle represents a single triangle with interpolated normals and uvs
type Triangle struct {
	V0, V1, V2 TriangleVertex
	Material   material.Material

	edge1, edge2 core.Vec3 // Cached edges from V0
	normal       core.Vec3 // Cached face normal
	bbox         core.AABB // Cached bounding box
}

// NewTriangle creates a triangle from three vertices. Vertices without a normal
// receive the face normal (counter-clockwise winding).
func NewTriangle(v0, v1, v2 TriangleVertex, material material.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: material}
	t.update()

	for _, v := range []*TriangleVertex{&t.V0, &t.V1, &t.V2} {
		if v.N.LengthSquared() == 0 {
			v.N = t.normal
		}
	}

	return t
}

// NewFlatTriangle creates an untextured triangle shaded with its face normal
func NewFlatTriangle(p0, p1, p2 core.Vec3, material material.Material) *Triangle {
	return NewTriangle(TriangleVertex{Pos: p0}, TriangleVertex{Pos: p1}, TriangleVertex{Pos: p2}, material)
}

// update recomputes the cached edges, face normal and bounding box
func (t *Triangle) update() {
	t.edge1 = t.V1.Pos.Subtract(t.V0.Pos)
	t.edge2 = t.V2.Pos.Subtract(t.V0.Pos)
	t.normal = t.edge1.Cross(t.edge2).Normalize()
	t.bbox = core.NewAABBFromPoints(t.V0.Pos, t.V1.Pos, t.V2.Pos)
}

// Intersect uses the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	const epsilon = 1e-12

	h := ray.Direction.Cross(t.edge2)
	a := t.edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0.Pos)
	b1 := f * s.Dot(h)
	if b1 < 0.0 || b1 > 1.0 {
		return nil, false
	}

	q := s.Cross(t.edge1)
	b2 := f * ray.Direction.Dot(q)
	if b2 < 0.0 || b1+b2 > 1.0 {
		return nil, false
	}

	tHit := f * t.edge2.Dot(q)
	if tHit <= tMin || tHit >= tMax {
		return nil, false
	}

	b0 := 1 - b1 - b2
	normal := t.V0.N.Multiply(b0).Add(t.V1.N.Multiply(b1)).Add(t.V2.N.Multiply(b2)).Normalize()
	if normal.LengthSquared() == 0 {
		normal = t.normal
	}

	return &Intersection{
		N:        normal,
		T:        tHit,
		U:        b0*t.V0.U + b1*t.V1.U + b2*t.V2.U,
		V:        b0*t.V0.V + b1*t.V1.V + b2*t.V2.V,
		Position: ray.At(tHit),
		Material: t.Material,
	}, true
}

// PartialBoundingBox returns the cached bounding box
func (t *Triangle) PartialBoundingBox() (core.AABB, bool) {
	return t.bbox, true
}

// Transform moves the vertices and their normals
func (t *Triangle) Transform(tr core.Transform) {
	for _, v := range []*TriangleVertex{&t.V0, &t.V1, &t.V2} {
		v.Pos = tr.Point(v.Pos)
		v.N = tr.Normal(v.N)
	}
	t.update()
}

// FaceNormal returns the geometric normal of the triangle
func (t *Triangle) FaceNormal() core.Vec3 {
	return t.normal
}
