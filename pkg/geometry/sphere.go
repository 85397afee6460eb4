package geometry

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Intersect solves the ray-sphere quadratic, preferring the nearer root
func (s *Sphere) Intersect(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	position := ray.At(root)
	normal := position.Subtract(s.Center).Multiply(1.0 / s.Radius)
	u, v := sphereUV(normal)

	return &Intersection{
		N:        normal,
		T:        root,
		U:        u,
		V:        v,
		Position: position,
		Material: s.Material,
	}, true
}

// sphereUV maps a unit normal to longitude/latitude coordinates with v=1 at the top
func sphereUV(n core.Vec3) (float64, float64) {
	u := 0.5 + math.Atan2(n.Z, n.X)/(2*math.Pi)
	v := 0.5 + math.Asin(math.Max(-1, math.Min(1, n.Y)))/math.Pi
	return u, v
}

// PartialBoundingBox returns the cube enclosing the sphere
func (s *Sphere) PartialBoundingBox() (core.AABB, bool) {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius)), true
}

// Transform moves the center and scales the radius. Non-uniform scales are
// not representable; the x axis scale is used.
func (s *Sphere) Transform(t core.Transform) {
	s.Center = t.Point(s.Center)
	s.Radius *= t.Vector(core.NewVec3(1, 0, 0)).Length()
}
