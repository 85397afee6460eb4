package scene

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/lights"
	"github.com/df07/go-octree-raytracer/pkg/octree"
)

// Scene contains all the elements needed for rendering. It is immutable once
// built and shared read-only by every render worker.
type Scene struct {
	Lights     []lights.Light
	Octree     *octree.Octree[geometry.Prim] // Acceleration structure for ray-object intersection
	Background core.Vec3                     // Color returned by rays that escape the scene

	primitiveCount int
}

// New indexes prims in an octree and returns the finished scene
func New(prims []geometry.Prim, sceneLights []lights.Light, background core.Vec3) *Scene {
	s := &Scene{
		Lights:     sceneLights,
		Octree:     octree.New(prims),
		Background: background,
	}
	for _, prim := range prims {
		s.primitiveCount += countPrimitives(prim)
	}
	return s
}

// NearestHit returns the closest intersection in front of the ray origin
func (s *Scene) NearestHit(ray core.Ray) (*geometry.Intersection, bool) {
	return geometry.NearestHit(s.Octree.Intersect(ray), ray, core.RayEpsilon, math.Inf(1))
}

// PrimitiveCount returns the total number of primitive objects in the scene,
// counting each mesh triangle separately
func (s *Scene) PrimitiveCount() int {
	return s.primitiveCount
}

// countPrimitives counts primitives in a single prim, handling meshes
func countPrimitives(prim geometry.Prim) int {
	switch obj := prim.(type) {
	case *geometry.Mesh:
		return obj.Len()
	default:
		return 1
	}
}
