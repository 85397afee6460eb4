package geometry

import (
	"iter"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// NearestHit tests every candidate and keeps the intersection with the
// smallest t in (tMin, tMax). Candidates may include primitives the ray
// misses; their order does not affect the result.
func NearestHit[P Prim](candidates iter.Seq[P], ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	var nearest *Intersection
	closest := tMax

	for prim := range candidates {
		hit, ok := prim.Intersect(ray, tMin, closest)
		if !ok || hit.T <= tMin || hit.T >= closest {
			continue
		}
		nearest = hit
		closest = hit.T
	}

	return nearest, nearest != nil
}
