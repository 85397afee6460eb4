package lights

import "github.com/df07/go-octree-raytracer/pkg/core"

// Light is a source of direct illumination
type Light interface {
	// Position returns the point a shadow ray should aim at. Area lights may
	// return a different point on every call.
	Position(sampler core.Sampler) core.Vec3
	Color() core.Vec3
	Center() core.Vec3
	// IsPoint reports whether a single shadow ray fully samples the light
	IsPoint() bool
}
