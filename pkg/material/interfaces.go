package material

import (
	"github.com/df07/go-octree-raytracer/pkg/compositor"
	"github.com/df07/go-octree-raytracer/pkg/core"
)

// Material describes how a surface responds to light
type Material interface {
	// Sample evaluates local illumination at a hit point for one light.
	// n is the shading normal, i points from the surface towards the viewer,
	// l points from the surface towards the light, and (u, v) are the
	// surface coordinates used for texture lookups.
	Sample(n, i, l core.Vec3, u, v float64) core.Vec3

	IsReflective() bool
	IsRefractive() bool
	IsGlossy() bool
	// Glossiness in [0,1] scales the jitter of glossy reflection rays
	Glossiness() float64

	// GlobalSpecular tints a color returned by a reflected ray
	GlobalSpecular(color core.Vec3) core.Vec3
	// GlobalTransmissive tints a color returned by a refracted ray
	GlobalTransmissive(color core.Vec3) core.Vec3
	Transmission() core.Vec3
	IOR() float64
}

// Texture maps surface coordinates to a color
type Texture interface {
	Color(u, v float64) compositor.ColorRGBA[float64]
}
