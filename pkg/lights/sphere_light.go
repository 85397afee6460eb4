package lights

import "github.com/df07/go-octree-raytracer/pkg/core"

// SphereLight is an area light with a spherical extent
type SphereLight struct {
	Origin    core.Vec3
	Intensity core.Vec3
	Radius    float64
	// Jitter spreads shadow ray targets over the light's volume, producing
	// soft shadows. When false every target is the center.
	Jitter bool
}

// NewSphereLight creates a spherical light with jitter disabled
func NewSphereLight(center, color core.Vec3, radius float64) *SphereLight {
	return &SphereLight{Origin: center, Intensity: color, Radius: radius}
}

// Position offsets the center by radius * (rand - 0.5) on each axis when
// jitter is enabled
func (s *SphereLight) Position(sampler core.Sampler) core.Vec3 {
	if !s.Jitter {
		return s.Origin
	}
	return s.Origin.Add(core.SampleInCube(sampler.Get3D()).Multiply(s.Radius))
}

// Color implements the Light interface
func (s *SphereLight) Color() core.Vec3 { return s.Intensity }

// Center implements the Light interface
func (s *SphereLight) Center() core.Vec3 { return s.Origin }

// IsPoint implements the Light interface. Sphere lights take ShadowSamples
// shadow rays even with jitter off.
func (s *SphereLight) IsPoint() bool { return false }
