package lights

import "github.com/df07/go-octree-raytracer/pkg/core"

// PointLight emits from a single point
type PointLight struct {
	Origin    core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3) *PointLight {
	return &PointLight{Origin: position, Intensity: color}
}

// Position implements the Light interface; a point light has one target
func (p *PointLight) Position(sampler core.Sampler) core.Vec3 { return p.Origin }

// Color implements the Light interface
func (p *PointLight) Color() core.Vec3 { return p.Intensity }

// Center implements the Light interface
func (p *PointLight) Center() core.Vec3 { return p.Origin }

// IsPoint implements the Light interface; shadows need a single sample
func (p *PointLight) IsPoint() bool { return true }
