package material

import "github.com/df07/go-octree-raytracer/pkg/core"

// Flat returns a constant color and never reflects or refracts
type Flat struct {
	Color core.Vec3
}

// NewFlat creates a new flat material
func NewFlat(color core.Vec3) *Flat {
	return &Flat{Color: color}
}

// Sample ignores geometry and lighting entirely
func (f *Flat) Sample(n, i, l core.Vec3, u, v float64) core.Vec3 {
	return f.Color
}

// IsReflective implements the Material interface
func (f *Flat) IsReflective() bool { return false }

// IsRefractive implements the Material interface
func (f *Flat) IsRefractive() bool { return false }

// IsGlossy implements the Material interface
func (f *Flat) IsGlossy() bool { return false }

// Glossiness implements the Material interface
func (f *Flat) Glossiness() float64 { return 0 }

// GlobalSpecular implements the Material interface; flat surfaces discard reflections
func (f *Flat) GlobalSpecular(color core.Vec3) core.Vec3 { return core.Vec3{} }

// GlobalTransmissive implements the Material interface; flat surfaces are opaque
func (f *Flat) GlobalTransmissive(color core.Vec3) core.Vec3 { return core.Vec3{} }

// Transmission implements the Material interface
func (f *Flat) Transmission() core.Vec3 { return core.Vec3{} }

// IOR implements the Material interface
func (f *Flat) IOR() float64 { return 1 }
