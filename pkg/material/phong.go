package material

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// Phong is the classic ambient + Lambert diffuse + specular highlight model
type Phong struct {
	KA float64 // Ambient coefficient
	KD float64 // Diffuse coefficient
	KS float64 // Specular coefficient
	// Weight of recursive reflection; reflective iff > 0
	KSG float64
	// Weight of recursive refraction; refractive iff > 0
	KTG float64

	Shininess float64

	Ambient      core.Vec3
	Diffuse      core.Vec3
	Specular     core.Vec3
	Transmissive core.Vec3

	IndexOfRefraction float64

	// Optional; replaces Diffuse when set
	Texture Texture
}

// NewPhong creates an opaque, non-reflective Phong material
func NewPhong(diffuse, specular core.Vec3, shininess float64) *Phong {
	return &Phong{
		KA:                0.2,
		KD:                0.6,
		KS:                0.7,
		Shininess:         shininess,
		Ambient:           diffuse,
		Diffuse:           diffuse,
		Specular:          specular,
		IndexOfRefraction: 1,
	}
}

// Sample evaluates ambient, diffuse and Blinn half-vector specular terms
func (p *Phong) Sample(n, i, l core.Vec3, u, v float64) core.Vec3 {
	diffuseColor := p.Diffuse
	if p.Texture != nil {
		diffuseColor = p.Texture.Color(u, v).Vec3()
	}

	ambient := p.Ambient.Multiply(p.KA)

	nDotL := n.Dot(l)
	if nDotL <= 0 {
		return ambient
	}
	diffuse := diffuseColor.Multiply(p.KD * nDotL)

	h := l.Add(i).Normalize()
	specular := p.Specular.Multiply(p.KS * math.Pow(math.Max(0, n.Dot(h)), p.Shininess))

	return ambient.Add(diffuse).Add(specular)
}

// IsReflective implements the Material interface
func (p *Phong) IsReflective() bool { return p.KSG > 0 }

// IsRefractive implements the Material interface
func (p *Phong) IsRefractive() bool { return p.KTG > 0 }

// IsGlossy implements the Material interface; Phong reflections are always sharp
func (p *Phong) IsGlossy() bool { return false }

// Glossiness implements the Material interface
func (p *Phong) Glossiness() float64 { return 0 }

// GlobalSpecular implements the Material interface, tinting the reflected
// color by Specular and scaling it by KSG
func (p *Phong) GlobalSpecular(color core.Vec3) core.Vec3 {
	return color.MultiplyVec(p.Specular).Multiply(p.KSG)
}

// GlobalTransmissive implements the Material interface, scaling the refracted
// color by KTG
func (p *Phong) GlobalTransmissive(color core.Vec3) core.Vec3 {
	return color.Multiply(p.KTG)
}

// Transmission implements the Material interface
func (p *Phong) Transmission() core.Vec3 { return p.Transmissive }

// IOR implements the Material interface
func (p *Phong) IOR() float64 { return p.IndexOfRefraction }
