package material

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// CookTorrance is a microfacet model with a Beckmann distribution, Schlick
// Fresnel and Cook-Torrance geometric attenuation.
type CookTorrance struct {
	KA  float64 // Ambient coefficient
	KD  float64 // Diffuse coefficient
	KS  float64 // Specular coefficient
	KSG float64 // Weight of recursive reflection; reflective iff > 0
	KTG float64 // Weight of recursive refraction; refractive iff > 0

	// Beckmann RMS slope of the microfacets
	Roughness float64
	// Glossy reflection spread in [0,1]; 0 means a perfect mirror
	Gloss float64

	Ambient      core.Vec3
	Diffuse      core.Vec3
	Specular     core.Vec3
	Transmissive core.Vec3

	IndexOfRefraction float64

	Texture Texture
}

// NewCookTorrance creates an opaque, non-reflective Cook-Torrance material
func NewCookTorrance(diffuse, specular core.Vec3, roughness, ior float64) *CookTorrance {
	return &CookTorrance{
		KA:                0.0,
		KD:                0.5,
		KS:                0.5,
		Roughness:         roughness,
		Ambient:           diffuse,
		Diffuse:           diffuse,
		Specular:          specular,
		IndexOfRefraction: ior,
	}
}

// Sample implements the Material interface with ambient, Lambert diffuse and
// microfacet specular terms
func (c *CookTorrance) Sample(n, i, l core.Vec3, u, v float64) core.Vec3 {
	diffuseColor := c.Diffuse
	if c.Texture != nil {
		diffuseColor = c.Texture.Color(u, v).Vec3()
	}

	ambient := c.Ambient.Multiply(c.KA)

	nDotL := n.Dot(l)
	nDotV := n.Dot(i)
	if nDotL <= 0 {
		return ambient
	}
	diffuse := diffuseColor.Multiply(c.KD * nDotL)
	if nDotV <= 0 {
		return ambient.Add(diffuse)
	}

	h := l.Add(i).Normalize()
	nDotH := n.Dot(h)
	vDotH := i.Dot(h)
	if nDotH <= 0 || vDotH <= 0 {
		return ambient.Add(diffuse)
	}

	d := beckmann(nDotH, c.Roughness)
	f := Fresnel(vDotH, c.IndexOfRefraction)
	g := math.Min(1, math.Min(2*nDotH*nDotV/vDotH, 2*nDotH*nDotL/vDotH))

	// The n.l of the reflectance equation cancels against the denominator
	specular := c.Specular.Multiply(c.KS * d * f * g / (4 * nDotV))

	return ambient.Add(diffuse).Add(specular)
}

// beckmann evaluates the Beckmann microfacet distribution
func beckmann(nDotH, m float64) float64 {
	if m <= 0 {
		return 0
	}
	cos2 := nDotH * nDotH
	tan2 := (1 - cos2) / cos2
	m2 := m * m
	return math.Exp(-tan2/m2) / (math.Pi * m2 * cos2 * cos2)
}

// IsReflective implements the Material interface
func (c *CookTorrance) IsReflective() bool { return c.KSG > 0 }

// IsRefractive implements the Material interface
func (c *CookTorrance) IsRefractive() bool { return c.KTG > 0 }

// IsGlossy implements the Material interface; any positive Gloss blurs reflections
func (c *CookTorrance) IsGlossy() bool { return c.Gloss > 0 }

// Glossiness implements the Material interface, returning the perturbation magnitude
func (c *CookTorrance) Glossiness() float64 { return c.Gloss }

// GlobalSpecular implements the Material interface, tinting the reflected
// color by Specular and scaling it by KSG
func (c *CookTorrance) GlobalSpecular(color core.Vec3) core.Vec3 {
	return color.MultiplyVec(c.Specular).Multiply(c.KSG)
}

// GlobalTransmissive implements the Material interface, scaling the refracted
// color by KTG
func (c *CookTorrance) GlobalTransmissive(color core.Vec3) core.Vec3 {
	return color.Multiply(c.KTG)
}

// Transmission implements the Material interface
func (c *CookTorrance) Transmission() core.Vec3 { return c.Transmissive }

// IOR implements the Material interface
func (c *CookTorrance) IOR() float64 { return c.IndexOfRefraction }
