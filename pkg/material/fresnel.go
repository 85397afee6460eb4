package material

import "math"

// Fresnel returns the Schlick approximation of the reflected fraction of light
// for a ray meeting a surface at angle acos(cosI) with relative index ior.
// The sign of cosI is ignored.
func Fresnel(cosI, ior float64) float64 {
	r0 := (1 - ior) / (1 + ior)
	r0 = r0 * r0
	c := 1 - math.Min(1, math.Abs(cosI))
	return r0 + (1-r0)*c*c*c*c*c
}
