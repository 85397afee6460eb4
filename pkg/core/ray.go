package core

// RayEpsilon is the t_min used for nearest hit queries. It keeps secondary rays
// from intersecting the surface they start on.
const RayEpsilon = 1e-6

// Ray represents a ray with an origin and direction.
//
// InvDirection holds the reciprocal of each direction component and is
// +/-Inf when that component is zero; the slab test relies on this.
// Signs[i] is true when InvDirection[i] is positive.
type Ray struct {
	Origin       Vec3
	Direction    Vec3
	InvDirection Vec3
	Signs        [3]bool
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	inv := Vec3{1.0 / direction.X, 1.0 / direction.Y, 1.0 / direction.Z}
	return Ray{
		Origin:       origin,
		Direction:    direction,
		InvDirection: inv,
		Signs:        [3]bool{inv.X > 0, inv.Y > 0, inv.Z > 0},
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Perturb returns a ray from the same origin whose direction is jittered by a
// random vector of length at most magnitude. The offset is flipped into the
// hemisphere of the original direction, so the result never points backwards.
func (r Ray) Perturb(sampler Sampler, magnitude float64) Ray {
	dir := r.Direction.Normalize()
	offset := RandomVec3(sampler).Multiply(magnitude)
	if offset.Dot(dir) < 0 {
		offset = offset.Negate()
	}

	return NewRay(r.Origin, dir.Add(offset).Normalize())
}
