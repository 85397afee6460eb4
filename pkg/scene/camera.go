package scene

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// CameraKeyframe pins the camera's pose at a point in time
type CameraKeyframe struct {
	Time     float64   `json:"time"`
	Position core.Vec3 `json:"position"`
	LookAt   core.Vec3 `json:"look_at"`
	Up       core.Vec3 `json:"up"`
}

// Camera is a pinhole camera generating primary rays through the image plane
type Camera struct {
	Position core.Vec3
	LookAt   core.Vec3
	Up       core.Vec3
	FOV      float64 // Vertical field of view in degrees
	Width    int
	Height   int

	// Sorted by time; only used for animation
	Keyframes []CameraKeyframe

	// Orthonormal basis and image plane half extents at unit distance
	forward, right, trueUp core.Vec3
	halfWidth, halfHeight  float64
}

// NewCamera creates a camera at position looking at lookAt
func NewCamera(position, lookAt, up core.Vec3, fovDeg float64, width, height int) *Camera {
	c := &Camera{
		Position: position,
		LookAt:   lookAt,
		Up:       up,
		FOV:      fovDeg,
		Width:    width,
		Height:   height,
	}

	c.forward = lookAt.Subtract(position).Normalize()
	c.right = c.forward.Cross(up).Normalize()
	c.trueUp = c.right.Cross(c.forward)

	c.halfHeight = math.Tan(fovDeg * math.Pi / 360)
	c.halfWidth = c.halfHeight * float64(width) / float64(height)

	return c
}

// Ray returns the primary ray through image coordinates (x, y), measured in
// pixels from the top-left corner. Pixel centers sit at half-integer coordinates.
func (c *Camera) Ray(x, y float64) core.Ray {
	u := (2*x/float64(c.Width) - 1) * c.halfWidth
	v := (1 - 2*y/float64(c.Height)) * c.halfHeight

	direction := c.forward.
		Add(c.right.Multiply(u)).
		Add(c.trueUp.Multiply(v))

	return core.NewRay(c.Position, direction.Normalize())
}

// SetKeyframes stores a time-sorted copy of keyframes
func (c *Camera) SetKeyframes(keyframes []CameraKeyframe) {
	c.Keyframes = slices.Clone(keyframes)
	slices.SortStableFunc(c.Keyframes, func(a, b CameraKeyframe) int {
		return cmp.Compare(a.Time, b.Time)
	})
}

// At returns a new camera posed by linearly interpolating the two keyframes
// surrounding time. Times outside the keyframe range clamp to the ends.
func (c *Camera) At(time float64) (*Camera, error) {
	if len(c.Keyframes) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughKeyframes, len(c.Keyframes))
	}

	first, second := neighbourKeyframes(c.Keyframes, time)
	alpha := 0.0
	if span := second.Time - first.Time; span > 0 {
		alpha = math.Max(0, math.Min(1, (time-first.Time)/span))
	}

	lerped := NewCamera(
		first.Position.Lerp(second.Position, alpha),
		first.LookAt.Lerp(second.LookAt, alpha),
		first.Up.Lerp(second.Up, alpha),
		c.FOV,
		c.Width,
		c.Height,
	)
	lerped.Keyframes = c.Keyframes
	return lerped, nil
}

// neighbourKeyframes returns the sorted pair bracketing time
func neighbourKeyframes(keyframes []CameraKeyframe, time float64) (CameraKeyframe, CameraKeyframe) {
	for i := 0; i+1 < len(keyframes); i++ {
		if time < keyframes[i+1].Time {
			return keyframes[i], keyframes[i+1]
		}
	}
	last := len(keyframes) - 1
	return keyframes[last-1], keyframes[last]
}
