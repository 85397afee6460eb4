package material

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/compositor"
	"github.com/df07/go-octree-raytracer/pkg/core"
)

// CheckerTexture alternates two colors in a grid over (u, v)
type CheckerTexture struct {
	Scale float64 // Number of checks per unit of u and v
	Even  core.Vec3
	Odd   core.Vec3
}

// NewCheckerTexture creates a checker pattern with scale checks per unit
func NewCheckerTexture(scale float64, even, odd core.Vec3) *CheckerTexture {
	return &CheckerTexture{Scale: scale, Even: even, Odd: odd}
}

// Color implements the Texture interface, alternating Even and Odd per cell
func (c *CheckerTexture) Color(u, v float64) compositor.ColorRGBA[float64] {
	cell := int(math.Floor(u*c.Scale)) + int(math.Floor(v*c.Scale))
	color := c.Even
	if cell%2 != 0 {
		color = c.Odd
	}
	return compositor.NewRGB(color.X, color.Y, color.Z)
}

// UVTexture visualizes surface coordinates: u maps to red, v to green
type UVTexture struct{}

// Color implements the Texture interface
func (UVTexture) Color(u, v float64) compositor.ColorRGBA[float64] {
	return compositor.NewRGB(wrap(u), wrap(v), 0)
}

// ImageTexture samples an imported image with nearest-neighbour filtering
type ImageTexture struct {
	Image *compositor.Surface[uint8]
}

// NewImageTexture creates a texture backed by image
func NewImageTexture(image *compositor.Surface[uint8]) *ImageTexture {
	return &ImageTexture{Image: image}
}

// Color wraps (u, v) into [0,1). v=0 is the bottom row of the image.
func (t *ImageTexture) Color(u, v float64) compositor.ColorRGBA[float64] {
	width, height := t.Image.Width, t.Image.Height
	if width == 0 || height == 0 {
		return compositor.NewRGB[float64](0, 0, 0)
	}

	x := int(wrap(u) * float64(width))
	y := int((1.0 - wrap(v)) * float64(height))

	// Clamp to image bounds
	x = min(max(x, 0), width-1)
	y = min(max(y, 0), height-1)

	return compositor.Convert[float64](t.Image.At(x, y))
}

// wrap returns the fractional part of f in [0,1)
func wrap(f float64) float64 {
	f -= math.Floor(f)
	if f >= 1 {
		f = 0
	}
	return f
}
