// Package compositor owns the output pixel buffer and its channel representation.
package compositor

import (
	"iter"
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// Channel is the set of supported per-channel storage types
type Channel interface {
	uint8 | uint16 | float32 | float64
}

// ColorRGBA is a single pixel
type ColorRGBA[T Channel] struct {
	R, G, B, A T
}

// NewRGB returns an opaque color
func NewRGB[T Channel](r, g, b T) ColorRGBA[T] {
	return ColorRGBA[T]{R: r, G: g, B: b, A: MaxValue[T]()}
}

// NewRGBA returns a color with explicit alpha
func NewRGBA[T Channel](r, g, b, a T) ColorRGBA[T] {
	return ColorRGBA[T]{R: r, G: g, B: b, A: a}
}

// MaxValue returns the largest representable channel value: 255 for uint8,
// 65535 for uint16 and 1 for floating point channels.
func MaxValue[T Channel]() T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return any(uint8(math.MaxUint8)).(T)
	case uint16:
		return any(uint16(math.MaxUint16)).(T)
	case float32:
		return any(float32(1)).(T)
	default:
		return any(float64(1)).(T)
	}
}

func isFloat[T Channel]() bool {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return true
	}
	return false
}

// fromUnit maps v in [0,1] onto the channel range, clamping out of range input
func fromUnit[T Channel](v float64) T {
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(0, math.Min(1, v))
	scaled := v * float64(MaxValue[T]())
	if isFloat[T]() {
		return T(scaled)
	}
	return T(math.Round(scaled))
}

// Quantize converts a linear floating point color into an opaque pixel
func Quantize[T Channel](c core.Vec3) ColorRGBA[T] {
	return NewRGB(fromUnit[T](c.X), fromUnit[T](c.Y), fromUnit[T](c.Z))
}

// Vec3 returns the color channels scaled back into [0,1]
func (c ColorRGBA[T]) Vec3() core.Vec3 {
	scale := float64(MaxValue[T]())
	return core.NewVec3(float64(c.R)/scale, float64(c.G)/scale, float64(c.B)/scale)
}

// Alpha returns the alpha channel scaled into [0,1]
func (c ColorRGBA[T]) Alpha() float64 {
	return float64(c.A) / float64(MaxValue[T]())
}

// Convert rescales c into another channel representation
func Convert[To, From Channel](c ColorRGBA[From]) ColorRGBA[To] {
	v := c.Vec3()
	return NewRGBA(fromUnit[To](v.X), fromUnit[To](v.Y), fromUnit[To](v.Z), fromUnit[To](c.Alpha()))
}

// Surface is a width x height row-major pixel buffer
type Surface[T Channel] struct {
	Width  int
	Height int
	Buffer []ColorRGBA[T]
}

// New allocates a surface filled with opaque black
func New[T Channel](width, height int) *Surface[T] {
	return NewFilled(width, height, NewRGB[T](0, 0, 0))
}

// NewFilled allocates a surface with every pixel set to fill
func NewFilled[T Channel](width, height int, fill ColorRGBA[T]) *Surface[T] {
	buffer := make([]ColorRGBA[T], width*height)
	for i := range buffer {
		buffer[i] = fill
	}
	return &Surface[T]{Width: width, Height: height, Buffer: buffer}
}

// InBounds reports whether (x, y) addresses a pixel of s
func (s *Surface[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.Width && y < s.Height
}

// At returns the pixel at (x, y). Panics when out of bounds.
func (s *Surface[T]) At(x, y int) ColorRGBA[T] {
	return s.Buffer[s.index(x, y)]
}

// Set stores c at (x, y). Panics when out of bounds.
func (s *Surface[T]) Set(x, y int, c ColorRGBA[T]) {
	s.Buffer[s.index(x, y)] = c
}

func (s *Surface[T]) index(x, y int) int {
	if !s.InBounds(x, y) {
		panic("compositor: pixel out of bounds")
	}
	return y*s.Width + x
}

// Pixels iterates every pixel in row-major order with its buffer index.
// The yielded pointer may be used to modify the pixel in place.
func (s *Surface[T]) Pixels() iter.Seq2[int, *ColorRGBA[T]] {
	return func(yield func(int, *ColorRGBA[T]) bool) {
		for i := range s.Buffer {
			if !yield(i, &s.Buffer[i]) {
				return
			}
		}
	}
}
