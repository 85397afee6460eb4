package compositor

import (
	"math"
	"testing"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

func TestMaxValue(t *testing.T) {
	if got := MaxValue[uint8](); got != 255 {
		t.Errorf("Expected 255 for uint8, got %d", got)
	}
	if got := MaxValue[uint16](); got != 65535 {
		t.Errorf("Expected 65535 for uint16, got %d", got)
	}
	if got := MaxValue[float64](); got != 1 {
		t.Errorf("Expected 1 for float64, got %f", got)
	}
	if got := MaxValue[float32](); got != 1 {
		t.Errorf("Expected 1 for float32, got %f", got)
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		expected ColorRGBA[uint8]
	}{
		{"black", core.NewVec3(0, 0, 0), ColorRGBA[uint8]{0, 0, 0, 255}},
		{"white", core.NewVec3(1, 1, 1), ColorRGBA[uint8]{255, 255, 255, 255}},
		{"mid", core.NewVec3(0.5, 0.25, 0.75), ColorRGBA[uint8]{128, 64, 191, 255}},
		{"clamped", core.NewVec3(-1, 2, math.Inf(1)), ColorRGBA[uint8]{0, 255, 255, 255}},
		{"nan", core.NewVec3(math.NaN(), 0, 0), ColorRGBA[uint8]{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize[uint8](tt.input); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestQuantize_FloatKeepsPrecision(t *testing.T) {
	got := Quantize[float64](core.NewVec3(0.123, 0.5, 1.5))
	if got.R != 0.123 || got.G != 0.5 || got.B != 1 || got.A != 1 {
		t.Errorf("Unexpected float color %v", got)
	}
}

func TestConvert(t *testing.T) {
	c := NewRGBA[uint8](255, 0, 51, 255)
	got := Convert[float64](c)
	if got.R != 1 || got.G != 0 || math.Abs(got.B-0.2) > 1e-12 || got.A != 1 {
		t.Errorf("Unexpected conversion %v", got)
	}

	wide := Convert[uint16](c)
	if wide.R != 65535 || wide.B != 13107 {
		t.Errorf("Unexpected uint16 conversion %v", wide)
	}
}

func TestSurface_SetAt(t *testing.T) {
	s := New[uint8](4, 3)
	if len(s.Buffer) != 12 {
		t.Fatalf("Expected 12 pixels, got %d", len(s.Buffer))
	}

	red := NewRGB[uint8](255, 0, 0)
	s.Set(3, 2, red)
	if s.At(3, 2) != red {
		t.Errorf("Expected %v, got %v", red, s.At(3, 2))
	}
	if s.Buffer[2*4+3] != red {
		t.Error("Expected row-major storage")
	}
	if s.At(0, 0) != NewRGB[uint8](0, 0, 0) {
		t.Errorf("Expected opaque black default, got %v", s.At(0, 0))
	}
}

func TestSurface_OutOfBoundsPanics(t *testing.T) {
	s := New[uint8](2, 2)
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for out of bounds access")
		}
	}()
	s.At(2, 0)
}

func TestSurface_PixelsModifiesInPlace(t *testing.T) {
	s := NewFilled(3, 2, NewRGB[uint8](10, 20, 30))

	count := 0
	for i, pixel := range s.Pixels() {
		if i != count {
			t.Fatalf("Expected index %d, got %d", count, i)
		}
		pixel.R = uint8(i)
		count++
	}

	if count != 6 {
		t.Errorf("Expected 6 pixels, got %d", count)
	}
	if s.At(2, 1).R != 5 || s.At(2, 1).G != 20 {
		t.Errorf("Expected in-place update, got %v", s.At(2, 1))
	}
}
