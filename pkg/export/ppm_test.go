package export

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-octree-raytracer/pkg/compositor"
)

func testSurface() *compositor.Surface[uint8] {
	surface := compositor.New[uint8](2, 2)
	surface.Set(0, 0, compositor.NewRGB[uint8](255, 0, 0))
	surface.Set(1, 0, compositor.NewRGB[uint8](0, 255, 0))
	surface.Set(0, 1, compositor.NewRGB[uint8](0, 0, 255))
	surface.Set(1, 1, compositor.NewRGB[uint8](7, 128, 64))
	return surface
}

func TestWritePPM_Exact(t *testing.T) {
	var first, second bytes.Buffer
	if err := WritePPM(&first, testSurface()); err != nil {
		t.Fatal(err)
	}
	if err := WritePPM(&second, testSurface()); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("Expected byte-identical output")
	}

	expected := "P3 2 2 255\n255 0 0 0 255 0 0 0 255 7 128 64 "
	if got := first.String(); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestWritePPM_ChannelTypes(t *testing.T) {
	tests := []struct {
		name     string
		write    func(*bytes.Buffer) error
		expected string
	}{
		{
			name: "uint16",
			write: func(buf *bytes.Buffer) error {
				surface := compositor.New[uint16](1, 1)
				surface.Set(0, 0, compositor.NewRGB[uint16](65535, 1, 300))
				return WritePPM(buf, surface)
			},
			expected: "P3 1 1 65535\n65535 1 300 ",
		},
		{
			name: "float64",
			write: func(buf *bytes.Buffer) error {
				surface := compositor.New[float64](1, 1)
				surface.Set(0, 0, compositor.NewRGB(0.5, 0.25, 1.0))
				return WritePPM(buf, surface)
			},
			expected: "P3 1 1 1\n0.5 0.25 1 ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.write(&buf); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWritePPM_WriteError(t *testing.T) {
	if err := WritePPM(failingWriter{}, testSurface()); !errors.Is(err, errWrite) {
		t.Errorf("Expected write error, got %v", err)
	}
}

func TestWritePNG_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, testSurface()); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	r, g, b, a := img.At(1, 1).RGBA()
	if r>>8 != 7 || g>>8 != 128 || b>>8 != 64 || a>>8 != 255 {
		t.Errorf("Unexpected pixel (%d, %d, %d, %d)", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()

	ppmPath := filepath.Join(dir, "frames", "frame000001.ppm")
	if err := SaveFile(ppmPath, testSurface()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(ppmPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "P3 2 2 255\n") {
		t.Errorf("Expected a PPM file, got %q", data)
	}

	pngPath := filepath.Join(dir, "frame.PNG")
	if err := SaveFile(pngPath, testSurface()); err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("Expected a PNG file")
	}
}
