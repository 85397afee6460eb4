package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-octree-raytracer/pkg/compositor"
	"github.com/df07/go-octree-raytracer/pkg/log"
)

var logger = log.New("export")

// ToImage converts surface to an 8-bit non-premultiplied image
func ToImage[T compositor.Channel](surface *compositor.Surface[T]) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, surface.Width, surface.Height))
	for y := 0; y < surface.Height; y++ {
		for x := 0; x < surface.Width; x++ {
			c := compositor.Convert[uint8](surface.At(x, y))
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return img
}

// WritePNG encodes surface as a PNG
func WritePNG[T compositor.Channel](w io.Writer, surface *compositor.Surface[T]) error {
	if err := png.Encode(w, ToImage(surface)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SaveFile writes surface to filename, choosing PNG for ".png" and PPM otherwise
func SaveFile[T compositor.Channel](filename string, surface *compositor.Surface[T]) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(filename), ".png") {
		err = WritePNG(f, surface)
	} else {
		err = WritePPM(f, surface)
	}
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close output file: %w", closeErr)
	}
	if err != nil {
		return err
	}

	logger.Infof("wrote %s (%dx%d)", filename, surface.Width, surface.Height)
	return nil
}
