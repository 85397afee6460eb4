package loaders

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-octree-raytracer/pkg/compositor"
)

// LoadImage loads a PNG, JPEG or PPM image into an 8-bit surface
func LoadImage(filename string) (*compositor.Surface[uint8], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	var surface *compositor.Surface[uint8]
	if strings.EqualFold(filepath.Ext(filename), ".ppm") {
		surface, err = DecodePPM(file)
	} else {
		surface, err = DecodeImage(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("loaded %s: %dx%d", filename, surface.Width, surface.Height)
	return surface, nil
}

// DecodeImage decodes any format registered with the image package
func DecodeImage(in io.Reader) (*compositor.Surface[uint8], error) {
	img, format, err := image.Decode(in)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	logger.Debugf("decoded %s image", format)

	bounds := img.Bounds()
	surface := compositor.New[uint8](bounds.Dx(), bounds.Dy())
	for y := 0; y < surface.Height; y++ {
		for x := 0; x < surface.Width; x++ {
			// Surfaces hold straight alpha; RGBA() would premultiply
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			surface.Set(x, y, compositor.NewRGBA(c.R, c.G, c.B, c.A))
		}
	}
	return surface, nil
}

// Largest PPM accepted, in pixels
const maxPPMPixels = 1 << 26

// DecodePPM reads an ascii (P3) or binary (P6) PPM image.
// Samples are rescaled from the file's max value to 0-255.
func DecodePPM(in io.Reader) (*compositor.Surface[uint8], error) {
	reader := bufio.NewReader(in)

	magic, err := ppmToken(reader)
	if err != nil {
		return nil, err
	}
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("%w: PPM magic %q", ErrUnsupportedFormat, magic)
	}

	var header [3]int
	for i := range header {
		token, err := ppmToken(reader)
		if err != nil {
			return nil, err
		}
		header[i], err = strconv.Atoi(token)
		if err != nil || header[i] <= 0 {
			return nil, fmt.Errorf("%w: invalid PPM header value %q", ErrMalformed, token)
		}
	}
	width, height, maxValue := header[0], header[1], header[2]
	if maxValue > 65535 {
		return nil, fmt.Errorf("%w: PPM max value %d", ErrMalformed, maxValue)
	}
	if width > maxPPMPixels/height {
		return nil, fmt.Errorf("%w: PPM size %dx%d", ErrMalformed, width, height)
	}

	next := func() (int, error) {
		token, err := ppmToken(reader)
		if err != nil {
			return 0, err
		}
		value, err := strconv.Atoi(token)
		if err != nil || value < 0 || value > maxValue {
			return 0, fmt.Errorf("%w: invalid PPM sample %q", ErrMalformed, token)
		}
		return value, nil
	}
	if magic == "P6" {
		wide := maxValue > 255
		next = func() (int, error) {
			hi, err := reader.ReadByte()
			if err != nil {
				return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			if !wide {
				return int(hi), nil
			}
			lo, err := reader.ReadByte()
			if err != nil {
				return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			return int(hi)<<8 | int(lo), nil
		}
	}

	surface := compositor.New[uint8](width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var rgb [3]uint8
			for c := range rgb {
				value, err := next()
				if err != nil {
					return nil, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
				}
				rgb[c] = uint8((value*255 + maxValue/2) / maxValue)
			}
			surface.Set(x, y, compositor.NewRGB(rgb[0], rgb[1], rgb[2]))
		}
	}
	return surface, nil
}

// ppmToken returns the next whitespace separated header token, skipping
// comments. For P6 files it consumes exactly one whitespace byte after the
// token, which is where binary data begins.
func ppmToken(reader *bufio.Reader) (string, error) {
	var token []byte
	for {
		b, err := reader.ReadByte()
		if err != nil {
			if len(token) > 0 && err == io.EOF {
				return string(token), nil
			}
			return "", fmt.Errorf("%w: unexpected end of PPM data", ErrMalformed)
		}
		switch {
		case b == '#' && len(token) == 0:
			if _, err := reader.ReadString('\n'); err != nil {
				return "", fmt.Errorf("%w: unterminated PPM comment", ErrMalformed)
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(token) > 0 {
				return string(token), nil
			}
		default:
			token = append(token, b)
		}
	}
}
