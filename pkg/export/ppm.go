// Package export writes rendered surfaces to image files.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/df07/go-octree-raytracer/pkg/compositor"
)

// WritePPM writes surface as an ascii PPM: a "P3 <w> <h> <max>\n" header
// followed by "r g b " for every pixel in row-major order. max is the
// largest value of the channel type.
func WritePPM[T compositor.Channel](w io.Writer, surface *compositor.Surface[T]) error {
	out := bufio.NewWriter(w)

	maxValue := compositor.MaxValue[T]()
	if _, err := fmt.Fprintf(out, "P3 %d %d %s\n", surface.Width, surface.Height, formatChannel(maxValue)); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for _, pixel := range surface.Pixels() {
		for _, c := range [3]T{pixel.R, pixel.G, pixel.B} {
			if _, err := out.WriteString(formatChannel(c)); err != nil {
				return fmt.Errorf("failed to write PPM data: %w", err)
			}
			if err := out.WriteByte(' '); err != nil {
				return fmt.Errorf("failed to write PPM data: %w", err)
			}
		}
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM data: %w", err)
	}
	return nil
}

// formatChannel renders one channel value as a decimal token
func formatChannel[T compositor.Channel](v T) string {
	switch c := any(v).(type) {
	case uint8:
		return strconv.FormatUint(uint64(c), 10)
	case uint16:
		return strconv.FormatUint(uint64(c), 10)
	case float32:
		return strconv.FormatFloat(float64(c), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(c, 'g', -1, 64)
	default:
		panic(fmt.Sprintf("export: unsupported channel type %T", v))
	}
}
