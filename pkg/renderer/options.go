package renderer

import "runtime"

// Options control the integrator's recursion limits, sample counts and
// parallelism
type Options struct {
	// Max recursion per ray family
	ReflectDepth int
	RefractDepth int

	// Number of samples
	ShadowSamples int
	GlossSamples  int
	PixelSamples  int

	// Worker count; 0 uses one worker per CPU
	Workers int

	// Base seed; task n renders with Seed+n
	Seed int64

	// Image rows per worker task
	RowsPerTask int
}

// Defaults match the classic configuration of this renderer
const (
	DefaultReflectDepth  = 3
	DefaultRefractDepth  = 6
	DefaultShadowSamples = 16
	DefaultGlossSamples  = 8
	DefaultPixelSamples  = 2
	DefaultRowsPerTask   = 4
)

// DefaultOptions returns the default render configuration
func DefaultOptions() Options {
	return Options{
		ReflectDepth:  DefaultReflectDepth,
		RefractDepth:  DefaultRefractDepth,
		ShadowSamples: DefaultShadowSamples,
		GlossSamples:  DefaultGlossSamples,
		PixelSamples:  DefaultPixelSamples,
		RowsPerTask:   DefaultRowsPerTask,
	}
}

// Normalize returns a copy of the options with out of range values replaced.
// Sample counts below 1 become 1, negative depths become 0.
func (o Options) Normalize() Options {
	samples := []struct {
		name  string
		value *int
	}{
		{"shadow samples", &o.ShadowSamples},
		{"gloss samples", &o.GlossSamples},
		{"pixel samples", &o.PixelSamples},
	}
	for _, s := range samples {
		if *s.value < 1 {
			logger.Noticef("%s set to %d; using 1", s.name, *s.value)
			*s.value = 1
		}
	}

	o.ReflectDepth = max(0, o.ReflectDepth)
	o.RefractDepth = max(0, o.RefractDepth)

	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.RowsPerTask <= 0 {
		o.RowsPerTask = DefaultRowsPerTask
	}
	return o
}
