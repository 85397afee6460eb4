// Package renderer implements the recursive ray tracing integrator and the
// worker pool that spreads a frame over all CPUs.
package renderer

import (
	"context"
	"sync"
	"time"

	"github.com/df07/go-octree-raytracer/pkg/compositor"
	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/log"
	"github.com/df07/go-octree-raytracer/pkg/material"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

var logger = log.New("renderer")

// Secondary rays start this far off the surface to avoid self-intersection
const surfaceOffset = 1e-4

// Renderer renders frames through a persistent worker pool. Frames are
// rendered one at a time; concurrent Render calls are serialized.
type Renderer struct {
	options Options

	mu    sync.Mutex
	pool  *workerPool
	stats FrameStats
}

// New creates a renderer. Workers are started by the first Render call.
func New(options Options) *Renderer {
	return &Renderer{options: options.Normalize()}
}

// Options returns the normalized options in use
func (r *Renderer) Options() Options {
	return r.options
}

// Stats returns statistics for the last rendered frame
func (r *Renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Close shuts down the worker pool
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pool != nil {
		r.pool.stop()
		r.pool = nil
	}
}

// Render traces every pixel of the camera's image. Cancelling ctx stops the
// render between tasks and returns ErrInterrupted.
func (r *Renderer) Render(ctx context.Context, s *scene.Scene, camera *scene.Camera) (*compositor.Surface[uint8], error) {
	if s == nil {
		return nil, ErrSceneNotDefined
	}
	if camera == nil {
		return nil, ErrCameraNotDefined
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pool == nil {
		r.pool = newWorkerPool(r.options.Workers)
		r.pool.start()
	}

	start := time.Now()
	f := &frame{
		ctx:     ctx,
		scene:   s,
		camera:  camera,
		surface: compositor.New[uint8](camera.Width, camera.Height),
		options: r.options,
	}

	rows := r.options.RowsPerTask
	numTasks := (camera.Height + rows - 1) / rows
	logger.Debugf("rendering %dx%d frame: %d tasks on %d workers", camera.Width, camera.Height, numTasks, r.pool.size())

	go func() {
		for id := 0; id < numTasks; id++ {
			r.pool.submit(rowTask{
				frame:  f,
				taskID: id,
				y0:     id * rows,
				y1:     min(camera.Height, (id+1)*rows),
			})
		}
	}()

	stats := FrameStats{Workers: make([]WorkerStat, r.pool.size())}
	for i := range stats.Workers {
		stats.Workers[i].ID = i
	}

	var err error
	for i := 0; i < numTasks; i++ {
		result := r.pool.result()
		if result.err != nil {
			err = result.err
			continue
		}
		stats.Workers[result.workerID].add(result, camera.Height)
		stats.Rays += result.rays
	}
	stats.RenderTime = time.Since(start)
	r.stats = stats

	if err != nil {
		return nil, err
	}

	logger.Infof("rendered frame in %d ms (%d rays)", stats.RenderTime.Milliseconds(), stats.Rays)
	return f.surface, nil
}

// renderRows renders rows [y0, y1) into the frame's surface and returns the
// number of rays traced
func renderRows(f *frame, sampler core.Sampler, y0, y1 int) uint64 {
	t := &tracer{scene: f.scene, options: f.options, sampler: sampler}
	samples := f.options.PixelSamples
	scale := 1.0 / float64(samples)

	for y := y0; y < y1; y++ {
		for x := 0; x < f.camera.Width; x++ {
			var color core.Vec3
			for i := 0; i < samples; i++ {
				// A single sample goes through the pixel center
				dx, dy := 0.5, 0.5
				if samples > 1 {
					jitter := sampler.Get2D()
					dx, dy = jitter.X, jitter.Y
				}
				ray := f.camera.Ray(float64(x)+dx, float64(y)+dy)
				color = color.Add(t.trace(ray, 0))
			}
			f.surface.Set(x, y, compositor.Quantize[uint8](color.Multiply(scale)))
		}
	}

	return t.rays
}

// Trace returns the color seen along ray. depth counts the reflections and
// refractions already followed; recursion stops at the depth limits in options.
func Trace(s *scene.Scene, ray core.Ray, sampler core.Sampler, options Options, depth int) core.Vec3 {
	t := &tracer{scene: s, options: options.Normalize(), sampler: sampler}
	return t.trace(ray, depth)
}

// tracer carries the per-task state of the recursive integrator
type tracer struct {
	scene   *scene.Scene
	options Options
	sampler core.Sampler
	rays    uint64
}

func (t *tracer) trace(ray core.Ray, depth int) core.Vec3 {
	t.rays++
	hit, ok := t.scene.NearestHit(ray)
	if !ok {
		return t.scene.Background
	}

	mat := hit.Material
	n := hit.FacingNormal(ray)
	view := ray.Direction.Negate()

	color := t.directLight(hit.Position, n, view, mat, hit.U, hit.V)

	// Fresnel splits energy between reflection and refraction on dielectrics
	kr := 1.0
	if mat.IsRefractive() {
		kr = material.Fresnel(ray.Direction.Dot(n), mat.IOR())
	}

	if mat.IsReflective() && depth < t.options.ReflectDepth {
		reflected := t.reflect(ray, hit.Position, n, mat, depth)
		color = color.Add(mat.GlobalSpecular(reflected).Multiply(kr))
	}

	if mat.IsRefractive() && depth < t.options.RefractDepth {
		refracted := t.refract(ray, hit.Position, hit.N, n, mat, depth)
		transmitted := mat.GlobalTransmissive(refracted).MultiplyVec(mat.Transmission())
		color = color.Add(transmitted.Multiply(1 - kr))
	}

	return color
}

// directLight sums each light's local shading weighted by its visibility
func (t *tracer) directLight(p, n, view core.Vec3, mat material.Material, u, v float64) core.Vec3 {
	var color core.Vec3
	origin := p.Add(n.Multiply(surfaceOffset))

	for _, light := range t.scene.Lights {
		count := 1
		if !light.IsPoint() {
			count = max(1, t.options.ShadowSamples)
		}

		var sum core.Vec3
		for i := 0; i < count; i++ {
			toLight := light.Position(t.sampler).Subtract(p)
			distance := toLight.Length()
			if distance == 0 {
				continue
			}
			l := toLight.Multiply(1 / distance)

			if !t.visible(core.NewRay(origin, l), distance) {
				continue
			}
			sum = sum.Add(mat.Sample(n, view, l, u, v).MultiplyVec(light.Color()))
		}

		color = color.Add(sum.Multiply(1 / float64(count)))
	}

	return color
}

// visible reports whether nothing blocks the shadow ray before distance
func (t *tracer) visible(shadowRay core.Ray, distance float64) bool {
	t.rays++
	hit, ok := t.scene.NearestHit(shadowRay)
	return !ok || hit.T >= distance
}

// reflect traces the mirror direction, averaging perturbed rays for glossy materials
func (t *tracer) reflect(ray core.Ray, p, n core.Vec3, mat material.Material, depth int) core.Vec3 {
	direction := ray.Direction.Reflect(n).Normalize()
	reflected := core.NewRay(p.Add(n.Multiply(surfaceOffset)), direction)

	if !mat.IsGlossy() {
		return t.trace(reflected, depth+1)
	}

	samples := max(1, t.options.GlossSamples)
	var sum core.Vec3
	for i := 0; i < samples; i++ {
		sum = sum.Add(t.trace(reflected.Perturb(t.sampler, mat.Glossiness()), depth+1))
	}
	return sum.Multiply(1 / float64(samples))
}

// refract traces the transmitted ray; total internal reflection falls back to
// the mirror direction
func (t *tracer) refract(ray core.Ray, p, outward, facing core.Vec3, mat material.Material, depth int) core.Vec3 {
	direction, ok := ray.Direction.Refract(outward, mat.IOR())
	if !ok {
		mirror := ray.Direction.Reflect(facing).Normalize()
		return t.trace(core.NewRay(p.Add(facing.Multiply(surfaceOffset)), mirror), depth+1)
	}

	origin := p.Subtract(facing.Multiply(surfaceOffset))
	return t.trace(core.NewRay(origin, direction.Normalize()), depth+1)
}
