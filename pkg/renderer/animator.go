package renderer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-octree-raytracer/pkg/compositor"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

// Animator renders a camera fly-through along its keyframes. Frames are
// rendered in order through the renderer's worker pool.
type Animator struct {
	FPS         float64
	AnimateFrom float64 // Start time in seconds
	AnimateTo   float64 // End time; the frame count is rounded down

	// Number of the first frame, used for file names
	StartingFrameNumber int

	Renderer *Renderer
}

// FrameHandler receives every rendered frame in order. Returning an error
// stops the animation.
type FrameHandler func(frameNumber int, surface *compositor.Surface[uint8]) error

// FrameCount returns the number of frames in the animation range
func (a *Animator) FrameCount() int {
	return int(math.Floor(a.FPS * (a.AnimateTo - a.AnimateFrom)))
}

// FrameTime returns the camera time of the n-th frame (0-based)
func (a *Animator) FrameTime(n int) float64 {
	return a.AnimateFrom + float64(n)/a.FPS
}

// Animate renders every frame and hands it to handle
func (a *Animator) Animate(ctx context.Context, s *scene.Scene, camera *scene.Camera, handle FrameHandler) error {
	total := a.FrameCount()
	if total <= 0 {
		return fmt.Errorf("%w: fps %v, from %v to %v", ErrNoFrames, a.FPS, a.AnimateFrom, a.AnimateTo)
	}

	start := time.Now()
	for n := 0; n < total; n++ {
		posed, err := camera.At(a.FrameTime(n))
		if err != nil {
			return err
		}

		surface, err := a.Renderer.Render(ctx, s, posed)
		if err != nil {
			return fmt.Errorf("frame %d: %w", n, err)
		}

		if err := handle(a.StartingFrameNumber+n, surface); err != nil {
			return fmt.Errorf("frame %d: %w", n, err)
		}

		elapsed := time.Since(start)
		remaining := elapsed / time.Duration(n+1) * time.Duration(total-n-1)
		logger.Noticef("frame %d/%d done; elapsed %v, remaining %v", n+1, total, elapsed.Round(time.Millisecond), remaining.Round(time.Millisecond))
	}

	return nil
}

// FrameFileName returns the numbered file name of a frame
func FrameFileName(prefix string, frameNumber int) string {
	return fmt.Sprintf("%s%06d.ppm", prefix, frameNumber)
}
