package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/df07/go-octree-raytracer/pkg/compositor"
	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/material"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

func TestAnimator_FrameCount(t *testing.T) {
	tests := []struct {
		fps, from, to float64
		expected      int
	}{
		{24, 0, 1, 24},
		{10, 0, 0.35, 3},
		{30, 1, 1, 0},
		{25, 2, 1, -25},
	}

	for _, tt := range tests {
		a := &Animator{FPS: tt.fps, AnimateFrom: tt.from, AnimateTo: tt.to}
		if got := a.FrameCount(); got != tt.expected {
			t.Errorf("fps %v from %v to %v: expected %d frames, got %d", tt.fps, tt.from, tt.to, tt.expected, got)
		}
	}
}

func TestAnimator_Animate(t *testing.T) {
	red := material.NewFlat(core.NewVec3(1, 0, 0))
	s := scene.New([]geometry.Prim{geometry.NewSphere(core.Vec3{}, 1, red)}, nil, core.NewVec3(0, 0, 1))

	camera := testCamera(6, 6)
	up := core.NewVec3(0, 1, 0)
	camera.SetKeyframes([]scene.CameraKeyframe{
		{Time: 0, Position: core.NewVec3(0, 0, 5), Up: up},
		{Time: 1, Position: core.NewVec3(0, 0, 50), Up: up},
	})

	r := New(DefaultOptions())
	defer r.Close()

	a := &Animator{FPS: 4, AnimateFrom: 0, AnimateTo: 1, StartingFrameNumber: 10, Renderer: r}

	var frames []int
	err := a.Animate(context.Background(), s, camera, func(n int, surface *compositor.Surface[uint8]) error {
		frames = append(frames, n)
		if surface.Width != 6 || surface.Height != 6 {
			t.Errorf("Frame %d has size %dx%d", n, surface.Width, surface.Height)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Animate failed: %v", err)
	}

	expected := []int{10, 11, 12, 13}
	if len(frames) != len(expected) {
		t.Fatalf("Expected frames %v, got %v", expected, frames)
	}
	for i := range expected {
		if frames[i] != expected[i] {
			t.Errorf("Expected frames %v, got %v", expected, frames)
			break
		}
	}
}

func TestAnimator_Errors(t *testing.T) {
	s := scene.New(nil, nil, core.Vec3{})
	r := New(DefaultOptions())
	defer r.Close()
	noop := func(int, *compositor.Surface[uint8]) error { return nil }

	a := &Animator{FPS: 10, AnimateFrom: 0, AnimateTo: 0.05, Renderer: r}
	if err := a.Animate(context.Background(), s, testCamera(2, 2), noop); !errors.Is(err, ErrNoFrames) {
		t.Errorf("Expected ErrNoFrames, got %v", err)
	}

	a.AnimateTo = 1
	if err := a.Animate(context.Background(), s, testCamera(2, 2), noop); !errors.Is(err, scene.ErrNotEnoughKeyframes) {
		t.Errorf("Expected ErrNotEnoughKeyframes, got %v", err)
	}

	camera := testCamera(2, 2)
	camera.SetKeyframes([]scene.CameraKeyframe{
		{Time: 0, Position: core.NewVec3(0, 0, 5), Up: core.NewVec3(0, 1, 0)},
		{Time: 1, Position: core.NewVec3(0, 0, 6), Up: core.NewVec3(0, 1, 0)},
	})
	stop := errors.New("disk full")
	err := a.Animate(context.Background(), s, camera, func(int, *compositor.Surface[uint8]) error { return stop })
	if !errors.Is(err, stop) {
		t.Errorf("Expected handler error, got %v", err)
	}
}

func TestFrameFileName(t *testing.T) {
	if got := FrameFileName("out/frame", 42); got != "out/frame000042.ppm" {
		t.Errorf("Unexpected file name %q", got)
	}
}
