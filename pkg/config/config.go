// Package config loads render configurations from JSON files.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-octree-raytracer/pkg/renderer"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

// RenderConfig describes one render invocation. Fields missing from a
// config file keep their Default values.
type RenderConfig struct {
	Scene  string  `json:"scene"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	FOV    float64 `json:"fov"`

	MeshPath    string `json:"mesh,omitempty"`
	TexturePath string `json:"texture,omitempty"`
	SoftShadows bool   `json:"soft_shadows"`
	FlipNormals bool   `json:"flip_normals"`

	ReflectDepth  int   `json:"reflect_depth"`
	RefractDepth  int   `json:"refract_depth"`
	ShadowSamples int   `json:"shadow_samples"`
	GlossSamples  int   `json:"gloss_samples"`
	PixelSamples  int   `json:"pixel_samples"`
	Workers       int   `json:"workers"`
	Seed          int64 `json:"seed"`

	// Output file; empty writes the PPM to stdout
	Output string `json:"out,omitempty"`

	Animation *AnimationConfig `json:"animation,omitempty"`
}

// AnimationConfig holds the camera fly-through settings
type AnimationConfig struct {
	FPS         float64                `json:"fps"`
	From        float64                `json:"from"`
	To          float64                `json:"to"`
	StartFrame  int                    `json:"start_frame"`
	FramePrefix string                 `json:"frame_prefix"`
	Keyframes   []scene.CameraKeyframe `json:"keyframes"`
}

// DefaultScene is rendered when no scene is named
const DefaultScene = "cornell"

// DefaultFramePrefix names animation frames frame000000.ppm and onwards
const DefaultFramePrefix = "frame"

// Default returns the classic configuration
func Default() RenderConfig {
	options := renderer.DefaultOptions()
	return RenderConfig{
		Scene:         DefaultScene,
		Width:         scene.DefaultWidth,
		Height:        scene.DefaultHeight,
		FOV:           scene.DefaultFOV,
		ReflectDepth:  options.ReflectDepth,
		RefractDepth:  options.RefractDepth,
		ShadowSamples: options.ShadowSamples,
		GlossSamples:  options.GlossSamples,
		PixelSamples:  options.PixelSamples,
	}
}

// Load reads a JSON config on top of the defaults and validates it
func Load(filename string) (RenderConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON config on top of the defaults and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (RenderConfig, error) {
	cfg := Default()

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return RenderConfig{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if cfg.Animation != nil && cfg.Animation.FramePrefix == "" {
		cfg.Animation.FramePrefix = DefaultFramePrefix
	}

	if err := cfg.Validate(); err != nil {
		return RenderConfig{}, err
	}
	return cfg, nil
}

// Validate reports the first out of range value
func (c RenderConfig) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: scene name is empty", ErrInvalid)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalid, c.FOV)
	case c.ReflectDepth < 0 || c.RefractDepth < 0:
		return fmt.Errorf("%w: negative recursion depth", ErrInvalid)
	case c.ShadowSamples < 0 || c.GlossSamples < 0 || c.PixelSamples < 0:
		return fmt.Errorf("%w: negative sample count", ErrInvalid)
	case c.Workers < 0:
		return fmt.Errorf("%w: negative worker count", ErrInvalid)
	}

	if a := c.Animation; a != nil {
		switch {
		case a.FPS <= 0:
			return fmt.Errorf("%w: animation fps %v", ErrInvalid, a.FPS)
		case a.To <= a.From:
			return fmt.Errorf("%w: animation range [%v, %v]", ErrInvalid, a.From, a.To)
		case len(a.Keyframes) == 1:
			return fmt.Errorf("%w: %w", ErrInvalid, scene.ErrNotEnoughKeyframes)
		}
	}
	return nil
}

// RenderOptions returns the renderer settings of the config
func (c RenderConfig) RenderOptions() renderer.Options {
	options := renderer.DefaultOptions()
	options.ReflectDepth = c.ReflectDepth
	options.RefractDepth = c.RefractDepth
	options.ShadowSamples = c.ShadowSamples
	options.GlossSamples = c.GlossSamples
	options.PixelSamples = c.PixelSamples
	options.Workers = c.Workers
	options.Seed = c.Seed
	return options
}

// BuildOptions returns the scene builder settings of the config
func (c RenderConfig) BuildOptions() scene.BuildOptions {
	return scene.BuildOptions{
		Width:       c.Width,
		Height:      c.Height,
		FOV:         c.FOV,
		MeshPath:    c.MeshPath,
		TexturePath: c.TexturePath,
		SoftShadows: c.SoftShadows,
		FlipNormals: c.FlipNormals,
	}
}

// Animator returns an animator for the animation section. Keyframes in the
// config replace those of camera; with none, the builder's keyframes are used.
func (c RenderConfig) Animator(r *renderer.Renderer, camera *scene.Camera) (*renderer.Animator, error) {
	a := c.Animation
	if a == nil {
		return nil, fmt.Errorf("%w: no animation section", ErrInvalid)
	}

	if len(a.Keyframes) > 0 {
		camera.SetKeyframes(a.Keyframes)
	}

	return &renderer.Animator{
		FPS:                 a.FPS,
		AnimateFrom:         a.From,
		AnimateTo:           a.To,
		StartingFrameNumber: a.StartFrame,
		Renderer:            r,
	}, nil
}
