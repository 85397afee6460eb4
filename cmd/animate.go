package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/df07/go-octree-raytracer/pkg/compositor"
	"github.com/df07/go-octree-raytracer/pkg/config"
	"github.com/df07/go-octree-raytracer/pkg/export"
	"github.com/df07/go-octree-raytracer/pkg/renderer"
	"github.com/urfave/cli"
)

// Render a camera fly-through as numbered PPM frames.
func Animate(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if cfg.Animation == nil {
		cfg.Animation = &config.AnimationConfig{
			FPS:         ctx.Float64("fps"),
			From:        ctx.Float64("from"),
			To:          ctx.Float64("to"),
			StartFrame:  ctx.Int("start-frame"),
			FramePrefix: ctx.String("prefix"),
		}
	} else {
		overrideAnimation(ctx, cfg.Animation)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s, camera, err := buildScene(cfg)
	if err != nil {
		return err
	}

	r := newRenderer(cfg)
	defer r.Close()

	animator, err := cfg.Animator(r, camera)
	if err != nil {
		return err
	}
	logger.Noticef("rendering %d frames at %v fps", animator.FrameCount(), animator.FPS)

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	prefix := cfg.Animation.FramePrefix
	return animator.Animate(renderCtx, s, camera, func(frameNumber int, surface *compositor.Surface[uint8]) error {
		displayFrameStats(r.Stats())
		return export.SaveFile(renderer.FrameFileName(prefix, frameNumber), surface)
	})
}

// overrideAnimation applies explicitly set flags to a loaded animation section
func overrideAnimation(ctx *cli.Context, animation *config.AnimationConfig) {
	if ctx.IsSet("fps") {
		animation.FPS = ctx.Float64("fps")
	}
	if ctx.IsSet("from") {
		animation.From = ctx.Float64("from")
	}
	if ctx.IsSet("to") {
		animation.To = ctx.Float64("to")
	}
	if ctx.IsSet("start-frame") {
		animation.StartFrame = ctx.Int("start-frame")
	}
	if ctx.IsSet("prefix") {
		animation.FramePrefix = ctx.String("prefix")
	}
}
