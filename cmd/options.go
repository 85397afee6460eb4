package cmd

import (
	"io"
	"os"

	"github.com/df07/go-octree-raytracer/pkg/config"
	"github.com/df07/go-octree-raytracer/pkg/renderer"
	"github.com/df07/go-octree-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

// loadConfig reads the --config file, or the defaults, and applies every
// flag the user set on top of it
func loadConfig(ctx *cli.Context) (config.RenderConfig, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.RenderConfig{}, err
		}
		logger.Infof("loaded config %s", path)
	}

	stringFlags := []struct {
		flag  string
		value *string
	}{
		{"scene", &cfg.Scene},
		{"mesh", &cfg.MeshPath},
		{"texture", &cfg.TexturePath},
		{"out", &cfg.Output},
	}
	for _, s := range stringFlags {
		if ctx.IsSet(s.flag) {
			*s.value = ctx.String(s.flag)
		}
	}

	intFlags := []struct {
		flag  string
		value *int
	}{
		{"width", &cfg.Width},
		{"height", &cfg.Height},
		{"reflect-depth", &cfg.ReflectDepth},
		{"refract-depth", &cfg.RefractDepth},
		{"shadow-samples", &cfg.ShadowSamples},
		{"gloss-samples", &cfg.GlossSamples},
		{"pixel-samples", &cfg.PixelSamples},
		{"workers", &cfg.Workers},
	}
	for _, i := range intFlags {
		if ctx.IsSet(i.flag) {
			*i.value = ctx.Int(i.flag)
		}
	}

	if ctx.IsSet("fov") {
		cfg.FOV = ctx.Float64("fov")
	}
	if ctx.IsSet("seed") {
		cfg.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("soft-shadows") {
		cfg.SoftShadows = ctx.Bool("soft-shadows")
	}
	if ctx.IsSet("flip-normals") {
		cfg.FlipNormals = ctx.Bool("flip-normals")
	}

	return cfg, cfg.Validate()
}

// buildScene looks up and builds the configured scene
func buildScene(cfg config.RenderConfig) (*scene.Scene, *scene.Camera, error) {
	builder, err := scene.Lookup(cfg.Scene)
	if err != nil {
		return nil, nil, err
	}

	s, camera, err := builder.Build(cfg.BuildOptions())
	if err != nil {
		return nil, nil, err
	}

	logger.Infof("scene %q: %d primitives, %d lights", builder.Name(), s.PrimitiveCount(), len(s.Lights))
	if stats := s.Octree.Stats(); stats.TotalNodes > 0 {
		logger.Debugf("octree: %d nodes, %d leaves, depth %d", stats.TotalNodes, stats.LeafNodes, stats.MaxDepth)
	}
	return s, camera, nil
}

func newRenderer(cfg config.RenderConfig) *renderer.Renderer {
	r := renderer.New(cfg.RenderOptions())
	options := r.Options()
	logger.Infof(
		"rendering %dx%d with %d workers (reflect %d, refract %d, shadow %d, gloss %d, pixel %d)",
		cfg.Width, cfg.Height, options.Workers, options.ReflectDepth, options.RefractDepth,
		options.ShadowSamples, options.GlossSamples, options.PixelSamples,
	)
	return r
}

func stdout(ctx *cli.Context) io.Writer {
	if ctx.App.Writer != nil {
		return ctx.App.Writer
	}
	return os.Stdout
}

func stderr(ctx *cli.Context) io.Writer {
	if ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}
