package main

import (
	"fmt"
	"os"

	"github.com/df07/go-octree-raytracer/cmd"
	"github.com/df07/go-octree-raytracer/pkg/config"
	"github.com/df07/go-octree-raytracer/pkg/renderer"
	"github.com/df07/go-octree-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "octree-raytracer"
	app.Usage = "render scenes with a recursive octree ray tracer"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Build a scene, trace it and write the frame as an ascii PPM to standard
output, or to the --out file (PNG when the name ends in .png). The elapsed
time in milliseconds is printed to standard error.`,
			Flags:  renderFlags(),
			Action: cmd.RenderFrame,
		},
		{
			Name:  "animate",
			Usage: "render a camera fly-through as numbered frames",
			Description: `
Interpolate the camera between keyframes and write one PPM per frame named
<prefix>NNNNNN.ppm. Keyframes come from the config file or the scene.`,
			Flags: append(renderFlags(),
				cli.Float64Flag{
					Name:  "fps",
					Value: 24,
					Usage: "frames per second",
				},
				cli.Float64Flag{
					Name:  "from",
					Value: 0,
					Usage: "animation start time in seconds",
				},
				cli.Float64Flag{
					Name:  "to",
					Value: 2,
					Usage: "animation end time in seconds",
				},
				cli.IntFlag{
					Name:  "start-frame",
					Value: 0,
					Usage: "number of the first frame file",
				},
				cli.StringFlag{
					Name:  "prefix",
					Value: config.DefaultFramePrefix,
					Usage: "frame file name prefix, may include a directory",
				},
			),
			Action: cmd.Animate,
		},
		{
			Name:   "list-scenes",
			Usage:  "list the builtin scenes",
			Action: cmd.ListScenes,
		},
	}
	return app
}

func renderFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "JSON render config; flags override its values",
		},
		cli.StringFlag{
			Name:  "scene, s",
			Value: config.DefaultScene,
			Usage: "builtin scene name (see list-scenes)",
		},
		cli.StringFlag{
			Name:  "mesh",
			Usage: "OBJ or PLY file for the mesh scene",
		},
		cli.StringFlag{
			Name:  "texture",
			Usage: "image used as ground texture",
		},
		cli.BoolFlag{
			Name:  "soft-shadows",
			Usage: "jitter sphere light samples",
		},
		cli.BoolFlag{
			Name:  "flip-normals",
			Usage: "negate vertex normals of loaded meshes",
		},
		cli.IntFlag{
			Name:  "width",
			Value: scene.DefaultWidth,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: scene.DefaultHeight,
			Usage: "frame height",
		},
		cli.Float64Flag{
			Name:  "fov",
			Value: scene.DefaultFOV,
			Usage: "vertical field of view in degrees",
		},
		cli.IntFlag{
			Name:  "reflect-depth",
			Value: renderer.DefaultReflectDepth,
			Usage: "max reflection recursion",
		},
		cli.IntFlag{
			Name:  "refract-depth",
			Value: renderer.DefaultRefractDepth,
			Usage: "max refraction recursion",
		},
		cli.IntFlag{
			Name:  "shadow-samples",
			Value: renderer.DefaultShadowSamples,
			Usage: "shadow rays per area light",
		},
		cli.IntFlag{
			Name:  "gloss-samples",
			Value: renderer.DefaultGlossSamples,
			Usage: "rays per glossy reflection",
		},
		cli.IntFlag{
			Name:  "pixel-samples",
			Value: renderer.DefaultPixelSamples,
			Usage: "camera rays per pixel",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "render workers; 0 uses one per CPU",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 0,
			Usage: "base random seed",
		},
		cli.StringFlag{
			Name:  "out, o",
			Usage: "output file; PPM on stdout when empty",
		},
	}
}
