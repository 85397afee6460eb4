package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/lights"
	"github.com/df07/go-octree-raytracer/pkg/loaders"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// buildSpheres creates a ground plane with a row of spheres showing off each
// material, lit by a point light and a sphere light
func buildSpheres(options BuildOptions) (*Scene, *Camera, error) {
	camera := NewCamera(
		core.NewVec3(0, 2, 9),
		core.NewVec3(0, 0.8, 0),
		core.NewVec3(0, 1, 0),
		options.FOV,
		options.Width,
		options.Height,
	)
	// Quarter orbit around the spheres
	camera.SetKeyframes([]CameraKeyframe{
		{Time: 0, Position: camera.Position, LookAt: camera.LookAt, Up: camera.Up},
		{Time: 1, Position: core.NewVec3(6.4, 2, 6.4), LookAt: camera.LookAt, Up: camera.Up},
		{Time: 2, Position: core.NewVec3(9, 2, 0), LookAt: camera.LookAt, Up: camera.Up},
	})

	// Ground texture: an image if one was given, a checkerboard otherwise
	var groundTexture material.Texture = material.NewCheckerTexture(1, core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.25))
	if options.TexturePath != "" {
		image, err := loaders.LoadImage(options.TexturePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load ground texture: %w", err)
		}
		groundTexture = material.NewImageTexture(image)
	}
	ground := material.NewPhong(core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.1, 0.1, 0.1), 4)
	ground.Texture = groundTexture
	ground.KSG = 0.1

	// Create materials
	plastic := material.NewPhong(core.NewVec3(0.7, 0.15, 0.1), core.NewVec3(1, 1, 1), 40)

	gold := material.NewCookTorrance(core.NewVec3(0.75, 0.55, 0.2), core.NewVec3(1, 0.85, 0.55), 0.3, 0.47)
	gold.KSG = 0.6
	gold.Gloss = 0.15

	glass := material.NewCookTorrance(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 0.05, 1.5)
	glass.KSG = 1
	glass.KTG = 1
	glass.Transmissive = core.NewVec3(0.9, 0.95, 0.9)

	chrome := material.NewPhong(core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(1, 1, 1), 120)
	chrome.KSG = 0.9

	blue := material.NewPhong(core.NewVec3(0.15, 0.25, 0.7), core.NewVec3(0.4, 0.4, 0.4), 30)

	uvDebug := material.NewPhong(core.NewVec3(1, 1, 1), core.NewVec3(0.3, 0.3, 0.3), 10)
	uvDebug.Texture = material.UVTexture{}

	prims := []geometry.Prim{
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground),
		geometry.NewSphere(core.NewVec3(-3, 0.8, 0), 0.8, plastic),
		geometry.NewSphere(core.NewVec3(-1, 0.8, 0.5), 0.8, gold),
		geometry.NewSphere(core.NewVec3(1, 0.8, 1), 0.8, glass),
		geometry.NewSphere(core.NewVec3(3, 0.8, 0), 0.8, chrome),
		geometry.NewSphere(core.NewVec3(0, 0.4, -2.5), 0.4, uvDebug),
		geometry.NewBox(core.NewVec3(2.2, 0.5, -2.2), core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0, math.Pi/6, 0), blue),
	}

	key := lights.NewSphereLight(core.NewVec3(-6, 10, 6), core.NewVec3(0.7, 0.7, 0.65), 1.5)
	key.Jitter = options.SoftShadows
	fill := lights.NewPointLight(core.NewVec3(8, 6, 4), core.NewVec3(0.3, 0.3, 0.35))

	return New(prims, []lights.Light{key, fill}, core.NewVec3(0.5, 0.7, 1.0)), camera, nil
}
