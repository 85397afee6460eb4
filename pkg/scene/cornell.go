package scene

import (
	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/lights"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const cornellBoxSize = 555.0

// buildCornell creates a classic Cornell box with quad walls, a mirror
// sphere, a glass sphere and a ceiling light
func buildCornell(options BuildOptions) (*Scene, *Camera, error) {
	camera := NewCamera(
		core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		core.NewVec3(278, 278, 0),    // Look at the center of the box
		core.NewVec3(0, 1, 0),
		options.FOV,
		options.Width,
		options.Height,
	)
	// Dolly into the box over two seconds
	camera.SetKeyframes([]CameraKeyframe{
		{Time: 0, Position: camera.Position, LookAt: camera.LookAt, Up: camera.Up},
		{Time: 2, Position: core.NewVec3(278, 278, -400), LookAt: camera.LookAt, Up: camera.Up},
	})

	// Create materials
	white := material.NewPhong(core.NewVec3(0.73, 0.73, 0.73), core.NewVec3(0.2, 0.2, 0.2), 8)
	red := material.NewPhong(core.NewVec3(0.65, 0.05, 0.05), core.NewVec3(0.2, 0.2, 0.2), 8)
	green := material.NewPhong(core.NewVec3(0.12, 0.45, 0.15), core.NewVec3(0.2, 0.2, 0.2), 8)

	mirror := material.NewPhong(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(1, 1, 1), 200)
	mirror.KSG = 0.8

	glass := material.NewCookTorrance(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 0.05, 1.5)
	glass.KSG = 1
	glass.KTG = 1
	glass.Transmissive = core.NewVec3(0.95, 0.95, 0.95)

	size := cornellBoxSize
	var prims []geometry.Prim

	// Floor and ceiling - XZ planes
	prims = append(prims, geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), white))
	prims = append(prims, geometry.NewQuad(core.NewVec3(0, size, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), white))
	// Back wall - XY plane at z=size
	prims = append(prims, geometry.NewQuad(core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), white))
	// Left wall (red) - YZ plane at x=0
	prims = append(prims, geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, size), core.NewVec3(0, size, 0), red))
	// Right wall (green) - YZ plane at x=size
	prims = append(prims, geometry.NewQuad(core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), green))

	prims = append(prims,
		geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, mirror),
		geometry.NewSphere(core.NewVec3(370, 90, 351), 90, glass),
	)

	ceilingLight := lights.NewSphereLight(core.NewVec3(278, 500, 278), core.NewVec3(0.9, 0.9, 0.85), 60)
	ceilingLight.Jitter = options.SoftShadows

	return New(prims, []lights.Light{ceilingLight}, core.NewVec3(0, 0, 0)), camera, nil
}
