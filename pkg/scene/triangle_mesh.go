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

// buildMesh loads options.MeshPath, rests it on a checkered ground plane and
// frames it with the camera
func buildMesh(options BuildOptions) (*Scene, *Camera, error) {
	if options.MeshPath == "" {
		return nil, nil, ErrMeshPathNotProvided
	}

	meshMaterial := material.NewCookTorrance(core.NewVec3(0.7, 0.7, 0.75), core.NewVec3(0.9, 0.9, 0.9), 0.25, 1.8)
	mesh, err := loaders.LoadMesh(options.MeshPath, meshMaterial, options.FlipNormals)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load mesh: %w", err)
	}

	bounds, ok := mesh.PartialBoundingBox()
	if !ok {
		return nil, nil, fmt.Errorf("mesh %s has no triangles", options.MeshPath)
	}

	center := bounds.Center()
	radius := math.Max(bounds.Size().Length()/2, 1e-3)

	camera := fitCamera(center, radius, options)

	ground := material.NewPhong(core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.1, 0.1, 0.1), 4)
	ground.Texture = material.NewCheckerTexture(4/radius, core.NewVec3(0.85, 0.85, 0.85), core.NewVec3(0.3, 0.3, 0.3))

	prims := []geometry.Prim{
		mesh,
		geometry.NewPlane(core.NewVec3(0, bounds.Min.Y, 0), core.NewVec3(0, 1, 0), ground),
	}

	key := lights.NewSphereLight(center.Add(core.NewVec3(-2, 4, 3).Multiply(radius)), core.NewVec3(0.75, 0.75, 0.7), radius*0.3)
	key.Jitter = options.SoftShadows
	fill := lights.NewPointLight(center.Add(core.NewVec3(3, 2, 2).Multiply(radius)), core.NewVec3(0.25, 0.25, 0.3))

	return New(prims, []lights.Light{key, fill}, core.NewVec3(0.05, 0.05, 0.08)), camera, nil
}

// fitCamera places the camera in front of a bounding sphere so that it fills
// the vertical field of view
func fitCamera(center core.Vec3, radius float64, options BuildOptions) *Camera {
	halfFOV := options.FOV * math.Pi / 360
	distance := radius / math.Sin(halfFOV) * 1.1

	direction := core.NewVec3(0, 0.35, 1).Normalize()
	position := center.Add(direction.Multiply(distance))
	camera := NewCamera(position, center, core.NewVec3(0, 1, 0), options.FOV, options.Width, options.Height)

	// Orbit a quarter turn per second
	keyframes := make([]CameraKeyframe, 5)
	for i := range keyframes {
		orbit := core.RotateY(float64(i) * math.Pi / 2)
		keyframes[i] = CameraKeyframe{
			Time:     float64(i),
			Position: center.Add(orbit.Vector(direction.Multiply(distance))),
			LookAt:   center,
			Up:       camera.Up,
		}
	}
	camera.SetKeyframes(keyframes)

	return camera
}
