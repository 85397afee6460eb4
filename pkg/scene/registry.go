package scene

import (
	"fmt"
	"sort"
)

// BuildOptions contains the user-facing knobs every scene builder receives
type BuildOptions struct {
	Width  int
	Height int
	FOV    float64 // Vertical field of view in degrees

	MeshPath    string // OBJ or PLY file for the mesh scene
	TexturePath string // Optional image used as ground texture
	SoftShadows bool   // Enable jitter on sphere lights
	FlipNormals bool   // Negate vertex normals of loaded meshes
}

// Defaults used when BuildOptions leaves a field zero
const (
	DefaultWidth  = 512
	DefaultHeight = 512
	DefaultFOV    = 30.0
)

func (o BuildOptions) withDefaults() BuildOptions {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.FOV <= 0 {
		o.FOV = DefaultFOV
	}
	return o
}

// Builder produces a scene and the camera that frames it
type Builder interface {
	Name() string
	Description() string
	Build(options BuildOptions) (*Scene, *Camera, error)
}

// builtin adapts a plain function to the Builder interface
type builtin struct {
	name        string
	description string
	build       func(BuildOptions) (*Scene, *Camera, error)
}

func (b builtin) Name() string        { return b.name }
func (b builtin) Description() string { return b.description }

func (b builtin) Build(options BuildOptions) (*Scene, *Camera, error) {
	return b.build(options.withDefaults())
}

var registry = map[string]Builder{}

// Register adds a builder to the registry. Registering a name twice panics.
func Register(b Builder) {
	if _, exists := registry[b.Name()]; exists {
		panic(fmt.Sprintf("scene: builder %q registered twice", b.Name()))
	}
	registry[b.Name()] = b
}

// Lookup returns the builder registered under name
func Lookup(name string) (Builder, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}
	return b, nil
}

// Names returns all registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builders returns all registered builders sorted by name
func Builders() []Builder {
	builders := make([]Builder, 0, len(registry))
	for _, name := range Names() {
		builders = append(builders, registry[name])
	}
	return builders
}

func init() {
	Register(builtin{"spheres", "Textured ground plane with Phong, Cook-Torrance and glass spheres", buildSpheres})
	Register(builtin{"cornell", "Cornell box with a mirror sphere and a glass sphere", buildCornell})
	Register(builtin{"mesh", "OBJ or PLY mesh on a ground plane (requires a mesh path)", buildMesh})
}
