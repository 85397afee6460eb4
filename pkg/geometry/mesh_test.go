package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// quadMesh builds a unit quad in the z=0 plane from two triangles
func quadMesh(t *testing.T, options *MeshOptions) *Mesh {
	t.Helper()
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
	faces := []int{0, 1, 2, 0, 2, 3}
	mesh, err := NewIndexedMesh(vertices, faces, white, options)
	if err != nil {
		t.Fatalf("Failed to create mesh: %v", err)
	}
	return mesh
}

func TestNewIndexedMesh_Errors(t *testing.T) {
	vertices := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}

	tests := []struct {
		name    string
		faces   []int
		options *MeshOptions
	}{
		{"faces not a multiple of 3", []int{0, 1}, nil},
		{"index out of range", []int{0, 1, 3}, nil},
		{"negative index", []int{0, -1, 2}, nil},
		{"normal count mismatch", []int{0, 1, 2}, &MeshOptions{Normals: []core.Vec3{{}}}},
		{"uv count mismatch", []int{0, 1, 2}, &MeshOptions{TexCoords: []core.Vec2{{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewIndexedMesh(vertices, tt.faces, white, tt.options); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestMesh_Intersect(t *testing.T) {
	mesh := quadMesh(t, nil)

	if mesh.Len() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", mesh.Len())
	}

	box, ok := mesh.PartialBoundingBox()
	if !ok || box.Min != core.NewVec3(0, 0, 0) || box.Max != core.NewVec3(1, 1, 0) {
		t.Errorf("Unexpected bounds %v %t", box, ok)
	}

	for _, p := range []core.Vec3{core.NewVec3(0.75, 0.25, 1), core.NewVec3(0.25, 0.75, 1)} {
		hit, ok := mesh.Intersect(core.NewRay(p, core.NewVec3(0, 0, -1)), 0.001, 100)
		if !ok {
			t.Fatalf("Expected hit at %v", p)
		}
		if math.Abs(hit.T-1) > 1e-9 {
			t.Errorf("Expected t=1, got %f", hit.T)
		}
	}

	if _, ok := mesh.Intersect(core.NewRay(core.NewVec3(2, 2, 1), core.NewVec3(0, 0, -1)), 0.001, 100); ok {
		t.Error("Expected miss outside the quad")
	}
}

func TestMesh_NearestOfManyTriangles(t *testing.T) {
	// A stack of 40 parallel quads; the ray must report the closest one
	var triangles []*Triangle
	for i := 0; i < 20; i++ {
		z := float64(i)
		triangles = append(triangles,
			NewFlatTriangle(core.NewVec3(0, 0, z), core.NewVec3(1, 0, z), core.NewVec3(1, 1, z), white),
			NewFlatTriangle(core.NewVec3(0, 0, z), core.NewVec3(1, 1, z), core.NewVec3(0, 1, z), white),
		)
	}
	mesh := NewMesh(triangles)

	hit, ok := mesh.Intersect(core.NewRay(core.NewVec3(0.3, 0.6, 100), core.NewVec3(0, 0, -1)), 0.001, 1000)
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.Position.Z-19) > 1e-9 {
		t.Errorf("Expected nearest quad at z=19, got %v", hit.Position)
	}

	hit, ok = mesh.Intersect(core.NewRay(core.NewVec3(0.3, 0.6, -100), core.NewVec3(0, 0, 1)), 0.001, 1000)
	if !ok || math.Abs(hit.Position.Z) > 1e-9 {
		t.Errorf("Expected nearest quad at z=0 from below, got %v", hit)
	}
}

func TestMesh_OptionsAndFlip(t *testing.T) {
	up := core.NewVec3(0, 0, 1)
	normals := []core.Vec3{up, up, up, up}
	uvs := []core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(1, 1), core.NewVec2(0, 1)}

	mesh := quadMesh(t, &MeshOptions{Normals: normals, TexCoords: uvs, FlipNormals: true})
	hit, ok := mesh.Intersect(core.NewRay(core.NewVec3(0.8, 0.1, 1), core.NewVec3(0, 0, -1)), 0.001, 100)
	if !ok {
		t.Fatal("Expected hit")
	}
	if !vecClose(hit.N, core.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected flipped normal, got %v", hit.N)
	}
	if math.Abs(hit.U-0.8) > 1e-9 || math.Abs(hit.V-0.1) > 1e-9 {
		t.Errorf("Expected uv (0.8, 0.1), got (%f, %f)", hit.U, hit.V)
	}
}

func TestMesh_TransformRebuildsIndex(t *testing.T) {
	mesh := quadMesh(t, nil)
	mesh.Transform(core.Translate(core.NewVec3(10, 0, 0)))

	if _, ok := mesh.Intersect(core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1)), 0.001, 100); ok {
		t.Error("Expected miss at the old location")
	}
	if _, ok := mesh.Intersect(core.NewRay(core.NewVec3(10.5, 0.5, 1), core.NewVec3(0, 0, -1)), 0.001, 100); !ok {
		t.Error("Expected hit at the new location")
	}
	if stats := mesh.Stats(); stats.BoundedItems != 2 {
		t.Errorf("Expected 2 indexed triangles, got %d", stats.BoundedItems)
	}
}

func TestMesh_Empty(t *testing.T) {
	mesh := NewMesh(nil)
	if _, ok := mesh.PartialBoundingBox(); ok {
		t.Error("Expected empty mesh to be unbounded")
	}
	if _, ok := mesh.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), 0.001, 100); ok {
		t.Error("Expected no hit on empty mesh")
	}
}
