package geometry

import (
	"fmt"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/material"
	"github.com/df07/go-octree-raytracer/pkg/octree"
)

// Mesh is a collection of triangles with its own octree for fast intersection
type Mesh struct {
	triangles []*Triangle
	tree      *octree.Octree[*Triangle]
	bbox      core.AABB
}

// MeshOptions contains optional per-vertex attributes for NewIndexedMesh
type MeshOptions struct {
	Normals     []core.Vec3 // One per vertex
	TexCoords   []core.Vec2 // One per vertex
	FlipNormals bool        // Negate the supplied normals
}

// NewMesh creates a mesh from already built triangles
func NewMesh(triangles []*Triangle) *Mesh {
	m := &Mesh{triangles: triangles}
	m.rebuild()
	return m
}

// NewIndexedMesh creates a mesh from shared vertices and face indices
// (each group of 3 indices forms a triangle). options may be nil.
func NewIndexedMesh(vertices []core.Vec3, faces []int, mat material.Material, options *MeshOptions) (*Mesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}
	if options == nil {
		options = &MeshOptions{}
	}
	if options.Normals != nil && len(options.Normals) != len(vertices) {
		return nil, fmt.Errorf("got %d normals for %d vertices", len(options.Normals), len(vertices))
	}
	if options.TexCoords != nil && len(options.TexCoords) != len(vertices) {
		return nil, fmt.Errorf("got %d texture coordinates for %d vertices", len(options.TexCoords), len(vertices))
	}

	vertex := func(index int) TriangleVertex {
		v := TriangleVertex{Pos: vertices[index]}
		if options.Normals != nil {
			v.N = options.Normals[index]
			if options.FlipNormals {
				v.N = v.N.Negate()
			}
		}
		if options.TexCoords != nil {
			v.U, v.V = options.TexCoords[index].X, options.TexCoords[index].Y
		}
		return v
	}

	triangles := make([]*Triangle, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, index := range []int{i0, i1, i2} {
			if index < 0 || index >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range", i/3, index)
			}
		}
		triangles = append(triangles, NewTriangle(vertex(i0), vertex(i1), vertex(i2), mat))
	}

	return NewMesh(triangles), nil
}

func (m *Mesh) rebuild() {
	m.tree = octree.New(m.triangles)
	m.bbox, _ = m.tree.Bounds()
}

// Intersect delegates to the mesh's octree
func (m *Mesh) Intersect(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	if len(m.triangles) == 0 || !m.bbox.Hit(ray, tMin, tMax) {
		return nil, false
	}
	return NearestHit(m.tree.Intersect(ray), ray, tMin, tMax)
}

// PartialBoundingBox returns the union of the triangle boxes.
// An empty mesh has no bounds.
func (m *Mesh) PartialBoundingBox() (core.AABB, bool) {
	return m.bbox, len(m.triangles) > 0
}

// Transform moves every triangle and rebuilds the index
func (m *Mesh) Transform(t core.Transform) {
	for _, tri := range m.triangles {
		tri.Transform(t)
	}
	m.rebuild()
}

// Len returns the number of triangles in the mesh
func (m *Mesh) Len() int {
	return len(m.triangles)
}

// Triangles returns the individual triangles
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}

// Stats describes the shape of the mesh's octree
func (m *Mesh) Stats() octree.Stats {
	return m.tree.Stats()
}
