package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// LoadMesh loads an OBJ or PLY file based on its extension
func LoadMesh(filename string, mat material.Material, flipNormals bool) (*geometry.Mesh, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".obj":
		return LoadOBJ(filename, mat, flipNormals)
	case ".ply":
		data, err := LoadPLY(filename)
		if err != nil {
			return nil, err
		}
		mesh, err := data.Mesh(mat, flipNormals)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return mesh, nil
	default:
		return nil, fmt.Errorf("%w: mesh file %q", ErrUnsupportedFormat, filename)
	}
}
