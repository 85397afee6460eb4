package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/log"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

var logger = log.New("loaders")

// Progress is logged every this many lines
const objProgressLines = 2048

// objReader accumulates the coordinate lists of a wavefront obj file
type objReader struct {
	name        string
	flipNormals bool
	material    material.Material

	vertexList []core.Vec3
	uvList     []core.Vec2
	normalList []core.Vec3
	triangles  []*geometry.Triangle
}

// LoadOBJ reads a wavefront obj file into a mesh. Every triangle shares mat.
// When flipNormals is set, the file's vertex normals are negated.
func LoadOBJ(filename string, mat material.Material, flipNormals bool) (*geometry.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open obj file: %w", err)
	}
	defer file.Close()

	var totalBytes int64
	if info, err := file.Stat(); err == nil {
		totalBytes = info.Size()
	}

	start := time.Now()
	r := &objReader{name: filename, flipNormals: flipNormals, material: mat}
	if err := r.parse(file, totalBytes); err != nil {
		return nil, err
	}
	logger.Infof("loaded %s: %d vertices, %d triangles in %v", filename, len(r.vertexList), len(r.triangles), time.Since(start))

	return geometry.NewMesh(r.triangles), nil
}

// ParseOBJ reads wavefront obj data from an arbitrary reader
func ParseOBJ(in io.Reader, mat material.Material, flipNormals bool) (*geometry.Mesh, error) {
	r := &objReader{name: "obj", flipNormals: flipNormals, material: mat}
	if err := r.parse(in, 0); err != nil {
		return nil, err
	}
	return geometry.NewMesh(r.triangles), nil
}

func (r *objReader) emitError(line int, msgFormat string, args ...interface{}) error {
	return fmt.Errorf("%w: [%s: %d] %s", ErrMalformed, r.name, line, fmt.Sprintf(msgFormat, args...))
}

func (r *objReader) parse(in io.Reader, totalBytes int64) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var processedBytes int64
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		processedBytes += int64(len(line)) + 1

		if lineNum%objProgressLines == 0 && totalBytes > 0 {
			logger.Debugf("%s: %.1f%% (%d/%d bytes)", r.name, 100*float64(processedBytes)/float64(totalBytes), processedBytes, totalBytes)
		}

		lineTokens := strings.Fields(line)
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(lineNum, "%s", err)
			}
			r.vertexList = append(r.vertexList, v)
		case "vt":
			uv, err := parseVec2(lineTokens)
			if err != nil {
				return r.emitError(lineNum, "%s", err)
			}
			r.uvList = append(r.uvList, uv)
		case "vn":
			n, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(lineNum, "%s", err)
			}
			if r.flipNormals {
				n = n.Negate()
			}
			r.normalList = append(r.normalList, n)
		case "f":
			triangles, err := r.parseFace(lineTokens)
			if err != nil {
				return r.emitError(lineNum, "%s", err)
			}
			r.triangles = append(r.triangles, triangles...)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", r.name, err)
	}
	return nil
}

// parseFace converts "f v/vt/vn ..." into triangles. Polygons with more than
// three vertices are split into a fan around the first vertex. Missing uvs
// default to zero and missing normals to the face normal.
func (r *objReader) parseFace(lineTokens []string) ([]*geometry.Triangle, error) {
	if len(lineTokens) < 4 {
		return nil, fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	vertices := make([]geometry.TriangleVertex, len(lineTokens)-1)
	expIndices := 0
	for arg := range vertices {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
		} else if len(vTokens) != expIndices {
			return nil, fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		if vTokens[0] == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}
		offset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList))
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vertices[arg].Pos = r.vertexList[offset]

		if expIndices > 1 && vTokens[1] != "" {
			offset, err = selectFaceCoordIndex(vTokens[1], len(r.uvList))
			if err != nil {
				return nil, fmt.Errorf("could not parse tex coord for face argument %d: %s", arg, err.Error())
			}
			vertices[arg].U, vertices[arg].V = r.uvList[offset].X, r.uvList[offset].Y
		}

		if expIndices > 2 && vTokens[2] != "" {
			offset, err = selectFaceCoordIndex(vTokens[2], len(r.normalList))
			if err != nil {
				return nil, fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err.Error())
			}
			vertices[arg].N = r.normalList[offset]
		}
	}

	triangles := make([]*geometry.Triangle, 0, len(vertices)-2)
	for i := 1; i+1 < len(vertices); i++ {
		triangles = append(triangles, geometry.NewTriangle(vertices[0], vertices[i], vertices[i+1], r.material))
	}
	return triangles, nil
}

// selectFaceCoordIndex resolves a 1-based or negative (relative) obj index
func selectFaceCoordIndex(indexToken string, coordListLen int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var offset int
	if index < 0 {
		offset = coordListLen + int(index)
	} else {
		offset = int(index - 1)
	}
	if offset < 0 || offset >= coordListLen {
		return -1, fmt.Errorf("index %d out of bounds", index)
	}
	return offset, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (core.Vec3, error) {
	if len(lineTokens) < 4 {
		return core.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	var coords [3]float64
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		coords[tokIdx-1] = coord
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// Parse a Vec2 row. A third (w) coordinate is ignored.
func parseVec2(lineTokens []string) (core.Vec2, error) {
	if len(lineTokens) < 3 {
		return core.Vec2{}, fmt.Errorf(`unsupported syntax for "%s"; expected 2 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	var coords [2]float64
	for tokIdx := 1; tokIdx <= 2; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return core.Vec2{}, err
		}
		coords[tokIdx-1] = coord
	}
	return core.NewVec2(coords[0], coords[1]), nil
}
