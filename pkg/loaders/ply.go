package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty

	// Elements other than vertex and face, in file order, so their data can be skipped
	Elements []PLYElement

	HasNormals   bool
	HasColors    bool
	HasTexCoords bool
}

// PLYElement is one "element" declaration with its properties
type PLYElement struct {
	Name  string
	Count int
	Props []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the vertex and face data loaded from a PLY file
type PLYData struct {
	Vertices  []core.Vec3 // Vertex positions (x, y, z)
	Faces     []int       // Triangle indices (3 per triangle)
	Normals   []core.Vec3 // Per-vertex normals - empty if not present
	Colors    []core.Vec3 // Per-vertex colors normalized to [0,1] - empty if not present
	TexCoords []core.Vec2 // Per-vertex texture coordinates - empty if not present
}

// LoadPLY loads a PLY file and returns the raw vertex and face data
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filename, len(data.Vertices), len(data.Faces)/3, time.Since(startTime))

	return data, nil
}

// ParsePLY reads PLY data in ascii, binary_little_endian or binary_big_endian format
func ParsePLY(in io.Reader) (*PLYData, error) {
	reader := bufio.NewReaderSize(in, 1024*1024)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &asciiValues{scanner: scanner}
	case "binary_little_endian":
		values = &binaryValues{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValues{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: PLY format %q", ErrUnsupportedFormat, header.Format)
	}

	data, err := readPLYBody(values, header)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}
	return data, nil
}

// Mesh builds a triangle mesh from the loaded data
func (d *PLYData) Mesh(mat material.Material, flipNormals bool) (*geometry.Mesh, error) {
	return geometry.NewIndexedMesh(d.Vertices, d.Faces, mat, &geometry.MeshOptions{
		Normals:     d.Normals,
		TexCoords:   d.TexCoords,
		FlipNormals: flipNormals,
	})
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var current *PLYElement

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrMalformed)
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header ended before end_header", ErrMalformed)
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if current != nil {
				header.Elements = append(header.Elements, *current)
			}
			header.collect()
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid format line %q", ErrMalformed, strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid element line %q", ErrMalformed, strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count: %s", ErrMalformed, parts[2])
			}
			if current != nil {
				header.Elements = append(header.Elements, *current)
			}
			current = &PLYElement{Name: parts[1], Count: count}
		case "property":
			if current == nil {
				return nil, fmt.Errorf("%w: property before element", ErrMalformed)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			current.Props = append(current.Props, prop)
		}
	}
}

// collect fills the vertex/face shortcuts from the element list
func (h *PLYHeader) collect() {
	for _, element := range h.Elements {
		switch element.Name {
		case "vertex":
			h.VertexCount = element.Count
			h.VertexProps = element.Props
		case "face":
			h.FaceCount = element.Count
			h.FaceProps = element.Props
		}
	}
	for _, prop := range h.VertexProps {
		switch prop.Name {
		case "nx", "ny", "nz":
			h.HasNormals = true
		case "red", "green", "blue", "r", "g", "b":
			h.HasColors = true
		case "u", "v", "s", "t", "texture_u", "texture_v":
			h.HasTexCoords = true
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("%w: invalid property definition", ErrMalformed)
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("%w: invalid list property definition", ErrMalformed)
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
	}

	if getTypeSize(prop.Type) == 0 && !prop.IsList {
		return PLYProperty{}, fmt.Errorf("%w: property type %q", ErrUnsupportedFormat, prop.Type)
	}
	return prop, nil
}

// plyValueReader reads one scalar of the given PLY type from the body
type plyValueReader interface {
	scalar(dataType string) (float64, error)
}

type asciiValues struct {
	scanner *bufio.Scanner
}

func (a *asciiValues) scalar(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrMalformed, io.ErrUnexpectedEOF)
	}
	value, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return value, nil
}

type binaryValues struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryValues) scalar(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("%w: data type %q", ErrUnsupportedFormat, dataType)
	}
	raw := b.buf[:size]
	if _, err := io.ReadFull(b.reader, raw); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(raw[0])), nil
	case "uchar", "uint8":
		return float64(raw[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(raw))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(raw)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(raw))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(raw)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(raw))), nil
	default: // double
		return math.Float64frombits(b.order.Uint64(raw)), nil
	}
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

const (
	// Header counts are untrusted; slices grow past this by appending
	maxPreallocate = 1 << 16
	// Largest list (polygon) length accepted
	maxListCount = 1 << 16
)

func readPLYBody(values plyValueReader, header *PLYHeader) (*PLYData, error) {
	vertexCap := min(header.VertexCount, maxPreallocate)
	data := &PLYData{
		Vertices: make([]core.Vec3, 0, vertexCap),
		Faces:    make([]int, 0, min(header.FaceCount, maxPreallocate)*3),
	}
	if header.HasNormals {
		data.Normals = make([]core.Vec3, 0, vertexCap)
	}
	if header.HasColors {
		data.Colors = make([]core.Vec3, 0, vertexCap)
	}
	if header.HasTexCoords {
		data.TexCoords = make([]core.Vec2, 0, vertexCap)
	}

	for _, element := range header.Elements {
		for i := 0; i < element.Count; i++ {
			var err error
			switch element.Name {
			case "vertex":
				err = readPLYVertex(values, header, data)
			case "face":
				err = readPLYFace(values, element.Props, data)
			default:
				err = skipPLYElement(values, element.Props)
			}
			if err != nil {
				return nil, fmt.Errorf("%s %d: %w", element.Name, i, err)
			}
		}
	}

	for _, index := range data.Faces {
		if index < 0 || index >= len(data.Vertices) {
			return nil, fmt.Errorf("%w: face index %d out of range", ErrMalformed, index)
		}
	}

	return data, nil
}

func readPLYVertex(values plyValueReader, header *PLYHeader, data *PLYData) error {
	var pos, normal, color core.Vec3
	var uv core.Vec2
	colorRange := 1.0

	for _, prop := range header.VertexProps {
		if prop.IsList {
			if err := skipPLYList(values, prop); err != nil {
				return err
			}
			continue
		}

		value, err := values.scalar(prop.Type)
		if err != nil {
			return err
		}

		switch prop.Name {
		case "x":
			pos.X = value
		case "y":
			pos.Y = value
		case "z":
			pos.Z = value
		case "nx":
			normal.X = value
		case "ny":
			normal.Y = value
		case "nz":
			normal.Z = value
		case "u", "s", "texture_u":
			uv.X = value
		case "v", "t", "texture_v":
			uv.Y = value
		case "red", "r":
			color.X = value
		case "green", "g":
			color.Y = value
		case "blue", "b":
			color.Z = value
		}
		if (prop.Name == "red" || prop.Name == "r") && (prop.Type == "uchar" || prop.Type == "uint8") {
			colorRange = 255
		}
	}

	data.Vertices = append(data.Vertices, pos)
	if header.HasNormals {
		data.Normals = append(data.Normals, normal)
	}
	if header.HasColors {
		data.Colors = append(data.Colors, core.NewVec3(color.X/colorRange, color.Y/colorRange, color.Z/colorRange))
	}
	if header.HasTexCoords {
		data.TexCoords = append(data.TexCoords, uv)
	}
	return nil
}

// readPLYFace reads vertex_indices and fans polygons into triangles
func readPLYFace(values plyValueReader, props []PLYProperty, data *PLYData) error {
	for _, prop := range props {
		if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
			if err := skipPLYProperty(values, prop); err != nil {
				return err
			}
			continue
		}

		count, err := readPLYListCount(values, prop)
		if err != nil {
			return err
		}
		if count < 3 {
			return fmt.Errorf("%w: face with %d vertices", ErrMalformed, count)
		}

		indices := make([]int, count)
		for i := range indices {
			value, err := values.scalar(prop.DataType)
			if err != nil {
				return err
			}
			if value != math.Trunc(value) {
				return fmt.Errorf("%w: vertex index %v is not an integer", ErrMalformed, value)
			}
			indices[i] = int(value)
		}
		for i := 1; i+1 < len(indices); i++ {
			data.Faces = append(data.Faces, indices[0], indices[i], indices[i+1])
		}
	}
	return nil
}

func skipPLYElement(values plyValueReader, props []PLYProperty) error {
	for _, prop := range props {
		if err := skipPLYProperty(values, prop); err != nil {
			return err
		}
	}
	return nil
}

func skipPLYProperty(values plyValueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipPLYList(values, prop)
	}
	_, err := values.scalar(prop.Type)
	return err
}

func skipPLYList(values plyValueReader, prop PLYProperty) error {
	count, err := readPLYListCount(values, prop)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if _, err := values.scalar(prop.DataType); err != nil {
			return err
		}
	}
	return nil
}

// readPLYListCount reads a list length, rejecting values that are negative,
// fractional, NaN or larger than maxListCount
func readPLYListCount(values plyValueReader, prop PLYProperty) (int, error) {
	count, err := values.scalar(prop.ListType)
	if err != nil {
		return 0, err
	}
	if !(count >= 0 && count <= maxListCount) || count != math.Trunc(count) {
		return 0, fmt.Errorf("%w: list length %v", ErrMalformed, count)
	}
	return int(count), nil
}
