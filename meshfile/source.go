package meshfile

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/meshkit/gltf_mesh_exporter/mesh"
)

// Document implements mesh.Source and mesh.Skin with bulk array fetches
// over its stored data.

func (d *Document) VertexCount() int {
	return len(d.Vertices)
}

func (d *Document) CornerCount() int {
	return len(d.Corners)
}

func (d *Document) Triangles() []uint32 {
	corners := make([]uint32, 0, len(d.Faces)*3)
	for _, tri := range d.Faces {
		corners = append(corners, tri.Corners[0], tri.Corners[1], tri.Corners[2])
	}
	return corners
}

func (d *Document) TriangleMaterials() []int32 {
	materials := make([]int32, len(d.Faces))
	for i, tri := range d.Faces {
		materials[i] = tri.Material
	}
	return materials
}

func (d *Document) CornerVertices() []uint32 {
	verts := make([]uint32, len(d.Corners))
	for i, corner := range d.Corners {
		verts[i] = corner.Vertex
	}
	return verts
}

func (d *Document) Positions() []mgl32.Vec3 {
	positions := make([]mgl32.Vec3, len(d.Vertices))
	for i, v := range d.Vertices {
		positions[i] = mgl32.Vec3(v.Position)
	}
	return positions
}

func (d *Document) Normals() []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(d.Corners))
	for i, corner := range d.Corners {
		normals[i] = mgl32.Vec3(corner.Normal)
	}
	return normals
}

func (d *Document) CanComputeTangents() bool {
	return d.HasTangents && d.UVLayerCount() > 0
}

func (d *Document) Tangents() ([]mgl32.Vec3, []float32, error) {
	if !d.HasTangents {
		return nil, nil, errors.Errorf("mesh %q carries no tangent basis", d.Name)
	}
	tangents := make([]mgl32.Vec3, len(d.Corners))
	signs := make([]float32, len(d.Corners))
	for i, corner := range d.Corners {
		tangents[i] = mgl32.Vec3{corner.Tangent[0], corner.Tangent[1], corner.Tangent[2]}
		signs[i] = corner.Tangent[3]
	}
	return tangents, signs, nil
}

func (d *Document) UVLayerCount() int {
	if len(d.Corners) == 0 {
		return 0
	}
	return len(d.Corners[0].UVs)
}

func (d *Document) UVs(layer int) []mgl32.Vec2 {
	uvs := make([]mgl32.Vec2, len(d.Corners))
	for i, corner := range d.Corners {
		if layer < len(corner.UVs) {
			uvs[i] = mgl32.Vec2(corner.UVs[layer])
		}
	}
	return uvs
}

func (d *Document) ColorLayerCount() int {
	if len(d.Corners) == 0 {
		return 0
	}
	return len(d.Corners[0].Colors)
}

func (d *Document) Colors(layer int) []mgl32.Vec4 {
	colors := make([]mgl32.Vec4, len(d.Corners))
	for i, corner := range d.Corners {
		if layer < len(corner.Colors) {
			colors[i] = mgl32.Vec4(corner.Colors[layer])
		}
	}
	return colors
}

func (d *Document) GroupNames() []string {
	return d.Groups
}

func (d *Document) VertexGroups() [][]mesh.GroupWeight {
	groups := make([][]mesh.GroupWeight, len(d.Vertices))
	for i, v := range d.Vertices {
		if len(v.Groups) == 0 {
			continue
		}
		influences := make([]mesh.GroupWeight, len(v.Groups))
		for k, gw := range v.Groups {
			influences[k] = mesh.GroupWeight{Group: gw.Group, Weight: gw.Weight}
		}
		groups[i] = influences
	}
	return groups
}

func (d *Document) MorphTargetCount() int {
	return len(d.MorphTargets)
}

func (d *Document) MorphTargetName(target int) string {
	return d.MorphTargets[target].Name
}

func (d *Document) MorphPositions(target int) []mgl32.Vec3 {
	morph := d.MorphTargets[target]
	positions := make([]mgl32.Vec3, len(d.Vertices))
	for i := range positions {
		if i < len(morph.Positions) {
			positions[i] = mgl32.Vec3(morph.Positions[i])
		} else {
			positions[i] = mgl32.Vec3(d.Vertices[i].Position)
		}
	}
	return positions
}

func (d *Document) MorphNormals(target int) []mgl32.Vec3 {
	morph := d.MorphTargets[target]
	normals := make([]mgl32.Vec3, len(d.Corners))
	for i := range normals {
		if i < len(morph.Normals) {
			normals[i] = mgl32.Vec3(morph.Normals[i])
		} else {
			normals[i] = mgl32.Vec3(d.Corners[i].Normal)
		}
	}
	return normals
}

func (d *Document) HasFaceMaps() bool {
	return len(d.FaceMapping) == len(d.Corners) && len(d.Corners) > 0
}

func (d *Document) FaceMaps() []float32 {
	return d.FaceMapping
}

func (d *Document) Joints() []string {
	return d.JointNames
}

func (d *Document) JointIndex(name string) (int, bool) {
	for i, joint := range d.JointNames {
		if joint == name {
			return i, true
		}
	}
	return 0, false
}
