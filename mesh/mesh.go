package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaterialMode controls how triangles are grouped into primitives.
type MaterialMode int

const (
	// MaterialsNone merges every triangle into a single unassigned primitive.
	MaterialsNone MaterialMode = iota
	// MaterialsExport keeps one primitive per material id.
	MaterialsExport
	// MaterialsPlaceholder keeps per-material primitives, but the serializer
	// substitutes generated placeholder materials for the real ones.
	MaterialsPlaceholder
)

// NoMaterial is the material id of the single primitive produced in
// MaterialsNone mode.
const NoMaterial int32 = -1

// Settings enumerates the attribute toggles of one export run.
type Settings struct {
	Normals       bool
	Tangents      bool
	MorphNormals  bool
	MorphTangents bool
	TexCoords     bool
	Colors        bool
	Skins         bool
	Materials     MaterialMode
	YUp           bool
}

// GroupWeight is a single vertex-group influence on a vertex.
type GroupWeight struct {
	Group  uint32
	Weight float32
}

// Source is the bulk attribute-fetch boundary to the host mesh. All slices
// are read-only to this package and indexed by plain vertex/corner/triangle
// integers. Per-corner slices have CornerCount() entries, per-vertex slices
// VertexCount() entries.
type Source interface {
	VertexCount() int
	CornerCount() int

	// Triangles returns corner indices as a flat triangle list
	// (length = 3 * triangle count).
	Triangles() []uint32
	// TriangleMaterials returns the material id of every triangle.
	TriangleMaterials() []int32
	// CornerVertices maps every corner to its source vertex.
	CornerVertices() []uint32

	Positions() []mgl32.Vec3

	// Normals returns per-corner split normals.
	Normals() []mgl32.Vec3

	// CanComputeTangents reports whether the host can provide a tangent
	// basis for this mesh (needs split normals and at least one UV layer).
	CanComputeTangents() bool
	// Tangents returns per-corner tangents and bitangent signs. May fail
	// even when CanComputeTangents returned true, e.g. on meshes the host
	// could not triangulate; the failure is recoverable.
	Tangents() ([]mgl32.Vec3, []float32, error)

	UVLayerCount() int
	// UVs returns the per-corner UV pairs of one layer, in the host's
	// bottom-left origin convention.
	UVs(layer int) []mgl32.Vec2

	ColorLayerCount() int
	// Colors returns per-corner sRGB color quadruples of one layer.
	Colors(layer int) []mgl32.Vec4

	GroupNames() []string
	// VertexGroups returns the influence list of every vertex.
	VertexGroups() [][]GroupWeight

	MorphTargetCount() int
	MorphTargetName(target int) string
	// MorphPositions returns absolute per-vertex positions of one target.
	MorphPositions(target int) []mgl32.Vec3
	// MorphNormals returns absolute per-corner normals of one target.
	MorphNormals(target int) []mgl32.Vec3

	HasFaceMaps() bool
	// FaceMaps returns the per-corner face-group id.
	FaceMaps() []float32
}

// Skin resolves vertex-group names to skeleton joints. A group without a
// matching joint simply does not contribute to the skin binding.
type Skin interface {
	Joints() []string
	JointIndex(name string) (int, bool)
}

// MorphTarget holds the per-primitive delta arrays of one morph target.
// Normals and Tangents stay nil when the corresponding export toggles are
// off.
type MorphTarget struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	Tangents  [][3]float32
}

// VertexScalars is a custom per-vertex float attribute, e.g. the weights of
// a vertex group that is not consumed by the skin binding.
type VertexScalars struct {
	Name    string
	Weights []float32
}

// Primitive is one indexed triangle list over a deduplicated vertex set.
// Every attribute slice is either nil or sized to VertexCount().
type Primitive struct {
	// Material is the source material id, or NoMaterial.
	Material int32

	// Indices is a triangle list into the deduplicated vertex set.
	Indices []uint32

	Positions [][3]float32
	Normals   [][3]float32
	Tangents  [][4]float32
	TexCoords [][][2]float32
	Colors    [][][4]float32

	// Joints and Weights hold one entry per joint set (4 influences each).
	Joints  [][][4]uint16
	Weights [][][4]float32

	MorphTargets []MorphTarget
	ExtraGroups  []VertexScalars
	FaceMaps     []float32
}

func (p *Primitive) VertexCount() int {
	return len(p.Positions)
}

// AttributeNames lists the glTF attribute semantics present on this
// primitive, in accessor-writing order.
func (p *Primitive) AttributeNames() []string {
	names := []string{"POSITION"}
	if p.Normals != nil {
		names = append(names, "NORMAL")
	}
	if p.Tangents != nil {
		names = append(names, "TANGENT")
	}
	for i := range p.TexCoords {
		names = append(names, fmt.Sprintf("TEXCOORD_%d", i))
	}
	for i := range p.Colors {
		names = append(names, fmt.Sprintf("COLOR_%d", i))
	}
	for i := range p.Joints {
		names = append(names, fmt.Sprintf("JOINTS_%d", i), fmt.Sprintf("WEIGHTS_%d", i))
	}
	for _, vg := range p.ExtraGroups {
		names = append(names, "_VG_"+vg.Name)
	}
	if p.FaceMaps != nil {
		names = append(names, "_FACEMAPS")
	}
	return names
}
