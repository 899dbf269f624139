package meshfile

import (
	"path/filepath"
	"testing"

	"github.com/meshkit/gltf_mesh_exporter/mesh"
)

var _ mesh.Source = (*Document)(nil)
var _ mesh.Skin = (*Document)(nil)

func sampleDocument() *Document {
	return &Document{
		Name: "tri",
		Vertices: []Vertex{
			{Position: [3]float32{0, 0, 0}, Groups: []GroupWeight{{Group: 0, Weight: 1}}},
			{Position: [3]float32{1, 0, 0}},
			{Position: [3]float32{0, 1, 0}},
		},
		Corners: []Corner{
			{Vertex: 0, Normal: [3]float32{0, 0, 1}, Tangent: [4]float32{1, 0, 0, 1}, UVs: [][2]float32{{0, 0}}},
			{Vertex: 1, Normal: [3]float32{0, 0, 1}, Tangent: [4]float32{1, 0, 0, 1}, UVs: [][2]float32{{1, 0}}},
			{Vertex: 2, Normal: [3]float32{0, 0, 1}, Tangent: [4]float32{1, 0, 0, 1}, UVs: [][2]float32{{0, 1}}},
		},
		Faces:       []Triangle{{Corners: [3]uint32{0, 1, 2}, Material: 0}},
		Groups:      []string{"hip"},
		JointNames:  []string{"hip"},
		HasTangents: true,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.json")
	want := sampleDocument()
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != want.Name {
		t.Errorf("name = %q; expected %q", got.Name, want.Name)
	}
	if got.VertexCount() != 3 || got.CornerCount() != 3 {
		t.Errorf("counts = %d verts, %d corners; expected 3,3", got.VertexCount(), got.CornerCount())
	}
	if len(got.Triangles()) != 3 {
		t.Errorf("triangle corner list = %v; expected 3 entries", got.Triangles())
	}
}

func TestSourceViews(t *testing.T) {
	doc := sampleDocument()

	if !doc.CanComputeTangents() {
		t.Errorf("document with tangents and UVs reports no tangent capability")
	}
	tangents, signs, err := doc.Tangents()
	if err != nil {
		t.Fatal(err)
	}
	if len(tangents) != 3 || signs[0] != 1 {
		t.Errorf("tangents = %v signs = %v", tangents, signs)
	}

	if doc.UVLayerCount() != 1 || doc.ColorLayerCount() != 0 {
		t.Errorf("layer counts = %d uv, %d color; expected 1,0", doc.UVLayerCount(), doc.ColorLayerCount())
	}

	groups := doc.VertexGroups()
	if len(groups[0]) != 1 || groups[0][0].Weight != 1 {
		t.Errorf("vertex 0 groups = %v", groups[0])
	}
	if groups[1] != nil {
		t.Errorf("vertex 1 groups = %v; expected none", groups[1])
	}

	if joint, ok := doc.JointIndex("hip"); !ok || joint != 0 {
		t.Errorf("JointIndex(hip) = %d,%v; expected 0,true", joint, ok)
	}
	if _, ok := doc.JointIndex("tail"); ok {
		t.Errorf("JointIndex(tail) resolved; expected miss")
	}
}

func TestNoTangents(t *testing.T) {
	doc := sampleDocument()
	doc.HasTangents = false
	if doc.CanComputeTangents() {
		t.Errorf("document without tangents reports capability")
	}
	if _, _, err := doc.Tangents(); err == nil {
		t.Errorf("Tangents() on tangent-less document did not fail")
	}
}

func TestExtractFromDocument(t *testing.T) {
	doc := sampleDocument()
	settings := mesh.Settings{
		Normals:   true,
		Tangents:  true,
		TexCoords: true,
		Skins:     true,
		Materials: mesh.MaterialsExport,
	}
	prims := mesh.ExtractPrimitives(doc, doc, nil, settings, nil)

	if len(prims) != 1 {
		t.Fatalf("got %d primitives; expected 1", len(prims))
	}
	p := prims[0]
	if p.VertexCount() != 3 || p.Tangents == nil || len(p.Joints) != 1 {
		t.Errorf("primitive = %d verts, tangents %v, %d joint sets", p.VertexCount(), p.Tangents != nil, len(p.Joints))
	}
}
