package config

import (
	"path/filepath"
	"testing"

	"github.com/meshkit/gltf_mesh_exporter/mesh"
)

func TestMaterialModes(t *testing.T) {
	tests := []struct {
		in   string
		mode mesh.MaterialMode
		err  bool
	}{
		{"", mesh.MaterialsNone, false},
		{"none", mesh.MaterialsNone, false},
		{"export", mesh.MaterialsExport, false},
		{"placeholder", mesh.MaterialsPlaceholder, false},
		{"EXPORT", mesh.MaterialsNone, true},
		{"nope", mesh.MaterialsNone, true},
	}
	for _, test := range tests {
		s := Settings{Materials: test.in}
		mode, err := s.MaterialMode()
		if (err != nil) != test.err {
			t.Errorf("MaterialMode(%q) error = %v; expected error %v", test.in, err, test.err)
			continue
		}
		if err == nil && mode != test.mode {
			t.Errorf("MaterialMode(%q) = %v; expected %v", test.in, mode, test.mode)
		}
	}
}

func TestDefaultsConvert(t *testing.T) {
	s, err := Default().ToMesh()
	if err != nil {
		t.Fatalf("default settings do not convert: %v", err)
	}
	if !s.Normals || !s.TexCoords || s.Materials != mesh.MaterialsExport {
		t.Errorf("unexpected defaults: %+v", s)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.yaml")
	want := Settings{
		Normals:   true,
		TexCoords: true,
		Materials: "placeholder",
		YUp:       true,
	}
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("loaded %+v; expected %+v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("loading a missing file did not fail")
	}
}
