package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/meshkit/gltf_mesh_exporter/mesh"
)

// Settings is the on-disk export configuration. Material modes are spelled
// out as strings so the YAML stays hand-editable.
type Settings struct {
	Normals       bool   `yaml:"normals"`
	Tangents      bool   `yaml:"tangents"`
	MorphNormals  bool   `yaml:"morph_normals"`
	MorphTangents bool   `yaml:"morph_tangents"`
	TexCoords     bool   `yaml:"tex_coords"`
	Colors        bool   `yaml:"colors"`
	Skins         bool   `yaml:"skins"`
	Materials     string `yaml:"materials"`
	YUp           bool   `yaml:"yup"`
}

func Default() Settings {
	return Settings{
		Normals:       true,
		Tangents:      true,
		MorphNormals:  true,
		MorphTangents: false,
		TexCoords:     true,
		Colors:        true,
		Skins:         true,
		Materials:     "export",
		YUp:           true,
	}
}

var current = Default()

func Current() Settings {
	return current
}

func SetCurrent(s Settings) {
	current = s
}

func Load(path string) (Settings, error) {
	s := Default()
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return s, errors.Wrapf(err, "Failed to read settings %q", path)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "Failed to parse settings %q", path)
	}
	if _, err := s.MaterialMode(); err != nil {
		return s, err
	}
	return s, nil
}

func Save(path string, s Settings) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return errors.Wrapf(err, "Failed to marshal settings")
	}
	if err := ioutil.WriteFile(path, data, 0666); err != nil {
		return errors.Wrapf(err, "Failed to write settings %q", path)
	}
	return nil
}

func (s Settings) MaterialMode() (mesh.MaterialMode, error) {
	switch s.Materials {
	case "", "none":
		return mesh.MaterialsNone, nil
	case "export":
		return mesh.MaterialsExport, nil
	case "placeholder":
		return mesh.MaterialsPlaceholder, nil
	}
	return mesh.MaterialsNone, errors.Errorf("Unknown materials mode %q", s.Materials)
}

// ToMesh converts the file representation to pipeline settings.
func (s Settings) ToMesh() (mesh.Settings, error) {
	mode, err := s.MaterialMode()
	if err != nil {
		return mesh.Settings{}, err
	}
	return mesh.Settings{
		Normals:       s.Normals,
		Tangents:      s.Tangents,
		MorphNormals:  s.MorphNormals,
		MorphTangents: s.MorphTangents,
		TexCoords:     s.TexCoords,
		Colors:        s.Colors,
		Skins:         s.Skins,
		Materials:     mode,
		YUp:           s.YUp,
	}, nil
}
