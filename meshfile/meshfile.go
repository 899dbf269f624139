// Package meshfile is a plain JSON container for triangulated meshes with
// per-vertex and per-corner attributes. It feeds the extraction pipeline in
// the CLI and the preview server, standing in for a live host document.
package meshfile

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
)

type GroupWeight struct {
	Group  uint32  `json:"group"`
	Weight float32 `json:"weight"`
}

type Vertex struct {
	Position [3]float32    `json:"position"`
	Groups   []GroupWeight `json:"groups,omitempty"`
}

type Corner struct {
	Vertex  uint32       `json:"vertex"`
	Normal  [3]float32   `json:"normal"`
	Tangent [4]float32   `json:"tangent,omitempty"`
	UVs     [][2]float32 `json:"uvs,omitempty"`
	Colors  [][4]float32 `json:"colors,omitempty"`
}

type Triangle struct {
	Corners  [3]uint32 `json:"corners"`
	Material int32     `json:"material"`
}

// MorphTarget stores absolute morphed values: positions per vertex, normals
// per corner. The pipeline converts them to deltas.
type MorphTarget struct {
	Name      string       `json:"name"`
	Positions [][3]float32 `json:"positions"`
	Normals   [][3]float32 `json:"normals,omitempty"`
}

type Document struct {
	Name         string        `json:"name"`
	Vertices     []Vertex      `json:"vertices"`
	Corners      []Corner      `json:"corners"`
	Faces        []Triangle    `json:"triangles"`
	Groups       []string      `json:"groupNames,omitempty"`
	JointNames   []string      `json:"joints,omitempty"`
	MorphTargets []MorphTarget `json:"morphTargets,omitempty"`
	HasTangents  bool          `json:"hasTangents,omitempty"`
	FaceMapping  []float32     `json:"faceMaps,omitempty"`
}

func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open mesh file %q", path)
	}
	defer f.Close()

	data, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read mesh file %q", path)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal mesh file %q", path)
	}
	return &doc, nil
}

func Save(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "Failed to marshal mesh %q", doc.Name)
	}
	if err := ioutil.WriteFile(path, data, 0666); err != nil {
		return errors.Wrapf(err, "Failed to write mesh file %q", path)
	}
	return nil
}
