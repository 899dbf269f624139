package gltfutils

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/meshkit/gltf_mesh_exporter/mesh"
	"github.com/meshkit/gltf_mesh_exporter/utils"
)

func NewDocument() *gltf.Document {
	return gltf.NewDocument()
}

// AddMesh writes the extracted primitives of one mesh into the document and
// returns the glTF mesh index. Attribute-slot data becomes named accessors
// here; nothing before this point deals in glTF attribute semantics.
func AddMesh(doc *gltf.Document, name string, prims []*mesh.Primitive, materials mesh.MaterialMode, names *utils.RandomNameGenerator) uint32 {
	gltfMesh := &gltf.Mesh{Name: name}
	docMaterials := make(map[int32]uint32)

	for _, prim := range prims {
		attributes := make(map[string]uint32)

		attributes["POSITION"] = modeler.WritePosition(doc, prim.Positions)
		if prim.Normals != nil {
			attributes["NORMAL"] = modeler.WriteNormal(doc, prim.Normals)
		}
		if prim.Tangents != nil {
			attributes["TANGENT"] = modeler.WriteTangent(doc, prim.Tangents)
		}
		for iLayer, uvs := range prim.TexCoords {
			attributes[fmt.Sprintf("TEXCOORD_%d", iLayer)] = modeler.WriteTextureCoord(doc, uvs)
		}
		for iLayer, colors := range prim.Colors {
			attributes[fmt.Sprintf("COLOR_%d", iLayer)] = modeler.WriteColor(doc, colors)
		}
		for iSet := range prim.Joints {
			attributes[fmt.Sprintf("JOINTS_%d", iSet)] = modeler.WriteJoints(doc, prim.Joints[iSet])
			attributes[fmt.Sprintf("WEIGHTS_%d", iSet)] = modeler.WriteWeights(doc, prim.Weights[iSet])
		}
		for _, vg := range prim.ExtraGroups {
			attributes["_VG_"+vg.Name] = writeFloatScalars(doc, vg.Weights)
		}
		if prim.FaceMaps != nil {
			attributes["_FACEMAPS"] = writeFloatScalars(doc, prim.FaceMaps)
		}

		var targets []map[string]uint32
		var targetNames []string
		for _, morph := range prim.MorphTargets {
			target := map[string]uint32{
				"POSITION": modeler.WritePosition(doc, morph.Positions),
			}
			if morph.Normals != nil {
				target["NORMAL"] = modeler.WriteNormal(doc, morph.Normals)
			}
			if morph.Tangents != nil {
				target["TANGENT"] = modeler.WriteNormal(doc, morph.Tangents)
			}
			targets = append(targets, target)
			targetNames = append(targetNames, morph.Name)
		}

		indicesAccessor := modeler.WriteIndices(doc, prim.Indices)
		gltfPrim := &gltf.Primitive{
			Indices:    &indicesAccessor,
			Attributes: attributes,
			Targets:    targets,
		}

		if materials != mesh.MaterialsNone && prim.Material != mesh.NoMaterial {
			materialIndex, ok := docMaterials[prim.Material]
			if !ok {
				materialName := fmt.Sprintf("material_%d", prim.Material)
				if materials == mesh.MaterialsPlaceholder {
					materialName = names.RandomName()
				}
				doc.Materials = append(doc.Materials, &gltf.Material{
					Name:        materialName,
					DoubleSided: true,
				})
				materialIndex = uint32(len(doc.Materials) - 1)
				docMaterials[prim.Material] = materialIndex
			}
			gltfPrim.Material = gltf.Index(materialIndex)
		}

		if targetNames != nil {
			gltfMesh.Extras = map[string]interface{}{"targetNames": targetNames}
		}
		gltfMesh.Primitives = append(gltfMesh.Primitives, gltfPrim)
	}

	doc.Meshes = append(doc.Meshes, gltfMesh)
	return uint32(len(doc.Meshes) - 1)
}

// AddMeshNode attaches a mesh to a new node in the default scene.
func AddMeshNode(doc *gltf.Document, meshIndex uint32, name string) uint32 {
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: name,
		Mesh: gltf.Index(meshIndex),
	})
	nodeIndex := uint32(len(doc.Nodes) - 1)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, nodeIndex)
	return nodeIndex
}

func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}

// writeFloatScalars is the custom-attribute sibling of the modeler writers:
// one float32 scalar accessor appended to the document's binary buffer.
func writeFloatScalars(doc *gltf.Document, data []float32) uint32 {
	if len(doc.Buffers) == 0 {
		doc.Buffers = append(doc.Buffers, &gltf.Buffer{})
	}
	buffer := doc.Buffers[len(doc.Buffers)-1]

	offset := uint32(len(buffer.Data))
	raw := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	buffer.Data = append(buffer.Data, raw...)
	buffer.ByteLength = uint32(len(buffer.Data))

	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     uint32(len(doc.Buffers) - 1),
		ByteOffset: offset,
		ByteLength: uint32(len(raw)),
		Target:     gltf.TargetArrayBuffer,
	})
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    gltf.Index(uint32(len(doc.BufferViews) - 1)),
		ComponentType: gltf.ComponentFloat,
		Type:          gltf.AccessorScalar,
		Count:         uint32(len(data)),
	})
	return uint32(len(doc.Accessors) - 1)
}
