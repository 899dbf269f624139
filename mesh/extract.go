package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ExtractPrimitives splits the host mesh's per-corner attributes into
// deduplicated vertex-buffer primitives, one per present material. transform
// is the optional armature-space re-basing matrix applied to positions,
// normals and tangents before anything else. skin may be nil; without it no
// joint/weight attributes are produced. The pipeline never fails: attribute
// problems degrade feature by feature and a mesh without triangles yields an
// empty primitive list.
func ExtractPrimitives(src Source, skin Skin, transform *mgl32.Mat4, settings Settings, log *Logger) []*Primitive {
	log.Infof("extracting primitives: %d vertices, %d corners", src.VertexCount(), src.CornerCount())

	t := newSpaceTransform(transform)

	useNormals := settings.Normals

	morphCount := src.MorphTargetCount()
	useMorphNormals := useNormals && settings.MorphNormals && morphCount > 0

	sam := &sampled{}
	sam.positions, sam.morphPositions = samplePositions(src, morphCount, &t, settings.YUp)

	useTangents := false
	if useNormals {
		normalTargets := 0
		if useMorphNormals {
			normalTargets = morphCount
		}
		sam.normals, sam.morphNormals = sampleNormals(src, normalTargets, &t, settings.YUp)

		if settings.Tangents && src.CanComputeTangents() {
			tangents, signs, err := sampleTangents(src, &t, settings.YUp)
			if err != nil {
				log.Warnf("could not compute tangents, exporting without them: %v", err)
			} else {
				sam.tangents, sam.bitangentSigns = tangents, signs
				useTangents = true
			}
		}
	}
	useMorphTangents := useMorphNormals && useTangents && settings.MorphTangents

	texCoordCount := 0
	if settings.TexCoords {
		texCoordCount = src.UVLayerCount()
	}
	sam.uvs = make([][]mgl32.Vec2, texCoordCount)
	for l := 0; l < texCoordCount; l++ {
		sam.uvs[l] = sampleUVs(src, l)
	}

	colorCount := 0
	if settings.Colors {
		colorCount = src.ColorLayerCount()
	}
	sam.colors = make([][]mgl32.Vec4, colorCount)
	for l := 0; l < colorCount; l++ {
		sam.colors[l] = sampleColors(src, l)
	}

	useFaceMaps := src.HasFaceMaps()
	if useFaceMaps {
		sam.faceMaps = src.FaceMaps()
	}

	skinActive := settings.Skins && skin != nil && len(skin.Joints()) > 0
	var vertBones [][]jointInfluence
	numJointSets := 0
	if skinActive {
		vertBones, numJointSets = gatherVertexBones(src, skin)
	}
	extraGroups := sampleExtraGroups(src, skin, skinActive)

	schema := dotSchema{
		normals:    useNormals,
		tangents:   useTangents,
		uvCount:    texCoordCount,
		colorCount: colorCount,
		faceMaps:   useFaceMaps,
	}
	if useMorphNormals {
		schema.morphNormalCount = morphCount
	}
	cornerVerts := src.CornerVertices()
	dots := buildDots(schema, cornerVerts, sam)
	stride := schema.stride()

	buckets := bucketByMaterial(src.Triangles(), src.TriangleMaterials(), settings.Materials)

	primitives := make([]*Primitive, 0, len(buckets))
	for _, bucket := range buckets {
		firstCorners, indices := dedupDots(dots, stride, bucket.corners)
		if len(firstCorners) == 0 {
			continue
		}

		prim := &Primitive{
			Material: bucket.material,
			Indices:  indices,
		}

		verts := make([]uint32, len(firstCorners))
		for k, c := range firstCorners {
			verts[k] = cornerVerts[c]
		}

		prim.Positions = gatherVec3PerVertex(sam.positions, verts)

		if useNormals {
			prim.Normals = gatherVec3PerCorner(sam.normals, firstCorners)
		}
		if useTangents {
			prim.Tangents = make([][4]float32, len(firstCorners))
			for k, c := range firstCorners {
				tan := sam.tangents[c]
				prim.Tangents[k] = [4]float32{tan[0], tan[1], tan[2], sam.bitangentSigns[c]}
			}
		}

		prim.TexCoords = make([][][2]float32, texCoordCount)
		for l := 0; l < texCoordCount; l++ {
			uvs := make([][2]float32, len(firstCorners))
			for k, c := range firstCorners {
				uv := sam.uvs[l][c]
				uvs[k] = [2]float32{uv[0], uv[1]}
			}
			prim.TexCoords[l] = uvs
		}

		prim.Colors = make([][][4]float32, colorCount)
		for l := 0; l < colorCount; l++ {
			colors := make([][4]float32, len(firstCorners))
			for k, c := range firstCorners {
				col := sam.colors[l][c]
				colors[k] = [4]float32{col[0], col[1], col[2], col[3]}
			}
			prim.Colors[l] = colors
		}

		if morphCount > 0 {
			prim.MorphTargets = make([]MorphTarget, morphCount)
			for m := 0; m < morphCount; m++ {
				target := MorphTarget{
					Name:      src.MorphTargetName(m),
					Positions: gatherVec3PerVertex(sam.morphPositions[m], verts),
				}
				if useMorphNormals {
					target.Normals = gatherVec3PerCorner(sam.morphNormals[m], firstCorners)
					if useMorphTangents {
						target.Tangents = morphTangentDeltas(prim.Normals, target.Normals, prim.Tangents)
					}
				}
				prim.MorphTargets[m] = target
			}
		}

		if skinActive {
			prim.Joints, prim.Weights = packInfluences(vertBones, numJointSets, verts)
		}

		for _, vg := range extraGroups {
			weights := make([]float32, len(verts))
			for k, vi := range verts {
				weights[k] = vg.Weights[vi]
			}
			prim.ExtraGroups = append(prim.ExtraGroups, VertexScalars{Name: vg.Name, Weights: weights})
		}

		if useFaceMaps {
			prim.FaceMaps = make([]float32, len(firstCorners))
			for k, c := range firstCorners {
				prim.FaceMaps[k] = sam.faceMaps[c]
			}
		}

		primitives = append(primitives, prim)
	}

	log.Infof("primitives created: %d", len(primitives))
	return primitives
}

func gatherVec3PerVertex(data []mgl32.Vec3, verts []uint32) [][3]float32 {
	out := make([][3]float32, len(verts))
	for k, vi := range verts {
		v := data[vi]
		out[k] = [3]float32{v[0], v[1], v[2]}
	}
	return out
}

func gatherVec3PerCorner(data []mgl32.Vec3, corners []uint32) [][3]float32 {
	out := make([][3]float32, len(corners))
	for k, c := range corners {
		v := data[c]
		out[k] = [3]float32{v[0], v[1], v[2]}
	}
	return out
}
