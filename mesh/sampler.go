package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// sampled holds the flat post-transform attribute arrays of one extraction
// run. Position-like data is per vertex, everything else per corner. Morph
// arrays already contain deltas against the base arrays.
type sampled struct {
	positions      []mgl32.Vec3
	morphPositions [][]mgl32.Vec3

	normals      []mgl32.Vec3
	morphNormals [][]mgl32.Vec3

	tangents       []mgl32.Vec3
	bitangentSigns []float32

	uvs    [][]mgl32.Vec2
	colors [][]mgl32.Vec4

	faceMaps []float32
}

// samplePositions fetches base and morph-target positions, re-bases them and
// converts morph targets to deltas. Deltas are computed after the transform
// so that re-exporting a transformed mesh reproduces them bit for bit.
func samplePositions(src Source, morphTargets int, t *spaceTransform, yup bool) (locs []mgl32.Vec3, morphLocs [][]mgl32.Vec3) {
	locs = append([]mgl32.Vec3(nil), src.Positions()...)
	for i := range locs {
		locs[i] = t.applyToPosition(locs[i])
	}

	morphLocs = make([][]mgl32.Vec3, morphTargets)
	for m := range morphLocs {
		vs := append([]mgl32.Vec3(nil), src.MorphPositions(m)...)
		for i := range vs {
			vs[i] = t.applyToPosition(vs[i]).Sub(locs[i])
		}
		morphLocs[m] = vs
	}

	if yup {
		for i := range locs {
			locs[i] = zupToYup(locs[i])
		}
		for _, vs := range morphLocs {
			for i := range vs {
				vs[i] = zupToYup(vs[i])
			}
		}
	}
	return locs, morphLocs
}

// sampleNormals fetches per-corner split normals and, when requested, the
// morph-target normals as deltas.
func sampleNormals(src Source, morphTargets int, t *spaceTransform, yup bool) (normals []mgl32.Vec3, morphNormals [][]mgl32.Vec3) {
	normals = append([]mgl32.Vec3(nil), src.Normals()...)
	for i := range normals {
		normals[i] = guardZeroNormal(t.applyToNormal(normals[i]))
	}

	morphNormals = make([][]mgl32.Vec3, morphTargets)
	for m := range morphNormals {
		ns := append([]mgl32.Vec3(nil), src.MorphNormals(m)...)
		for i := range ns {
			ns[i] = guardZeroNormal(t.applyToNormal(ns[i])).Sub(normals[i])
		}
		morphNormals[m] = ns
	}

	if yup {
		for i := range normals {
			normals[i] = zupToYup(normals[i])
		}
		for _, ns := range morphNormals {
			for i := range ns {
				ns[i] = zupToYup(ns[i])
			}
		}
	}
	return normals, morphNormals
}

// sampleTangents fetches per-corner tangents and bitangent signs. The sign
// flips when the re-basing transform mirrors handedness; the Y-up remap does
// not touch it.
func sampleTangents(src Source, t *spaceTransform, yup bool) (tangents []mgl32.Vec3, signs []float32, err error) {
	tangents, signs, err = src.Tangents()
	if err != nil {
		return nil, nil, err
	}
	tangents = append([]mgl32.Vec3(nil), tangents...)
	signs = append([]float32(nil), signs...)

	for i := range tangents {
		tangents[i] = t.applyToTangent(tangents[i])
	}
	if t.flipBitangent {
		for i := range signs {
			signs[i] = -signs[i]
		}
	}
	if yup {
		for i := range tangents {
			tangents[i] = zupToYup(tangents[i])
		}
	}
	return tangents, signs, nil
}

// sampleUVs converts one UV layer from the host's bottom-left origin to the
// glTF top-left origin (u, 1-v).
func sampleUVs(src Source, layer int) []mgl32.Vec2 {
	uvs := append([]mgl32.Vec2(nil), src.UVs(layer)...)
	for i := range uvs {
		uvs[i][1] = 1 - uvs[i][1]
	}
	return uvs
}

// sampleColors converts one sRGB color layer to linear. Alpha stays as is.
func sampleColors(src Source, layer int) []mgl32.Vec4 {
	colors := append([]mgl32.Vec4(nil), src.Colors(layer)...)
	for i := range colors {
		for c := 0; c < 3; c++ {
			colors[i][c] = srgbToLinear(colors[i][c])
		}
	}
	return colors
}

func srgbToLinear(c float32) float32 {
	if c < 0 {
		return 0
	}
	if c < 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow(float64(c+0.055)/1.055, 2.4))
}

// sampleExtraGroups collects per-vertex weights of vertex groups that are
// not consumed by the skin binding, keeping source group order. Returns nil
// when every group is a skinning group.
func sampleExtraGroups(src Source, skin Skin, skinsEnabled bool) []VertexScalars {
	names := src.GroupNames()
	if len(names) == 0 {
		return nil
	}

	skinning := make(map[int]bool)
	if skinsEnabled && skin != nil {
		for i, name := range names {
			if _, ok := skin.JointIndex(name); ok {
				skinning[i] = true
			}
		}
	}
	if len(skinning) == len(names) {
		return nil
	}

	groups := src.VertexGroups()
	extra := make([]VertexScalars, 0, len(names)-len(skinning))
	for i, name := range names {
		if skinning[i] {
			continue
		}
		weights := make([]float32, src.VertexCount())
		for vi, influences := range groups {
			for _, gw := range influences {
				if int(gw.Group) == i {
					weights[vi] = gw.Weight
					break
				}
			}
		}
		extra = append(extra, VertexScalars{Name: name, Weights: weights})
	}
	return extra
}
