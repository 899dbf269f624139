package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// spaceTransform is the armature-space re-basing applied while sampling.
// Positions take the full affine matrix, normals its inverse-transposed
// linear part, tangents only the rotational part.
type spaceTransform struct {
	valid         bool
	position      mgl32.Mat4
	normal        mgl32.Mat3
	tangent       mgl32.Mat3
	flipBitangent bool
}

func newSpaceTransform(m *mgl32.Mat4) spaceTransform {
	if m == nil {
		return spaceTransform{}
	}
	linear := m.Mat3()
	return spaceTransform{
		valid:    true,
		position: *m,
		// Inverse-transpose keeps normals perpendicular under
		// non-uniform scale.
		normal:  linear.Inv().Transpose(),
		tangent: mgl32.Mat4ToQuat(*m).Normalize().Mat4().Mat3(),
		// Mirrored transforms swap the tangent-space handedness.
		flipBitangent: linear.Det() < 0,
	}
}

func (t *spaceTransform) applyToPosition(v mgl32.Vec3) mgl32.Vec3 {
	if !t.valid {
		return v
	}
	return t.position.Mul4x1(v.Vec4(1)).Vec3()
}

func (t *spaceTransform) applyToNormal(v mgl32.Vec3) mgl32.Vec3 {
	if !t.valid {
		return v
	}
	return safeNormalize(t.normal.Mul3x1(v))
}

func (t *spaceTransform) applyToTangent(v mgl32.Vec3) mgl32.Vec3 {
	if !t.valid {
		return v
	}
	return safeNormalize(t.tangent.Mul3x1(v))
}

// safeNormalize leaves zero-length vectors untouched, matching the
// divide-where-nonzero semantics the rest of the pipeline relies on.
func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// guardZeroNormal substitutes the canonical up vector for degenerate
// normals. Happens on degenerate triangles; common enough to not warn.
func guardZeroNormal(v mgl32.Vec3) mgl32.Vec3 {
	if v[0] == 0 && v[1] == 0 && v[2] == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return v
}

// zupToYup remaps x,y,z -> x,z,-y. The bitangent sign is unaffected by this
// remap.
func zupToYup(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[2], -v[1]}
}
