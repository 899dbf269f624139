package mesh

import "github.com/go-gl/mathgl/mgl32"

// morphTangentDeltas derives morph-target tangent deltas from the already
// deduplicated normal, morph-normal-delta and tangent arrays of a primitive:
// for every vertex, the minimal rotation mapping the base normal onto the
// morphed normal is applied to the base tangent, and the difference to the
// base tangent is the delta.
//
// This is a rotation-difference transfer and assumes the tangent rotates
// rigidly with the normal. It is an approximation, not an exact morphed
// tangent basis; hosts that need exact results have to supply morphed
// tangents themselves.
func morphTangentDeltas(normals, morphNormalDeltas [][3]float32, tangents [][4]float32) [][3]float32 {
	deltas := make([][3]float32, len(normals))

	for i := range normals {
		n := mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
		morphN := n.Add(mgl32.Vec3{morphNormalDeltas[i][0], morphNormalDeltas[i][1], morphNormalDeltas[i][2]})
		if n.Len() == 0 || morphN.Len() == 0 {
			continue
		}
		t := mgl32.Vec3{tangents[i][0], tangents[i][1], tangents[i][2]}

		rotated := mgl32.QuatBetweenVectors(n, morphN).Rotate(t)
		delta := rotated.Sub(t)
		deltas[i] = [3]float32{delta[0], delta[1], delta[2]}
	}
	return deltas
}
