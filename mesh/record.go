package mesh

import (
	"encoding/binary"
	"math"
)

// dotSchema describes the composite corner record ("dot") layout of one
// extraction run. The field set is fixed once per run from the active
// attribute toggles; two corners are interchangeable iff their packed
// records are byte-equal.
type dotSchema struct {
	normals          bool
	tangents         bool
	uvCount          int
	colorCount       int
	morphNormalCount int
	faceMaps         bool
}

// stride is the packed record size in bytes: the source vertex index plus
// one 32-bit scalar per active attribute component.
func (s dotSchema) stride() int {
	scalars := 1
	if s.normals {
		scalars += 3
	}
	if s.tangents {
		scalars += 4
	}
	scalars += 2 * s.uvCount
	scalars += 4 * s.colorCount
	scalars += 3 * s.morphNormalCount
	if s.faceMaps {
		scalars++
	}
	return scalars * 4
}

// buildDots packs one record per corner. Records are compared raw, so float
// scalars are stored as their IEEE-754 bit patterns.
func buildDots(s dotSchema, cornerVerts []uint32, sam *sampled) []byte {
	stride := s.stride()
	dots := make([]byte, len(cornerVerts)*stride)

	off := 0
	putU32 := func(v uint32) {
		binary.LittleEndian.PutUint32(dots[off:], v)
		off += 4
	}
	putF32 := func(v float32) {
		putU32(math.Float32bits(v))
	}

	for c := range cornerVerts {
		putU32(cornerVerts[c])
		if s.normals {
			n := sam.normals[c]
			putF32(n[0])
			putF32(n[1])
			putF32(n[2])
		}
		if s.tangents {
			t := sam.tangents[c]
			putF32(t[0])
			putF32(t[1])
			putF32(t[2])
			putF32(sam.bitangentSigns[c])
		}
		for l := 0; l < s.uvCount; l++ {
			uv := sam.uvs[l][c]
			putF32(uv[0])
			putF32(uv[1])
		}
		for l := 0; l < s.colorCount; l++ {
			col := sam.colors[l][c]
			putF32(col[0])
			putF32(col[1])
			putF32(col[2])
			putF32(col[3])
		}
		for m := 0; m < s.morphNormalCount; m++ {
			n := sam.morphNormals[m][c]
			putF32(n[0])
			putF32(n[1])
			putF32(n[2])
		}
		if s.faceMaps {
			putF32(sam.faceMaps[c])
		}
	}
	return dots
}
