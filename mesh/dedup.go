package mesh

// dedupDots deduplicates the corners of one material bucket by exact record
// equality. It returns the corner index of the first occurrence of every
// distinct record, ordered by first appearance, and for every input corner
// the index of its record in that sequence. Equality is deliberately exact:
// corners meant to share a glTF vertex carry bit-identical attributes, and
// tolerant matching would silently merge visually distinct normals or UVs.
func dedupDots(dots []byte, stride int, corners []uint32) (firstCorners []uint32, indices []uint32) {
	seen := make(map[string]uint32, len(corners))
	indices = make([]uint32, len(corners))

	for i, c := range corners {
		key := string(dots[int(c)*stride : (int(c)+1)*stride])
		id, ok := seen[key]
		if !ok {
			id = uint32(len(firstCorners))
			seen[key] = id
			firstCorners = append(firstCorners, c)
		}
		indices[i] = id
	}
	return firstCorners, indices
}
