package mesh

import "sort"

// cornerBucket is one material partition of the triangle corner stream.
type cornerBucket struct {
	material int32
	corners  []uint32
}

// bucketByMaterial partitions triangle corners by material id, visiting ids
// in ascending order. In MaterialsNone mode all corners land in a single
// NoMaterial bucket. Triangles without a material entry count as id 0.
func bucketByMaterial(triCorners []uint32, triMaterials []int32, mode MaterialMode) []cornerBucket {
	if mode == MaterialsNone {
		return []cornerBucket{{material: NoMaterial, corners: triCorners}}
	}

	byMaterial := make(map[int32][]uint32)
	for tri := 0; tri*3+2 < len(triCorners); tri++ {
		var material int32
		if tri < len(triMaterials) {
			material = triMaterials[tri]
		}
		byMaterial[material] = append(byMaterial[material], triCorners[tri*3:tri*3+3]...)
	}

	materials := make([]int32, 0, len(byMaterial))
	for material := range byMaterial {
		materials = append(materials, material)
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i] < materials[j] })

	buckets := make([]cornerBucket, 0, len(materials))
	for _, material := range materials {
		buckets = append(buckets, cornerBucket{material: material, corners: byMaterial[material]})
	}
	return buckets
}
