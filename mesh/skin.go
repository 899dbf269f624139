package mesh

import "sort"

// jointInfluence is one resolved (joint, weight) pair of a vertex.
type jointInfluence struct {
	joint  uint32
	weight float32
}

// gatherVertexBones resolves every vertex's group influences to joint
// influences, sorted weight-descending. Influences with non-positive weight
// or without a joint mapping are dropped; both happen in normal authoring
// workflows and are not worth a warning. A vertex left without influences
// gets a synthetic full-weight binding to joint 0 so it stays renderable.
// numJointSets is how many groups of 4 influence slots the widest vertex
// needs.
func gatherVertexBones(src Source, skin Skin) (vertBones [][]jointInfluence, numJointSets int) {
	names := src.GroupNames()
	groupToJoint := make([]int, len(names))
	for i, name := range names {
		if joint, ok := skin.JointIndex(name); ok {
			groupToJoint[i] = joint
		} else {
			groupToJoint[i] = -1
		}
	}

	groups := src.VertexGroups()
	vertBones = make([][]jointInfluence, src.VertexCount())
	maxInfluences := 0

	for vi := range vertBones {
		var bones []jointInfluence
		if vi < len(groups) {
			for _, gw := range groups[vi] {
				if gw.Weight <= 0 {
					continue
				}
				if int(gw.Group) >= len(groupToJoint) {
					continue
				}
				joint := groupToJoint[gw.Group]
				if joint < 0 {
					continue
				}
				bones = append(bones, jointInfluence{joint: uint32(joint), weight: gw.Weight})
			}
		}
		// Stable keeps the source group order for equal weights.
		sort.SliceStable(bones, func(i, j int) bool { return bones[i].weight > bones[j].weight })
		if len(bones) == 0 {
			bones = []jointInfluence{{joint: 0, weight: 1}}
		}
		vertBones[vi] = bones
		if len(bones) > maxInfluences {
			maxInfluences = len(bones)
		}
	}

	numJointSets = (maxInfluences + 3) / 4
	return vertBones, numJointSets
}

// packInfluences lays the influence lists of the given deduplicated vertices
// out as numJointSets parallel joint/weight arrays, zero-padding past the
// end of each vertex's own list.
func packInfluences(vertBones [][]jointInfluence, numJointSets int, verts []uint32) (joints [][][4]uint16, weights [][][4]float32) {
	joints = make([][][4]uint16, numJointSets)
	weights = make([][][4]float32, numJointSets)
	for set := 0; set < numJointSets; set++ {
		joints[set] = make([][4]uint16, len(verts))
		weights[set] = make([][4]float32, len(verts))
	}

	for k, vi := range verts {
		bones := vertBones[vi]
		for j := 0; j < 4*numJointSets; j++ {
			var joint uint16
			var weight float32
			if j < len(bones) {
				joint = uint16(bones[j].joint)
				weight = bones[j].weight
			}
			joints[j/4][k][j%4] = joint
			weights[j/4][k][j%4] = weight
		}
	}
	return joints, weights
}
