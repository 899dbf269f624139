package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func skinnedTriangle() *testMesh {
	return &testMesh{
		verts:       []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		cornerVerts: []uint32{0, 1, 2},
		normals:     []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		tris:        []uint32{0, 1, 2},
		triMats:     []int32{0},
		groupNames:  []string{"hip", "chest", "prop"},
		joints:      []string{"hip", "chest"},
	}
}

func TestSyntheticInfluence(t *testing.T) {
	src := skinnedTriangle()
	// no vertex has any influence
	prims := ExtractPrimitives(src, src, nil, Settings{Normals: true, Skins: true}, nil)

	if len(prims) != 1 {
		t.Fatalf("got %d primitives; expected 1", len(prims))
	}
	p := prims[0]
	if len(p.Joints) != 1 || len(p.Weights) != 1 {
		t.Fatalf("got %d joint sets; expected 1", len(p.Joints))
	}
	for vi := 0; vi < p.VertexCount(); vi++ {
		if p.Joints[0][vi] != [4]uint16{0, 0, 0, 0} {
			t.Errorf("vertex %d joints = %v; expected synthetic joint 0", vi, p.Joints[0][vi])
		}
		if p.Weights[0][vi] != [4]float32{1, 0, 0, 0} {
			t.Errorf("vertex %d weights = %v; expected synthetic weight 1", vi, p.Weights[0][vi])
		}
	}
}

func TestInfluenceSortAndPadding(t *testing.T) {
	src := skinnedTriangle()
	src.groups = [][]GroupWeight{
		{{Group: 0, Weight: 0.25}, {Group: 1, Weight: 0.75}},
		{{Group: 1, Weight: 1}},
		{},
	}
	vertBones, sets := gatherVertexBones(src, src)

	if sets != 1 {
		t.Fatalf("numJointSets = %d; expected 1", sets)
	}
	if len(vertBones[0]) != 2 || vertBones[0][0].joint != 1 || vertBones[0][1].joint != 0 {
		t.Errorf("vertex 0 bones = %v; expected weight-descending order", vertBones[0])
	}
	if len(vertBones[2]) != 1 || vertBones[2][0] != (jointInfluence{joint: 0, weight: 1}) {
		t.Errorf("vertex 2 bones = %v; expected synthetic influence", vertBones[2])
	}

	joints, weights := packInfluences(vertBones, sets, []uint32{0, 1, 2})
	if joints[0][0] != [4]uint16{1, 0, 0, 0} {
		t.Errorf("packed joints = %v; expected [1 0 0 0]", joints[0][0])
	}
	if weights[0][0] != [4]float32{0.75, 0.25, 0, 0} {
		t.Errorf("packed weights = %v; expected [0.75 0.25 0 0]", weights[0][0])
	}
	for vi := range weights[0] {
		for _, w := range weights[0][vi] {
			if w < 0 {
				t.Errorf("vertex %d carries negative weight %v", vi, w)
			}
		}
	}
}

func TestSecondJointSet(t *testing.T) {
	src := skinnedTriangle()
	src.joints = []string{"a", "b", "c", "d", "e", "f"}
	src.groupNames = []string{"a", "b", "c", "d", "e", "f"}
	src.groups = [][]GroupWeight{
		{
			{Group: 0, Weight: 0.3}, {Group: 1, Weight: 0.2},
			{Group: 2, Weight: 0.2}, {Group: 3, Weight: 0.1},
			{Group: 4, Weight: 0.1}, {Group: 5, Weight: 0.1},
		},
		{{Group: 0, Weight: 1}},
		{{Group: 1, Weight: 1}},
	}
	vertBones, sets := gatherVertexBones(src, src)
	if sets != 2 {
		t.Fatalf("numJointSets = %d; expected 2", sets)
	}
	joints, weights := packInfluences(vertBones, sets, []uint32{0, 1, 2})
	if len(joints) != 2 || len(weights) != 2 {
		t.Fatalf("packed %d sets; expected 2", len(joints))
	}
	// six influences: four in set 0, two plus padding in set 1
	if joints[1][0][2] != 0 || weights[1][0][2] != 0 {
		t.Errorf("padding slot = (%d,%v); expected zeros", joints[1][0][2], weights[1][0][2])
	}
	if weights[1][1] != [4]float32{} {
		t.Errorf("single-influence vertex leaked into set 1: %v", weights[1][1])
	}
}

func TestUnmappedGroupDropped(t *testing.T) {
	src := skinnedTriangle()
	src.groups = [][]GroupWeight{
		// "prop" (group 2) has no joint; group 9 does not exist
		{{Group: 2, Weight: 0.9}, {Group: 0, Weight: 0.1}},
		{{Group: 9, Weight: 1}},
		{{Group: 1, Weight: -0.5}},
	}
	vertBones, _ := gatherVertexBones(src, src)

	if len(vertBones[0]) != 1 || vertBones[0][0].joint != 0 {
		t.Errorf("vertex 0 bones = %v; expected only the mapped influence", vertBones[0])
	}
	// out-of-range group and non-positive weight fall back to synthetic
	for _, vi := range []int{1, 2} {
		if len(vertBones[vi]) != 1 || vertBones[vi][0] != (jointInfluence{joint: 0, weight: 1}) {
			t.Errorf("vertex %d bones = %v; expected synthetic influence", vi, vertBones[vi])
		}
	}
}

func TestExtraGroupsSampled(t *testing.T) {
	src := skinnedTriangle()
	src.groups = [][]GroupWeight{
		{{Group: 0, Weight: 1}, {Group: 2, Weight: 0.5}},
		{{Group: 2, Weight: 0.25}},
		{},
	}
	prims := ExtractPrimitives(src, src, nil, Settings{Normals: true, Skins: true}, nil)

	p := prims[0]
	if len(p.ExtraGroups) != 1 || p.ExtraGroups[0].Name != "prop" {
		t.Fatalf("extra groups = %+v; expected only the unskinned group", p.ExtraGroups)
	}
	weights := p.ExtraGroups[0].Weights
	if weights[0] != 0.5 || weights[1] != 0.25 || weights[2] != 0 {
		t.Errorf("extra group weights = %v; expected [0.5 0.25 0]", weights)
	}
}
