package meshing

import (
	"testing"

	"BlockyMesher/internal/geom"
)

// A lone opaque cube surrounded by air should emit all 6 faces, one quad
// each.
func TestMeshInteriorSingleCubeEmitsSixFaces(t *testing.T) {
	lib := testCubeLibrary()
	block := rawBlock(3, 3, 3, map[[3]int32]byte{{1, 1, 1}: 1})

	scratch := NewScratch()
	result, err := Build(block, BuildParams{Library: lib}, scratch)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(result.Surfaces) != 1 {
		t.Fatalf("len(Surfaces) = %d, want 1", len(result.Surfaces))
	}
	surf := result.Surfaces[0]
	if len(surf.Positions) != 24 {
		t.Errorf("len(Positions) = %d, want 24 (6 faces * 4 verts)", len(surf.Positions))
	}
	if len(surf.Indices) != 36 {
		t.Errorf("len(Indices) = %d, want 36 (6 faces * 6 indices)", len(surf.Indices))
	}
}

// Two touching opaque cubes should not emit the face between them.
func TestMeshInteriorAdjacentCubesCullSharedFace(t *testing.T) {
	lib := testCubeLibrary()
	block := rawBlock(4, 3, 3, map[[3]int32]byte{
		{1, 1, 1}: 1,
		{2, 1, 1}: 1,
	})

	scratch := NewScratch()
	result, err := Build(block, BuildParams{Library: lib}, scratch)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	surf := result.Surfaces[0]
	// 6 faces per cube, minus the 2 faces where they touch each other.
	wantFaces := 10
	if len(surf.Positions) != wantFaces*4 {
		t.Errorf("len(Positions) = %d, want %d (culled shared face)", len(surf.Positions), wantFaces*4)
	}
}

// A lone voxel's normals should all point outward from the cube
// (spot-check +X and -X).
func TestMeshInteriorIsolatedVoxelFacesOutward(t *testing.T) {
	lib := testCubeLibrary()
	block := rawBlock(3, 3, 3, map[[3]int32]byte{{1, 1, 1}: 1})

	scratch := NewScratch()
	result, err := Build(block, BuildParams{Library: lib}, scratch)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	surf := result.Surfaces[0]
	var sawPosX, sawNegX bool
	for _, n := range surf.Normals {
		if n == geom.SideNormals[geom.SidePosX] {
			sawPosX = true
		}
		if n == geom.SideNormals[geom.SideNegX] {
			sawNegX = true
		}
	}
	if !sawPosX || !sawNegX {
		t.Error("expected both +X and -X outward normals among the emitted faces")
	}
}

// A lone cube with an opaque neighbor across one edge should produce at
// least one darkened vertex color when occlusion baking is requested.
func TestMeshInteriorBakesAOWhenEnabled(t *testing.T) {
	lib := testCubeLibrary()
	block := rawBlock(4, 4, 4, map[[3]int32]byte{
		{1, 1, 1}: 1,
		{2, 2, 1}: 1, // diagonal neighbor across the +X,+Y edge
	})

	scratch := NewScratch()
	params := BuildParams{Library: lib, BakeOcclusion: true, BakedOcclusionDarkness: 1.0}
	result, err := Build(block, params, scratch)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	surf := result.Surfaces[0]

	lib.RLock()
	full := lib.Model(1).Color
	lib.RUnlock()
	darkened := false
	for _, c := range surf.Colors {
		if c != full {
			darkened = true
			break
		}
	}
	if !darkened {
		t.Error("expected at least one AO-darkened vertex color with an occluding diagonal neighbor")
	}
}

func TestMeshInteriorNoAOWhenDisabled(t *testing.T) {
	lib := testCubeLibrary()
	block := rawBlock(4, 4, 4, map[[3]int32]byte{
		{1, 1, 1}: 1,
		{2, 2, 1}: 1,
	})

	scratch := NewScratch()
	result, err := Build(block, BuildParams{Library: lib, BakeOcclusion: false}, scratch)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	surf := result.Surfaces[0]
	lib.RLock()
	full := lib.Model(1).Color
	lib.RUnlock()
	for i, c := range surf.Colors {
		if c != full {
			t.Errorf("Colors[%d] = %v, want unshaded base color %v when occlusion baking is off", i, c, full)
		}
	}
}
