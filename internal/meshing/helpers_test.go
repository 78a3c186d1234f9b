package meshing

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"BlockyMesher/internal/blocky"
	"BlockyMesher/internal/geom"
)

// testCubeModel bakes a full opaque cube model the same way the demo
// harness does, for use across the package's build-level tests.
func testCubeModel(color rl.Color, materialID uint32, collision bool) blocky.Model {
	corners := geom.CornerPositions()
	uvs := []geom.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	m := blocky.Model{
		SurfaceCount:    1,
		Color:           color,
		CullsNeighbors:  true,
		ContributesToAO: true,
		FluidIndex:      blocky.NullFluidIndex,
	}
	m.Surfaces[0] = blocky.Surface{MaterialID: materialID, CollisionEnabled: collision}

	for s := geom.Side(0); s < geom.SideCount; s++ {
		pos := make([]geom.Vector3, 4)
		for i, c := range geom.SideCorners[s] {
			pos[i] = corners[c]
		}
		m.SideSurfaces[s][0] = blocky.SideSurface{
			Positions: pos,
			UVs:       append([]geom.Vector2(nil), uvs...),
			Indices:   append([]uint32(nil), indices...),
		}
	}
	return m
}

// testCubeLibrary returns a library with AIR at id 0 and one opaque cube
// model at id 1.
func testCubeLibrary() *blocky.Library {
	lib := blocky.NewLibrary()
	lib.Lock()
	lib.SetModels([]blocky.Model{{}, testCubeModel(rl.Color{R: 200, G: 170, B: 120, A: 255}, 0, true)})
	lib.SetMaterials([]blocky.MaterialRef{"stone"})
	lib.Unlock()
	return lib
}

// rawBlock builds a CompressionRaw/DepthU8 voxel block of the given padded
// size, with raw pre-filled with voxel ids at (x,y,z) flat positions using
// the index = y + x*sy + z*sx*sy convention.
func rawBlock(sx, sy, sz int32, fill map[[3]int32]byte) *VoxelBlock {
	raw := make([]byte, sx*sy*sz)
	for coord, id := range fill {
		idx := coord[1] + coord[0]*sy + coord[2]*sx*sy
		raw[idx] = id
	}
	return &VoxelBlock{
		Size:        [3]int32{sx, sy, sz},
		Compression: CompressionRaw,
		Depth:       DepthU8,
		Raw:         raw,
	}
}
