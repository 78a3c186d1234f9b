// Command demo drives the mesher over a single hand-built chunk end to
// end and prints a colored terminal summary of the result.
package main

import (
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"BlockyMesher/internal/blocky"
	"BlockyMesher/internal/config"
	"BlockyMesher/internal/geom"
	"BlockyMesher/internal/meshing"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

func main() {
	fmt.Println(ColorCyan + "╔══════════════════════════════════════╗" + ColorReset)
	fmt.Println(ColorCyan + "║        BlockyMesher Demo Build        ║" + ColorReset)
	fmt.Println(ColorCyan + "╚══════════════════════════════════════╝" + ColorReset)

	cfg := config.Load()
	start := time.Now()

	lib := buildDemoLibrary()
	block := buildDemoBlock()
	scratch := meshing.NewScratch()

	params := meshing.BuildParams{
		Library:                lib,
		BakeOcclusion:          cfg.BakeOcclusion,
		BakedOcclusionDarkness: cfg.BakedOcclusionDarkness,
		CollisionHint:          true,
	}

	result, err := meshing.Build(block, params, scratch)
	if err != nil {
		fatal(err)
	}

	fmt.Printf(ColorYellow+"\n[+] Build finished in %v"+ColorReset+"\n", time.Since(start))
	for _, surf := range result.Surfaces {
		fmt.Printf(ColorGreen+"  - material %d: %d vertices, %d indices"+ColorReset+"\n",
			surf.MaterialIndex, len(surf.Positions), len(surf.Indices))
	}
	if result.CollisionSurface != nil {
		fmt.Printf("  - collision: %d vertices, %d indices\n",
			len(result.CollisionSurface.Positions), len(result.CollisionSurface.Indices))
	}
}

func fatal(err error) {
	fmt.Printf(ColorRed+"[ERRO FATAL] %v"+ColorReset+"\n", err)
	os.Exit(1)
}

// buildDemoLibrary hand-bakes a single opaque cube model; real baking is
// an authoring-layer concern out of scope for this module.
func buildDemoLibrary() *blocky.Library {
	lib := blocky.NewLibrary()
	lib.Lock()
	lib.SetModels([]blocky.Model{
		{},
		fullCubeModel(rl.Color{R: 200, G: 170, B: 120, A: 255}, 0),
	})
	lib.SetMaterials([]blocky.MaterialRef{"stone"})
	lib.Unlock()
	return lib
}

func fullCubeModel(color rl.Color, materialID uint32) blocky.Model {
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
	m.Surfaces[0] = blocky.Surface{MaterialID: materialID, CollisionEnabled: true}

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

// buildDemoBlock builds a 3×3×3 padded block with a single opaque cube at
// the one interior voxel.
func buildDemoBlock() *meshing.VoxelBlock {
	raw := make([]byte, 3*3*3)
	raw[13] = 1 // (x=1,y=1,z=1): 1 + 1*3 + 1*3*3 = 13
	return &meshing.VoxelBlock{
		Size:        [3]int32{3, 3, 3},
		Compression: meshing.CompressionRaw,
		Depth:       meshing.DepthU8,
		Raw:         raw,
	}
}
