package meshing

import (
	"BlockyMesher/internal/blocky"
	"BlockyMesher/internal/geom"
)

// inPlaneOffsets holds, for each side, the four in-plane neighbor offsets
// (both directions along each of the face's two free axes) checked for
// AIR when deciding whether an outer voxel is exposed.
var inPlaneOffsets = [geom.SideCount][4][3]int32{
	geom.SideNegX: {{0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}},
	geom.SidePosX: {{0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}},
	geom.SideNegY: {{1, 0, 0}, {-1, 0, 0}, {0, 0, 1}, {0, 0, -1}},
	geom.SidePosY: {{1, 0, 0}, {-1, 0, 0}, {0, 0, 1}, {0, 0, -1}},
	geom.SideNegZ: {{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}},
	geom.SidePosZ: {{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}},
}

// appendSeams walks each of the six outer padding layers' 2D interior
// and, for every non-air outer voxel exposed to AIR along an in-plane
// axis and backed by a non-air inner voxel, emits that inner voxel's
// outward-facing side-surface. AO is never applied here. lib must already
// be read-locked by the caller.
func appendSeams(lib *blocky.Library, block *VoxelBlock, scratch *Scratch, params BuildParams) error {
	sx, sy, sz := block.Size[0], block.Size[1], block.Size[2]

	for s := geom.Side(0); s < geom.SideCount; s++ {
		outer, inner := outerLayerCoord(s, sx, sy, sz)
		axes := seamWalkAxes(s, sx, sy, sz)
		for a := axes[0][0]; a <= axes[0][1]; a++ {
			for b := axes[1][0]; b <= axes[1][1]; b++ {
				x, y, z := seamCoord(s, outer, a, b)
				index := y*scratch.Strides.JY + x*scratch.Strides.JX + z*scratch.Strides.JZ
				vid, err := block.idAt(index)
				if err != nil {
					return err
				}
				if vid == blocky.AirID || !lib.HasModel(vid) {
					continue
				}

				exposed := false
				for _, off := range inPlaneOffsets[s] {
					nx, ny, nz := x+off[0], y+off[1], z+off[2]
					if nx < 0 || nx >= sx || ny < 0 || ny >= sy || nz < 0 || nz >= sz {
						continue
					}
					nIndex := ny*scratch.Strides.JY + nx*scratch.Strides.JX + nz*scratch.Strides.JZ
					nid, nerr := block.idAt(nIndex)
					if nerr != nil {
						return nerr
					}
					if nid == blocky.AirID {
						exposed = true
						break
					}
				}
				if !exposed {
					continue
				}

				ix, iy, iz := seamCoord(s, inner, a, b)
				if ix < 0 || ix >= sx || iy < 0 || iy >= sy || iz < 0 || iz >= sz {
					continue
				}
				innerIndex := iy*scratch.Strides.JY + ix*scratch.Strides.JX + iz*scratch.Strides.JZ
				innerID, ierr := block.idAt(innerIndex)
				if ierr != nil {
					return ierr
				}
				if innerID == blocky.AirID || !lib.HasModel(innerID) {
					continue
				}
				innerModel := lib.Model(innerID)
				if innerModel.IsFluid() || innerModel.SideEmpty(s) {
					continue
				}

				worldOffset := geom.Vector3{X: float32(ix - 1), Y: float32(iy - 1), Z: float32(iz - 1)}
				for k := 0; k < innerModel.SurfaceCount; k++ {
					surf := &innerModel.SideSurfaces[s][k]
					if len(surf.Positions) == 0 {
						continue
					}
					materialID := innerModel.Surfaces[k].MaterialID
					arrays := &scratch.Materials[materialID]
					appendSurfacePatch(arrays, surf.Positions, surf.UVs, surf.Tangents, surf.Indices, geom.SideNormals[s], colorOf(innerModel), nil, worldOffset)
					if params.CollisionHint && innerModel.Surfaces[k].CollisionEnabled {
						appendCollisionPatch(&scratch.Collision, surf.Positions, surf.Indices, worldOffset)
					}
				}
			}
		}
	}
	return nil
}

// outerLayerCoord returns the fixed coordinate of the outer padding layer
// and the inner layer one step toward the interior, along side s's axis.
func outerLayerCoord(s geom.Side, sx, sy, sz int32) (outer, inner int32) {
	switch s {
	case geom.SideNegX:
		return 0, 1
	case geom.SidePosX:
		return sx - 1, sx - 2
	case geom.SideNegY:
		return 0, 1
	case geom.SidePosY:
		return sy - 1, sy - 2
	case geom.SideNegZ:
		return 0, 1
	case geom.SidePosZ:
		return sz - 1, sz - 2
	}
	return 0, 0
}

// seamWalkAxes returns the [lo,hi] ranges of the two free axes to walk
// across side s's face, covering only the face's 2D interior (the padding
// rows at either end of each free axis are skipped).
func seamWalkAxes(s geom.Side, sx, sy, sz int32) [2][2]int32 {
	switch s {
	case geom.SideNegX, geom.SidePosX:
		return [2][2]int32{{1, sy - 2}, {1, sz - 2}}
	case geom.SideNegY, geom.SidePosY:
		return [2][2]int32{{1, sx - 2}, {1, sz - 2}}
	default:
		return [2][2]int32{{1, sx - 2}, {1, sy - 2}}
	}
}

// seamCoord reassembles (x,y,z) from the fixed coordinate along s's axis
// and the two free-axis walk values a,b.
func seamCoord(s geom.Side, fixed, a, b int32) (x, y, z int32) {
	switch s {
	case geom.SideNegX, geom.SidePosX:
		return fixed, a, b
	case geom.SideNegY, geom.SidePosY:
		return a, fixed, b
	default:
		return a, b, fixed
	}
}
