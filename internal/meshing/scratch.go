package meshing

import (
	"BlockyMesher/internal/blocky"
	"BlockyMesher/internal/geom"
)

// Scratch is the per-thread workspace threaded explicitly into every
// build: output arrays, the fluid generator's workspace, and the
// neighbor-offset tables derived from the current block's strides. Never
// recreated per build — only resized and reset.
type Scratch struct {
	Materials []blocky.PerMaterialArrays
	Collision blocky.CollisionSurface
	Fluid     *FluidScratch

	Strides       geom.Strides
	SideOffsets   [geom.SideCount]int32
	EdgeOffsets   [12]int32
	CornerOffsets [8]int32
}

// NewScratch allocates an empty scratch ready for its first build.
func NewScratch() *Scratch {
	return &Scratch{Fluid: newFluidScratch()}
}

// ResizeMaterials grows the per-material arrays slice to at least n
// entries, preserving and reusing any already-allocated ones.
func (s *Scratch) ResizeMaterials(n uint32) {
	for uint32(len(s.Materials)) < n {
		s.Materials = append(s.Materials, blocky.PerMaterialArrays{})
	}
	s.Materials = s.Materials[:n]
}

// Reset clears all per-build output state but keeps backing storage.
func (s *Scratch) Reset() {
	for i := range s.Materials {
		s.Materials[i].Reset()
	}
	s.Collision.Reset()
}

// SetStrides recomputes the neighbor-offset tables for a block of the
// given padded size. Called once per build, before meshing starts.
func (s *Scratch) SetStrides(sx, sy, sz int32) {
	s.Strides = geom.NewStrides(sx, sy, sz)
	s.SideOffsets = geom.SideNeighborOffsets(s.Strides)
	s.EdgeOffsets = geom.EdgeNeighborOffsets(s.Strides)
	s.CornerOffsets = geom.CornerNeighborOffsets(s.Strides)
}

// Offset returns the flat-index delta for a (dx,dy,dz) step under the
// current strides.
func (s *Scratch) Offset(dx, dy, dz int32) int32 {
	return dx*s.Strides.JX + dy*s.Strides.JY + dz*s.Strides.JZ
}
