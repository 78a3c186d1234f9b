package meshing

import (
	"BlockyMesher/internal/blocky"
	"BlockyMesher/internal/geom"
	"BlockyMesher/internal/util"
)

// FlowState names the direction a fluid's top surface is reconstructed to
// slope toward, derived from which top corners sample as lowest.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowStraightPosX
	FlowStraightNegX
	FlowStraightPosZ
	FlowStraightNegZ
	FlowDiagPosXPosZ
	FlowDiagPosXNegZ
	FlowDiagNegXPosZ
	FlowDiagNegXNegZ
)

// minCornersMaskToFlowState maps the 4-bit "which corners are at the
// minimum level" mask (bit3=corner0, bit2=corner1, bit1=corner2,
// bit0=corner3) to a flow direction. Masks 0000 (unreachable — at least
// one corner is always at the minimum), 0101 and 1010 (opposite-corner
// ties, ambiguous) and 1111 (flat) all resolve to FlowIdle.
var minCornersMaskToFlowState = [16]FlowState{
	0b0000: FlowIdle,
	0b0001: FlowDiagPosXPosZ,
	0b0010: FlowDiagNegXPosZ,
	0b0011: FlowStraightPosZ,
	0b0100: FlowDiagNegXNegZ,
	0b0101: FlowIdle,
	0b0110: FlowStraightNegX,
	0b0111: FlowDiagNegXPosZ,
	0b1000: FlowDiagPosXNegZ,
	0b1001: FlowStraightPosX,
	0b1010: FlowIdle,
	0b1011: FlowDiagPosXPosZ,
	0b1100: FlowStraightNegZ,
	0b1101: FlowDiagPosXNegZ,
	0b1110: FlowDiagNegXNegZ,
	0b1111: FlowIdle,
}

// fluidUV packs the axis hint (X in UV.X) and flow code (UV.Y) the shader
// reads to pick the correct flow-animated texture.
func fluidUV(axisIsY bool, flow FlowState) geom.Vector2 {
	if axisIsY {
		return geom.Vector2{X: 0, Y: float32(flow)}
	}
	return geom.Vector2{X: 1, Y: float32(flow)}
}

// FluidScratch is the per-thread reusable workspace the fluid generator
// writes into; the main mesher reads straight out of it once
// GenerateFluidModel returns, treating it exactly like a model's
// SideSurfaces array — the procedural top quad lives at SidePosY, the
// bottom at SideNegY, and the four skirts at the lateral sides. Reused
// across voxels in the same build.
type FluidScratch struct {
	Sides [geom.SideCount]blocky.SideSurface
}

func newFluidScratch() *FluidScratch {
	s := &FluidScratch{}
	for side := range s.Sides {
		s.Sides[side].Positions = make([]geom.Vector3, 4)
		s.Sides[side].UVs = make([]geom.Vector2, 4)
		s.Sides[side].Indices = make([]uint32, 6)
	}
	return s
}

// fluidReader reads a voxel's id at an offset relative to the current
// voxel, in the padded block's own coordinate system.
type fluidReader func(dx, dy, dz int32) uint32

// neighborIndex implements the 9-neighbor layout: idx(dx,dz) = 4 + dx +
// 3*dz, matching the diagram
//
//	0 1 2
//	3 4 5
//	6 7 8
func neighborIndex(dx, dz int32) int {
	return int(4 + dx + 3*dz)
}

// GenerateFluidModel reconstructs a fluid voxel's sloped surface from its
// neighbors' levels and leaves the result in scratch. lib must already be
// read-locked by the caller (the build pass holds it for the whole
// build).
func GenerateFluidModel(lib *blocky.Library, model *blocky.Model, read fluidReader, scratch *FluidScratch) {
	fluid := lib.Fluid(model.FluidIndex)

	// Step A: neighbor sampling + covered-neighbor mask.
	var fl [9]uint8
	var coveredNeighbors uint16
	var belowAir [9]bool // below-cell is air or same fluid, used by step B

	sameFluidID := func(id uint32) (uint8, bool) {
		if !lib.HasModel(id) || id == blocky.AirID {
			return 0, false
		}
		nm := lib.Model(id)
		if nm.FluidIndex != model.FluidIndex {
			return 0, false
		}
		return nm.FluidLevel, true
	}

	for dz := int32(-1); dz <= 1; dz++ {
		for dx := int32(-1); dx <= 1; dx++ {
			i := neighborIndex(dx, dz)
			id := read(dx, 0, dz)
			if !lib.HasModel(id) || id == blocky.AirID {
				fl[i] = 0
				continue
			}
			nm := lib.Model(id)
			if nm.FluidIndex == model.FluidIndex {
				fl[i] = nm.FluidLevel
				aboveID := read(dx, 1, dz)
				if lvl, ok := sameFluidID(aboveID); ok {
					_ = lvl
					coveredNeighbors |= 1 << uint(i)
				}
			} else {
				fl[i] = 0
			}
			belowID := read(dx, -1, dz)
			_, belowSameFluid := sameFluidID(belowID)
			belowAir[i] = belowID == blocky.AirID || belowSameFluid
		}
	}

	// Step B: dip-when-flowing-down.
	if fluid.DipWhenFlowingDown {
		for dz := int32(-1); dz <= 1; dz++ {
			for dx := int32(-1); dx <= 1; dx++ {
				if dx == 0 && dz == 0 {
					continue
				}
				i := neighborIndex(dx, dz)
				covered := coveredNeighbors&(1<<uint(i)) != 0
				if fl[i] > 0 && fl[i] < fluid.MaxLevel && !covered && belowAir[i] {
					fl[i] = 0
				}
			}
		}
	}

	// Step C: top-cover test. Lateral skirts still come out at full
	// height (their templates are copied unmodified, below); only the
	// top quad itself is suppressed.
	aboveCenterID := read(0, 1, 0)
	if lvl, ok := sameFluidID(aboveCenterID); ok {
		_ = lvl
		for s := range scratch.Sides {
			copySideTemplate(&scratch.Sides[s], &fluid.SideSurfaces[s])
		}
		scratch.Sides[geom.SidePosY].Positions = scratch.Sides[geom.SidePosY].Positions[:0]
		scratch.Sides[geom.SidePosY].UVs = scratch.Sides[geom.SidePosY].UVs[:0]
		scratch.Sides[geom.SidePosY].Indices = scratch.Sides[geom.SidePosY].Indices[:0]
		return
	}

	// Step D: corner levels.
	corner := [4]uint8{
		maxU8(fl[1], fl[2], fl[4], fl[5]),
		maxU8(fl[0], fl[1], fl[3], fl[4]),
		maxU8(fl[3], fl[4], fl[6], fl[7]),
		maxU8(fl[4], fl[5], fl[7], fl[8]),
	}

	// Step E: covered-corner promotion.
	const (
		maskCorner1 = 0b000_001_011
		maskCorner0 = 0b000_100_110
		maskCorner2 = 0b011_001_000
		maskCorner3 = 0b110_100_000
	)
	promoted := [4]bool{}
	if coveredNeighbors&maskCorner0 != 0 {
		promoted[0] = true
	}
	if coveredNeighbors&maskCorner1 != 0 {
		promoted[1] = true
	}
	if coveredNeighbors&maskCorner2 != 0 {
		promoted[2] = true
	}
	if coveredNeighbors&maskCorner3 != 0 {
		promoted[3] = true
	}

	var h [4]float32
	for i := 0; i < 4; i++ {
		if promoted[i] {
			h[i] = fluid.TopHeight
			continue
		}
		h[i] = util.Lerp(fluid.BottomHeight, fluid.TopHeight, float32(corner[i])/float32(fluid.MaxLevel))
	}

	// Step F: flow direction.
	minLevel := corner[0]
	for _, c := range corner[1:] {
		if c < minLevel {
			minLevel = c
		}
	}
	var mask int
	if corner[0] == minLevel {
		mask |= 0b1000
	}
	if corner[1] == minLevel {
		mask |= 0b0100
	}
	if corner[2] == minLevel {
		mask |= 0b0010
	}
	if corner[3] == minLevel {
		mask |= 0b0001
	}
	flow := minCornersMaskToFlowState[mask]

	// Step G: emission. Top vertex k sits at corner k's own XZ position in
	// neighborIndex's layout (0 at (+x,-z), 1 at (-x,-z), 2 at (-x,+z),
	// 3 at (+x,+z), the layout steps D and E and the lateral skirts use)
	// and takes that corner's height directly. The indices wind
	// counter-clockwise seen from +Y; for the ++/-- diagonal flows the
	// shared diagonal moves from 0-2 to 1-3 so that it follows the flow.
	topUV := fluidUV(true, flow)
	topPositions := [4]geom.Vector3{
		{X: 1, Y: h[0], Z: 0},
		{X: 0, Y: h[1], Z: 0},
		{X: 0, Y: h[2], Z: 1},
		{X: 1, Y: h[3], Z: 1},
	}
	topIndices := [6]uint32{0, 1, 2, 0, 2, 3}
	if flow == FlowDiagPosXPosZ || flow == FlowDiagNegXNegZ {
		topIndices = [6]uint32{0, 1, 3, 1, 2, 3}
	}

	lateralUV := fluidUV(false, FlowStraightPosZ)
	bottomUV := fluidUV(true, FlowIdle)
	for s := range scratch.Sides {
		copySideTemplate(&scratch.Sides[s], &fluid.SideSurfaces[s])
		switch geom.Side(s) {
		case geom.SideNegX:
			rewriteTopVertices(&scratch.Sides[s], h[2], h[1], lateralUV)
		case geom.SidePosX:
			rewriteTopVertices(&scratch.Sides[s], h[0], h[3], lateralUV)
		case geom.SideNegZ:
			rewriteTopVertices(&scratch.Sides[s], h[1], h[0], lateralUV)
		case geom.SidePosZ:
			rewriteTopVertices(&scratch.Sides[s], h[3], h[2], lateralUV)
		case geom.SideNegY:
			for i := range scratch.Sides[s].UVs {
				scratch.Sides[s].UVs[i] = bottomUV
			}
		case geom.SidePosY:
			top := &scratch.Sides[s]
			top.Positions = append(top.Positions[:0], topPositions[:]...)
			top.UVs = append(top.UVs[:0], topUV, topUV, topUV, topUV)
			top.Indices = append(top.Indices[:0], topIndices[:]...)
			top.Tangents = top.Tangents[:0]
		}
	}
}

func copySideTemplate(dst, src *blocky.SideSurface) {
	dst.Positions = append(dst.Positions[:0], src.Positions...)
	dst.UVs = append(dst.UVs[:0], src.UVs...)
	dst.Indices = append(dst.Indices[:0], src.Indices...)
	if len(src.Tangents) > 0 {
		dst.Tangents = append(dst.Tangents[:0], src.Tangents...)
	} else {
		dst.Tangents = dst.Tangents[:0]
	}
}

// rewriteTopVertices overwrites the Y of a lateral side template's two top
// vertices (index 2 and 3, per the BakedSideSurface convention).
func rewriteTopVertices(s *blocky.SideSurface, y2, y3 float32, uv geom.Vector2) {
	if len(s.Positions) < 4 {
		return
	}
	s.Positions[2].Y = y2
	s.Positions[3].Y = y3
	for i := range s.UVs {
		s.UVs[i] = uv
	}
}

func maxU8(vals ...uint8) uint8 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
