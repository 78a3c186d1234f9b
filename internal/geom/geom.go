// Package geom holds the constant cube tables and small vector helpers the
// mesher builds on: side/edge/corner geometry of a unit voxel, and the
// neighbor-offset tables derived from a block's strides at build start.
package geom

import rl "github.com/gen2brain/raylib-go/raylib"

// Vector3 aliases the renderer's own vector type rather than introducing
// a parallel one.
type Vector3 = rl.Vector3

// Vector2 aliases the renderer's 2D vector, used for UVs.
type Vector2 = rl.Vector2

// Side names one of the six faces of a voxel. Order is fixed and used
// everywhere emission order matters for deterministic output.
type Side int

const (
	SideNegX Side = iota
	SidePosX
	SideNegY
	SidePosY
	SideNegZ
	SidePosZ
	SideCount
)

func (s Side) String() string {
	switch s {
	case SideNegX:
		return "-X"
	case SidePosX:
		return "+X"
	case SideNegY:
		return "-Y"
	case SidePosY:
		return "+Y"
	case SideNegZ:
		return "-Z"
	case SidePosZ:
		return "+Z"
	default:
		return "?"
	}
}

// OppositeSide maps each side to the one facing it.
var OppositeSide = [SideCount]Side{
	SideNegX: SidePosX,
	SidePosX: SideNegX,
	SideNegY: SidePosY,
	SidePosY: SideNegY,
	SideNegZ: SidePosZ,
	SidePosZ: SideNegZ,
}

// SideNormals is the outward unit normal of each side.
var SideNormals = [SideCount]Vector3{
	SideNegX: {X: -1},
	SidePosX: {X: 1},
	SideNegY: {Y: -1},
	SidePosY: {Y: 1},
	SideNegZ: {Z: -1},
	SidePosZ: {Z: 1},
}

// cornerPositions enumerates the 8 corners of a unit cube in {0,1}^3.
// Corner index bit0=X, bit1=Y, bit2=Z, matching the original source's
// "corners packed into a byte" convention.
var cornerPositions = [8]Vector3{
	{X: 0, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 1, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 1, Y: 0, Z: 1},
	{X: 0, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: 1},
}

// CornerPositions returns the 8 unit-cube corner positions.
func CornerPositions() [8]Vector3 { return cornerPositions }

func corner(x, y, z int) int { return x | y<<1 | z<<2 }

// SideCorners lists the 4 corners of each side, in winding order such that
// (v0,v1,v2) and (v0,v2,v3) are CCW as seen from outside along the side's
// normal, and — per the BakedSideSurface convention — the last two entries
// are the two "top" (+Y) corners for the four lateral sides.
var SideCorners = [SideCount][4]int{
	SideNegX: {corner(0, 0, 0), corner(0, 0, 1), corner(0, 1, 1), corner(0, 1, 0)},
	SidePosX: {corner(1, 0, 1), corner(1, 0, 0), corner(1, 1, 0), corner(1, 1, 1)},
	SideNegY: {corner(0, 0, 0), corner(1, 0, 0), corner(1, 0, 1), corner(0, 0, 1)},
	SidePosY: {corner(0, 1, 0), corner(0, 1, 1), corner(1, 1, 1), corner(1, 1, 0)},
	SideNegZ: {corner(1, 0, 0), corner(0, 0, 0), corner(0, 1, 0), corner(1, 1, 0)},
	SidePosZ: {corner(0, 0, 1), corner(1, 0, 1), corner(1, 1, 1), corner(0, 1, 1)},
}

// EdgeCorners lists the 12 edges of the cube as pairs of corner indices.
var EdgeCorners = [12][2]int{
	{corner(0, 0, 0), corner(1, 0, 0)},
	{corner(0, 1, 0), corner(1, 1, 0)},
	{corner(0, 0, 1), corner(1, 0, 1)},
	{corner(0, 1, 1), corner(1, 1, 1)},

	{corner(0, 0, 0), corner(0, 1, 0)},
	{corner(1, 0, 0), corner(1, 1, 0)},
	{corner(0, 0, 1), corner(0, 1, 1)},
	{corner(1, 0, 1), corner(1, 1, 1)},

	{corner(0, 0, 0), corner(0, 0, 1)},
	{corner(1, 0, 0), corner(1, 0, 1)},
	{corner(0, 1, 0), corner(0, 1, 1)},
	{corner(1, 1, 0), corner(1, 1, 1)},
}

func edgeIndexOf(a, b int) int {
	for i, e := range EdgeCorners {
		if (e[0] == a && e[1] == b) || (e[0] == b && e[1] == a) {
			return i
		}
	}
	panic("geom: no edge between given corners")
}

// SideEdges lists the 4 edges bounding each side, derived once from
// SideCorners and EdgeCorners so the two tables can never drift apart.
var SideEdges [SideCount][4]int

func init() {
	for s := Side(0); s < SideCount; s++ {
		c := SideCorners[s]
		for i := 0; i < 4; i++ {
			SideEdges[s][i] = edgeIndexOf(c[i], c[(i+1)%4])
		}
	}
}

// Strides is the flat-index stride of each axis for a padded voxel block,
// per the `index = y + x*sy + z*sx*sy` convention: jy=1, jx=sy, jz=sx*sy.
type Strides struct {
	JX, JY, JZ int32
}

// NewStrides derives the strides from a block's padded size.
func NewStrides(sx, sy, sz int32) Strides {
	return Strides{JX: sy, JY: 1, JZ: sx * sy}
}

func (st Strides) axisOffset(axis int, positive bool) int32 {
	var base int32
	switch axis {
	case 0:
		base = st.JX
	case 1:
		base = st.JY
	case 2:
		base = st.JZ
	}
	if !positive {
		return -base
	}
	return base
}

// SideNeighborOffsets returns the flat-index offset to step one voxel out
// of each of the 6 sides, computed from the block's strides.
func SideNeighborOffsets(st Strides) [SideCount]int32 {
	var out [SideCount]int32
	out[SideNegX] = st.axisOffset(0, false)
	out[SidePosX] = st.axisOffset(0, true)
	out[SideNegY] = st.axisOffset(1, false)
	out[SidePosY] = st.axisOffset(1, true)
	out[SideNegZ] = st.axisOffset(2, false)
	out[SidePosZ] = st.axisOffset(2, true)
	return out
}

// EdgeNeighborOffsets returns, for each of the 12 edges, the flat-index
// offset to the voxel diagonally across that edge: the sum of the two
// side offsets whose axes the edge's two fixed corner bits point along.
func EdgeNeighborOffsets(st Strides) [12]int32 {
	sides := SideNeighborOffsets(st)
	var out [12]int32
	for e, pair := range EdgeCorners {
		a, b := pair[0], pair[1]
		// The edge varies along exactly one axis; the other two axes are
		// fixed across both corners and give the two side directions to sum.
		for axis := 0; axis < 3; axis++ {
			bitA := (a >> axis) & 1
			bitB := (b >> axis) & 1
			if bitA != bitB {
				continue // this is the varying axis of the edge
			}
			if bitA == 1 {
				out[e] += sides[positiveSideOf(axis)]
			} else {
				out[e] += sides[negativeSideOf(axis)]
			}
		}
	}
	return out
}

// CornerNeighborOffsets returns, for each of the 8 corners, the flat-index
// offset to the voxel diagonally across that corner: the sum of the three
// side offsets matching the corner's bits.
func CornerNeighborOffsets(st Strides) [8]int32 {
	sides := SideNeighborOffsets(st)
	var out [8]int32
	for c := 0; c < 8; c++ {
		for axis := 0; axis < 3; axis++ {
			if (c>>axis)&1 == 1 {
				out[c] += sides[positiveSideOf(axis)]
			} else {
				out[c] += sides[negativeSideOf(axis)]
			}
		}
	}
	return out
}

func positiveSideOf(axis int) Side {
	switch axis {
	case 0:
		return SidePosX
	case 1:
		return SidePosY
	default:
		return SidePosZ
	}
}

func negativeSideOf(axis int) Side {
	switch axis {
	case 0:
		return SideNegX
	case 1:
		return SideNegY
	default:
		return SideNegZ
	}
}

// CornerDelta returns the (dx,dy,dz) step, each ±1, from a voxel's center
// to the voxel diagonally across corner c.
func CornerDelta(c int) (dx, dy, dz int32) {
	bit := func(axis int) int32 {
		if (c>>axis)&1 == 1 {
			return 1
		}
		return -1
	}
	return bit(0), bit(1), bit(2)
}

// EdgeDelta returns the (dx,dy,dz) step from a voxel's center to the voxel
// diagonally across edge e: ±1 on the edge's two fixed axes, 0 on the axis
// the edge runs along.
func EdgeDelta(e int) (dx, dy, dz int32) {
	a, b := EdgeCorners[e][0], EdgeCorners[e][1]
	da, db, dc := CornerDelta(a)
	ea, eb, ec := CornerDelta(b)
	if da != ea {
		da = 0
	}
	if db != eb {
		db = 0
	}
	if dc != ec {
		dc = 0
	}
	return da, db, dc
}

// AABB is an axis-aligned bounding box, min/max corners.
type AABB struct {
	Min, Max Vector3
}

// UnitCube is the AABB of one voxel at the origin.
var UnitCube = AABB{Min: Vector3{X: 0, Y: 0, Z: 0}, Max: Vector3{X: 1, Y: 1, Z: 1}}

// Contains reports whether p lies within the box, inclusive.
func (b AABB) Contains(p Vector3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
