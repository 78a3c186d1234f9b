package blocky

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"BlockyMesher/internal/geom"
)

// PerMaterialArrays is one material's worth of emitted vertex/index data.
// Storage is retained and Reset between builds rather than reallocated
// per chunk.
type PerMaterialArrays struct {
	Positions   []geom.Vector3
	Normals     []geom.Vector3
	UVs         []geom.Vector2
	Tangents    []float32
	Colors      []rl.Color
	Indices     []uint32
	indexOffset uint32
}

// Reset clears the arrays' contents but keeps their backing storage.
func (a *PerMaterialArrays) Reset() {
	a.Positions = a.Positions[:0]
	a.Normals = a.Normals[:0]
	a.UVs = a.UVs[:0]
	a.Tangents = a.Tangents[:0]
	a.Colors = a.Colors[:0]
	a.Indices = a.Indices[:0]
	a.indexOffset = 0
}

// IndexOffset returns the running vertex count already appended, used to
// rebase the next patch's indices.
func (a *PerMaterialArrays) IndexOffset() uint32 { return a.indexOffset }

// AppendVertex appends one vertex. It leaves the index offset alone;
// callers advance it with AdvanceIndexOffset once a patch is complete.
func (a *PerMaterialArrays) AppendVertex(pos, normal geom.Vector3, uv geom.Vector2, color rl.Color) {
	a.Positions = append(a.Positions, pos)
	a.Normals = append(a.Normals, normal)
	a.UVs = append(a.UVs, uv)
	a.Colors = append(a.Colors, color)
}

// AppendTangent appends one vertex's worth (4 floats) of tangent data.
func (a *PerMaterialArrays) AppendTangent(t [4]float32) {
	a.Tangents = append(a.Tangents, t[0], t[1], t[2], t[3])
}

// AppendIndices appends indices already rebased by the caller.
func (a *PerMaterialArrays) AppendIndices(indices ...uint32) {
	a.Indices = append(a.Indices, indices...)
}

// AdvanceIndexOffset advances the running vertex count by n, once a patch
// of n vertices has been appended.
func (a *PerMaterialArrays) AdvanceIndexOffset(n uint32) { a.indexOffset += n }

// VertexCount returns how many vertices have been appended so far.
func (a *PerMaterialArrays) VertexCount() int { return len(a.Positions) }

// CollisionSurface aggregates positions and indices across all materials
// for physics; it carries no normals, UVs or colors.
type CollisionSurface struct {
	Positions   []geom.Vector3
	Indices     []uint32
	indexOffset uint32
}

// Reset clears the surface's contents but keeps its backing storage.
func (c *CollisionSurface) Reset() {
	c.Positions = c.Positions[:0]
	c.Indices = c.Indices[:0]
	c.indexOffset = 0
}

// AppendPositions appends positions verbatim (already world-offset by the
// caller) and returns the index offset they should be rebased against.
func (c *CollisionSurface) AppendPositions(positions []geom.Vector3) uint32 {
	offset := c.indexOffset
	c.Positions = append(c.Positions, positions...)
	c.indexOffset += uint32(len(positions))
	return offset
}

// AppendIndices appends indices already rebased by the caller.
func (c *CollisionSurface) AppendIndices(indices ...uint32) {
	c.Indices = append(c.Indices, indices...)
}
