package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"BlockyMesher/internal/geom"
)

// deriveFaceTangent computes a single tangent (with handedness in the 4th
// component) for a planar quad/triangle from its first three vertices and
// UVs, via mgl32's vector arithmetic. Used when a baked surface carries
// positions but no tangents of its own — the procedural fluid top quad,
// in particular.
func deriveFaceTangent(positions []geom.Vector3, uvs []geom.Vector2, normal geom.Vector3) [4]float32 {
	if len(positions) < 3 || len(uvs) < 3 {
		return [4]float32{1, 0, 0, 1}
	}

	p0 := mgl32.Vec3{positions[0].X, positions[0].Y, positions[0].Z}
	p1 := mgl32.Vec3{positions[1].X, positions[1].Y, positions[1].Z}
	p2 := mgl32.Vec3{positions[2].X, positions[2].Y, positions[2].Z}
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)

	du1, dv1 := uvs[1].X-uvs[0].X, uvs[1].Y-uvs[0].Y
	du2, dv2 := uvs[2].X-uvs[0].X, uvs[2].Y-uvs[0].Y
	denom := du1*dv2 - du2*dv1
	if denom == 0 {
		return [4]float32{1, 0, 0, 1}
	}
	f := 1 / denom
	tangent := e1.Mul(f * dv2).Sub(e2.Mul(f * dv1))
	if tangent.Len() == 0 {
		return [4]float32{1, 0, 0, 1}
	}
	tangent = tangent.Normalize()

	n := mgl32.Vec3{normal.X, normal.Y, normal.Z}
	bitangent := e1.Mul(f * -du2).Add(e2.Mul(f * du1))
	w := float32(1)
	if n.Cross(tangent).Dot(bitangent) < 0 {
		w = -1
	}
	return [4]float32{tangent.X(), tangent.Y(), tangent.Z(), w}
}
