package meshing

import (
	"BlockyMesher/internal/blocky"
	"BlockyMesher/internal/geom"
)

// VisibilityDecision is the face-visibility oracle's answer for one side
// of one voxel: whether to emit geometry at all, and if so, which
// side-surfaces to use.
type VisibilityDecision struct {
	Visible        bool
	UseCutout      bool
	CutoutSurfaces []blocky.SideSurface
}

// isFaceVisibleRegardlessOfShape reports a face visible without even
// consulting silhouettes when the neighbor doesn't cull neighbors at all,
// or when the two voxels belong to different transparency groups.
func isFaceVisibleRegardlessOfShape(a, b *blocky.Model) bool {
	return !b.CullsNeighbors || a.TransparencyIndex != b.TransparencyIndex
}

// isFaceVisibleAccordingToShape reports a's side s visible unless the
// library's precomputed occlusion oracle says b's opposite-facing
// silhouette fully covers it.
func isFaceVisibleAccordingToShape(lib *blocky.Library, a, b *blocky.Model, s geom.Side) bool {
	pa := a.SidePatternIndices[s]
	pb := b.SidePatternIndices[geom.OppositeSide[s]]
	return !lib.SidePatternOccludes(pa, pb)
}

// ResolveVisibility runs the full order of checks for a's side s against
// neighbor b. b == nil means the neighbor id has no baked model: the side
// is fully exposed and never cut out. Caller must hold at least the
// library's read lock.
func ResolveVisibility(lib *blocky.Library, a *blocky.Model, b *blocky.Model, s geom.Side) VisibilityDecision {
	if a.SideEmpty(s) {
		return VisibilityDecision{}
	}
	if b == nil {
		return VisibilityDecision{Visible: true}
	}
	if isFaceVisibleRegardlessOfShape(a, b) {
		return VisibilityDecision{Visible: true}
	}
	if !isFaceVisibleAccordingToShape(lib, a, b, s) {
		return VisibilityDecision{}
	}
	decision := VisibilityDecision{Visible: true}
	if a.CutoutSidesEnabled {
		pb := b.SidePatternIndices[geom.OppositeSide[s]]
		if cutout, ok := a.CutoutSideSurfaces[s][pb]; ok {
			decision.UseCutout = true
			decision.CutoutSurfaces = cutout
		}
	}
	return decision
}
