package meshing

import (
	"BlockyMesher/internal/blocky"
	"BlockyMesher/internal/geom"
	"BlockyMesher/internal/util"
)

// contributesToAO reports whether a voxel id should darken its neighbors'
// corners. Ids with no baked model (out of range) default to true; every
// other id, AIR included, uses its baked model's ContributesToAO flag.
func contributesToAO(lib *blocky.Library, id uint32) bool {
	if !lib.HasModel(id) {
		return true
	}
	return lib.Model(id).ContributesToAO
}

// computeShadedCorners samples side s's edge and corner neighbors and
// returns the 8 cube-corner occlusion counts (only the 4 belonging to s
// are ever nonzero). read samples a neighbor id at an offset relative to
// the voxel whose face is being shaded.
func computeShadedCorners(lib *blocky.Library, read fluidReader, s geom.Side) [8]int {
	var shaded [8]int

	for _, edgeIdx := range geom.SideEdges[s] {
		dx, dy, dz := geom.EdgeDelta(edgeIdx)
		if contributesToAO(lib, read(dx, dy, dz)) {
			a, b := geom.EdgeCorners[edgeIdx][0], geom.EdgeCorners[edgeIdx][1]
			shaded[a]++
			shaded[b]++
		}
	}

	for _, c := range geom.SideCorners[s] {
		if shaded[c] == 2 {
			shaded[c] = 3
			continue
		}
		dx, dy, dz := geom.CornerDelta(c)
		if contributesToAO(lib, read(dx, dy, dz)) {
			shaded[c]++
		}
	}

	return shaded
}

// BakeAO runs the full ambient-occlusion bake for one face and returns
// the shade value (before the 1-shade multiply against model color) for
// each of the given vertices. darkness is the AO darkness factor already
// pre-divided by 3. Caller must hold at least the library's read lock.
func BakeAO(lib *blocky.Library, read fluidReader, s geom.Side, darkness float32, vertices []geom.Vector3) []float32 {
	shaded := computeShadedCorners(lib, read, s)
	positions := geom.CornerPositions()

	out := make([]float32, len(vertices))
	for vi, v := range vertices {
		var shade float32
		for _, c := range geom.SideCorners[s] {
			if shaded[c] == 0 {
				continue
			}
			falloff := util.Clamp01(1 - util.DistSq(positions[c], v))
			if falloff == 0 {
				continue
			}
			candidate := darkness * float32(shaded[c]) * falloff
			if candidate > shade {
				shade = candidate
			}
		}
		out[vi] = shade
	}
	return out
}

// ShadeColor applies a baked shade value to a model's base color:
// final = (1 - shade) * color.
func ShadeColor(base [4]float32, shade float32) [4]float32 {
	k := 1 - shade
	return [4]float32{base[0] * k, base[1] * k, base[2] * k, base[3]}
}
