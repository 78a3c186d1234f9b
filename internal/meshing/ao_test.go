package meshing

import (
	"testing"

	"BlockyMesher/internal/blocky"
	"BlockyMesher/internal/geom"
)

func libraryWithModels(models ...blocky.Model) *blocky.Library {
	lib := blocky.NewLibrary()
	lib.Lock()
	lib.SetModels(models)
	lib.Unlock()
	return lib
}

func TestContributesToAOUsesModelFlagAndDefaultsTrueForUnknown(t *testing.T) {
	lib := libraryWithModels(blocky.Model{}, blocky.Model{ContributesToAO: false})
	lib.RLock()
	defer lib.RUnlock()

	if contributesToAO(lib, blocky.AirID) {
		t.Error("AIR's baked model opts out of AO, so AIR should not contribute")
	}
	if !contributesToAO(lib, 99) {
		t.Error("unknown id should contribute to AO by default")
	}
	if contributesToAO(lib, 1) {
		t.Error("model explicitly opting out should not contribute")
	}
}

func TestComputeShadedCornersAllOccludingNeighbors(t *testing.T) {
	opaque := blocky.Model{ContributesToAO: true}
	lib := libraryWithModels(opaque)
	lib.RLock()
	defer lib.RUnlock()

	read := func(dx, dy, dz int32) uint32 { return 0 }
	shaded := computeShadedCorners(lib, read, geom.SidePosY)

	for _, c := range geom.SideCorners[geom.SidePosY] {
		if shaded[c] != 3 {
			t.Errorf("corner %d shaded = %d, want 3 (saturated)", c, shaded[c])
		}
	}
}

func TestComputeShadedCornersNoOccludingNeighbors(t *testing.T) {
	air := blocky.Model{ContributesToAO: false}
	lib := libraryWithModels(air)
	lib.RLock()
	defer lib.RUnlock()

	read := func(dx, dy, dz int32) uint32 { return 0 }
	shaded := computeShadedCorners(lib, read, geom.SidePosY)

	for _, c := range geom.SideCorners[geom.SidePosY] {
		if shaded[c] != 0 {
			t.Errorf("corner %d shaded = %d, want 0", c, shaded[c])
		}
	}
}

func TestBakeAOFullyShadedVertexGetsMaxDarkness(t *testing.T) {
	opaque := blocky.Model{ContributesToAO: true}
	lib := libraryWithModels(opaque)
	lib.RLock()
	defer lib.RUnlock()

	read := func(dx, dy, dz int32) uint32 { return 0 }
	positions := geom.CornerPositions()
	corners := geom.SideCorners[geom.SidePosY]
	vertices := []geom.Vector3{positions[corners[0]]}

	shades := BakeAO(lib, read, geom.SidePosY, 1.0/3.0, vertices)
	if len(shades) != 1 {
		t.Fatalf("len(shades) = %d, want 1", len(shades))
	}
	if shades[0] <= 0 {
		t.Errorf("shades[0] = %v, want > 0 for a fully occluded corner vertex", shades[0])
	}
}

func TestBakeAOUnshadedFace(t *testing.T) {
	air := blocky.Model{ContributesToAO: false}
	lib := libraryWithModels(air)
	lib.RLock()
	defer lib.RUnlock()

	read := func(dx, dy, dz int32) uint32 { return 0 }
	positions := geom.CornerPositions()
	corners := geom.SideCorners[geom.SidePosY]
	vertices := []geom.Vector3{positions[corners[0]], positions[corners[2]]}

	shades := BakeAO(lib, read, geom.SidePosY, 1.0/3.0, vertices)
	for i, s := range shades {
		if s != 0 {
			t.Errorf("shades[%d] = %v, want 0", i, s)
		}
	}
}

func TestShadeColorDarkensRGBOnly(t *testing.T) {
	base := [4]float32{1, 1, 1, 1}
	got := ShadeColor(base, 0.5)
	want := [4]float32{0.5, 0.5, 0.5, 1}
	if got != want {
		t.Errorf("ShadeColor(%v, 0.5) = %v, want %v", base, got, want)
	}
}
