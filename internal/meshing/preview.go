package meshing

import "BlockyMesher/internal/blocky"

// PreviewFluidModel is a build-free helper for an authoring UI: it
// fabricates a uniform 3×3×2 neighborhood (every cell at level, AIR
// directly above) and runs the fluid generator once, producing the mesh
// an authoring UI would show for "this fluid at this level, in
// isolation". Pure and allocation-light enough to call from a UI thread
// on every level-slider change.
func PreviewFluidModel(fluid blocky.Fluid, level uint8) *FluidScratch {
	lib := blocky.NewLibrary()
	lib.Lock()
	lib.SetModels([]blocky.Model{
		{},
		{FluidIndex: 0, FluidLevel: level},
	})
	lib.SetFluids([]blocky.Fluid{fluid})
	lib.Unlock()

	model := &blocky.Model{FluidIndex: 0, FluidLevel: level}
	read := func(dx, dy, dz int32) uint32 {
		if dy > 0 {
			return blocky.AirID
		}
		return 1
	}

	scratch := newFluidScratch()
	lib.RLock()
	GenerateFluidModel(lib, model, read, scratch)
	lib.RUnlock()
	return scratch
}
