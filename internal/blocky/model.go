// Package blocky holds the baked, read-only data model the mesher consumes:
// models, fluids, and the library that owns them, plus the per-material
// output arrays the mesher appends into.
//
// Baking models from authoring input into this form is an external
// collaborator's job; this package only defines the flattened shape the
// mesher reads.
package blocky

import (
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"BlockyMesher/internal/geom"
)

// AirID is the reserved voxel identifier meaning "no geometry".
const AirID uint32 = 0

// NullFluidIndex marks a BakedModel as not being a fluid.
const NullFluidIndex uint8 = 255

// MaxSurfacesPerModel bounds how many distinct surfaces (and, per side,
// how many side-surfaces) one model can carry.
const MaxSurfacesPerModel = 2

// Padding is the voxel border width every block buffer must carry on each
// face so the mesher can look one step past the interior without bounds
// checks.
const Padding = 1

// Surface is the inner-part mesh of one model, for one material.
type Surface struct {
	Positions        []geom.Vector3
	Normals          []geom.Vector3
	UVs              []geom.Vector2
	Tangents         []float32 // len is 0 or 4*len(Positions)
	Indices          []uint32
	MaterialID       uint32
	CollisionEnabled bool
}

// SideSurface is a mesh patch on one cube face: same as Surface but with no
// normal (implicit from the side) and no per-surface material (inherited
// positionally from the parent model's Surfaces[i]).
//
// Invariant: if non-empty, the last two positions are the two "top"
// (+Y) vertices, in clockwise order viewed from outside.
type SideSurface struct {
	Positions []geom.Vector3
	UVs       []geom.Vector2
	Tangents  []float32
	Indices   []uint32
}

func (s *SideSurface) empty() bool { return len(s.Positions) == 0 }

// Model is one baked voxel appearance: up to MaxSurfacesPerModel inner
// surfaces, and up to MaxSurfacesPerModel side-surfaces per cube side.
type Model struct {
	Surfaces     [MaxSurfacesPerModel]Surface
	SurfaceCount int

	SideSurfaces [geom.SideCount][MaxSurfacesPerModel]SideSurface

	// EmptySidesMask has bit s set iff side s has zero vertices across
	// every surface slot — the mesher skips such sides outright.
	EmptySidesMask uint8

	// SidePatternIndices identifies the silhouette of each side, consulted
	// by the face-visibility oracle.
	SidePatternIndices [geom.SideCount]uint32

	// CutoutSideSurfaces maps a neighbor's opposite-side pattern id to an
	// alternate set of pre-cut side-surfaces, used in place of the default
	// when the neighbor's shape only partially covers this side.
	CutoutSideSurfaces [geom.SideCount]map[uint32][]SideSurface
	CutoutSidesEnabled bool

	Color             rl.Color
	TransparencyIndex uint16
	CullsNeighbors    bool
	ContributesToAO   bool

	// FluidIndex of NullFluidIndex means "not a fluid". Otherwise FluidLevel
	// in [0, fluid.MaxLevel] encodes the surface height.
	FluidIndex uint8
	FluidLevel uint8

	// Authoring-side only; not read by the mesher core.
	Empty             bool
	BoxCollisionMask  uint32
	BoxCollisionAABBs []geom.AABB
}

// SideEmpty reports whether side s carries no geometry at all.
func (m *Model) SideEmpty(s geom.Side) bool {
	return m.EmptySidesMask&(1<<uint(s)) != 0
}

// IsFluid reports whether this model is a fluid voxel.
func (m *Model) IsFluid() bool { return m.FluidIndex != NullFluidIndex }

// Fluid is a per-fluid template: lateral skirt geometry for each side, a
// material id, the level range, and the two heights levels interpolate
// between.
type Fluid struct {
	SideSurfaces       [geom.SideCount]SideSurface
	MaterialID         uint32
	MaxLevel           uint8
	DipWhenFlowingDown bool
	BottomHeight       float32
	TopHeight          float32
}

// MaterialRef is an opaque handle the authoring layer assigns meaning to;
// the mesher core never inspects it, only threads material ids through.
type MaterialRef any

// Library is the shared, mutable-by-one-writer model table. Builds take
// the lock in read mode for the duration of a meshing pass; authoring code
// takes it in write mode and must not hold it while invoking a build.
type Library struct {
	mu sync.RWMutex

	models                []Model
	fluids                []Fluid
	materials             []MaterialRef
	indexedMaterialsCount uint32
	revision              uint64
}

// NewLibrary returns an empty library ready for authoring writes.
func NewLibrary() *Library {
	return &Library{}
}

// RLock / RUnlock / Lock / Unlock expose the reader-writer contract
// directly: a build wraps its pass in RLock/RUnlock, authoring wraps a
// mutation in Lock/Unlock.
func (l *Library) RLock()   { l.mu.RLock() }
func (l *Library) RUnlock() { l.mu.RUnlock() }
func (l *Library) Lock()    { l.mu.Lock() }
func (l *Library) Unlock()  { l.mu.Unlock() }

// Revision returns the write-generation counter, bumped by every
// SetModels, SetFluids and SetMaterials call. The result cache uses it to
// invalidate stale entries cheaply.
func (l *Library) Revision() uint64 { return l.revision }

// SetModels replaces the model table. Caller must hold the write lock.
func (l *Library) SetModels(models []Model) {
	l.models = models
	l.revision++
}

// SetFluids replaces the fluid table. Caller must hold the write lock.
func (l *Library) SetFluids(fluids []Fluid) {
	l.fluids = fluids
	l.revision++
}

// SetMaterials replaces the material table. Caller must hold the write lock.
func (l *Library) SetMaterials(materials []MaterialRef) {
	l.materials = materials
	l.indexedMaterialsCount = uint32(len(materials))
	l.revision++
}

// HasModel reports whether id indexes a baked model. Unknown ids — 0 is
// AIR, and anything ≥ len(models) — are treated as air by the caller.
// Caller must hold at least the read lock.
func (l *Library) HasModel(id uint32) bool {
	return id < uint32(len(l.models))
}

// Model returns the baked model for id. Caller must hold at least the
// read lock and must have checked HasModel first.
func (l *Library) Model(id uint32) *Model {
	return &l.models[id]
}

// Fluid returns the fluid descriptor at index. Caller must hold at least
// the read lock.
func (l *Library) Fluid(index uint8) *Fluid {
	return &l.fluids[index]
}

// IndexedMaterialsCount returns the dense material id range, [0, n).
func (l *Library) IndexedMaterialsCount() uint32 { return l.indexedMaterialsCount }

// GetMaterialByIndex is the passthrough the host uses to resolve a
// material id back to whatever authoring-side object it represents.
func (l *Library) GetMaterialByIndex(i uint32) (MaterialRef, bool) {
	if i >= uint32(len(l.materials)) {
		return nil, false
	}
	return l.materials[i], true
}

// SidePatternOccludes is the face-visibility oracle's precomputed table:
// does a side whose silhouette is pattern pb fully cover a side whose
// silhouette is pattern pa? Pattern id 0 is reserved for "full
// square face" and both occludes, and is occluded by, anything; any other
// pair occludes only when the two pattern ids are identical. This is a
// conservative but exact-for-cubes resolution — a cutout/partial pattern
// never claims to fully cover a different pattern.
func (l *Library) SidePatternOccludes(pa, pb uint32) bool {
	return pa == 0 || pb == 0 || pa == pb
}
